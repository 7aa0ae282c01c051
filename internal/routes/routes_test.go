package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	"github.com/BruksfildServices01/weekly-availability/internal/cache"
	"github.com/BruksfildServices01/weekly-availability/internal/config"
	"github.com/BruksfildServices01/weekly-availability/internal/infra/repository"
	"github.com/BruksfildServices01/weekly-availability/internal/validators"
)

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := validators.Register(); err != nil {
		t.Fatal(err)
	}

	store := audit.NewMemoryStore()
	dispatcher := audit.NewDispatcher(store, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = dispatcher.Close(ctx)
	})

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config: &config.Config{
			JWTSecret:          "test-secret",
			JWTTTL:             time.Hour,
			RateLimitPerMinute: 1000,
			RateLimitBurst:     1000,
		},
		Log:        zap.NewNop(),
		Repository: repository.NewMemoryRepository(),
		Users:      repository.NewUserMemoryRepository(),
		SlotCache:  cache.Noop{},
		Audit:      dispatcher,
		AuditLogs:  store,
	})

	return &api{t: t, router: r}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *api) register(username string) (token string, id uint) {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		a.t.Fatalf("register %s: %d %s", username, w.Code, w.Body)
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decode(a.t, w, &resp)
	return resp.Token, resp.User.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body, err)
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	decode(t, w, &body)
	return body.Code
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	if w := a.do(http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t)
	token, id := a.register("ana")

	w := a.do(http.MethodGet, "/api/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %s", w.Code, w.Body)
	}
	var me struct {
		User struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	decode(t, w, &me)
	if me.User.ID != id || me.User.Username != "ana" {
		t.Errorf("unexpected me %+v", me)
	}

	w = a.do(http.MethodPost, "/api/auth/register", "", map[string]any{"username": "ana", "password": "secret123"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "username_taken" {
		t.Errorf("duplicate register: %d %s", w.Code, w.Body)
	}

	w = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"username": "ana", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password: expected 401, got %d", w.Code)
	}

	w = a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"username": "ana", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Errorf("login: %d %s", w.Code, w.Body)
	}

	if w := a.do(http.MethodGet, "/api/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous me: expected 401, got %d", w.Code)
	}
}

func TestAvailabilityEndpoints(t *testing.T) {
	a := newAPI(t)
	token, owner := a.register("ana")
	otherToken, _ := a.register("bia")

	window := map[string]any{"weekday": 0, "start_time": "09:00", "end_time": "12:00"}

	if w := a.do(http.MethodPost, "/api/availability", "", window); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: expected 401, got %d", w.Code)
	}

	w := a.do(http.MethodPost, "/api/availability", token, window)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body)
	}
	var created struct {
		ID        uint   `json:"id"`
		User      uint   `json:"user"`
		Weekday   int    `json:"weekday"`
		StartTime string `json:"start_time"`
	}
	decode(t, w, &created)
	if created.User != owner || created.Weekday != 0 || created.StartTime != "09:00" {
		t.Errorf("unexpected window %+v", created)
	}

	w = a.do(http.MethodPost, "/api/availability", token, map[string]any{"weekday": 0, "start_time": "10:00", "end_time": "11:00"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "overlap" {
		t.Errorf("overlap: %d %s", w.Code, w.Body)
	}

	w = a.do(http.MethodPost, "/api/availability", token, map[string]any{"weekday": 1, "start_time": "11:00", "end_time": "10:00"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_range" {
		t.Errorf("invalid range: %d %s", w.Code, w.Body)
	}

	w = a.do(http.MethodPost, "/api/availability", token, map[string]any{"weekday": 7, "start_time": "09:00", "end_time": "10:00"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_input" {
		t.Errorf("bad weekday: %d %s", w.Code, w.Body)
	}

	path := "/api/availability/" + itoa(created.ID)

	if w := a.do(http.MethodPut, path, otherToken, window); w.Code != http.StatusForbidden {
		t.Errorf("foreign update: expected 403, got %d", w.Code)
	}

	w = a.do(http.MethodPut, path, token, map[string]any{"weekday": 0, "start_time": "08:00", "end_time": "12:00"})
	if w.Code != http.StatusOK {
		t.Errorf("update: %d %s", w.Code, w.Body)
	}

	w = a.do(http.MethodGet, "/api/availability?user="+itoa(owner)+"&weekday=0", "", nil)
	var list struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	decode(t, w, &list)
	if list.Total != 1 || list.Data[0]["start_time"] != "08:00" {
		t.Errorf("unexpected list %+v", list)
	}

	if w := a.do(http.MethodGet, "/api/availability/999", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing window: expected 404, got %d", w.Code)
	}

	if w := a.do(http.MethodDelete, path, token, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", w.Code)
	}
	if w := a.do(http.MethodGet, path, "", nil); w.Code != http.StatusNotFound {
		t.Errorf("after delete: expected 404, got %d", w.Code)
	}
}

func TestBookingAndSlotEndpoints(t *testing.T) {
	a := newAPI(t)
	token, owner := a.register("ana")

	w := a.do(http.MethodPost, "/api/availability", token, map[string]any{"weekday": 0, "start_time": "09:00", "end_time": "10:00"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create window: %d %s", w.Code, w.Body)
	}
	var window struct {
		ID uint `json:"id"`
	}
	decode(t, w, &window)

	booking := map[string]any{
		"availability": window.ID,
		"guest_name":   "Carla",
		"date":         "2024-03-04",
		"start_time":   "09:00",
		"end_time":     "09:30",
		"duration":     30,
	}

	w = a.do(http.MethodPost, "/api/bookings", "", booking)
	if w.Code != http.StatusCreated {
		t.Fatalf("create booking: %d %s", w.Code, w.Body)
	}
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, w, &created)

	rejections := []struct {
		name  string
		patch map[string]any
		code  string
	}{
		{name: "overlap", patch: map[string]any{"start_time": "09:15", "end_time": "09:45"}, code: "overlap"},
		{name: "outside window", patch: map[string]any{"start_time": "08:00", "end_time": "08:30"}, code: "outside_window"},
		{name: "duration mismatch", patch: map[string]any{"start_time": "09:30", "end_time": "10:00", "duration": 15}, code: "duration_mismatch"},
		{name: "bad date", patch: map[string]any{"date": "04/03/2024"}, code: "invalid_input"},
		{name: "negative duration", patch: map[string]any{"start_time": "09:30", "end_time": "10:00", "duration": 30 - 24*60}, code: "invalid_input"},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]any{}
			for k, v := range booking {
				body[k] = v
			}
			for k, v := range tt.patch {
				body[k] = v
			}
			w := a.do(http.MethodPost, "/api/bookings", "", body)
			if w.Code != http.StatusBadRequest || errorCode(t, w) != tt.code {
				t.Errorf("expected 400 %s, got %d %s", tt.code, w.Code, w.Body)
			}
		})
	}

	w = a.do(http.MethodGet, "/api/bookings/available-slots?user="+itoa(owner)+"&weekday=0&date=2024-03-04&duration=30", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("slots: %d %s", w.Code, w.Body)
	}
	var slots []struct {
		AvailabilityID uint   `json:"availability_id"`
		StartTime      string `json:"start_time"`
		EndTime        string `json:"end_time"`
		Duration       int    `json:"duration"`
	}
	decode(t, w, &slots)
	if len(slots) != 1 || slots[0].StartTime != "09:30" || slots[0].EndTime != "10:00" || slots[0].AvailabilityID != window.ID {
		t.Errorf("unexpected slots %+v", slots)
	}

	w = a.do(http.MethodGet, "/api/bookings/available-slots?user="+itoa(owner)+"&weekday=3&date=2024-03-07", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Errorf("empty weekday: %d %s", w.Code, w.Body)
	}

	w = a.do(http.MethodGet, "/api/bookings/available-slots?user="+itoa(owner)+"&date=2024-03-04", "", nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_input" {
		t.Errorf("missing weekday: %d %s", w.Code, w.Body)
	}

	if w := a.do(http.MethodGet, "/api/bookings?availability="+itoa(window.ID)+"&date=2024-03-04", "", nil); w.Code != http.StatusOK {
		t.Errorf("list bookings: %d", w.Code)
	}

	bookingPath := "/api/bookings/" + itoa(created.ID)
	if w := a.do(http.MethodDelete, bookingPath, "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous delete: expected 401, got %d", w.Code)
	}
	if w := a.do(http.MethodDelete, bookingPath, token, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete booking: expected 204, got %d", w.Code)
	}
	if w := a.do(http.MethodGet, bookingPath, "", nil); w.Code != http.StatusNotFound {
		t.Errorf("after delete: expected 404, got %d", w.Code)
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
