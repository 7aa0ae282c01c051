package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/weekly-availability/internal/infra/repository"
)

func TestRegisterChecksEmailDomain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(repository.NewUserMemoryRepository(), "secret", time.Hour, zap.NewNop())
	h.emailDomainOK = func(_ context.Context, email string) bool { return email == "ana@example.com" }

	r := gin.New()
	r.POST("/register", h.Register)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "known domain", body: `{"username":"ana","email":"Ana@Example.com","password":"secret123"}`, want: http.StatusCreated},
		{name: "unknown domain", body: `{"username":"bia","email":"bia@nowhere.invalid","password":"secret123"}`, want: http.StatusBadRequest},
		{name: "no email", body: `{"username":"caio","password":"secret123"}`, want: http.StatusCreated},
		{name: "short password", body: `{"username":"duda","password":"123"}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body)
			}
		})
	}
}
