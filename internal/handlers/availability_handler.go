package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/httpresp"
	ucAvailability "github.com/BruksfildServices01/weekly-availability/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	create *ucAvailability.CreateWindow
	update *ucAvailability.UpdateWindow
	delete *ucAvailability.DeleteWindow
	get    *ucAvailability.GetWindow
	list   *ucAvailability.ListWindows
}

func NewAvailabilityHandler(
	create *ucAvailability.CreateWindow,
	update *ucAvailability.UpdateWindow,
	delete *ucAvailability.DeleteWindow,
	get *ucAvailability.GetWindow,
	list *ucAvailability.ListWindows,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		create: create,
		update: update,
		delete: delete,
		get:    get,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WindowRequest struct {
	Weekday   *int   `json:"weekday" binding:"required,weekday"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time" binding:"required,clock"`
}

// input converts an already validated request.
func (r WindowRequest) input(ownerID uint) ucAvailability.WindowInput {
	start, _ := clock.ParseTimeOfDay(r.StartTime)
	end, _ := clock.ParseTimeOfDay(r.EndTime)
	return ucAvailability.WindowInput{
		OwnerID:   ownerID,
		Weekday:   clock.Weekday(*r.Weekday),
		StartTime: start,
		EndTime:   end,
	}
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	ownerID, ok := queryID(c, "user")
	if !ok {
		return
	}
	weekday, ok := queryWeekday(c, "weekday")
	if !ok {
		return
	}

	windows, err := h.list.Execute(c.Request.Context(), ownerID, weekday)
	if err != nil {
		httperr.FromError(c, err, "availability_list_failed")
		return
	}

	httpresp.List(c, windows)
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	w, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "availability_get_failed")
		return
	}

	httpresp.OK(c, w)
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	w, err := h.create.Execute(c.Request.Context(), req.input(ownerID))
	if err != nil {
		httperr.FromError(c, err, "availability_create_failed")
		return
	}

	httpresp.Created(c, w)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	w, err := h.update.Execute(c.Request.Context(), id, req.input(ownerID))
	if err != nil {
		httperr.FromError(c, err, "availability_update_failed")
		return
	}

	httpresp.OK(c, w)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), ownerID, id); err != nil {
		httperr.FromError(c, err, "availability_delete_failed")
		return
	}

	c.Status(http.StatusNoContent)
}
