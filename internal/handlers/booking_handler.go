package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/weekly-availability/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create *ucBooking.CreateBooking
	delete *ucBooking.DeleteBooking
	get    *ucBooking.GetBooking
	list   *ucBooking.ListBookings
	slots  *ucBooking.FindAvailableSlots
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	delete *ucBooking.DeleteBooking,
	get *ucBooking.GetBooking,
	list *ucBooking.ListBookings,
	slots *ucBooking.FindAvailableSlots,
) *BookingHandler {
	return &BookingHandler{
		create: create,
		delete: delete,
		get:    get,
		list:   list,
		slots:  slots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookingRequest struct {
	Availability uint   `json:"availability" binding:"required"`
	GuestName    string `json:"guest_name" binding:"required,max=100"`
	Date         string `json:"date" binding:"required,isodate"`
	StartTime    string `json:"start_time" binding:"required,clock"`
	EndTime      string `json:"end_time" binding:"required,clock"`
	Duration     int    `json:"duration" binding:"required,min=1"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	availabilityID, ok := queryID(c, "availability")
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	bookings, err := h.list.Execute(c.Request.Context(), availabilityID, date)
	if err != nil {
		httperr.FromError(c, err, "booking_list_failed")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "booking_get_failed")
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	date, _ := clock.ParseDate(req.Date)
	start, _ := clock.ParseTimeOfDay(req.StartTime)
	end, _ := clock.ParseTimeOfDay(req.EndTime)

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		AvailabilityID: req.Availability,
		GuestName:      req.GuestName,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		Duration:       req.Duration,
	})
	if err != nil {
		httperr.FromError(c, err, "booking_create_failed")
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), ownerID, id); err != nil {
		httperr.FromError(c, err, "booking_delete_failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// AvailableSlots answers GET /bookings/available-slots with a bare JSON
// array of free slots.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	q, err := domain.ParseSlotQuery(
		c.Query("user"),
		c.Query("weekday"),
		c.Query("date"),
		c.Query("duration"),
	)
	if err != nil {
		httperr.FromError(c, err, "invalid_input")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, err, "slot_search_failed")
		return
	}

	httpresp.OK(c, slots)
}
