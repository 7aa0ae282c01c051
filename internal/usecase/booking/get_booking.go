package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(ctx context.Context, bookingID uint) (*models.Booking, error) {
	b, err := uc.repo.GetBooking(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	return b, err
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute lists bookings ordered by date and start time, optionally
// restricted to one window and one date.
func (uc *ListBookings) Execute(
	ctx context.Context,
	availabilityID *uint,
	date *clock.Date,
) ([]models.Booking, error) {

	filter := domain.BookingFilter{Date: date}
	if availabilityID != nil {
		filter.AvailabilityIDs = []uint{*availabilityID}
	}
	return uc.repo.ListBookings(ctx, filter)
}
