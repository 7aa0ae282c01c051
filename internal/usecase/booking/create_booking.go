package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	AvailabilityID uint
	GuestName      string
	Date           clock.Date
	StartTime      clock.TimeOfDay
	EndTime        clock.TimeOfDay
	Duration       int
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	cache domain.SlotCache
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	cache domain.SlotCache,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	name := strings.TrimSpace(in.GuestName)
	if name == "" || in.Date.IsZero() || !in.StartTime.Valid() || !in.EndTime.Valid() {
		return nil, httperr.ErrBusinessMsg(domain.CodeInvalidInput, "Guest name, date, and times are required.")
	}
	if in.Duration <= 0 {
		return nil, httperr.ErrBusinessMsg(domain.CodeInvalidInput, "Duration must be a positive number of minutes.")
	}

	b := &models.Booking{
		AvailabilityID: in.AvailabilityID,
		GuestName:      name,
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Duration:       in.Duration,
	}

	var window *models.AvailabilityWindow

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		// --------------------------------------------------
		// Critical section for this window's bookings
		// --------------------------------------------------
		if err := tx.LockScope(ctx, domain.BookingScope(in.AvailabilityID)); err != nil {
			return err
		}

		w, err := tx.GetWindow(ctx, in.AvailabilityID)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("availability_not_found")
		}
		if err != nil {
			return err
		}
		window = w

		// --------------------------------------------------
		// Snapshot, validate, persist
		// --------------------------------------------------
		existing, err := tx.ListBookings(ctx, domain.BookingFilter{
			AvailabilityIDs: []uint{w.ID},
			Date:            &b.Date,
		})
		if err != nil {
			return err
		}

		if err := domain.ValidateBooking(b, w, existing); err != nil {
			return err
		}

		err = tx.CreateBooking(ctx, b)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return httperr.ErrBusinessMsg(domain.CodeOverlap, "Booking overlaps with another booking.")
		case errors.Is(err, domain.ErrNotFound):
			return httperr.ErrNotFound("availability_not_found")
		}
		return err
	})

	if err != nil {
		if be, ok := httperr.AsBusiness(err); ok && window != nil {
			uc.audit.Dispatch(audit.Event{
				OwnerID:  window.UserID,
				Action:   "booking_rejected",
				Entity:   "availability",
				EntityID: &window.ID,
				Metadata: map[string]any{
					"code":       be.Code,
					"date":       in.Date.String(),
					"start_time": in.StartTime.String(),
					"end_time":   in.EndTime.String(),
					"duration":   in.Duration,
				},
			})
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, window.UserID)

	uc.audit.Dispatch(audit.Event{
		OwnerID:  window.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"availability": b.AvailabilityID,
			"guest_name":   b.GuestName,
			"date":         b.Date.String(),
			"start_time":   b.StartTime.String(),
			"end_time":     b.EndTime.String(),
		},
	})

	return b, nil
}
