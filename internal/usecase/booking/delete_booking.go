package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
)

type DeleteBooking struct {
	repo  domain.Repository
	cache domain.SlotCache
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	cache domain.SlotCache,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute removes a booking. Only the owner of the booking's window may
// do so.
func (uc *DeleteBooking) Execute(
	ctx context.Context,
	ownerID uint,
	bookingID uint,
) error {

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("booking_not_found")
		}
		if err != nil {
			return err
		}

		if err := tx.LockScope(ctx, domain.BookingScope(b.AvailabilityID)); err != nil {
			return err
		}

		w, err := tx.GetWindow(ctx, b.AvailabilityID)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("booking_not_found")
		}
		if err != nil {
			return err
		}
		if w.UserID != ownerID {
			return httperr.ErrForbidden("not_owner")
		}

		err = tx.DeleteBooking(ctx, b.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("booking_not_found")
		}
		return err
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, ownerID)

	uc.audit.Dispatch(audit.Event{
		OwnerID:  ownerID,
		ActorID:  &ownerID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}
