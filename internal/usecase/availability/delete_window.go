package availability

import (
	"context"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
)

type DeleteWindow struct {
	repo  domain.Repository
	cache domain.SlotCache
	audit *audit.Dispatcher
}

func NewDeleteWindow(
	repo domain.Repository,
	cache domain.SlotCache,
	audit *audit.Dispatcher,
) *DeleteWindow {
	return &DeleteWindow{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute removes a window and, with it, all of its bookings.
func (uc *DeleteWindow) Execute(
	ctx context.Context,
	ownerID uint,
	windowID uint,
) error {

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockScope(ctx, domain.BookingScope(windowID)); err != nil {
			return err
		}

		w, err := ownedWindow(ctx, tx, windowID, ownerID)
		if err != nil {
			return err
		}

		if err := tx.LockScope(ctx, domain.WindowScope(w.UserID, w.Weekday)); err != nil {
			return err
		}

		return tx.DeleteWindow(ctx, w.ID)
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, ownerID)

	uc.audit.Dispatch(audit.Event{
		OwnerID:  ownerID,
		ActorID:  &ownerID,
		Action:   "availability_deleted",
		Entity:   "availability",
		EntityID: &windowID,
	})

	return nil
}
