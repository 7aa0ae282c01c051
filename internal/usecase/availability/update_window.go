package availability

import (
	"context"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

type UpdateWindow struct {
	repo  domain.Repository
	cache domain.SlotCache
	audit *audit.Dispatcher
}

func NewUpdateWindow(
	repo domain.Repository,
	cache domain.SlotCache,
	audit *audit.Dispatcher,
) *UpdateWindow {
	return &UpdateWindow{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute replaces the weekday and range of a window owned by
// in.OwnerID. The window's stored version is left out of the overlap
// snapshot, and its bookings must still fit the new range.
func (uc *UpdateWindow) Execute(
	ctx context.Context,
	windowID uint,
	in WindowInput,
) (*models.AvailabilityWindow, error) {

	if err := checkRange(in); err != nil {
		return nil, err
	}

	var (
		updated  *models.AvailabilityWindow
		previous models.AvailabilityWindow
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockScope(ctx, domain.BookingScope(windowID)); err != nil {
			return err
		}

		w, err := ownedWindow(ctx, tx, windowID, in.OwnerID)
		if err != nil {
			return err
		}
		previous = *w

		if err := lockScopes(ctx, tx,
			domain.WindowScope(w.UserID, w.Weekday),
			domain.WindowScope(w.UserID, in.Weekday),
		); err != nil {
			return err
		}

		w.Weekday = in.Weekday
		w.StartTime = in.StartTime
		w.EndTime = in.EndTime

		existing, err := tx.ListWindows(ctx, domain.WindowFilter{
			OwnerID: &w.UserID,
			Weekday: &w.Weekday,
		})
		if err != nil {
			return err
		}

		if err := domain.ValidateWindow(w, withoutWindow(existing, w.ID)); err != nil {
			return err
		}

		bookings, err := tx.ListBookings(ctx, domain.BookingFilter{
			AvailabilityIDs: []uint{w.ID},
		})
		if err != nil {
			return err
		}

		if err := domain.ValidateResize(w, bookings); err != nil {
			return err
		}

		if err := tx.UpdateWindow(ctx, w); err != nil {
			return duplicateAsOverlap(err)
		}

		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, updated.UserID)

	uc.audit.Dispatch(audit.Event{
		OwnerID:  updated.UserID,
		ActorID:  &in.OwnerID,
		Action:   "availability_updated",
		Entity:   "availability",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"from": map[string]any{
				"weekday":    int(previous.Weekday),
				"start_time": previous.StartTime.String(),
				"end_time":   previous.EndTime.String(),
			},
			"to": map[string]any{
				"weekday":    int(updated.Weekday),
				"start_time": updated.StartTime.String(),
				"end_time":   updated.EndTime.String(),
			},
		},
	})

	return updated, nil
}
