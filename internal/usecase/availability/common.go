package availability

import (
	"context"
	"errors"
	"slices"

	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

// lockScopes takes every scope in a fixed order so that two writers
// never wait on each other crosswise.
func lockScopes(ctx context.Context, tx domain.Repository, scopes ...string) error {
	slices.Sort(scopes)
	for _, s := range slices.Compact(scopes) {
		if err := tx.LockScope(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(in WindowInput) error {
	if !in.Weekday.Valid() || !in.StartTime.Valid() || !in.EndTime.Valid() {
		return httperr.ErrBusinessMsg(domain.CodeInvalidInput, "Invalid weekday or time.")
	}
	return nil
}

// ownedWindow loads a window and checks that ownerID may change it.
func ownedWindow(
	ctx context.Context,
	repo domain.Repository,
	windowID uint,
	ownerID uint,
) (*models.AvailabilityWindow, error) {

	w, err := repo.GetWindow(ctx, windowID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("availability_not_found")
	}
	if err != nil {
		return nil, err
	}

	if w.UserID != ownerID {
		return nil, httperr.ErrForbidden("not_owner")
	}
	return w, nil
}

func withoutWindow(ws []models.AvailabilityWindow, id uint) []models.AvailabilityWindow {
	return slices.DeleteFunc(ws, func(w models.AvailabilityWindow) bool {
		return w.ID == id
	})
}

func duplicateAsOverlap(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return httperr.ErrBusinessMsg(domain.CodeOverlap, "Availability overlaps with another slot.")
	}
	return err
}
