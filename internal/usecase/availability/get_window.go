package availability

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

type GetWindow struct {
	repo domain.Repository
}

func NewGetWindow(repo domain.Repository) *GetWindow {
	return &GetWindow{repo: repo}
}

func (uc *GetWindow) Execute(
	ctx context.Context,
	windowID uint,
) (*models.AvailabilityWindow, error) {

	w, err := uc.repo.GetWindow(ctx, windowID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("availability_not_found")
	}
	return w, err
}

type ListWindows struct {
	repo domain.Repository
}

func NewListWindows(repo domain.Repository) *ListWindows {
	return &ListWindows{repo: repo}
}

// Execute lists windows ordered by owner, weekday and start time. A nil
// filter field matches everything.
func (uc *ListWindows) Execute(
	ctx context.Context,
	ownerID *uint,
	weekday *clock.Weekday,
) ([]models.AvailabilityWindow, error) {

	return uc.repo.ListWindows(ctx, domain.WindowFilter{
		OwnerID: ownerID,
		Weekday: weekday,
	})
}
