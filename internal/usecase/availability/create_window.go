package availability

import (
	"context"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

type WindowInput struct {
	OwnerID   uint
	Weekday   clock.Weekday
	StartTime clock.TimeOfDay
	EndTime   clock.TimeOfDay
}

type CreateWindow struct {
	repo  domain.Repository
	cache domain.SlotCache
	audit *audit.Dispatcher
}

func NewCreateWindow(
	repo domain.Repository,
	cache domain.SlotCache,
	audit *audit.Dispatcher,
) *CreateWindow {
	return &CreateWindow{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *CreateWindow) Execute(
	ctx context.Context,
	in WindowInput,
) (*models.AvailabilityWindow, error) {

	if err := checkRange(in); err != nil {
		return nil, err
	}

	w := &models.AvailabilityWindow{
		UserID:    in.OwnerID,
		Weekday:   in.Weekday,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockScope(ctx, domain.WindowScope(in.OwnerID, in.Weekday)); err != nil {
			return err
		}

		existing, err := tx.ListWindows(ctx, domain.WindowFilter{
			OwnerID: &in.OwnerID,
			Weekday: &in.Weekday,
		})
		if err != nil {
			return err
		}

		if err := domain.ValidateWindow(w, existing); err != nil {
			return err
		}

		return duplicateAsOverlap(tx.CreateWindow(ctx, w))
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.OwnerID)

	uc.audit.Dispatch(audit.Event{
		OwnerID:  in.OwnerID,
		ActorID:  &in.OwnerID,
		Action:   "availability_created",
		Entity:   "availability",
		EntityID: &w.ID,
		Metadata: map[string]any{
			"weekday":    int(w.Weekday),
			"start_time": w.StartTime.String(),
			"end_time":   w.EndTime.String(),
		},
	})

	return w, nil
}
