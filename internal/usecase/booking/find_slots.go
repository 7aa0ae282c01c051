package booking

import (
	"context"

	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
)

type FindAvailableSlots struct {
	repo  domain.Repository
	cache domain.SlotCache
}

func NewFindAvailableSlots(
	repo domain.Repository,
	cache domain.SlotCache,
) *FindAvailableSlots {
	return &FindAvailableSlots{
		repo:  repo,
		cache: cache,
	}
}

// Execute returns the free slots of q.Duration minutes on q.Date across
// the owner's windows for q.Weekday. An owner with no windows that day
// gets an empty list.
func (uc *FindAvailableSlots) Execute(
	ctx context.Context,
	q domain.SlotQuery,
) ([]domain.Slot, error) {

	cached, version, ok := uc.cache.Get(ctx, q)
	if ok {
		return cached, nil
	}

	windows, err := uc.repo.ListWindows(ctx, domain.WindowFilter{
		OwnerID: &q.OwnerID,
		Weekday: &q.Weekday,
	})
	if err != nil {
		return nil, err
	}

	slots := []domain.Slot{}
	if len(windows) > 0 {
		ids := make([]uint, 0, len(windows))
		for _, w := range windows {
			ids = append(ids, w.ID)
		}

		bookings, err := uc.repo.ListBookings(ctx, domain.BookingFilter{
			AvailabilityIDs: ids,
			Date:            &q.Date,
		})
		if err != nil {
			return nil, err
		}

		slots = domain.FindSlots(windows, domain.GroupByWindow(bookings), q.Date, q.Duration)
	}

	uc.cache.Set(ctx, q, version, slots)
	return slots, nil
}
