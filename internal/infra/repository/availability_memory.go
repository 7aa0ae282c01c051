package repository

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

// MemoryRepository keeps windows and bookings in process. Transactions
// are serialized by a single mutex and roll back by restoring a copy of
// the maps, which makes every scope lock implicit.
type MemoryRepository struct {
	txMu sync.Mutex
	*memoryStore
}

type memoryStore struct {
	mu       sync.RWMutex
	windows  map[uint]models.AvailabilityWindow
	bookings map[uint]models.Booking
	nextID   uint
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		memoryStore: &memoryStore{
			windows:  make(map[uint]models.AvailabilityWindow),
			bookings: make(map[uint]models.Booking),
			now:      time.Now,
		},
	}
}

func (r *MemoryRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.RLock()
	windows := maps.Clone(r.windows)
	bookings := maps.Clone(r.bookings)
	nextID := r.nextID
	r.mu.RUnlock()

	if err := fn(memoryTx{r.memoryStore}); err != nil {
		r.mu.Lock()
		r.windows, r.bookings, r.nextID = windows, bookings, nextID
		r.mu.Unlock()
		return err
	}
	return nil
}

// memoryTx is the repository handed to a running transaction. Nested
// transactions join the outer one.
type memoryTx struct {
	*memoryStore
}

func (t memoryTx) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return fn(t)
}

func (s *memoryStore) LockScope(ctx context.Context, scope string) error {
	return ctx.Err()
}

func (s *memoryStore) GetWindow(
	ctx context.Context,
	id uint,
) (*models.AvailabilityWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.windows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (s *memoryStore) ListWindows(
	ctx context.Context,
	filter domain.WindowFilter,
) ([]models.AvailabilityWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AvailabilityWindow
	for _, w := range s.windows {
		if filter.OwnerID != nil && w.UserID != *filter.OwnerID {
			continue
		}
		if filter.Weekday != nil && w.Weekday != *filter.Weekday {
			continue
		}
		out = append(out, w)
	}

	slices.SortFunc(out, func(a, b models.AvailabilityWindow) int {
		return cmp.Or(
			cmp.Compare(a.UserID, b.UserID),
			cmp.Compare(a.Weekday, b.Weekday),
			cmp.Compare(a.StartTime, b.StartTime),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return out, nil
}

func (s *memoryStore) CreateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.windowTaken(w) {
		return domain.ErrDuplicate
	}

	s.nextID++
	w.ID = s.nextID
	w.CreatedAt = s.now()
	w.UpdatedAt = w.CreatedAt
	s.windows[w.ID] = *w
	return nil
}

func (s *memoryStore) UpdateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.windows[w.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if s.windowTaken(w) {
		return domain.ErrDuplicate
	}

	stored.Weekday = w.Weekday
	stored.StartTime = w.StartTime
	stored.EndTime = w.EndTime
	stored.UpdatedAt = s.now()
	s.windows[w.ID] = stored
	*w = stored
	return nil
}

func (s *memoryStore) DeleteWindow(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.windows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.windows, id)
	maps.DeleteFunc(s.bookings, func(_ uint, b models.Booking) bool {
		return b.AvailabilityID == id
	})
	return nil
}

func (s *memoryStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *memoryStore) ListBookings(
	ctx context.Context,
	filter domain.BookingFilter,
) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if len(filter.AvailabilityIDs) > 0 && !slices.Contains(filter.AvailabilityIDs, b.AvailabilityID) {
			continue
		}
		if filter.Date != nil && !b.Date.Equal(*filter.Date) {
			continue
		}
		out = append(out, b)
	}

	slices.SortFunc(out, func(a, b models.Booking) int {
		return cmp.Or(
			a.Date.Time().Compare(b.Date.Time()),
			cmp.Compare(a.StartTime, b.StartTime),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return out, nil
}

func (s *memoryStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.windows[b.AvailabilityID]; !ok {
		return domain.ErrNotFound
	}
	for _, other := range s.bookings {
		if other.AvailabilityID == b.AvailabilityID && other.Date.Equal(b.Date) &&
			other.StartTime == b.StartTime && other.EndTime == b.EndTime {
			return domain.ErrDuplicate
		}
	}

	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = s.now()
	s.bookings[b.ID] = *b
	return nil
}

func (s *memoryStore) DeleteBooking(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

// windowTaken mirrors the (user, weekday, start, end) unique index.
func (s *memoryStore) windowTaken(w *models.AvailabilityWindow) bool {
	for id, other := range s.windows {
		if id != w.ID && other.UserID == w.UserID && other.Weekday == w.Weekday &&
			other.StartTime == w.StartTime && other.EndTime == w.EndTime {
			return true
		}
	}
	return false
}

// Compile-time checks
var (
	_ domain.Repository = (*MemoryRepository)(nil)
	_ domain.Repository = memoryTx{}
)
