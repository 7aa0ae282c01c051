package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/infra/repository"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

type cacheKey struct {
	q domain.SlotQuery
	v domain.CacheVersion
}

// mapCache is an in-process SlotCache with a version counter per owner.
type mapCache struct {
	mu       sync.Mutex
	versions map[uint]domain.CacheVersion
	entries  map[cacheKey][]domain.Slot
	hits     int
}

func newMapCache() *mapCache {
	return &mapCache{
		versions: make(map[uint]domain.CacheVersion),
		entries:  make(map[cacheKey][]domain.Slot),
	}
}

func (c *mapCache) Get(_ context.Context, q domain.SlotQuery) ([]domain.Slot, domain.CacheVersion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.versions[q.OwnerID]
	s, ok := c.entries[cacheKey{q, v}]
	if ok {
		c.hits++
	}
	return s, v, ok
}

func (c *mapCache) Set(_ context.Context, q domain.SlotQuery, v domain.CacheVersion, slots []domain.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{q, v}] = slots
}

func (c *mapCache) Invalidate(_ context.Context, ownerID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[ownerID]++
}

type auditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *auditRecorder) Save(_ context.Context, ev audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

type fixture struct {
	repo    *repository.MemoryRepository
	cache   *mapCache
	events  *auditRecorder
	audit   *audit.Dispatcher
	create  *CreateBooking
	delete  *DeleteBooking
	get     *GetBooking
	list    *ListBookings
	slots   *FindAvailableSlots
	flushed bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:   repository.NewMemoryRepository(),
		cache:  newMapCache(),
		events: &auditRecorder{},
	}
	f.audit = audit.NewDispatcher(f.events, nil)
	f.create = NewCreateBooking(f.repo, f.cache, f.audit)
	f.delete = NewDeleteBooking(f.repo, f.cache, f.audit)
	f.get = NewGetBooking(f.repo)
	f.list = NewListBookings(f.repo)
	f.slots = NewFindAvailableSlots(f.repo, f.cache)

	t.Cleanup(func() { f.flush(t) })
	return f
}

func (f *fixture) flush(t *testing.T) []audit.Event {
	t.Helper()
	if !f.flushed {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := f.audit.Close(ctx); err != nil {
			t.Fatalf("audit close: %v", err)
		}
		f.flushed = true
	}

	f.events.mu.Lock()
	defer f.events.mu.Unlock()
	return append([]audit.Event(nil), f.events.events...)
}

func (f *fixture) window(t *testing.T, owner uint, weekday clock.Weekday, start, end string) *models.AvailabilityWindow {
	t.Helper()
	w := &models.AvailabilityWindow{
		UserID:    owner,
		Weekday:   weekday,
		StartTime: hm(t, start),
		EndTime:   hm(t, end),
	}
	if err := f.repo.CreateWindow(context.Background(), w); err != nil {
		t.Fatalf("seed window: %v", err)
	}
	return w
}

var monday = clock.NewDate(2024, time.March, 4)

func hm(t *testing.T, s string) clock.TimeOfDay {
	t.Helper()
	v, err := clock.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return v
}

func bookingInput(t *testing.T, windowID uint, start, end string, duration int) CreateBookingInput {
	t.Helper()
	return CreateBookingInput{
		AvailabilityID: windowID,
		GuestName:      "Ana",
		Date:           monday,
		StartTime:      hm(t, start),
		EndTime:        hm(t, end),
		Duration:       duration,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s rejection, got %v", code, err)
	}
}
