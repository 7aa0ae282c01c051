package availability

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
)

type spyCache struct {
	mu          sync.Mutex
	invalidated []uint
}

func (c *spyCache) Get(context.Context, domain.SlotQuery) ([]domain.Slot, domain.CacheVersion, bool) {
	return nil, domain.NoCacheVersion, false
}

func (c *spyCache) Set(context.Context, domain.SlotQuery, domain.CacheVersion, []domain.Slot) {}

func (c *spyCache) Invalidate(_ context.Context, ownerID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, ownerID)
}

type auditRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (r *auditRecorder) Save(_ context.Context, ev audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, ev.Action)
	return nil
}

type fixture struct {
	repo    *repository.MemoryRepository
	cache   *spyCache
	events  *auditRecorder
	audit   *audit.Dispatcher
	create  *CreateWindow
	update  *UpdateWindow
	delete  *DeleteWindow
	get     *GetWindow
	list    *ListWindows
	flushed bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:   repository.NewMemoryRepository(),
		cache:  &spyCache{},
		events: &auditRecorder{},
	}
	f.audit = audit.NewDispatcher(f.events, nil)
	f.create = NewCreateWindow(f.repo, f.cache, f.audit)
	f.update = NewUpdateWindow(f.repo, f.cache, f.audit)
	f.delete = NewDeleteWindow(f.repo, f.cache, f.audit)
	f.get = NewGetWindow(f.repo)
	f.list = NewListWindows(f.repo)

	t.Cleanup(func() { f.flush(t) })
	return f
}

// flush drains the audit queue; the dispatcher accepts nothing after it.
func (f *fixture) flush(t *testing.T) []string {
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
	return append([]string(nil), f.events.actions...)
}

func hm(t *testing.T, s string) clock.TimeOfDay {
	t.Helper()
	v, err := clock.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return v
}

func input(t *testing.T, owner uint, weekday clock.Weekday, start, end string) WindowInput {
	t.Helper()
	return WindowInput{
		OwnerID:   owner,
		Weekday:   weekday,
		StartTime: hm(t, start),
		EndTime:   hm(t, end),
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s rejection, got %v", code, err)
	}
}
