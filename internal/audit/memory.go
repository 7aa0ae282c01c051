package audit

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

// MemoryStore keeps audit rows in process.
type MemoryStore struct {
	mu   sync.RWMutex
	rows []models.AuditLog
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Save(ctx context.Context, ev Event) error {
	var meta string
	if ev.Metadata != nil {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return err
		}
		meta = string(b)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, models.AuditLog{
		ID:        uint(len(s.rows) + 1),
		OwnerID:   ev.OwnerID,
		ActorID:   ev.ActorID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  meta,
		CreatedAt: s.now(),
	})
	return nil
}

func (s *MemoryStore) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.AuditLog
	for _, row := range slices.Backward(s.rows) {
		if row.OwnerID != f.OwnerID {
			continue
		}
		if f.Action != "" && row.Action != f.Action {
			continue
		}
		if f.Entity != "" && row.Entity != f.Entity {
			continue
		}
		if f.From != nil && row.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !row.CreatedAt.Before(f.To.Add(24*time.Hour)) {
			continue
		}
		matched = append(matched, row)
	}

	total := int64(len(matched))
	start := min(f.Offset(), len(matched))
	end := min(start+f.Limit, len(matched))
	return matched[start:end], total, nil
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Reader = (*MemoryStore)(nil)
	_ Store  = (*GormStore)(nil)
	_ Reader = (*GormStore)(nil)
)
