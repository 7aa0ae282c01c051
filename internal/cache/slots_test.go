package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
)

func TestResultKeyChangesWithVersion(t *testing.T) {
	q := domain.SlotQuery{
		OwnerID:  7,
		Weekday:  clock.Tuesday,
		Date:     clock.NewDate(2024, time.March, 5),
		Duration: 30,
	}

	if got := resultKey(q, 0); got != "slots:7:v0:1:2024-03-05:30" {
		t.Errorf("unexpected key %s", got)
	}
	if resultKey(q, 0) == resultKey(q, 1) {
		t.Error("expected version to change the key")
	}
	if got := versionKey(7); got != "slots:ver:7" {
		t.Errorf("unexpected version key %s", got)
	}
}

func TestRedisSlotCacheFailsOpen(t *testing.T) {
	// Nothing listens on this port; every call must degrade to a miss.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisSlotCache(client, time.Minute, nil)
	ctx := context.Background()
	q := domain.SlotQuery{OwnerID: 1, Date: clock.NewDate(2024, time.March, 4), Duration: 15}

	_, v, ok := c.Get(ctx, q)
	if ok {
		t.Error("expected miss when redis is unreachable")
	}
	if v != domain.NoCacheVersion {
		t.Errorf("expected no version, got %d", v)
	}
	c.Set(ctx, q, 0, []domain.Slot{{AvailabilityID: 1}})
	c.Invalidate(ctx, 1)
}

func TestNoopNeverHits(t *testing.T) {
	var c Noop
	q := domain.SlotQuery{OwnerID: 1}
	c.Set(context.Background(), q, 0, []domain.Slot{{AvailabilityID: 1}})
	if _, _, ok := c.Get(context.Background(), q); ok {
		t.Error("expected miss")
	}
}

func newTestCache(t *testing.T) (*RedisSlotCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSlotCache(client, time.Minute, nil), srv
}

func testSlots(t *testing.T) []domain.Slot {
	t.Helper()
	start, err := clock.ParseTimeOfDay("09:00")
	if err != nil {
		t.Fatal(err)
	}
	end, err := clock.ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatal(err)
	}
	return []domain.Slot{{AvailabilityID: 1, StartTime: start, EndTime: end, Duration: 30}}
}

func TestRedisSlotCacheHitAndInvalidate(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()
	q := domain.SlotQuery{OwnerID: 1, Weekday: clock.Monday, Date: clock.NewDate(2024, time.March, 4), Duration: 30}

	_, v, ok := c.Get(ctx, q)
	if ok || v != 0 {
		t.Fatalf("expected miss at version 0, got ok=%v v=%d", ok, v)
	}

	c.Set(ctx, q, v, testSlots(t))
	got, _, ok := c.Get(ctx, q)
	if !ok || len(got) != 1 || got[0].AvailabilityID != 1 {
		t.Fatalf("expected hit, got ok=%v %+v", ok, got)
	}
	if ttl := srv.TTL(resultKey(q, 0)); ttl != time.Minute {
		t.Errorf("expected ttl of one minute, got %s", ttl)
	}

	c.Invalidate(ctx, 1)
	if _, v, ok := c.Get(ctx, q); ok || v != 1 {
		t.Fatalf("expected miss at version 1 after invalidate, got ok=%v v=%d", ok, v)
	}

	other := q
	other.OwnerID = 2
	c.Set(ctx, other, 0, testSlots(t))
	c.Invalidate(ctx, 1)
	if _, _, ok := c.Get(ctx, other); !ok {
		t.Error("expected other owner's entry to survive")
	}
}

func TestRedisSlotCacheSetAfterInvalidateIsNotServed(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	q := domain.SlotQuery{OwnerID: 1, Weekday: clock.Monday, Date: clock.NewDate(2024, time.March, 4), Duration: 30}

	_, v, ok := c.Get(ctx, q)
	if ok {
		t.Fatal("expected miss")
	}

	// A write lands while the reader is still computing its result.
	c.Invalidate(ctx, 1)
	c.Set(ctx, q, v, testSlots(t))

	if got, _, ok := c.Get(ctx, q); ok {
		t.Fatalf("expected result computed before invalidate to be ignored, got %+v", got)
	}
}

func TestRedisSlotCacheCorruptPayloadIsMiss(t *testing.T) {
	c, srv := newTestCache(t)
	q := domain.SlotQuery{OwnerID: 3, Date: clock.NewDate(2024, time.March, 4), Duration: 15}

	if err := srv.Set(resultKey(q, 0), "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, v, ok := c.Get(context.Background(), q); ok || v != 0 {
		t.Errorf("expected miss at version 0, got ok=%v v=%d", ok, v)
	}
}
