package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type WindowFilter struct {
	OwnerID *uint
	Weekday *clock.Weekday
}

// BookingFilter narrows ListBookings. An empty AvailabilityIDs means any
// window.
type BookingFilter struct {
	AvailabilityIDs []uint
	Date            *clock.Date
}

type Repository interface {
	// -------- Transactions --------

	// Transaction runs fn against a repository bound to a single storage
	// transaction. Returning an error from fn rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// LockScope blocks other writers of the same scope until the
	// surrounding transaction ends.
	LockScope(
		ctx context.Context,
		scope string,
	) error

	// -------- Windows --------
	GetWindow(
		ctx context.Context,
		id uint,
	) (*models.AvailabilityWindow, error)

	// ListWindows orders by owner, weekday, start time.
	ListWindows(
		ctx context.Context,
		filter WindowFilter,
	) ([]models.AvailabilityWindow, error)

	CreateWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	UpdateWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	// DeleteWindow also deletes the window's bookings.
	DeleteWindow(
		ctx context.Context,
		id uint,
	) error

	// -------- Bookings --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// ListBookings orders by date, start time.
	ListBookings(
		ctx context.Context,
		filter BookingFilter,
	) ([]models.Booking, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		id uint,
	) error
}

// SlotCache stores slot discovery results. Implementations swallow their
// own failures: a miss is always a safe answer.
//
// Get reports the owner's cache version it observed, hit or miss. Set must
// be given that version so a result computed before an Invalidate is never
// stored under the version that Invalidate produced.
type SlotCache interface {
	Get(ctx context.Context, q SlotQuery) ([]Slot, CacheVersion, bool)
	Set(ctx context.Context, q SlotQuery, version CacheVersion, slots []Slot)
	// Invalidate drops every cached result of ownerID.
	Invalidate(ctx context.Context, ownerID uint)
}

// CacheVersion identifies a generation of an owner's cached results.
// NoCacheVersion means the version could not be read and nothing may be
// stored.
type CacheVersion int64

const NoCacheVersion CacheVersion = -1

// WindowScope names the critical section for writes to an owner's windows
// on one weekday.
func WindowScope(ownerID uint, weekday clock.Weekday) string {
	return fmt.Sprintf("window:%d:%d", ownerID, int(weekday))
}

// BookingScope names the critical section for writes to the bookings of
// one window. Window updates and deletes take it too, so a booking is
// never validated against a window that is changing underneath it.
func BookingScope(windowID uint) string {
	return fmt.Sprintf("booking:%d", windowID)
}

// GroupByWindow indexes bookings by availability id.
func GroupByWindow(bookings []models.Booking) map[uint][]models.Booking {
	out := make(map[uint][]models.Booking)
	for _, b := range bookings {
		out[b.AvailabilityID] = append(out[b.AvailabilityID], b)
	}
	return out
}
