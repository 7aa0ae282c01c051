package availability

import (
	"testing"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

func hm(t *testing.T, s string) clock.TimeOfDay {
	t.Helper()
	v, err := clock.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return v
}

func window(t *testing.T, id uint, weekday clock.Weekday, start, end string) models.AvailabilityWindow {
	t.Helper()
	return models.AvailabilityWindow{
		ID:        id,
		UserID:    1,
		Weekday:   weekday,
		StartTime: hm(t, start),
		EndTime:   hm(t, end),
	}
}

func booking(t *testing.T, windowID uint, date clock.Date, start, end string, duration int) models.Booking {
	t.Helper()
	return models.Booking{
		AvailabilityID: windowID,
		GuestName:      "Guest",
		Date:           date,
		StartTime:      hm(t, start),
		EndTime:        hm(t, end),
		Duration:       duration,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if code == "" {
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return
	}
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s rejection, got %v", code, err)
	}
}
