package availability

import (
	"time"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

// ValidateBooking checks a candidate booking against its window and the
// bookings already taken on the same window and date. existing must not
// contain the candidate's own stored version.
//
// Checks run in a fixed order and stop at the first failure: containment,
// ordering, duration, overlap.
func ValidateBooking(
	candidate *models.Booking,
	window *models.AvailabilityWindow,
	existing []models.Booking,
) error {

	if candidate.StartTime < window.StartTime || candidate.EndTime > window.EndTime {
		return httperr.ErrBusinessMsg(CodeOutsideWindow, "Booking must fit within the available slot.")
	}

	if candidate.StartTime >= candidate.EndTime {
		return rejectInvalidRange("Booking start time must be before end time.")
	}

	if candidate.Duration <= 0 {
		return httperr.ErrBusinessMsg(CodeDurationMismatch, "End time does not match duration.")
	}

	// The addition runs on the full date so a duration that crosses
	// midnight wraps the same way a calendar would.
	expectedEnd := candidate.Date.
		At(candidate.StartTime).
		Add(time.Duration(candidate.Duration) * time.Minute)
	if clock.TimeOfDayOf(expectedEnd) != candidate.EndTime {
		return httperr.ErrBusinessMsg(CodeDurationMismatch, "End time does not match duration.")
	}

	for _, b := range existing {
		if Overlaps(candidate.StartTime, candidate.EndTime, b.StartTime, b.EndTime) {
			return rejectOverlap("Booking overlaps with another booking.")
		}
	}

	return nil
}
