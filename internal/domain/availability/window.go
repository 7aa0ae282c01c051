package availability

import (
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

// ValidateWindow checks a candidate window against the other windows of
// the same owner and weekday. existing must not contain the candidate's
// own stored version.
func ValidateWindow(
	candidate *models.AvailabilityWindow,
	existing []models.AvailabilityWindow,
) error {

	if candidate.StartTime >= candidate.EndTime {
		return rejectInvalidRange("Start time must be before end time.")
	}

	for _, w := range existing {
		if Overlaps(candidate.StartTime, candidate.EndTime, w.StartTime, w.EndTime) {
			return rejectOverlap("Availability overlaps with another slot.")
		}
	}

	return nil
}

// ValidateResize checks that every booking of a window still fits inside
// the window's new range.
func ValidateResize(
	window *models.AvailabilityWindow,
	bookings []models.Booking,
) error {

	for _, b := range bookings {
		if b.StartTime < window.StartTime || b.EndTime > window.EndTime {
			return httperr.ErrBusinessMsg(
				CodeBookingsOutsideWindow,
				"Existing bookings fall outside the new time range.",
			)
		}
	}

	return nil
}
