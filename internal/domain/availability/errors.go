package availability

import "github.com/BruksfildServices01/weekly-availability/internal/httperr"

// Rejection codes. Every one of them is a deterministic function of the
// input, so callers must not retry.
const (
	CodeInvalidRange     = "invalid_range"
	CodeOverlap          = "overlap"
	CodeOutsideWindow    = "outside_window"
	CodeDurationMismatch = "duration_mismatch"
	CodeInvalidInput     = "invalid_input"

	// CodeBookingsOutsideWindow rejects a window change that would strand
	// existing bookings.
	CodeBookingsOutsideWindow = "bookings_outside_window"
)

func rejectInvalidRange(message string) error {
	return httperr.ErrBusinessMsg(CodeInvalidRange, message)
}

func rejectOverlap(message string) error {
	return httperr.ErrBusinessMsg(CodeOverlap, message)
}

func rejectInvalidInput(message string) error {
	return httperr.ErrBusinessMsg(CodeInvalidInput, message)
}
