package availability

import "github.com/BruksfildServices01/weekly-availability/internal/clock"

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd clock.TimeOfDay) bool {
	return aStart < bEnd && aEnd > bStart
}
