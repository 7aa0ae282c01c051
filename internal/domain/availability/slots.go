package availability

import (
	"cmp"
	"iter"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

const (
	// SlotStep is the scan granularity. It does not depend on the
	// requested duration.
	SlotStep = 15 * time.Minute

	DefaultSlotDuration = 15
)

type Slot struct {
	AvailabilityID uint            `json:"availability_id"`
	StartTime      clock.TimeOfDay `json:"start_time"`
	EndTime        clock.TimeOfDay `json:"end_time"`
	Duration       int             `json:"duration"`
}

type SlotQuery struct {
	OwnerID  uint
	Weekday  clock.Weekday
	Date     clock.Date
	Duration int
}

// ParseSlotQuery builds a SlotQuery from raw query parameters. owner,
// weekday and date are required; an empty duration means
// DefaultSlotDuration.
func ParseSlotQuery(owner, weekday, date, duration string) (SlotQuery, error) {
	owner = strings.TrimSpace(owner)
	weekday = strings.TrimSpace(weekday)
	date = strings.TrimSpace(date)

	if owner == "" || weekday == "" || date == "" {
		return SlotQuery{}, rejectInvalidInput("user, weekday, and date are required.")
	}

	ownerID, err := strconv.ParseUint(owner, 10, 64)
	if err != nil || ownerID == 0 {
		return SlotQuery{}, rejectInvalidInput("Invalid user.")
	}

	wd, err := clock.ParseWeekday(weekday)
	if err != nil {
		return SlotQuery{}, rejectInvalidInput("Invalid weekday. Use 0 (Monday) to 6 (Sunday).")
	}

	d, err := clock.ParseDate(date)
	if err != nil {
		return SlotQuery{}, rejectInvalidInput("Invalid date format. Use YYYY-MM-DD.")
	}

	minutes := DefaultSlotDuration
	if s := strings.TrimSpace(duration); s != "" {
		minutes, err = strconv.Atoi(s)
		if err != nil || minutes <= 0 {
			return SlotQuery{}, rejectInvalidInput("Duration must be a positive number of minutes.")
		}
	}

	return SlotQuery{
		OwnerID:  uint(ownerID),
		Weekday:  wd,
		Date:     d,
		Duration: minutes,
	}, nil
}

// Slots enumerates the free slots of the given duration (minutes) on date.
// bookings holds the bookings of each window on that date, keyed by window
// id. Windows are visited by ascending start time and each window is
// scanned from its start in SlotStep increments; a candidate is emitted
// when it fits in the window and overlaps no booking.
//
// The sequence is restartable and reads only the supplied snapshot.
func Slots(
	windows []models.AvailabilityWindow,
	bookings map[uint][]models.Booking,
	date clock.Date,
	duration int,
) iter.Seq[Slot] {

	ordered := slices.Clone(windows)
	slices.SortStableFunc(ordered, func(a, b models.AvailabilityWindow) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})
	length := time.Duration(duration) * time.Minute

	return func(yield func(Slot) bool) {
		if duration <= 0 {
			return
		}

		for _, w := range ordered {
			windowEnd := date.At(w.EndTime)
			taken := bookings[w.ID]

			for cursor := date.At(w.StartTime); !cursor.Add(length).After(windowEnd); cursor = cursor.Add(SlotStep) {
				start := clock.TimeOfDayOf(cursor)
				end := clock.TimeOfDayOf(cursor.Add(length))

				if overlapsAny(start, end, taken) {
					continue
				}

				if !yield(Slot{
					AvailabilityID: w.ID,
					StartTime:      start,
					EndTime:        end,
					Duration:       duration,
				}) {
					return
				}
			}
		}
	}
}

// FindSlots collects Slots into a list. The result is never nil.
func FindSlots(
	windows []models.AvailabilityWindow,
	bookings map[uint][]models.Booking,
	date clock.Date,
	duration int,
) []Slot {
	out := make([]Slot, 0)
	for s := range Slots(windows, bookings, date, duration) {
		out = append(out, s)
	}
	return out
}

func overlapsAny(start, end clock.TimeOfDay, bookings []models.Booking) bool {
	for _, b := range bookings {
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
