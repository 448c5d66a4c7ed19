package availability

import (
	"time"

	"autorent/internal/domain/shared/daterange"
)

// EarliestFutureStart returns the start day of the first reservation that
// begins strictly after today. It backs the rule that a rental must not span
// across a later booking even when the days around it look free: direct
// overlap is caught per day, but a pickup before the future start combined
// with a return at or past it would straddle someone else's booking.
func EarliestFutureStart(intervals []daterange.DateRange, today time.Time) (time.Time, bool) {
	todayDay := daterange.DayStart(today)
	var earliest time.Time
	for _, iv := range intervals {
		startDay := daterange.DayStart(iv.Start)
		if !startDay.After(todayDay) {
			continue
		}
		if earliest.IsZero() || startDay.Before(earliest) {
			earliest = startDay
		}
	}
	return earliest, !earliest.IsZero()
}

// NextFreeDate returns the first day the vehicle is back in service when a
// rental is already underway on today, counting the maintenance window that
// follows it. ok is false when nothing is ongoing.
func NextFreeDate(intervals []daterange.DateRange, today time.Time, buffer time.Duration) (time.Time, bool) {
	todayDay := daterange.DayStart(today)
	var marker time.Time
	for _, iv := range intervals {
		startDay := daterange.DayStart(iv.Start)
		if startDay.After(todayDay) {
			continue
		}
		window := MaintenanceWindowFor(iv, buffer)
		lastBlocked := daterange.DayStart(window.End)
		if lastBlocked.Before(todayDay) {
			continue
		}
		free := lastBlocked.Add(24 * time.Hour)
		if free.After(marker) {
			marker = free
		}
	}
	return marker, !marker.IsZero()
}
