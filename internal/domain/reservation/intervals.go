package reservation

import (
	"log/slog"
	"sort"
	"time"

	"autorent/internal/domain/shared/daterange"
)

// BuildIntervals normalizes a reservation snapshot into blocked date intervals
// for one vehicle. Records for other vehicles, records that no longer block
// the calendar, and malformed records are skipped; malformed ones are logged
// rather than failing the whole snapshot. The result is stable-sorted by
// interval start.
//
// A date-only endpoint anchors to midnight UTC. A reservation ending on day D
// with no end time blocks through the end of D, so its interval is
// [startDay 00:00, D+1 00:00). With an explicit end time the interval closes
// at that instant instead.
func BuildIntervals(vehicleID VehicleID, snapshot []*Reservation, logger *slog.Logger) []daterange.DateRange {
	if logger == nil {
		logger = slog.Default()
	}
	intervals := make([]daterange.DateRange, 0, len(snapshot))
	for _, rec := range snapshot {
		if rec == nil || rec.VehicleID != vehicleID || !rec.Blocks() {
			continue
		}
		iv, err := rec.Interval()
		if err != nil {
			logger.Warn("dropping malformed reservation record",
				"reservation_id", rec.ID, "vehicle_id", rec.VehicleID, "error", err)
			continue
		}
		intervals = append(intervals, iv)
	}
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return intervals
}

// Interval computes the blocked interval for a single record.
func (r *Reservation) Interval() (daterange.DateRange, error) {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return daterange.DateRange{}, ErrInvalidDates
	}
	start := daterange.DayStart(r.StartDate)
	endDay := daterange.DayStart(r.EndDate)
	if endDay.Before(start) {
		return daterange.DateRange{}, ErrInvalidDates
	}
	if r.StartTime != "" {
		offset, err := ParseTimeOfDay(r.StartTime)
		if err != nil {
			return daterange.DateRange{}, err
		}
		start = start.Add(offset)
	}
	end := endDay.Add(24 * time.Hour)
	if r.EndTime != "" {
		offset, err := ParseTimeOfDay(r.EndTime)
		if err != nil {
			return daterange.DateRange{}, err
		}
		end = endDay.Add(offset)
	}
	return daterange.New(start, end)
}
