package availability

import (
	"time"

	"autorent/internal/domain/shared/daterange"
)

// DefaultMaintenanceBuffer is the turnaround period appended after every
// rental for cleaning and inspection.
const DefaultMaintenanceBuffer = 12 * time.Hour

// MaintenanceWindow is the half-open exclusion period [Start, End) that
// follows a reservation's end.
type MaintenanceWindow struct {
	Start time.Time
	End   time.Time
}

func MaintenanceWindowFor(interval daterange.DateRange, buffer time.Duration) MaintenanceWindow {
	if buffer <= 0 {
		buffer = DefaultMaintenanceBuffer
	}
	return MaintenanceWindow{Start: interval.End, End: interval.End.Add(buffer)}
}

func BuildMaintenanceWindows(intervals []daterange.DateRange, buffer time.Duration) []MaintenanceWindow {
	windows := make([]MaintenanceWindow, 0, len(intervals))
	for _, iv := range intervals {
		windows = append(windows, MaintenanceWindowFor(iv, buffer))
	}
	return windows
}

// WithinMaintenance reports whether the exact instant t falls inside any
// window. Hour-of-day selection uses this check; whole-day calendar marks use
// MaintenanceBlocksDay instead, which widens windows to day boundaries. The
// two must not be collapsed into one: a window ending 09:00 blocks the 08:00
// pickup slot but not the 10:00 one, while the day itself is still marked.
func WithinMaintenance(t time.Time, windows []MaintenanceWindow) bool {
	t = t.UTC()
	for _, w := range windows {
		if !t.Before(w.Start) && t.Before(w.End) {
			return true
		}
	}
	return false
}

// MaintenanceBlocksDay reports whether the calendar day anchored at day is
// touched by any window. A window is widened to the day boundaries of its
// endpoints, so every day from the window's first day through the day its end
// instant falls on counts as blocked.
func MaintenanceBlocksDay(day time.Time, windows []MaintenanceWindow) bool {
	d := daterange.DayStart(day)
	for _, w := range windows {
		first := daterange.DayStart(w.Start)
		last := daterange.DayStart(w.End)
		if !d.Before(first) && !d.After(last) {
			return true
		}
	}
	return false
}
