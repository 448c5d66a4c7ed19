package availability

import (
	"time"

	"autorent/internal/domain/shared/daterange"
)

// SameDayPickupLead is the minimum head start required before a pickup on the
// current day: a customer cannot collect a car less than two hours from now.
const SameDayPickupLead = 2 * time.Hour

// HourSlot is one selectable time-of-day option for an endpoint.
type HourSlot struct {
	Label     string
	At        time.Time
	Available bool
}

// HourSlots lists the hourly options for the given day between openHour and
// closeHour inclusive. Slots inside a maintenance window are checked at the
// exact instant, not at day granularity. When the day is today, slots earlier
// than now+SameDayPickupLead are unavailable; now is an explicit input so the
// computation stays a pure function.
func (e *Evaluator) HourSlots(day time.Time, role EndpointRole, now time.Time, openHour, closeHour int) []HourSlot {
	if openHour < 0 || closeHour > 23 || openHour > closeHour {
		openHour, closeHour = 8, 20
	}
	dayStart := daterange.DayStart(day)
	var earliest time.Time
	if role == RolePickup && daterange.SameDay(day, now) {
		earliest = now.UTC().Add(SameDayPickupLead)
	}

	slots := make([]HourSlot, 0, closeHour-openHour+1)
	for h := openHour; h <= closeHour; h++ {
		at := dayStart.Add(time.Duration(h) * time.Hour)
		available := true
		if !earliest.IsZero() && at.Before(earliest) {
			available = false
		}
		if WithinMaintenance(at, e.windows) {
			available = false
		}
		for _, iv := range e.intervals {
			if iv.ContainsInstant(at) {
				available = false
				break
			}
		}
		slots = append(slots, HourSlot{Label: at.Format("15:04"), At: at, Available: available})
	}
	return slots
}
