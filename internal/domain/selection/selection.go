package selection

import (
	"errors"
	"fmt"
	"time"

	"autorent/internal/domain/availability"
	"autorent/internal/domain/reservation"
	"autorent/internal/domain/shared/daterange"
)

var (
	ErrPickupRequired = errors.New("selection: pickup date must be chosen first")
	ErrPickupTooSoon  = errors.New("selection: pickup time is less than two hours away")
)

// Rejected is returned when an endpoint choice fails an availability
// predicate. The selection is left untouched; Reason explains which rule
// fired so the UI can show it.
type Rejected struct {
	Reason availability.BlockReason
}

func (r *Rejected) Error() string {
	return fmt.Sprintf("selection: date rejected: %s", r.Reason.Message())
}

// Selection is the two-sided pickup/return choice for one vehicle. The zero
// value of a date field means "not chosen yet". All mutation goes through
// Controller so the pickup-before-return and minimum-stay invariants cannot
// be broken from outside.
type Selection struct {
	VehicleID  reservation.VehicleID
	PickupDate time.Time
	PickupTime string
	ReturnDate time.Time
	ReturnTime string
}

func (s Selection) HasPickup() bool { return !s.PickupDate.IsZero() }
func (s Selection) HasReturn() bool { return !s.ReturnDate.IsZero() }

// Complete reports whether both endpoints are chosen.
func (s Selection) Complete() bool { return s.HasPickup() && s.HasReturn() }

// Selected converts the selection into evaluator inputs.
func (s Selection) Selected() availability.Selected {
	return availability.Selected{Pickup: s.PickupDate, Return: s.ReturnDate}
}

// Controller applies endpoint choices against the availability evaluator and
// keeps the cross-field invariants. It is stateless beyond the snapshot the
// evaluator was built from; each transition takes the current selection and
// returns the next one.
type Controller struct {
	eval *availability.Evaluator
}

func NewController(eval *availability.Evaluator) *Controller {
	if eval == nil {
		panic("selection: controller requires an evaluator")
	}
	return &Controller{eval: eval}
}

// SelectPickup commits a pickup date (and optional time). Changing the
// pickup date, rather than re-confirming it, clears the return side: the
// anchor moved, so everything chosen relative to it is stale. A same-day
// pickup time closer than the lead window is rejected.
func (c *Controller) SelectPickup(sel Selection, date time.Time, timeOfDay string, now time.Time) (Selection, error) {
	state := c.eval.Evaluate(date, availability.RolePickup, availability.Selected{})
	if state.Blocked {
		return sel, &Rejected{Reason: state.Reason}
	}
	if timeOfDay != "" && daterange.SameDay(date, now) {
		offset, err := reservation.ParseTimeOfDay(timeOfDay)
		if err != nil {
			return sel, err
		}
		at := daterange.DayStart(date).Add(offset)
		if at.Before(now.UTC().Add(availability.SameDayPickupLead)) {
			return sel, ErrPickupTooSoon
		}
	}

	changed := !sel.HasPickup() || !daterange.SameDay(sel.PickupDate, date)
	sel.PickupDate = daterange.DayStart(date)
	sel.PickupTime = timeOfDay
	if changed {
		sel.ReturnDate = time.Time{}
		sel.ReturnTime = ""
		return sel, nil
	}
	return c.normalize(sel), nil
}

// SelectReturn commits a return date (and optional time). A date that only
// violates the minimum stay is refused without blocking: the selection stays
// as it was and the caller gets the advisory reason to show.
func (c *Controller) SelectReturn(sel Selection, date time.Time, timeOfDay string) (Selection, error) {
	if !sel.HasPickup() {
		return sel, ErrPickupRequired
	}
	state := c.eval.Evaluate(date, availability.RoleReturn, sel.Selected())
	if state.ViolatesMinStay {
		return sel, &Rejected{Reason: availability.ReasonMinimumStay}
	}
	if state.Blocked {
		return sel, &Rejected{Reason: state.Reason}
	}
	sel.ReturnDate = daterange.DayStart(date)
	sel.ReturnTime = timeOfDay
	return sel, nil
}

// Reset clears the whole selection; called whenever the target vehicle changes.
func (c *Controller) Reset(vehicleID reservation.VehicleID) Selection {
	return Selection{VehicleID: vehicleID}
}

// PickupHours lists selectable pickup times for a day, restricted to at least
// the lead window after now when the day is today.
func (c *Controller) PickupHours(day, now time.Time, openHour, closeHour int) []availability.HourSlot {
	return c.eval.HourSlots(day, availability.RolePickup, now, openHour, closeHour)
}

// ReturnHours lists selectable return times for a day.
func (c *Controller) ReturnHours(day, now time.Time, openHour, closeHour int) []availability.HourSlot {
	return c.eval.HourSlots(day, availability.RoleReturn, now, openHour, closeHour)
}

// normalize repairs an inconsistent selection by dropping the return side.
// The invariant-preserving transitions should make this unreachable; it
// exists so a violation degrades instead of propagating.
func (c *Controller) normalize(sel Selection) Selection {
	if !sel.Complete() {
		return sel
	}
	minStay := time.Duration(c.eval.Rules().MinStayDays) * 24 * time.Hour
	if !sel.ReturnDate.After(sel.PickupDate) || sel.ReturnDate.Sub(sel.PickupDate) < minStay {
		sel.ReturnDate = time.Time{}
		sel.ReturnTime = ""
	}
	return sel
}
