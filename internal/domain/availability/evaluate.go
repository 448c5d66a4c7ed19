package availability

import (
	"time"

	"autorent/internal/domain/reservation"
	"autorent/internal/domain/shared/daterange"
)

// EndpointRole says which side of the booking selection a date is being
// evaluated for. The two sides share predicates but differ in which ones
// apply: return dates additionally answer to the pickup already chosen.
type EndpointRole string

const (
	RolePickup EndpointRole = "PICKUP"
	RoleReturn EndpointRole = "RETURN"
)

// BlockReason identifies the first predicate that disqualified a date.
type BlockReason string

const (
	ReasonPast                BlockReason = "PAST"
	ReasonAlreadyReserved     BlockReason = "ALREADY_RESERVED"
	ReasonBeforeNextAvailable BlockReason = "BEFORE_NEXT_AVAILABLE"
	ReasonBeforePickup        BlockReason = "BEFORE_PICKUP"
	ReasonFutureReservation   BlockReason = "BLOCKED_BY_FUTURE_RESERVATION"
	ReasonMinimumStay         BlockReason = "MINIMUM_STAY"
	ReasonInvalidDate         BlockReason = "INVALID_DATE"
)

var reasonMessages = map[BlockReason]string{
	ReasonPast:                "date is in the past",
	ReasonAlreadyReserved:     "vehicle is already reserved on this date",
	ReasonBeforeNextAvailable: "vehicle is still out on an ongoing rental",
	ReasonBeforePickup:        "return date must be after the pickup date",
	ReasonFutureReservation:   "rental would overlap an upcoming reservation",
	ReasonMinimumStay:         "rental is shorter than the minimum stay",
	ReasonInvalidDate:         "date could not be evaluated",
}

// Message returns the user-facing explanation for the reason. The UI must
// never show a disabled day without one.
func (r BlockReason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return "date is not selectable"
}

// DayState is the evaluation result for one calendar day. It is recomputed
// for every render and never stored. AlreadyReserved is distinct from Blocked:
// the UI crosses out reserved days and merely dims the rest.
type DayState struct {
	Date            time.Time
	Blocked         bool
	AlreadyReserved bool
	InSelectedRange bool
	PickupEndpoint  bool
	ReturnEndpoint  bool
	ViolatesMinStay bool
	Reason          BlockReason
}

// Selectable reports whether the day can be chosen for the evaluated role.
func (s DayState) Selectable() bool {
	return !s.Blocked
}

// Selected carries the user's partial pickup/return choice into evaluation.
// Zero times mean "not chosen yet".
type Selected struct {
	Pickup time.Time
	Return time.Time
}

func (s Selected) HasPickup() bool { return !s.Pickup.IsZero() }
func (s Selected) HasReturn() bool { return !s.Return.IsZero() }

// Rules are the tunable engine constants.
type Rules struct {
	MinStayDays       int
	MaintenanceBuffer time.Duration
}

// DefaultMinStayDays is the shortest rental length accepted on the return side.
const DefaultMinStayDays = 2

func (r Rules) withDefaults() Rules {
	if r.MinStayDays <= 0 {
		r.MinStayDays = DefaultMinStayDays
	}
	if r.MaintenanceBuffer <= 0 {
		r.MaintenanceBuffer = DefaultMaintenanceBuffer
	}
	return r
}

// Evaluator decides, for a fixed vehicle snapshot and a fixed today, whether
// individual dates are selectable. It holds no mutable state: the same inputs
// always produce the same DayState, so one evaluator may serve any number of
// concurrent renders.
type Evaluator struct {
	vehicleID   reservation.VehicleID
	intervals   []daterange.DateRange
	windows     []MaintenanceWindow
	today       time.Time
	futureStart time.Time
	nextFree    time.Time
	rules       Rules
}

// NewEvaluator builds an evaluator over a normalized interval snapshot.
// Calling it without a vehicle is a caller bug, not a data problem, and
// panics accordingly.
func NewEvaluator(vehicleID reservation.VehicleID, intervals []daterange.DateRange, today time.Time, rules Rules) *Evaluator {
	if vehicleID == "" {
		panic("availability: evaluator requires a vehicle")
	}
	rules = rules.withDefaults()
	e := &Evaluator{
		vehicleID: vehicleID,
		intervals: intervals,
		windows:   BuildMaintenanceWindows(intervals, rules.MaintenanceBuffer),
		today:     daterange.DayStart(today),
		rules:     rules,
	}
	if start, ok := EarliestFutureStart(intervals, e.today); ok {
		e.futureStart = start
	}
	if free, ok := NextFreeDate(intervals, e.today, rules.MaintenanceBuffer); ok {
		e.nextFree = free
	}
	return e
}

func (e *Evaluator) VehicleID() reservation.VehicleID { return e.vehicleID }

func (e *Evaluator) Rules() Rules { return e.rules }

// Evaluate runs the blocking predicates for one date. Precedence is fixed:
// past, already reserved (incl. maintenance at day level), before the
// ongoing-rental marker, before the chosen pickup, crossing a future
// reservation, and finally the advisory minimum-stay check, which flags the
// day without blocking it. The first predicate to fire owns the reason.
func (e *Evaluator) Evaluate(date time.Time, role EndpointRole, sel Selected) DayState {
	if date.IsZero() {
		return DayState{Date: date, Blocked: true, Reason: ReasonInvalidDate}
	}
	day := daterange.DayStart(date)
	state := DayState{Date: day}

	block := func(reason BlockReason) {
		state.Blocked = true
		if state.Reason == "" {
			state.Reason = reason
		}
	}

	if day.Before(e.today) {
		block(ReasonPast)
	}

	if e.dayReserved(day) {
		state.AlreadyReserved = true
		block(ReasonAlreadyReserved)
	}

	if !e.nextFree.IsZero() && day.Before(e.nextFree) {
		block(ReasonBeforeNextAvailable)
	}

	pickupDay := daterange.DayStart(sel.Pickup)
	if role == RoleReturn && sel.HasPickup() {
		if !day.After(pickupDay) {
			block(ReasonBeforePickup)
		}
		if !e.futureStart.IsZero() && pickupDay.Before(e.futureStart) && !day.Before(e.futureStart) {
			block(ReasonFutureReservation)
		}
		if day.After(pickupDay) && day.Sub(pickupDay) < time.Duration(e.rules.MinStayDays)*24*time.Hour {
			state.ViolatesMinStay = true
			if state.Reason == "" {
				state.Reason = ReasonMinimumStay
			}
		}
	}

	if sel.HasPickup() && daterange.SameDay(day, sel.Pickup) {
		state.PickupEndpoint = true
	}
	if sel.HasReturn() && daterange.SameDay(day, sel.Return) {
		state.ReturnEndpoint = true
	}
	if sel.HasPickup() && sel.HasReturn() &&
		day.After(pickupDay) && day.Before(daterange.DayStart(sel.Return)) {
		state.InSelectedRange = true
	}

	return state
}

func (e *Evaluator) dayReserved(day time.Time) bool {
	for _, iv := range e.intervals {
		if iv.ContainsDay(day) {
			return true
		}
	}
	return MaintenanceBlocksDay(day, e.windows)
}
