package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autorent/internal/domain/shared/daterange"
)

func interval(start, end time.Time) daterange.DateRange {
	return daterange.DateRange{Start: start, End: end}
}

// reservation 10th..15th with no end time: interval [10th, 16th)
func juneReservation() []daterange.DateRange {
	return []daterange.DateRange{interval(day(2024, 6, 10), day(2024, 6, 16))}
}

func TestEvaluatorRequiresVehicle(t *testing.T) {
	assert.Panics(t, func() {
		NewEvaluator("", nil, day(2024, 6, 1), Rules{})
	})
}

func TestPastDatesBlocked(t *testing.T) {
	e := NewEvaluator("veh-1", nil, day(2024, 6, 5), Rules{})

	state := e.Evaluate(day(2024, 6, 4), RolePickup, Selected{})
	assert.True(t, state.Blocked)
	assert.Equal(t, ReasonPast, state.Reason)

	// today itself is never past
	state = e.Evaluate(day(2024, 6, 5), RolePickup, Selected{})
	assert.False(t, state.Blocked)
	assert.Empty(t, state.Reason)
}

func TestReservedDaysMarked(t *testing.T) {
	e := NewEvaluator("veh-1", juneReservation(), day(2024, 6, 1), Rules{})

	for d := 10; d <= 15; d++ {
		state := e.Evaluate(day(2024, 6, d), RolePickup, Selected{})
		assert.True(t, state.AlreadyReserved, "day %d", d)
		assert.True(t, state.Blocked, "day %d", d)
		assert.Equal(t, ReasonAlreadyReserved, state.Reason, "day %d", d)
	}
}

// Scenario: one reservation 2024-06-10..2024-06-15. The interval closes at
// the 16th 00:00, the maintenance window runs until the 16th 12:00, so the
// 16th is marked at day level and the 17th is free.
func TestMaintenanceDayAfterReservation(t *testing.T) {
	e := NewEvaluator("veh-1", juneReservation(), day(2024, 6, 1), Rules{})

	state := e.Evaluate(day(2024, 6, 16), RolePickup, Selected{})
	assert.True(t, state.Blocked)
	assert.True(t, state.AlreadyReserved)
	assert.Equal(t, ReasonAlreadyReserved, state.Reason)

	state = e.Evaluate(day(2024, 6, 17), RolePickup, Selected{})
	assert.False(t, state.Blocked)
	assert.False(t, state.AlreadyReserved)
}

func TestReturnBeforePickupBlocked(t *testing.T) {
	e := NewEvaluator("veh-1", nil, day(2024, 6, 1), Rules{})
	sel := Selected{Pickup: day(2024, 6, 20)}

	state := e.Evaluate(day(2024, 6, 18), RoleReturn, sel)
	assert.True(t, state.Blocked)
	assert.Equal(t, ReasonBeforePickup, state.Reason)

	state = e.Evaluate(day(2024, 6, 20), RoleReturn, sel)
	assert.True(t, state.Blocked, "return on the pickup day itself is blocked")
	assert.Equal(t, ReasonBeforePickup, state.Reason)
}

// Scenario: pickup 07-01, a future reservation starting 07-10. Any return at
// or past the future start would straddle that booking.
func TestReturnCrossingFutureReservation(t *testing.T) {
	intervals := []daterange.DateRange{interval(day(2024, 7, 10), day(2024, 7, 12))}
	e := NewEvaluator("veh-1", intervals, day(2024, 6, 25), Rules{})
	sel := Selected{Pickup: day(2024, 7, 1)}

	state := e.Evaluate(day(2024, 7, 13), RoleReturn, sel)
	assert.True(t, state.Blocked)
	assert.Equal(t, ReasonFutureReservation, state.Reason)
	assert.False(t, state.AlreadyReserved, "the 13th itself is not a reserved day")

	// days strictly before the future start stay selectable
	state = e.Evaluate(day(2024, 7, 8), RoleReturn, sel)
	assert.False(t, state.Blocked)
}

// Scenario: pickup at/after the future reservation's start never crosses it.
func TestPickupAtOrAfterFutureStartDoesNotCross(t *testing.T) {
	intervals := []daterange.DateRange{interval(day(2024, 7, 10), day(2024, 7, 12))}
	e := NewEvaluator("veh-1", intervals, day(2024, 6, 25), Rules{})
	sel := Selected{Pickup: day(2024, 7, 13)}

	state := e.Evaluate(day(2024, 7, 20), RoleReturn, sel)
	assert.False(t, state.Blocked)
	assert.Empty(t, state.Reason)
}

// Scenario: pickup 08-01, candidate return 08-02 is one day later. The day is
// flagged, not blocked, so the UI can explain instead of silently disabling.
func TestMinimumStayAdvisory(t *testing.T) {
	e := NewEvaluator("veh-1", nil, day(2024, 8, 1), Rules{})
	sel := Selected{Pickup: day(2024, 8, 1)}

	state := e.Evaluate(day(2024, 8, 2), RoleReturn, sel)
	assert.True(t, state.ViolatesMinStay)
	assert.False(t, state.Blocked)
	assert.Equal(t, ReasonMinimumStay, state.Reason)

	state = e.Evaluate(day(2024, 8, 3), RoleReturn, sel)
	assert.False(t, state.ViolatesMinStay)
	assert.False(t, state.Blocked)
}

func TestMinStayDoesNotApplyToPickupRole(t *testing.T) {
	e := NewEvaluator("veh-1", nil, day(2024, 8, 1), Rules{})
	state := e.Evaluate(day(2024, 8, 2), RolePickup, Selected{Pickup: day(2024, 8, 1)})
	assert.False(t, state.ViolatesMinStay)
}

func TestOngoingRentalBlocksUntilNextFree(t *testing.T) {
	// Rental started before today and runs through the 20th; the vehicle
	// comes back on the 22nd (21st is the maintenance day).
	intervals := []daterange.DateRange{interval(day(2024, 6, 1), day(2024, 6, 21))}
	e := NewEvaluator("veh-1", intervals, day(2024, 6, 10), Rules{})

	state := e.Evaluate(day(2024, 6, 15), RolePickup, Selected{})
	assert.True(t, state.Blocked)
	assert.Equal(t, ReasonAlreadyReserved, state.Reason, "reserved wins precedence over the marker rule")

	state = e.Evaluate(day(2024, 6, 22), RolePickup, Selected{})
	assert.False(t, state.Blocked)
}

// The marker derives from the same intervals that feed the reserved-day
// check, so every day before it is already owned by PAST or ALREADY_RESERVED
// and BEFORE_NEXT_AVAILABLE does not surface as a day reason.
func TestNextFreeMarkerShadowedByReservedDays(t *testing.T) {
	intervals := []daterange.DateRange{interval(day(2024, 6, 1), day(2024, 6, 21))}
	e := NewEvaluator("veh-1", intervals, day(2024, 6, 10), Rules{})

	for d := day(2024, 6, 5); d.Before(day(2024, 6, 22)); d = d.AddDate(0, 0, 1) {
		state := e.Evaluate(d, RolePickup, Selected{})
		require.True(t, state.Blocked, d.Format(time.DateOnly))
		assert.NotEqual(t, ReasonBeforeNextAvailable, state.Reason, d.Format(time.DateOnly))
	}
}

func TestInvalidDateFailsClosedForThatDayOnly(t *testing.T) {
	e := NewEvaluator("veh-1", nil, day(2024, 6, 1), Rules{})

	state := e.Evaluate(time.Time{}, RolePickup, Selected{})
	assert.True(t, state.Blocked)
	assert.Equal(t, ReasonInvalidDate, state.Reason)

	// the evaluator is still usable afterwards
	state = e.Evaluate(day(2024, 6, 2), RolePickup, Selected{})
	assert.False(t, state.Blocked)
}

func TestEvaluateIsPure(t *testing.T) {
	e := NewEvaluator("veh-1", juneReservation(), day(2024, 6, 1), Rules{})
	sel := Selected{Pickup: day(2024, 6, 17), Return: day(2024, 6, 20)}

	first := e.Evaluate(day(2024, 6, 18), RoleReturn, sel)
	second := e.Evaluate(day(2024, 6, 18), RoleReturn, sel)
	assert.Equal(t, first, second)
}

func TestSelectionMarkers(t *testing.T) {
	e := NewEvaluator("veh-1", nil, day(2024, 6, 1), Rules{})
	sel := Selected{Pickup: day(2024, 6, 10), Return: day(2024, 6, 14)}

	pickup := e.Evaluate(day(2024, 6, 10), RoleReturn, sel)
	assert.True(t, pickup.PickupEndpoint)
	assert.False(t, pickup.InSelectedRange)

	mid := e.Evaluate(day(2024, 6, 12), RoleReturn, sel)
	assert.True(t, mid.InSelectedRange)
	assert.False(t, mid.PickupEndpoint)

	ret := e.Evaluate(day(2024, 6, 14), RoleReturn, sel)
	assert.True(t, ret.ReturnEndpoint)
	assert.False(t, ret.InSelectedRange)
}

func TestEveryBlockedReasonHasMessage(t *testing.T) {
	reasons := []BlockReason{
		ReasonPast, ReasonAlreadyReserved, ReasonBeforeNextAvailable,
		ReasonBeforePickup, ReasonFutureReservation, ReasonMinimumStay, ReasonInvalidDate,
	}
	for _, r := range reasons {
		require.NotEmpty(t, r.Message(), "reason %s", r)
	}
}
