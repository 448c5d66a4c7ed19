package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autorent/internal/domain/availability"
	"autorent/internal/domain/shared/daterange"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newController(intervals []daterange.DateRange, today time.Time) *Controller {
	return NewController(availability.NewEvaluator("veh-1", intervals, today, availability.Rules{}))
}

func TestSelectPickupThenReturn(t *testing.T) {
	c := newController(nil, day(2024, 7, 1))
	sel := c.Reset("veh-1")

	sel, err := c.SelectPickup(sel, day(2024, 7, 5), "10:00", day(2024, 7, 1))
	require.NoError(t, err)
	assert.Equal(t, day(2024, 7, 5), sel.PickupDate)
	assert.Equal(t, "10:00", sel.PickupTime)
	assert.False(t, sel.HasReturn())

	sel, err = c.SelectReturn(sel, day(2024, 7, 8), "18:00")
	require.NoError(t, err)
	assert.True(t, sel.Complete())
	assert.Equal(t, day(2024, 7, 8), sel.ReturnDate)
}

func TestReturnRequiresPickup(t *testing.T) {
	c := newController(nil, day(2024, 7, 1))
	_, err := c.SelectReturn(c.Reset("veh-1"), day(2024, 7, 8), "")
	assert.ErrorIs(t, err, ErrPickupRequired)
}

func TestReturnViolatingMinStayIsNoOp(t *testing.T) {
	c := newController(nil, day(2024, 7, 1))
	sel := c.Reset("veh-1")
	sel, err := c.SelectPickup(sel, day(2024, 7, 5), "", day(2024, 7, 1))
	require.NoError(t, err)

	got, err := c.SelectReturn(sel, day(2024, 7, 6), "")
	var rejected *Rejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, availability.ReasonMinimumStay, rejected.Reason)
	assert.Equal(t, sel, got, "selection is left unchanged")
}

func TestReturnOnBlockedDateRejected(t *testing.T) {
	intervals := []daterange.DateRange{{Start: day(2024, 7, 10), End: day(2024, 7, 12)}}
	c := newController(intervals, day(2024, 7, 1))
	sel := c.Reset("veh-1")
	sel, err := c.SelectPickup(sel, day(2024, 7, 2), "", day(2024, 7, 1))
	require.NoError(t, err)

	_, err = c.SelectReturn(sel, day(2024, 7, 15), "")
	var rejected *Rejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, availability.ReasonFutureReservation, rejected.Reason)
}

func TestChangingPickupClearsReturn(t *testing.T) {
	c := newController(nil, day(2024, 7, 1))
	sel := c.Reset("veh-1")
	sel, err := c.SelectPickup(sel, day(2024, 7, 5), "10:00", day(2024, 7, 1))
	require.NoError(t, err)
	sel, err = c.SelectReturn(sel, day(2024, 7, 9), "18:00")
	require.NoError(t, err)

	sel, err = c.SelectPickup(sel, day(2024, 7, 6), "11:00", day(2024, 7, 1))
	require.NoError(t, err)
	assert.False(t, sel.HasReturn(), "new anchor invalidates the return choice")
	assert.Empty(t, sel.ReturnTime)
}

func TestReconfirmingPickupKeepsValidReturn(t *testing.T) {
	c := newController(nil, day(2024, 7, 1))
	sel := c.Reset("veh-1")
	sel, err := c.SelectPickup(sel, day(2024, 7, 5), "10:00", day(2024, 7, 1))
	require.NoError(t, err)
	sel, err = c.SelectReturn(sel, day(2024, 7, 9), "18:00")
	require.NoError(t, err)

	sel, err = c.SelectPickup(sel, day(2024, 7, 5), "12:00", day(2024, 7, 1))
	require.NoError(t, err)
	assert.Equal(t, day(2024, 7, 9), sel.ReturnDate, "same pickup date keeps the return")
	assert.Equal(t, "12:00", sel.PickupTime)
}

func TestPickupOnReservedDateRejected(t *testing.T) {
	intervals := []daterange.DateRange{{Start: day(2024, 7, 10), End: day(2024, 7, 13)}}
	c := newController(intervals, day(2024, 7, 1))

	_, err := c.SelectPickup(c.Reset("veh-1"), day(2024, 7, 11), "", day(2024, 7, 1))
	var rejected *Rejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, availability.ReasonAlreadyReserved, rejected.Reason)
}

func TestSameDayPickupTimeTooSoon(t *testing.T) {
	c := newController(nil, day(2024, 7, 5))
	now := day(2024, 7, 5).Add(9 * time.Hour)

	_, err := c.SelectPickup(c.Reset("veh-1"), day(2024, 7, 5), "10:00", now)
	assert.ErrorIs(t, err, ErrPickupTooSoon)

	sel, err := c.SelectPickup(c.Reset("veh-1"), day(2024, 7, 5), "11:00", now)
	require.NoError(t, err)
	assert.Equal(t, "11:00", sel.PickupTime)
}

func TestResetClearsEverything(t *testing.T) {
	c := newController(nil, day(2024, 7, 1))
	sel := c.Reset("veh-1")
	sel, err := c.SelectPickup(sel, day(2024, 7, 5), "10:00", day(2024, 7, 1))
	require.NoError(t, err)

	sel = c.Reset("veh-2")
	assert.Equal(t, Selection{VehicleID: "veh-2"}, sel)
}

func TestMinStayHoldsWheneverReturnCommits(t *testing.T) {
	c := newController(nil, day(2024, 7, 1))
	pickup := day(2024, 7, 5)
	sel, err := c.SelectPickup(c.Reset("veh-1"), pickup, "", day(2024, 7, 1))
	require.NoError(t, err)

	for offset := 1; offset <= 5; offset++ {
		got, err := c.SelectReturn(sel, pickup.AddDate(0, 0, offset), "")
		if err != nil {
			var rejected *Rejected
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, availability.ReasonMinimumStay, rejected.Reason)
			continue
		}
		assert.GreaterOrEqual(t, int(got.ReturnDate.Sub(got.PickupDate).Hours()/24),
			availability.DefaultMinStayDays)
	}
}
