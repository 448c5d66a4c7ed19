package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, vehicle VehicleID, start, end time.Time, status Status) *Reservation {
	return &Reservation{
		ID:        ReservationID(id),
		VehicleID: vehicle,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
}

func TestBuildIntervalsFiltersAndSorts(t *testing.T) {
	snapshot := []*Reservation{
		record("b", "veh-1", day(2024, 7, 10), day(2024, 7, 12), StatusConfirmed),
		record("a", "veh-1", day(2024, 6, 10), day(2024, 6, 15), StatusPendingHold),
		record("other", "veh-2", day(2024, 6, 1), day(2024, 6, 30), StatusConfirmed),
		record("gone", "veh-1", day(2024, 6, 20), day(2024, 6, 22), StatusCancelled),
		nil,
	}

	intervals := BuildIntervals("veh-1", snapshot, nil)
	require.Len(t, intervals, 2)
	assert.Equal(t, day(2024, 6, 10), intervals[0].Start)
	assert.Equal(t, day(2024, 6, 16), intervals[0].End, "date-only end blocks through the whole end day")
	assert.Equal(t, day(2024, 7, 10), intervals[1].Start)
}

func TestBuildIntervalsDropsMalformed(t *testing.T) {
	bad := record("bad", "veh-1", day(2024, 6, 15), day(2024, 6, 10), StatusConfirmed)
	badTime := record("bad-time", "veh-1", day(2024, 6, 20), day(2024, 6, 21), StatusConfirmed)
	badTime.EndTime = "half past"
	zero := record("zero", "veh-1", time.Time{}, day(2024, 6, 21), StatusConfirmed)
	good := record("good", "veh-1", day(2024, 6, 1), day(2024, 6, 2), StatusConfirmed)

	intervals := BuildIntervals("veh-1", []*Reservation{bad, badTime, zero, good}, nil)
	require.Len(t, intervals, 1)
	assert.Equal(t, day(2024, 6, 1), intervals[0].Start)
}

func TestIntervalHonorsEndpointTimes(t *testing.T) {
	rec := record("timed", "veh-1", day(2024, 6, 10), day(2024, 6, 15), StatusConfirmed)
	rec.StartTime = "09:00"
	rec.EndTime = "12:00"

	iv, err := rec.Interval()
	require.NoError(t, err)
	assert.Equal(t, day(2024, 6, 10).Add(9*time.Hour), iv.Start)
	assert.Equal(t, day(2024, 6, 15).Add(12*time.Hour), iv.End)
}

func TestBuildIntervalsDeterministicOrder(t *testing.T) {
	snapshot := []*Reservation{
		record("late", "veh-1", day(2024, 8, 1), day(2024, 8, 2), StatusConfirmed),
		record("early", "veh-1", day(2024, 6, 1), day(2024, 6, 2), StatusConfirmed),
		record("mid", "veh-1", day(2024, 7, 1), day(2024, 7, 2), StatusConfirmed),
	}
	first := BuildIntervals("veh-1", snapshot, nil)
	second := BuildIntervals("veh-1", snapshot, nil)
	assert.Equal(t, first, second)
	assert.True(t, first[0].Start.Before(first[1].Start))
	assert.True(t, first[1].Start.Before(first[2].Start))
}
