package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"autorent/internal/domain/shared/daterange"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMaintenanceWindowFor(t *testing.T) {
	iv := daterange.DateRange{Start: day(2024, 6, 10), End: day(2024, 6, 15).Add(12 * time.Hour)}
	w := MaintenanceWindowFor(iv, 0)
	assert.Equal(t, iv.End, w.Start)
	assert.Equal(t, iv.End.Add(12*time.Hour), w.End)
}

func TestWithinMaintenanceBoundaryExactAtHour(t *testing.T) {
	end := day(2024, 6, 15).Add(12 * time.Hour)
	windows := []MaintenanceWindow{{Start: end, End: end.Add(12 * time.Hour)}}

	assert.True(t, WithinMaintenance(end, windows), "window start is inclusive")
	assert.True(t, WithinMaintenance(end.Add(11*time.Hour+59*time.Minute), windows))
	assert.False(t, WithinMaintenance(end.Add(12*time.Hour), windows), "window end is exclusive")
	assert.False(t, WithinMaintenance(end.Add(-time.Minute), windows))
}

func TestMaintenanceBlocksDayWidensToDayBoundaries(t *testing.T) {
	// Interval ends mid-day on the 15th; the window runs [15th 12:00, 16th 00:00).
	windows := []MaintenanceWindow{{
		Start: day(2024, 6, 15).Add(12 * time.Hour),
		End:   day(2024, 6, 16),
	}}

	assert.True(t, MaintenanceBlocksDay(day(2024, 6, 15), windows))
	// The window's end instant lands on the 16th, so the whole 16th is marked
	// even though no exact minute of it is inside the window.
	assert.True(t, MaintenanceBlocksDay(day(2024, 6, 16), windows))
	assert.False(t, MaintenanceBlocksDay(day(2024, 6, 17), windows))
	assert.False(t, MaintenanceBlocksDay(day(2024, 6, 14), windows))
}

func TestExactAndDayLevelChecksDiverge(t *testing.T) {
	windows := []MaintenanceWindow{{
		Start: day(2024, 6, 15).Add(12 * time.Hour),
		End:   day(2024, 6, 16),
	}}

	at := day(2024, 6, 16).Add(8 * time.Hour)
	assert.False(t, WithinMaintenance(at, windows), "08:00 slot on the 16th is past the window")
	assert.True(t, MaintenanceBlocksDay(at, windows), "but the 16th as a whole day is still marked")
}
