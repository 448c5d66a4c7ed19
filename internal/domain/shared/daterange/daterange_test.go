package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewValidation(t *testing.T) {
	_, err := New(day(2024, 6, 10), day(2024, 6, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(time.Time{}, day(2024, 6, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	dr, err := New(day(2024, 6, 10), day(2024, 6, 16))
	require.NoError(t, err)
	assert.Equal(t, 6, dr.Days())
}

func TestOverlaps(t *testing.T) {
	base := DateRange{Start: day(2024, 6, 10), End: day(2024, 6, 16)}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"identical", base, true},
		{"contained", DateRange{Start: day(2024, 6, 12), End: day(2024, 6, 14)}, true},
		{"overlap left edge", DateRange{Start: day(2024, 6, 8), End: day(2024, 6, 11)}, true},
		{"adjacent after", DateRange{Start: day(2024, 6, 16), End: day(2024, 6, 18)}, false},
		{"adjacent before", DateRange{Start: day(2024, 6, 8), End: day(2024, 6, 10)}, false},
		{"disjoint", DateRange{Start: day(2024, 7, 1), End: day(2024, 7, 3)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestContainsDay(t *testing.T) {
	// Reservation 10th..15th with no end time normalizes to [10th, 16th).
	dr := DateRange{Start: day(2024, 6, 10), End: day(2024, 6, 16)}

	assert.True(t, dr.ContainsDay(day(2024, 6, 10)))
	assert.True(t, dr.ContainsDay(day(2024, 6, 15)))
	assert.False(t, dr.ContainsDay(day(2024, 6, 16)))
	assert.False(t, dr.ContainsDay(day(2024, 6, 9)))

	// An interval ending mid-day still claims that calendar day.
	mid := DateRange{Start: day(2024, 6, 10), End: day(2024, 6, 15).Add(12 * time.Hour)}
	assert.True(t, mid.ContainsDay(day(2024, 6, 15)))
	assert.False(t, mid.ContainsDay(day(2024, 6, 16)))
}

func TestContainsInstant(t *testing.T) {
	dr := DateRange{Start: day(2024, 6, 10), End: day(2024, 6, 16)}
	assert.True(t, dr.ContainsInstant(day(2024, 6, 10)))
	assert.True(t, dr.ContainsInstant(day(2024, 6, 15).Add(23*time.Hour)))
	assert.False(t, dr.ContainsInstant(day(2024, 6, 16)))
}

func TestMerge(t *testing.T) {
	a := DateRange{Start: day(2024, 6, 10), End: day(2024, 6, 12)}
	b := DateRange{Start: day(2024, 6, 12), End: day(2024, 6, 14)}
	merged, ok := a.Merge(b)
	require.True(t, ok)
	assert.Equal(t, day(2024, 6, 10), merged.Start)
	assert.Equal(t, day(2024, 6, 14), merged.End)

	c := DateRange{Start: day(2024, 6, 20), End: day(2024, 6, 22)}
	_, ok = a.Merge(c)
	assert.False(t, ok)
}

func TestDayStart(t *testing.T) {
	at := time.Date(2024, 6, 10, 17, 45, 3, 0, time.UTC)
	assert.Equal(t, day(2024, 6, 10), DayStart(at))
	assert.True(t, SameDay(at, day(2024, 6, 10)))
	assert.False(t, SameDay(at, day(2024, 6, 11)))
}
