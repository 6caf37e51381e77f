package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, in, out string) DateRange {
	t.Helper()
	ci, err := time.Parse("2006-01-02", in)
	require.NoError(t, err)
	co, err := time.Parse("2006-01-02", out)
	require.NoError(t, err)
	dr, err := New(ci, co)
	require.NoError(t, err)
	return dr
}

func TestNewRejectsInvertedOrEmptyRange(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := New(day, day)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(day.AddDate(0, 0, 3), day)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(time.Time{}, day)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverlapsSymmetry(t *testing.T) {
	cases := []struct {
		a, b DateRange
		want bool
	}{
		{mustRange(t, "2025-06-01", "2025-06-05"), mustRange(t, "2025-06-04", "2025-06-08"), true},
		{mustRange(t, "2025-06-01", "2025-06-05"), mustRange(t, "2025-06-05", "2025-06-10"), false},
		{mustRange(t, "2025-06-01", "2025-06-10"), mustRange(t, "2025-06-03", "2025-06-04"), true},
		{mustRange(t, "2025-06-01", "2025-06-02"), mustRange(t, "2025-06-20", "2025-06-25"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
		assert.Equal(t, tc.a.Overlaps(tc.b), tc.b.Overlaps(tc.a), "overlap must be symmetric")
	}
}

func TestBackToBackStaysDoNotConflict(t *testing.T) {
	first := mustRange(t, "2025-06-01", "2025-06-05")
	second := mustRange(t, "2025-06-05", "2025-06-10")
	assert.False(t, first.Overlaps(second))
}

func TestSingleNightOverlapConflicts(t *testing.T) {
	booked := mustRange(t, "2025-06-01", "2025-06-05")
	proposed := mustRange(t, "2025-06-04", "2025-06-08")
	assert.True(t, booked.Overlaps(proposed))
}

func TestContainsDateIsHalfOpen(t *testing.T) {
	dr := mustRange(t, "2025-06-01", "2025-06-05")

	assert.True(t, dr.ContainsDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, dr.ContainsDate(time.Date(2025, 6, 4, 15, 30, 0, 0, time.UTC)))
	assert.False(t, dr.ContainsDate(time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, dr.ContainsDate(time.Date(2025, 5, 31, 23, 0, 0, 0, time.UTC)))
}

func TestNights(t *testing.T) {
	assert.Equal(t, 4, mustRange(t, "2025-06-01", "2025-06-05").Nights())
	assert.Equal(t, 1, mustRange(t, "2025-06-01", "2025-06-02").Nights())
}

func TestDayTruncatesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2025, 6, 1, 23, 45, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Day(in))
}
