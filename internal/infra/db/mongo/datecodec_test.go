package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeDateRecognizedShapes(t *testing.T) {
	want := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	cases := map[string]any{
		"time.Time":          want,
		"primitive.DateTime": primitive.NewDateTimeFromTime(want),
		"rfc3339 string":     "2025-07-10T00:00:00Z",
		"date-only string":   "2025-07-10",
		"epoch millis":       want.UnixMilli(),
		"epoch millis f64":   float64(want.UnixMilli()),
		"seconds doc":        primitive.M{"seconds": want.Unix()},
		"seconds D":          primitive.D{{Key: "seconds", Value: want.Unix()}},
		"seconds map":        map[string]any{"seconds": float64(want.Unix())},
	}

	for name, raw := range cases {
		got, ok := normalizeDate(raw, nil)
		require.True(t, ok, name)
		assert.True(t, got.Equal(want), "%s: got %v", name, got)
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	inputs := []any{
		time.Date(2025, 7, 10, 14, 30, 0, 0, time.UTC),
		primitive.NewDateTimeFromTime(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)),
		"2025-07-10T00:00:00Z",
		int64(1752105600000),
		primitive.M{"seconds": int64(1752105600)},
	}
	for _, raw := range inputs {
		first, ok := normalizeDate(raw, nil)
		require.True(t, ok)
		second, ok := normalizeDate(first, nil)
		require.True(t, ok)
		assert.True(t, first.Equal(second))
	}
}

func TestNormalizeDateAbsentOrUnknown(t *testing.T) {
	_, ok := normalizeDate(nil, nil)
	assert.False(t, ok)

	_, ok = normalizeDate("not a date at all", nil)
	assert.False(t, ok)

	// Unknown shape must degrade to absent, never panic.
	_, ok = normalizeDate(struct{ X int }{1}, nil)
	assert.False(t, ok)

	_, ok = normalizeDate(primitive.M{"nanos": int64(5)}, nil)
	assert.False(t, ok)
}

func TestDenormalizeDateRoundTrip(t *testing.T) {
	want := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	dt := denormalizeDate(want)
	assert.True(t, dt.Time().UTC().Equal(want))

	// Already store-native passes through.
	assert.Equal(t, dt, denormalizeDate(dt))

	fromString := denormalizeDate("2025-07-10T00:00:00Z")
	assert.True(t, fromString.Time().UTC().Equal(want))
}

func TestDenormalizeDateFallsBackToNow(t *testing.T) {
	before := time.Now().Add(-time.Second)
	got := denormalizeDate(nil).Time()
	after := time.Now().Add(time.Second)
	assert.True(t, got.After(before) && got.Before(after))
}
