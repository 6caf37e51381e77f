package enquiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villastay/internal/domain/daterange"
)

var testNow = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

func pendingEnquiry(t *testing.T, dates *daterange.DateRange) *Enquiry {
	t.Helper()
	e, err := New(CreateParams{
		VillaID:   "villa-1",
		VillaName: "Sea Breeze",
		UserName:  "Asha",
		Email:     "asha@example.com",
		Phone:     "+911234567890",
		Dates:     dates,
		Guests:    4,
		Message:   "Looking forward to a weekend stay",
		Now:       testNow,
	})
	require.NoError(t, err)
	return e
}

func stay(t *testing.T, in, out string) *daterange.DateRange {
	t.Helper()
	ci, _ := time.Parse("2006-01-02", in)
	co, _ := time.Parse("2006-01-02", out)
	dr, err := daterange.New(ci, co)
	require.NoError(t, err)
	return &dr
}

func TestNewRequiresMessage(t *testing.T) {
	_, err := New(CreateParams{VillaID: "v", Now: testNow})
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestNewDefaults(t *testing.T) {
	e := pendingEnquiry(t, nil)
	assert.Equal(t, StatusPending, e.Status)
	assert.Equal(t, TypeOnline, e.BookingType)
	assert.Equal(t, "website", e.Source)
	assert.Equal(t, testNow, e.CreatedAt)
	assert.Equal(t, testNow, e.UpdatedAt)
}

func TestOccupiesRequiresConfirmedAndDates(t *testing.T) {
	withDates := pendingEnquiry(t, stay(t, "2025-07-10", "2025-07-15"))
	assert.False(t, withDates.Occupies())

	require.NoError(t, withDates.Confirm(testNow))
	assert.True(t, withDates.Occupies())

	informational := pendingEnquiry(t, nil)
	require.NoError(t, informational.Confirm(testNow))
	assert.False(t, informational.Occupies())
}

func TestConfirmTransitions(t *testing.T) {
	e := pendingEnquiry(t, stay(t, "2025-07-10", "2025-07-15"))
	later := testNow.Add(time.Hour)

	require.NoError(t, e.Confirm(later))
	assert.Equal(t, StatusConfirmed, e.Status)
	assert.Equal(t, later, e.ConfirmedAt)
	assert.Equal(t, later, e.UpdatedAt)

	// Already confirmed; no transition back.
	assert.ErrorIs(t, e.Confirm(later), ErrInvalidState)
}

func TestConfirmAllowedFromContacted(t *testing.T) {
	e := pendingEnquiry(t, nil)
	require.NoError(t, e.MarkContacted(testNow))
	assert.NoError(t, e.Confirm(testNow.Add(time.Hour)))
}

func TestCancelFromConfirmed(t *testing.T) {
	e := pendingEnquiry(t, stay(t, "2025-07-10", "2025-07-15"))
	require.NoError(t, e.Confirm(testNow))
	require.NoError(t, e.Cancel(testNow.Add(time.Hour)))
	assert.Equal(t, StatusCancelled, e.Status)
	assert.False(t, e.CancelledAt.IsZero())
	assert.False(t, e.Occupies())
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	e := pendingEnquiry(t, nil)
	require.NoError(t, e.MarkDateUnavailable(testNow))
	assert.Equal(t, StatusDateUnavailable, e.Status)
	assert.False(t, e.NotifiedAt.IsZero())

	assert.ErrorIs(t, e.Confirm(testNow), ErrInvalidState)
	assert.ErrorIs(t, e.Cancel(testNow), ErrInvalidState)
	assert.ErrorIs(t, e.MarkContacted(testNow), ErrInvalidState)
	assert.ErrorIs(t, e.MarkDateUnavailable(testNow), ErrInvalidState)
}

func TestMarkDateUnavailableOnlyFromPending(t *testing.T) {
	e := pendingEnquiry(t, nil)
	require.NoError(t, e.MarkContacted(testNow))
	assert.ErrorIs(t, e.MarkDateUnavailable(testNow), ErrInvalidState)
}

func TestEventsDrainOnce(t *testing.T) {
	e := pendingEnquiry(t, stay(t, "2025-07-10", "2025-07-15"))
	require.NoError(t, e.Confirm(testNow))

	events := e.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "enquiry.confirmed", events[0].EventName())
	assert.Empty(t, e.Events())
}
