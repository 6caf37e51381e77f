package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: check-out must be after check-in")

// DateRange is a half-open stay interval [CheckIn, CheckOut). The
// check-out day itself is not occupied, so back-to-back stays sharing a
// calendar day never overlap.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a validated range with both endpoints truncated to
// midnight UTC.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps reports whether two half-open intervals share at least one
// night: a.CheckIn < b.CheckOut && b.CheckIn < a.CheckOut.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

// ContainsDate reports whether the given day is occupied by this range.
func (dr DateRange) ContainsDate(t time.Time) bool {
	day := Day(t)
	return !day.Before(dr.CheckIn) && day.Before(dr.CheckOut)
}

func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24)
}

// Day truncates a timestamp to midnight UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
