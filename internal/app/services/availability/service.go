package availability

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"villastay/internal/domain/daterange"
	"villastay/internal/domain/enquiry"
)

// Service answers "is this villa free for these dates?" and "what is
// blocking it?". Occupancy comes from one place only: confirmed
// enquiries holding a date range.
type Service struct {
	Enquiries enquiry.Repository
	Logger    *slog.Logger
}

// BlockedDate is the calendar projection consumed by villa pages.
type BlockedDate struct {
	EnquiryID   enquiry.ID          `json:"enquiry_id"`
	CheckIn     time.Time           `json:"check_in"`
	CheckOut    time.Time           `json:"check_out"`
	GuestName   string              `json:"guest_name"`
	BookingType enquiry.BookingType `json:"booking_type"`
}

type RangeAvailability struct {
	Available   bool                  `json:"available"`
	Conflicting []daterange.DateRange `json:"conflicting,omitempty"`
}

// VillaBookings returns the villa's confirmed bookings sorted by
// check-in ascending (store id breaks ties). A failed query yields an
// empty list so calendar views keep rendering; callers that gate
// writes on this data inherit that ambiguity knowingly.
func (s *Service) VillaBookings(ctx context.Context, villaID string) []*enquiry.Enquiry {
	bookings, err := s.Enquiries.ByVillaAndStatus(ctx, villaID, enquiry.StatusConfirmed)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("villa bookings query failed, treating as empty", "villa_id", villaID, "error", err)
		}
		return nil
	}
	sortByCheckInAsc(bookings)
	return bookings
}

// CheckDateConflict reports whether [checkIn, checkOut) overlaps any
// confirmed booking for the villa, skipping excludeID so a booking can
// be re-validated against its peers without self-conflicting.
func (s *Service) CheckDateConflict(ctx context.Context, villaID string, checkIn, checkOut time.Time, excludeID enquiry.ID) bool {
	proposed := daterange.DateRange{CheckIn: daterange.Day(checkIn), CheckOut: daterange.Day(checkOut)}
	for _, booking := range s.VillaBookings(ctx, villaID) {
		if excludeID != "" && booking.ID == excludeID {
			continue
		}
		if booking.Dates == nil {
			continue
		}
		if proposed.Overlaps(*booking.Dates) {
			return true
		}
	}
	return false
}

// ConflictingEnquiries returns the pending enquiries whose dates
// overlap the proposed range. Enquiries without dates never conflict.
// Unlike the display reads, a store failure propagates here: this feeds
// the confirmation workflow, where "unknown" must not read as "none".
func (s *Service) ConflictingEnquiries(ctx context.Context, villaID string, checkIn, checkOut time.Time, excludeID enquiry.ID) ([]*enquiry.Enquiry, error) {
	pending, err := s.Enquiries.ByVillaAndStatus(ctx, villaID, enquiry.StatusPending)
	if err != nil {
		return nil, err
	}
	proposed := daterange.DateRange{CheckIn: daterange.Day(checkIn), CheckOut: daterange.Day(checkOut)}
	var conflicting []*enquiry.Enquiry
	for _, e := range pending {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if e.Dates == nil {
			continue
		}
		if proposed.Overlaps(*e.Dates) {
			conflicting = append(conflicting, e)
		}
	}
	sortByCheckInAsc(conflicting)
	return conflicting, nil
}

// BlockedDates projects the villa's confirmed bookings into calendar
// entries. Guest-less blocks get the "Reserved" label.
func (s *Service) BlockedDates(ctx context.Context, villaID string) []BlockedDate {
	bookings := s.VillaBookings(ctx, villaID)
	out := make([]BlockedDate, 0, len(bookings))
	for _, b := range bookings {
		if b.Dates == nil {
			continue
		}
		name := b.UserName
		if name == "" {
			name = "Reserved"
		}
		bookingType := b.BookingType
		if bookingType == "" {
			bookingType = enquiry.TypeOnline
		}
		out = append(out, BlockedDate{
			EnquiryID:   b.ID,
			CheckIn:     b.Dates.CheckIn,
			CheckOut:    b.Dates.CheckOut,
			GuestName:   name,
			BookingType: bookingType,
		})
	}
	return out
}

// IsDateAvailable reports whether the given day falls inside any
// confirmed booking's half-open interval.
func (s *Service) IsDateAvailable(ctx context.Context, villaID string, date time.Time) bool {
	for _, b := range s.VillaBookings(ctx, villaID) {
		if b.Dates == nil {
			continue
		}
		if b.Dates.ContainsDate(date) {
			return false
		}
	}
	return true
}

// CheckRangeAvailability is the multi-day form: available or the list
// of booked ranges in the way.
func (s *Service) CheckRangeAvailability(ctx context.Context, villaID string, checkIn, checkOut time.Time) RangeAvailability {
	if !s.CheckDateConflict(ctx, villaID, checkIn, checkOut, "") {
		return RangeAvailability{Available: true}
	}
	proposed := daterange.DateRange{CheckIn: daterange.Day(checkIn), CheckOut: daterange.Day(checkOut)}
	var conflicting []daterange.DateRange
	for _, b := range s.VillaBookings(ctx, villaID) {
		if b.Dates != nil && proposed.Overlaps(*b.Dates) {
			conflicting = append(conflicting, *b.Dates)
		}
	}
	return RangeAvailability{Available: false, Conflicting: conflicting}
}

func sortByCheckInAsc(list []*enquiry.Enquiry) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := checkInOrZero(list[i]), checkInOrZero(list[j])
		if a.Equal(b) {
			return list[i].ID < list[j].ID
		}
		return a.Before(b)
	})
}

func checkInOrZero(e *enquiry.Enquiry) time.Time {
	if e.Dates == nil {
		return time.Time{}
	}
	return e.Dates.CheckIn
}
