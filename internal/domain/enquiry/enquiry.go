package enquiry

import (
	"context"
	"errors"
	"time"

	"villastay/internal/domain/daterange"
)

var (
	ErrInvalidState    = errors.New("enquiry: invalid state transition")
	ErrMessageRequired = errors.New("enquiry: message is required")
	ErrPartialDates    = errors.New("enquiry: check-in and check-out must be set together")
	ErrNotFound        = errors.New("enquiry: not found")
)

type ID string

type Status string

const (
	StatusPending         Status = "pending"
	StatusContacted       Status = "contacted"
	StatusConfirmed       Status = "confirmed"
	StatusCancelled       Status = "cancelled"
	StatusDateUnavailable Status = "date_unavailable"
)

type BookingType string

const (
	TypeOnline  BookingType = "online"
	TypeOffline BookingType = "offline"
)

// Enquiry is the single persisted record of this system. A guest's
// request, an admin's manual block, and a confirmed booking are all the
// same document distinguished by Status and BookingType.
type Enquiry struct {
	ID        ID
	VillaID   string
	VillaName string
	UserName  string
	Email     string
	Phone     string
	// Dates is nil for informational enquiries that reserve nothing.
	Dates       *daterange.DateRange
	Guests      int
	Message     string
	Status      Status
	BookingType BookingType
	Source      string
	IsGuest     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt time.Time
	CancelledAt time.Time
	NotifiedAt  time.Time
	events      []Event
}

// Repository is the persistence port. The backing store supports only
// equality predicates, so every finder below maps to one; range
// filtering and ordering happen in the caller.
type Repository interface {
	ByID(ctx context.Context, id ID) (*Enquiry, error)
	// Insert stores a new record and assigns its ID.
	Insert(ctx context.Context, e *Enquiry) error
	Update(ctx context.Context, e *Enquiry) error
	ByVillaAndStatus(ctx context.Context, villaID string, status Status) ([]*Enquiry, error)
	ByStatus(ctx context.Context, status Status) ([]*Enquiry, error)
	ByEmail(ctx context.Context, email string) ([]*Enquiry, error)
	ByPhone(ctx context.Context, phone string) ([]*Enquiry, error)
	All(ctx context.Context) ([]*Enquiry, error)
}

type CreateParams struct {
	VillaID   string
	VillaName string
	UserName  string
	Email     string
	Phone     string
	Dates     *daterange.DateRange
	Guests    int
	Message   string
	Source    string
	IsGuest   bool
	Now       time.Time
}

// New builds a pending enquiry. Email/phone format checks belong to the
// submission UI; only structural requirements are enforced here.
func New(params CreateParams) (*Enquiry, error) {
	if params.Message == "" {
		return nil, ErrMessageRequired
	}
	if params.Dates != nil {
		if err := params.Dates.Validate(); err != nil {
			return nil, err
		}
	}
	source := params.Source
	if source == "" {
		source = "website"
	}
	now := params.Now.UTC()
	e := &Enquiry{
		VillaID:     params.VillaID,
		VillaName:   params.VillaName,
		UserName:    params.UserName,
		Email:       params.Email,
		Phone:       params.Phone,
		Dates:       params.Dates,
		Guests:      params.Guests,
		Message:     params.Message,
		Status:      StatusPending,
		BookingType: TypeOnline,
		Source:      source,
		IsGuest:     params.IsGuest,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return e, nil
}

// Occupies reports whether this record blocks its villa's dates: only
// confirmed records holding a date range count toward occupancy.
func (e *Enquiry) Occupies() bool {
	return e.Status == StatusConfirmed && e.Dates != nil
}

// MarkContacted records that an admin reached out to the guest.
func (e *Enquiry) MarkContacted(now time.Time) error {
	if e.Status != StatusPending {
		return ErrInvalidState
	}
	e.Status = StatusContacted
	e.UpdatedAt = now.UTC()
	e.record(Contacted{EnquiryID: e.ID, VillaID: e.VillaID, At: e.UpdatedAt})
	return nil
}

// Confirm turns the enquiry into a booking. The caller is responsible
// for having resolved conflicting pending enquiries first; no overlap
// check happens here.
func (e *Enquiry) Confirm(now time.Time) error {
	if e.Status != StatusPending && e.Status != StatusContacted {
		return ErrInvalidState
	}
	e.Status = StatusConfirmed
	e.ConfirmedAt = now.UTC()
	e.UpdatedAt = e.ConfirmedAt
	e.record(Confirmed{EnquiryID: e.ID, VillaID: e.VillaID, Dates: e.Dates, At: e.UpdatedAt})
	return nil
}

// Cancel retires the record. Removing a confirmed booking goes through
// here as well; nothing is ever physically deleted.
func (e *Enquiry) Cancel(now time.Time) error {
	switch e.Status {
	case StatusPending, StatusContacted, StatusConfirmed:
	default:
		return ErrInvalidState
	}
	e.Status = StatusCancelled
	e.CancelledAt = now.UTC()
	e.UpdatedAt = e.CancelledAt
	e.record(Cancelled{EnquiryID: e.ID, VillaID: e.VillaID, At: e.UpdatedAt})
	return nil
}

// MarkDateUnavailable invalidates a pending enquiry whose dates were
// taken by another confirmed booking. Terminal: the guest must submit a
// fresh enquiry for different dates.
func (e *Enquiry) MarkDateUnavailable(now time.Time) error {
	if e.Status != StatusPending {
		return ErrInvalidState
	}
	e.Status = StatusDateUnavailable
	e.NotifiedAt = now.UTC()
	e.UpdatedAt = e.NotifiedAt
	e.record(DatesUnavailable{EnquiryID: e.ID, VillaID: e.VillaID, At: e.UpdatedAt})
	return nil
}

func (e *Enquiry) record(ev Event) {
	e.events = append(e.events, ev)
}

// Events drains recorded domain events.
func (e *Enquiry) Events() []Event {
	out := e.events
	e.events = nil
	return out
}
