package booking

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"villastay/internal/app/events"
	"villastay/internal/app/services/availability"
	"villastay/internal/domain/daterange"
	"villastay/internal/domain/enquiry"
)

var (
	// ErrDateConflict is the expected refusal when a manual block
	// overlaps an existing confirmed booking. Not a system error.
	ErrDateConflict = errors.New("booking: dates conflict with an existing booking")
	// ErrUnacknowledgedConflicts is returned when confirming would
	// invalidate pending enquiries and the operator has not approved
	// that yet.
	ErrUnacknowledgedConflicts = errors.New("booking: conflicting pending enquiries require acknowledgement")
	ErrMissingDates            = errors.New("booking: check-in and check-out are required")
)

// Service owns the enquiry status transitions and their side effects.
// The check-then-write sequences (ConfirmWithResolution and
// CreateManualBlock) are serialized per villa so two operators in the
// same process cannot both pass the conflict check; across processes
// there is still no store-level transaction.
type Service struct {
	Enquiries    enquiry.Repository
	Availability *availability.Service
	Events       events.Publisher
	Logger       *slog.Logger
	// AdminEmail is the sentinel contact written into manual blocks.
	AdminEmail string
	Now        func() time.Time

	locksMu    sync.Mutex
	villaLocks map[string]*sync.Mutex
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// lockVilla acquires the villa's check-then-write mutex and returns its
// release func.
func (s *Service) lockVilla(villaID string) func() {
	s.locksMu.Lock()
	if s.villaLocks == nil {
		s.villaLocks = make(map[string]*sync.Mutex)
	}
	mu, ok := s.villaLocks[villaID]
	if !ok {
		mu = &sync.Mutex{}
		s.villaLocks[villaID] = mu
	}
	s.locksMu.Unlock()
	mu.Lock()
	return mu.Unlock
}

// ConfirmEnquiry marks the enquiry as booked. It does not re-check for
// overlaps; ConfirmWithResolution is the operator-facing path that
// resolves conflicts first.
func (s *Service) ConfirmEnquiry(ctx context.Context, id enquiry.ID) (*enquiry.Enquiry, error) {
	return s.transition(ctx, id, func(e *enquiry.Enquiry, now time.Time) error {
		return e.Confirm(now)
	})
}

// CancelEnquiry retires the record, keeping the audit trail. Removing a
// confirmed booking goes through here too; nothing is hard-deleted.
func (s *Service) CancelEnquiry(ctx context.Context, id enquiry.ID) (*enquiry.Enquiry, error) {
	return s.transition(ctx, id, func(e *enquiry.Enquiry, now time.Time) error {
		return e.Cancel(now)
	})
}

// DeleteBooking is cancellation under the admin UI's name for it.
func (s *Service) DeleteBooking(ctx context.Context, id enquiry.ID) (*enquiry.Enquiry, error) {
	return s.CancelEnquiry(ctx, id)
}

func (s *Service) MarkContacted(ctx context.Context, id enquiry.ID) (*enquiry.Enquiry, error) {
	return s.transition(ctx, id, func(e *enquiry.Enquiry, now time.Time) error {
		return e.MarkContacted(now)
	})
}

// NotifyConflictingEnquiries flips each pending enquiry to
// date_unavailable, stamping NotifiedAt. Failures on individual
// records do not stop the rest; the joined error reports them all.
func (s *Service) NotifyConflictingEnquiries(ctx context.Context, ids []enquiry.ID) error {
	var errs []error
	for _, id := range ids {
		if _, err := s.transition(ctx, id, func(e *enquiry.Enquiry, now time.Time) error {
			return e.MarkDateUnavailable(now)
		}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ConflictsFor lists the pending enquiries that confirming the given
// one would invalidate. Read only; the admin UI shows this before the
// operator commits.
func (s *Service) ConflictsFor(ctx context.Context, id enquiry.ID) ([]*enquiry.Enquiry, error) {
	target, err := s.Enquiries.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target.Dates == nil {
		return nil, nil
	}
	return s.Availability.ConflictingEnquiries(ctx, target.VillaID, target.Dates.CheckIn, target.Dates.CheckOut, target.ID)
}

// ConfirmResult reports what a resolution-confirmation did (or would
// need acknowledgement for).
type ConfirmResult struct {
	Enquiry   *enquiry.Enquiry
	Conflicts []*enquiry.Enquiry
	Notified  []enquiry.ID
}

// ConfirmWithResolution runs the admin confirmation workflow: discover
// pending enquiries that overlap the target's dates, require explicit
// acknowledgement before invalidating them, then notify the conflicts
// and finally confirm the target, in that order. The steps are
// independent writes; there is no transaction tying them together.
func (s *Service) ConfirmWithResolution(ctx context.Context, id enquiry.ID, acknowledge bool) (*ConfirmResult, error) {
	target, err := s.Enquiries.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	unlock := s.lockVilla(target.VillaID)
	defer unlock()

	result := &ConfirmResult{}
	if target.Dates != nil {
		conflicts, err := s.Availability.ConflictingEnquiries(ctx, target.VillaID, target.Dates.CheckIn, target.Dates.CheckOut, target.ID)
		if err != nil {
			return nil, err
		}
		result.Conflicts = conflicts
		if len(conflicts) > 0 && !acknowledge {
			return result, ErrUnacknowledgedConflicts
		}
		for _, c := range conflicts {
			result.Notified = append(result.Notified, c.ID)
		}
		if err := s.NotifyConflictingEnquiries(ctx, result.Notified); err != nil {
			return result, err
		}
	}

	confirmed, err := s.ConfirmEnquiry(ctx, id)
	if err != nil {
		return result, err
	}
	result.Enquiry = confirmed
	if s.Logger != nil {
		s.Logger.Info("enquiry confirmed", "enquiry_id", id, "villa_id", confirmed.VillaID, "invalidated", len(result.Notified))
	}
	return result, nil
}

type ManualBlockParams struct {
	VillaID   string
	VillaName string
	CheckIn   time.Time
	CheckOut  time.Time
	Reason    string
}

// CreateManualBlock reserves dates without a real guest, for
// maintenance or offline bookings. It reuses the ordinary occupancy
// representation, a confirmed enquiry, so calendars and conflict
// checks need no second code path.
func (s *Service) CreateManualBlock(ctx context.Context, params ManualBlockParams) (enquiry.ID, error) {
	if params.CheckIn.IsZero() || params.CheckOut.IsZero() {
		return "", ErrMissingDates
	}
	dates, err := daterange.New(params.CheckIn, params.CheckOut)
	if err != nil {
		return "", err
	}
	unlock := s.lockVilla(params.VillaID)
	defer unlock()
	if s.Availability.CheckDateConflict(ctx, params.VillaID, dates.CheckIn, dates.CheckOut, "") {
		return "", ErrDateConflict
	}

	reason := params.Reason
	if reason == "" {
		reason = "Manually Blocked"
	}
	now := s.now().UTC()
	block := &enquiry.Enquiry{
		VillaID:     params.VillaID,
		VillaName:   params.VillaName,
		UserName:    reason,
		Email:       s.AdminEmail,
		Phone:       "N/A",
		Dates:       &dates,
		Guests:      0,
		Message:     reason,
		Status:      enquiry.StatusConfirmed,
		BookingType: enquiry.TypeOffline,
		Source:      "admin",
		CreatedAt:   now,
		UpdatedAt:   now,
		ConfirmedAt: now,
	}
	if err := s.Enquiries.Insert(ctx, block); err != nil {
		return "", err
	}
	events.Emit(ctx, s.Events, s.Logger, enquiry.ManualBlockCreated{
		EnquiryID: block.ID,
		VillaID:   block.VillaID,
		Dates:     block.Dates,
		Reason:    reason,
		At:        now,
	})
	return block.ID, nil
}

// AllBookings lists every confirmed booking, newest check-in first, for
// the admin dashboard. Best-effort like the other display reads.
func (s *Service) AllBookings(ctx context.Context) []*enquiry.Enquiry {
	bookings, err := s.Enquiries.ByStatus(ctx, enquiry.StatusConfirmed)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("all bookings query failed, treating as empty", "error", err)
		}
		return nil
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := checkInOrZero(bookings[i]), checkInOrZero(bookings[j])
		if a.Equal(b) {
			return bookings[i].ID < bookings[j].ID
		}
		return a.After(b)
	})
	return bookings
}

func (s *Service) transition(ctx context.Context, id enquiry.ID, apply func(*enquiry.Enquiry, time.Time) error) (*enquiry.Enquiry, error) {
	e, err := s.Enquiries.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(e, s.now()); err != nil {
		return nil, err
	}
	// Drain before the write so the stored copy carries no events.
	evs := e.Events()
	if err := s.Enquiries.Update(ctx, e); err != nil {
		return nil, err
	}
	events.Emit(ctx, s.Events, s.Logger, evs...)
	return e, nil
}

func checkInOrZero(e *enquiry.Enquiry) time.Time {
	if e.Dates == nil {
		return time.Time{}
	}
	return e.Dates.CheckIn
}
