package enquiry

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"villastay/internal/app/events"
	"villastay/internal/domain/daterange"
	domainenquiry "villastay/internal/domain/enquiry"
)

// Service handles guest submissions and the dashboard lookups a guest
// sees their own enquiries through. Email/phone format validation is
// the submission UI's job; only structural rules live here.
type Service struct {
	Enquiries domainenquiry.Repository
	Events    events.Publisher
	Logger    *slog.Logger
	Now       func() time.Time
}

type SubmitParams struct {
	VillaID   string
	VillaName string
	UserName  string
	Email     string
	Phone     string
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	Message   string
	Source    string
	IsGuest   bool
}

// Submit stores a new pending enquiry. Dates are optional but must come
// as a pair; an enquiry without them reserves nothing.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (domainenquiry.ID, error) {
	var dates *daterange.DateRange
	switch {
	case params.CheckIn.IsZero() && params.CheckOut.IsZero():
	case params.CheckIn.IsZero() || params.CheckOut.IsZero():
		return "", domainenquiry.ErrPartialDates
	default:
		dr, err := daterange.New(params.CheckIn, params.CheckOut)
		if err != nil {
			return "", err
		}
		dates = &dr
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	e, err := domainenquiry.New(domainenquiry.CreateParams{
		VillaID:   params.VillaID,
		VillaName: params.VillaName,
		UserName:  params.UserName,
		Email:     params.Email,
		Phone:     params.Phone,
		Dates:     dates,
		Guests:    params.Guests,
		Message:   params.Message,
		Source:    params.Source,
		IsGuest:   params.IsGuest,
		Now:       now,
	})
	if err != nil {
		return "", err
	}
	if err := s.Enquiries.Insert(ctx, e); err != nil {
		return "", err
	}
	events.Emit(ctx, s.Events, s.Logger, domainenquiry.Submitted{
		EnquiryID: e.ID,
		VillaID:   e.VillaID,
		Email:     e.Email,
		Dates:     e.Dates,
		At:        e.CreatedAt,
	})
	if s.Logger != nil {
		s.Logger.Info("enquiry submitted", "enquiry_id", e.ID, "villa_id", e.VillaID, "has_dates", e.Dates != nil)
	}
	return e.ID, nil
}

// ByEmail lists a guest's enquiries, most recent first.
func (s *Service) ByEmail(ctx context.Context, email string) ([]*domainenquiry.Enquiry, error) {
	list, err := s.Enquiries.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(list)
	return list, nil
}

func (s *Service) ByPhone(ctx context.Context, phone string) ([]*domainenquiry.Enquiry, error) {
	list, err := s.Enquiries.ByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(list)
	return list, nil
}

// ByEmailOrPhone merges both lookups, deduplicating by id. The store
// cannot express OR, so this is two equality queries unioned here.
func (s *Service) ByEmailOrPhone(ctx context.Context, email, phone string) ([]*domainenquiry.Enquiry, error) {
	var byEmail, byPhone []*domainenquiry.Enquiry
	var err error
	if email != "" {
		if byEmail, err = s.Enquiries.ByEmail(ctx, email); err != nil {
			return nil, err
		}
	}
	if phone != "" {
		if byPhone, err = s.Enquiries.ByPhone(ctx, phone); err != nil {
			return nil, err
		}
	}
	seen := make(map[domainenquiry.ID]bool, len(byEmail))
	merged := make([]*domainenquiry.Enquiry, 0, len(byEmail)+len(byPhone))
	for _, e := range append(byEmail, byPhone...) {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		merged = append(merged, e)
	}
	sortByCreatedDesc(merged)
	return merged, nil
}

// All lists every enquiry regardless of status, for the admin
// dashboard.
func (s *Service) All(ctx context.Context) ([]*domainenquiry.Enquiry, error) {
	list, err := s.Enquiries.All(ctx)
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(list)
	return list, nil
}

func sortByCreatedDesc(list []*domainenquiry.Enquiry) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
