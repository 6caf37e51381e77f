package enquiry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villastay/internal/domain/daterange"
	domainenquiry "villastay/internal/domain/enquiry"
	"villastay/internal/infra/storage/memory"
)

type recordingPublisher struct {
	events []domainenquiry.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event domainenquiry.Event) error {
	p.events = append(p.events, event)
	return nil
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestSubmitDefaults(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	publisher := &recordingPublisher{}
	svc := &Service{Enquiries: repo, Events: publisher}
	ctx := context.Background()

	id, err := svc.Submit(ctx, SubmitParams{
		VillaID:   "villa-1",
		VillaName: "Sea Breeze",
		UserName:  "Asha",
		Email:     "asha@example.com",
		CheckIn:   day(t, "2025-07-10"),
		CheckOut:  day(t, "2025-07-15"),
		Guests:    4,
		Message:   "Is the villa free?",
	})
	require.NoError(t, err)

	stored, err := repo.ByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domainenquiry.StatusPending, stored.Status)
	assert.Equal(t, domainenquiry.TypeOnline, stored.BookingType)
	assert.Equal(t, "website", stored.Source)
	require.NotNil(t, stored.Dates)
	assert.Equal(t, 5, stored.Dates.Nights())

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "enquiry.submitted", publisher.events[0].EventName())
}

func TestSubmitWithoutDates(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}
	ctx := context.Background()

	id, err := svc.Submit(ctx, SubmitParams{
		VillaID:  "villa-1",
		UserName: "Asha",
		Phone:    "+10000000001",
		Message:  "Do you allow pets?",
	})
	require.NoError(t, err)

	stored, err := repo.ByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, stored.Dates)
	assert.False(t, stored.Occupies())
}

func TestSubmitValidation(t *testing.T) {
	svc := &Service{Enquiries: memory.NewEnquiryRepository()}
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitParams{VillaID: "villa-1", UserName: "Asha"})
	assert.ErrorIs(t, err, domainenquiry.ErrMessageRequired)

	_, err = svc.Submit(ctx, SubmitParams{
		VillaID: "villa-1",
		Message: "hello",
		CheckIn: day(t, "2025-07-10"),
	})
	assert.ErrorIs(t, err, domainenquiry.ErrPartialDates)

	_, err = svc.Submit(ctx, SubmitParams{
		VillaID:  "villa-1",
		Message:  "hello",
		CheckIn:  day(t, "2025-07-15"),
		CheckOut: day(t, "2025-07-10"),
	})
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestByEmailOrPhoneMergesAndSorts(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	submit := func(email, phone string, createdAt time.Time) domainenquiry.ID {
		e, err := domainenquiry.New(domainenquiry.CreateParams{
			VillaID:  "villa-1",
			UserName: "Asha",
			Email:    email,
			Phone:    phone,
			Message:  "stay request",
			Now:      createdAt,
		})
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, e))
		return e.ID
	}

	oldest := submit("asha@example.com", "", base)
	both := submit("asha@example.com", "+10000000001", base.Add(24*time.Hour))
	newest := submit("", "+10000000001", base.Add(48*time.Hour))
	submit("other@example.com", "+19999999999", base.Add(72*time.Hour))

	merged, err := svc.ByEmailOrPhone(ctx, "asha@example.com", "+10000000001")
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, newest, merged[0].ID)
	assert.Equal(t, both, merged[1].ID)
	assert.Equal(t, oldest, merged[2].ID)
}

func TestByEmailOrPhoneSkipsEmptyTerms(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}
	ctx := context.Background()

	e, err := domainenquiry.New(domainenquiry.CreateParams{
		VillaID:  "villa-1",
		UserName: "Asha",
		Phone:    "+10000000001",
		Message:  "stay request",
		Now:      time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, e))

	byPhone, err := svc.ByEmailOrPhone(ctx, "", "+10000000001")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, e.ID, byPhone[0].ID)

	none, err := svc.ByEmailOrPhone(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}
