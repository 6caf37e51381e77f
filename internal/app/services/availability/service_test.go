package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villastay/internal/domain/daterange"
	"villastay/internal/domain/enquiry"
	"villastay/internal/infra/storage/memory"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func seedEnquiry(t *testing.T, repo *memory.EnquiryRepository, villaID string, status enquiry.Status, in, out string) *enquiry.Enquiry {
	t.Helper()
	e := &enquiry.Enquiry{
		VillaID:  villaID,
		UserName: "Guest",
		Message:  "stay request",
		Status:   status,
	}
	if in != "" {
		dates, err := daterange.New(day(t, in), day(t, out))
		require.NoError(t, err)
		e.Dates = &dates
	}
	require.NoError(t, repo.Insert(context.Background(), e))
	return e
}

func TestCheckDateConflictOnlyConfirmedOccupy(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}

	seedEnquiry(t, repo, "villa-1", enquiry.StatusPending, "2025-07-10", "2025-07-15")
	seedEnquiry(t, repo, "villa-1", enquiry.StatusCancelled, "2025-07-10", "2025-07-15")
	seedEnquiry(t, repo, "villa-1", enquiry.StatusDateUnavailable, "2025-07-10", "2025-07-15")

	assert.False(t, svc.CheckDateConflict(context.Background(), "villa-1", day(t, "2025-07-12"), day(t, "2025-07-14"), ""))

	seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-07-10", "2025-07-15")
	assert.True(t, svc.CheckDateConflict(context.Background(), "villa-1", day(t, "2025-07-12"), day(t, "2025-07-14"), ""))
}

func TestCheckDateConflictIgnoresOtherVillasAndExcluded(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}

	booked := seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-07-10", "2025-07-15")
	seedEnquiry(t, repo, "villa-2", enquiry.StatusConfirmed, "2025-07-10", "2025-07-15")

	assert.False(t, svc.CheckDateConflict(context.Background(), "villa-3", day(t, "2025-07-10"), day(t, "2025-07-15"), ""))
	assert.False(t, svc.CheckDateConflict(context.Background(), "villa-1", day(t, "2025-07-10"), day(t, "2025-07-15"), booked.ID))
}

func TestCheckDateConflictBackToBack(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}

	seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-07-10", "2025-07-15")

	assert.False(t, svc.CheckDateConflict(context.Background(), "villa-1", day(t, "2025-07-15"), day(t, "2025-07-20"), ""))
	assert.False(t, svc.CheckDateConflict(context.Background(), "villa-1", day(t, "2025-07-05"), day(t, "2025-07-10"), ""))
	assert.True(t, svc.CheckDateConflict(context.Background(), "villa-1", day(t, "2025-07-14"), day(t, "2025-07-16"), ""))
}

func TestConfirmedWithoutDatesNeverConflicts(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}

	seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "", "")

	assert.False(t, svc.CheckDateConflict(context.Background(), "villa-1", day(t, "2025-07-10"), day(t, "2025-07-15"), ""))
	assert.Empty(t, svc.BlockedDates(context.Background(), "villa-1"))
}

func TestBlockedDatesProjection(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}

	named := seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-08-01", "2025-08-05")
	anonymous := seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-07-01", "2025-07-03")
	anonymous.UserName = ""
	require.NoError(t, repo.Update(context.Background(), anonymous))

	blocks := svc.BlockedDates(context.Background(), "villa-1")
	require.Len(t, blocks, 2)
	assert.Equal(t, anonymous.ID, blocks[0].EnquiryID)
	assert.Equal(t, "Reserved", blocks[0].GuestName)
	assert.Equal(t, enquiry.TypeOnline, blocks[0].BookingType)
	assert.Equal(t, named.ID, blocks[1].EnquiryID)
	assert.Equal(t, "Guest", blocks[1].GuestName)
}

func TestDisplayReadsTreatFailureAsEmpty(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}

	seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-07-10", "2025-07-15")
	repo.FailReads = errors.New("store down")

	assert.Empty(t, svc.VillaBookings(context.Background(), "villa-1"))
	assert.Empty(t, svc.BlockedDates(context.Background(), "villa-1"))
	assert.False(t, svc.CheckDateConflict(context.Background(), "villa-1", day(t, "2025-07-12"), day(t, "2025-07-14"), ""))
}

func TestConflictingEnquiriesPropagatesFailure(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}
	repo.FailReads = errors.New("store down")

	_, err := svc.ConflictingEnquiries(context.Background(), "villa-1", day(t, "2025-07-10"), day(t, "2025-07-15"), "")
	assert.Error(t, err)
}

func TestConflictingEnquiriesFindsPendingOverlaps(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}

	overlapping := seedEnquiry(t, repo, "villa-1", enquiry.StatusPending, "2025-07-12", "2025-07-18")
	seedEnquiry(t, repo, "villa-1", enquiry.StatusPending, "2025-07-20", "2025-07-25")
	seedEnquiry(t, repo, "villa-1", enquiry.StatusPending, "", "")
	seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-07-12", "2025-07-18")

	conflicts, err := svc.ConflictingEnquiries(context.Background(), "villa-1", day(t, "2025-07-10"), day(t, "2025-07-15"), "")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, overlapping.ID, conflicts[0].ID)
}

func TestIsDateAvailableHalfOpen(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}

	seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-07-10", "2025-07-15")
	ctx := context.Background()

	assert.False(t, svc.IsDateAvailable(ctx, "villa-1", day(t, "2025-07-10")))
	assert.False(t, svc.IsDateAvailable(ctx, "villa-1", day(t, "2025-07-14")))
	assert.True(t, svc.IsDateAvailable(ctx, "villa-1", day(t, "2025-07-15")))
	assert.True(t, svc.IsDateAvailable(ctx, "villa-1", day(t, "2025-07-09")))
}

func TestCheckRangeAvailabilityListsConflicts(t *testing.T) {
	repo := memory.NewEnquiryRepository()
	svc := &Service{Enquiries: repo}
	ctx := context.Background()

	seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-07-10", "2025-07-15")
	seedEnquiry(t, repo, "villa-1", enquiry.StatusConfirmed, "2025-07-20", "2025-07-25")

	free := svc.CheckRangeAvailability(ctx, "villa-1", day(t, "2025-07-15"), day(t, "2025-07-20"))
	assert.True(t, free.Available)
	assert.Empty(t, free.Conflicting)

	busy := svc.CheckRangeAvailability(ctx, "villa-1", day(t, "2025-07-14"), day(t, "2025-07-21"))
	assert.False(t, busy.Available)
	require.Len(t, busy.Conflicting, 2)
	assert.Equal(t, day(t, "2025-07-10"), busy.Conflicting[0].CheckIn)
	assert.Equal(t, day(t, "2025-07-20"), busy.Conflicting[1].CheckIn)
}
