package villa

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainvilla "villastay/internal/domain/villa"
	"villastay/internal/infra/storage/memory"
)

type fakeUploader struct {
	keys []string
}

func (u *fakeUploader) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	u.keys = append(u.keys, key)
	return "https://photos.example.com/" + key, nil
}

func seedVilla(t *testing.T, repo *memory.VillaRepository, name, location string, bedrooms int, price int64) *domainvilla.Villa {
	t.Helper()
	v, err := domainvilla.New(domainvilla.CreateParams{
		Name:          name,
		Location:      location,
		PricePerNight: price,
		Bedrooms:      bedrooms,
		Bathrooms:     bedrooms,
		MaxGuests:     bedrooms * 2,
		Now:           time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), v))
	return v
}

func TestFilterAppliesPriceWindowClientSide(t *testing.T) {
	repo := memory.NewVillaRepository()
	svc := &Service{Villas: repo}
	ctx := context.Background()

	cheap := seedVilla(t, repo, "Coral Cottage", "Goa", 2, 90)
	mid := seedVilla(t, repo, "Sea Breeze", "Goa", 2, 150)
	seedVilla(t, repo, "Summit Lodge", "Goa", 2, 400)
	seedVilla(t, repo, "Lake House", "Kerala", 2, 150)

	got, err := svc.Filter(ctx, FilterParams{Location: "Goa", MinPrice: 50, MaxPrice: 200})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, cheap.ID, got[0].ID)
	assert.Equal(t, mid.ID, got[1].ID)
}

func TestFilterByBedrooms(t *testing.T) {
	repo := memory.NewVillaRepository()
	svc := &Service{Villas: repo}

	big := seedVilla(t, repo, "Grand Villa", "Goa", 5, 500)
	seedVilla(t, repo, "Tiny Hut", "Goa", 1, 50)

	got, err := svc.Filter(context.Background(), FilterParams{Bedrooms: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, big.ID, got[0].ID)
}

func TestCreateValidation(t *testing.T) {
	svc := &Service{Villas: memory.NewVillaRepository()}
	ctx := context.Background()

	_, err := svc.Create(ctx, domainvilla.CreateParams{PricePerNight: 100})
	assert.ErrorIs(t, err, domainvilla.ErrNameRequired)

	_, err = svc.Create(ctx, domainvilla.CreateParams{Name: "Sea Breeze"})
	assert.ErrorIs(t, err, domainvilla.ErrInvalidPrice)
}

func TestUpdatePartialFields(t *testing.T) {
	repo := memory.NewVillaRepository()
	svc := &Service{Villas: repo, Now: func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }}
	ctx := context.Background()

	v := seedVilla(t, repo, "Sea Breeze", "Goa", 2, 150)

	newPrice := int64(175)
	trending := true
	updated, err := svc.Update(ctx, v.ID, UpdateParams{PricePerNight: &newPrice, IsTrending: &trending})
	require.NoError(t, err)
	assert.Equal(t, int64(175), updated.PricePerNight)
	assert.True(t, updated.IsTrending)
	assert.Equal(t, "Sea Breeze", updated.Name)
	assert.Equal(t, "Goa", updated.Location)

	badPrice := int64(0)
	_, err = svc.Update(ctx, v.ID, UpdateParams{PricePerNight: &badPrice})
	assert.ErrorIs(t, err, domainvilla.ErrInvalidPrice)

	_, err = svc.Update(ctx, "missing", UpdateParams{})
	assert.ErrorIs(t, err, domainvilla.ErrNotFound)
}

func TestAddPhoto(t *testing.T) {
	repo := memory.NewVillaRepository()
	uploader := &fakeUploader{}
	svc := &Service{Villas: repo, Photos: uploader}
	ctx := context.Background()

	v := seedVilla(t, repo, "Sea Breeze", "Goa", 2, 150)

	url, err := svc.AddPhoto(ctx, v.ID, "pool.jpg", strings.NewReader("jpeg bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://photos.example.com/villas/"+string(v.ID)+"/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	stored, err := repo.ByID(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, stored.Images, 1)
	assert.Equal(t, url, stored.Images[0])
	require.Len(t, uploader.keys, 1)
}

func TestAddPhotoWithoutStorage(t *testing.T) {
	repo := memory.NewVillaRepository()
	svc := &Service{Villas: repo}

	v := seedVilla(t, repo, "Sea Breeze", "Goa", 2, 150)

	_, err := svc.AddPhoto(context.Background(), v.ID, "pool.jpg", strings.NewReader("x"), "image/jpeg")
	assert.Error(t, err)
}

func TestFeaturedLimit(t *testing.T) {
	repo := memory.NewVillaRepository()
	svc := &Service{Villas: repo}
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		v := seedVilla(t, repo, "Villa "+name, "Goa", 2, 100)
		featured := true
		_, err := svc.Update(ctx, v.ID, UpdateParams{IsFeatured: &featured})
		require.NoError(t, err)
	}

	got, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 6)
}
