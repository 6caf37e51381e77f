package villa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	domainvilla "villastay/internal/domain/villa"
)

const featuredLimit = 6

// Uploader stores a photo and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

type Service struct {
	Villas domainvilla.Repository
	Photos Uploader
	Logger *slog.Logger
	Now    func() time.Time
}

// FilterParams mixes store-side equality filters with price bounds that
// the store cannot evaluate alongside them; the price window is applied
// in memory after the fetch.
type FilterParams struct {
	Location string
	Bedrooms int
	MinPrice int64
	MaxPrice int64
}

func (s *Service) All(ctx context.Context) ([]*domainvilla.Villa, error) {
	list, err := s.Villas.All(ctx)
	if err != nil {
		return nil, err
	}
	sortByName(list)
	return list, nil
}

func (s *Service) ByID(ctx context.Context, id domainvilla.ID) (*domainvilla.Villa, error) {
	return s.Villas.ByID(ctx, id)
}

func (s *Service) Featured(ctx context.Context) ([]*domainvilla.Villa, error) {
	return s.Villas.Featured(ctx, featuredLimit)
}

func (s *Service) Trending(ctx context.Context) ([]*domainvilla.Villa, error) {
	return s.Villas.Trending(ctx, featuredLimit)
}

// Filter fetches by equality predicates and applies the price window
// client-side.
func (s *Service) Filter(ctx context.Context, params FilterParams) ([]*domainvilla.Villa, error) {
	list, err := s.Villas.Find(ctx, domainvilla.FindParams{
		Location: params.Location,
		Bedrooms: params.Bedrooms,
	})
	if err != nil {
		return nil, err
	}
	filtered := list[:0]
	for _, v := range list {
		if params.MinPrice > 0 && v.PricePerNight < params.MinPrice {
			continue
		}
		if params.MaxPrice > 0 && v.PricePerNight > params.MaxPrice {
			continue
		}
		filtered = append(filtered, v)
	}
	sortByName(filtered)
	return filtered, nil
}

func (s *Service) Create(ctx context.Context, params domainvilla.CreateParams) (*domainvilla.Villa, error) {
	if params.Now.IsZero() {
		params.Now = s.now()
	}
	v, err := domainvilla.New(params)
	if err != nil {
		return nil, err
	}
	if err := s.Villas.Insert(ctx, v); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("villa created", "villa_id", v.ID, "name", v.Name)
	}
	return v, nil
}

type UpdateParams struct {
	Name          *string
	Location      *string
	Description   *string
	PricePerNight *int64
	Bedrooms      *int
	Bathrooms     *int
	MaxGuests     *int
	Amenities     []string
	IsFeatured    *bool
	IsTrending    *bool
}

func (s *Service) Update(ctx context.Context, id domainvilla.ID, params UpdateParams) (*domainvilla.Villa, error) {
	v, err := s.Villas.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, domainvilla.ErrNameRequired
		}
		v.Name = strings.TrimSpace(*params.Name)
	}
	if params.Location != nil {
		v.Location = *params.Location
	}
	if params.Description != nil {
		v.Description = *params.Description
	}
	if params.PricePerNight != nil {
		if *params.PricePerNight <= 0 {
			return nil, domainvilla.ErrInvalidPrice
		}
		v.PricePerNight = *params.PricePerNight
	}
	if params.Bedrooms != nil {
		v.Bedrooms = *params.Bedrooms
	}
	if params.Bathrooms != nil {
		v.Bathrooms = *params.Bathrooms
	}
	if params.MaxGuests != nil {
		v.MaxGuests = *params.MaxGuests
	}
	if params.Amenities != nil {
		v.Amenities = append([]string(nil), params.Amenities...)
	}
	if params.IsFeatured != nil {
		v.IsFeatured = *params.IsFeatured
	}
	if params.IsTrending != nil {
		v.IsTrending = *params.IsTrending
	}
	v.UpdatedAt = s.now().UTC()
	if err := s.Villas.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id domainvilla.ID) error {
	return s.Villas.Delete(ctx, id)
}

// AddPhoto uploads the image and appends its URL to the villa.
func (s *Service) AddPhoto(ctx context.Context, id domainvilla.ID, filename string, reader io.Reader, contentType string) (string, error) {
	if s.Photos == nil {
		return "", fmt.Errorf("villa: photo storage not configured")
	}
	v, err := s.Villas.ByID(ctx, id)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("villas/%s/%s%s", id, uuid.NewString(), path.Ext(filename))
	url, err := s.Photos.Upload(ctx, key, reader, contentType)
	if err != nil {
		return "", err
	}
	v.AddImage(url, s.now())
	if err := s.Villas.Update(ctx, v); err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func sortByName(list []*domainvilla.Villa) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
}
