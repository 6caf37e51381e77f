package villa

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("villa: not found")
	ErrNameRequired = errors.New("villa: name is required")
	ErrInvalidPrice = errors.New("villa: price per night must be positive")
)

type ID string

// Villa is the marketed property. Bookings reference it by ID but the
// store never enforces the link.
type Villa struct {
	ID            ID
	Name          string
	Location      string
	Description   string
	PricePerNight int64
	Bedrooms      int
	Bathrooms     int
	MaxGuests     int
	Amenities     []string
	Images        []string
	IsFeatured    bool
	IsTrending    bool
	Rating        float64
	ReviewCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FindParams carries the equality predicates the document store can
// evaluate. Price bounds are not here on purpose: they are applied
// in memory by the caller.
type FindParams struct {
	Location string
	Bedrooms int
}

type Repository interface {
	All(ctx context.Context) ([]*Villa, error)
	ByID(ctx context.Context, id ID) (*Villa, error)
	Featured(ctx context.Context, limit int) ([]*Villa, error)
	Trending(ctx context.Context, limit int) ([]*Villa, error)
	Find(ctx context.Context, params FindParams) ([]*Villa, error)
	Insert(ctx context.Context, v *Villa) error
	Update(ctx context.Context, v *Villa) error
	Delete(ctx context.Context, id ID) error
}

type CreateParams struct {
	Name          string
	Location      string
	Description   string
	PricePerNight int64
	Bedrooms      int
	Bathrooms     int
	MaxGuests     int
	Amenities     []string
	Images        []string
	IsFeatured    bool
	IsTrending    bool
	Now           time.Time
}

func New(params CreateParams) (*Villa, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if params.PricePerNight <= 0 {
		return nil, ErrInvalidPrice
	}
	now := params.Now.UTC()
	return &Villa{
		Name:          strings.TrimSpace(params.Name),
		Location:      params.Location,
		Description:   params.Description,
		PricePerNight: params.PricePerNight,
		Bedrooms:      params.Bedrooms,
		Bathrooms:     params.Bathrooms,
		MaxGuests:     params.MaxGuests,
		Amenities:     append([]string(nil), params.Amenities...),
		Images:        append([]string(nil), params.Images...),
		IsFeatured:    params.IsFeatured,
		IsTrending:    params.IsTrending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// AddImage appends a photo URL, skipping duplicates.
func (v *Villa) AddImage(url string, now time.Time) {
	for _, existing := range v.Images {
		if existing == url {
			return
		}
	}
	v.Images = append(v.Images, url)
	v.UpdatedAt = now.UTC()
}
