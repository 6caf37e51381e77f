package dto

import (
	domainvilla "villastay/internal/domain/villa"
)

type VillaSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	PricePerNight int64    `json:"price_per_night"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	MaxGuests     int      `json:"max_guests"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	IsFeatured    bool     `json:"is_featured"`
	IsTrending    bool     `json:"is_trending"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
}

type VillaCollection struct {
	Items []VillaSummary `json:"items"`
}

func MapVillaSummary(v *domainvilla.Villa) VillaSummary {
	if v == nil {
		return VillaSummary{}
	}
	return VillaSummary{
		ID:            string(v.ID),
		Name:          v.Name,
		Location:      v.Location,
		Description:   v.Description,
		PricePerNight: v.PricePerNight,
		Bedrooms:      v.Bedrooms,
		Bathrooms:     v.Bathrooms,
		MaxGuests:     v.MaxGuests,
		Amenities:     v.Amenities,
		Images:        v.Images,
		IsFeatured:    v.IsFeatured,
		IsTrending:    v.IsTrending,
		Rating:        v.Rating,
		ReviewCount:   v.ReviewCount,
	}
}

func MapVillaCollection(items []*domainvilla.Villa) VillaCollection {
	out := VillaCollection{Items: make([]VillaSummary, 0, len(items))}
	for _, v := range items {
		out.Items = append(out.Items, MapVillaSummary(v))
	}
	return out
}
