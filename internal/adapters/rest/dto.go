package rest

import (
	"time"

	"listings-service/internal/core/domain"
)

// ListingResponse is the admin-facing record shape. Field names mirror the
// remote table columns so the admin UI can round-trip payloads unchanged.
type ListingResponse struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Category    string    `json:"type"`
	Status      string    `json:"status"`
	Price       int64     `json:"price"`
	PriceSuffix string    `json:"price_suffix,omitempty"`
	Area        float64   `json:"area"`
	Rooms       int       `json:"rooms"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Zip         string    `json:"zip"`
	Description string    `json:"description,omitempty"`
	Features    []string  `json:"features"`
	Images      []string  `json:"images"`
	IsFeatured  bool      `json:"is_featured"`
	Published   bool      `json:"published"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
}

// PublicListingResponse is the card shape the public pages consume: guaranteed
// primary image, derived price type, optional geohash for the map widget.
type PublicListingResponse struct {
	ListingResponse

	PriceType string `json:"price_type"`
	Image     string `json:"image"`
	Geohash   string `json:"geohash,omitempty"`
}

// UpsertListingResponse reports the stored record together with where the
// write landed, so the admin UI can show "saved locally, sync pending".
type UpsertListingResponse struct {
	Listing ListingResponse `json:"listing"`
	Storage string          `json:"storage"`
	Synced  bool            `json:"synced"`
}

type DeleteListingResponse struct {
	Deleted bool `json:"deleted"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func toListingResponse(rec domain.ListingRecord) ListingResponse {
	return ListingResponse{
		ID:          rec.ID,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		Title:       rec.Title,
		Slug:        rec.Slug,
		Category:    rec.Category,
		Status:      rec.Status,
		Price:       rec.Price,
		PriceSuffix: rec.PriceSuffix,
		Area:        rec.Area,
		Rooms:       rec.Rooms,
		Address:     rec.Address,
		City:        rec.City,
		Zip:         rec.Zip,
		Description: rec.Description,
		Features:    rec.Features,
		Images:      rec.Images,
		IsFeatured:  rec.IsFeatured,
		Published:   rec.Published,
		Latitude:    rec.Latitude,
		Longitude:   rec.Longitude,
	}
}

func toPublicListingResponse(pub domain.PublicListing) PublicListingResponse {
	return PublicListingResponse{
		ListingResponse: toListingResponse(pub.ListingRecord),
		PriceType:       pub.PriceType,
		Image:           pub.Image,
		Geohash:         pub.Geohash,
	}
}
