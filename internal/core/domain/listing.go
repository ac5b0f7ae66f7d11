package domain

import (
	"sort"
	"time"
)

// Canonical categories. Legacy payloads from the old admin UI may still carry
// other values ("apartment", "haus", ...), so category is kept as a plain string
// and only checked for presence on insert.
const (
	CategoryWohnung     = "wohnung"
	CategoryHaus        = "haus"
	CategoryGrundstueck = "grundstueck"
	CategoryGewerbe     = "gewerbe"
)

// ListingRecord is the canonical persisted representation of a listing.
// JSON tags double as the column names of the remote `listings` table and as
// the on-disk shape of the local cache blob.
type ListingRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Category    string  `json:"type"`
	Status      string  `json:"status"`
	Price       int64   `json:"price"`
	PriceSuffix string  `json:"price_suffix,omitempty"`
	Area        float64 `json:"area"`
	Rooms       int     `json:"rooms"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Zip         string  `json:"zip"`
	Description string  `json:"description,omitempty"`

	Features []string `json:"features"`
	Images   []string `json:"images"`

	IsFeatured bool `json:"is_featured"`
	Published  bool `json:"published"`

	// Optional map coordinates. Not all records carry them; the public mapper
	// only derives a geohash when both are present.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// UpsertPayload is a sparse patch. A nil field means "leave untouched" on the
// update path and "missing" on the insert path. An empty ID selects the insert
// path; a non-empty ID that matches no record does too.
type UpsertPayload struct {
	ID string `json:"id,omitempty"`

	Title       *string  `json:"title,omitempty"`
	Slug        *string  `json:"slug,omitempty"`
	Category    *string  `json:"type,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Price       *int64   `json:"price,omitempty"`
	PriceSuffix *string  `json:"price_suffix,omitempty"`
	Area        *float64 `json:"area,omitempty"`
	Rooms       *int     `json:"rooms,omitempty"`
	Address     *string  `json:"address,omitempty"`
	City        *string  `json:"city,omitempty"`
	Zip         *string  `json:"zip,omitempty"`
	Description *string  `json:"description,omitempty"`

	Features *[]string `json:"features,omitempty"`
	Images   *[]string `json:"images,omitempty"`

	IsFeatured *bool `json:"is_featured,omitempty"`
	Published  *bool `json:"published,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// ValidateForInsert checks the fields the insert path requires. Update payloads
// are not validated here since any subset of fields is a legal patch.
func (p UpsertPayload) ValidateForInsert() error {
	var missing []string

	requireString := func(name string, val *string) {
		if val == nil || *val == "" {
			missing = append(missing, name)
		}
	}

	requireString("title", p.Title)
	requireString("slug", p.Slug)
	requireString("type", p.Category)
	requireString("status", p.Status)
	if p.Price == nil {
		missing = append(missing, "price")
	}
	if p.Area == nil {
		missing = append(missing, "area")
	}
	if p.Rooms == nil {
		missing = append(missing, "rooms")
	}
	requireString("address", p.Address)
	requireString("city", p.City)
	requireString("zip", p.Zip)

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// ApplyTo patches every non-nil field of the payload onto the record. The id
// is never touched: identity is immutable once assigned.
func (p UpsertPayload) ApplyTo(rec *ListingRecord) {
	if p.Title != nil {
		rec.Title = *p.Title
	}
	if p.Slug != nil {
		rec.Slug = *p.Slug
	}
	if p.Category != nil {
		rec.Category = *p.Category
	}
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.Price != nil {
		rec.Price = *p.Price
	}
	if p.PriceSuffix != nil {
		rec.PriceSuffix = *p.PriceSuffix
	}
	if p.Area != nil {
		rec.Area = *p.Area
	}
	if p.Rooms != nil {
		rec.Rooms = *p.Rooms
	}
	if p.Address != nil {
		rec.Address = *p.Address
	}
	if p.City != nil {
		rec.City = *p.City
	}
	if p.Zip != nil {
		rec.Zip = *p.Zip
	}
	if p.Description != nil {
		rec.Description = *p.Description
	}
	if p.Features != nil {
		rec.Features = *p.Features
	}
	if p.Images != nil {
		rec.Images = *p.Images
	}
	if p.IsFeatured != nil {
		rec.IsFeatured = *p.IsFeatured
	}
	if p.Published != nil {
		rec.Published = *p.Published
	}
	if p.Latitude != nil {
		rec.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		rec.Longitude = p.Longitude
	}
}

// Scope selects which slice of the collection a read returns.
type Scope string

const (
	// ScopePublished is the public-safe subset.
	ScopePublished Scope = "published"
	// ScopeAll is the admin view, drafts included.
	ScopeAll Scope = "all"
)

// Matches reports whether the record belongs to the scope.
func (s Scope) Matches(rec ListingRecord) bool {
	if s == ScopePublished {
		return rec.Published
	}
	return true
}

// FilterByScope returns the records matching the scope, preserving order.
func FilterByScope(records []ListingRecord, scope Scope) []ListingRecord {
	filtered := make([]ListingRecord, 0, len(records))
	for _, rec := range records {
		if scope.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// SortByNewest orders records by creation time, newest first. Ties fall back
// to id so the order stays stable across runs.
func SortByNewest(records []ListingRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
}

// DeduplicateByID keeps the first occurrence of every id, preserving order.
func DeduplicateByID(records []ListingRecord) []ListingRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]ListingRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.ID]; ok {
			continue
		}
		seen[rec.ID] = struct{}{}
		out = append(out, rec)
	}
	return out
}
