package seed

import (
	"fmt"
	"time"

	"listings-service/internal/core/domain"
)

// Price types the seed data distinguishes. Everything that is not a rental is
// offered for sale.
const (
	priceTypeKauf  = "kauf"
	priceTypeMiete = "miete"
)

// Statuses derived for seed records.
const (
	statusForSale = "Zu verkaufen"
	statusForRent = "Zu vermieten"
)

// seedBaseTime anchors the generated timestamps. Each seed record is stamped
// one minute after its predecessor so sort-by-date stays deterministic.
var seedBaseTime = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// Listing is one entry of the static seed set.
type Listing struct {
	ID          string
	Title       string
	Category    string
	PriceType   string
	Price       int64
	PriceSuffix string
	Area        float64
	Rooms       int
	Address     string
	City        string
	Zip         string
	Description string
	Features    []string
	Images      []string
	IsFeatured  bool
	Published   bool
	Latitude    float64
	Longitude   float64
}

// Generator derives full listing records from a static seed set. Pure: the
// same seed list always produces the same records, ids and slugs included.
type Generator struct {
	seeds []Listing
}

// NewGenerator builds a generator over the default brokerage seed set.
func NewGenerator() *Generator {
	return &Generator{seeds: defaultSeeds}
}

// NewGeneratorWithSeeds builds a generator over a caller-supplied seed set.
func NewGeneratorWithSeeds(seeds []Listing) *Generator {
	return &Generator{seeds: seeds}
}

// Generate maps every seed to the canonical record shape. Slugs are derived
// from the titles and disambiguated within the set; timestamps grow strictly
// with seed order.
func (g *Generator) Generate() []domain.ListingRecord {
	records := make([]domain.ListingRecord, 0, len(g.seeds))
	usedSlugs := make(map[string]int, len(g.seeds))

	for i, s := range g.seeds {
		slug := domain.Slugify(s.Title)
		if n, taken := usedSlugs[slug]; taken {
			usedSlugs[slug] = n + 1
			slug = fmt.Sprintf("%s-%d", slug, n+1)
		} else {
			usedSlugs[slug] = 1
		}

		status := statusForSale
		if s.PriceType == priceTypeMiete {
			status = statusForRent
		}

		stamp := seedBaseTime.Add(time.Duration(i) * time.Minute)
		lat, lng := s.Latitude, s.Longitude

		rec := domain.ListingRecord{
			ID:          s.ID,
			CreatedAt:   stamp,
			UpdatedAt:   stamp,
			Title:       s.Title,
			Slug:        slug,
			Category:    s.Category,
			Status:      status,
			Price:       s.Price,
			PriceSuffix: s.PriceSuffix,
			Area:        s.Area,
			Rooms:       s.Rooms,
			Address:     s.Address,
			City:        s.City,
			Zip:         s.Zip,
			Description: s.Description,
			Features:    append([]string{}, s.Features...),
			Images:      append([]string{}, s.Images...),
			IsFeatured:  s.IsFeatured,
			Published:   s.Published,
		}
		if lat != 0 || lng != 0 {
			rec.Latitude = &lat
			rec.Longitude = &lng
		}
		records = append(records, rec)
	}

	return records
}
