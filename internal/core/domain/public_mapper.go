package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"

	"github.com/mmcloughlin/geohash"
)

// Price types as the public pages consume them.
const (
	PriceTypeBuy  = "kaufen"
	PriceTypeRent = "mieten"
)

const publicGeohashPrecision = 7

// fallbackImagePool backs records without photos. Selection hashes the record
// id so the same listing always shows the same placeholder.
var fallbackImagePool = []string{
	"/images/fallback/altbau-fassade.jpg",
	"/images/fallback/wohnzimmer-hell.jpg",
	"/images/fallback/einfamilienhaus-garten.jpg",
	"/images/fallback/stadtvilla-abend.jpg",
	"/images/fallback/dachgeschoss-balkon.jpg",
}

// PublicListing is the read-only projection of a ListingRecord for the public
// pages. It always carries at least one displayable image.
type PublicListing struct {
	ListingRecord

	PriceType string `json:"price_type"`
	Image     string `json:"image"`
	Geohash   string `json:"geohash,omitempty"`
}

// IsRental reports whether a status string describes a rental. The admin UI
// stores display strings ("Zu vermieten", "1.200 € /Monat"), so this is a
// case-insensitive substring check rather than an enum comparison.
func IsRental(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "vermiet") || strings.Contains(s, "/monat") || strings.Contains(s, "miete")
}

// FallbackImage picks a placeholder from the fixed pool by hashing the id.
// Deterministic: the same id maps to the same image on every call.
func FallbackImage(id string) string {
	sum := sha256.Sum256([]byte(id))
	idx := binary.BigEndian.Uint32(sum[:4]) % uint32(len(fallbackImagePool))
	return fallbackImagePool[idx]
}

// MapToPublic projects a record into its public shape. Pure and idempotent:
// the input record is not mutated and identical input yields identical output.
func MapToPublic(rec ListingRecord) PublicListing {
	pub := PublicListing{ListingRecord: rec}

	if IsRental(rec.Status) {
		pub.PriceType = PriceTypeRent
	} else {
		pub.PriceType = PriceTypeBuy
	}

	if len(rec.Images) > 0 {
		pub.Image = rec.Images[0]
		pub.Images = append([]string(nil), rec.Images...)
	} else {
		pub.Image = FallbackImage(rec.ID)
		pub.Images = []string{pub.Image}
	}

	if rec.Latitude != nil && rec.Longitude != nil {
		pub.Geohash = geohash.EncodeWithPrecision(*rec.Latitude, *rec.Longitude, publicGeohashPrecision)
	}

	return pub
}

// MapAllToPublic projects a whole collection, preserving order.
func MapAllToPublic(records []ListingRecord) []PublicListing {
	out := make([]PublicListing, len(records))
	for i, rec := range records {
		out[i] = MapToPublic(rec)
	}
	return out
}
