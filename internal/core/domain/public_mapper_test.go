package domain

import (
	"reflect"
	"testing"
	"time"
)

func sampleRecord(id string) ListingRecord {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	return ListingRecord{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Title:     "Haus am Neckar",
		Slug:      "haus-am-neckar",
		Category:  CategoryHaus,
		Status:    "Zu verkaufen",
		Price:     450000,
		Area:      120,
		Rooms:     4,
		Address:   "Neckarstraße 1",
		City:      "Ladenburg",
		Zip:       "68526",
		Features:  []string{"Garten"},
		Images:    []string{"/images/a.jpg", "/images/b.jpg"},
		Published: true,
	}
}

func TestMapToPublicPriceType(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   string
	}{
		{"sale", "Zu verkaufen", PriceTypeBuy},
		{"sold", "Verkauft", PriceTypeBuy},
		{"rent", "Zu vermieten", PriceTypeRent},
		{"rented", "Vermietet", PriceTypeRent},
		{"monthly price", "1.200 € /Monat", PriceTypeRent},
		{"case insensitive", "ZU VERMIETEN", PriceTypeRent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord("r1")
			rec.Status = tt.status
			if got := MapToPublic(rec).PriceType; got != tt.want {
				t.Fatalf("PriceType for status %q = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestMapToPublicUsesFirstImage(t *testing.T) {
	pub := MapToPublic(sampleRecord("r1"))
	if pub.Image != "/images/a.jpg" {
		t.Fatalf("Image = %q, want first image", pub.Image)
	}
	if len(pub.Images) != 2 {
		t.Fatalf("Images length = %d, want 2", len(pub.Images))
	}
}

func TestMapToPublicFallbackImageIsDeterministic(t *testing.T) {
	rec := sampleRecord("no-images")
	rec.Images = nil

	first := MapToPublic(rec)
	second := MapToPublic(rec)

	if first.Image == "" {
		t.Fatal("fallback Image is empty")
	}
	if first.Image != second.Image {
		t.Fatalf("fallback Image changed between calls: %q then %q", first.Image, second.Image)
	}
	if !reflect.DeepEqual(first.Images, []string{first.Image}) {
		t.Fatalf("Images = %v, want single-element fallback", first.Images)
	}

	// A different id may map elsewhere in the pool, but the same id never moves.
	if got := FallbackImage("no-images"); got != first.Image {
		t.Fatalf("FallbackImage = %q, want %q", got, first.Image)
	}
}

func TestMapToPublicIsIdempotentAndPure(t *testing.T) {
	rec := sampleRecord("r1")
	rec.Images = nil

	before := sampleRecord("r1")
	before.Images = nil

	first := MapToPublic(rec)
	second := MapToPublic(rec)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("MapToPublic not idempotent: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(rec, before) {
		t.Fatalf("MapToPublic mutated its input: %+v", rec)
	}
}

func TestMapToPublicGeohash(t *testing.T) {
	rec := sampleRecord("r1")
	lat, lng := 49.4731, 8.6089
	rec.Latitude = &lat
	rec.Longitude = &lng

	pub := MapToPublic(rec)
	if len(pub.Geohash) != publicGeohashPrecision {
		t.Fatalf("Geohash = %q, want %d characters", pub.Geohash, publicGeohashPrecision)
	}
	if again := MapToPublic(rec); again.Geohash != pub.Geohash {
		t.Fatalf("Geohash changed between calls: %q then %q", again.Geohash, pub.Geohash)
	}

	rec.Latitude = nil
	if got := MapToPublic(rec).Geohash; got != "" {
		t.Fatalf("Geohash without coordinates = %q, want empty", got)
	}
}
