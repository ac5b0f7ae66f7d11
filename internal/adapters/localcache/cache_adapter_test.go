package localcache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"listings-service/internal/constants"
	"listings-service/internal/core/domain"
)

func newTestAdapter(t *testing.T) (*CacheAdapter, *MemoryBlobStore) {
	t.Helper()
	store := NewMemoryBlobStore()
	adapter, err := NewCacheAdapter(store)
	if err != nil {
		t.Fatalf("NewCacheAdapter returned error: %v", err)
	}
	return adapter, store
}

func cacheRecord(id, slug string, created time.Time) domain.ListingRecord {
	return domain.ListingRecord{
		ID:        id,
		CreatedAt: created,
		UpdatedAt: created,
		Title:     "Listing " + id,
		Slug:      slug,
		Category:  "haus",
		Status:    "Zu verkaufen",
		Price:     100000,
		Area:      100,
		Rooms:     3,
		Address:   "Str 1",
		City:      "Ladenburg",
		Zip:       "68526",
		Features:  []string{},
		Images:    []string{},
	}
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func int64Ptr(i int64) *int64     { return &i }
func floatPtr(f float64) *float64 { return &f }

func insertPayload() domain.UpsertPayload {
	return domain.UpsertPayload{
		Title:    strPtr("Haus X"),
		Slug:     strPtr("haus-x"),
		Category: strPtr("haus"),
		Status:   strPtr("zu_verkaufen"),
		Price:    int64Ptr(300000),
		Area:     floatPtr(120),
		Rooms:    intPtr(4),
		Address:  strPtr("Str 1"),
		City:     strPtr("Ladenburg"),
		Zip:      strPtr("68535"),
	}
}

func TestReadReturnsNilWhenNoCacheExists(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	records, err := adapter.Read(context.Background())
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if records != nil {
		t.Fatalf("Read = %v, want nil for absent cache", records)
	}
}

func TestReadTreatsCorruptBlobAsAbsent(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "{{{"},
		{"not an array", `{"id":"1"}`},
		{"record missing id", `[{"title":"x","slug":"x","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z","features":[],"images":[]}]`},
		{"features not an array", `[{"id":"1","title":"x","slug":"x","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z","features":"nope","images":[]}]`},
		{"one bad record poisons the rest", `[
			{"id":"1","title":"ok","slug":"ok","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z","features":[],"images":[]},
			{"id":2}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, store := newTestAdapter(t)
			if err := store.Set(constants.CacheKeyListings, []byte(tt.blob)); err != nil {
				t.Fatalf("Set: %v", err)
			}

			records, err := adapter.Read(context.Background())
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if records != nil {
				t.Fatalf("Read = %v, want nil for corrupt cache", records)
			}
		})
	}
}

func TestReadDeduplicatesByID(t *testing.T) {
	adapter, store := newTestAdapter(t)

	created := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	blob, _ := json.Marshal([]domain.ListingRecord{
		cacheRecord("1", "a", created),
		cacheRecord("1", "b", created),
	})
	if err := store.Set(constants.CacheKeyListings, blob); err != nil {
		t.Fatalf("Set: %v", err)
	}

	records, err := adapter.Read(context.Background())
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Read returned %d records, want exactly 1", len(records))
	}
	if records[0].ID != "1" || records[0].Slug != "a" {
		t.Fatalf("kept record = %+v, want the first occurrence of id 1", records[0])
	}
}

func TestWriteRoundTrips(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	created := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	want := []domain.ListingRecord{
		cacheRecord("1", "a", created),
		cacheRecord("2", "b", created.Add(time.Minute)),
	}
	if err := adapter.Write(ctx, want); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	got, err := adapter.Read(ctx)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("round trip = %+v, want the two written records", got)
	}
}

func TestUpsertInsertRequiresFields(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	payload := insertPayload()
	payload.City = nil

	_, err := adapter.Upsert(context.Background(), payload)
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Upsert error = %v, want *ValidationError", err)
	}

	// Validation fires before any write: the cache stays absent.
	records, err := adapter.Read(context.Background())
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if records != nil {
		t.Fatalf("cache = %v, want still absent after failed insert", records)
	}
}

func TestUpsertInsertGeneratesIDAndDefaults(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	rec, err := adapter.Upsert(context.Background(), insertPayload())
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	if rec.ID == "" {
		t.Fatal("ID is empty, want a generated id")
	}
	if rec.Published || rec.IsFeatured {
		t.Fatalf("Published/IsFeatured = %t/%t, want false/false", rec.Published, rec.IsFeatured)
	}
	if rec.Features == nil || len(rec.Features) != 0 {
		t.Fatalf("Features = %v, want empty non-nil slice", rec.Features)
	}
	if rec.Images == nil || len(rec.Images) != 0 {
		t.Fatalf("Images = %v, want empty non-nil slice", rec.Images)
	}
	if rec.CreatedAt.IsZero() || !rec.UpdatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("timestamps = %v/%v, want equal fresh stamps", rec.CreatedAt, rec.UpdatedAt)
	}
}

func TestUpsertKeepsSuppliedID(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	payload := insertPayload()
	payload.ID = "listing-7"

	rec, err := adapter.Upsert(context.Background(), payload)
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if rec.ID != "listing-7" {
		t.Fatalf("ID = %q, want the supplied id", rec.ID)
	}
}

func TestUpsertUpdateIsPartialAndBumpsUpdatedAt(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	inserted, err := adapter.Upsert(ctx, insertPayload())
	if err != nil {
		t.Fatalf("insert Upsert returned error: %v", err)
	}

	updated, err := adapter.Upsert(ctx, domain.UpsertPayload{ID: inserted.ID, Price: int64Ptr(500)})
	if err != nil {
		t.Fatalf("update Upsert returned error: %v", err)
	}

	if updated.Price != 500 {
		t.Fatalf("Price = %d, want 500", updated.Price)
	}
	if updated.Title != "Haus X" {
		t.Fatalf("Title = %q, want untouched %q", updated.Title, "Haus X")
	}
	if !updated.UpdatedAt.After(inserted.UpdatedAt) {
		t.Fatalf("UpdatedAt %v not strictly after %v", updated.UpdatedAt, inserted.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(inserted.CreatedAt) {
		t.Fatalf("CreatedAt changed: %v -> %v", inserted.CreatedAt, updated.CreatedAt)
	}
}

func TestUpsertUpdatedAtGrowsEvenWithFrozenClock(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	frozen := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	adapter.now = func() time.Time { return frozen }

	inserted, err := adapter.Upsert(ctx, insertPayload())
	if err != nil {
		t.Fatalf("insert Upsert returned error: %v", err)
	}

	updated, err := adapter.Upsert(ctx, domain.UpsertPayload{ID: inserted.ID, Price: int64Ptr(1)})
	if err != nil {
		t.Fatalf("update Upsert returned error: %v", err)
	}
	if !updated.UpdatedAt.After(inserted.UpdatedAt) {
		t.Fatalf("UpdatedAt %v not strictly after %v with frozen clock", updated.UpdatedAt, inserted.UpdatedAt)
	}
}

func TestDeleteReportsRemoval(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	inserted, err := adapter.Upsert(ctx, insertPayload())
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	removed, err := adapter.Delete(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !removed {
		t.Fatal("Delete = false, want true for existing record")
	}

	records, err := adapter.Read(ctx)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("cache still holds %d records after delete", len(records))
	}
}

func TestDeleteMissingIDLeavesCacheUnchanged(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	inserted, err := adapter.Upsert(ctx, insertPayload())
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	removed, err := adapter.Delete(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if removed {
		t.Fatal("Delete = true, want false for missing id")
	}

	records, err := adapter.Read(ctx)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(records) != 1 || records[0].ID != inserted.ID {
		t.Fatalf("cache = %+v, want unchanged single record", records)
	}
}
