package usecase

import (
	"context"
	"fmt"
	"time"

	"listings-service/internal/core/domain"
)

// fakeRemote is an in-memory RemoteStorePort. Setting err makes every
// operation fail with it, simulating an unreachable remote store.
type fakeRemote struct {
	rows []domain.ListingRecord
	err  error

	inserted []domain.ListingRecord
}

func (f *fakeRemote) SelectPublished(ctx context.Context) ([]domain.ListingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return domain.FilterByScope(f.rows, domain.ScopePublished), nil
}

func (f *fakeRemote) SelectAll(ctx context.Context) ([]domain.ListingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.ListingRecord(nil), f.rows...), nil
}

func (f *fakeRemote) Insert(ctx context.Context, rec domain.ListingRecord) (*domain.ListingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = append(f.inserted, rec)
	f.rows = append(f.rows, rec)
	return &rec, nil
}

func (f *fakeRemote) Update(ctx context.Context, payload domain.UpsertPayload) (*domain.ListingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.rows {
		if f.rows[i].ID == payload.ID {
			payload.ApplyTo(&f.rows[i])
			f.rows[i].UpdatedAt = f.rows[i].UpdatedAt.Add(time.Millisecond)
			rec := f.rows[i]
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRemote) Delete(ctx context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeCache is an in-memory ListingCachePort following the same contract as
// the real adapter: nil means absent, inserts are validated, updated_at grows.
type fakeCache struct {
	records []domain.ListingRecord
	readErr error

	nextID int
}

func (f *fakeCache) Read(ctx context.Context) ([]domain.ListingRecord, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if f.records == nil {
		return nil, nil
	}
	return append([]domain.ListingRecord(nil), f.records...), nil
}

func (f *fakeCache) Write(ctx context.Context, records []domain.ListingRecord) error {
	f.records = append([]domain.ListingRecord(nil), records...)
	return nil
}

func (f *fakeCache) Upsert(ctx context.Context, payload domain.UpsertPayload) (*domain.ListingRecord, error) {
	if payload.ID != "" {
		for i := range f.records {
			if f.records[i].ID == payload.ID {
				payload.ApplyTo(&f.records[i])
				f.records[i].UpdatedAt = f.records[i].UpdatedAt.Add(time.Millisecond)
				rec := f.records[i]
				return &rec, nil
			}
		}
	}

	if err := payload.ValidateForInsert(); err != nil {
		return nil, err
	}

	f.nextID++
	now := time.Now().UTC()
	rec := domain.ListingRecord{
		ID:        payload.ID,
		CreatedAt: now,
		UpdatedAt: now,
		Features:  []string{},
		Images:    []string{},
	}
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("local-%d", f.nextID)
	}
	payload.ApplyTo(&rec)
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeCache) Delete(ctx context.Context, id string) (bool, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeSeed is a SeedSourcePort over a fixed record list.
type fakeSeed struct {
	records []domain.ListingRecord
}

func (f *fakeSeed) Generate() []domain.ListingRecord {
	return append([]domain.ListingRecord(nil), f.records...)
}

// fakeEvents records every published change notification.
type fakeEvents struct {
	err       error
	published []publishedEvent
}

type publishedEvent struct {
	action    string
	listingID string
	synced    bool
}

func (f *fakeEvents) PublishChanged(ctx context.Context, action string, rec domain.ListingRecord, synced bool) error {
	f.published = append(f.published, publishedEvent{action: action, listingID: rec.ID, synced: synced})
	return f.err
}

func record(id, slug string, created time.Time, published bool) domain.ListingRecord {
	return domain.ListingRecord{
		ID:        id,
		CreatedAt: created,
		UpdatedAt: created,
		Title:     "Listing " + id,
		Slug:      slug,
		Category:  domain.CategoryHaus,
		Status:    "Zu verkaufen",
		Price:     100000,
		Area:      100,
		Rooms:     3,
		Address:   "Str 1",
		City:      "Ladenburg",
		Zip:       "68526",
		Features:  []string{},
		Images:    []string{},
		Published: published,
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
