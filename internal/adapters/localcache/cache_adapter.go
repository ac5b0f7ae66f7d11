package localcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listings-service/internal/constants"
	"listings-service/internal/contextkeys"
	"listings-service/internal/contracts"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
)

// CacheAdapter implements ListingCachePort on top of an injected blob store.
// The whole collection lives under one key as a JSON array; any record that
// fails the schema invalidates the entire blob, so a corrupted cache never
// partially loads.
type CacheAdapter struct {
	store port.BlobStorePort
	key   string

	now func() time.Time
}

func NewCacheAdapter(store port.BlobStorePort) (*CacheAdapter, error) {
	if store == nil {
		return nil, fmt.Errorf("cache adapter: blob store cannot be nil")
	}
	return &CacheAdapter{
		store: store,
		key:   constants.CacheKeyListings,
		now:   time.Now,
	}, nil
}

func (a *CacheAdapter) Read(ctx context.Context) ([]domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CacheAdapter",
	})

	blob, ok, err := a.store.Get(a.key)
	if err != nil {
		return nil, fmt.Errorf("cache adapter: failed to read blob: %w", err)
	}
	if !ok {
		return nil, nil
	}

	if err := contracts.ValidateCacheBlob(blob); err != nil {
		logger.Warn("Cache blob failed schema validation, treating cache as absent", port.Fields{
			"error": err.Error(),
		})
		return nil, nil
	}

	var records []domain.ListingRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		logger.Warn("Cache blob failed to parse, treating cache as absent", port.Fields{
			"error": err.Error(),
		})
		return nil, nil
	}

	return domain.DeduplicateByID(records), nil
}

func (a *CacheAdapter) Write(ctx context.Context, records []domain.ListingRecord) error {
	deduped := domain.DeduplicateByID(records)

	blob, err := json.Marshal(deduped)
	if err != nil {
		return fmt.Errorf("cache adapter: failed to marshal records: %w", err)
	}
	if err := a.store.Set(a.key, blob); err != nil {
		return fmt.Errorf("cache adapter: failed to persist records: %w", err)
	}
	return nil
}

func (a *CacheAdapter) Upsert(ctx context.Context, payload domain.UpsertPayload) (*domain.ListingRecord, error) {
	records, err := a.Read(ctx)
	if err != nil {
		return nil, err
	}

	if payload.ID != "" {
		for i := range records {
			if records[i].ID != payload.ID {
				continue
			}
			payload.ApplyTo(&records[i])
			records[i].UpdatedAt = a.stampAfter(records[i].UpdatedAt)
			if err := a.Write(ctx, records); err != nil {
				return nil, err
			}
			rec := records[i]
			return &rec, nil
		}
	}

	// Insert path: id absent or unknown.
	if err := payload.ValidateForInsert(); err != nil {
		return nil, err
	}

	now := a.now().UTC()
	rec := domain.ListingRecord{
		ID:        payload.ID,
		CreatedAt: now,
		UpdatedAt: now,
		Features:  []string{},
		Images:    []string{},
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	payload.ApplyTo(&rec)

	records = append(records, rec)
	if err := a.Write(ctx, records); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (a *CacheAdapter) Delete(ctx context.Context, id string) (bool, error) {
	records, err := a.Read(ctx)
	if err != nil {
		return false, err
	}

	remaining := make([]domain.ListingRecord, 0, len(records))
	removed := false
	for _, rec := range records {
		if rec.ID == id {
			removed = true
			continue
		}
		remaining = append(remaining, rec)
	}

	if !removed {
		return false, nil
	}
	if err := a.Write(ctx, remaining); err != nil {
		return false, err
	}
	return true, nil
}

// stampAfter returns the current time, nudged forward when the clock has not
// visibly advanced past the previous stamp. updated_at must grow strictly.
func (a *CacheAdapter) stampAfter(prev time.Time) time.Time {
	now := a.now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}
