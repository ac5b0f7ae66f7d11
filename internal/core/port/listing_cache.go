package port

import (
	"context"

	"listings-service/internal/core/domain"
)

// ListingCachePort is the durable per-device fallback store. It keeps the
// admin area usable when the remote store is unreachable or not configured.
type ListingCachePort interface {
	// Read returns nil (not an empty slice) when no cache exists or its content
	// fails validation — a corrupted cache never partially loads.
	Read(ctx context.Context) ([]domain.ListingRecord, error)
	// Write overwrites the cache with the de-duplicated records.
	Write(ctx context.Context, records []domain.ListingRecord) error
	// Upsert patches the record matching payload.ID or inserts a new one.
	// Returns *domain.ValidationError when an insert misses required fields.
	Upsert(ctx context.Context, payload domain.UpsertPayload) (*domain.ListingRecord, error)
	// Delete removes the record by id and reports whether one was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// BlobStorePort is the injected key/value capability the cache persists
// through. Implementations: file on disk, in-memory (tests, ephemeral mode).
type BlobStorePort interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}
