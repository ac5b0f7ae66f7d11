package port

import (
	"context"

	"listings-service/internal/core/domain"
)

// RemoteStorePort is the network boundary to the hosted relational store.
// Every method may fail with *domain.RemoteError; callers must not assume the
// remote side is reachable.
type RemoteStorePort interface {
	// SelectPublished returns published rows ordered by creation time, newest first.
	SelectPublished(ctx context.Context) ([]domain.ListingRecord, error)
	// SelectAll returns all rows ordered by creation time, newest first.
	SelectAll(ctx context.Context) ([]domain.ListingRecord, error)

	// Insert persists a new row and returns it as stored by the server.
	Insert(ctx context.Context, rec domain.ListingRecord) (*domain.ListingRecord, error)
	// Update applies a sparse patch to the row with payload.ID and returns the
	// updated row. domain.ErrNotFound when no row matches.
	Update(ctx context.Context, payload domain.UpsertPayload) (*domain.ListingRecord, error)
	// Delete removes the row by id and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
