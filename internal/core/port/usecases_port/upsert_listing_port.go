package usecases_port

import (
	"context"

	"listings-service/internal/core/domain"
)

// UpsertResult reports where the write landed. Storage is "remote" when the
// hosted store accepted it, "local" when the operation degraded to the cache.
type UpsertResult struct {
	Listing domain.ListingRecord
	Storage string
	Synced  bool
}

type UpsertListingUseCase interface {
	UpsertListing(ctx context.Context, payload domain.UpsertPayload) (*UpsertResult, error)
}
