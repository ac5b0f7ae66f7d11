package port

import "listings-service/internal/core/domain"

// SeedSourcePort supplies the deterministic seed records used when neither the
// remote store nor the local cache has any data.
type SeedSourcePort interface {
	Generate() []domain.ListingRecord
}
