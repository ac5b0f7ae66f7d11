package usecase

import (
	"context"

	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
)

type GetAllListingsUseCase struct {
	rec reconciler
}

func NewGetAllListingsUseCase(remote port.RemoteStorePort, cache port.ListingCachePort, seed port.SeedSourcePort) *GetAllListingsUseCase {
	return &GetAllListingsUseCase{rec: reconciler{remote: remote, cache: cache, seed: seed}}
}

// GetAllListings serves the admin scope: drafts included.
func (uc *GetAllListingsUseCase) GetAllListings(ctx context.Context) []domain.ListingRecord {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetAllListings"})

	ucLogger.Debug("Use case started", nil)
	result := uc.rec.listings(ctx, domain.ScopeAll)
	ucLogger.Info("Use case finished", port.Fields{"count": len(result)})

	return result
}
