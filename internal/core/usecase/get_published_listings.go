package usecase

import (
	"context"

	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
)

type GetPublishedListingsUseCase struct {
	rec reconciler
}

func NewGetPublishedListingsUseCase(remote port.RemoteStorePort, cache port.ListingCachePort, seed port.SeedSourcePort) *GetPublishedListingsUseCase {
	return &GetPublishedListingsUseCase{rec: reconciler{remote: remote, cache: cache, seed: seed}}
}

func (uc *GetPublishedListingsUseCase) GetPublishedListings(ctx context.Context) []domain.ListingRecord {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetPublishedListings"})

	ucLogger.Debug("Use case started", nil)
	result := uc.rec.listings(ctx, domain.ScopePublished)
	ucLogger.Info("Use case finished", port.Fields{"count": len(result)})

	return result
}
