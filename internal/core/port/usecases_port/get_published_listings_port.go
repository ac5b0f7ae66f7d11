package usecases_port

import (
	"context"

	"listings-service/internal/core/domain"
)

type GetPublishedListingsUseCase interface {
	GetPublishedListings(ctx context.Context) []domain.ListingRecord
}
