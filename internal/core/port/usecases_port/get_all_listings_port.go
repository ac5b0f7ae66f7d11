package usecases_port

import (
	"context"

	"listings-service/internal/core/domain"
)

type GetAllListingsUseCase interface {
	GetAllListings(ctx context.Context) []domain.ListingRecord
}
