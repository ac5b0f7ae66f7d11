package usecases_port

import "context"

type DeleteListingUseCase interface {
	DeleteListing(ctx context.Context, id string) bool
}
