package usecase

import (
	"context"

	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
)

// DeleteListingUseCase removes a listing from both sides: the remote store
// when reachable and the local cache always. The result is true when either
// side actually held the record.
type DeleteListingUseCase struct {
	remote port.RemoteStorePort
	cache  port.ListingCachePort
	events port.ListingEventsPort
}

func NewDeleteListingUseCase(remote port.RemoteStorePort, cache port.ListingCachePort, events port.ListingEventsPort) *DeleteListingUseCase {
	return &DeleteListingUseCase{remote: remote, cache: cache, events: events}
}

func (uc *DeleteListingUseCase) DeleteListing(ctx context.Context, id string) bool {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"listing_id": id,
	})
	ucLogger.Debug("Use case started", nil)

	remoteDeleted := false
	if uc.remote != nil {
		deleted, err := uc.remote.Delete(ctx, id)
		if err != nil {
			ucLogger.Error("Remote delete failed, removing from local cache only", err, nil)
		} else {
			remoteDeleted = deleted
		}
	}

	localDeleted, err := uc.cache.Delete(ctx, id)
	if err != nil {
		ucLogger.Error("Local cache delete failed", err, nil)
	}

	deleted := remoteDeleted || localDeleted
	if deleted && uc.events != nil {
		rec := domain.ListingRecord{ID: id}
		if err := uc.events.PublishChanged(ctx, port.ListingActionDeleted, rec, remoteDeleted); err != nil {
			ucLogger.Error("Failed to publish listing change event", err, nil)
		}
	}

	ucLogger.Info("Use case finished", port.Fields{
		"deleted":        deleted,
		"remote_deleted": remoteDeleted,
		"local_deleted":  localDeleted,
	})
	return deleted
}
