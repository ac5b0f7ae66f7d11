package usecase

import (
	"context"
	"errors"
	"time"

	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

// Storage values for UpsertResult.
const (
	StorageRemote = "remote"
	StorageLocal  = "local"
)

// UpsertListingUseCase writes a listing to the remote store and degrades to
// the local cache when the remote side fails or is not configured. Unlike the
// old admin backend, the degradation is not silent: the result carries an
// explicit sync state so the UI can show "saved locally, sync pending".
type UpsertListingUseCase struct {
	remote port.RemoteStorePort // nil in local-only mode
	cache  port.ListingCachePort
	events port.ListingEventsPort // nil when no broker is configured
}

func NewUpsertListingUseCase(remote port.RemoteStorePort, cache port.ListingCachePort, events port.ListingEventsPort) *UpsertListingUseCase {
	return &UpsertListingUseCase{remote: remote, cache: cache, events: events}
}

func (uc *UpsertListingUseCase) UpsertListing(ctx context.Context, payload domain.UpsertPayload) (*usecases_port.UpsertResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpsertListing",
		"listing_id": payload.ID,
	})
	ucLogger.Debug("Use case started", nil)

	insertPath := payload.ID == ""
	if insertPath {
		// Fail before any write is attempted, local or remote.
		if err := payload.ValidateForInsert(); err != nil {
			ucLogger.Warn("Payload failed insert validation", port.Fields{"error": err.Error()})
			return nil, err
		}
	}

	result, err := uc.write(ctx, payload, insertPath, ucLogger)
	if err != nil {
		return nil, err
	}

	action := port.ListingActionUpdated
	if insertPath {
		action = port.ListingActionCreated
	}
	uc.publish(ctx, action, result.Listing, result.Synced, ucLogger)

	ucLogger.Info("Use case finished", port.Fields{
		"listing_id": result.Listing.ID,
		"storage":    result.Storage,
		"synced":     result.Synced,
	})
	return result, nil
}

func (uc *UpsertListingUseCase) write(ctx context.Context, payload domain.UpsertPayload, insertPath bool, logger port.LoggerPort) (*usecases_port.UpsertResult, error) {
	if uc.remote != nil {
		rec, err := uc.writeRemote(ctx, payload, insertPath)
		if err == nil {
			return &usecases_port.UpsertResult{Listing: *rec, Storage: StorageRemote, Synced: true}, nil
		}

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		logger.Error("Remote write failed, degrading to local cache", err, nil)
	}

	rec, err := uc.cache.Upsert(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &usecases_port.UpsertResult{Listing: *rec, Storage: StorageLocal, Synced: false}, nil
}

func (uc *UpsertListingUseCase) writeRemote(ctx context.Context, payload domain.UpsertPayload, insertPath bool) (*domain.ListingRecord, error) {
	if !insertPath {
		rec, err := uc.remote.Update(ctx, payload)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// Id supplied but unknown to the remote store: the upsert contract
		// turns this into an insert, keeping the caller's id.
		if err := payload.ValidateForInsert(); err != nil {
			return nil, err
		}
	}
	return uc.remote.Insert(ctx, NewRecordFromPayload(payload))
}

func (uc *UpsertListingUseCase) publish(ctx context.Context, action string, rec domain.ListingRecord, synced bool, logger port.LoggerPort) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishChanged(ctx, action, rec, synced); err != nil {
		logger.Error("Failed to publish listing change event", err, port.Fields{"action": action})
	}
}

// NewRecordFromPayload materializes a full record from an insert payload:
// generated id when none was supplied, fresh timestamps, unpublished and
// unfeatured by default, empty (non-nil) feature and image lists. The payload
// must already have passed ValidateForInsert.
func NewRecordFromPayload(payload domain.UpsertPayload) domain.ListingRecord {
	now := time.Now().UTC()

	rec := domain.ListingRecord{
		ID:        payload.ID,
		CreatedAt: now,
		UpdatedAt: now,
		Features:  []string{},
		Images:    []string{},
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	payload.ApplyTo(&rec)
	return rec
}
