package port

import (
	"context"

	"listings-service/internal/core/domain"
)

// Listing change actions carried on the event bus.
const (
	ListingActionCreated = "created"
	ListingActionUpdated = "updated"
	ListingActionDeleted = "deleted"
)

// ListingEventsPort publishes listing change notifications. Publishing is
// best-effort: use cases log failures and move on.
type ListingEventsPort interface {
	PublishChanged(ctx context.Context, action string, rec domain.ListingRecord, synced bool) error
}
