package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listings-service/internal/contextkeys"
	"listings-service/internal/contracts"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ListingChangedDTO is the wire shape of a listing change notification.
type ListingChangedDTO struct {
	EventID    string    `json:"event_id"`
	Action     string    `json:"action"`
	ListingID  string    `json:"listing_id"`
	Slug       string    `json:"slug,omitempty"`
	Synced     bool      `json:"synced"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ListingEventsAdapter publishes listing change events to the listings
// exchange. Payloads are schema-checked before they leave the service.
type ListingEventsAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

func NewListingEventsAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*ListingEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &ListingEventsAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *ListingEventsAdapter) PublishChanged(ctx context.Context, action string, rec domain.ListingRecord, synced bool) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "ListingEventsAdapter",
		"routing_key": a.routingKey,
		"listing_id":  rec.ID,
		"action":      action,
	})

	dto := ListingChangedDTO{
		EventID:    uuid.New().String(),
		Action:     action,
		ListingID:  rec.ID,
		Slug:       rec.Slug,
		Synced:     synced,
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event: %w", err)
	}
	if err := contracts.ValidateListingChangedEvent(body); err != nil {
		return fmt.Errorf("rabbitmq adapter: event failed contract validation: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish listing change event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event for listing %s: %w", rec.ID, err)
	}

	adapterLogger.Debug("Published listing change event", port.Fields{"event_id": dto.EventID})
	return nil
}
