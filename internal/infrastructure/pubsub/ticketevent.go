// Package pubsub distributes full-record ticket events across dashboard
// instances over Redis Pub/Sub.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"loftwork/internal/domain/ticket"
	"loftwork/internal/shared/goroutine"
	"loftwork/internal/shared/logger"
)

// TicketChangeType represents the type of ticket change event
type TicketChangeType string

const (
	// TicketChangeCreated indicates a ticket was created
	TicketChangeCreated TicketChangeType = "created"
	// TicketChangeUpdated indicates a ticket was updated
	TicketChangeUpdated TicketChangeType = "updated"
	// TicketChangeDeleted indicates a ticket was deleted
	TicketChangeDeleted TicketChangeType = "deleted"
)

// TicketChangeEvent is the wire envelope for cross-instance ticket
// synchronization. Create and update events carry the full record so a
// receiver can apply them without a read-back; deletes carry only the id.
type TicketChangeEvent struct {
	ChangeType TicketChangeType `json:"change_type"`
	TicketID   uint             `json:"ticket_id"`
	Ticket     *ticket.Snapshot `json:"ticket,omitempty"`
	OldStatus  string           `json:"old_status,omitempty"`
	OriginID   string           `json:"origin_id"`
	Timestamp  int64            `json:"timestamp"`
}

// TicketEventHandler is a callback function for handling ticket events
type TicketEventHandler func(ctx context.Context, event TicketChangeEvent)

// TicketEventSubscriber defines the interface for subscribing to ticket events
type TicketEventSubscriber interface {
	Subscribe(ctx context.Context, handler TicketEventHandler) error
}

const ticketChangeChannel = "loftwork:ticket:change"

// RedisTicketEventBus publishes and consumes ticket change events using
// Redis Pub/Sub. Each bus carries a unique origin id so a consumer can
// tell its own publishes from those of other instances.
type RedisTicketEventBus struct {
	client   *redis.Client
	originID string
	logger   logger.Interface
}

// NewRedisTicketEventBus creates a new Redis-based ticket event bus
func NewRedisTicketEventBus(client *redis.Client, logger logger.Interface) *RedisTicketEventBus {
	return &RedisTicketEventBus{
		client:   client,
		originID: uuid.NewString(),
		logger:   logger,
	}
}

// OriginID returns the identity this bus stamps on published events.
func (b *RedisTicketEventBus) OriginID() string {
	return b.originID
}

// PublishCreated publishes a ticket created event
func (b *RedisTicketEventBus) PublishCreated(ctx context.Context, event ticket.TicketCreatedEvent) error {
	snapshot := event.Ticket
	return b.publish(ctx, TicketChangeEvent{
		ChangeType: TicketChangeCreated,
		TicketID:   snapshot.ID,
		Ticket:     &snapshot,
		OriginID:   b.originID,
		Timestamp:  event.Timestamp.UnixMilli(),
	})
}

// PublishUpdated publishes a ticket updated event
func (b *RedisTicketEventBus) PublishUpdated(ctx context.Context, event ticket.TicketUpdatedEvent) error {
	snapshot := event.Ticket
	return b.publish(ctx, TicketChangeEvent{
		ChangeType: TicketChangeUpdated,
		TicketID:   snapshot.ID,
		Ticket:     &snapshot,
		OldStatus:  event.OldStatus.String(),
		OriginID:   b.originID,
		Timestamp:  event.Timestamp.UnixMilli(),
	})
}

// PublishDeleted publishes a ticket deleted event
func (b *RedisTicketEventBus) PublishDeleted(ctx context.Context, event ticket.TicketDeletedEvent) error {
	return b.publish(ctx, TicketChangeEvent{
		ChangeType: TicketChangeDeleted,
		TicketID:   event.TicketID,
		OriginID:   b.originID,
		Timestamp:  event.Timestamp.UnixMilli(),
	})
}

func (b *RedisTicketEventBus) publish(ctx context.Context, event TicketChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, ticketChangeChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish ticket change event",
			"ticket_id", event.TicketID,
			"change_type", event.ChangeType,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("ticket change event published",
		"ticket_id", event.TicketID,
		"change_type", event.ChangeType,
	)
	return nil
}

// Subscribe subscribes to ticket change events and calls the handler for each event
func (b *RedisTicketEventBus) Subscribe(ctx context.Context, handler TicketEventHandler) error {
	pubsub := b.client.Subscribe(ctx, ticketChangeChannel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to ticket change events",
		"channel", ticketChangeChannel,
	)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("ticket event subscriber stopped",
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("ticket event channel closed")
				return nil
			}

			var event TicketChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal ticket event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}

			// Handle in background so a slow handler cannot stall the
			// event loop. Background context decouples handling from the
			// subscriber lifecycle.
			goroutine.SafeGo(b.logger, "ticket-event-handler", func() {
				handler(context.Background(), event)
			})
		}
	}
}
