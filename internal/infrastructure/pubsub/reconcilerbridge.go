package pubsub

import (
	"context"
	"time"

	"loftwork/internal/application/ticket/view"
	"loftwork/internal/domain/ticket"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/shared/logger"
)

// NewReconcilerHandler adapts a view reconciler to the wire event
// handler. Events from the local origin are applied too; the store is
// idempotent, so the echo of a direct mutation is harmless and covers
// the case where the direct response was lost.
func NewReconcilerHandler(reconciler *view.Reconciler, log logger.Interface) TicketEventHandler {
	return func(ctx context.Context, event TicketChangeEvent) {
		switch event.ChangeType {
		case TicketChangeCreated:
			if event.Ticket == nil {
				log.Warnw("created event without record", "ticket_id", event.TicketID)
				return
			}
			reconciler.OnCreated(ctx, ticket.NewTicketCreatedEvent(*event.Ticket, eventTime(event)))

		case TicketChangeUpdated:
			if event.Ticket == nil {
				log.Warnw("updated event without record", "ticket_id", event.TicketID)
				return
			}
			oldStatus, _ := vo.NormalizeTicketStatus(event.OldStatus)
			reconciler.OnUpdated(ctx, ticket.NewTicketUpdatedEvent(*event.Ticket, oldStatus, eventTime(event)))

		case TicketChangeDeleted:
			reconciler.OnDeleted(ctx, ticket.NewTicketDeletedEvent(event.TicketID, eventTime(event)))

		default:
			log.Warnw("unknown ticket change type", "change_type", event.ChangeType)
		}
	}
}

func eventTime(event TicketChangeEvent) time.Time {
	return time.UnixMilli(event.Timestamp)
}
