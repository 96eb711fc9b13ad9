package view

import (
	"context"

	"loftwork/internal/domain/ticket"
	"loftwork/internal/shared/logger"
)

// Reconciler folds pushed ticket events into the store. Events carry
// the full record, so application is idempotent and commutative:
// duplicates and out-of-order delivery converge on the same state and
// nothing here ever raises to the caller.
type Reconciler struct {
	store  *Store
	logger logger.Interface
}

func NewReconciler(store *Store, logger logger.Interface) *Reconciler {
	return &Reconciler{
		store:  store,
		logger: logger,
	}
}

// OnCreated inserts the pushed record, or treats it as an update when
// the record arrived through another path first.
func (r *Reconciler) OnCreated(ctx context.Context, event ticket.TicketCreatedEvent) {
	r.logger.Debugw("reconciling ticket created event", "ticket_id", event.Ticket.ID)
	r.store.Apply(ctx, event.Ticket)
}

// OnUpdated applies the pushed record last-writer-wins by updatedAt.
// Older records are dropped silently.
func (r *Reconciler) OnUpdated(ctx context.Context, event ticket.TicketUpdatedEvent) {
	r.logger.Debugw("reconciling ticket updated event", "ticket_id", event.Ticket.ID)
	r.store.Apply(ctx, event.Ticket)
}

// OnDeleted removes the record unconditionally. Deletes always win,
// regardless of any timestamp.
func (r *Reconciler) OnDeleted(ctx context.Context, event ticket.TicketDeletedEvent) {
	r.logger.Debugw("reconciling ticket deleted event", "ticket_id", event.TicketID)
	r.store.Remove(event.TicketID)
}
