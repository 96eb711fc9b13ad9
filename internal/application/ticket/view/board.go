package view

import (
	"context"

	"loftwork/internal/application/ticket/usecases"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/shared/logger"
)

// Board drives kanban drag-and-drop against the store. Drops apply
// optimistically; a failed server write rolls the card back to its
// previous column and propagates the error to the caller.
type Board struct {
	store  *Store
	mover  usecases.MoveTicketExecutor
	logger logger.Interface
}

func NewBoard(store *Store, mover usecases.MoveTicketExecutor, logger logger.Interface) *Board {
	return &Board{
		store:  store,
		mover:  mover,
		logger: logger,
	}
}

// Columns groups the store's current filtered set by kanban column.
func (b *Board) Columns() map[vo.Column][]uint {
	out := map[vo.Column][]uint{
		vo.ColumnUrgent: {},
		vo.ColumnHigh:   {},
		vo.ColumnNormal: {},
	}
	for _, snap := range b.store.List() {
		col := vo.ColumnFor(snap.Priority)
		out[col] = append(out[col], snap.ID)
	}
	return out
}

// Drop handles a card dropped onto a column. A drop into the card's
// current column issues no write at all.
func (b *Board) Drop(ctx context.Context, ticketID uint, columnName string) error {
	column, err := vo.NewColumn(columnName)
	if err != nil {
		return err
	}

	prior, ok := b.store.Get(ticketID)
	if ok {
		if vo.ColumnFor(prior.Priority) == column {
			return nil
		}

		optimistic := prior
		optimistic.Priority = column.Priority()
		b.store.Apply(ctx, optimistic)
	}

	result, err := b.mover.Execute(ctx, usecases.MoveTicketCommand{TicketID: ticketID, Column: columnName})
	if err != nil {
		if ok {
			b.logger.Warnw("rolling back failed kanban move", "ticket_id", ticketID, "column", columnName, "error", err)
			b.store.Apply(ctx, prior)
		}
		return err
	}

	b.store.Apply(ctx, result.Ticket)
	return nil
}
