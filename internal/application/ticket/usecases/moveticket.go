package usecases

import (
	"context"
	"fmt"
	"time"

	"loftwork/internal/domain/ticket"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/shared/errors"
	"loftwork/internal/shared/logger"
)

// MoveTicketCommand represents a kanban drag-and-drop onto a column.
type MoveTicketCommand struct {
	TicketID uint
	Column   string
}

type MoveTicketResult struct {
	TicketID    uint
	Column      string
	NewPriority string
	Moved       bool
	Ticket      ticket.Snapshot
}

type MoveTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	publisher  TicketEventPublisher
	logger     logger.Interface
}

func NewMoveTicketUseCase(
	ticketRepo ticket.TicketRepository,
	publisher TicketEventPublisher,
	logger logger.Interface,
) *MoveTicketUseCase {
	return &MoveTicketUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *MoveTicketUseCase) Execute(ctx context.Context, cmd MoveTicketCommand) (*MoveTicketResult, error) {
	uc.logger.Infow("executing move ticket use case", "ticket_id", cmd.TicketID, "column", cmd.Column)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	column, err := vo.NewColumn(cmd.Column)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	// Dropping into the column the ticket already renders in issues no
	// write at all.
	if vo.ColumnFor(t.Priority()) == column {
		uc.logger.Debugw("same-column drop ignored", "ticket_id", cmd.TicketID, "column", column)
		return &MoveTicketResult{
			TicketID:    t.ID(),
			Column:      column.String(),
			NewPriority: t.Priority().String(),
			Moved:       false,
			Ticket:      t.Snapshot(),
		}, nil
	}

	if err := t.ChangePriority(column.Priority()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	snapshot := t.Snapshot()
	if err := uc.publisher.PublishUpdated(ctx, ticket.NewTicketUpdatedEvent(snapshot, t.Status(), time.Now())); err != nil {
		uc.logger.Warnw("failed to publish ticket updated event", "ticket_id", t.ID(), "error", err)
	}

	uc.logger.Infow("ticket moved", "ticket_id", cmd.TicketID, "column", column, "priority", t.Priority())

	return &MoveTicketResult{
		TicketID:    t.ID(),
		Column:      column.String(),
		NewPriority: t.Priority().String(),
		Moved:       true,
		Ticket:      snapshot,
	}, nil
}
