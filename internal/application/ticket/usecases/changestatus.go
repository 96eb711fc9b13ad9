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

type ChangeStatusCommand struct {
	TicketID  uint
	NewStatus string
}

type ChangeStatusResult struct {
	TicketID  uint
	OldStatus string
	NewStatus string
	UpdatedAt time.Time
	Ticket    ticket.Snapshot
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	publisher  TicketEventPublisher
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	publisher TicketEventPublisher,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "new_status", cmd.NewStatus)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	newStatus, err := vo.NormalizeTicketStatus(cmd.NewStatus)
	if err != nil {
		uc.logger.Errorw("invalid change status command", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	oldStatus := t.Status()

	if err := t.ChangeStatus(newStatus); err != nil {
		uc.logger.Errorw("failed to change ticket status", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewConflictError(err.Error())
	}

	if oldStatus != t.Status() {
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
			return nil, err
		}

		snapshot := t.Snapshot()
		if err := uc.publisher.PublishUpdated(ctx, ticket.NewTicketUpdatedEvent(snapshot, oldStatus, time.Now())); err != nil {
			uc.logger.Warnw("failed to publish ticket updated event", "ticket_id", t.ID(), "error", err)
		}
	}

	uc.logger.Infow("ticket status changed successfully", "ticket_id", cmd.TicketID, "old_status", oldStatus, "new_status", t.Status())

	return &ChangeStatusResult{
		TicketID:  t.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: t.Status().String(),
		UpdatedAt: t.UpdatedAt(),
		Ticket:    t.Snapshot(),
	}, nil
}
