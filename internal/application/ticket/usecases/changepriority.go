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

type ChangePriorityCommand struct {
	TicketID    uint
	NewPriority string
}

type ChangePriorityResult struct {
	TicketID    uint
	OldPriority string
	NewPriority string
	UpdatedAt   time.Time
	Ticket      ticket.Snapshot
}

type ChangePriorityUseCase struct {
	ticketRepo ticket.TicketRepository
	publisher  TicketEventPublisher
	logger     logger.Interface
}

func NewChangePriorityUseCase(
	ticketRepo ticket.TicketRepository,
	publisher TicketEventPublisher,
	logger logger.Interface,
) *ChangePriorityUseCase {
	return &ChangePriorityUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *ChangePriorityUseCase) Execute(ctx context.Context, cmd ChangePriorityCommand) (*ChangePriorityResult, error) {
	uc.logger.Infow("executing change priority use case", "ticket_id", cmd.TicketID, "new_priority", cmd.NewPriority)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	newPriority, err := vo.NormalizePriority(cmd.NewPriority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	oldPriority := t.Priority()

	if oldPriority != newPriority {
		if err := t.ChangePriority(newPriority); err != nil {
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
	}

	return &ChangePriorityResult{
		TicketID:    t.ID(),
		OldPriority: oldPriority.String(),
		NewPriority: t.Priority().String(),
		UpdatedAt:   t.UpdatedAt(),
		Ticket:      t.Snapshot(),
	}, nil
}
