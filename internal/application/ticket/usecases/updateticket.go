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

// UpdateTicketCommand is a partial patch; nil fields are left unchanged.
type UpdateTicketCommand struct {
	TicketID    uint
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	Metadata    *ticket.Metadata
}

type UpdateTicketResult struct {
	TicketID  uint
	UpdatedAt time.Time
	Ticket    ticket.Snapshot
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	publisher  TicketEventPublisher
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	publisher TicketEventPublisher,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	oldStatus := t.Status()

	if err := t.UpdateDetails(cmd.Title, cmd.Description); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.Priority != nil {
		p, err := vo.NormalizePriority(*cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := t.ChangePriority(p); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.Status != nil {
		s, err := vo.NormalizeTicketStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := t.ChangeStatus(s); err != nil {
			return nil, errors.NewConflictError(err.Error())
		}
	}

	if cmd.Metadata != nil {
		t.SetMetadata(*cmd.Metadata)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	snapshot := t.Snapshot()
	if err := uc.publisher.PublishUpdated(ctx, ticket.NewTicketUpdatedEvent(snapshot, oldStatus, time.Now())); err != nil {
		uc.logger.Warnw("failed to publish ticket updated event", "ticket_id", t.ID(), "error", err)
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID())

	return &UpdateTicketResult{
		TicketID:  t.ID(),
		UpdatedAt: t.UpdatedAt(),
		Ticket:    snapshot,
	}, nil
}
