package usecases

import (
	"context"
	"time"

	"loftwork/internal/domain/ticket"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/shared/errors"
	"loftwork/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	Priority    string
	PropertyID  uint
	Metadata    ticket.Metadata
}

type CreateTicketResult struct {
	TicketID  uint
	Status    string
	CreatedAt time.Time
	Ticket    ticket.Snapshot
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	publisher  TicketEventPublisher
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	publisher TicketEventPublisher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "property_id", cmd.PropertyID)

	priority := vo.PriorityMedium
	if cmd.Priority != "" {
		p, err := vo.NormalizePriority(cmd.Priority)
		if err != nil {
			uc.logger.Errorw("invalid create ticket command", "error", err)
			return nil, errors.NewValidationError(err.Error())
		}
		priority = p
	}

	newTicket, err := ticket.NewTicket(
		cmd.Title,
		cmd.Description,
		priority,
		cmd.PropertyID,
		cmd.Metadata,
	)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Save(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	snapshot := newTicket.Snapshot()
	if err := uc.publisher.PublishCreated(ctx, ticket.NewTicketCreatedEvent(snapshot, time.Now())); err != nil {
		uc.logger.Warnw("failed to publish ticket created event", "ticket_id", newTicket.ID(), "error", err)
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID())

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Status:    newTicket.Status().String(),
		CreatedAt: newTicket.CreatedAt(),
		Ticket:    snapshot,
	}, nil
}
