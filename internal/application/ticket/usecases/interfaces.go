package usecases

import (
	"context"

	"loftwork/internal/domain/ticket"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*GetTicketResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type ChangePriorityExecutor interface {
	Execute(ctx context.Context, cmd ChangePriorityCommand) (*ChangePriorityResult, error)
}

type MoveTicketExecutor interface {
	Execute(ctx context.Context, cmd MoveTicketCommand) (*MoveTicketResult, error)
}

// TicketEventPublisher pushes full-record ticket events onto the live
// update channel after a successful mutation. Publish failures are
// logged but never fail the mutation; reconcilers converge from the
// next event or reload.
type TicketEventPublisher interface {
	PublishCreated(ctx context.Context, event ticket.TicketCreatedEvent) error
	PublishUpdated(ctx context.Context, event ticket.TicketUpdatedEvent) error
	PublishDeleted(ctx context.Context, event ticket.TicketDeletedEvent) error
}
