package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loftwork/internal/domain/ticket"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/shared/errors"
)

func strPtr(s string) *string { return &s }

func TestUpdateTicket_PartialPatch(t *testing.T) {
	now := time.Now().UTC()
	var updated *ticket.Ticket
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return ticket.ReconstructTicket(ticketID, "Old title", "Old description", vo.PriorityLow, vo.StatusOpen, 1, ticket.Metadata{}, 1, now, now)
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updated = tk
			return nil
		},
	}

	uc := NewUpdateTicketUseCase(repo, &mockEventPublisher{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID: 1,
		Title:    strPtr("New title"),
		Priority: strPtr("urgent"),
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New title", updated.Title())
	assert.Equal(t, "Old description", updated.Description(), "omitted fields stay untouched")
	assert.Equal(t, vo.PriorityUrgent, updated.Priority())
	assert.True(t, result.UpdatedAt.After(now))
}

func TestUpdateTicket_StatusPatchObeysTransitionTable(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return ticket.ReconstructTicket(ticketID, "T", "D", vo.PriorityLow, vo.StatusResolved, 1, ticket.Metadata{}, 1, now, now)
		},
	}
	uc := NewUpdateTicketUseCase(repo, &mockEventPublisher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID: 1,
		Status:   strPtr("open"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestUpdateTicket_PublishesUpdatedEventWithOldStatus(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return ticket.ReconstructTicket(ticketID, "T", "D", vo.PriorityLow, vo.StatusInProgressByAI, 1, ticket.Metadata{}, 1, now, now)
		},
	}
	var published *ticket.TicketUpdatedEvent
	publisher := &mockEventPublisher{
		PublishUpdatedFunc: func(ctx context.Context, event ticket.TicketUpdatedEvent) error {
			published = &event
			return nil
		},
	}

	uc := NewUpdateTicketUseCase(repo, publisher, &mockLogger{})
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID: 1,
		Status:   strPtr("resolved"),
	})

	require.NoError(t, err)
	require.NotNil(t, published)
	assert.Equal(t, vo.StatusInProgressByAI, published.OldStatus)
	assert.Equal(t, vo.StatusResolved, published.Ticket.Status)
}

func TestUpdateTicket_NotFound(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return nil, errors.NewNotFoundError("no row")
		},
	}
	uc := NewUpdateTicketUseCase(repo, &mockEventPublisher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), UpdateTicketCommand{TicketID: 42, Title: strPtr("x")})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUpdateTicket_ZeroID(t *testing.T) {
	uc := NewUpdateTicketUseCase(&mockTicketRepository{}, &mockEventPublisher{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestDeleteTicket_PublishesDeletedEvent(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return ticket.ReconstructTicket(ticketID, "T", "D", vo.PriorityLow, vo.StatusOpen, 1, ticket.Metadata{}, 1, now, now)
		},
	}
	var published *ticket.TicketDeletedEvent
	publisher := &mockEventPublisher{
		PublishDeletedFunc: func(ctx context.Context, event ticket.TicketDeletedEvent) error {
			published = &event
			return nil
		},
	}

	uc := NewDeleteTicketUseCase(repo, publisher, &mockLogger{})
	result, err := uc.Execute(context.Background(), DeleteTicketCommand{TicketID: 5})

	require.NoError(t, err)
	assert.Equal(t, uint(5), result.TicketID)
	require.NotNil(t, published)
	assert.Equal(t, uint(5), published.TicketID)
}

func TestDeleteTicket_NotFound(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return nil, errors.NewNotFoundError("no row")
		},
	}
	uc := NewDeleteTicketUseCase(repo, &mockEventPublisher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), DeleteTicketCommand{TicketID: 5})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
