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

func repoWithTicket(t *testing.T, status vo.TicketStatus) (*mockTicketRepository, *int) {
	t.Helper()
	updates := 0
	now := time.Now().UTC()
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return ticket.ReconstructTicket(ticketID, "T", "D", vo.PriorityMedium, status, 1, ticket.Metadata{}, 1, now, now)
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updates++
			return nil
		},
	}
	return repo, &updates
}

func TestChangeStatus_ValidTransition(t *testing.T) {
	repo, updates := repoWithTicket(t, vo.StatusOpen)
	var published *ticket.TicketUpdatedEvent
	publisher := &mockEventPublisher{
		PublishUpdatedFunc: func(ctx context.Context, event ticket.TicketUpdatedEvent) error {
			published = &event
			return nil
		},
	}

	uc := NewChangeStatusUseCase(repo, publisher, &mockLogger{})
	result, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "resolved"})

	require.NoError(t, err)
	assert.Equal(t, "open", result.OldStatus)
	assert.Equal(t, "resolved", result.NewStatus)
	assert.Equal(t, 1, *updates)
	require.NotNil(t, published)
	assert.Equal(t, vo.StatusOpen, published.OldStatus)
	assert.Equal(t, vo.StatusResolved, published.Ticket.Status)
}

func TestChangeStatus_LegacyStatusNormalized(t *testing.T) {
	repo, _ := repoWithTicket(t, vo.StatusOpen)
	uc := NewChangeStatusUseCase(repo, &mockEventPublisher{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "pending"})
	require.NoError(t, err)
	assert.Equal(t, "needs_manual_review", result.NewStatus, "legacy pending must map to needs_manual_review")
}

func TestChangeStatus_SameStatusIssuesNoWrite(t *testing.T) {
	repo, updates := repoWithTicket(t, vo.StatusOpen)
	published := 0
	publisher := &mockEventPublisher{
		PublishUpdatedFunc: func(ctx context.Context, event ticket.TicketUpdatedEvent) error {
			published++
			return nil
		},
	}

	uc := NewChangeStatusUseCase(repo, publisher, &mockLogger{})
	result, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "open"})

	require.NoError(t, err)
	assert.Equal(t, "open", result.NewStatus)
	assert.Zero(t, *updates)
	assert.Zero(t, published)
}

func TestChangeStatus_InvalidTransitionIsConflict(t *testing.T) {
	repo, updates := repoWithTicket(t, vo.StatusClosed)
	uc := NewChangeStatusUseCase(repo, &mockEventPublisher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "open"})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Zero(t, *updates)
}

func TestChangeStatus_UnknownStatus(t *testing.T) {
	repo, _ := repoWithTicket(t, vo.StatusOpen)
	uc := NewChangeStatusUseCase(repo, &mockEventPublisher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 1, NewStatus: "escalated"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestChangeStatus_TicketNotFound(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return nil, errors.NewNotFoundError("no row")
		},
	}
	uc := NewChangeStatusUseCase(repo, &mockEventPublisher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 99, NewStatus: "resolved"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
