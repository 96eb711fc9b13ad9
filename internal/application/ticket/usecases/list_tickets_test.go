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

func TestListTickets_BuildsNormalizedFilter(t *testing.T) {
	var gotFilter ticket.TicketFilter
	now := time.Now().UTC()
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			gotFilter = filter
			tk, _ := ticket.ReconstructTicket(1, "T", "D", vo.PriorityHigh, vo.StatusNeedsManualReview, 1, ticket.Metadata{}, 1, now, now)
			return []*ticket.Ticket{tk}, 1, nil
		},
	}

	uc := NewListTicketsUseCase(repo, &mockLogger{})
	result, err := uc.Execute(context.Background(), ListTicketsQuery{
		Status:   "PENDING",
		Priority: "HIGH",
		Search:   "boiler",
	})

	require.NoError(t, err)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, vo.StatusNeedsManualReview, *gotFilter.Status, "legacy upper-case status normalized before querying")
	require.NotNil(t, gotFilter.Priority)
	assert.Equal(t, vo.PriorityHigh, *gotFilter.Priority)
	assert.Equal(t, "boiler", gotFilter.Search)
	assert.Equal(t, 1, gotFilter.Page)
	assert.Equal(t, 20, gotFilter.PageSize)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Tickets, 1)
}

func TestListTickets_InvalidStatusRejected(t *testing.T) {
	uc := NewListTicketsUseCase(&mockTicketRepository{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), ListTicketsQuery{Status: "escalated"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestListTickets_PageSizeClamped(t *testing.T) {
	var gotFilter ticket.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			gotFilter = filter
			return nil, 0, nil
		},
	}
	uc := NewListTicketsUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{Page: 3, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 3, gotFilter.Page)
	assert.Equal(t, 20, gotFilter.PageSize)
}

func TestListTickets_RepositoryErrorPropagated(t *testing.T) {
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			return nil, 0, errors.NewTransientNetworkError("db gone")
		},
	}
	uc := NewListTicketsUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{})
	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err))
}
