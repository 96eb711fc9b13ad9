package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loftwork/internal/domain/property"
	"loftwork/internal/domain/ticket"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/shared/config"
	"loftwork/internal/shared/errors"
	"loftwork/internal/shared/logger"
)

type mockTicketRepo struct {
	ListFunc func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
}

func (m *mockTicketRepo) Save(ctx context.Context, t *ticket.Ticket) error   { return nil }
func (m *mockTicketRepo) Update(ctx context.Context, t *ticket.Ticket) error { return nil }
func (m *mockTicketRepo) Delete(ctx context.Context, id uint) error          { return nil }
func (m *mockTicketRepo) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return nil, nil
}
func (m *mockTicketRepo) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockPropertyRepo struct {
	AddressesByIDFunc func(ctx context.Context) (map[uint]string, error)
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id uint) (*property.Property, error) {
	return nil, nil
}
func (m *mockPropertyRepo) List(ctx context.Context) ([]*property.Property, error) { return nil, nil }
func (m *mockPropertyRepo) AddressesByID(ctx context.Context) (map[uint]string, error) {
	if m.AddressesByIDFunc != nil {
		return m.AddressesByIDFunc(ctx)
	}
	return map[uint]string{}, nil
}

type mockLeaseRepo struct {
	ListActiveFunc func(ctx context.Context) ([]*property.Lease, error)
}

func (m *mockLeaseRepo) ListActive(ctx context.Context) ([]*property.Lease, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}
func (m *mockLeaseRepo) ListByProperty(ctx context.Context, propertyID uint) ([]*property.Lease, error) {
	return nil, nil
}

type mockCashFlowRepo struct {
	ListBetweenFunc func(ctx context.Context, from, to time.Time) ([]*property.CashFlow, error)
}

func (m *mockCashFlowRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*property.CashFlow, error) {
	if m.ListBetweenFunc != nil {
		return m.ListBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func testConfig() config.DashboardConfig {
	return config.DashboardConfig{
		UrgentRenewalDays:  90,
		RenewalHorizonDays: 365,
		TrailingMonths:     6,
	}
}

func TestGetDashboardStats_AssemblesAllSections(t *testing.T) {
	now := time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)
	base := now.Add(-time.Hour)

	ticketRepo := &mockTicketRepo{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			open, err := ticket.ReconstructTicket(1, "Broken boiler", "d", vo.PriorityUrgent, vo.StatusOpen, 7, ticket.Metadata{}, 1, base, base)
			require.NoError(t, err)
			closed, err := ticket.ReconstructTicket(2, "Done", "d", vo.PriorityLow, vo.StatusClosed, 7, ticket.Metadata{}, 1, base, base)
			require.NoError(t, err)
			return []*ticket.Ticket{open, closed}, 2, nil
		},
	}
	propertyRepo := &mockPropertyRepo{
		AddressesByIDFunc: func(ctx context.Context) (map[uint]string, error) {
			return map[uint]string{7: "12 Elm St"}, nil
		},
	}
	leaseRepo := &mockLeaseRepo{
		ListActiveFunc: func(ctx context.Context) ([]*property.Lease, error) {
			return []*property.Lease{
				{ID: 1, PropertyID: 7, EndDate: now.AddDate(0, 0, 30), Active: true},
			}, nil
		},
	}
	cashFlowRepo := &mockCashFlowRepo{
		ListBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*property.CashFlow, error) {
			return []*property.CashFlow{
				{PropertyID: 7, Type: property.FlowIncome, AmountCents: 110000, Date: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)},
				{PropertyID: 7, Type: property.FlowExpense, AmountCents: 15000, Date: time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)},
				{PropertyID: 7, Type: property.FlowIncome, AmountCents: 120000, Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
				{PropertyID: 7, Type: property.FlowExpense, AmountCents: 50000, Date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}

	uc := NewGetDashboardStatsUseCase(ticketRepo, propertyRepo, leaseRepo, cashFlowRepo, testConfig(), logger.NewLogger())
	result, err := uc.Execute(context.Background(), GetDashboardStatsQuery{Now: now})

	require.NoError(t, err)
	assert.Equal(t, int64(95000), result.Income.Current.NetCents)
	assert.InDelta(t, 35.714, result.Income.ChangePercent, 0.001)
	require.Len(t, result.AttentionTickets, 1)
	assert.Equal(t, 1, result.AttentionCount)
	assert.Equal(t, "12 Elm St", result.AttentionTickets[0].PropertyAddress)
	require.Len(t, result.Renewals, 1)
	assert.True(t, result.Renewals[0].Urgent)
	assert.Equal(t, now, result.GeneratedAt)
}

func TestGetDashboardStats_DeterministicForFixedNow(t *testing.T) {
	now := time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)
	uc := NewGetDashboardStatsUseCase(&mockTicketRepo{}, &mockPropertyRepo{}, &mockLeaseRepo{}, &mockCashFlowRepo{}, testConfig(), logger.NewLogger())

	a, err := uc.Execute(context.Background(), GetDashboardStatsQuery{Now: now})
	require.NoError(t, err)
	b, err := uc.Execute(context.Background(), GetDashboardStatsQuery{Now: now})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGetDashboardStats_CashFlowErrorPropagated(t *testing.T) {
	cashFlowRepo := &mockCashFlowRepo{
		ListBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*property.CashFlow, error) {
			return nil, errors.NewTransientNetworkError("db gone")
		},
	}
	uc := NewGetDashboardStatsUseCase(&mockTicketRepo{}, &mockPropertyRepo{}, &mockLeaseRepo{}, cashFlowRepo, testConfig(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), GetDashboardStatsQuery{Now: time.Now()})
	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err))
}
