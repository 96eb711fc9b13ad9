package usecases

import (
	"context"
	"time"

	"loftwork/internal/application/dashboard/stats"
	"loftwork/internal/domain/property"
	"loftwork/internal/domain/ticket"
	"loftwork/internal/shared/biztime"
	"loftwork/internal/shared/config"
	"loftwork/internal/shared/logger"
)

type GetDashboardStatsQuery struct {
	// Now anchors all month and horizon calculations; the zero value
	// means wall-clock now.
	Now time.Time
}

type DashboardStatsResult struct {
	Income           stats.IncomeSummary     `json:"income"`
	AttentionTickets []stats.AttentionTicket `json:"attentionTickets"`
	AttentionCount   int                     `json:"attentionCount"`
	Renewals         []stats.RenewalAlert    `json:"renewals"`
	GeneratedAt      time.Time               `json:"generatedAt"`
}

type GetDashboardStatsExecutor interface {
	Execute(ctx context.Context, query GetDashboardStatsQuery) (*DashboardStatsResult, error)
}

type GetDashboardStatsUseCase struct {
	ticketRepo   ticket.TicketRepository
	propertyRepo property.PropertyRepository
	leaseRepo    property.LeaseRepository
	cashFlowRepo property.CashFlowRepository
	cfg          config.DashboardConfig
	logger       logger.Interface
}

func NewGetDashboardStatsUseCase(
	ticketRepo ticket.TicketRepository,
	propertyRepo property.PropertyRepository,
	leaseRepo property.LeaseRepository,
	cashFlowRepo property.CashFlowRepository,
	cfg config.DashboardConfig,
	logger logger.Interface,
) *GetDashboardStatsUseCase {
	return &GetDashboardStatsUseCase{
		ticketRepo:   ticketRepo,
		propertyRepo: propertyRepo,
		leaseRepo:    leaseRepo,
		cashFlowRepo: cashFlowRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

func (uc *GetDashboardStatsUseCase) Execute(ctx context.Context, query GetDashboardStatsQuery) (*DashboardStatsResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	trailing := uc.cfg.TrailingMonths
	if trailing < 1 {
		trailing = 6
	}

	from := biztime.AddMonths(now, -(trailing - 1))
	to := biztime.AddMonths(now, 1)
	flows, err := uc.cashFlowRepo.ListBetween(ctx, from, to)
	if err != nil {
		uc.logger.Errorw("failed to load cash flows", "error", err)
		return nil, err
	}

	tickets, _, err := uc.ticketRepo.List(ctx, ticket.TicketFilter{})
	if err != nil {
		uc.logger.Errorw("failed to load tickets", "error", err)
		return nil, err
	}
	snapshots := make([]ticket.Snapshot, 0, len(tickets))
	for _, t := range tickets {
		snapshots = append(snapshots, t.Snapshot())
	}

	addresses, err := uc.propertyRepo.AddressesByID(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load property addresses", "error", err)
		return nil, err
	}

	leases, err := uc.leaseRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load leases", "error", err)
		return nil, err
	}

	attention := stats.AttentionTickets(snapshots, addresses)

	urgentDays := uc.cfg.UrgentRenewalDays
	if urgentDays < 1 {
		urgentDays = 90
	}
	horizonDays := uc.cfg.RenewalHorizonDays
	if horizonDays < urgentDays {
		horizonDays = 365
	}

	return &DashboardStatsResult{
		Income:           stats.ComputeMonthlyIncome(flows, now, trailing),
		AttentionTickets: attention,
		AttentionCount:   len(attention),
		Renewals:         stats.UpcomingRenewals(leases, addresses, now, urgentDays, horizonDays),
		GeneratedAt:      now,
	}, nil
}
