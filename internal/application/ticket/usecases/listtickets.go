package usecases

import (
	"context"

	"loftwork/internal/domain/ticket"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/shared/errors"
	"loftwork/internal/shared/logger"
)

// ListTicketsQuery names the full filter set. Each call carries the
// complete filter; there is no merging with a previous query.
type ListTicketsQuery struct {
	Status     string
	Priority   string
	PropertyID *uint
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type ListTicketsResult struct {
	Tickets []ticket.Snapshot
	Total   int64
	Filter  ticket.TicketFilter
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := buildFilter(query)
	if err != nil {
		uc.logger.Errorw("invalid list tickets query", "error", err)
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	snapshots := make([]ticket.Snapshot, 0, len(tickets))
	for _, t := range tickets {
		snapshots = append(snapshots, t.Snapshot())
	}

	return &ListTicketsResult{
		Tickets: snapshots,
		Total:   total,
		Filter:  filter,
	}, nil
}

func buildFilter(query ListTicketsQuery) (ticket.TicketFilter, error) {
	filter := ticket.TicketFilter{
		PropertyID: query.PropertyID,
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}

	if query.Status != "" {
		s, err := vo.NormalizeTicketStatus(query.Status)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError(err.Error())
		}
		filter.Status = &s
	}

	if query.Priority != "" {
		p, err := vo.NormalizePriority(query.Priority)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError(err.Error())
		}
		filter.Priority = &p
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	return filter, nil
}
