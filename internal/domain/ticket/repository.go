package ticket

import (
	"context"
	"strings"

	vo "loftwork/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
}

// TicketFilter is a conjunction over status, priority, property, and
// free-text search. A new filter always fully replaces the previous
// one; fields are never merged across filter changes.
type TicketFilter struct {
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	PropertyID *uint
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// Matches evaluates the filter against a snapshot. propertyAddress is
// the address of the owning property, included in free-text search the
// same way the backing query searches it.
func (f TicketFilter) Matches(s Snapshot, propertyAddress string) bool {
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	if f.Priority != nil && s.Priority != *f.Priority {
		return false
	}
	if f.PropertyID != nil && s.PropertyID != *f.PropertyID {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Title), needle) &&
			!strings.Contains(strings.ToLower(s.Description), needle) &&
			!strings.Contains(strings.ToLower(propertyAddress), needle) {
			return false
		}
	}
	return true
}
