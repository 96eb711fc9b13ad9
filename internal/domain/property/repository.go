package property

import (
	"context"
	"time"
)

type PropertyRepository interface {
	GetByID(ctx context.Context, id uint) (*Property, error)
	List(ctx context.Context) ([]*Property, error)
	// AddressesByID returns the address for every known property,
	// used to enrich ticket listings without per-row lookups.
	AddressesByID(ctx context.Context) (map[uint]string, error)
}

type LeaseRepository interface {
	ListActive(ctx context.Context) ([]*Lease, error)
	ListByProperty(ctx context.Context, propertyID uint) ([]*Lease, error)
}

type CashFlowRepository interface {
	// ListBetween returns flows with from <= Date < to.
	ListBetween(ctx context.Context, from, to time.Time) ([]*CashFlow, error)
}
