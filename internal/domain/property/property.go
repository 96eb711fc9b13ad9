// Package property holds the read-side models the dashboard aggregates
// over. Properties, leases, and cash flows are owned by another part of
// the system; this module only reads them.
package property

import "time"

type Property struct {
	ID        uint
	Name      string
	Address   string
	Units     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Lease ties a tenant to a property for a date range. Amounts are in
// cents.
type Lease struct {
	ID               uint
	PropertyID       uint
	TenantName       string
	MonthlyRentCents int64
	StartDate        time.Time
	EndDate          time.Time
	Active           bool
}

// ExpiresWithin reports whether the lease end date falls inside the
// horizon measured in exact days from now. A lease ending exactly at
// the horizon boundary is included.
func (l Lease) ExpiresWithin(now time.Time, days int) bool {
	if !l.Active {
		return false
	}
	horizon := now.AddDate(0, 0, days)
	return !l.EndDate.Before(now) && !l.EndDate.After(horizon)
}
