// Package stats computes dashboard figures from tickets, leases, and
// cash flows. Every function is pure: callers pass the data set and the
// reference time, so results are deterministic and testable.
package stats

import (
	"sort"
	"time"

	"loftwork/internal/domain/property"
	"loftwork/internal/domain/ticket"
	"loftwork/internal/shared/biztime"
)

// MonthTotals holds a single calendar month's money movement in cents.
type MonthTotals struct {
	Month        string `json:"month"`
	IncomeCents  int64  `json:"incomeCents"`
	ExpenseCents int64  `json:"expenseCents"`
	NetCents     int64  `json:"netCents"`
}

// IncomeSummary is the monthly-income block of the dashboard.
type IncomeSummary struct {
	Current       MonthTotals   `json:"current"`
	Prior         MonthTotals   `json:"prior"`
	ChangePercent float64       `json:"changePercent"`
	Trailing      []MonthTotals `json:"trailing"`
}

// AttentionTicket is a ticket still needing action, enriched with the
// address of its property for display.
type AttentionTicket struct {
	Ticket          ticket.Snapshot `json:"ticket"`
	PropertyAddress string          `json:"propertyAddress"`
}

// RenewalAlert flags an active lease approaching its end date.
type RenewalAlert struct {
	Lease           property.Lease `json:"lease"`
	PropertyAddress string         `json:"propertyAddress"`
	DaysUntil       int            `json:"daysUntil"`
	MonthsUntil     int            `json:"monthsUntil"`
	Urgent          bool           `json:"urgent"`
}

// ComputeMonthlyIncome buckets cash flows by calendar month in the
// business timezone and returns current/prior totals, the percentage
// change in net, and a trailing series of trailingMonths entries ending
// at the current month (oldest first). Months with no flows appear with
// zero totals.
func ComputeMonthlyIncome(flows []*property.CashFlow, now time.Time, trailingMonths int) IncomeSummary {
	if trailingMonths < 1 {
		trailingMonths = 1
	}

	totalsByMonth := make(map[string]*MonthTotals)
	for _, f := range flows {
		key := biztime.MonthKey(f.Date)
		mt := totalsByMonth[key]
		if mt == nil {
			mt = &MonthTotals{Month: key}
			totalsByMonth[key] = mt
		}
		switch f.Type {
		case property.FlowIncome:
			mt.IncomeCents += f.AmountCents
		case property.FlowExpense:
			mt.ExpenseCents += f.AmountCents
		}
	}
	for _, mt := range totalsByMonth {
		mt.NetCents = mt.IncomeCents - mt.ExpenseCents
	}

	monthAt := func(offset int) MonthTotals {
		key := biztime.MonthKey(biztime.AddMonths(now, offset))
		if mt := totalsByMonth[key]; mt != nil {
			return *mt
		}
		return MonthTotals{Month: key}
	}

	current := monthAt(0)
	prior := monthAt(-1)

	trailing := make([]MonthTotals, 0, trailingMonths)
	for i := trailingMonths - 1; i >= 0; i-- {
		trailing = append(trailing, monthAt(-i))
	}

	return IncomeSummary{
		Current:       current,
		Prior:         prior,
		ChangePercent: changePercent(current.NetCents, prior.NetCents),
		Trailing:      trailing,
	}
}

// changePercent is (current-prior)/|prior|*100, defined as 0 when the
// prior month netted nothing.
func changePercent(current, prior int64) float64 {
	if prior == 0 {
		return 0
	}
	abs := prior
	if abs < 0 {
		abs = -abs
	}
	return float64(current-prior) / float64(abs) * 100
}

// AttentionTickets returns tickets whose status still needs action,
// sorted most recently updated first. addresses maps property id to
// street address; unknown ids leave the address empty.
func AttentionTickets(snapshots []ticket.Snapshot, addresses map[uint]string) []AttentionTicket {
	out := make([]AttentionTicket, 0)
	for _, s := range snapshots {
		if s.Status.IsTerminal() {
			continue
		}
		out = append(out, AttentionTicket{
			Ticket:          s,
			PropertyAddress: addresses[s.PropertyID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ticket.UpdatedAt.After(out[j].Ticket.UpdatedAt)
	})
	return out
}

// UpcomingRenewals returns active leases ending within horizonDays of
// now, ordered soonest first. Leases inside urgentDays are flagged
// urgent. Horizons are exact day counts; a lease ending exactly on the
// boundary day is included.
func UpcomingRenewals(leases []*property.Lease, addresses map[uint]string, now time.Time, urgentDays, horizonDays int) []RenewalAlert {
	out := make([]RenewalAlert, 0)
	for _, l := range leases {
		if l == nil || !l.ExpiresWithin(now, horizonDays) {
			continue
		}
		out = append(out, RenewalAlert{
			Lease:           *l,
			PropertyAddress: addresses[l.PropertyID],
			DaysUntil:       daysUntil(now, l.EndDate),
			MonthsUntil:     biztime.WholeMonthsBetween(now, l.EndDate),
			Urgent:          l.ExpiresWithin(now, urgentDays),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Lease.EndDate.Before(out[j].Lease.EndDate)
	})
	return out
}

func daysUntil(now, end time.Time) int {
	start := biztime.StartOfDay(now)
	target := biztime.StartOfDay(end)
	return int(target.Sub(start).Hours() / 24)
}
