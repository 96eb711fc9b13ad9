// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used
// for calculating date boundaries (start of day, month) when bucketing
// cash flows and lease horizons.
//
// Design principles:
// - All time storage is in UTC
// - Month/day statistics must calculate business timezone boundaries first
// - Implicit Local timezone is prohibited
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "UTC"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to UTC.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location. If not explicitly
// initialized, automatically initializes with the default timezone.
func Location() *time.Location {
	bizLocationOnce.Do(func() {
		bizLocation, _ = time.LoadLocation(DefaultTimezone)
	})
	return bizLocation
}

// StartOfDay returns midnight of t's day in the business timezone.
func StartOfDay(t time.Time) time.Time {
	bt := t.In(Location())
	return time.Date(bt.Year(), bt.Month(), bt.Day(), 0, 0, 0, 0, Location())
}

// StartOfMonth returns midnight on the first day of t's month in the
// business timezone.
func StartOfMonth(t time.Time) time.Time {
	bt := t.In(Location())
	return time.Date(bt.Year(), bt.Month(), 1, 0, 0, 0, 0, Location())
}

// AddMonths shifts a month boundary by n calendar months. The input is
// normalized to a month start first so day-of-month overflow cannot
// skip a month.
func AddMonths(t time.Time, n int) time.Time {
	start := StartOfMonth(t)
	return start.AddDate(0, n, 0)
}

// MonthKey returns a sortable yyyy-mm key for grouping entries by
// calendar month in the business timezone.
func MonthKey(t time.Time) string {
	bt := t.In(Location())
	return bt.Format("2006-01")
}

// WholeMonthsBetween returns the number of whole calendar months from
// `from` until `until`, flooring partial months at zero. A date later
// in the same calendar month counts as zero months.
func WholeMonthsBetween(from, until time.Time) int {
	f := from.In(Location())
	u := until.In(Location())
	if u.Before(f) {
		return 0
	}

	months := (u.Year()-f.Year())*12 + int(u.Month()) - int(f.Month())
	if u.Day() < f.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
