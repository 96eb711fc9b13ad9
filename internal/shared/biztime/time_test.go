package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfMonth(t *testing.T) {
	ts := time.Date(2024, 2, 17, 15, 4, 5, 0, time.UTC)
	got := StartOfMonth(ts)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got.UTC())
}

func TestAddMonths(t *testing.T) {
	ts := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	// Normalized to month start, so adding one month lands on Feb 1
	// instead of overflowing past February.
	got := AddMonths(ts, 1)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got.UTC())

	got = AddMonths(ts, -2)
	assert.Equal(t, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), got.UTC())
}

func TestWholeMonthsBetween(t *testing.T) {
	tests := []struct {
		name  string
		from  time.Time
		until time.Time
		want  int
	}{
		{
			name:  "same month",
			from:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			until: time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "exactly two months",
			from:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			until: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  2,
		},
		{
			name:  "partial month floors down",
			from:  time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			until: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "until before from",
			from:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			until: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "year boundary",
			from:  time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC),
			until: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WholeMonthsBetween(tt.from, tt.until))
		})
	}
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-12", MonthKey(ts))
}
