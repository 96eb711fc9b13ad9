package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    TicketStatus
		wantErr bool
	}{
		{"open", StatusOpen, false},
		{"in_progress_by_ai", StatusInProgressByAI, false},
		{"needs_manual_review", StatusNeedsManualReview, false},
		{"resolved", StatusResolved, false},
		{"closed", StatusClosed, false},
		{"bogus", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := NewTicketStatus(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeTicketStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TicketStatus
	}{
		{"canonical passes through", "open", StatusOpen},
		{"upper case folded", "RESOLVED", StatusResolved},
		{"mixed case folded", "In_Progress_By_AI", StatusInProgressByAI},
		{"legacy new maps to open", "new", StatusOpen},
		{"legacy in_progress maps to ai", "in_progress", StatusInProgressByAI},
		{"legacy pending maps to manual review", "pending", StatusNeedsManualReview},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeTicketStatus(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeTicketStatus_Unknown(t *testing.T) {
	_, err := NormalizeTicketStatus("escalated")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ticket status")
}

func TestTicketStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusResolved.IsTerminal())
	assert.True(t, StatusClosed.IsTerminal())
	assert.False(t, StatusOpen.IsTerminal())
	assert.False(t, StatusInProgressByAI.IsTerminal())
	assert.False(t, StatusNeedsManualReview.IsTerminal())
}

func TestTicketStatus_NeedsAttention(t *testing.T) {
	assert.True(t, StatusOpen.NeedsAttention())
	assert.True(t, StatusNeedsManualReview.NeedsAttention())
	assert.True(t, StatusInProgressByAI.NeedsAttention())
	assert.False(t, StatusResolved.NeedsAttention())
	assert.False(t, StatusClosed.NeedsAttention())
}

func TestTicketStatus_TerminalStatesHaveLimitedTransitions(t *testing.T) {
	all := []TicketStatus{StatusOpen, StatusInProgressByAI, StatusNeedsManualReview, StatusResolved, StatusClosed}

	for _, target := range all {
		assert.False(t, StatusClosed.CanTransitionTo(target), "closed must not transition to %s", target)
	}
	for _, target := range all {
		if target == StatusClosed {
			assert.True(t, StatusResolved.CanTransitionTo(target))
			continue
		}
		assert.False(t, StatusResolved.CanTransitionTo(target), "resolved must not transition to %s", target)
	}
}
