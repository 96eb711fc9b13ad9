package valueobjects

import (
	"fmt"
	"strings"
)

type TicketStatus string

const (
	StatusOpen              TicketStatus = "open"
	StatusInProgressByAI    TicketStatus = "in_progress_by_ai"
	StatusNeedsManualReview TicketStatus = "needs_manual_review"
	StatusResolved          TicketStatus = "resolved"
	StatusClosed            TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:              true,
	StatusInProgressByAI:    true,
	StatusNeedsManualReview: true,
	StatusResolved:          true,
	StatusClosed:            true,
}

// ticketStatusTransitions is the closed transition table. Resolved and
// closed are terminal: no automatic transition leaves them, and the
// only manual edge is resolved -> closed.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen: {
		StatusInProgressByAI,
		StatusNeedsManualReview,
		StatusResolved,
		StatusClosed,
	},
	StatusInProgressByAI: {
		StatusNeedsManualReview,
		StatusResolved,
	},
	StatusNeedsManualReview: {
		StatusOpen,
		StatusResolved,
		StatusClosed,
	},
	StatusResolved: {
		StatusClosed,
	},
	StatusClosed: {},
}

// legacyTicketStatuses maps client statuses from the pre-AI-triage API
// onto the canonical set. They are accepted on input, never emitted.
var legacyTicketStatuses = map[string]TicketStatus{
	"new":         StatusOpen,
	"in_progress": StatusInProgressByAI,
	"pending":     StatusNeedsManualReview,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	allowedTransitions, ok := ticketStatusTransitions[ts]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further automatic transition may occur.
func (ts TicketStatus) IsTerminal() bool {
	return ts == StatusResolved || ts == StatusClosed
}

// NeedsAttention reports whether the ticket should appear in the
// dashboard's open/needs-attention set.
func (ts TicketStatus) NeedsAttention() bool {
	return !ts.IsTerminal()
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsInProgressByAI() bool {
	return ts == StatusInProgressByAI
}

func (ts TicketStatus) IsNeedsManualReview() bool {
	return ts == StatusNeedsManualReview
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}

// NormalizeTicketStatus canonicalizes a wire status: lower-cases it and
// maps legacy statuses onto the current set.
func NormalizeTicketStatus(s string) (TicketStatus, error) {
	lowered := strings.ToLower(strings.TrimSpace(s))
	if mapped, ok := legacyTicketStatuses[lowered]; ok {
		return mapped, nil
	}
	return NewTicketStatus(lowered)
}
