package ticket

import (
	"time"

	vo "loftwork/internal/domain/ticket/valueobjects"
)

type TicketCreatedEvent struct {
	Ticket    Snapshot
	Timestamp time.Time
}

func NewTicketCreatedEvent(snapshot Snapshot, timestamp time.Time) TicketCreatedEvent {
	return TicketCreatedEvent{
		Ticket:    snapshot,
		Timestamp: timestamp,
	}
}

type TicketUpdatedEvent struct {
	Ticket    Snapshot
	OldStatus vo.TicketStatus
	Timestamp time.Time
}

func NewTicketUpdatedEvent(snapshot Snapshot, oldStatus vo.TicketStatus, timestamp time.Time) TicketUpdatedEvent {
	return TicketUpdatedEvent{
		Ticket:    snapshot,
		OldStatus: oldStatus,
		Timestamp: timestamp,
	}
}

type TicketDeletedEvent struct {
	TicketID  uint
	Timestamp time.Time
}

func NewTicketDeletedEvent(ticketID uint, timestamp time.Time) TicketDeletedEvent {
	return TicketDeletedEvent{
		TicketID:  ticketID,
		Timestamp: timestamp,
	}
}
