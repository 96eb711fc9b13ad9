// Package dto carries the wire-facing ticket representations shared by
// the HTTP handlers and use cases.
package dto

import (
	"time"

	"loftwork/internal/domain/ticket"
)

// TicketDTO is the canonical outward form of a ticket. Status and
// priority are lower-case strings.
type TicketDTO struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Priority        string          `json:"priority"`
	Status          string          `json:"status"`
	PropertyID      uint            `json:"propertyId"`
	PropertyAddress string          `json:"propertyAddress,omitempty"`
	Metadata        ticket.Metadata `json:"metadata"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func FromSnapshot(s ticket.Snapshot) TicketDTO {
	return TicketDTO{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Priority:    s.Priority.String(),
		Status:      s.Status.String(),
		PropertyID:  s.PropertyID,
		Metadata:    s.Metadata,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromSnapshots(snapshots []ticket.Snapshot) []TicketDTO {
	out := make([]TicketDTO, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, FromSnapshot(s))
	}
	return out
}
