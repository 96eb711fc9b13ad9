package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "loftwork/internal/domain/ticket/valueobjects"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
	synthesizedTitleLen  = 50
)

type Ticket struct {
	id          uint
	title       string
	description string
	priority    vo.Priority
	status      vo.TicketStatus
	propertyID  uint
	metadata    Metadata
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewTicket(
	title string,
	description string,
	priority vo.Priority,
	propertyID uint,
	metadata Metadata,
) (*Ticket, error) {
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if propertyID == 0 {
		return nil, fmt.Errorf("property ID is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}

	if len(title) == 0 {
		if !metadata.UseAI {
			return nil, fmt.Errorf("title is required")
		}
		title = SynthesizeTitle(description)
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}

	now := time.Now()

	return &Ticket{
		title:       title,
		description: description,
		priority:    priority,
		status:      vo.StatusOpen,
		propertyID:  propertyID,
		metadata:    metadata.Clone(),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	title string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	propertyID uint,
	metadata Metadata,
	version int,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if propertyID == 0 {
		return nil, fmt.Errorf("property ID is required")
	}

	return &Ticket{
		id:          id,
		title:       title,
		description: description,
		priority:    priority,
		status:      status,
		propertyID:  propertyID,
		metadata:    metadata.Clone(),
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// SynthesizeTitle derives a title from the first 50 characters of the
// description, used when an AI-triaged ticket is created without one.
func SynthesizeTitle(description string) string {
	trimmed := strings.TrimSpace(description)
	if utf8.RuneCountInString(trimmed) <= synthesizedTitleLen {
		return trimmed
	}
	runes := []rune(trimmed)
	return string(runes[:synthesizedTitleLen])
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) PropertyID() uint {
	return t.propertyID
}

func (t *Ticket) Metadata() Metadata {
	return t.metadata.Clone()
}

func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// ChangeStatus applies a status transition per the transition table.
// Changing to the current status is a no-op.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if t.status == newStatus {
		return nil
	}

	if !t.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, newStatus)
	}

	t.status = newStatus
	t.touch()

	return nil
}

func (t *Ticket) ChangePriority(newPriority vo.Priority) error {
	if !newPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", newPriority)
	}

	if t.priority == newPriority {
		return nil
	}

	t.priority = newPriority
	t.touch()

	return nil
}

// UpdateDetails patches only the provided fields; nil pointers leave
// the existing values untouched.
func (t *Ticket) UpdateDetails(title, description *string) error {
	changed := false

	if title != nil {
		if len(*title) == 0 {
			return fmt.Errorf("title cannot be empty")
		}
		if len(*title) > maxTitleLength {
			return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
		}
		t.title = *title
		changed = true
	}

	if description != nil {
		if len(*description) == 0 {
			return fmt.Errorf("description cannot be empty")
		}
		if len(*description) > maxDescriptionLength {
			return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
		}
		t.description = *description
		changed = true
	}

	if changed {
		t.touch()
	}
	return nil
}

func (t *Ticket) SetMetadata(metadata Metadata) {
	t.metadata = metadata.Clone()
	t.touch()
}

// touch advances updatedAt monotonically. Wall-clock regression (NTP
// step, sub-millisecond successive updates) must never make updatedAt
// decrease, since reconciliation orders by it.
func (t *Ticket) touch() {
	now := time.Now()
	if now.After(t.updatedAt) {
		t.updatedAt = now
	} else {
		t.updatedAt = t.updatedAt.Add(time.Millisecond)
	}
	t.version++
}

// Snapshot returns the ticket's current state as a plain record, the
// form carried by push events and held by live views.
func (t *Ticket) Snapshot() Snapshot {
	return Snapshot{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		Priority:    t.priority,
		Status:      t.status,
		PropertyID:  t.propertyID,
		Metadata:    t.metadata.Clone(),
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
	}
}

// Snapshot is the full-record wire form of a ticket.
type Snapshot struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    vo.Priority     `json:"priority"`
	Status      vo.TicketStatus `json:"status"`
	PropertyID  uint            `json:"propertyId"`
	Metadata    Metadata        `json:"metadata"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
