package ticket

import "time"

// Attachment describes an uploaded file attached to a ticket. Upload
// mechanics live with the external storage collaborator; tickets only
// carry the descriptor.
type Attachment struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url"`
}

// Metadata is the optional structured bag attached to a ticket:
// contact info, cost estimate, AI triage flags, and an ordered list of
// attachment descriptors.
type Metadata struct {
	ContactName        string       `json:"contactName,omitempty"`
	ContactPhone       string       `json:"contactPhone,omitempty"`
	EstimatedCostCents *int64       `json:"estimatedCostCents,omitempty"`
	DueDate            *time.Time   `json:"dueDate,omitempty"`
	Notes              string       `json:"notes,omitempty"`
	UseAI              bool         `json:"useAI,omitempty"`
	GeneratedByAI      bool         `json:"generatedByAI,omitempty"`
	AIProcessed        bool         `json:"aiProcessed,omitempty"`
	AIResolution       string       `json:"aiResolution,omitempty"`
	AIActionTaken      string       `json:"aiActionTaken,omitempty"`
	ManualReviewReason string       `json:"manualReviewReason,omitempty"`
	AIProcessingMS     int64        `json:"aiProcessingTime,omitempty"`
	Attachments        []Attachment `json:"attachments,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate the entity's bag
// through a shared attachment slice.
func (m Metadata) Clone() Metadata {
	out := m
	if m.EstimatedCostCents != nil {
		cost := *m.EstimatedCostCents
		out.EstimatedCostCents = &cost
	}
	if m.DueDate != nil {
		due := *m.DueDate
		out.DueDate = &due
	}
	if len(m.Attachments) > 0 {
		out.Attachments = make([]Attachment, len(m.Attachments))
		copy(out.Attachments, m.Attachments)
	}
	return out
}
