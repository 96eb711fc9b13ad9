package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"loftwork/internal/application/ticket/usecases"
	domainticket "loftwork/internal/domain/ticket"
	"loftwork/internal/shared/errors"
)

type CreateTicketRequest struct {
	Title       string                 `json:"title" binding:"max=200"`
	Description string                 `json:"description" binding:"required,max=5000"`
	Priority    string                 `json:"priority"`
	PropertyID  uint                   `json:"property_id" binding:"required"`
	Metadata    *domainticket.Metadata `json:"metadata,omitempty"`
}

func (r *CreateTicketRequest) ToCommand() usecases.CreateTicketCommand {
	cmd := usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		PropertyID:  r.PropertyID,
	}
	if r.Metadata != nil {
		cmd.Metadata = *r.Metadata
	}
	return cmd
}

// UpdateTicketRequest is a partial patch; absent fields are untouched.
type UpdateTicketRequest struct {
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	Priority    *string                `json:"priority,omitempty"`
	Status      *string                `json:"status,omitempty"`
	Metadata    *domainticket.Metadata `json:"metadata,omitempty"`
}

func (r *UpdateTicketRequest) ToCommand(ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		TicketID:    ticketID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		Metadata:    r.Metadata,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ChangePriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

type MoveTicketRequest struct {
	Column string `json:"column" binding:"required"`
}

type ListTicketsRequest struct {
	Page       int
	PageSize   int
	Status     string
	Priority   string
	PropertyID *uint
	Search     string
	SortBy     string
	SortOrder  string
}

func (r *ListTicketsRequest) ToQuery() usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Status:     r.Status,
		Priority:   r.Priority,
		PropertyID: r.PropertyID,
		Search:     r.Search,
		Page:       r.Page,
		PageSize:   r.PageSize,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
	}
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	req := &ListTicketsRequest{
		Page:      page,
		PageSize:  pageSize,
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if propertyIDStr := c.Query("property_id"); propertyIDStr != "" {
		propertyID, err := strconv.ParseUint(propertyIDStr, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("invalid property_id")
		}
		id := uint(propertyID)
		req.PropertyID = &id
	}

	return req, nil
}
