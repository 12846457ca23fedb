package dto

import (
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// CreateColumnRequest adds a board column. Stage is fixed for the lifetime of
// the column; name and color remain freely editable.
type CreateColumnRequest struct {
	Name      string             `json:"name" binding:"required,max=255"`
	Stage     domain.ColumnStage `json:"stage" binding:"required,oneof=intake in_progress review done other"`
	SortOrder int                `json:"sortOrder" binding:"min=0"`
	Color     string             `json:"color" binding:"omitempty,hexcolor"`
}

// UpdateColumnRequest patches a column's display attributes. The stage tag is
// deliberately absent: it cannot be changed after creation.
type UpdateColumnRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=255"`
	SortOrder *int    `json:"sortOrder" binding:"omitempty,min=0"`
	Color     *string `json:"color" binding:"omitempty,hexcolor"`
}

// CreateDemandRequest opens a general-pipeline work item.
type CreateDemandRequest struct {
	Title       string                 `json:"title" binding:"required,max=500"`
	Description *string                `json:"description"`
	Priority    *domain.DemandPriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DemandType  *string                `json:"demandType" binding:"omitempty,max=100"`
	ColumnID    *string                `json:"columnID"`
	Position    *int                   `json:"position"`
	ClientID    *string                `json:"clientID"`
	AssigneeID  *string                `json:"assigneeID"`
	SLAHours    *int                   `json:"slaHours" binding:"omitempty,min=0"`
	DueDate     *time.Time             `json:"dueDate"`
}

// UpdateDemandRequest patches a general-pipeline work item.
type UpdateDemandRequest struct {
	Title       *string                `json:"title" binding:"omitempty,max=500"`
	Description *string                `json:"description"`
	Priority    *domain.DemandPriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status      *domain.DemandStatus   `json:"status" binding:"omitempty,oneof=backlog todo in_progress in_review done"`
	DemandType  *string                `json:"demandType" binding:"omitempty,max=100"`
	ClientID    *string                `json:"clientID"`
	AssigneeID  *string                `json:"assigneeID"`
	SLAHours    *int                   `json:"slaHours" binding:"omitempty,min=0"`
	DueDate     *time.Time             `json:"dueDate"`
}

// MoveDemandRequest repositions a work item on its board. Position is trusted as
// supplied; no renumbering happens server side.
type MoveDemandRequest struct {
	ColumnID string `json:"columnID" binding:"required"`
	Position int    `json:"position" binding:"min=0"`
}

// CreateCommentRequest adds a comment to a work item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
