package dto

import (
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDesignDemandRequest opens a design-pipeline work item.
type CreateDesignDemandRequest struct {
	Title       string             `json:"title" binding:"required,max=500"`
	Description *string            `json:"description"`
	DemandType  *domain.DesignType `json:"demandType" binding:"omitempty,oneof=art video"`
	ColumnID    *string            `json:"columnID"`
	Position    *int               `json:"position"`
	ClientID    *string            `json:"clientID"`
	AssigneeID  *string            `json:"assigneeID"`
	DueDate     *time.Time         `json:"dueDate"`
}

// UpdateDesignDemandRequest patches a design-pipeline work item.
type UpdateDesignDemandRequest struct {
	Title       *string            `json:"title" binding:"omitempty,max=500"`
	Description *string            `json:"description"`
	DemandType  *domain.DesignType `json:"demandType" binding:"omitempty,oneof=art video"`
	ClientID    *string            `json:"clientID"`
	AssigneeID  *string            `json:"assigneeID"`
	DueDate     *time.Time         `json:"dueDate"`
}

// UpsertRateRequest sets a member's per-type design rates.
type UpsertRateRequest struct {
	ArtValue   decimal.Decimal `json:"artValue" binding:"required"`
	VideoValue decimal.Decimal `json:"videoValue" binding:"required"`
}

// AttachmentUpload carries an uploaded file's bytes and metadata into the
// service layer, which validates size and content type before anything persists.
type AttachmentUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}
