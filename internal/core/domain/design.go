package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DesignType distinguishes the two billable kinds of design work.
type DesignType string

const (
	DesignArt   DesignType = "art"
	DesignVideo DesignType = "video"
)

// DesignDemand is a work item on the design-production pipeline. There is no
// separate status enum: board placement is the state, and approval is a terminal
// action distinct from moves.
type DesignDemand struct {
	DemandID          string           `json:"demandID" db:"demand_id"`
	Title             string           `json:"title" db:"title"`
	Description       *string          `json:"description" db:"description"`
	DemandType        DesignType       `json:"demandType" db:"demand_type"`
	ColumnID          *string          `json:"columnID" db:"column_id"`
	Position          int              `json:"position" db:"position"`
	ClientID          *string          `json:"clientID" db:"client_id"`
	AssigneeID        *string          `json:"assigneeID" db:"assignee_id"`
	CreatedBy         *string          `json:"createdBy" db:"created_by"`
	DueDate           *time.Time       `json:"dueDate" db:"due_date"`
	CompletedAt       *time.Time       `json:"completedAt" db:"completed_at"`
	ApprovedAt        *time.Time       `json:"approvedAt" db:"approved_at"`
	PaymentValue      *decimal.Decimal `json:"paymentValue" db:"payment_value"`
	PaymentRegistered bool             `json:"paymentRegistered" db:"payment_registered"`
	Timestamps

	// Enriched on reads.
	ColumnName       *string `json:"columnName,omitempty" db:"-"`
	ClientName       *string `json:"clientName,omitempty" db:"-"`
	AssigneeName     *string `json:"assigneeName,omitempty" db:"-"`
	AttachmentsCount int     `json:"attachmentsCount" db:"-"`
	CommentsCount    int     `json:"commentsCount" db:"-"`
}

// Attachment is a file stored against a design demand.
type Attachment struct {
	AttachmentID string    `json:"attachmentID" db:"attachment_id"`
	DemandID     string    `json:"demandID" db:"demand_id"`
	Filename     string    `json:"filename" db:"filename"`
	StoragePath  string    `json:"-" db:"storage_path"`
	ContentType  *string   `json:"contentType" db:"content_type"`
	SizeBytes    int64     `json:"sizeBytes" db:"size_bytes"`
	UploadedBy   *string   `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// DesignPayment is the immutable payment record emitted exactly once when a design
// demand is approved. The value is frozen at approval; later rate edits never
// alter issued payments.
type DesignPayment struct {
	PaymentID  string          `json:"paymentID" db:"payment_id"`
	DemandID   string          `json:"demandID" db:"demand_id"`
	MemberID   string          `json:"memberID" db:"member_id"`
	ClientID   *string         `json:"clientID" db:"client_id"`
	DemandType DesignType      `json:"demandType" db:"demand_type"`
	Value      decimal.Decimal `json:"value" db:"value"`
	Month      int             `json:"month" db:"month"`
	Year       int             `json:"year" db:"year"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`

	// Enriched on reads.
	MemberName  *string `json:"memberName,omitempty" db:"-"`
	ClientName  *string `json:"clientName,omitempty" db:"-"`
	DemandTitle *string `json:"demandTitle,omitempty" db:"-"`
}

// MemberRate overrides the global default art/video rates for one member.
// Absence of a row means the configured defaults apply.
type MemberRate struct {
	MemberID   string          `json:"memberID" db:"member_id"`
	ArtValue   decimal.Decimal `json:"artValue" db:"art_value"`
	VideoValue decimal.Decimal `json:"videoValue" db:"video_value"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`

	MemberName string `json:"memberName,omitempty" db:"-"`
}

// PaymentSummary aggregates one member's issued design payments for a month.
type PaymentSummary struct {
	MemberID    string          `json:"memberID"`
	MemberName  string          `json:"memberName"`
	TotalArts   int             `json:"totalArts"`
	TotalVideos int             `json:"totalVideos"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	ArtRate     decimal.Decimal `json:"artRate"`
	VideoRate   decimal.Decimal `json:"videoRate"`
	Payments    []DesignPayment `json:"payments"`
}

// DesignBoard is a column-grouped snapshot of the design pipeline.
type DesignBoard struct {
	Columns []BoardColumn             `json:"columns"`
	Demands map[string][]DesignDemand `json:"demands"`
}

// GalleryItem is an approved design demand with its attachments, shown on the
// per-client gallery.
type GalleryItem struct {
	DemandID    string       `json:"demandID"`
	Title       string       `json:"title"`
	DemandType  DesignType   `json:"demandType"`
	ApprovedAt  *time.Time   `json:"approvedAt"`
	Attachments []Attachment `json:"attachments"`
}
