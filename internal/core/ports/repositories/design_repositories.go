package repositories

import (
	"context"
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// DesignMove mirrors DemandMove for the design pipeline, which has no status enum.
type DesignMove struct {
	DemandID    string
	ColumnID    string
	Position    int
	CompletedAt *time.Time
	History     domain.HistoryEntry
}

// DesignApproval carries the approval stamps and the payment record persisted in
// one transaction.
type DesignApproval struct {
	Demand  domain.DesignDemand
	Payment domain.DesignPayment
}

// DesignRepository persists design-pipeline work items, their payments,
// attachments, comments and per-member rates.
type DesignRepository interface {
	SaveDemand(ctx context.Context, demand domain.DesignDemand) error
	FindDemandByID(ctx context.Context, demandID string) (*domain.DesignDemand, error)
	ListDemands(ctx context.Context, clientID, assigneeID *string) ([]domain.DesignDemand, error)
	UpdateDemand(ctx context.Context, demand domain.DesignDemand) error
	MoveDemand(ctx context.Context, move DesignMove) error
	// ApproveDemand persists the approval stamps and inserts the payment record
	// atomically.
	ApproveDemand(ctx context.Context, approval DesignApproval) error
	// DeleteDemand removes the item together with its history, payments, comments
	// and attachment rows in one transaction.
	DeleteDemand(ctx context.Context, demandID string) error
	ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error)

	SaveComment(ctx context.Context, comment domain.Comment) error
	ListComments(ctx context.Context, demandID string) ([]domain.Comment, error)

	SaveAttachment(ctx context.Context, attachment domain.Attachment) error
	FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error)
	ListAttachments(ctx context.Context, demandID string) ([]domain.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error

	ListPayments(ctx context.Context, month, year int, memberID *string) ([]domain.DesignPayment, error)
	FindRateByMember(ctx context.Context, memberID string) (*domain.MemberRate, error)
	ListRates(ctx context.Context) ([]domain.MemberRate, error)
	UpsertRate(ctx context.Context, rate domain.MemberRate) error

	ListApprovedDemands(ctx context.Context, clientID string) ([]domain.DesignDemand, error)
}
