package services

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/rqos/agency-ops-backend/internal/dto"
)

// ColumnManager is the column CRUD surface shared by both pipelines.
type ColumnManager interface {
	CreateColumn(ctx context.Context, req dto.CreateColumnRequest) (*domain.BoardColumn, error)
	ListColumns(ctx context.Context) ([]domain.BoardColumn, error)
	UpdateColumn(ctx context.Context, columnID string, req dto.UpdateColumnRequest) (*domain.BoardColumn, error)
	DeleteColumn(ctx context.Context, columnID string) error
}

// DemandService is the kanban board engine for the general pipeline.
type DemandService interface {
	ColumnManager

	CreateDemand(ctx context.Context, req dto.CreateDemandRequest, creatorUserID string) (*domain.Demand, error)
	GetDemandByID(ctx context.Context, demandID string) (*domain.Demand, error)
	ListDemands(ctx context.Context, filter domain.DemandFilter) ([]domain.Demand, error)
	UpdateDemand(ctx context.Context, demandID string, req dto.UpdateDemandRequest) (*domain.Demand, error)
	MoveDemand(ctx context.Context, demandID string, req dto.MoveDemandRequest, actorUserID string) (*domain.Demand, error)
	DeleteDemand(ctx context.Context, demandID string) error
	GetBoard(ctx context.Context, clientID, assigneeID *string) (*domain.Board, error)
	ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error)
	AddComment(ctx context.Context, demandID string, req dto.CreateCommentRequest, actorUserID string) (*domain.Comment, error)
	ListComments(ctx context.Context, demandID string) ([]domain.Comment, error)
}

// DesignService is the kanban board engine for the design-production pipeline,
// including payment approval, attachments and the rate table.
type DesignService interface {
	ColumnManager

	CreateDemand(ctx context.Context, req dto.CreateDesignDemandRequest, creatorUserID string) (*domain.DesignDemand, error)
	GetDemandByID(ctx context.Context, demandID string) (*domain.DesignDemand, error)
	ListDemands(ctx context.Context, clientID, assigneeID *string) ([]domain.DesignDemand, error)
	UpdateDemand(ctx context.Context, demandID string, req dto.UpdateDesignDemandRequest) (*domain.DesignDemand, error)
	MoveDemand(ctx context.Context, demandID string, req dto.MoveDemandRequest, actorUserID string) (*domain.DesignDemand, error)
	// ApproveDemand registers the frozen payment for an assigned, not yet
	// approved demand. A second approval is rejected as a conflict.
	ApproveDemand(ctx context.Context, demandID string, actorUserID string) (*domain.DesignDemand, error)
	DeleteDemand(ctx context.Context, demandID string) error
	GetBoard(ctx context.Context, clientID, assigneeID *string) (*domain.DesignBoard, error)
	ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error)
	AddComment(ctx context.Context, demandID string, req dto.CreateCommentRequest, actorUserID string) (*domain.Comment, error)
	ListComments(ctx context.Context, demandID string) ([]domain.Comment, error)

	UploadAttachment(ctx context.Context, demandID string, upload dto.AttachmentUpload, actorUserID string) (*domain.Attachment, error)
	GetAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error)
	ListAttachments(ctx context.Context, demandID string) ([]domain.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error

	ListPayments(ctx context.Context, month, year int, memberID *string) ([]domain.DesignPayment, error)
	PaymentSummary(ctx context.Context, month, year int) ([]domain.PaymentSummary, error)
	ListRates(ctx context.Context) ([]domain.MemberRate, error)
	UpsertRate(ctx context.Context, memberID string, req dto.UpsertRateRequest) (*domain.MemberRate, error)
	ClientGallery(ctx context.Context, clientID string) ([]domain.GalleryItem, error)
}
