package repositories

import (
	"context"
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// ColumnRepository persists the columns of one pipeline. Both pipelines share
// the interface; implementations are bound to their pipeline's tables.
type ColumnRepository interface {
	SaveColumn(ctx context.Context, column domain.BoardColumn) error
	FindColumnByID(ctx context.Context, columnID string) (*domain.BoardColumn, error)
	// FindColumnByStage resolves the first column carrying a stage tag, ordered by
	// sort order. Used to land new items in the intake column.
	FindColumnByStage(ctx context.Context, stage domain.ColumnStage) (*domain.BoardColumn, error)
	ListColumns(ctx context.Context) ([]domain.BoardColumn, error)
	UpdateColumn(ctx context.Context, column domain.BoardColumn) error
	DeleteColumn(ctx context.Context, columnID string) error
}

// DemandMove carries everything a board move persists in one transaction: the
// placement update, the optional completion/status stamps, and the history entry.
type DemandMove struct {
	DemandID    string
	ColumnID    string
	Position    int
	CompletedAt *time.Time
	Status      *domain.DemandStatus
	History     domain.HistoryEntry
}

// DemandRepository persists general-pipeline work items.
type DemandRepository interface {
	SaveDemand(ctx context.Context, demand domain.Demand) error
	FindDemandByID(ctx context.Context, demandID string) (*domain.Demand, error)
	ListDemands(ctx context.Context, filter domain.DemandFilter) ([]domain.Demand, error)
	UpdateDemand(ctx context.Context, demand domain.Demand) error
	// MoveDemand applies the placement update and appends the history entry
	// atomically; partial application must not persist.
	MoveDemand(ctx context.Context, move DemandMove) error
	// DeleteDemand removes the item together with its history and comments in one
	// transaction.
	DeleteDemand(ctx context.Context, demandID string) error
	ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error)
	SaveComment(ctx context.Context, comment domain.Comment) error
	ListComments(ctx context.Context, demandID string) ([]domain.Comment, error)
}
