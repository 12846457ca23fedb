package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/google/uuid"
)

const slaWarningWindow = 24 * time.Hour

// demandService is the board engine for the general pipeline. Completion, SLA
// and status transitions key off column stage tags.
type demandService struct {
	BaseService
	demandRepo portsrepo.DemandRepository
	columnRepo portsrepo.ColumnRepository
}

// DemandServiceOption is a functional option for configuring the demand service.
type DemandServiceOption func(*demandService)

// WithDemandClock overrides the clock used for SLA derivation and stamps.
func WithDemandClock(clock Clock) DemandServiceOption {
	return func(s *demandService) {
		s.clock = clock
	}
}

// NewDemandService creates the general-pipeline board engine.
func NewDemandService(demandRepo portsrepo.DemandRepository, columnRepo portsrepo.ColumnRepository, options ...DemandServiceOption) portssvc.DemandService {
	svc := &demandService{
		demandRepo: demandRepo,
		columnRepo: columnRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DemandService = (*demandService)(nil)

// statusForStage keeps the explicit status enum in sync with the stage of the
// column a demand lands in.
func statusForStage(stage domain.ColumnStage) domain.DemandStatus {
	switch stage {
	case domain.StageIntake:
		return domain.StatusBacklog
	case domain.StageInProgress:
		return domain.StatusInProgress
	case domain.StageReview:
		return domain.StatusInReview
	case domain.StageDone:
		return domain.StatusDone
	default:
		return domain.StatusTodo
	}
}

func (s *demandService) CreateColumn(ctx context.Context, req dto.CreateColumnRequest) (*domain.BoardColumn, error) {
	return createColumn(ctx, s.columnRepo, req, s.Now())
}

func (s *demandService) ListColumns(ctx context.Context) ([]domain.BoardColumn, error) {
	return s.columnRepo.ListColumns(ctx)
}

func (s *demandService) UpdateColumn(ctx context.Context, columnID string, req dto.UpdateColumnRequest) (*domain.BoardColumn, error) {
	return updateColumn(ctx, s.columnRepo, columnID, req)
}

func (s *demandService) DeleteColumn(ctx context.Context, columnID string) error {
	return deleteColumn(ctx, s.columnRepo, columnID)
}

func (s *demandService) CreateDemand(ctx context.Context, req dto.CreateDemandRequest, creatorUserID string) (*domain.Demand, error) {
	now := s.Now()

	var column *domain.BoardColumn
	var err error
	if req.ColumnID != nil {
		column, err = s.columnRepo.FindColumnByID(ctx, *req.ColumnID)
	} else {
		column, err = s.columnRepo.FindColumnByStage(ctx, domain.StageIntake)
	}
	if err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if req.Priority != nil {
		priority = *req.Priority
	}
	position := 0
	if req.Position != nil {
		position = *req.Position
	}

	demand := domain.Demand{
		DemandID:    uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      statusForStage(column.Stage),
		DemandType:  req.DemandType,
		ColumnID:    &column.ColumnID,
		Position:    position,
		ClientID:    req.ClientID,
		AssigneeID:  req.AssigneeID,
		CreatedBy:   &creatorUserID,
		SLAHours:    req.SLAHours,
		DueDate:     req.DueDate,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if demand.DueDate == nil && req.SLAHours != nil {
		due := now.Add(time.Duration(*req.SLAHours) * time.Hour)
		demand.DueDate = &due
	}

	if err := s.demandRepo.SaveDemand(ctx, demand); err != nil {
		s.LogError(ctx, err, "Failed to save demand", slog.String("title", req.Title))
		return nil, err
	}
	demand.SLA = s.slaFor(demand)
	return &demand, nil
}

func (s *demandService) GetDemandByID(ctx context.Context, demandID string) (*domain.Demand, error) {
	demand, err := s.demandRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		return nil, err
	}
	demand.SLA = s.slaFor(*demand)

	history, err := s.demandRepo.ListHistory(ctx, demandID)
	if err != nil {
		return nil, err
	}
	demand.InProgressHours = inProgressHours(history)
	return demand, nil
}

func (s *demandService) ListDemands(ctx context.Context, filter domain.DemandFilter) ([]domain.Demand, error) {
	demands, err := s.demandRepo.ListDemands(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range demands {
		demands[i].SLA = s.slaFor(demands[i])
	}
	return demands, nil
}

func (s *demandService) UpdateDemand(ctx context.Context, demandID string, req dto.UpdateDemandRequest) (*domain.Demand, error) {
	demand, err := s.demandRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		demand.Title = *req.Title
	}
	if req.Description != nil {
		demand.Description = req.Description
	}
	if req.Priority != nil {
		demand.Priority = *req.Priority
	}
	if req.Status != nil {
		demand.Status = *req.Status
		if *req.Status == domain.StatusDone && demand.CompletedAt == nil {
			now := s.Now()
			demand.CompletedAt = &now
		}
	}
	if req.DemandType != nil {
		demand.DemandType = req.DemandType
	}
	if req.ClientID != nil {
		demand.ClientID = req.ClientID
	}
	if req.AssigneeID != nil {
		demand.AssigneeID = req.AssigneeID
	}
	if req.SLAHours != nil {
		demand.SLAHours = req.SLAHours
	}
	if req.DueDate != nil {
		demand.DueDate = req.DueDate
	}
	demand.UpdatedAt = s.Now()

	if err := s.demandRepo.UpdateDemand(ctx, *demand); err != nil {
		return nil, err
	}
	demand.SLA = s.slaFor(*demand)
	return demand, nil
}

// MoveDemand repositions a demand, snapshotting the transition into history and
// stamping completion when the target column carries the done stage. The
// placement and the history entry persist in one transaction.
func (s *demandService) MoveDemand(ctx context.Context, demandID string, req dto.MoveDemandRequest, actorUserID string) (*domain.Demand, error) {
	demand, err := s.demandRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		return nil, err
	}
	target, err := s.columnRepo.FindColumnByID(ctx, req.ColumnID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	entry := domain.HistoryEntry{
		HistoryID: uuid.NewString(),
		DemandID:  demandID,
		ToColumn:  &target.Name,
		ToStage:   &target.Stage,
		ChangedBy: &actorUserID,
		CreatedAt: now,
	}
	if demand.ColumnID != nil {
		if from, err := s.columnRepo.FindColumnByID(ctx, *demand.ColumnID); err == nil {
			entry.FromColumn = &from.Name
			entry.FromStage = &from.Stage
		}
	}

	status := statusForStage(target.Stage)
	move := portsrepo.DemandMove{
		DemandID: demandID,
		ColumnID: target.ColumnID,
		Position: req.Position,
		Status:   &status,
		History:  entry,
	}
	if target.Stage == domain.StageDone {
		move.CompletedAt = &now
	}

	if err := s.demandRepo.MoveDemand(ctx, move); err != nil {
		s.LogError(ctx, err, "Failed to move demand",
			slog.String("demand_id", demandID), slog.String("column_id", target.ColumnID))
		return nil, err
	}

	demand.ColumnID = &target.ColumnID
	demand.Position = req.Position
	demand.Status = status
	if move.CompletedAt != nil {
		demand.CompletedAt = move.CompletedAt
	}
	demand.UpdatedAt = now
	demand.SLA = s.slaFor(*demand)
	return demand, nil
}

func (s *demandService) DeleteDemand(ctx context.Context, demandID string) error {
	if _, err := s.demandRepo.FindDemandByID(ctx, demandID); err != nil {
		return err
	}
	return s.demandRepo.DeleteDemand(ctx, demandID)
}

func (s *demandService) GetBoard(ctx context.Context, clientID, assigneeID *string) (*domain.Board, error) {
	columns, err := s.columnRepo.ListColumns(ctx)
	if err != nil {
		return nil, err
	}
	demands, err := s.demandRepo.ListDemands(ctx, domain.DemandFilter{ClientID: clientID, AssigneeID: assigneeID})
	if err != nil {
		return nil, err
	}

	board := &domain.Board{
		Columns: columns,
		Demands: make(map[string][]domain.Demand, len(columns)),
	}
	for _, column := range columns {
		board.Demands[column.ColumnID] = []domain.Demand{}
	}
	for _, demand := range demands {
		if demand.ColumnID == nil {
			continue
		}
		demand.SLA = s.slaFor(demand)
		board.Demands[*demand.ColumnID] = append(board.Demands[*demand.ColumnID], demand)
	}
	for i := range board.Columns {
		board.Columns[i].DemandsCount = len(board.Demands[board.Columns[i].ColumnID])
	}
	return board, nil
}

func (s *demandService) ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error) {
	if _, err := s.demandRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	return s.demandRepo.ListHistory(ctx, demandID)
}

func (s *demandService) AddComment(ctx context.Context, demandID string, req dto.CreateCommentRequest, actorUserID string) (*domain.Comment, error) {
	if _, err := s.demandRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	comment := domain.Comment{
		CommentID: uuid.NewString(),
		DemandID:  demandID,
		UserID:    &actorUserID,
		Text:      req.Text,
		CreatedAt: s.Now(),
	}
	if err := s.demandRepo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *demandService) ListComments(ctx context.Context, demandID string) ([]domain.Comment, error) {
	if _, err := s.demandRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	return s.demandRepo.ListComments(ctx, demandID)
}

// slaFor derives the SLA badge at read time. Completed demands and demands
// without a due date are always on time.
func (s *demandService) slaFor(demand domain.Demand) domain.SLAStatus {
	if demand.Status == domain.StatusDone || demand.CompletedAt != nil || demand.DueDate == nil {
		return domain.SLAOnTime
	}
	now := s.Now()
	if now.After(*demand.DueDate) {
		return domain.SLAOverdue
	}
	if demand.DueDate.Sub(now) < slaWarningWindow {
		return domain.SLAWarning
	}
	return domain.SLAOnTime
}

// inProgressHours measures the span between the first transition into an
// in_progress-stage column and the first later transition into a done-stage
// column. Either transition missing yields nil.
func inProgressHours(history []domain.HistoryEntry) *float64 {
	var started *time.Time
	for _, entry := range history {
		if entry.ToStage == nil {
			continue
		}
		switch *entry.ToStage {
		case domain.StageInProgress:
			if started == nil {
				t := entry.CreatedAt
				started = &t
			}
		case domain.StageDone:
			if started != nil && !entry.CreatedAt.Before(*started) {
				hours := entry.CreatedAt.Sub(*started).Hours()
				return &hours
			}
		}
	}
	return nil
}

// Column helpers shared by both pipeline engines.

func createColumn(ctx context.Context, repo portsrepo.ColumnRepository, req dto.CreateColumnRequest, now time.Time) (*domain.BoardColumn, error) {
	color := req.Color
	if color == "" {
		color = "#6b7280"
	}
	column := domain.BoardColumn{
		ColumnID:  uuid.NewString(),
		Name:      req.Name,
		Stage:     req.Stage,
		SortOrder: req.SortOrder,
		Color:     color,
		CreatedAt: now,
	}
	if err := repo.SaveColumn(ctx, column); err != nil {
		return nil, err
	}
	return &column, nil
}

func updateColumn(ctx context.Context, repo portsrepo.ColumnRepository, columnID string, req dto.UpdateColumnRequest) (*domain.BoardColumn, error) {
	column, err := repo.FindColumnByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		column.Name = *req.Name
	}
	if req.SortOrder != nil {
		column.SortOrder = *req.SortOrder
	}
	if req.Color != nil {
		column.Color = *req.Color
	}
	if err := repo.UpdateColumn(ctx, *column); err != nil {
		return nil, err
	}
	return column, nil
}

func deleteColumn(ctx context.Context, repo portsrepo.ColumnRepository, columnID string) error {
	column, err := repo.FindColumnByID(ctx, columnID)
	if err != nil {
		return err
	}
	if column.IsDefault {
		return apperrors.NewForbiddenError("default columns cannot be deleted")
	}
	return repo.DeleteColumn(ctx, columnID)
}
