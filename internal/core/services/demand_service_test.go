package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/core/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type DemandServiceTestSuite struct {
	suite.Suite
	mockDemandRepo *MockDemandRepository
	mockColumnRepo *MockColumnRepository
	service        portssvc.DemandService
}

func (suite *DemandServiceTestSuite) SetupTest() {
	suite.mockDemandRepo = new(MockDemandRepository)
	suite.mockColumnRepo = new(MockColumnRepository)
	suite.service = services.NewDemandService(
		suite.mockDemandRepo,
		suite.mockColumnRepo,
		services.WithDemandClock(services.FixedClock{T: testNow}),
	)
}

func column(id, name string, stage domain.ColumnStage) *domain.BoardColumn {
	return &domain.BoardColumn{ColumnID: id, Name: name, Stage: stage}
}

func (suite *DemandServiceTestSuite) TestCreateDemand_LandsInIntakeColumn() {
	ctx := context.Background()
	intake := column("col-intake", "Backlog", domain.StageIntake)
	slaHours := 48

	suite.mockColumnRepo.On("FindColumnByStage", ctx, domain.StageIntake).Return(intake, nil).Once()
	suite.mockDemandRepo.On("SaveDemand", ctx, mock.MatchedBy(func(d domain.Demand) bool {
		return d.Status == domain.StatusBacklog &&
			d.ColumnID != nil && *d.ColumnID == "col-intake" &&
			d.DueDate != nil && d.DueDate.Equal(testNow.Add(48*time.Hour))
	})).Return(nil).Once()

	demand, err := suite.service.CreateDemand(ctx, dto.CreateDemandRequest{
		Title:    "Write campaign copy",
		SLAHours: &slaHours,
	}, "user-1")

	suite.NoError(err)
	suite.Require().NotNil(demand)
	suite.Equal(domain.StatusBacklog, demand.Status)
	suite.Equal(domain.PriorityMedium, demand.Priority)
	suite.Require().NotNil(demand.DueDate)
	suite.True(demand.DueDate.Equal(testNow.Add(48 * time.Hour)))
	suite.mockDemandRepo.AssertExpectations(suite.T())
}

func (suite *DemandServiceTestSuite) TestMoveDemand_ToDoneStampsCompletion() {
	ctx := context.Background()
	fromColumnID := "col-progress"
	demand := &domain.Demand{
		DemandID: "demand-1",
		Title:    "Write campaign copy",
		Status:   domain.StatusInProgress,
		ColumnID: &fromColumnID,
	}
	from := column(fromColumnID, "Em Progresso", domain.StageInProgress)
	target := column("col-done", "Concluído", domain.StageDone)

	suite.mockDemandRepo.On("FindDemandByID", ctx, "demand-1").Return(demand, nil).Once()
	suite.mockColumnRepo.On("FindColumnByID", ctx, "col-done").Return(target, nil).Once()
	suite.mockColumnRepo.On("FindColumnByID", ctx, fromColumnID).Return(from, nil).Once()
	suite.mockDemandRepo.On("MoveDemand", ctx, mock.MatchedBy(func(move portsrepo.DemandMove) bool {
		return move.ColumnID == "col-done" &&
			move.CompletedAt != nil && move.CompletedAt.Equal(testNow) &&
			move.Status != nil && *move.Status == domain.StatusDone &&
			move.History.FromColumn != nil && *move.History.FromColumn == "Em Progresso" &&
			move.History.ToColumn != nil && *move.History.ToColumn == "Concluído" &&
			move.History.ToStage != nil && *move.History.ToStage == domain.StageDone
	})).Return(nil).Once()

	moved, err := suite.service.MoveDemand(ctx, "demand-1", dto.MoveDemandRequest{ColumnID: "col-done", Position: 2}, "user-1")

	suite.NoError(err)
	suite.Equal(domain.StatusDone, moved.Status)
	suite.Require().NotNil(moved.CompletedAt)
	suite.True(moved.CompletedAt.Equal(testNow))
	suite.Equal(domain.SLAOnTime, moved.SLA)
	suite.mockDemandRepo.AssertExpectations(suite.T())
}

func (suite *DemandServiceTestSuite) TestMoveDemand_ToOtherStageKeepsCompletionUnset() {
	ctx := context.Background()
	demand := &domain.Demand{DemandID: "demand-1", Status: domain.StatusBacklog}
	target := column("col-todo", "A Fazer", domain.StageOther)

	suite.mockDemandRepo.On("FindDemandByID", ctx, "demand-1").Return(demand, nil).Once()
	suite.mockColumnRepo.On("FindColumnByID", ctx, "col-todo").Return(target, nil).Once()
	suite.mockDemandRepo.On("MoveDemand", ctx, mock.MatchedBy(func(move portsrepo.DemandMove) bool {
		return move.CompletedAt == nil && move.Status != nil && *move.Status == domain.StatusTodo
	})).Return(nil).Once()

	moved, err := suite.service.MoveDemand(ctx, "demand-1", dto.MoveDemandRequest{ColumnID: "col-todo"}, "user-1")

	suite.NoError(err)
	suite.Equal(domain.StatusTodo, moved.Status)
	suite.Nil(moved.CompletedAt)
}

func (suite *DemandServiceTestSuite) TestListDemands_DerivesSLA() {
	ctx := context.Background()
	overdue := testNow.Add(-2 * time.Hour)
	warning := testNow.Add(6 * time.Hour)
	comfortable := testNow.Add(72 * time.Hour)
	completed := testNow.Add(-48 * time.Hour)

	filter := domain.DemandFilter{}
	suite.mockDemandRepo.On("ListDemands", ctx, filter).Return([]domain.Demand{
		{DemandID: "d-overdue", Status: domain.StatusInProgress, DueDate: &overdue},
		{DemandID: "d-warning", Status: domain.StatusInProgress, DueDate: &warning},
		{DemandID: "d-ontime", Status: domain.StatusInProgress, DueDate: &comfortable},
		{DemandID: "d-done", Status: domain.StatusDone, DueDate: &overdue, CompletedAt: &completed},
		{DemandID: "d-nodue", Status: domain.StatusBacklog},
	}, nil).Once()

	demands, err := suite.service.ListDemands(ctx, filter)

	suite.NoError(err)
	suite.Require().Len(demands, 5)
	suite.Equal(domain.SLAOverdue, demands[0].SLA)
	suite.Equal(domain.SLAWarning, demands[1].SLA)
	suite.Equal(domain.SLAOnTime, demands[2].SLA)
	suite.Equal(domain.SLAOnTime, demands[3].SLA)
	suite.Equal(domain.SLAOnTime, demands[4].SLA)
}

func (suite *DemandServiceTestSuite) TestGetDemandByID_DerivesInProgressHours() {
	ctx := context.Background()
	inProgress := domain.StageInProgress
	done := domain.StageDone
	started := testNow.Add(-40 * time.Hour)
	finished := testNow.Add(-10 * time.Hour)

	suite.mockDemandRepo.On("FindDemandByID", ctx, "demand-1").
		Return(&domain.Demand{DemandID: "demand-1", Status: domain.StatusDone}, nil).Once()
	suite.mockDemandRepo.On("ListHistory", ctx, "demand-1").Return([]domain.HistoryEntry{
		{HistoryID: "h-1", DemandID: "demand-1", ToStage: &inProgress, CreatedAt: started},
		{HistoryID: "h-2", DemandID: "demand-1", ToStage: &done, CreatedAt: finished},
	}, nil).Once()

	demand, err := suite.service.GetDemandByID(ctx, "demand-1")

	suite.NoError(err)
	suite.Require().NotNil(demand.InProgressHours)
	suite.InDelta(30.0, *demand.InProgressHours, 0.001)
}

func (suite *DemandServiceTestSuite) TestGetDemandByID_NoInProgressTransition() {
	ctx := context.Background()
	done := domain.StageDone

	suite.mockDemandRepo.On("FindDemandByID", ctx, "demand-1").
		Return(&domain.Demand{DemandID: "demand-1", Status: domain.StatusDone}, nil).Once()
	suite.mockDemandRepo.On("ListHistory", ctx, "demand-1").Return([]domain.HistoryEntry{
		{HistoryID: "h-1", DemandID: "demand-1", ToStage: &done, CreatedAt: testNow},
	}, nil).Once()

	demand, err := suite.service.GetDemandByID(ctx, "demand-1")

	suite.NoError(err)
	suite.Nil(demand.InProgressHours)
}

func (suite *DemandServiceTestSuite) TestGetBoard_GroupsDemandsByColumn() {
	ctx := context.Background()
	colA := "col-a"
	colB := "col-b"

	suite.mockColumnRepo.On("ListColumns", ctx).Return([]domain.BoardColumn{
		{ColumnID: colA, Name: "Backlog", Stage: domain.StageIntake},
		{ColumnID: colB, Name: "Concluído", Stage: domain.StageDone},
	}, nil).Once()
	suite.mockDemandRepo.On("ListDemands", ctx, domain.DemandFilter{}).Return([]domain.Demand{
		{DemandID: "d-1", ColumnID: &colA},
		{DemandID: "d-2", ColumnID: &colA},
		{DemandID: "d-3", ColumnID: &colB},
	}, nil).Once()

	board, err := suite.service.GetBoard(ctx, nil, nil)

	suite.NoError(err)
	suite.Len(board.Demands[colA], 2)
	suite.Len(board.Demands[colB], 1)
	suite.Equal(2, board.Columns[0].DemandsCount)
	suite.Equal(1, board.Columns[1].DemandsCount)
}

func (suite *DemandServiceTestSuite) TestDeleteColumn_DefaultIsProtected() {
	ctx := context.Background()
	suite.mockColumnRepo.On("FindColumnByID", ctx, "col-default").
		Return(&domain.BoardColumn{ColumnID: "col-default", Name: "Backlog", IsDefault: true}, nil).Once()

	err := suite.service.DeleteColumn(ctx, "col-default")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockColumnRepo.AssertNotCalled(suite.T(), "DeleteColumn", mock.Anything, mock.Anything)
}

func TestDemandServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DemandServiceTestSuite))
}
