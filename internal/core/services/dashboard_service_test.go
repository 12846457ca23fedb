package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	mockDashboardRepo *MockDashboardRepository
	mockScopePolicy   *MockScopePolicy
	service           portssvc.DashboardService
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockDashboardRepo = new(MockDashboardRepository)
	suite.mockScopePolicy = new(MockScopePolicy)
	suite.service = services.NewDashboardService(
		suite.mockDashboardRepo,
		suite.mockScopePolicy,
		services.WithDashboardClock(services.FixedClock{T: testNow}),
	)
}

func (suite *DashboardServiceTestSuite) TestStats_AggregatesCountsForAdmin() {
	ctx := context.Background()
	caller := domain.Caller{UserID: "user-1", Role: domain.RoleAdmin}

	suite.mockScopePolicy.On("ScopeFor", ctx, caller).Return((*domain.Scope)(nil), nil).Once()
	suite.mockDashboardRepo.On("CountClientsByStatus", ctx, (*domain.Scope)(nil)).
		Return(map[domain.ClientStatus]int{
			domain.ClientActive:     8,
			domain.ClientOnboarding: 2,
			domain.ClientChurned:    1,
		}, 11, nil).Once()
	suite.mockDashboardRepo.On("SumReceivable", ctx, (*domain.Scope)(nil)).
		Return(decimal.RequireFromString("42500.00"), nil).Once()
	suite.mockDashboardRepo.On("CountMembers", ctx).Return(6, 7, nil).Once()
	suite.mockDashboardRepo.On("CountSquads", ctx).Return(3, nil).Once()
	suite.mockDashboardRepo.On("CountDemandsByStatus", ctx, (*domain.Scope)(nil)).
		Return(map[domain.DemandStatus]int{
			domain.StatusBacklog:    4,
			domain.StatusInProgress: 3,
			domain.StatusDone:       9,
		}, nil).Once()
	suite.mockDashboardRepo.On("CountOverdueDemands", ctx, testNow, (*domain.Scope)(nil)).
		Return(2, nil).Once()

	monthStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	suite.mockDashboardRepo.On("CountMeetingsSince", ctx, monthStart, (*domain.Scope)(nil)).
		Return(5, nil).Once()

	stats, err := suite.service.Stats(ctx, caller)

	suite.NoError(err)
	suite.Require().NotNil(stats)
	suite.Equal(11, stats.ClientsTotal)
	suite.Equal(8, stats.ClientsActive)
	suite.Equal(2, stats.ClientsOnboarding)
	suite.Equal(1, stats.ClientsChurned)
	suite.Equal(0, stats.ClientsInactive)
	suite.True(stats.TotalReceivable.Equal(decimal.RequireFromString("42500.00")))
	suite.Equal(6, stats.MembersActive)
	suite.Equal(7, stats.MembersTotal)
	suite.Equal(3, stats.SquadsTotal)
	suite.Equal(4, stats.DemandsBacklog)
	suite.Equal(0, stats.DemandsTodo)
	suite.Equal(3, stats.DemandsInProgress)
	suite.Equal(9, stats.DemandsDone)
	suite.Equal(2, stats.DemandsOverdue)
	suite.Equal(5, stats.MeetingsThisMonth)
	suite.mockDashboardRepo.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestStats_PassesResolvedScopeToEveryCount() {
	ctx := context.Background()
	caller := domain.Caller{UserID: "user-2", Role: domain.RoleCollaborator}
	scope := &domain.Scope{MemberID: "member-1", ClientIDs: []string{"client-1"}}

	suite.mockScopePolicy.On("ScopeFor", ctx, caller).Return(scope, nil).Once()
	suite.mockDashboardRepo.On("CountClientsByStatus", ctx, scope).
		Return(map[domain.ClientStatus]int{domain.ClientActive: 1}, 1, nil).Once()
	suite.mockDashboardRepo.On("SumReceivable", ctx, scope).
		Return(decimal.RequireFromString("3000.00"), nil).Once()
	suite.mockDashboardRepo.On("CountMembers", ctx).Return(6, 7, nil).Once()
	suite.mockDashboardRepo.On("CountSquads", ctx).Return(3, nil).Once()
	suite.mockDashboardRepo.On("CountDemandsByStatus", ctx, scope).
		Return(map[domain.DemandStatus]int{}, nil).Once()
	suite.mockDashboardRepo.On("CountOverdueDemands", ctx, testNow, scope).Return(0, nil).Once()
	suite.mockDashboardRepo.On("CountMeetingsSince", ctx, mock.AnythingOfType("time.Time"), scope).
		Return(1, nil).Once()

	stats, err := suite.service.Stats(ctx, caller)

	suite.NoError(err)
	suite.Equal(1, stats.ClientsTotal)
	suite.mockDashboardRepo.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestStats_PropagatesScopeError() {
	ctx := context.Background()
	caller := domain.Caller{UserID: "user-3", Role: domain.RoleCollaborator}

	suite.mockScopePolicy.On("ScopeFor", ctx, caller).
		Return(nil, errors.New("member lookup failed")).Once()

	stats, err := suite.service.Stats(ctx, caller)

	suite.Error(err)
	suite.Nil(stats)
	suite.mockDashboardRepo.AssertNotCalled(suite.T(), "CountClientsByStatus", mock.Anything, mock.Anything)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
