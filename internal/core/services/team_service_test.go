package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/core/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TeamServiceTestSuite struct {
	suite.Suite
	mockSquadRepo      *MockSquadRepository
	mockMemberRepo     *MockMemberRepository
	mockAllocationRepo *MockAllocationRepository
	service            portssvc.TeamService
}

func (suite *TeamServiceTestSuite) SetupTest() {
	suite.mockSquadRepo = new(MockSquadRepository)
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockAllocationRepo = new(MockAllocationRepository)
	suite.service = services.NewTeamService(
		suite.mockSquadRepo,
		suite.mockMemberRepo,
		suite.mockAllocationRepo,
		services.WithTeamClock(services.FixedClock{T: testNow}),
	)
}

func designerMember() *domain.TeamMember {
	return &domain.TeamMember{
		MemberID:  "member-1",
		Name:      "Ana",
		RoleTitle: "Designer",
		Status:    domain.MemberActive,
	}
}

func allocationRequest() dto.CreateAllocationRequest {
	return dto.CreateAllocationRequest{
		MemberID:    "member-1",
		ClientID:    "client-1",
		MonthlyRate: decimal.RequireFromString("3000.00"),
		StartDate:   "2024-03-01",
	}
}

func (suite *TeamServiceTestSuite) TestCreateAllocation_Success() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindMemberByID", ctx, "member-1").Return(designerMember(), nil).Once()
	suite.mockAllocationRepo.On("FindAllocationByMemberAndClient", ctx, "member-1", "client-1").
		Return(nil, nil).Once()
	suite.mockAllocationRepo.On("ExistsAllocationForRole", ctx, "client-1", "Designer").
		Return(false, nil).Once()
	suite.mockAllocationRepo.On("SaveAllocation", ctx, mock.MatchedBy(func(a domain.StaffingAllocation) bool {
		return a.MemberID == "member-1" && a.ClientID == "client-1" &&
			a.MonthlyRate.Equal(decimal.RequireFromString("3000.00")) &&
			a.StartDate.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) &&
			a.EndDate == nil
	})).Return(nil).Once()

	allocation, err := suite.service.CreateAllocation(ctx, allocationRequest())

	suite.NoError(err)
	suite.Require().NotNil(allocation)
	suite.NotEmpty(allocation.AllocationID)
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestCreateAllocation_MemberAlreadyAllocated() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindMemberByID", ctx, "member-1").Return(designerMember(), nil).Once()
	suite.mockAllocationRepo.On("FindAllocationByMemberAndClient", ctx, "member-1", "client-1").
		Return(&domain.StaffingAllocation{AllocationID: "alloc-1"}, nil).Once()

	_, err := suite.service.CreateAllocation(ctx, allocationRequest())

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "SaveAllocation", mock.Anything, mock.Anything)
}

func (suite *TeamServiceTestSuite) TestCreateAllocation_RoleAlreadyTaken() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindMemberByID", ctx, "member-1").Return(designerMember(), nil).Once()
	suite.mockAllocationRepo.On("FindAllocationByMemberAndClient", ctx, "member-1", "client-1").
		Return(nil, nil).Once()
	suite.mockAllocationRepo.On("ExistsAllocationForRole", ctx, "client-1", "Designer").
		Return(true, nil).Once()

	_, err := suite.service.CreateAllocation(ctx, allocationRequest())

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Contains(err.Error(), "Designer")
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "SaveAllocation", mock.Anything, mock.Anything)
}

func (suite *TeamServiceTestSuite) TestCreateAllocation_EndBeforeStart() {
	ctx := context.Background()
	req := allocationRequest()
	endDate := "2024-02-01"
	req.EndDate = &endDate

	suite.mockMemberRepo.On("FindMemberByID", ctx, "member-1").Return(designerMember(), nil).Once()
	suite.mockAllocationRepo.On("FindAllocationByMemberAndClient", ctx, "member-1", "client-1").
		Return(nil, nil).Once()
	suite.mockAllocationRepo.On("ExistsAllocationForRole", ctx, "client-1", "Designer").
		Return(false, nil).Once()

	_, err := suite.service.CreateAllocation(ctx, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "SaveAllocation", mock.Anything, mock.Anything)
}

func (suite *TeamServiceTestSuite) TestUpdateAllocation_ClearEndDateReopens() {
	ctx := context.Background()
	endDate := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, "alloc-1").Return(&domain.StaffingAllocation{
		AllocationID: "alloc-1",
		MemberID:     "member-1",
		ClientID:     "client-1",
		MonthlyRate:  decimal.RequireFromString("3000.00"),
		StartDate:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      &endDate,
	}, nil).Once()
	suite.mockAllocationRepo.On("UpdateAllocation", ctx, mock.MatchedBy(func(a domain.StaffingAllocation) bool {
		return a.EndDate == nil
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAllocation(ctx, "alloc-1", dto.UpdateAllocationRequest{ClearEndDate: true})

	suite.NoError(err)
	suite.Nil(updated.EndDate)
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *TeamServiceTestSuite) TestCreateMember_DefaultsToActive() {
	ctx := context.Background()

	suite.mockMemberRepo.On("SaveMember", ctx, mock.MatchedBy(func(m domain.TeamMember) bool {
		return m.Status == domain.MemberActive && m.Name == "Ana" && m.RoleTitle == "Designer"
	})).Return(nil).Once()

	member, err := suite.service.CreateMember(ctx, dto.CreateMemberRequest{
		Name:      "Ana",
		RoleTitle: "Designer",
	})

	suite.NoError(err)
	suite.Equal(domain.MemberActive, member.Status)
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
