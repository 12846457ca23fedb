package services_test

import (
	"context"
	"testing"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ScopePolicyTestSuite struct {
	suite.Suite
	mockMemberRepo     *MockMemberRepository
	mockAllocationRepo *MockAllocationRepository
	policy             portssvc.ScopePolicy
}

func (suite *ScopePolicyTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockAllocationRepo = new(MockAllocationRepository)
	suite.policy = services.NewScopePolicy(suite.mockMemberRepo, suite.mockAllocationRepo)
}

func (suite *ScopePolicyTestSuite) TestScopeFor_AdminIsUnrestricted() {
	scope, err := suite.policy.ScopeFor(context.Background(), domain.Caller{
		UserID: "user-1",
		Role:   domain.RoleAdmin,
	})

	suite.NoError(err)
	suite.Nil(scope)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "FindMemberByUserID", mock.Anything, mock.Anything)
}

func (suite *ScopePolicyTestSuite) TestScopeFor_LinkedMemberSeesOwnClients() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindMemberByUserID", ctx, "user-1").
		Return(&domain.TeamMember{MemberID: "member-1", Name: "Ana"}, nil).Once()
	suite.mockAllocationRepo.On("ListActiveClientIDsForMember", ctx, "member-1").
		Return([]string{"client-1", "client-2"}, nil).Once()

	scope, err := suite.policy.ScopeFor(ctx, domain.Caller{
		UserID: "user-1",
		Role:   domain.RoleCollaborator,
	})

	suite.NoError(err)
	suite.Require().NotNil(scope)
	suite.Equal("member-1", scope.MemberID)
	suite.Equal([]string{"client-1", "client-2"}, scope.ClientIDs)
	suite.False(scope.Empty())
}

func (suite *ScopePolicyTestSuite) TestScopeFor_FallsBackToEmailLookup() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindMemberByUserID", ctx, "user-1").Return(nil, nil).Once()
	suite.mockMemberRepo.On("FindMemberByEmail", ctx, "ana@agency.test").
		Return(&domain.TeamMember{MemberID: "member-1"}, nil).Once()
	suite.mockAllocationRepo.On("ListActiveClientIDsForMember", ctx, "member-1").
		Return([]string{"client-1"}, nil).Once()

	scope, err := suite.policy.ScopeFor(ctx, domain.Caller{
		UserID: "user-1",
		Email:  "ana@agency.test",
		Role:   domain.RoleCollaborator,
	})

	suite.NoError(err)
	suite.Require().NotNil(scope)
	suite.Equal("member-1", scope.MemberID)
}

func (suite *ScopePolicyTestSuite) TestScopeFor_UnlinkedCallerMatchesNothing() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindMemberByUserID", ctx, "user-1").Return(nil, nil).Once()
	suite.mockMemberRepo.On("FindMemberByEmail", ctx, "ghost@agency.test").Return(nil, nil).Once()

	scope, err := suite.policy.ScopeFor(ctx, domain.Caller{
		UserID: "user-1",
		Email:  "ghost@agency.test",
		Role:   domain.RoleCollaborator,
	})

	suite.NoError(err)
	suite.Require().NotNil(scope)
	suite.True(scope.Empty())
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "ListActiveClientIDsForMember", mock.Anything, mock.Anything)
}

func TestScopePolicyTestSuite(t *testing.T) {
	suite.Run(t, new(ScopePolicyTestSuite))
}
