package services_test

import (
	"context"
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared mock repositories for the service suites. Several services depend on
// the same repository interfaces, so the mocks live in one place.

// --- ColumnRepository ---

type MockColumnRepository struct {
	mock.Mock
}

func (m *MockColumnRepository) SaveColumn(ctx context.Context, column domain.BoardColumn) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) FindColumnByID(ctx context.Context, columnID string) (*domain.BoardColumn, error) {
	args := m.Called(ctx, columnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoardColumn), args.Error(1)
}

func (m *MockColumnRepository) FindColumnByStage(ctx context.Context, stage domain.ColumnStage) (*domain.BoardColumn, error) {
	args := m.Called(ctx, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoardColumn), args.Error(1)
}

func (m *MockColumnRepository) ListColumns(ctx context.Context) ([]domain.BoardColumn, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoardColumn), args.Error(1)
}

func (m *MockColumnRepository) UpdateColumn(ctx context.Context, column domain.BoardColumn) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnRepository) DeleteColumn(ctx context.Context, columnID string) error {
	args := m.Called(ctx, columnID)
	return args.Error(0)
}

// --- DemandRepository ---

type MockDemandRepository struct {
	mock.Mock
}

func (m *MockDemandRepository) SaveDemand(ctx context.Context, demand domain.Demand) error {
	args := m.Called(ctx, demand)
	return args.Error(0)
}

func (m *MockDemandRepository) FindDemandByID(ctx context.Context, demandID string) (*domain.Demand, error) {
	args := m.Called(ctx, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Demand), args.Error(1)
}

func (m *MockDemandRepository) ListDemands(ctx context.Context, filter domain.DemandFilter) ([]domain.Demand, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Demand), args.Error(1)
}

func (m *MockDemandRepository) UpdateDemand(ctx context.Context, demand domain.Demand) error {
	args := m.Called(ctx, demand)
	return args.Error(0)
}

func (m *MockDemandRepository) MoveDemand(ctx context.Context, move portsrepo.DemandMove) error {
	args := m.Called(ctx, move)
	return args.Error(0)
}

func (m *MockDemandRepository) DeleteDemand(ctx context.Context, demandID string) error {
	args := m.Called(ctx, demandID)
	return args.Error(0)
}

func (m *MockDemandRepository) ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *MockDemandRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockDemandRepository) ListComments(ctx context.Context, demandID string) ([]domain.Comment, error) {
	args := m.Called(ctx, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

// --- DesignRepository ---

type MockDesignRepository struct {
	mock.Mock
}

func (m *MockDesignRepository) SaveDemand(ctx context.Context, demand domain.DesignDemand) error {
	args := m.Called(ctx, demand)
	return args.Error(0)
}

func (m *MockDesignRepository) FindDemandByID(ctx context.Context, demandID string) (*domain.DesignDemand, error) {
	args := m.Called(ctx, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DesignDemand), args.Error(1)
}

func (m *MockDesignRepository) ListDemands(ctx context.Context, clientID, assigneeID *string) ([]domain.DesignDemand, error) {
	args := m.Called(ctx, clientID, assigneeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DesignDemand), args.Error(1)
}

func (m *MockDesignRepository) UpdateDemand(ctx context.Context, demand domain.DesignDemand) error {
	args := m.Called(ctx, demand)
	return args.Error(0)
}

func (m *MockDesignRepository) MoveDemand(ctx context.Context, move portsrepo.DesignMove) error {
	args := m.Called(ctx, move)
	return args.Error(0)
}

func (m *MockDesignRepository) ApproveDemand(ctx context.Context, approval portsrepo.DesignApproval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *MockDesignRepository) DeleteDemand(ctx context.Context, demandID string) error {
	args := m.Called(ctx, demandID)
	return args.Error(0)
}

func (m *MockDesignRepository) ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *MockDesignRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockDesignRepository) ListComments(ctx context.Context, demandID string) ([]domain.Comment, error) {
	args := m.Called(ctx, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockDesignRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockDesignRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	args := m.Called(ctx, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockDesignRepository) ListAttachments(ctx context.Context, demandID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *MockDesignRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	args := m.Called(ctx, attachmentID)
	return args.Error(0)
}

func (m *MockDesignRepository) ListPayments(ctx context.Context, month, year int, memberID *string) ([]domain.DesignPayment, error) {
	args := m.Called(ctx, month, year, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DesignPayment), args.Error(1)
}

func (m *MockDesignRepository) FindRateByMember(ctx context.Context, memberID string) (*domain.MemberRate, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberRate), args.Error(1)
}

func (m *MockDesignRepository) ListRates(ctx context.Context) ([]domain.MemberRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberRate), args.Error(1)
}

func (m *MockDesignRepository) UpsertRate(ctx context.Context, rate domain.MemberRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockDesignRepository) ListApprovedDemands(ctx context.Context, clientID string) ([]domain.DesignDemand, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DesignDemand), args.Error(1)
}

// --- SquadRepository ---

type MockSquadRepository struct {
	mock.Mock
}

func (m *MockSquadRepository) SaveSquad(ctx context.Context, squad domain.Squad) error {
	args := m.Called(ctx, squad)
	return args.Error(0)
}

func (m *MockSquadRepository) FindSquadByID(ctx context.Context, squadID string) (*domain.Squad, error) {
	args := m.Called(ctx, squadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Squad), args.Error(1)
}

func (m *MockSquadRepository) ListSquads(ctx context.Context) ([]domain.Squad, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Squad), args.Error(1)
}

func (m *MockSquadRepository) UpdateSquad(ctx context.Context, squad domain.Squad) error {
	args := m.Called(ctx, squad)
	return args.Error(0)
}

func (m *MockSquadRepository) DeleteSquad(ctx context.Context, squadID string) error {
	args := m.Called(ctx, squadID)
	return args.Error(0)
}

// --- MemberRepository ---

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByUserID(ctx context.Context, userID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.TeamMember, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, squadID *string, status *domain.MemberStatus) ([]domain.TeamMember, error) {
	args := m.Called(ctx, squadID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *MockMemberRepository) UpdateMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) DeleteMember(ctx context.Context, memberID string) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

// --- AllocationRepository ---

type MockAllocationRepository struct {
	mock.Mock
}

func (m *MockAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.StaffingAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.StaffingAllocation, error) {
	args := m.Called(ctx, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffingAllocation), args.Error(1)
}

func (m *MockAllocationRepository) FindAllocationByMemberAndClient(ctx context.Context, memberID, clientID string) (*domain.StaffingAllocation, error) {
	args := m.Called(ctx, memberID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffingAllocation), args.Error(1)
}

func (m *MockAllocationRepository) ExistsAllocationForRole(ctx context.Context, clientID, roleTitle string) (bool, error) {
	args := m.Called(ctx, clientID, roleTitle)
	return args.Bool(0), args.Error(1)
}

func (m *MockAllocationRepository) ListAllocations(ctx context.Context, clientID, memberID *string) ([]domain.StaffingAllocation, error) {
	args := m.Called(ctx, clientID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffingAllocation), args.Error(1)
}

func (m *MockAllocationRepository) ListAllocationCostInputs(ctx context.Context, clientID *string) ([]domain.AllocationCostInput, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AllocationCostInput), args.Error(1)
}

func (m *MockAllocationRepository) ListActiveClientIDsForMember(ctx context.Context, memberID string) ([]string, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.StaffingAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) DeleteAllocation(ctx context.Context, allocationID string) error {
	args := m.Called(ctx, allocationID)
	return args.Error(0)
}

// --- ClientRepository ---

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, status *domain.ClientStatus) ([]domain.Client, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClientHealthScore(ctx context.Context, clientID string, score float64) error {
	args := m.Called(ctx, clientID, score)
	return args.Error(0)
}

func (m *MockClientRepository) ListBillableClients(ctx context.Context) ([]domain.BillableClient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillableClient), args.Error(1)
}

// --- FinancialRepository ---

type MockFinancialRepository struct {
	mock.Mock
}

func (m *MockFinancialRepository) GetOrCreateMonthly(ctx context.Context, month, year int) (*domain.MonthlyFinancials, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyFinancials), args.Error(1)
}

func (m *MockFinancialRepository) UpdateMonthly(ctx context.Context, financials domain.MonthlyFinancials) error {
	args := m.Called(ctx, financials)
	return args.Error(0)
}

func (m *MockFinancialRepository) SaveExtraExpense(ctx context.Context, expense domain.ExtraExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockFinancialRepository) FindExtraExpenseByID(ctx context.Context, expenseID string) (*domain.ExtraExpense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtraExpense), args.Error(1)
}

func (m *MockFinancialRepository) ListExtraExpenses(ctx context.Context, month, year int) ([]domain.ExtraExpense, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtraExpense), args.Error(1)
}

func (m *MockFinancialRepository) UpdateExtraExpense(ctx context.Context, expense domain.ExtraExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockFinancialRepository) DeleteExtraExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// --- MeetingRepository ---

type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) SaveMeeting(ctx context.Context, meeting domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) ListMeetings(ctx context.Context, clientID *string, meetingType *domain.MeetingType, scope *domain.Scope) ([]domain.Meeting, error) {
	args := m.Called(ctx, clientID, meetingType, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Meeting), args.Error(1)
}

// --- DashboardRepository ---

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) CountClientsByStatus(ctx context.Context, scope *domain.Scope) (map[domain.ClientStatus]int, int, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(map[domain.ClientStatus]int), args.Int(1), args.Error(2)
}

func (m *MockDashboardRepository) SumReceivable(ctx context.Context, scope *domain.Scope) (decimal.Decimal, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDashboardRepository) CountMembers(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockDashboardRepository) CountSquads(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountDemandsByStatus(ctx context.Context, scope *domain.Scope) (map[domain.DemandStatus]int, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.DemandStatus]int), args.Error(1)
}

func (m *MockDashboardRepository) CountOverdueDemands(ctx context.Context, now time.Time, scope *domain.Scope) (int, error) {
	args := m.Called(ctx, now, scope)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountMeetingsSince(ctx context.Context, since time.Time, scope *domain.Scope) (int, error) {
	args := m.Called(ctx, since, scope)
	return args.Int(0), args.Error(1)
}

// --- UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- AttachmentStore ---

type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Save(ctx context.Context, demandID, filename string, data []byte) (string, error) {
	args := m.Called(ctx, demandID, filename, data)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentStore) Remove(ctx context.Context, storagePath string) error {
	args := m.Called(ctx, storagePath)
	return args.Error(0)
}

// --- ScopePolicy ---

type MockScopePolicy struct {
	mock.Mock
}

func (m *MockScopePolicy) ScopeFor(ctx context.Context, caller domain.Caller) (*domain.Scope, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scope), args.Error(1)
}
