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

// teamService manages squads, members and staffing allocations.
type teamService struct {
	BaseService
	squadRepo      portsrepo.SquadRepository
	memberRepo     portsrepo.MemberRepository
	allocationRepo portsrepo.AllocationRepository
}

// TeamServiceOption is a functional option for configuring the team service.
type TeamServiceOption func(*teamService)

// WithTeamClock overrides the clock used for audit timestamps.
func WithTeamClock(clock Clock) TeamServiceOption {
	return func(s *teamService) {
		s.clock = clock
	}
}

// NewTeamService creates the team/staffing service.
func NewTeamService(squadRepo portsrepo.SquadRepository, memberRepo portsrepo.MemberRepository, allocationRepo portsrepo.AllocationRepository, options ...TeamServiceOption) portssvc.TeamService {
	svc := &teamService{
		squadRepo:      squadRepo,
		memberRepo:     memberRepo,
		allocationRepo: allocationRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TeamService = (*teamService)(nil)

func (s *teamService) CreateSquad(ctx context.Context, req dto.CreateSquadRequest) (*domain.Squad, error) {
	squad := domain.Squad{
		SquadID:     uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   s.Now(),
	}
	if err := s.squadRepo.SaveSquad(ctx, squad); err != nil {
		s.LogError(ctx, err, "Failed to save squad", slog.String("name", req.Name))
		return nil, err
	}
	return &squad, nil
}

func (s *teamService) GetSquadByID(ctx context.Context, squadID string) (*domain.Squad, error) {
	return s.squadRepo.FindSquadByID(ctx, squadID)
}

func (s *teamService) ListSquads(ctx context.Context) ([]domain.Squad, error) {
	return s.squadRepo.ListSquads(ctx)
}

func (s *teamService) UpdateSquad(ctx context.Context, squadID string, req dto.UpdateSquadRequest) (*domain.Squad, error) {
	squad, err := s.squadRepo.FindSquadByID(ctx, squadID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		squad.Name = *req.Name
	}
	if req.Description != nil {
		squad.Description = req.Description
	}
	if err := s.squadRepo.UpdateSquad(ctx, *squad); err != nil {
		return nil, err
	}
	return squad, nil
}

func (s *teamService) DeleteSquad(ctx context.Context, squadID string) error {
	if _, err := s.squadRepo.FindSquadByID(ctx, squadID); err != nil {
		return err
	}
	return s.squadRepo.DeleteSquad(ctx, squadID)
}

func (s *teamService) CreateMember(ctx context.Context, req dto.CreateMemberRequest) (*domain.TeamMember, error) {
	now := s.Now()
	status := domain.MemberActive
	if req.Status != nil {
		status = *req.Status
	}
	member := domain.TeamMember{
		MemberID:  uuid.NewString(),
		UserID:    req.UserID,
		Name:      req.Name,
		RoleTitle: req.RoleTitle,
		SquadID:   req.SquadID,
		Status:    status,
		Email:     req.Email,
		Phone:     req.Phone,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to save team member", slog.String("name", req.Name))
		return nil, err
	}
	return &member, nil
}

func (s *teamService) GetMemberByID(ctx context.Context, memberID string) (*domain.TeamMember, error) {
	return s.memberRepo.FindMemberByID(ctx, memberID)
}

func (s *teamService) ListMembers(ctx context.Context, squadID *string, status *domain.MemberStatus) ([]domain.TeamMember, error) {
	return s.memberRepo.ListMembers(ctx, squadID, status)
}

func (s *teamService) UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest) (*domain.TeamMember, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.RoleTitle != nil {
		member.RoleTitle = *req.RoleTitle
	}
	if req.UserID != nil {
		member.UserID = req.UserID
	}
	if req.SquadID != nil {
		member.SquadID = req.SquadID
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.Email != nil {
		member.Email = req.Email
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	member.UpdatedAt = s.Now()
	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *teamService) DeleteMember(ctx context.Context, memberID string) error {
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		return err
	}
	return s.memberRepo.DeleteMember(ctx, memberID)
}

// CreateAllocation assigns a member to a client, rejecting duplicates on the
// (member, client) pair and on the (role title, client) pair. The precheck gives
// readable conflict messages; the database unique index serializes racing
// creations so the loser still surfaces a conflict.
func (s *teamService) CreateAllocation(ctx context.Context, req dto.CreateAllocationRequest) (*domain.StaffingAllocation, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	existing, err := s.allocationRepo.FindAllocationByMemberAndClient(ctx, req.MemberID, req.ClientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("member is already allocated to this client")
	}

	if member.RoleTitle != "" {
		taken, err := s.allocationRepo.ExistsAllocationForRole(ctx, req.ClientID, member.RoleTitle)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflictError("a '" + member.RoleTitle + "' is already allocated to this client")
		}
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("invalid start date, expected YYYY-MM-DD")
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, apperrors.NewValidationFailedError("end date cannot precede start date")
	}

	allocation := domain.StaffingAllocation{
		AllocationID: uuid.NewString(),
		MemberID:     req.MemberID,
		ClientID:     req.ClientID,
		MonthlyRate:  req.MonthlyRate,
		StartDate:    startDate,
		EndDate:      endDate,
		CreatedAt:    s.Now(),
	}
	if err := s.allocationRepo.SaveAllocation(ctx, allocation); err != nil {
		s.LogError(ctx, err, "Failed to save allocation",
			slog.String("member_id", req.MemberID), slog.String("client_id", req.ClientID))
		return nil, err
	}
	s.LogInfo(ctx, "Allocation created",
		slog.String("allocation_id", allocation.AllocationID),
		slog.String("member_id", req.MemberID),
		slog.String("client_id", req.ClientID))
	return &allocation, nil
}

func (s *teamService) ListAllocations(ctx context.Context, clientID, memberID *string) ([]domain.StaffingAllocation, error) {
	return s.allocationRepo.ListAllocations(ctx, clientID, memberID)
}

func (s *teamService) UpdateAllocation(ctx context.Context, allocationID string, req dto.UpdateAllocationRequest) (*domain.StaffingAllocation, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	if req.MonthlyRate != nil {
		allocation.MonthlyRate = *req.MonthlyRate
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("invalid start date, expected YYYY-MM-DD")
		}
		allocation.StartDate = startDate
	}
	if req.ClearEndDate {
		allocation.EndDate = nil
	} else if req.EndDate != nil {
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		allocation.EndDate = endDate
	}
	if allocation.EndDate != nil && allocation.EndDate.Before(allocation.StartDate) {
		return nil, apperrors.NewValidationFailedError("end date cannot precede start date")
	}
	if err := s.allocationRepo.UpdateAllocation(ctx, *allocation); err != nil {
		return nil, err
	}
	return allocation, nil
}

func (s *teamService) DeleteAllocation(ctx context.Context, allocationID string) error {
	if _, err := s.allocationRepo.FindAllocationByID(ctx, allocationID); err != nil {
		return err
	}
	return s.allocationRepo.DeleteAllocation(ctx, allocationID)
}
