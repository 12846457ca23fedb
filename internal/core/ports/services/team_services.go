package services

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/rqos/agency-ops-backend/internal/dto"
)

// TeamService manages squads, members and staffing allocations. Allocation
// creation enforces the one-per-(member,client) and one-per-(role,client)
// invariants, surfacing violations as conflicts.
type TeamService interface {
	CreateSquad(ctx context.Context, req dto.CreateSquadRequest) (*domain.Squad, error)
	GetSquadByID(ctx context.Context, squadID string) (*domain.Squad, error)
	ListSquads(ctx context.Context) ([]domain.Squad, error)
	UpdateSquad(ctx context.Context, squadID string, req dto.UpdateSquadRequest) (*domain.Squad, error)
	DeleteSquad(ctx context.Context, squadID string) error

	CreateMember(ctx context.Context, req dto.CreateMemberRequest) (*domain.TeamMember, error)
	GetMemberByID(ctx context.Context, memberID string) (*domain.TeamMember, error)
	ListMembers(ctx context.Context, squadID *string, status *domain.MemberStatus) ([]domain.TeamMember, error)
	UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest) (*domain.TeamMember, error)
	DeleteMember(ctx context.Context, memberID string) error

	CreateAllocation(ctx context.Context, req dto.CreateAllocationRequest) (*domain.StaffingAllocation, error)
	ListAllocations(ctx context.Context, clientID, memberID *string) ([]domain.StaffingAllocation, error)
	UpdateAllocation(ctx context.Context, allocationID string, req dto.UpdateAllocationRequest) (*domain.StaffingAllocation, error)
	DeleteAllocation(ctx context.Context, allocationID string) error
}
