package repositories

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// SquadRepository persists squads.
type SquadRepository interface {
	SaveSquad(ctx context.Context, squad domain.Squad) error
	FindSquadByID(ctx context.Context, squadID string) (*domain.Squad, error)
	ListSquads(ctx context.Context) ([]domain.Squad, error)
	UpdateSquad(ctx context.Context, squad domain.Squad) error
	DeleteSquad(ctx context.Context, squadID string) error
}

// MemberRepository persists team members.
type MemberRepository interface {
	SaveMember(ctx context.Context, member domain.TeamMember) error
	FindMemberByID(ctx context.Context, memberID string) (*domain.TeamMember, error)
	FindMemberByUserID(ctx context.Context, userID string) (*domain.TeamMember, error)
	FindMemberByEmail(ctx context.Context, email string) (*domain.TeamMember, error)
	ListMembers(ctx context.Context, squadID *string, status *domain.MemberStatus) ([]domain.TeamMember, error)
	UpdateMember(ctx context.Context, member domain.TeamMember) error
	DeleteMember(ctx context.Context, memberID string) error
}

// AllocationRepository persists staffing allocations. SaveAllocation must surface
// a Conflict when the (member, client) unique constraint is violated so that
// concurrent creations serialize at write time.
type AllocationRepository interface {
	SaveAllocation(ctx context.Context, allocation domain.StaffingAllocation) error
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.StaffingAllocation, error)
	FindAllocationByMemberAndClient(ctx context.Context, memberID, clientID string) (*domain.StaffingAllocation, error)
	ExistsAllocationForRole(ctx context.Context, clientID, roleTitle string) (bool, error)
	ListAllocations(ctx context.Context, clientID, memberID *string) ([]domain.StaffingAllocation, error)
	ListAllocationCostInputs(ctx context.Context, clientID *string) ([]domain.AllocationCostInput, error)
	ListActiveClientIDsForMember(ctx context.Context, memberID string) ([]string, error)
	UpdateAllocation(ctx context.Context, allocation domain.StaffingAllocation) error
	DeleteAllocation(ctx context.Context, allocationID string) error
}
