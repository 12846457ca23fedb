package services

import (
	"context"
	"log/slog"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
)

// scopePolicy is the single place caller visibility is decided. Administrators
// see everything; everyone else sees their own team-member record and the
// clients it holds an active allocation against.
type scopePolicy struct {
	BaseService
	memberRepo     portsrepo.MemberRepository
	allocationRepo portsrepo.AllocationRepository
}

// NewScopePolicy creates the visibility policy consumed by the dashboard and
// the listing paths.
func NewScopePolicy(memberRepo portsrepo.MemberRepository, allocationRepo portsrepo.AllocationRepository) portssvc.ScopePolicy {
	return &scopePolicy{
		memberRepo:     memberRepo,
		allocationRepo: allocationRepo,
	}
}

var _ portssvc.ScopePolicy = (*scopePolicy)(nil)

// ScopeFor resolves the caller's visible set. The member link is resolved by
// explicit user id first, email second; a caller with no linked member gets an
// empty scope that matches nothing.
func (s *scopePolicy) ScopeFor(ctx context.Context, caller domain.Caller) (*domain.Scope, error) {
	if caller.IsAdmin() {
		return nil, nil
	}

	member, err := s.memberRepo.FindMemberByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if member == nil && caller.Email != "" {
		member, err = s.memberRepo.FindMemberByEmail(ctx, caller.Email)
		if err != nil {
			return nil, err
		}
	}
	if member == nil {
		s.LogDebug(ctx, "Caller has no linked team member", slog.String("user_id", caller.UserID))
		return &domain.Scope{}, nil
	}

	clientIDs, err := s.allocationRepo.ListActiveClientIDsForMember(ctx, member.MemberID)
	if err != nil {
		return nil, err
	}
	return &domain.Scope{MemberID: member.MemberID, ClientIDs: clientIDs}, nil
}
