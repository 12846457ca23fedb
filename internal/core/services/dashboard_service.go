package services

import (
	"context"
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
)

type dashboardService struct {
	BaseService
	dashboardRepo portsrepo.DashboardRepository
	scopePolicy   portssvc.ScopePolicy
}

// DashboardServiceOption is a functional option for configuring the dashboard service.
type DashboardServiceOption func(*dashboardService)

// WithDashboardClock overrides the clock used for overdue and month-start cutoffs.
func WithDashboardClock(clock Clock) DashboardServiceOption {
	return func(s *dashboardService) {
		s.clock = clock
	}
}

// NewDashboardService creates the home dashboard aggregator.
func NewDashboardService(dashboardRepo portsrepo.DashboardRepository, scopePolicy portssvc.ScopePolicy, options ...DashboardServiceOption) portssvc.DashboardService {
	svc := &dashboardService{
		dashboardRepo: dashboardRepo,
		scopePolicy:   scopePolicy,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DashboardService = (*dashboardService)(nil)

// Stats gathers the cross-module counts, narrowed through the scope policy for
// non-administrator callers.
func (s *dashboardService) Stats(ctx context.Context, caller domain.Caller) (*domain.DashboardStats, error) {
	scope, err := s.scopePolicy.ScopeFor(ctx, caller)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{}

	clientCounts, total, err := s.dashboardRepo.CountClientsByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	stats.ClientsTotal = total
	stats.ClientsActive = clientCounts[domain.ClientActive]
	stats.ClientsOnboarding = clientCounts[domain.ClientOnboarding]
	stats.ClientsChurned = clientCounts[domain.ClientChurned]
	stats.ClientsInactive = clientCounts[domain.ClientInactive]

	receivable, err := s.dashboardRepo.SumReceivable(ctx, scope)
	if err != nil {
		return nil, err
	}
	stats.TotalReceivable = receivable

	active, membersTotal, err := s.dashboardRepo.CountMembers(ctx)
	if err != nil {
		return nil, err
	}
	stats.MembersActive = active
	stats.MembersTotal = membersTotal

	squads, err := s.dashboardRepo.CountSquads(ctx)
	if err != nil {
		return nil, err
	}
	stats.SquadsTotal = squads

	demandCounts, err := s.dashboardRepo.CountDemandsByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	stats.DemandsBacklog = demandCounts[domain.StatusBacklog]
	stats.DemandsTodo = demandCounts[domain.StatusTodo]
	stats.DemandsInProgress = demandCounts[domain.StatusInProgress]
	stats.DemandsInReview = demandCounts[domain.StatusInReview]
	stats.DemandsDone = demandCounts[domain.StatusDone]

	now := s.Now()
	overdue, err := s.dashboardRepo.CountOverdueDemands(ctx, now, scope)
	if err != nil {
		return nil, err
	}
	stats.DemandsOverdue = overdue

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	meetings, err := s.dashboardRepo.CountMeetingsSince(ctx, monthStart, scope)
	if err != nil {
		return nil, err
	}
	stats.MeetingsThisMonth = meetings

	return stats, nil
}
