package services

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// ScopePolicy resolves what a caller may see. Administrators get a nil scope
// (unrestricted); anyone else is narrowed to their linked team member and the
// clients that member holds an active allocation against. A caller with no
// linked member gets an empty scope that matches nothing.
type ScopePolicy interface {
	ScopeFor(ctx context.Context, caller domain.Caller) (*domain.Scope, error)
}

// DashboardService aggregates the cross-module counts for the home dashboard.
type DashboardService interface {
	Stats(ctx context.Context, caller domain.Caller) (*domain.DashboardStats, error)
}

