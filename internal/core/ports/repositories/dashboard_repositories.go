package repositories

import (
	"context"
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardRepository answers the count/sum queries behind the home dashboard.
// Every method accepts an optional scope; nil means unrestricted.
type DashboardRepository interface {
	CountClientsByStatus(ctx context.Context, scope *domain.Scope) (map[domain.ClientStatus]int, int, error)
	SumReceivable(ctx context.Context, scope *domain.Scope) (decimal.Decimal, error)
	CountMembers(ctx context.Context) (active int, total int, err error)
	CountSquads(ctx context.Context) (int, error)
	CountDemandsByStatus(ctx context.Context, scope *domain.Scope) (map[domain.DemandStatus]int, error)
	CountOverdueDemands(ctx context.Context, now time.Time, scope *domain.Scope) (int, error)
	CountMeetingsSince(ctx context.Context, since time.Time, scope *domain.Scope) (int, error)
}
