package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxDashboardRepository struct {
	BaseRepository
}

// newPgxDashboardRepository creates the read-only repository behind the home
// dashboard counts.
func newPgxDashboardRepository(pool *pgxpool.Pool) portsrepo.DashboardRepository {
	return &PgxDashboardRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DashboardRepository = (*PgxDashboardRepository)(nil)

// scopeArgs flattens a scope into the (unscoped, member, clients) argument
// triple the dashboard queries share.
func scopeArgs(scope *domain.Scope) (bool, *string, []string) {
	if scope == nil {
		return true, nil, nil
	}
	return false, &scope.MemberID, scope.ClientIDs
}

func (r *PgxDashboardRepository) CountClientsByStatus(ctx context.Context, scope *domain.Scope) (map[domain.ClientStatus]int, int, error) {
	if scope.Empty() {
		return map[domain.ClientStatus]int{}, 0, nil
	}
	unscoped, _, clients := scopeArgs(scope)

	query := `
		SELECT status, COUNT(*)
		FROM clients
		WHERE ($1::boolean OR client_id = ANY($2))
		GROUP BY status;
	`
	rows, err := r.Pool.Query(ctx, query, unscoped, clients)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clients by status: %w", err)
	}
	defer rows.Close()

	counts := map[domain.ClientStatus]int{}
	total := 0
	for rows.Next() {
		var status domain.ClientStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, 0, fmt.Errorf("failed to scan client status count: %w", err)
		}
		counts[status] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating client status counts: %w", err)
	}
	return counts, total, nil
}

func (r *PgxDashboardRepository) SumReceivable(ctx context.Context, scope *domain.Scope) (decimal.Decimal, error) {
	if scope.Empty() {
		return decimal.Zero, nil
	}
	unscoped, _, clients := scopeArgs(scope)

	query := `
		SELECT COALESCE(SUM(monthly_value), 0)
		FROM clients
		WHERE status IN ('active', 'onboarding')
		  AND monthly_value IS NOT NULL
		  AND ($1::boolean OR client_id = ANY($2));
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, unscoped, clients).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum receivable: %w", err)
	}
	return total, nil
}

func (r *PgxDashboardRepository) CountMembers(ctx context.Context) (int, int, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE status = 'active'), COUNT(*)
		FROM team_members;
	`
	var active, total int
	if err := r.Pool.QueryRow(ctx, query).Scan(&active, &total); err != nil {
		return 0, 0, fmt.Errorf("failed to count members: %w", err)
	}
	return active, total, nil
}

func (r *PgxDashboardRepository) CountSquads(ctx context.Context) (int, error) {
	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM squads;`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count squads: %w", err)
	}
	return total, nil
}

func (r *PgxDashboardRepository) CountDemandsByStatus(ctx context.Context, scope *domain.Scope) (map[domain.DemandStatus]int, error) {
	if scope.Empty() {
		return map[domain.DemandStatus]int{}, nil
	}
	unscoped, member, clients := scopeArgs(scope)

	query := `
		SELECT status, COUNT(*)
		FROM demands
		WHERE ($1::boolean OR assignee_id = $2 OR client_id = ANY($3))
		GROUP BY status;
	`
	rows, err := r.Pool.Query(ctx, query, unscoped, member, clients)
	if err != nil {
		return nil, fmt.Errorf("failed to count demands by status: %w", err)
	}
	defer rows.Close()

	counts := map[domain.DemandStatus]int{}
	for rows.Next() {
		var status domain.DemandStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan demand status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating demand status counts: %w", err)
	}
	return counts, nil
}

func (r *PgxDashboardRepository) CountOverdueDemands(ctx context.Context, now time.Time, scope *domain.Scope) (int, error) {
	if scope.Empty() {
		return 0, nil
	}
	unscoped, member, clients := scopeArgs(scope)

	query := `
		SELECT COUNT(*)
		FROM demands
		WHERE due_date IS NOT NULL
		  AND due_date < $1
		  AND status <> 'done'
		  AND completed_at IS NULL
		  AND ($2::boolean OR assignee_id = $3 OR client_id = ANY($4));
	`
	var total int
	if err := r.Pool.QueryRow(ctx, query, now, unscoped, member, clients).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count overdue demands: %w", err)
	}
	return total, nil
}

func (r *PgxDashboardRepository) CountMeetingsSince(ctx context.Context, since time.Time, scope *domain.Scope) (int, error) {
	if scope.Empty() {
		return 0, nil
	}
	unscoped, member, clients := scopeArgs(scope)

	query := `
		SELECT COUNT(*)
		FROM meetings
		WHERE created_at >= $1
		  AND ($2::boolean OR member_id = $3 OR client_id = ANY($4));
	`
	var total int
	if err := r.Pool.QueryRow(ctx, query, since, unscoped, member, clients).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count meetings: %w", err)
	}
	return total, nil
}
