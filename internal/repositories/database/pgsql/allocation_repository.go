package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const allocationColumns = `a.allocation_id, a.member_id, a.client_id, a.monthly_rate, a.start_date, a.end_date, a.created_at, m.name AS member_name, c.name AS client_name`

type PgxAllocationRepository struct {
	BaseRepository
}

// newPgxAllocationRepository creates a new repository for staffing allocations.
func newPgxAllocationRepository(pool *pgxpool.Pool) portsrepo.AllocationRepository {
	return &PgxAllocationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AllocationRepository = (*PgxAllocationRepository)(nil)

func (r *PgxAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.StaffingAllocation) error {
	query := `
		INSERT INTO staffing_allocations (allocation_id, member_id, client_id, monthly_rate, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		allocation.AllocationID,
		allocation.MemberID,
		allocation.ClientID,
		allocation.MonthlyRate,
		allocation.StartDate,
		allocation.EndDate,
		allocation.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// The unique index serializes racing creations for the same pair.
			return apperrors.NewConflictError("member is already allocated to this client")
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced member or client does not exist")
		}
		return fmt.Errorf("failed to save allocation %s: %w", allocation.AllocationID, err)
	}
	return nil
}

func (r *PgxAllocationRepository) scanAllocation(row pgx.Row) (*domain.StaffingAllocation, error) {
	var allocation domain.StaffingAllocation
	err := row.Scan(
		&allocation.AllocationID,
		&allocation.MemberID,
		&allocation.ClientID,
		&allocation.MonthlyRate,
		&allocation.StartDate,
		&allocation.EndDate,
		&allocation.CreatedAt,
		&allocation.MemberName,
		&allocation.ClientName,
	)
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.StaffingAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM staffing_allocations a
		JOIN team_members m ON m.member_id = a.member_id
		JOIN clients c ON c.client_id = a.client_id
		WHERE a.allocation_id = $1;
	`
	allocation, err := r.scanAllocation(r.Pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("allocation %s not found", allocationID))
		}
		return nil, fmt.Errorf("failed to find allocation %s: %w", allocationID, err)
	}
	return allocation, nil
}

// FindAllocationByMemberAndClient returns the existing pair row, or nil, nil
// when the pair is free.
func (r *PgxAllocationRepository) FindAllocationByMemberAndClient(ctx context.Context, memberID, clientID string) (*domain.StaffingAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM staffing_allocations a
		JOIN team_members m ON m.member_id = a.member_id
		JOIN clients c ON c.client_id = a.client_id
		WHERE a.member_id = $1 AND a.client_id = $2;
	`
	allocation, err := r.scanAllocation(r.Pool.QueryRow(ctx, query, memberID, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find allocation for member %s and client %s: %w", memberID, clientID, err)
	}
	return allocation, nil
}

// ExistsAllocationForRole reports whether some member holding the role title is
// already allocated to the client.
func (r *PgxAllocationRepository) ExistsAllocationForRole(ctx context.Context, clientID, roleTitle string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM staffing_allocations a
			JOIN team_members m ON m.member_id = a.member_id
			WHERE a.client_id = $1 AND lower(m.role_title) = lower($2)
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, clientID, roleTitle).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check role allocation for client %s: %w", clientID, err)
	}
	return exists, nil
}

func (r *PgxAllocationRepository) ListAllocations(ctx context.Context, clientID, memberID *string) ([]domain.StaffingAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM staffing_allocations a
		JOIN team_members m ON m.member_id = a.member_id
		JOIN clients c ON c.client_id = a.client_id
		WHERE ($1::text IS NULL OR a.client_id = $1)
		  AND ($2::text IS NULL OR a.member_id = $2)
		ORDER BY a.start_date DESC, a.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, clientID, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	allocations := []domain.StaffingAllocation{}
	for rows.Next() {
		allocation, err := r.scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		allocations = append(allocations, *allocation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}
	return allocations, nil
}

// ListAllocationCostInputs joins every allocation with the member, squad and
// client attributes the financial rollup groups by.
func (r *PgxAllocationRepository) ListAllocationCostInputs(ctx context.Context, clientID *string) ([]domain.AllocationCostInput, error) {
	query := `
		SELECT a.allocation_id, a.member_id, m.name AS member_name, m.role_title,
		       m.squad_id, s.name AS squad_name, a.client_id, c.name AS client_name,
		       a.monthly_rate, a.start_date, a.end_date
		FROM staffing_allocations a
		JOIN team_members m ON m.member_id = a.member_id
		JOIN clients c ON c.client_id = a.client_id
		LEFT JOIN squads s ON s.squad_id = m.squad_id
		WHERE ($1::text IS NULL OR a.client_id = $1)
		ORDER BY c.name, m.name;
	`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation cost inputs: %w", err)
	}
	inputs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.AllocationCostInput])
	if err != nil {
		return nil, fmt.Errorf("failed to scan allocation cost inputs: %w", err)
	}
	return inputs, nil
}

// ListActiveClientIDsForMember returns the clients a member is currently
// allocated to, skipping allocations whose end date has passed.
func (r *PgxAllocationRepository) ListActiveClientIDsForMember(ctx context.Context, memberID string) ([]string, error) {
	query := `
		SELECT DISTINCT client_id
		FROM staffing_allocations
		WHERE member_id = $1 AND (end_date IS NULL OR end_date >= now());
	`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active clients for member %s: %w", memberID, err)
	}
	clientIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan active client ids: %w", err)
	}
	return clientIDs, nil
}

func (r *PgxAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.StaffingAllocation) error {
	query := `
		UPDATE staffing_allocations SET
			monthly_rate = $2, start_date = $3, end_date = $4
		WHERE allocation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		allocation.AllocationID,
		allocation.MonthlyRate,
		allocation.StartDate,
		allocation.EndDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation %s: %w", allocation.AllocationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("allocation %s not found", allocation.AllocationID))
	}
	return nil
}

func (r *PgxAllocationRepository) DeleteAllocation(ctx context.Context, allocationID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM staffing_allocations WHERE allocation_id = $1;`, allocationID)
	if err != nil {
		return fmt.Errorf("failed to delete allocation %s: %w", allocationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("allocation %s not found", allocationID))
	}
	return nil
}
