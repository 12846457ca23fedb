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

const demandColumns = `d.demand_id, d.title, d.description, d.priority, d.status, d.demand_type, d.column_id, d.position, d.client_id, d.assignee_id, d.created_by, d.sla_hours, d.due_date, d.completed_at, d.created_at, d.updated_at, c.name AS client_name, m.name AS assignee_name`

type PgxDemandRepository struct {
	BaseRepository
}

// newPgxDemandRepository creates a new repository for general-pipeline demands.
func newPgxDemandRepository(pool *pgxpool.Pool) portsrepo.DemandRepository {
	return &PgxDemandRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DemandRepository = (*PgxDemandRepository)(nil)

func (r *PgxDemandRepository) SaveDemand(ctx context.Context, demand domain.Demand) error {
	query := `
		INSERT INTO demands (demand_id, title, description, priority, status, demand_type, column_id, position, client_id, assignee_id, created_by, sla_hours, due_date, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		demand.DemandID,
		demand.Title,
		demand.Description,
		demand.Priority,
		demand.Status,
		demand.DemandType,
		demand.ColumnID,
		demand.Position,
		demand.ClientID,
		demand.AssigneeID,
		demand.CreatedBy,
		demand.SLAHours,
		demand.DueDate,
		demand.CompletedAt,
		demand.CreatedAt,
		demand.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced column, client or assignee does not exist")
		}
		return fmt.Errorf("failed to save demand %s: %w", demand.DemandID, err)
	}
	return nil
}

func (r *PgxDemandRepository) scanDemand(row pgx.Row) (*domain.Demand, error) {
	var demand domain.Demand
	err := row.Scan(
		&demand.DemandID,
		&demand.Title,
		&demand.Description,
		&demand.Priority,
		&demand.Status,
		&demand.DemandType,
		&demand.ColumnID,
		&demand.Position,
		&demand.ClientID,
		&demand.AssigneeID,
		&demand.CreatedBy,
		&demand.SLAHours,
		&demand.DueDate,
		&demand.CompletedAt,
		&demand.CreatedAt,
		&demand.UpdatedAt,
		&demand.ClientName,
		&demand.AssigneeName,
	)
	if err != nil {
		return nil, err
	}
	return &demand, nil
}

func (r *PgxDemandRepository) FindDemandByID(ctx context.Context, demandID string) (*domain.Demand, error) {
	query := `
		SELECT ` + demandColumns + `
		FROM demands d
		LEFT JOIN clients c ON c.client_id = d.client_id
		LEFT JOIN team_members m ON m.member_id = d.assignee_id
		WHERE d.demand_id = $1;
	`
	demand, err := r.scanDemand(r.Pool.QueryRow(ctx, query, demandID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("demand %s not found", demandID))
		}
		return nil, fmt.Errorf("failed to find demand %s: %w", demandID, err)
	}
	return demand, nil
}

func (r *PgxDemandRepository) ListDemands(ctx context.Context, filter domain.DemandFilter) ([]domain.Demand, error) {
	scope := filter.Scope
	if scope.Empty() {
		return []domain.Demand{}, nil
	}

	query := `
		SELECT ` + demandColumns + `
		FROM demands d
		LEFT JOIN clients c ON c.client_id = d.client_id
		LEFT JOIN team_members m ON m.member_id = d.assignee_id
		WHERE ($1::text IS NULL OR d.client_id = $1)
		  AND ($2::text IS NULL OR d.assignee_id = $2)
		  AND ($3::text IS NULL OR d.status = $3)
		  AND ($4::text IS NULL OR d.priority = $4)
		  AND ($5::boolean OR d.assignee_id = $6 OR d.client_id = ANY($7))
		ORDER BY d.position, d.created_at;
	`
	unscoped := scope == nil
	var scopeMember *string
	var scopeClients []string
	if scope != nil {
		scopeMember = &scope.MemberID
		scopeClients = scope.ClientIDs
	}

	rows, err := r.Pool.Query(ctx, query,
		filter.ClientID, filter.AssigneeID, filter.Status, filter.Priority,
		unscoped, scopeMember, scopeClients)
	if err != nil {
		return nil, fmt.Errorf("failed to query demands: %w", err)
	}
	defer rows.Close()

	demands := []domain.Demand{}
	for rows.Next() {
		demand, err := r.scanDemand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan demand row: %w", err)
		}
		demands = append(demands, *demand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating demand rows: %w", err)
	}
	return demands, nil
}

func (r *PgxDemandRepository) UpdateDemand(ctx context.Context, demand domain.Demand) error {
	query := `
		UPDATE demands SET
			title = $2, description = $3, priority = $4, status = $5, demand_type = $6,
			client_id = $7, assignee_id = $8, sla_hours = $9, due_date = $10,
			completed_at = $11, updated_at = $12
		WHERE demand_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		demand.DemandID,
		demand.Title,
		demand.Description,
		demand.Priority,
		demand.Status,
		demand.DemandType,
		demand.ClientID,
		demand.AssigneeID,
		demand.SLAHours,
		demand.DueDate,
		demand.CompletedAt,
		demand.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced client or assignee does not exist")
		}
		return fmt.Errorf("failed to update demand %s: %w", demand.DemandID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("demand %s not found", demand.DemandID))
	}
	return nil
}

// MoveDemand applies the placement update and appends the history entry in one
// transaction.
func (r *PgxDemandRepository) MoveDemand(ctx context.Context, move portsrepo.DemandMove) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE demands SET
			column_id = $2,
			position = $3,
			status = COALESCE($4, status),
			completed_at = COALESCE($5, completed_at),
			updated_at = $6
		WHERE demand_id = $1;
	`,
		move.DemandID,
		move.ColumnID,
		move.Position,
		move.Status,
		move.CompletedAt,
		move.History.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to move demand %s: %w", move.DemandID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("demand %s not found", move.DemandID))
	}

	if err := insertHistory(ctx, tx, "demand_history", move.History); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteDemand removes the demand with its history and comments in one
// transaction.
func (r *PgxDemandRepository) DeleteDemand(ctx context.Context, demandID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM demand_history WHERE demand_id = $1;`, demandID); err != nil {
		return fmt.Errorf("failed to delete demand history for %s: %w", demandID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM demand_comments WHERE demand_id = $1;`, demandID); err != nil {
		return fmt.Errorf("failed to delete demand comments for %s: %w", demandID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM demands WHERE demand_id = $1;`, demandID)
	if err != nil {
		return fmt.Errorf("failed to delete demand %s: %w", demandID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("demand %s not found", demandID))
	}
	return r.Commit(ctx, tx)
}

func (r *PgxDemandRepository) ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error) {
	return listHistory(ctx, r.Pool, "demand_history", demandID)
}

func (r *PgxDemandRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	return saveComment(ctx, r.Pool, "demand_comments", comment)
}

func (r *PgxDemandRepository) ListComments(ctx context.Context, demandID string) ([]domain.Comment, error) {
	return listComments(ctx, r.Pool, "demand_comments", demandID)
}
