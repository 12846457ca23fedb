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

// PgxColumnRepository persists board columns for one pipeline. The same type
// serves both pipelines, bound to different tables at construction.
type PgxColumnRepository struct {
	BaseRepository
	table       string
	demandTable string
}

// newPgxColumnRepository creates a column repository bound to a pipeline's
// column table and the demand table counted against it.
func newPgxColumnRepository(pool *pgxpool.Pool, table, demandTable string) portsrepo.ColumnRepository {
	return &PgxColumnRepository{
		BaseRepository: BaseRepository{Pool: pool},
		table:          table,
		demandTable:    demandTable,
	}
}

var _ portsrepo.ColumnRepository = (*PgxColumnRepository)(nil)

func (r *PgxColumnRepository) SaveColumn(ctx context.Context, column domain.BoardColumn) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (column_id, name, stage, sort_order, color, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, r.table)
	_, err := r.Pool.Exec(ctx, query,
		column.ColumnID,
		column.Name,
		column.Stage,
		column.SortOrder,
		column.Color,
		column.IsDefault,
		column.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: column %q already exists", apperrors.ErrDuplicate, column.Name)
		}
		return fmt.Errorf("failed to save column %s: %w", column.ColumnID, err)
	}
	return nil
}

func (r *PgxColumnRepository) scanColumn(row pgx.Row) (*domain.BoardColumn, error) {
	var column domain.BoardColumn
	err := row.Scan(
		&column.ColumnID,
		&column.Name,
		&column.Stage,
		&column.SortOrder,
		&column.Color,
		&column.IsDefault,
		&column.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *PgxColumnRepository) FindColumnByID(ctx context.Context, columnID string) (*domain.BoardColumn, error) {
	query := fmt.Sprintf(`
		SELECT column_id, name, stage, sort_order, color, is_default, created_at
		FROM %s WHERE column_id = $1;
	`, r.table)
	column, err := r.scanColumn(r.Pool.QueryRow(ctx, query, columnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("column %s not found", columnID))
		}
		return nil, fmt.Errorf("failed to find column %s: %w", columnID, err)
	}
	return column, nil
}

func (r *PgxColumnRepository) FindColumnByStage(ctx context.Context, stage domain.ColumnStage) (*domain.BoardColumn, error) {
	query := fmt.Sprintf(`
		SELECT column_id, name, stage, sort_order, color, is_default, created_at
		FROM %s WHERE stage = $1
		ORDER BY sort_order
		LIMIT 1;
	`, r.table)
	column, err := r.scanColumn(r.Pool.QueryRow(ctx, query, stage))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no column with stage %q", stage))
		}
		return nil, fmt.Errorf("failed to find column by stage %q: %w", stage, err)
	}
	return column, nil
}

func (r *PgxColumnRepository) ListColumns(ctx context.Context) ([]domain.BoardColumn, error) {
	query := fmt.Sprintf(`
		SELECT c.column_id, c.name, c.stage, c.sort_order, c.color, c.is_default, c.created_at,
		       COUNT(d.demand_id) AS demands_count
		FROM %s c
		LEFT JOIN %s d ON d.column_id = c.column_id
		GROUP BY c.column_id
		ORDER BY c.sort_order, c.created_at;
	`, r.table, r.demandTable)
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	columns := []domain.BoardColumn{}
	for rows.Next() {
		var column domain.BoardColumn
		err := rows.Scan(
			&column.ColumnID,
			&column.Name,
			&column.Stage,
			&column.SortOrder,
			&column.Color,
			&column.IsDefault,
			&column.CreatedAt,
			&column.DemandsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column row: %w", err)
		}
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}
	return columns, nil
}

// UpdateColumn persists display attributes only; the stage tag never changes
// after creation.
func (r *PgxColumnRepository) UpdateColumn(ctx context.Context, column domain.BoardColumn) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $2, sort_order = $3, color = $4 WHERE column_id = $1;
	`, r.table)
	tag, err := r.Pool.Exec(ctx, query, column.ColumnID, column.Name, column.SortOrder, column.Color)
	if err != nil {
		return fmt.Errorf("failed to update column %s: %w", column.ColumnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("column %s not found", column.ColumnID))
	}
	return nil
}

func (r *PgxColumnRepository) DeleteColumn(ctx context.Context, columnID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE column_id = $1;`, r.table)
	tag, err := r.Pool.Exec(ctx, query, columnID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("column still holds demands")
		}
		return fmt.Errorf("failed to delete column %s: %w", columnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("column %s not found", columnID))
	}
	return nil
}
