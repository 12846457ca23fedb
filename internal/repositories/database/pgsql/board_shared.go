package pgsql

import (
	"context"
	"fmt"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the history and
// comment helpers work inside and outside transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// insertHistory appends one board-move audit row. Column names and stages are
// stored as snapshots.
func insertHistory(ctx context.Context, q querier, table string, entry domain.HistoryEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (history_id, demand_id, from_column, to_column, from_stage, to_stage, changed_by, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`, table)
	_, err := q.Exec(ctx, query,
		entry.HistoryID,
		entry.DemandID,
		entry.FromColumn,
		entry.ToColumn,
		entry.FromStage,
		entry.ToStage,
		entry.ChangedBy,
		entry.Note,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry for demand %s: %w", entry.DemandID, err)
	}
	return nil
}

func listHistory(ctx context.Context, q querier, table, demandID string) ([]domain.HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT history_id, demand_id, from_column, to_column, from_stage, to_stage, changed_by, note, created_at
		FROM %s
		WHERE demand_id = $1
		ORDER BY created_at;
	`, table)
	rows, err := q.Query(ctx, query, demandID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for demand %s: %w", demandID, err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.HistoryEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan history rows: %w", err)
	}
	return entries, nil
}

func saveComment(ctx context.Context, q querier, table string, comment domain.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (comment_id, demand_id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`, table)
	_, err := q.Exec(ctx, query,
		comment.CommentID,
		comment.DemandID,
		comment.UserID,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced demand or user does not exist")
		}
		return fmt.Errorf("failed to save comment for demand %s: %w", comment.DemandID, err)
	}
	return nil
}

func listComments(ctx context.Context, q querier, table, demandID string) ([]domain.Comment, error) {
	query := fmt.Sprintf(`
		SELECT t.comment_id, t.demand_id, t.user_id, t.text, t.created_at, u.name AS user_name
		FROM %s t
		LEFT JOIN users u ON u.user_id = t.user_id
		WHERE t.demand_id = $1
		ORDER BY t.created_at;
	`, table)
	rows, err := q.Query(ctx, query, demandID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments for demand %s: %w", demandID, err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(&comment.CommentID, &comment.DemandID, &comment.UserID, &comment.Text, &comment.CreatedAt, &comment.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}
