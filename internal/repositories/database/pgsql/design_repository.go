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

const designDemandColumns = `d.demand_id, d.title, d.description, d.demand_type, d.column_id, d.position, d.client_id, d.assignee_id, d.created_by, d.due_date, d.completed_at, d.approved_at, d.payment_value, d.payment_registered, d.created_at, d.updated_at, c.name AS client_name, m.name AS assignee_name`

type PgxDesignRepository struct {
	BaseRepository
}

// newPgxDesignRepository creates a new repository for design-pipeline demands,
// payments, attachments and rates.
func newPgxDesignRepository(pool *pgxpool.Pool) portsrepo.DesignRepository {
	return &PgxDesignRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DesignRepository = (*PgxDesignRepository)(nil)

func (r *PgxDesignRepository) SaveDemand(ctx context.Context, demand domain.DesignDemand) error {
	query := `
		INSERT INTO design_demands (demand_id, title, description, demand_type, column_id, position, client_id, assignee_id, created_by, due_date, completed_at, approved_at, payment_value, payment_registered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		demand.DemandID,
		demand.Title,
		demand.Description,
		demand.DemandType,
		demand.ColumnID,
		demand.Position,
		demand.ClientID,
		demand.AssigneeID,
		demand.CreatedBy,
		demand.DueDate,
		demand.CompletedAt,
		demand.ApprovedAt,
		demand.PaymentValue,
		demand.PaymentRegistered,
		demand.CreatedAt,
		demand.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced column, client or assignee does not exist")
		}
		return fmt.Errorf("failed to save design demand %s: %w", demand.DemandID, err)
	}
	return nil
}

func (r *PgxDesignRepository) scanDemand(row pgx.Row) (*domain.DesignDemand, error) {
	var demand domain.DesignDemand
	err := row.Scan(
		&demand.DemandID,
		&demand.Title,
		&demand.Description,
		&demand.DemandType,
		&demand.ColumnID,
		&demand.Position,
		&demand.ClientID,
		&demand.AssigneeID,
		&demand.CreatedBy,
		&demand.DueDate,
		&demand.CompletedAt,
		&demand.ApprovedAt,
		&demand.PaymentValue,
		&demand.PaymentRegistered,
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

func (r *PgxDesignRepository) FindDemandByID(ctx context.Context, demandID string) (*domain.DesignDemand, error) {
	query := `
		SELECT ` + designDemandColumns + `
		FROM design_demands d
		LEFT JOIN clients c ON c.client_id = d.client_id
		LEFT JOIN team_members m ON m.member_id = d.assignee_id
		WHERE d.demand_id = $1;
	`
	demand, err := r.scanDemand(r.Pool.QueryRow(ctx, query, demandID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("design demand %s not found", demandID))
		}
		return nil, fmt.Errorf("failed to find design demand %s: %w", demandID, err)
	}
	return demand, nil
}

func (r *PgxDesignRepository) ListDemands(ctx context.Context, clientID, assigneeID *string) ([]domain.DesignDemand, error) {
	query := `
		SELECT ` + designDemandColumns + `
		FROM design_demands d
		LEFT JOIN clients c ON c.client_id = d.client_id
		LEFT JOIN team_members m ON m.member_id = d.assignee_id
		WHERE ($1::text IS NULL OR d.client_id = $1)
		  AND ($2::text IS NULL OR d.assignee_id = $2)
		ORDER BY d.position, d.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, clientID, assigneeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query design demands: %w", err)
	}
	defer rows.Close()

	demands := []domain.DesignDemand{}
	for rows.Next() {
		demand, err := r.scanDemand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan design demand row: %w", err)
		}
		demands = append(demands, *demand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating design demand rows: %w", err)
	}
	return demands, nil
}

func (r *PgxDesignRepository) UpdateDemand(ctx context.Context, demand domain.DesignDemand) error {
	query := `
		UPDATE design_demands SET
			title = $2, description = $3, demand_type = $4, client_id = $5,
			assignee_id = $6, due_date = $7, completed_at = $8, updated_at = $9
		WHERE demand_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		demand.DemandID,
		demand.Title,
		demand.Description,
		demand.DemandType,
		demand.ClientID,
		demand.AssigneeID,
		demand.DueDate,
		demand.CompletedAt,
		demand.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced client or assignee does not exist")
		}
		return fmt.Errorf("failed to update design demand %s: %w", demand.DemandID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("design demand %s not found", demand.DemandID))
	}
	return nil
}

// MoveDemand applies the placement update and appends the history entry in one
// transaction.
func (r *PgxDesignRepository) MoveDemand(ctx context.Context, move portsrepo.DesignMove) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE design_demands SET
			column_id = $2,
			position = $3,
			completed_at = COALESCE($4, completed_at),
			updated_at = $5
		WHERE demand_id = $1;
	`,
		move.DemandID,
		move.ColumnID,
		move.Position,
		move.CompletedAt,
		move.History.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to move design demand %s: %w", move.DemandID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("design demand %s not found", move.DemandID))
	}

	if err := insertHistory(ctx, tx, "design_demand_history", move.History); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ApproveDemand persists the approval stamps and inserts the payment record in
// one transaction. The unique constraint on design_payments.demand_id makes a
// racing second approval fail here.
func (r *PgxDesignRepository) ApproveDemand(ctx context.Context, approval portsrepo.DesignApproval) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	demand := approval.Demand
	tag, err := tx.Exec(ctx, `
		UPDATE design_demands SET
			approved_at = $2,
			completed_at = $3,
			payment_value = $4,
			payment_registered = TRUE,
			updated_at = $5
		WHERE demand_id = $1 AND payment_registered = FALSE;
	`,
		demand.DemandID,
		demand.ApprovedAt,
		demand.CompletedAt,
		demand.PaymentValue,
		demand.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to approve design demand %s: %w", demand.DemandID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("payment already registered for this demand")
	}

	payment := approval.Payment
	_, err = tx.Exec(ctx, `
		INSERT INTO design_payments (payment_id, demand_id, member_id, client_id, demand_type, value, month, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		payment.PaymentID,
		payment.DemandID,
		payment.MemberID,
		payment.ClientID,
		payment.DemandType,
		payment.Value,
		payment.Month,
		payment.Year,
		payment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("payment already registered for this demand")
		}
		return fmt.Errorf("failed to insert design payment %s: %w", payment.PaymentID, err)
	}
	return r.Commit(ctx, tx)
}

// DeleteDemand removes the demand with its history, payments, comments and
// attachment rows in one transaction.
func (r *PgxDesignRepository) DeleteDemand(ctx context.Context, demandID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	for _, table := range []string{"design_demand_history", "design_payments", "design_comments", "design_attachments"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE demand_id = $1;`, table), demandID); err != nil {
			return fmt.Errorf("failed to delete %s rows for demand %s: %w", table, demandID, err)
		}
	}
	tag, err := tx.Exec(ctx, `DELETE FROM design_demands WHERE demand_id = $1;`, demandID)
	if err != nil {
		return fmt.Errorf("failed to delete design demand %s: %w", demandID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("design demand %s not found", demandID))
	}
	return r.Commit(ctx, tx)
}

func (r *PgxDesignRepository) ListHistory(ctx context.Context, demandID string) ([]domain.HistoryEntry, error) {
	return listHistory(ctx, r.Pool, "design_demand_history", demandID)
}

func (r *PgxDesignRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	return saveComment(ctx, r.Pool, "design_comments", comment)
}

func (r *PgxDesignRepository) ListComments(ctx context.Context, demandID string) ([]domain.Comment, error) {
	return listComments(ctx, r.Pool, "design_comments", demandID)
}

func (r *PgxDesignRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	query := `
		INSERT INTO design_attachments (attachment_id, demand_id, filename, storage_path, content_type, size_bytes, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		attachment.AttachmentID,
		attachment.DemandID,
		attachment.Filename,
		attachment.StoragePath,
		attachment.ContentType,
		attachment.SizeBytes,
		attachment.UploadedBy,
		attachment.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced demand does not exist")
		}
		return fmt.Errorf("failed to save attachment %s: %w", attachment.AttachmentID, err)
	}
	return nil
}

func (r *PgxDesignRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	query := `
		SELECT attachment_id, demand_id, filename, storage_path, content_type, size_bytes, uploaded_by, created_at
		FROM design_attachments
		WHERE attachment_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, attachmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachment %s: %w", attachmentID, err)
	}
	attachment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Attachment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("attachment %s not found", attachmentID))
		}
		return nil, fmt.Errorf("failed to scan attachment %s: %w", attachmentID, err)
	}
	return &attachment, nil
}

func (r *PgxDesignRepository) ListAttachments(ctx context.Context, demandID string) ([]domain.Attachment, error) {
	query := `
		SELECT attachment_id, demand_id, filename, storage_path, content_type, size_bytes, uploaded_by, created_at
		FROM design_attachments
		WHERE demand_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, demandID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments for demand %s: %w", demandID, err)
	}
	attachments, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Attachment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan attachment rows: %w", err)
	}
	return attachments, nil
}

func (r *PgxDesignRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM design_attachments WHERE attachment_id = $1;`, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to delete attachment %s: %w", attachmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("attachment %s not found", attachmentID))
	}
	return nil
}

func (r *PgxDesignRepository) ListPayments(ctx context.Context, month, year int, memberID *string) ([]domain.DesignPayment, error) {
	query := `
		SELECT p.payment_id, p.demand_id, p.member_id, p.client_id, p.demand_type, p.value, p.month, p.year, p.created_at,
		       m.name AS member_name, c.name AS client_name, d.title AS demand_title
		FROM design_payments p
		JOIN team_members m ON m.member_id = p.member_id
		LEFT JOIN clients c ON c.client_id = p.client_id
		LEFT JOIN design_demands d ON d.demand_id = p.demand_id
		WHERE p.month = $1 AND p.year = $2
		  AND ($3::text IS NULL OR p.member_id = $3)
		ORDER BY p.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, month, year, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query design payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.DesignPayment{}
	for rows.Next() {
		var payment domain.DesignPayment
		err := rows.Scan(
			&payment.PaymentID,
			&payment.DemandID,
			&payment.MemberID,
			&payment.ClientID,
			&payment.DemandType,
			&payment.Value,
			&payment.Month,
			&payment.Year,
			&payment.CreatedAt,
			&payment.MemberName,
			&payment.ClientName,
			&payment.DemandTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan design payment row: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating design payment rows: %w", err)
	}
	return payments, nil
}

// FindRateByMember returns the member's rate override, or nil, nil when the
// member has none and the configured defaults apply.
func (r *PgxDesignRepository) FindRateByMember(ctx context.Context, memberID string) (*domain.MemberRate, error) {
	query := `
		SELECT member_id, art_value, video_value, updated_at
		FROM design_rates
		WHERE member_id = $1;
	`
	var rate domain.MemberRate
	err := r.Pool.QueryRow(ctx, query, memberID).Scan(
		&rate.MemberID,
		&rate.ArtValue,
		&rate.VideoValue,
		&rate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find rate for member %s: %w", memberID, err)
	}
	return &rate, nil
}

func (r *PgxDesignRepository) ListRates(ctx context.Context) ([]domain.MemberRate, error) {
	query := `
		SELECT r.member_id, r.art_value, r.video_value, r.updated_at, m.name AS member_name
		FROM design_rates r
		JOIN team_members m ON m.member_id = r.member_id
		ORDER BY m.name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query design rates: %w", err)
	}
	defer rows.Close()

	rates := []domain.MemberRate{}
	for rows.Next() {
		var rate domain.MemberRate
		if err := rows.Scan(&rate.MemberID, &rate.ArtValue, &rate.VideoValue, &rate.UpdatedAt, &rate.MemberName); err != nil {
			return nil, fmt.Errorf("failed to scan design rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating design rate rows: %w", err)
	}
	return rates, nil
}

func (r *PgxDesignRepository) UpsertRate(ctx context.Context, rate domain.MemberRate) error {
	query := `
		INSERT INTO design_rates (member_id, art_value, video_value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (member_id) DO UPDATE SET
			art_value = EXCLUDED.art_value,
			video_value = EXCLUDED.video_value,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query, rate.MemberID, rate.ArtValue, rate.VideoValue, rate.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced member does not exist")
		}
		return fmt.Errorf("failed to upsert rate for member %s: %w", rate.MemberID, err)
	}
	return nil
}

// ListApprovedDemands returns a client's approved design demands, newest first.
func (r *PgxDesignRepository) ListApprovedDemands(ctx context.Context, clientID string) ([]domain.DesignDemand, error) {
	query := `
		SELECT ` + designDemandColumns + `
		FROM design_demands d
		LEFT JOIN clients c ON c.client_id = d.client_id
		LEFT JOIN team_members m ON m.member_id = d.assignee_id
		WHERE d.client_id = $1 AND d.approved_at IS NOT NULL
		ORDER BY d.approved_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved demands for client %s: %w", clientID, err)
	}
	defer rows.Close()

	demands := []domain.DesignDemand{}
	for rows.Next() {
		demand, err := r.scanDemand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approved demand row: %w", err)
		}
		demands = append(demands, *demand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approved demand rows: %w", err)
	}
	return demands, nil
}
