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

const clientColumns = `client_id, name, company, tax_id, responsible_name, phone, email, segment, status, instagram, website, notes, start_date, end_date, monthly_value, min_contract_months, operational_cost, health_score, created_by, created_at, updated_at`

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepository {
	return &PgxClientRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepository = (*PgxClientRepository)(nil)

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Company,
		client.TaxID,
		client.ResponsibleName,
		client.Phone,
		client.Email,
		client.Segment,
		client.Status,
		client.Instagram,
		client.Website,
		client.Notes,
		client.StartDate,
		client.EndDate,
		client.MonthlyValue,
		client.MinContractMths,
		client.OperationalCost,
		client.HealthScore,
		client.CreatedBy,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: client %s already exists", apperrors.ErrDuplicate, client.ClientID)
		}
		return fmt.Errorf("failed to save client %s: %w", client.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query client %s: %w", clientID, err)
	}
	client, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[domain.Client])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
		}
		return nil, fmt.Errorf("failed to scan client %s: %w", clientID, err)
	}
	return &client, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, status *domain.ClientStatus) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE ($1::text IS NULL OR status = $1) ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	clients, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Client])
	if err != nil {
		return nil, fmt.Errorf("failed to scan clients: %w", err)
	}
	return clients, nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
		UPDATE clients SET
			name = $2, company = $3, tax_id = $4, responsible_name = $5, phone = $6,
			email = $7, segment = $8, status = $9, instagram = $10, website = $11,
			notes = $12, start_date = $13, end_date = $14, monthly_value = $15,
			min_contract_months = $16, operational_cost = $17, health_score = $18,
			updated_at = $19
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Company,
		client.TaxID,
		client.ResponsibleName,
		client.Phone,
		client.Email,
		client.Segment,
		client.Status,
		client.Instagram,
		client.Website,
		client.Notes,
		client.StartDate,
		client.EndDate,
		client.MonthlyValue,
		client.MinContractMths,
		client.OperationalCost,
		client.HealthScore,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", client.ClientID))
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("client still has dependent records")
		}
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
	}
	return nil
}

func (r *PgxClientRepository) UpdateClientHealthScore(ctx context.Context, clientID string, score float64) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE clients SET health_score = $2, updated_at = now() WHERE client_id = $1;`,
		clientID, score)
	if err != nil {
		return fmt.Errorf("failed to update health score for client %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
	}
	return nil
}

// ListBillableClients returns the receivable inputs: active and onboarding
// clients carrying a monthly value.
func (r *PgxClientRepository) ListBillableClients(ctx context.Context) ([]domain.BillableClient, error) {
	query := `
		SELECT client_id, name, monthly_value
		FROM clients
		WHERE status IN ('active', 'onboarding') AND monthly_value IS NOT NULL
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query billable clients: %w", err)
	}
	billable, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.BillableClient])
	if err != nil {
		return nil, fmt.Errorf("failed to scan billable clients: %w", err)
	}
	return billable, nil
}
