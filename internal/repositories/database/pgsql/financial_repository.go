package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFinancialRepository struct {
	BaseRepository
}

// newPgxFinancialRepository creates a new repository for monthly financials and
// extra expenses.
func newPgxFinancialRepository(pool *pgxpool.Pool) portsrepo.FinancialRepository {
	return &PgxFinancialRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialRepository = (*PgxFinancialRepository)(nil)

// GetOrCreateMonthly lazily creates the period row with null figures on first
// access. ON CONFLICT keeps racing first accesses to a single row.
func (r *PgxFinancialRepository) GetOrCreateMonthly(ctx context.Context, month, year int) (*domain.MonthlyFinancials, error) {
	insert := `
		INSERT INTO monthly_financials (financials_id, month, year, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (month, year) DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, insert, uuid.NewString(), month, year); err != nil {
		return nil, fmt.Errorf("failed to ensure monthly financials for %d/%d: %w", month, year, err)
	}

	query := `
		SELECT financials_id, month, year, total_received, tax_amount, marketing_amount, created_at, updated_at
		FROM monthly_financials
		WHERE month = $1 AND year = $2;
	`
	rows, err := r.Pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly financials for %d/%d: %w", month, year, err)
	}
	financials, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.MonthlyFinancials])
	if err != nil {
		return nil, fmt.Errorf("failed to scan monthly financials for %d/%d: %w", month, year, err)
	}
	return &financials, nil
}

func (r *PgxFinancialRepository) UpdateMonthly(ctx context.Context, financials domain.MonthlyFinancials) error {
	query := `
		UPDATE monthly_financials SET
			total_received = $2, tax_amount = $3, marketing_amount = $4, updated_at = $5
		WHERE financials_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		financials.FinancialsID,
		financials.TotalReceived,
		financials.TaxAmount,
		financials.MarketingAmount,
		financials.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update monthly financials %s: %w", financials.FinancialsID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("monthly financials %s not found", financials.FinancialsID))
	}
	return nil
}

func (r *PgxFinancialRepository) SaveExtraExpense(ctx context.Context, expense domain.ExtraExpense) error {
	query := `
		INSERT INTO extra_expenses (expense_id, month, year, description, amount, payment_date, category, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.Month,
		expense.Year,
		expense.Description,
		expense.Amount,
		expense.PaymentDate,
		expense.Category,
		expense.Notes,
		expense.CreatedBy,
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save extra expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxFinancialRepository) FindExtraExpenseByID(ctx context.Context, expenseID string) (*domain.ExtraExpense, error) {
	query := `
		SELECT expense_id, month, year, description, amount, payment_date, category, notes, created_by, created_at
		FROM extra_expenses
		WHERE expense_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query extra expense %s: %w", expenseID, err)
	}
	expense, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.ExtraExpense])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("extra expense %s not found", expenseID))
		}
		return nil, fmt.Errorf("failed to scan extra expense %s: %w", expenseID, err)
	}
	return &expense, nil
}

func (r *PgxFinancialRepository) ListExtraExpenses(ctx context.Context, month, year int) ([]domain.ExtraExpense, error) {
	query := `
		SELECT expense_id, month, year, description, amount, payment_date, category, notes, created_by, created_at
		FROM extra_expenses
		WHERE month = $1 AND year = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query extra expenses for %d/%d: %w", month, year, err)
	}
	expenses, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ExtraExpense])
	if err != nil {
		return nil, fmt.Errorf("failed to scan extra expense rows: %w", err)
	}
	return expenses, nil
}

func (r *PgxFinancialRepository) UpdateExtraExpense(ctx context.Context, expense domain.ExtraExpense) error {
	query := `
		UPDATE extra_expenses SET
			month = $2, year = $3, description = $4, amount = $5,
			payment_date = $6, category = $7, notes = $8
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.Month,
		expense.Year,
		expense.Description,
		expense.Amount,
		expense.PaymentDate,
		expense.Category,
		expense.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update extra expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("extra expense %s not found", expense.ExpenseID))
	}
	return nil
}

func (r *PgxFinancialRepository) DeleteExtraExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM extra_expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete extra expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("extra expense %s not found", expenseID))
	}
	return nil
}
