package repositories

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// FinancialRepository persists the manually maintained monthly figures and the ad
// hoc expenses. GetOrCreateMonthly has upsert semantics: the row for a period is
// created lazily, with null revenue/tax/marketing, on first access.
type FinancialRepository interface {
	GetOrCreateMonthly(ctx context.Context, month, year int) (*domain.MonthlyFinancials, error)
	UpdateMonthly(ctx context.Context, financials domain.MonthlyFinancials) error

	SaveExtraExpense(ctx context.Context, expense domain.ExtraExpense) error
	FindExtraExpenseByID(ctx context.Context, expenseID string) (*domain.ExtraExpense, error)
	ListExtraExpenses(ctx context.Context, month, year int) ([]domain.ExtraExpense, error)
	UpdateExtraExpense(ctx context.Context, expense domain.ExtraExpense) error
	DeleteExtraExpense(ctx context.Context, expenseID string) error
}
