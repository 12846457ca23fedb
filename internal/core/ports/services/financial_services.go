package services

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/rqos/agency-ops-backend/internal/dto"
)

// FinancialService produces the monthly rollup and manages the manually entered
// figures it depends on. Reporting periods are always explicit (month 1-12,
// four-digit year); defaulting to "now" is a caller concern.
type FinancialService interface {
	MonthlySummary(ctx context.Context, month, year int) (*domain.MonthlySummary, error)
	ClientCosts(ctx context.Context, clientID string, month, year int) (*domain.ClientCostSummary, error)
	UpdateMonthly(ctx context.Context, month, year int, req dto.UpdateMonthlyFinancialsRequest) (*domain.MonthlyFinancials, error)

	CreateExtraExpense(ctx context.Context, req dto.CreateExtraExpenseRequest, creatorUserID string) (*domain.ExtraExpense, error)
	ListExtraExpenses(ctx context.Context, month, year int) ([]domain.ExtraExpense, error)
	UpdateExtraExpense(ctx context.Context, expenseID string, req dto.UpdateExtraExpenseRequest) (*domain.ExtraExpense, error)
	DeleteExtraExpense(ctx context.Context, expenseID string) error
}
