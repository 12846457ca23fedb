package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	noSquadKey = "no_squad"
	noRoleKey  = "no_role"
)

// financialService implements the monthly rollup aggregator on top of the
// proration engine.
type financialService struct {
	BaseService
	financialRepo  portsrepo.FinancialRepository
	allocationRepo portsrepo.AllocationRepository
	clientRepo     portsrepo.ClientRepository
}

// FinancialServiceOption is a functional option for configuring the financial service.
type FinancialServiceOption func(*financialService)

// WithFinancialClock overrides the clock used for expense timestamps.
func WithFinancialClock(clock Clock) FinancialServiceOption {
	return func(s *financialService) {
		s.clock = clock
	}
}

// NewFinancialService creates the financial rollup service.
func NewFinancialService(financialRepo portsrepo.FinancialRepository, allocationRepo portsrepo.AllocationRepository, clientRepo portsrepo.ClientRepository, options ...FinancialServiceOption) portssvc.FinancialService {
	svc := &financialService{
		financialRepo:  financialRepo,
		allocationRepo: allocationRepo,
		clientRepo:     clientRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FinancialService = (*financialService)(nil)

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return apperrors.NewValidationFailedError(fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}
	if year < 1000 || year > 9999 {
		return apperrors.NewValidationFailedError(fmt.Sprintf("year must be a four-digit integer, got %d", year))
	}
	return nil
}

// MonthlySummary runs the proration engine over every allocation and assembles
// the four ranked groupings plus the period's receivable/extras/net figures.
func (s *financialService) MonthlySummary(ctx context.Context, month, year int) (*domain.MonthlySummary, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	inputs, err := s.allocationRepo.ListAllocationCostInputs(ctx, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load allocations for monthly summary",
			slog.Int("month", month), slog.Int("year", year))
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}

	summary := &domain.MonthlySummary{
		Month: month,
		Year:  year,
	}

	byClient := map[string]*domain.CostGroup{}
	byMember := map[string]*domain.CostGroup{}
	bySquad := map[string]*domain.CostGroup{}
	byRole := map[string]*domain.CostGroup{}

	totalCost := decimal.Zero
	for _, input := range inputs {
		calc := Prorate(input.MonthlyRate, input.StartDate, input.EndDate, month, year)
		if calc.ActiveDays == 0 {
			continue
		}
		cost := domain.AllocationCost{AllocationCostInput: input, ProrationResult: calc}
		totalCost = totalCost.Add(calc.ProratedValue)

		accumulate(byClient, input.ClientID, input.ClientName, cost)
		accumulate(byMember, input.MemberID, input.MemberName, cost)

		squadKey, squadName := noSquadKey, "No squad"
		if input.SquadID != nil {
			squadKey = *input.SquadID
			if input.SquadName != nil {
				squadName = *input.SquadName
			}
		}
		accumulate(bySquad, squadKey, squadName, cost)

		roleKey := input.RoleTitle
		if roleKey == "" {
			roleKey = noRoleKey
		}
		roleName := input.RoleTitle
		if roleName == "" {
			roleName = "No role"
		}
		accumulate(byRole, roleKey, roleName, cost)
	}
	summary.TotalOperationalCost = totalCost

	billable, err := s.clientRepo.ListBillableClients(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load billable clients")
		return nil, fmt.Errorf("failed to load billable clients: %w", err)
	}
	receivable := decimal.Zero
	for _, c := range billable {
		receivable = receivable.Add(c.MonthlyValue)
	}
	summary.TotalReceivable = receivable

	financials, err := s.financialRepo.GetOrCreateMonthly(ctx, month, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to load monthly financials",
			slog.Int("month", month), slog.Int("year", year))
		return nil, fmt.Errorf("failed to load monthly financials: %w", err)
	}
	summary.Financials = *financials

	extras, err := s.financialRepo.ListExtraExpenses(ctx, month, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to load extra expenses",
			slog.Int("month", month), slog.Int("year", year))
		return nil, fmt.Errorf("failed to load extra expenses: %w", err)
	}
	summary.Extras = extras
	totalExtras := decimal.Zero
	for _, e := range extras {
		totalExtras = totalExtras.Add(e.Amount)
	}
	summary.TotalExtras = totalExtras

	// Net profit is only meaningful once revenue for the period has been entered.
	if financials.TotalReceived != nil {
		tax := decimal.Zero
		if financials.TaxAmount != nil {
			tax = *financials.TaxAmount
		}
		marketing := decimal.Zero
		if financials.MarketingAmount != nil {
			marketing = *financials.MarketingAmount
		}
		net := financials.TotalReceived.Sub(totalCost.Add(tax).Add(marketing).Add(totalExtras))
		summary.NetProfit = &net
	}

	summary.ByClient = rankedGroups(byClient)
	summary.ByMember = rankedGroups(byMember)
	summary.BySquad = rankedGroups(bySquad)
	summary.ByRole = rankedGroups(byRole)

	s.LogInfo(ctx, "Monthly summary generated",
		slog.Int("month", month), slog.Int("year", year),
		slog.Int("allocations", len(inputs)),
		slog.String("total_operational_cost", totalCost.String()))
	return summary, nil
}

func accumulate(groups map[string]*domain.CostGroup, key, name string, cost domain.AllocationCost) {
	group, ok := groups[key]
	if !ok {
		group = &domain.CostGroup{
			Key:           key,
			Name:          name,
			TotalMonthly:  decimal.Zero,
			TotalProrated: decimal.Zero,
		}
		groups[key] = group
	}
	group.TotalMonthly = group.TotalMonthly.Add(cost.MonthlyRate)
	group.TotalProrated = group.TotalProrated.Add(cost.ProratedValue)
	group.Allocations = append(group.Allocations, cost)
}

// rankedGroups flattens a grouping map into a slice sorted descending by
// prorated total, biggest cost driver first. Ties fall back to name for a
// stable order.
func rankedGroups(groups map[string]*domain.CostGroup) []domain.CostGroup {
	out := make([]domain.CostGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		cmp := out[i].TotalProrated.Cmp(out[j].TotalProrated)
		if cmp != 0 {
			return cmp > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ClientCosts returns the per-client allocation cost detail for one period.
func (s *financialService) ClientCosts(ctx context.Context, clientID string, month, year int) (*domain.ClientCostSummary, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	inputs, err := s.allocationRepo.ListAllocationCostInputs(ctx, &clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load allocations for client costs", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}

	result := &domain.ClientCostSummary{
		ClientID:      clientID,
		ClientName:    client.Name,
		TotalMonthly:  decimal.Zero,
		TotalProrated: decimal.Zero,
	}
	for _, input := range inputs {
		calc := Prorate(input.MonthlyRate, input.StartDate, input.EndDate, month, year)
		if calc.ActiveDays == 0 {
			continue
		}
		result.TotalMonthly = result.TotalMonthly.Add(input.MonthlyRate)
		result.TotalProrated = result.TotalProrated.Add(calc.ProratedValue)
		result.Allocations = append(result.Allocations, domain.AllocationCost{
			AllocationCostInput: input,
			ProrationResult:     calc,
		})
	}
	return result, nil
}

// UpdateMonthly records the manually entered figures for a period, creating the
// row lazily when it does not exist yet.
func (s *financialService) UpdateMonthly(ctx context.Context, month, year int, req dto.UpdateMonthlyFinancialsRequest) (*domain.MonthlyFinancials, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	financials, err := s.financialRepo.GetOrCreateMonthly(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if req.TotalReceived != nil {
		financials.TotalReceived = req.TotalReceived
	}
	if req.TaxAmount != nil {
		financials.TaxAmount = req.TaxAmount
	}
	if req.MarketingAmount != nil {
		financials.MarketingAmount = req.MarketingAmount
	}
	financials.UpdatedAt = s.Now()
	if err := s.financialRepo.UpdateMonthly(ctx, *financials); err != nil {
		s.LogError(ctx, err, "Failed to update monthly financials",
			slog.Int("month", month), slog.Int("year", year))
		return nil, err
	}
	return financials, nil
}

// CreateExtraExpense adds an ad hoc expense to a period.
func (s *financialService) CreateExtraExpense(ctx context.Context, req dto.CreateExtraExpenseRequest, creatorUserID string) (*domain.ExtraExpense, error) {
	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}
	expense := domain.ExtraExpense{
		ExpenseID:   uuid.NewString(),
		Month:       req.Month,
		Year:        req.Year,
		Description: req.Description,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Category:    req.Category,
		Notes:       req.Notes,
		CreatedBy:   &creatorUserID,
		CreatedAt:   s.Now(),
	}
	if err := s.financialRepo.SaveExtraExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save extra expense")
		return nil, err
	}
	return &expense, nil
}

func (s *financialService) ListExtraExpenses(ctx context.Context, month, year int) ([]domain.ExtraExpense, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.financialRepo.ListExtraExpenses(ctx, month, year)
}

func (s *financialService) UpdateExtraExpense(ctx context.Context, expenseID string, req dto.UpdateExtraExpenseRequest) (*domain.ExtraExpense, error) {
	expense, err := s.financialRepo.FindExtraExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if req.Month != nil {
		expense.Month = *req.Month
	}
	if req.Year != nil {
		expense.Year = *req.Year
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.PaymentDate != nil {
		paymentDate, err := parseOptionalDate(req.PaymentDate)
		if err != nil {
			return nil, err
		}
		expense.PaymentDate = paymentDate
	}
	if req.Category != nil {
		expense.Category = req.Category
	}
	if req.Notes != nil {
		expense.Notes = req.Notes
	}
	if err := s.financialRepo.UpdateExtraExpense(ctx, *expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *financialService) DeleteExtraExpense(ctx context.Context, expenseID string) error {
	return s.financialRepo.DeleteExtraExpense(ctx, expenseID)
}

// parseOptionalDate parses a YYYY-MM-DD date string, nil-safe.
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("invalid date " + *value + ", expected YYYY-MM-DD")
	}
	return &parsed, nil
}
