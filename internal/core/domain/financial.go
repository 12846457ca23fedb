package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProrationResult is the output of the allocation proration engine for one
// allocation against one reporting month. DaysInPeriod is fixed at 30 so every
// month bills on the same daily-rate basis; the true calendar month is used only
// to detect overlap.
type ProrationResult struct {
	DaysInPeriod   int             `json:"daysInPeriod"`
	ActiveDays     int             `json:"activeDays"`
	ProratedValue  decimal.Decimal `json:"proratedValue"`
}

// AllocationCost is one allocation's contribution to a monthly rollup.
type AllocationCost struct {
	AllocationCostInput
	ProrationResult
}

// CostGroup is a ranked rollup bucket (client, member, squad or role title).
type CostGroup struct {
	Key            string           `json:"key"`
	Name           string           `json:"name"`
	TotalMonthly   decimal.Decimal  `json:"totalMonthly"`
	TotalProrated  decimal.Decimal  `json:"totalProrated"`
	Allocations    []AllocationCost `json:"allocations"`
}

// MonthlyFinancials is the manually maintained revenue/tax/marketing row for one
// period, created lazily on first access.
type MonthlyFinancials struct {
	FinancialsID    string           `json:"financialsID" db:"financials_id"`
	Month           int              `json:"month" db:"month"`
	Year            int              `json:"year" db:"year"`
	TotalReceived   *decimal.Decimal `json:"totalReceived" db:"total_received"`
	TaxAmount       *decimal.Decimal `json:"taxAmount" db:"tax_amount"`
	MarketingAmount *decimal.Decimal `json:"marketingAmount" db:"marketing_amount"`
	Timestamps
}

// ExtraExpense is an ad hoc expense entered against a period.
type ExtraExpense struct {
	ExpenseID   string          `json:"expenseID" db:"expense_id"`
	Month       int             `json:"month" db:"month"`
	Year        int             `json:"year" db:"year"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate *time.Time      `json:"paymentDate" db:"payment_date"`
	Category    *string         `json:"category" db:"category"`
	Notes       *string         `json:"notes" db:"notes"`
	CreatedBy   *string         `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// MonthlySummary is the full financial rollup for one reporting period.
// NetProfit stays nil until TotalReceived has been entered for the period.
type MonthlySummary struct {
	Month                int               `json:"month"`
	Year                 int               `json:"year"`
	TotalOperationalCost decimal.Decimal   `json:"totalOperationalCost"`
	TotalReceivable      decimal.Decimal   `json:"totalReceivable"`
	TotalExtras          decimal.Decimal   `json:"totalExtras"`
	NetProfit            *decimal.Decimal  `json:"netProfit"`
	Financials           MonthlyFinancials `json:"financials"`
	Extras               []ExtraExpense    `json:"extras"`
	ByClient             []CostGroup       `json:"byClient"`
	ByMember             []CostGroup       `json:"byMember"`
	BySquad              []CostGroup       `json:"bySquad"`
	ByRole               []CostGroup       `json:"byRole"`
}

// ClientCostSummary is the per-client cost detail for one period.
type ClientCostSummary struct {
	ClientID      string           `json:"clientID"`
	ClientName    string           `json:"clientName"`
	TotalMonthly  decimal.Decimal  `json:"totalMonthly"`
	TotalProrated decimal.Decimal  `json:"totalProrated"`
	Allocations   []AllocationCost `json:"allocations"`
}

// BillableClient carries the fields receivable totals are computed from.
type BillableClient struct {
	ClientID     string          `json:"clientID" db:"client_id"`
	Name         string          `json:"name" db:"name"`
	MonthlyValue decimal.Decimal `json:"monthlyValue" db:"monthly_value"`
}
