package dto

import "github.com/shopspring/decimal"

// UpdateMonthlyFinancialsRequest records the manually entered figures for a
// period; nil fields are left untouched.
type UpdateMonthlyFinancialsRequest struct {
	TotalReceived   *decimal.Decimal `json:"totalReceived"`
	TaxAmount       *decimal.Decimal `json:"taxAmount"`
	MarketingAmount *decimal.Decimal `json:"marketingAmount"`
}

// CreateExtraExpenseRequest adds an ad hoc expense to a period.
type CreateExtraExpenseRequest struct {
	Month       int             `json:"month" binding:"required,min=1,max=12"`
	Year        int             `json:"year" binding:"required,min=2000,max=9999"`
	Description string          `json:"description" binding:"required,max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate *string         `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	Category    *string         `json:"category" binding:"omitempty,max=100"`
	Notes       *string         `json:"notes"`
}

// UpdateExtraExpenseRequest patches an expense.
type UpdateExtraExpenseRequest struct {
	Month       *int             `json:"month" binding:"omitempty,min=1,max=12"`
	Year        *int             `json:"year" binding:"omitempty,min=2000,max=9999"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount"`
	PaymentDate *string          `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Notes       *string          `json:"notes"`
}
