package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatus tracks where a client sits in the agency relationship lifecycle.
type ClientStatus string

const (
	ClientActive     ClientStatus = "active"
	ClientInactive   ClientStatus = "inactive"
	ClientOnboarding ClientStatus = "onboarding"
	ClientChurned    ClientStatus = "churned"
)

// Client is an agency client account. MonthlyValue feeds the receivable figure on
// financial summaries for active/onboarding clients; HealthScore is updated as a
// side effect of meeting logging.
type Client struct {
	ClientID        string           `json:"clientID" db:"client_id"`
	Name            string           `json:"name" db:"name"`
	Company         *string          `json:"company" db:"company"`
	TaxID           *string          `json:"taxID" db:"tax_id"`
	ResponsibleName *string          `json:"responsibleName" db:"responsible_name"`
	Phone           *string          `json:"phone" db:"phone"`
	Email           *string          `json:"email" db:"email"`
	Segment         *string          `json:"segment" db:"segment"`
	Status          ClientStatus     `json:"status" db:"status"`
	Instagram       *string          `json:"instagram" db:"instagram"`
	Website         *string          `json:"website" db:"website"`
	Notes           *string          `json:"notes" db:"notes"`
	StartDate       *time.Time       `json:"startDate" db:"start_date"`
	EndDate         *time.Time       `json:"endDate" db:"end_date"`
	MonthlyValue    *decimal.Decimal `json:"monthlyValue" db:"monthly_value"`
	MinContractMths *int             `json:"minContractMonths" db:"min_contract_months"`
	OperationalCost *decimal.Decimal `json:"operationalCost" db:"operational_cost"`
	HealthScore     *float64         `json:"healthScore" db:"health_score"`
	CreatedBy       *string          `json:"createdBy" db:"created_by"`
	Timestamps
}
