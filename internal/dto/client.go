package dto

import (
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClientRequest is the payload for registering a new client.
type CreateClientRequest struct {
	Name            string               `json:"name" binding:"required,max=255"`
	Company         *string              `json:"company" binding:"omitempty,max=255"`
	TaxID           *string              `json:"taxID" binding:"omitempty,max=20"`
	ResponsibleName *string              `json:"responsibleName" binding:"omitempty,max=255"`
	Phone           *string              `json:"phone" binding:"omitempty,max=50"`
	Email           *string              `json:"email" binding:"omitempty,email"`
	Segment         *string              `json:"segment" binding:"omitempty,max=100"`
	Status          *domain.ClientStatus `json:"status" binding:"omitempty,oneof=active inactive onboarding churned"`
	Instagram       *string              `json:"instagram" binding:"omitempty,max=255"`
	Website         *string              `json:"website" binding:"omitempty,max=500"`
	Notes           *string              `json:"notes"`
	StartDate       *string              `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate         *string              `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	MonthlyValue    *decimal.Decimal     `json:"monthlyValue"`
	MinContractMths *int                 `json:"minContractMonths" binding:"omitempty,min=0"`
	OperationalCost *decimal.Decimal     `json:"operationalCost"`
}

// UpdateClientRequest patches a client; nil fields are left untouched.
type UpdateClientRequest struct {
	Name            *string              `json:"name" binding:"omitempty,max=255"`
	Company         *string              `json:"company" binding:"omitempty,max=255"`
	TaxID           *string              `json:"taxID" binding:"omitempty,max=20"`
	ResponsibleName *string              `json:"responsibleName" binding:"omitempty,max=255"`
	Phone           *string              `json:"phone" binding:"omitempty,max=50"`
	Email           *string              `json:"email" binding:"omitempty,email"`
	Segment         *string              `json:"segment" binding:"omitempty,max=100"`
	Status          *domain.ClientStatus `json:"status" binding:"omitempty,oneof=active inactive onboarding churned"`
	Instagram       *string              `json:"instagram" binding:"omitempty,max=255"`
	Website         *string              `json:"website" binding:"omitempty,max=500"`
	Notes           *string              `json:"notes"`
	StartDate       *string              `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate         *string              `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	MonthlyValue    *decimal.Decimal     `json:"monthlyValue"`
	MinContractMths *int                 `json:"minContractMonths" binding:"omitempty,min=0"`
	OperationalCost *decimal.Decimal     `json:"operationalCost"`
	HealthScore     *float64             `json:"healthScore" binding:"omitempty,min=0,max=10"`
}
