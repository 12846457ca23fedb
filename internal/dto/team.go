package dto

import (
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSquadRequest is the payload for creating a squad.
type CreateSquadRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

// UpdateSquadRequest patches a squad.
type UpdateSquadRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// CreateMemberRequest is the payload for adding a team member.
type CreateMemberRequest struct {
	Name      string               `json:"name" binding:"required,max=255"`
	RoleTitle string               `json:"roleTitle" binding:"required,max=255"`
	UserID    *string              `json:"userID"`
	SquadID   *string              `json:"squadID"`
	Status    *domain.MemberStatus `json:"status" binding:"omitempty,oneof=active inactive vacation"`
	Email     *string              `json:"email" binding:"omitempty,email"`
	Phone     *string              `json:"phone" binding:"omitempty,max=50"`
}

// UpdateMemberRequest patches a team member.
type UpdateMemberRequest struct {
	Name      *string              `json:"name" binding:"omitempty,max=255"`
	RoleTitle *string              `json:"roleTitle" binding:"omitempty,max=255"`
	UserID    *string              `json:"userID"`
	SquadID   *string              `json:"squadID"`
	Status    *domain.MemberStatus `json:"status" binding:"omitempty,oneof=active inactive vacation"`
	Email     *string              `json:"email" binding:"omitempty,email"`
	Phone     *string              `json:"phone" binding:"omitempty,max=50"`
}

// CreateAllocationRequest assigns a member to a client. Dates use YYYY-MM-DD.
type CreateAllocationRequest struct {
	MemberID    string          `json:"memberID" binding:"required"`
	ClientID    string          `json:"clientID" binding:"required"`
	MonthlyRate decimal.Decimal `json:"monthlyRate" binding:"required"`
	StartDate   string          `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     *string         `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateAllocationRequest patches an allocation's rate or date range.
type UpdateAllocationRequest struct {
	MonthlyRate *decimal.Decimal `json:"monthlyRate"`
	StartDate   *string          `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string          `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	// ClearEndDate reopens an allocation by dropping its end date.
	ClearEndDate bool `json:"clearEndDate"`
}
