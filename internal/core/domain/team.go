package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberStatus tracks a team member's availability.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
	MemberVacation MemberStatus = "vacation"
)

// Squad is a staffing grouping of team members, used for cost rollups and
// manager-scoped visibility.
type Squad struct {
	SquadID     string    `json:"squadID" db:"squad_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// MembersCount is enriched on reads, not stored.
	MembersCount int `json:"membersCount" db:"-"`
}

// TeamMember is a staffable person. UserID links the member to a platform account
// for collaborator-scoped visibility; it is optional.
type TeamMember struct {
	MemberID  string       `json:"memberID" db:"member_id"`
	UserID    *string      `json:"userID" db:"user_id"`
	Name      string       `json:"name" db:"name"`
	RoleTitle string       `json:"roleTitle" db:"role_title"`
	SquadID   *string      `json:"squadID" db:"squad_id"`
	Status    MemberStatus `json:"status" db:"status"`
	Email     *string      `json:"email" db:"email"`
	Phone     *string      `json:"phone" db:"phone"`
	Timestamps

	// SquadName is enriched on detail reads.
	SquadName *string `json:"squadName,omitempty" db:"-"`
}

// StaffingAllocation assigns a member to a client at a fixed monthly rate over a
// date range. EndDate nil means open-ended. At most one allocation may exist per
// (member, client) pair and per (role title, client) pair.
type StaffingAllocation struct {
	AllocationID string          `json:"allocationID" db:"allocation_id"`
	MemberID     string          `json:"memberID" db:"member_id"`
	ClientID     string          `json:"clientID" db:"client_id"`
	MonthlyRate  decimal.Decimal `json:"monthlyRate" db:"monthly_rate"`
	StartDate    time.Time       `json:"startDate" db:"start_date"`
	EndDate      *time.Time      `json:"endDate" db:"end_date"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`

	// Enriched on reads.
	MemberName string `json:"memberName,omitempty" db:"-"`
	ClientName string `json:"clientName,omitempty" db:"-"`
}

// AllocationCostInput is an allocation joined with the member, squad and client
// attributes the financial rollup groups by.
type AllocationCostInput struct {
	AllocationID string          `json:"allocationID" db:"allocation_id"`
	MemberID     string          `json:"memberID" db:"member_id"`
	MemberName   string          `json:"memberName" db:"member_name"`
	RoleTitle    string          `json:"roleTitle" db:"role_title"`
	SquadID      *string         `json:"squadID" db:"squad_id"`
	SquadName    *string         `json:"squadName" db:"squad_name"`
	ClientID     string          `json:"clientID" db:"client_id"`
	ClientName   string          `json:"clientName" db:"client_name"`
	MonthlyRate  decimal.Decimal `json:"monthlyRate" db:"monthly_rate"`
	StartDate    time.Time       `json:"startDate" db:"start_date"`
	EndDate      *time.Time      `json:"endDate" db:"end_date"`
}
