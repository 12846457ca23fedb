package domain

import "github.com/shopspring/decimal"

// DashboardStats is the read-only cross-module count set shown on the home
// dashboard, scoped for non-administrator callers.
type DashboardStats struct {
	ClientsTotal      int `json:"clientsTotal"`
	ClientsActive     int `json:"clientsActive"`
	ClientsOnboarding int `json:"clientsOnboarding"`
	ClientsChurned    int `json:"clientsChurned"`
	ClientsInactive   int `json:"clientsInactive"`

	TotalReceivable decimal.Decimal `json:"totalReceivable"`

	MembersActive int `json:"membersActive"`
	MembersTotal  int `json:"membersTotal"`
	SquadsTotal   int `json:"squadsTotal"`

	DemandsBacklog    int `json:"demandsBacklog"`
	DemandsTodo       int `json:"demandsTodo"`
	DemandsInProgress int `json:"demandsInProgress"`
	DemandsInReview   int `json:"demandsInReview"`
	DemandsDone       int `json:"demandsDone"`
	DemandsOverdue    int `json:"demandsOverdue"`

	MeetingsThisMonth int `json:"meetingsThisMonth"`
}
