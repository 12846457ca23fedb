package dto

import "github.com/rqos/agency-ops-backend/internal/core/domain"

// CreateMeetingRequest logs a client meeting. A provided health score also
// updates the client's current score.
type CreateMeetingRequest struct {
	MeetingType domain.MeetingType `json:"meetingType" binding:"required,oneof=daily one_on_one"`
	ClientID    string             `json:"clientID" binding:"required"`
	SquadID     *string            `json:"squadID"`
	MemberID    *string            `json:"memberID"`
	HealthScore *float64           `json:"healthScore" binding:"omitempty,min=0,max=10"`
	Notes       *string            `json:"notes"`
}
