package domain

import "time"

// MeetingType distinguishes squad dailies from one-on-one client check-ins.
type MeetingType string

const (
	MeetingDaily    MeetingType = "daily"
	MeetingOneOnOne MeetingType = "one_on_one"
)

// Meeting is a logged client meeting. A provided health score also updates the
// client's current HealthScore at creation time.
type Meeting struct {
	MeetingID   string      `json:"meetingID" db:"meeting_id"`
	MeetingType MeetingType `json:"meetingType" db:"meeting_type"`
	ClientID    string      `json:"clientID" db:"client_id"`
	SquadID     *string     `json:"squadID" db:"squad_id"`
	MemberID    *string     `json:"memberID" db:"member_id"`
	HealthScore *float64    `json:"healthScore" db:"health_score"`
	Notes       *string     `json:"notes" db:"notes"`
	CreatedBy   *string     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`

	// Enriched on reads.
	ClientName string  `json:"clientName,omitempty" db:"-"`
	MemberName *string `json:"memberName,omitempty" db:"-"`
}
