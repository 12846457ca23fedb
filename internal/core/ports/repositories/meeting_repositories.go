package repositories

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// MeetingRepository persists logged client meetings.
type MeetingRepository interface {
	SaveMeeting(ctx context.Context, meeting domain.Meeting) error
	ListMeetings(ctx context.Context, clientID *string, meetingType *domain.MeetingType, scope *domain.Scope) ([]domain.Meeting, error)
}
