package services

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/rqos/agency-ops-backend/internal/dto"
)

// MeetingService logs and lists client meetings, updating the client health
// score as a side effect when one is provided.
type MeetingService interface {
	CreateMeeting(ctx context.Context, req dto.CreateMeetingRequest, creatorUserID string) (*domain.Meeting, error)
	ListMeetings(ctx context.Context, clientID *string, meetingType *domain.MeetingType, caller domain.Caller) ([]domain.Meeting, error)
}
