package services

import (
	"context"
	"log/slog"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/google/uuid"
)

type meetingService struct {
	BaseService
	meetingRepo portsrepo.MeetingRepository
	clientRepo  portsrepo.ClientRepository
	scopePolicy portssvc.ScopePolicy
}

// MeetingServiceOption is a functional option for configuring the meeting service.
type MeetingServiceOption func(*meetingService)

// WithMeetingClock overrides the clock used for meeting timestamps.
func WithMeetingClock(clock Clock) MeetingServiceOption {
	return func(s *meetingService) {
		s.clock = clock
	}
}

// NewMeetingService creates the meeting log service.
func NewMeetingService(meetingRepo portsrepo.MeetingRepository, clientRepo portsrepo.ClientRepository, scopePolicy portssvc.ScopePolicy, options ...MeetingServiceOption) portssvc.MeetingService {
	svc := &meetingService{
		meetingRepo: meetingRepo,
		clientRepo:  clientRepo,
		scopePolicy: scopePolicy,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MeetingService = (*meetingService)(nil)

// CreateMeeting logs a meeting. A provided health score also becomes the
// client's current score.
func (s *meetingService) CreateMeeting(ctx context.Context, req dto.CreateMeetingRequest, creatorUserID string) (*domain.Meeting, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	meeting := domain.Meeting{
		MeetingID:   uuid.NewString(),
		MeetingType: req.MeetingType,
		ClientID:    req.ClientID,
		SquadID:     req.SquadID,
		MemberID:    req.MemberID,
		HealthScore: req.HealthScore,
		Notes:       req.Notes,
		CreatedBy:   &creatorUserID,
		CreatedAt:   s.Now(),
	}
	if err := s.meetingRepo.SaveMeeting(ctx, meeting); err != nil {
		s.LogError(ctx, err, "Failed to save meeting", slog.String("client_id", req.ClientID))
		return nil, err
	}

	if req.HealthScore != nil {
		if err := s.clientRepo.UpdateClientHealthScore(ctx, req.ClientID, *req.HealthScore); err != nil {
			s.LogError(ctx, err, "Failed to update client health score",
				slog.String("client_id", req.ClientID))
		}
	}
	return &meeting, nil
}

func (s *meetingService) ListMeetings(ctx context.Context, clientID *string, meetingType *domain.MeetingType, caller domain.Caller) ([]domain.Meeting, error) {
	scope, err := s.scopePolicy.ScopeFor(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.meetingRepo.ListMeetings(ctx, clientID, meetingType, scope)
}
