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

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepository
}

// ClientServiceOption is a functional option for configuring the client service.
type ClientServiceOption func(*clientService)

// WithClientClock overrides the clock used for audit timestamps.
func WithClientClock(clock Clock) ClientServiceOption {
	return func(s *clientService) {
		s.clock = clock
	}
}

// NewClientService creates the client management service.
func NewClientService(clientRepo portsrepo.ClientRepository, options ...ClientServiceOption) portssvc.ClientService {
	svc := &clientService{clientRepo: clientRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ClientService = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	status := domain.ClientOnboarding
	if req.Status != nil {
		status = *req.Status
	}
	client := domain.Client{
		ClientID:        uuid.NewString(),
		Name:            req.Name,
		Company:         req.Company,
		TaxID:           req.TaxID,
		ResponsibleName: req.ResponsibleName,
		Phone:           req.Phone,
		Email:           req.Email,
		Segment:         req.Segment,
		Status:          status,
		Instagram:       req.Instagram,
		Website:         req.Website,
		Notes:           req.Notes,
		StartDate:       startDate,
		EndDate:         endDate,
		MonthlyValue:    req.MonthlyValue,
		MinContractMths: req.MinContractMths,
		OperationalCost: req.OperationalCost,
		CreatedBy:       &creatorUserID,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context, status *domain.ClientStatus) ([]domain.Client, error) {
	return s.clientRepo.ListClients(ctx, status)
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Company != nil {
		client.Company = req.Company
	}
	if req.TaxID != nil {
		client.TaxID = req.TaxID
	}
	if req.ResponsibleName != nil {
		client.ResponsibleName = req.ResponsibleName
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Segment != nil {
		client.Segment = req.Segment
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	if req.Instagram != nil {
		client.Instagram = req.Instagram
	}
	if req.Website != nil {
		client.Website = req.Website
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}
	if req.StartDate != nil {
		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		client.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		client.EndDate = endDate
	}
	if req.MonthlyValue != nil {
		client.MonthlyValue = req.MonthlyValue
	}
	if req.MinContractMths != nil {
		client.MinContractMths = req.MinContractMths
	}
	if req.OperationalCost != nil {
		client.OperationalCost = req.OperationalCost
	}
	if req.HealthScore != nil {
		client.HealthScore = req.HealthScore
	}
	client.UpdatedAt = s.Now()
	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string) error {
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return err
	}
	return s.clientRepo.DeleteClient(ctx, clientID)
}
