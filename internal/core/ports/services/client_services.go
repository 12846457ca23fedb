package services

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/rqos/agency-ops-backend/internal/dto"
)

// ClientService manages agency client records.
type ClientService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, status *domain.ClientStatus) ([]domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, clientID string) error
}
