package repositories

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// ClientRepository persists agency client records.
type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, status *domain.ClientStatus) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error
	DeleteClient(ctx context.Context, clientID string) error
	UpdateClientHealthScore(ctx context.Context, clientID string, score float64) error
	ListBillableClients(ctx context.Context) ([]domain.BillableClient, error)
}
