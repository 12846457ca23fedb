package repositories

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// UserRepository persists platform accounts used by login and caller resolution.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
