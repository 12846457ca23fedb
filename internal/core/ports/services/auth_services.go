package services

import (
	"context"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
)

// AuthService verifies credentials and issues the bearer tokens the
// middleware later validates.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
