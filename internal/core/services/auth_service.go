package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	BaseService
	userRepo    portsrepo.UserRepository
	tokenSecret []byte
	tokenExpiry time.Duration
	tokenIssuer string
}

// AuthServiceOption is a functional option for configuring the auth service.
type AuthServiceOption func(*authService)

// WithAuthIssuer sets the iss claim on issued tokens.
func WithAuthIssuer(issuer string) AuthServiceOption {
	return func(s *authService) {
		s.tokenIssuer = issuer
	}
}

// WithAuthClock overrides the clock used for token issuance timestamps.
func WithAuthClock(clock Clock) AuthServiceOption {
	return func(s *authService) {
		s.clock = clock
	}
}

// NewAuthService creates the credential verification and token issuance service.
func NewAuthService(userRepo portsrepo.UserRepository, tokenSecret string, tokenExpiry time.Duration, options ...AuthServiceOption) portssvc.AuthService {
	svc := &authService{
		userRepo:    userRepo,
		tokenSecret: []byte(tokenSecret),
		tokenExpiry: tokenExpiry,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuthService = (*authService)(nil)

// Login verifies the credentials and returns a signed bearer token with the
// user. Unknown emails and bad passwords produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.NewValidationFailedError("invalid email or password")
	}
	if !user.IsActive {
		return "", nil, apperrors.NewForbiddenError("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", nil, apperrors.NewValidationFailedError("invalid email or password")
	}

	now := s.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenExpiry).Unix(),
	}
	if s.tokenIssuer != "" {
		claims["iss"] = s.tokenIssuer
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokenSecret)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("user_id", user.UserID))
		return "", nil, err
	}
	return token, user, nil
}
