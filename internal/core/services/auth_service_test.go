package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/core/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const testTokenSecret = "test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAuthService(
		suite.mockUserRepo,
		testTokenSecret,
		24*time.Hour,
		services.WithAuthClock(services.FixedClock{T: testNow}),
	)
}

func (suite *AuthServiceTestSuite) activeUser(password string) *domain.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:         "user-1",
		Email:          "ana@agency.test",
		Name:           "Ana",
		HashedPassword: string(hashed),
		Role:           domain.RoleCollaborator,
		IsActive:       true,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_IssuesSignedToken() {
	ctx := context.Background()
	user := suite.activeUser("s3cret")
	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	token, loggedIn, err := suite.service.Login(ctx, user.Email, "s3cret")

	suite.NoError(err)
	suite.Equal(user.UserID, loggedIn.UserID)

	// Claim validation runs against the same fixed clock the service signed with,
	// so the asserted exp is never in the parser's past.
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testTokenSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return testNow }))
	suite.NoError(err)
	claims := parsed.Claims.(jwt.MapClaims)
	suite.Equal(user.UserID, claims["sub"])
	suite.Equal(string(domain.RoleCollaborator), claims["role"])
	suite.EqualValues(testNow.Unix(), claims["iat"])
	suite.EqualValues(testNow.Add(24*time.Hour).Unix(), claims["exp"])
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPasswordLooksLikeUnknownEmail() {
	ctx := context.Background()
	user := suite.activeUser("s3cret")
	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@agency.test").
		Return(nil, apperrors.NewNotFoundError("user not found")).Once()

	_, _, badPassword := suite.service.Login(ctx, user.Email, "wrong")
	_, _, unknownEmail := suite.service.Login(ctx, "nobody@agency.test", "wrong")

	suite.ErrorIs(badPassword, apperrors.ErrValidation)
	suite.ErrorIs(unknownEmail, apperrors.ErrValidation)
	suite.Equal(badPassword.Error(), unknownEmail.Error())
}

func (suite *AuthServiceTestSuite) TestLogin_DisabledAccountIsForbidden() {
	ctx := context.Background()
	user := suite.activeUser("s3cret")
	user.IsActive = false
	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, _, err := suite.service.Login(ctx, user.Email, "s3cret")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
