//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"stayflow/internal/domain/user"
	"stayflow/internal/pkg/jwt"
	"stayflow/internal/pkg/password"
	"stayflow/internal/usecase/commands"
	"stayflow/internal/usecase/queries"
	queriesmock "stayflow/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	readStore  *queriesmock.MockUserReadStore
	jwtService *jwt.Service
	commands   commands.AuthCommands
	ctx        context.Context
}

func TestAuthCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.readStore = queriesmock.NewMockUserReadStore(s.ctrl)
	s.jwtService = jwt.NewService("test-secret-key", 15*time.Minute, 24*time.Hour)
	s.commands = commands.NewAuthCommands(s.readStore, s.jwtService)
	s.ctx = context.Background()
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthCommandsTestSuite) activeHost() (*queries.AuthorizedUserView, string) {
	hashed, err := password.HashPassword("secret-password-123")
	s.Require().NoError(err)
	return &queries.AuthorizedUserView{
		ID:       uuid.New(),
		Email:    "host@example.com",
		Role:     "host",
		IsActive: true,
	}, hashed
}

func (s *AuthCommandsTestSuite) TestLogin_Success() {
	view, hashed := s.activeHost()

	s.readStore.EXPECT().FindByEmail(s.ctx, gomock.Any()).Return(view, hashed, nil)
	s.readStore.EXPECT().UpdateLastLogin(s.ctx, view.ID).Return(nil)

	result, err := s.commands.Login(s.ctx, "host@example.com", "secret-password-123")

	s.Require().NoError(err)
	s.Equal(view.ID, result.UserID)
	s.Equal("host", result.Role)
	s.Require().NotNil(result.TokenPair)
	s.NotEmpty(result.TokenPair.AccessToken)
	s.NotEmpty(result.TokenPair.RefreshToken)

	claims, err := s.jwtService.ValidateToken(result.TokenPair.AccessToken)
	s.Require().NoError(err)
	s.Equal(view.ID, claims.UserID)
	s.Equal("host", claims.Role)
}

func (s *AuthCommandsTestSuite) TestLogin_WrongPassword() {
	view, hashed := s.activeHost()
	s.readStore.EXPECT().FindByEmail(s.ctx, gomock.Any()).Return(view, hashed, nil)

	_, err := s.commands.Login(s.ctx, "host@example.com", "not-the-password")

	s.ErrorIs(err, commands.ErrInvalidCredentials)
}

func (s *AuthCommandsTestSuite) TestLogin_UnknownEmailLooksLikeBadPassword() {
	s.readStore.EXPECT().FindByEmail(s.ctx, gomock.Any()).
		Return(nil, "", context.DeadlineExceeded)

	_, err := s.commands.Login(s.ctx, "nobody@example.com", "secret-password-123")

	s.ErrorIs(err, commands.ErrInvalidCredentials)
}

func (s *AuthCommandsTestSuite) TestLogin_InactiveUser() {
	view, hashed := s.activeHost()
	view.IsActive = false
	s.readStore.EXPECT().FindByEmail(s.ctx, gomock.Any()).Return(view, hashed, nil)

	_, err := s.commands.Login(s.ctx, "host@example.com", "secret-password-123")

	s.ErrorIs(err, commands.ErrUserInactive)
}

func (s *AuthCommandsTestSuite) TestLogin_MalformedCredentials() {
	_, err := s.commands.Login(s.ctx, "not-an-email", "secret-password-123")
	s.ErrorIs(err, commands.ErrAuthenticationFailed)
}

func (s *AuthCommandsTestSuite) TestLogin_LastLoginFailureIsNotFatal() {
	view, hashed := s.activeHost()
	s.readStore.EXPECT().FindByEmail(s.ctx, gomock.Any()).Return(view, hashed, nil)
	s.readStore.EXPECT().UpdateLastLogin(s.ctx, view.ID).Return(context.DeadlineExceeded)

	result, err := s.commands.Login(s.ctx, "host@example.com", "secret-password-123")

	s.NoError(err)
	s.NotNil(result)
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	userID := uuid.New()
	pair, err := s.jwtService.GenerateTokenPair(userID, user.RoleHost)
	s.Require().NoError(err)

	s.Run("issues a fresh pair for an active user", func() {
		s.readStore.EXPECT().FindByID(s.ctx, userID).
			Return(&queries.AuthorizedUserView{ID: userID, Role: "host", IsActive: true}, nil)

		fresh, err := s.commands.RefreshToken(s.ctx, pair.RefreshToken)

		s.Require().NoError(err)
		claims, err := s.jwtService.ValidateToken(fresh.AccessToken)
		s.Require().NoError(err)
		s.Equal(userID, claims.UserID)
	})

	s.Run("rejects an access token used as refresh token", func() {
		_, err := s.commands.RefreshToken(s.ctx, pair.AccessToken)
		s.ErrorIs(err, commands.ErrTokenValidation)
	})

	s.Run("rejects garbage", func() {
		_, err := s.commands.RefreshToken(s.ctx, "not.a.token")
		s.ErrorIs(err, commands.ErrTokenValidation)
	})

	s.Run("rejects a deactivated user", func() {
		s.readStore.EXPECT().FindByID(s.ctx, userID).
			Return(&queries.AuthorizedUserView{ID: userID, Role: "host", IsActive: false}, nil)

		_, err := s.commands.RefreshToken(s.ctx, pair.RefreshToken)
		s.ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("rejects a deleted user", func() {
		s.readStore.EXPECT().FindByID(s.ctx, userID).Return(nil, nil)

		_, err := s.commands.RefreshToken(s.ctx, pair.RefreshToken)
		s.ErrorIs(err, commands.ErrUserNotFound)
	})
}
