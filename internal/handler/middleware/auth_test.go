//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"stayflow/internal/domain/user"
	"stayflow/internal/handler/middleware"
	"stayflow/internal/pkg/jwt"
	"stayflow/internal/usecase"
	commonhttptest "stayflow/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	jwtService *jwt.Service
	router     *gin.Engine
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwtService = jwt.NewService("test-secret-key", 15*time.Minute, 24*time.Hour)
	authMW := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwtService))

	s.router = gin.New()
	s.router.GET("/whoami", authMW.RequireAuth(), func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		s.Require().True(ok)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.ID.String(), "role": string(actor.Role)})
	})
	s.router.GET("/host-only", authMW.RequireAuth(), authMW.RequireRoleAtLeast(user.RoleHost), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

func (s *AuthMiddlewareTestSuite) tokenFor(role user.Role) (uuid.UUID, string) {
	id := uuid.New()
	pair, err := s.jwtService.GenerateTokenPair(id, role)
	s.Require().NoError(err)
	return id, pair.AccessToken
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("valid bearer token", func() {
		id, token := s.tokenFor(user.RoleHost)

		w := commonhttptest.PerformRequest(s.T(), s.router, http.MethodGet, "/whoami", nil, token)

		var resp map[string]string
		commonhttptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(id.String(), resp["user_id"])
		s.Equal("host", resp["role"])
	})

	s.Run("missing token", func() {
		w := commonhttptest.PerformRequest(s.T(), s.router, http.MethodGet, "/whoami", nil, "")
		commonhttptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("garbage token", func() {
		w := commonhttptest.PerformRequest(s.T(), s.router, http.MethodGet, "/whoami", nil, "not.a.token")
		commonhttptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("refresh token rejected for API access", func() {
		id := uuid.New()
		pair, err := s.jwtService.GenerateTokenPair(id, user.RoleHost)
		s.Require().NoError(err)

		w := commonhttptest.PerformRequest(s.T(), s.router, http.MethodGet, "/whoami", nil, pair.RefreshToken)
		commonhttptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("token signed with another key", func() {
		other := jwt.NewService("different-secret", 15*time.Minute, 24*time.Hour)
		pair, err := other.GenerateTokenPair(uuid.New(), user.RoleHost)
		s.Require().NoError(err)

		w := commonhttptest.PerformRequest(s.T(), s.router, http.MethodGet, "/whoami", nil, pair.AccessToken)
		commonhttptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	s.Run("host passes the host gate", func() {
		_, token := s.tokenFor(user.RoleHost)
		w := commonhttptest.PerformRequest(s.T(), s.router, http.MethodGet, "/host-only", nil, token)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("admin outranks host", func() {
		_, token := s.tokenFor(user.RoleAdmin)
		w := commonhttptest.PerformRequest(s.T(), s.router, http.MethodGet, "/host-only", nil, token)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("guest is rejected", func() {
		_, token := s.tokenFor(user.RoleGuest)
		w := commonhttptest.PerformRequest(s.T(), s.router, http.MethodGet, "/host-only", nil, token)
		commonhttptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})
}
