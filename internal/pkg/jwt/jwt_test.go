//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"stayflow/internal/domain/user"
	"stayflow/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTokenPair(t *testing.T) (*jwt.Service, *jwt.TokenPair) {
	t.Helper()
	svc := jwt.NewService("test-secret-key", 15*time.Minute, 24*time.Hour)
	pair, err := svc.GenerateTokenPair(uuid.New(), user.RoleHost)
	require.NoError(t, err)
	return svc, pair
}

func TestValidateAccessToken(t *testing.T) {
	svc, pair := newTokenPair(t)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "access", claims.TokenType)
	require.Equal(t, user.RoleHost.String(), claims.Role)
}

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	svc, pair := newTokenPair(t)

	_, err := svc.ValidateAccessToken(pair.RefreshToken)
	require.ErrorIs(t, err, jwt.ErrNotAccess)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, pair := newTokenPair(t)

	_, err := svc.ValidateRefreshToken(pair.AccessToken)
	require.ErrorIs(t, err, jwt.ErrNotRefresh)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	_, pair := newTokenPair(t)

	other := jwt.NewService("another-secret", 15*time.Minute, 24*time.Hour)
	_, err := other.ValidateAccessToken(pair.AccessToken)
	require.ErrorIs(t, err, jwt.ErrInvalidToken)
}
