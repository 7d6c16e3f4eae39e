package jwt_test

import (
	"testing"
	"time"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService(t *testing.T) {
	svc := jwt.NewJWTServiceWithSecret("test-secret")

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateTokenUser("user-1", "ADMIN")
		require.NoError(t, err)

		id, role, err := svc.GetUserIDByToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", id)
		assert.Equal(t, "ADMIN", role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewJWTServiceWithSecret("other").GenerateTokenUser("user-1", "USER")
		require.NoError(t, err)

		_, _, err = svc.GetUserIDByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		claims := gojwt.MapClaims{
			"user_id": "user-1",
			"role":    "USER",
			"exp":     time.Now().Add(-time.Minute).Unix(),
		}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, _, err = svc.GetUserIDByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := svc.GetUserIDByToken("not-a-token")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})
}
