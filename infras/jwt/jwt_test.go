package jwt_test

import (
	"testing"
	"time"

	jwtGo "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serenity/config"
	"serenity/infras/jwt"
)

const testSecret = "test-access-secret"

func newTestService() jwt.JWT {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = testSecret

	return jwt.New(cfg)
}

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()

	token, err := jwtGo.NewWithClaims(jwtGo.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func accessClaims(expiresAt time.Time) jwt.Claims {
	return jwt.Claims{
		UserID:  "user-1",
		Email:   "admin@example.com",
		Role:    "admin",
		TokenID: "token-1",
		Type:    jwt.AccessToken,
		RegisteredClaims: jwtGo.RegisteredClaims{
			ExpiresAt: jwtGo.NewNumericDate(expiresAt),
			Subject:   "user-1",
		},
	}
}

func TestValidateToken(t *testing.T) {
	svc := newTestService()

	t.Run("valid access token", func(t *testing.T) {
		token := signToken(t, testSecret, accessClaims(time.Now().Add(time.Hour)))

		claims, err := svc.ValidateToken(token, jwt.AccessToken)

		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "admin@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, accessClaims(time.Now().Add(-time.Hour)))

		_, err := svc.ValidateToken(token, jwt.AccessToken)

		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong signature", func(t *testing.T) {
		token := signToken(t, "some-other-secret", accessClaims(time.Now().Add(time.Hour)))

		_, err := svc.ValidateToken(token, jwt.AccessToken)

		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("non-access token type claim rejected", func(t *testing.T) {
		claims := accessClaims(time.Now().Add(time.Hour))
		claims.Type = "refresh"

		token := signToken(t, testSecret, claims)

		_, err := svc.ValidateToken(token, jwt.AccessToken)

		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("unknown expected token type", func(t *testing.T) {
		token := signToken(t, testSecret, accessClaims(time.Now().Add(time.Hour)))

		_, err := svc.ValidateToken(token, jwt.TokenType("refresh"))

		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}
