package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dentalreach/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "unit-test-secret"

func mintToken(t *testing.T, mutate func(jwt.MapClaims)) string {
	t.Helper()

	claims := jwt.MapClaims{
		"iss": "dentalreach-api",
		"aud": "dentalreach-client",
		"sub": "42",
		"jti": "token-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func newAuthTestServer() *Server {
	return &Server{config: &config.Config{JWTSecret: testJWTSecret}}
}

func TestValidateAccessToken(t *testing.T) {
	s := newAuthTestServer()
	ctx := context.Background()

	tests := []struct {
		name        string
		token       string
		expectedID  uint
		expectedErr string
	}{
		{
			name:       "valid token",
			token:      mintToken(t, nil),
			expectedID: 42,
		},
		{
			name:        "wrong issuer",
			token:       mintToken(t, func(c jwt.MapClaims) { c["iss"] = "someone-else" }),
			expectedErr: "Invalid token issuer",
		},
		{
			name:        "wrong audience",
			token:       mintToken(t, func(c jwt.MapClaims) { c["aud"] = "other-client" }),
			expectedErr: "Invalid token audience",
		},
		{
			name:        "missing subject",
			token:       mintToken(t, func(c jwt.MapClaims) { delete(c, "sub") }),
			expectedErr: "Invalid subject claim",
		},
		{
			name:        "non-numeric subject",
			token:       mintToken(t, func(c jwt.MapClaims) { c["sub"] = "not-a-number" }),
			expectedErr: "Invalid user ID in token",
		},
		{
			name:        "expired token",
			token:       mintToken(t, func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() }),
			expectedErr: "Invalid or expired token",
		},
		{
			name:        "garbage token",
			token:       "not.a.jwt",
			expectedErr: "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, appErr := s.validateAccessToken(ctx, tt.token)
			if tt.expectedErr != "" {
				require.NotNil(t, appErr)
				assert.Equal(t, tt.expectedErr, appErr.Message)
				assert.Zero(t, userID)
			} else {
				require.Nil(t, appErr)
				assert.Equal(t, tt.expectedID, userID)
			}
		})
	}
}

func TestValidateAccessTokenRevokedJTI(t *testing.T) {
	mr := miniredis.RunT(t)
	s := newAuthTestServer()
	s.redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	token := mintToken(t, func(c jwt.MapClaims) { c["jti"] = "revoked-1" })
	require.NoError(t, mr.Set("blacklist:revoked-1", "1"))

	userID, appErr := s.validateAccessToken(context.Background(), token)
	require.NotNil(t, appErr)
	assert.Equal(t, "Token has been revoked", appErr.Message)
	assert.Zero(t, userID)
}

// optionalUserID shares the full claim validation with the mandatory path,
// so a token a protected route would reject never yields an identity here.
func TestOptionalUserIDEnforcesFullClaimSet(t *testing.T) {
	s := newAuthTestServer()

	app := fiber.New()
	app.Get("/check", func(c *fiber.Ctx) error {
		id, ok := s.optionalUserID(c)
		return c.JSON(fiber.Map{"id": id, "ok": ok})
	})

	call := func(t *testing.T, authorization string) (uint, bool) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/check", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body struct {
			ID uint `json:"id"`
			OK bool `json:"ok"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body.ID, body.OK
	}

	id, ok := call(t, "Bearer "+mintToken(t, nil))
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = call(t, "")
	assert.False(t, ok)

	_, ok = call(t, "Bearer "+mintToken(t, func(c jwt.MapClaims) { c["iss"] = "someone-else" }))
	assert.False(t, ok)

	_, ok = call(t, "Bearer "+mintToken(t, func(c jwt.MapClaims) { c["aud"] = "other-client" }))
	assert.False(t, ok)
}
