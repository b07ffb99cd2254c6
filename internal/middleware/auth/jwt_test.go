package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runMiddleware(mw echo.MiddlewareFunc, authHeader string) (echo.Context, *httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return c, rec, called
}

func testConfig() Config {
	return Config{Secret: testSecret, Logger: zap.NewNop()}
}

func TestOptional_ValidTokenSetsIdentity(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user_1",
		"email": "fighter@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	c, _, called := runMiddleware(Optional(testConfig()), "Bearer "+token)

	assert.True(t, called)
	identity, ok := GetIdentity(c)
	require.True(t, ok)
	assert.Equal(t, "user_1", identity.UserID)
	assert.Equal(t, "fighter@example.com", identity.Email)
}

func TestOptional_NoTokenPassesThroughAsGuest(t *testing.T) {
	c, rec, called := runMiddleware(Optional(testConfig()), "")

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	_, ok := GetIdentity(c)
	assert.False(t, ok)
}

func TestOptional_BadSignaturePassesThroughAsGuest(t *testing.T) {
	token := signToken(t, "wrong-secret", jwt.MapClaims{"sub": "user_1"})

	c, rec, called := runMiddleware(Optional(testConfig()), "Bearer "+token)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	_, ok := GetIdentity(c)
	assert.False(t, ok)
}

func TestProtect_ValidTokenSetsIdentity(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user_1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	c, _, called := runMiddleware(Protect(testConfig()), "Bearer "+token)

	assert.True(t, called)
	identity, ok := GetIdentity(c)
	require.True(t, ok)
	assert.Equal(t, "user_1", identity.UserID)
	assert.Empty(t, identity.Email)
}

func TestProtect_NoTokenIs401(t *testing.T) {
	_, rec, called := runMiddleware(Protect(testConfig()), "")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_REQUIRED")
}

func TestProtect_BadSignatureIs401(t *testing.T) {
	token := signToken(t, "wrong-secret", jwt.MapClaims{"sub": "user_1"})

	_, rec, called := runMiddleware(Protect(testConfig()), "Bearer "+token)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtect_ExpiredTokenIs401(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user_1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, rec, called := runMiddleware(Protect(testConfig()), "Bearer "+token)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtect_MissingSubClaimIs401(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "fighter@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, rec, called := runMiddleware(Protect(testConfig()), "Bearer "+token)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtect_MalformedHeaderIs401(t *testing.T) {
	_, rec, called := runMiddleware(Protect(testConfig()), "Token abcdef")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
