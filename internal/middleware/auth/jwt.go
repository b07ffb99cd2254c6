package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Identity represents an authenticated user as issued by the auth
// provider. Email is optional; some sign-up paths never collect one.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

type contextKey string

const identityContextKey contextKey = "authenticated_identity"

// Config holds the configuration for the JWT middleware.
type Config struct {
	Secret string
	Logger *zap.Logger
}

// Optional parses the session token when one is present and stores the
// identity on the request context. Requests without a token pass
// through untouched; endpoints that allow guests decide for themselves.
func Optional(config Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := parseIdentity(c, config)
			if err != nil {
				config.Logger.Debug("Session token rejected, continuing as guest",
					zap.String("path", c.Request().URL.Path),
					zap.Error(err))
				return next(c)
			}
			if identity != nil {
				SetIdentity(c, identity)
			}
			return next(c)
		}
	}
}

// Protect rejects requests without a valid session token. It gates the
// members URL prefix on "has an authenticated session" only;
// subscription status is checked inside the handlers, not here.
func Protect(config Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := parseIdentity(c, config)
			if err != nil || identity == nil {
				config.Logger.Warn("Unauthenticated request to protected route",
					zap.String("path", c.Request().URL.Path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authentication required",
					"code":  "AUTH_REQUIRED",
				})
			}
			SetIdentity(c, identity)
			return next(c)
		}
	}
}

func parseIdentity(c echo.Context, config Config) (*Identity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, fmt.Errorf("invalid authorization header format")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing sub claim")
	}
	email, _ := claims["email"].(string)

	return &Identity{UserID: sub, Email: email}, nil
}

// SetIdentity attaches an identity to the request context. The
// middleware calls it after token verification; handler tests call it
// to simulate an authenticated session.
func SetIdentity(c echo.Context, identity *Identity) {
	ctx := context.WithValue(c.Request().Context(), identityContextKey, identity)
	c.SetRequest(c.Request().WithContext(ctx))
	c.Set("user_id", identity.UserID)
}

// GetIdentity extracts the authenticated identity from the request
// context. The second return is false for guest requests.
func GetIdentity(c echo.Context) (*Identity, bool) {
	identity, ok := c.Request().Context().Value(identityContextKey).(*Identity)
	return identity, ok && identity != nil
}
