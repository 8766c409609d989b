package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meetmind/errors"
	"github.com/johnquangdev/meetmind/pkg/jwt"
)

const (
	// UserIDKey holds the authenticated uuid.UUID in the echo context
	UserIDKey = "user_id"
	// ClaimsKey holds the *jwt.Claims in the echo context
	ClaimsKey = "claims"
)

// TokenValidator verifies access tokens
type TokenValidator interface {
	Verify(token string) (*jwt.Claims, error)
}

// ErrorRenderer writes an error response, normally handler.HandleError
type ErrorRenderer func(c echo.Context, err error) error

// EchoAuth returns an Echo middleware that validates the bearer token (or
// access_token cookie) and sets "user_id" and "claims" into the context
func EchoAuth(validator TokenValidator, render ErrorRenderer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				return render(c, errors.ErrUnauthenticated())
			}

			claims, err := validator.Verify(token)
			if stderrors.Is(err, jwt.ErrExpired) {
				return render(c, errors.ErrTokenExpired())
			}
			if err != nil {
				return render(c, errors.ErrInvalidToken())
			}

			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID)

			return next(c)
		}
	}
}

// ExtractToken reads "Authorization: Bearer <token>", falling back to the
// access_token cookie
func ExtractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}

// UserID returns the authenticated user, if the route is protected
func UserID(c echo.Context) (*uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	if !ok {
		return nil, false
	}
	return &id, true
}

// OptionalAuth validates the token if present but doesn't require it. A bad
// token is ignored and the request proceeds anonymously.
func OptionalAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := ExtractToken(c); token != "" {
				if claims, err := validator.Verify(token); err == nil {
					c.Set(ClaimsKey, claims)
					c.Set(UserIDKey, claims.UserID)
				}
			}
			return next(c)
		}
	}
}

// RequireScope rejects requests whose token lacks scope. It must run after
// EchoAuth.
func RequireScope(scope string, render ErrorRenderer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(*jwt.Claims)
			if !ok {
				return render(c, errors.ErrUnauthenticated())
			}
			if !claims.HasScope(scope) {
				return render(c, errors.ErrMissingScope(scope))
			}
			return next(c)
		}
	}
}
