package jwt

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Scopes carried by access tokens
const (
	// ScopeHistory allows reading and deleting the caller's own meetings
	ScopeHistory = "history"
	// ScopeArchive allows listing and re-decoding archived model output
	ScopeArchive = "archive"
)

// Claims identifies the caller that summaries are recorded against
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Scopes []string  `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// HasScope reports whether the token grants scope
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}
