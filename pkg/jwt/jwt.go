package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrExpired is returned when a token is well-formed but past its expiry
var ErrExpired = errors.New("token expired")

// Manager signs and verifies HS256 access tokens
type Manager struct {
	secret     []byte
	defaultTTL time.Duration
	issuer     string
	now        func() time.Time
}

// TokenRequest describes the token to issue. A zero TTL uses the manager's
// default.
type TokenRequest struct {
	UserID uuid.UUID
	Email  string
	Scopes []string
	TTL    time.Duration
}

// NewManager creates a new JWT manager
func NewManager(secret string, defaultTTL time.Duration, issuer string) *Manager {
	return &Manager{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		issuer:     issuer,
		now:        time.Now,
	}
}

// Issue signs a token for req
func (m *Manager) Issue(req TokenRequest) (string, error) {
	if req.UserID == uuid.Nil {
		return "", errors.New("user id is required")
	}

	ttl := req.TTL
	if ttl == 0 {
		ttl = m.defaultTTL
	}

	now := m.now()
	claims := &Claims{
		UserID: req.UserID,
		Email:  req.Email,
		Scopes: req.Scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   req.UserID.String(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses tokenString and checks signature, issuer and expiry
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("token has no user id")
	}

	return claims, nil
}
