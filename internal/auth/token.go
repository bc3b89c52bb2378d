// Package auth issues and verifies admin bearer tokens
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is stamped into every token and required on verification
const Issuer = "tunel-admin"

// ContextKeyClaims is the gin context key holding the verified Claims
const ContextKeyClaims = "auth.claims"

var (
	ErrTokenMissing       = errors.New("token missing")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", ErrTokenMissing
	}
	return token, nil
}

// Identity is the admin a token speaks for
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Claims struct {
	AdminID string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Role    string `json:"role,omitempty"`

	jwtlib.RegisteredClaims
}

// Identity returns the admin carried by the claims. Tokens without a name
// are reported as "Admin".
func (c Claims) Identity() Identity {
	name := c.Name
	if name == "" {
		name = "Admin"
	}
	return Identity{ID: c.AdminID, Email: c.Email, Name: name, Role: c.Role}
}

// TokenService signs and verifies HS256 tokens with a shared secret
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

// ExpiresIn is the lifetime given to newly issued tokens
func (s *TokenService) ExpiresIn() time.Duration {
	return s.expiresIn
}

// Issue signs a token for identity with a fresh jti
func (s *TokenService) Issue(identity Identity) (string, Claims, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 {
		return "", Claims{}, fmt.Errorf("issue token: %w", ErrTokenInvalid)
	}

	now := s.now().UTC()
	c := Claims{
		AdminID: identity.ID,
		Email:   identity.Email,
		Name:    identity.Name,
		Role:    identity.Role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   identity.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, c, nil
}

// Parse verifies signature, algorithm, issuer and expiry
func (s *TokenService) Parse(tokenString string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(Issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

// FormatExpiry renders a token lifetime the way clients expect it, e.g. "24h"
func FormatExpiry(d time.Duration) string {
	switch {
	case d > 0 && d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d > 0 && d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return d.String()
	}
}
