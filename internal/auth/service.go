package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// Service ties the admin credentials, token signing and revocation together
type Service struct {
	credentials *Credentials
	tokens      *TokenService
	denylist    Denylist
	logger      *slog.Logger
}

func NewService(credentials *Credentials, tokens *TokenService, denylist Denylist, logger *slog.Logger) *Service {
	if denylist == nil {
		denylist = NewMemoryDenylist()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		credentials: credentials,
		tokens:      tokens,
		denylist:    denylist,
		logger:      logger,
	}
}

// Session is the result of a successful login
type Session struct {
	Token     string
	Admin     Identity
	ExpiresIn string
}

// Login checks the credentials and issues a new token
func (s *Service) Login(email, password string) (Session, error) {
	identity, err := s.credentials.Check(email, password)
	if err != nil {
		return Session{}, err
	}

	token, _, err := s.tokens.Issue(identity)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:     token,
		Admin:     identity,
		ExpiresIn: FormatExpiry(s.tokens.ExpiresIn()),
	}, nil
}

// Authenticate verifies the token and rejects revoked ones. A denylist
// failure is treated as an invalid token rather than letting it through.
func (s *Service) Authenticate(ctx context.Context, token string) (Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return Claims{}, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.RegisteredClaims.ID)
	if err != nil {
		s.logger.Error("Failed to check token revocation", slog.String("error", err.Error()))
		return Claims{}, fmt.Errorf("check revocation: %w", ErrTokenInvalid)
	}
	if revoked {
		return Claims{}, ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the token described by claims until it expires
func (s *Service) Logout(ctx context.Context, claims Claims) error {
	if claims.ExpiresAt == nil {
		return ErrTokenInvalid
	}
	return s.denylist.Revoke(ctx, claims.RegisteredClaims.ID, claims.ExpiresAt.Time)
}
