package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the single configured admin account
type Credentials struct {
	email        string
	passwordHash []byte
}

// NewCredentials prefers a precomputed bcrypt hash and otherwise hashes the
// plain password once at startup
func NewCredentials(email, password, passwordHash string) (*Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("admin email is required")
	}

	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &Credentials{email: email, passwordHash: []byte(passwordHash)}, nil
	}

	if password == "" {
		return nil, fmt.Errorf("admin password or password hash is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Credentials{email: email, passwordHash: hash}, nil
}

// Check returns the admin identity when email and password match
func (c *Credentials) Check(email, password string) (Identity, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.email)) == 1
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil || !emailOK {
		return Identity{}, ErrInvalidCredentials
	}
	return c.Identity(), nil
}

// Identity is the fixed identity of the configured admin
func (c *Credentials) Identity() Identity {
	return Identity{ID: "1", Email: c.email, Name: "Admin", Role: "admin"}
}
