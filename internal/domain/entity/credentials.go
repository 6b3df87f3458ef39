package entity

import (
	"strings"

	domainerrors "identity/internal/domain/errors"
)

// Credentials is the normalized registration/login input handed over by the HTTP boundary.
type Credentials struct {
	Password string
	Email    *string
	Login    *string
}

// NewCredentials builds Credentials, treating blank identifiers as absent.
func NewCredentials(password, email, login string) Credentials {
	return Credentials{
		Password: password,
		Email:    optional(email),
		Login:    optional(login),
	}
}

// Validate checks the shape invariant: a non-empty password and at least one identifier.
func (c Credentials) Validate() error {
	if c.Password == "" {
		return domainerrors.ErrInvalidCredentialsShape.WithDetails("password is required")
	}
	if c.Email == nil && c.Login == nil {
		return domainerrors.ErrInvalidCredentialsShape.WithDetails("email or login is required")
	}

	return nil
}

// Identifier returns a log-friendly identifier, preferring the login.
func (c Credentials) Identifier() string {
	if c.Login != nil {
		return *c.Login
	}
	if c.Email != nil {
		return *c.Email
	}

	return ""
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}
