// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Account is the persisted identity record. At least one of Email or Login is set.
type Account struct {
	ID           int64     // Store-assigned identifier, zero until the account is flushed.
	Email        *string   // Optional contact email, unique together with Login.
	Login        *string   // Optional login name, unique together with Email.
	PasswordHash string    // Opaque digest produced by the PasswordHasher.
	IsActive     bool      // Inactive accounts cannot receive tokens.
	CreatedAt    time.Time // Timestamp of when the store persisted the account.
}

// IsPersisted reports whether the store has assigned an identifier.
func (a *Account) IsPersisted() bool {
	return a != nil && a.ID != 0
}

// EmailValue returns the email or an empty string.
func (a *Account) EmailValue() string {
	if a == nil || a.Email == nil {
		return ""
	}

	return *a.Email
}

// LoginValue returns the login or an empty string.
func (a *Account) LoginValue() string {
	if a == nil || a.Login == nil {
		return ""
	}

	return *a.Login
}
