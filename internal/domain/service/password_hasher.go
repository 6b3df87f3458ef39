// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash turns a plaintext password into a storable digest.
	Hash(password string) (string, error)

	// Check reports whether the password produces the digest. It never fails loudly:
	// any mismatch, including an unparseable digest, is simply false.
	Check(password, digest string) bool
}
