// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"identity/config"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// OWASP-recommended argon2id parameters.
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2SaltLen = 16        // salt length in bytes
	argon2KeyLen  = 32        // output length in bytes
)

const argon2Prefix = "$argon2id$"

// passwordHasher hashes with the configured scheme and verifies digests of every supported scheme.
type passwordHasher struct {
	scheme     string
	bcryptCost int
}

// NewPasswordHasher builds the hasher selected by auth.passwordScheme.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	scheme := config.PasswordSchemeArgon2id
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.PasswordScheme != "" {
			scheme = cfg.Auth.PasswordScheme
		}
		if cfg.Auth.BcryptCost != 0 {
			cost = cfg.Auth.BcryptCost
		}
	}

	return NewPasswordHasherWithScheme(scheme, cost)
}

// NewPasswordHasherWithScheme builds a hasher for an explicit scheme.
func NewPasswordHasherWithScheme(scheme string, bcryptCost int) (service.PasswordHasher, error) {
	switch scheme {
	case config.PasswordSchemeArgon2id, config.PasswordSchemeSHA256:
	case config.PasswordSchemeBcrypt:
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
	default:
		return nil, errors.Errorf("unknown password scheme: %s", scheme)
	}

	return &passwordHasher{scheme: scheme, bcryptCost: bcryptCost}, nil
}

// bcryptMaxPasswordBytes is the longest input bcrypt accepts.
const bcryptMaxPasswordBytes = 72

// Hash produces a digest with the configured scheme.
func (h *passwordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", domainerrors.ErrPasswordHashFailed.WithDetails("password cannot be empty")
	}

	switch h.scheme {
	case config.PasswordSchemeSHA256:
		return sha256Digest(password), nil
	case config.PasswordSchemeBcrypt:
		if len(password) > bcryptMaxPasswordBytes {
			return "", domainerrors.ErrInvalidCredentialsShape.WithDetails(
				fmt.Sprintf("password must not exceed %d bytes", bcryptMaxPasswordBytes))
		}

		digest, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		return string(digest), nil
	default:
		return argon2idDigest(password)
	}
}

// Check verifies password against a digest of any supported scheme.
func (h *passwordHasher) Check(password, digest string) bool {
	if digest == "" {
		return false
	}

	switch {
	case strings.HasPrefix(digest, argon2Prefix):
		return checkArgon2id(password, digest)
	case isBcryptDigest(digest):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	default:
		return subtle.ConstantTimeCompare([]byte(sha256Digest(password)), []byte(digest)) == 1
	}
}

// sha256Digest is the legacy deterministic, unsalted scheme: base64(SHA-256(password)).
func sha256Digest(password string) string {
	sum := sha256.Sum256([]byte(password))

	return base64.StdEncoding.EncodeToString(sum[:])
}

func argon2idDigest(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func checkArgon2id(password, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}
	if threads == 0 || threads > 255 || iterations == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 || len(expected) > 1024 {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, uint8(threads), uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1
}

func isBcryptDigest(digest string) bool {
	_, err := bcrypt.Cost([]byte(digest))

	return err == nil
}
