package service

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// AccountIDKey is the payload key carrying the account identifier.
const AccountIDKey = "account_id"

// Payload is the application data embedded in a token.
type Payload map[string]any

// NewAccountPayload returns the payload issued for an authenticated account.
func NewAccountPayload(accountID int64) Payload {
	return Payload{AccountIDKey: json.Number(strconv.FormatInt(accountID, 10))}
}

// AccountID extracts the account identifier. Decoded payloads hold numbers as
// json.Number; payloads built in-process may hold plain integers.
func (p Payload) AccountID() (int64, error) {
	raw, ok := p[AccountIDKey]
	if !ok {
		return 0, errors.Errorf("payload has no %q", AccountIDKey)
	}

	switch v := raw.(type) {
	case json.Number:
		return v.Int64()
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, errors.Errorf("%q is not an integer", AccountIDKey)
		}

		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, errors.Errorf("%q has unsupported type %T", AccountIDKey, raw)
	}
}

// TokenService encodes payloads into signed, time-limited tokens and decodes them back.
type TokenService interface {
	// Issue signs the payload with an expiry of now+ttl.
	Issue(payload Payload, ttl time.Duration) (token string, expiresAt time.Time, err error)

	// Parse verifies the signature and expiry and returns the embedded payload.
	// Failures are ErrTokenExpired, ErrTokenInvalidSignature or ErrTokenMalformed.
	Parse(token string) (Payload, error)

	// AccessTTL returns the configured lifetime for access tokens.
	AccessTTL() time.Duration
}

// BearerGuard validates an Authorization header value and yields the token payload.
type BearerGuard interface {
	Authenticate(header string) (Payload, error)
}
