package auth

import (
	"bytes"
	"encoding/json"
	"time"

	"identity/config"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	claimData = "data"
	claimExp  = "exp"
	claimIat  = "iat"
	claimJTI  = "jti"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
// The payload travels as compact JSON in the "data" claim next to a UTC "exp".
type jwtService struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if len(cfg.SecretKey.Access) < config.MinSecretKeyLength {
		return nil, errors.Errorf("jwt secret must be at least %d bytes", config.MinSecretKeyLength)
	}

	ttl := time.Duration(0)
	if cfg.Auth != nil {
		ttl = cfg.Auth.AccessTTL
	}
	if ttl <= 0 {
		return nil, errors.New("auth.accessTTL must be positive")
	}

	return &jwtService{
		secret:    []byte(cfg.SecretKey.Access),
		accessTTL: ttl,
		now:       time.Now,
	}, nil
}

// AccessTTL returns the configured lifetime of access tokens.
func (s *jwtService) AccessTTL() time.Duration {
	return s.accessTTL
}

// Issue signs payload with an absolute UTC expiry of now+ttl.
func (s *jwtService) Issue(payload service.Payload, ttl time.Duration) (string, time.Time, error) {
	if payload == nil {
		payload = service.Payload{}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", time.Time{}, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	now := s.now().UTC()
	expiresAt := expiryFor(now, ttl)

	claims := jwt.MapClaims{
		claimData: string(data),
		claimExp:  jwt.NewNumericDate(expiresAt),
		claimIat:  jwt.NewNumericDate(now),
		claimJTI:  uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return signed, expiresAt, nil
}

// Parse verifies signature and expiry before trusting any claim.
func (s *jwtService) Parse(tokenString string) (service.Payload, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domainerrors.ErrTokenMalformed.WithDetails("unexpected claims")
	}

	raw, ok := claims[claimData].(string)
	if !ok {
		return nil, domainerrors.ErrTokenMalformed.WithDetails("data claim missing")
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()

	var payload service.Payload
	if err := decoder.Decode(&payload); err != nil {
		return nil, domainerrors.ErrTokenMalformed.WithDetails("data claim is not a JSON object")
	}
	if payload == nil {
		payload = service.Payload{}
	}

	return payload, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domainerrors.ErrTokenInvalidSignature
	default:
		return domainerrors.ErrTokenMalformed.WithDetails(err.Error())
	}
}

// expiryFor truncates to the JWT second precision, rounding up for positive
// TTLs so a fresh token is never already expired.
func expiryFor(now time.Time, ttl time.Duration) time.Time {
	expiresAt := now.Add(ttl).Truncate(time.Second)
	if ttl > 0 && !expiresAt.After(now) {
		expiresAt = expiresAt.Add(time.Second)
	}

	return expiresAt
}
