package auth

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"identity/config"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestConfig() *config.Config {
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: testSecret},
		Auth:      &config.AuthConfig{AccessTTL: 5 * time.Hour},
	}

	return cfg
}

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	return svc
}

func TestJWTService_IssueAndParseRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	payload := service.Payload{
		"account_id": json.Number("42"),
		"scope":      "profile",
		"nested":     map[string]any{"k": "v"},
	}

	token, expiresAt, err := svc.Issue(payload, time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, time.UTC, expiresAt.Location())
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 2*time.Second)

	parsed, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, payload, parsed)
}

func TestJWTService_AccountPayloadKeepsLargeIDs(t *testing.T) {
	svc := newTestTokenService(t)

	const id = int64(1<<53 + 1)
	token, _, err := svc.Issue(service.NewAccountPayload(id), time.Minute)
	require.NoError(t, err)

	parsed, err := svc.Parse(token)
	require.NoError(t, err)

	got, err := parsed.AccountID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWTService_NonPositiveTTLIsExpired(t *testing.T) {
	svc := newTestTokenService(t)

	for _, ttl := range []time.Duration{0, -time.Second, -time.Hour} {
		token, _, err := svc.Issue(service.NewAccountPayload(1), ttl)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired), "ttl %s: %v", ttl, err)
	}
}

func TestJWTService_ExpiresWithClock(t *testing.T) {
	svc := newTestTokenService(t).(*jwtService)

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, expiresAt, err := svc.Issue(service.NewAccountPayload(7), time.Hour)
	require.NoError(t, err)
	assert.True(t, issuedAt.Add(time.Hour).Equal(expiresAt))

	svc.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = svc.Parse(token)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(time.Hour) }
	_, err = svc.Parse(token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc := newTestTokenService(t)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"data": `{"account_id":1}`,
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := foreign.SignedString([]byte("another_secret_key_that_is_long_enough"))
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalidSignature), "got %v", err)
}

func TestJWTService_RejectsTamperedPayload(t *testing.T) {
	svc := newTestTokenService(t)

	token, _, err := svc.Issue(service.NewAccountPayload(1), time.Minute)
	require.NoError(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"data": `{"account_id":2}`,
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	forgedToken, err := forged.SignedString([]byte(testSecret))
	require.NoError(t, err)

	// Swap the signature of a genuine token onto forged claims.
	genuineSig := token[strings.LastIndex(token, ".")+1:]
	tampered := forgedToken[:strings.LastIndex(forgedToken, ".")+1] + genuineSig

	_, err = svc.Parse(tampered)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalidSignature), "got %v", err)
}

func TestJWTService_RejectsUnsignedToken(t *testing.T) {
	svc := newTestTokenService(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"data": `{"account_id":1}`,
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalidSignature), "got %v", err)
}

func TestJWTService_Malformed(t *testing.T) {
	svc := newTestTokenService(t)

	sign := func(claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		return token
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := map[string]string{
		"garbage":      "clearly-not-a-jwt-token-format",
		"empty":        "",
		"missing data": sign(jwt.MapClaims{"exp": future}),
		"missing exp":  sign(jwt.MapClaims{"data": `{}`}),
		"data not map": sign(jwt.MapClaims{"data": `[1,2]`, "exp": future}),
		"data not str": sign(jwt.MapClaims{"data": 5, "exp": future}),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			payload, err := svc.Parse(token)
			assert.Nil(t, payload)
			assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed), "got %v", err)
		})
	}
}

func TestNewJWTService_Validation(t *testing.T) {
	cfg := newTestConfig()
	cfg.SecretKey.Access = "short"
	_, err := NewJWTService(cfg)
	assert.Error(t, err)

	cfg = newTestConfig()
	cfg.Auth.AccessTTL = 0
	_, err = NewJWTService(cfg)
	assert.Error(t, err)

	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Hour, svc.AccessTTL())
}
