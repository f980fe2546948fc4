package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-with-enough-length-1234"

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret, DefaultTTL)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodec(t *testing.T) {
	_, err := NewTokenCodec("  ", time.Hour)
	assert.Error(t, err)

	codec, err := NewTokenCodec(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, codec.TTL())
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	issuedAt := time.Unix(1_700_000_000, 0)

	token, err := codec.Issue("a@x.com", issuedAt)
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"at issue time", issuedAt, nil},
		{"one hour later", issuedAt.Add(time.Hour), nil},
		{"one second before expiry", issuedAt.Add(DefaultTTL - time.Second), nil},
		{"exactly at expiry", issuedAt.Add(DefaultTTL), ErrTokenExpired},
		{"long after expiry", issuedAt.Add(30 * DefaultTTL), ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := codec.Decode(token, tt.at)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", identity)
		})
	}
}

func TestTokenCodec_IssuesDistinctTokens(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Unix(1_700_000_000, 0)

	first, err := codec.Issue("a@x.com", now)
	require.NoError(t, err)
	second, err := codec.Issue("a@x.com", now)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenCodec_RejectsEmptySubject(t *testing.T) {
	codec := newTestCodec(t)
	_, err := codec.Issue("", time.Now())
	assert.Error(t, err)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Unix(1_700_000_000, 0)

	valid, err := codec.Issue("a@x.com", now)
	require.NoError(t, err)

	otherCodec, err := NewTokenCodec("another-secret-key-with-enough-length", DefaultTTL)
	require.NoError(t, err)
	foreign, err := otherCodec.Issue("a@x.com", now)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tamperedSig := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "a@x.com",
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	wrongAlg, err := hs512.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  "a@x.com",
		Issuer:   Issuer,
		Audience: jwt.ClaimStrings{Audience},
	})
	missingExp, err := noExpiry.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{Audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	missingSub, err := noSubject.SignedString([]byte(testSecret))
	require.NoError(t, err)

	wrongAudience := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "a@x.com",
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{"someone-else"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	badAud, err := wrongAudience.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered signature", tamperedSig},
		{"different secret", foreign},
		{"wrong algorithm", wrongAlg},
		{"missing expiry", missingExp},
		{"missing subject", missingSub},
		{"wrong audience", badAud},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := codec.Decode(tt.token, now)
			assert.ErrorIs(t, err, ErrTokenMalformed)
			assert.NotErrorIs(t, err, ErrTokenExpired)
			assert.Empty(t, identity)
		})
	}
}

func TestTokenCodec_NotYetValid(t *testing.T) {
	codec := newTestCodec(t)
	issuedAt := time.Unix(1_700_000_000, 0)

	token, err := codec.Issue("a@x.com", issuedAt)
	require.NoError(t, err)

	_, err = codec.Decode(token, issuedAt.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
