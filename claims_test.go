package jwt

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClaimsValidator(t *testing.T) {
	validator := DefaultClaimsValidator{}

	tests := []struct {
		name      string
		claims    map[string]any
		wantField string
	}{
		{"empty", map[string]any{}, ""},
		{"application claims only", map[string]any{"user_id": "some@user.tld", "anything": []any{1, "x"}}, ""},
		{"numeric dates", map[string]any{"exp": float64(1700000000), "nbf": float64(1600000000), "iat": float64(1600000000)}, ""},
		{"fractional date", map[string]any{"exp": 1700000000.5}, ""},
		{"string exp", map[string]any{"exp": "tomorrow"}, "exp"},
		{"negative iat", map[string]any{"iat": float64(-1)}, "iat"},
		{"date out of range", map[string]any{"nbf": float64(maxUnixTime + 1)}, "nbf"},
		{"numeric issuer", map[string]any{"iss": float64(1)}, "iss"},
		{"valid issuer", map[string]any{"iss": "https://issuer.example"}, ""},
		{"subject with control character", map[string]any{"sub": "user\x00"}, "sub"},
		{"jti too long", map[string]any{"jti": strings.Repeat("a", 257)}, "jti"},
		{"file uri issuer", map[string]any{"iss": "file:///etc/issuer"}, ""},
		{"relative path subject", map[string]any{"sub": "../shared/alice"}, ""},
		{"audience string", map[string]any{"aud": "api"}, ""},
		{"audience list", map[string]any{"aud": []any{"api", "web"}}, ""},
		{"audience with number", map[string]any{"aud": []any{"api", float64(1)}}, "aud"},
		{"audience object", map[string]any{"aud": map[string]any{}}, "aud"},
		{"audience too large", map[string]any{"aud": make([]any, 101)}, "aud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateClaims(tt.claims)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidClaims)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestDefaultClaimsValidatorLimits(t *testing.T) {
	validator := DefaultClaimsValidator{MaxStringLength: 8, MaxArraySize: 1}

	assert.NoError(t, validator.ValidateClaims(map[string]any{"sub": "12345678"}))
	assert.ErrorIs(t, validator.ValidateClaims(map[string]any{"sub": "123456789"}), ErrInvalidClaims)
	assert.ErrorIs(t, validator.ValidateClaims(map[string]any{"aud": []any{"a", "b"}}), ErrInvalidClaims)
}

func TestDefaultClaimsValidatorSuspiciousPatterns(t *testing.T) {
	strict := DefaultClaimsValidator{RejectSuspiciousPatterns: true}
	lenient := DefaultClaimsValidator{}

	tests := []struct {
		name   string
		claims map[string]any
		field  string
	}{
		{"script in subject", map[string]any{"sub": "<script>alert(1)</script>"}, "sub"},
		{"file uri issuer", map[string]any{"iss": "file:///etc/issuer"}, "iss"},
		{"path traversal in jti", map[string]any{"jti": "../../etc/passwd"}, "jti"},
		{"javascript audience", map[string]any{"aud": []any{"api", "JavaScript:void(0)"}}, "aud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, lenient.ValidateClaims(tt.claims))

			err := strict.ValidateClaims(tt.claims)
			require.ErrorIs(t, err, ErrInvalidClaims)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, strict.ValidateClaims(map[string]any{"iss": "https://issuer.example", "sub": "alice"}))
}

func TestEncodeRejectsInvalidRegisteredClaims(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Encode(map[string]any{"exp": "soon"}, NewSecretKeyString(testSecret), AlgorithmHS256, nil)
	assert.ErrorIs(t, err, ErrInvalidClaims)

	noValidator := newTestCodec(t, func(c *Config) { c.ClaimsValidator = nil })
	_, err = noValidator.Encode(map[string]any{"exp": "soon"}, NewSecretKeyString(testSecret), AlgorithmHS256, nil)
	assert.NoError(t, err)
}

func TestRegisteredClaimsChecker(t *testing.T) {
	now := time.Unix(1700000000, 0)
	checker := RegisteredClaimsChecker{Now: func() time.Time { return now }}

	unix := func(d time.Duration) float64 { return float64(now.Add(d).Unix()) }

	tests := []struct {
		name    string
		claims  map[string]any
		opts    DecodeOptions
		wantErr error
	}{
		{"nothing requested", map[string]any{"exp": unix(-time.Hour), "iss": "other"}, DecodeOptions{}, nil},
		{"issuer passes through", map[string]any{"iss": "other"}, DecodeOptions{Issuer: "expected"}, nil},
		{"issuer matches", map[string]any{"iss": "expected"}, DecodeOptions{Issuer: "expected", VerifyIssuer: true}, nil},
		{"issuer differs", map[string]any{"iss": "other"}, DecodeOptions{Issuer: "expected", VerifyIssuer: true}, ErrInvalidIssuer},
		{"issuer missing", map[string]any{}, DecodeOptions{Issuer: "expected", VerifyIssuer: true}, ErrInvalidIssuer},
		{"not expired", map[string]any{"exp": unix(time.Minute)}, DecodeOptions{VerifyExpiration: true}, nil},
		{"expired", map[string]any{"exp": unix(-time.Minute)}, DecodeOptions{VerifyExpiration: true}, ErrTokenExpired},
		{"expires now", map[string]any{"exp": unix(0)}, DecodeOptions{VerifyExpiration: true}, ErrTokenExpired},
		{"expired within leeway", map[string]any{"exp": unix(-time.Minute)}, DecodeOptions{VerifyExpiration: true, Leeway: 2 * time.Minute}, nil},
		{"not yet valid", map[string]any{"nbf": unix(time.Minute)}, DecodeOptions{VerifyExpiration: true}, ErrTokenNotYetValid},
		{"not yet valid within leeway", map[string]any{"nbf": unix(time.Minute)}, DecodeOptions{VerifyExpiration: true, Leeway: time.Minute}, nil},
		{"malformed exp", map[string]any{"exp": "soon"}, DecodeOptions{VerifyExpiration: true}, ErrInvalidClaims},
		{"no time claims", map[string]any{"user_id": "x"}, DecodeOptions{VerifyExpiration: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.CheckClaims(tt.claims, tt.opts)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidClaims)
		})
	}
}

func TestDecodeChecksExpiration(t *testing.T) {
	codec := newTestCodec(t)
	key := NewSecretKeyString(testSecret)

	expired := RegisteredClaims{
		Subject:   "user",
		ExpiresAt: NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := codec.Encode(expired, key, AlgorithmHS256, nil)
	require.NoError(t, err)

	_, _, err = codec.Decode(token, key, true)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, _, err = codec.Decode(token, key, true, DecodeOptions{Leeway: 2 * time.Hour})
	assert.NoError(t, err)

	_, _, err = codec.Decode(token, key, false)
	assert.NoError(t, err)

	lenient := newTestCodec(t, func(c *Config) { c.VerifyExpiration = false })
	_, _, err = lenient.Decode(token, key, true)
	assert.NoError(t, err)
}

func TestDecodeChecksIssuer(t *testing.T) {
	codec := newTestCodec(t)
	key := NewSecretKeyString(testSecret)

	token, err := codec.Encode(RegisteredClaims{Issuer: "issuer-a"}, key, AlgorithmHS256, nil)
	require.NoError(t, err)

	_, _, err = codec.Decode(token, key, true, DecodeOptions{Issuer: "issuer-b"})
	assert.NoError(t, err, "issuer without verification must pass through")

	_, _, err = codec.Decode(token, key, true, DecodeOptions{Issuer: "issuer-b", VerifyIssuer: true})
	assert.ErrorIs(t, err, ErrInvalidIssuer)

	_, _, err = codec.Decode(token, key, true, DecodeOptions{Issuer: "issuer-a", VerifyIssuer: true})
	assert.NoError(t, err)
}

func TestRegisteredClaimsEncoding(t *testing.T) {
	codec := newTestCodec(t)
	key := NewSecretKeyString(testSecret)
	issued := time.Unix(1700000000, 0)

	claims := RegisteredClaims{
		Issuer:   "issuer",
		Audience: []string{"api"},
		IssuedAt: NewNumericDate(issued),
		ID:       "token-1",
	}

	token, err := codec.Encode(claims, key, AlgorithmHS256, nil)
	require.NoError(t, err)

	payload, _, err := codec.Decode(token, key, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"iss": "issuer",
		"aud": []any{"api"},
		"iat": json.Number("1700000000"),
		"jti": "token-1",
	}, payload)
}
