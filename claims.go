package jwt

import (
	"time"
)

// ClaimsValidator inspects an object payload before it is signed. Encode
// returns its error unchanged.
type ClaimsValidator interface {
	ValidateClaims(claims map[string]any) error
}

// ClaimsValidatorFunc adapts a function to ClaimsValidator
type ClaimsValidatorFunc func(claims map[string]any) error

func (f ClaimsValidatorFunc) ValidateClaims(claims map[string]any) error {
	return f(claims)
}

// ClaimsChecker inspects an object payload after its signature has been
// verified. Decode returns its error unchanged.
type ClaimsChecker interface {
	CheckClaims(claims map[string]any, opts DecodeOptions) error
}

// ClaimsCheckerFunc adapts a function to ClaimsChecker
type ClaimsCheckerFunc func(claims map[string]any, opts DecodeOptions) error

func (f ClaimsCheckerFunc) CheckClaims(claims map[string]any, opts DecodeOptions) error {
	return f(claims, opts)
}

// RegisteredClaims is a convenience payload carrying the RFC 7519 registered
// claims. Embed it in a struct to add application claims.
type RegisteredClaims struct {
	Issuer    string       `json:"iss,omitempty"`
	Subject   string       `json:"sub,omitempty"`
	Audience  []string     `json:"aud,omitempty"`
	ExpiresAt *NumericDate `json:"exp,omitempty"`
	NotBefore *NumericDate `json:"nbf,omitempty"`
	IssuedAt  *NumericDate `json:"iat,omitempty"`
	ID        string       `json:"jti,omitempty"`
}

// DefaultClaimsValidator checks that registered claims have the types RFC 7519
// gives them: exp, nbf and iat are numeric dates; iss, sub and jti are
// strings; aud is a string or an array of strings. String claims are bounded
// in length and must not carry control characters.
type DefaultClaimsValidator struct {
	MaxStringLength int // 0 selects 256
	MaxArraySize    int // 0 selects 100

	// RejectSuspiciousPatterns additionally rejects string claims containing
	// markup or path fragments such as "<script", "javascript:", "../" or
	// "file://". Off by default since URIs and paths are legitimate issuers
	// and subjects.
	RejectSuspiciousPatterns bool
}

func (v DefaultClaimsValidator) ValidateClaims(claims map[string]any) error {
	maxLength := v.MaxStringLength
	if maxLength <= 0 {
		maxLength = maxStringLength
	}
	maxItems := v.MaxArraySize
	if maxItems <= 0 {
		maxItems = maxArraySize
	}
	rules := stringRules{maxLength: maxLength, rejectPatterns: v.RejectSuspiciousPatterns}
	return validateRegisteredClaims(claims, rules, maxItems)
}

// RegisteredClaimsChecker enforces "iss" when DecodeOptions.VerifyIssuer is set
// and "exp"/"nbf" when DecodeOptions.VerifyExpiration is set. Claims that are
// absent are not required.
type RegisteredClaimsChecker struct {
	// Now returns the current time; nil selects time.Now
	Now func() time.Time
}

func (c RegisteredClaimsChecker) CheckClaims(claims map[string]any, opts DecodeOptions) error {
	if opts.VerifyIssuer {
		iss, _ := claims["iss"].(string)
		if iss != opts.Issuer {
			return &ValidationError{Field: "iss", Message: "unexpected issuer " + iss, Err: ErrInvalidIssuer}
		}
	}

	if !opts.VerifyExpiration {
		return nil
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	if value, ok := claims["exp"]; ok {
		exp, err := numericDateFrom(value)
		if err != nil {
			return invalidClaim("exp", err.Error())
		}
		if !now.Before(exp.Add(opts.Leeway)) {
			return &ValidationError{Field: "exp", Message: "expired at " + exp.Format(time.RFC3339), Err: ErrTokenExpired}
		}
	}

	if value, ok := claims["nbf"]; ok {
		nbf, err := numericDateFrom(value)
		if err != nil {
			return invalidClaim("nbf", err.Error())
		}
		if now.Add(opts.Leeway).Before(nbf.Time) {
			return &ValidationError{Field: "nbf", Message: "not valid before " + nbf.Format(time.RFC3339), Err: ErrTokenNotYetValid}
		}
	}

	return nil
}
