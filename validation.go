package jwt

import (
	"fmt"
	"strings"
)

const (
	maxStringLength = 256
	maxArraySize    = 100
)

var (
	numericClaims = [...]string{"exp", "nbf", "iat"}
	stringClaims  = [...]string{"iss", "sub", "jti"}
)

// validateRegisteredClaims checks the shape of the RFC 7519 registered claims
// present in claims. Unregistered claims are not inspected.
func validateRegisteredClaims(claims map[string]any, rules stringRules, maxItems int) error {
	for _, name := range numericClaims {
		value, ok := claims[name]
		if !ok {
			continue
		}
		if _, err := numericDateFrom(value); err != nil {
			return &ValidationError{Field: name, Message: "must be a numeric date", Err: fmt.Errorf("%w: %v", ErrInvalidClaims, err)}
		}
	}

	for _, name := range stringClaims {
		value, ok := claims[name]
		if !ok {
			continue
		}
		s, isString := value.(string)
		if !isString {
			return invalidClaim(name, "must be a string")
		}
		if err := validateString(name, s, rules); err != nil {
			return err
		}
	}

	if aud, ok := claims["aud"]; ok {
		switch v := aud.(type) {
		case string:
			return validateString("aud", v, rules)
		case []any:
			if len(v) > maxItems {
				return invalidClaim("aud", fmt.Sprintf("too many items: maximum %d allowed", maxItems))
			}
			for _, item := range v {
				s, isString := item.(string)
				if !isString {
					return invalidClaim("aud", "items must be strings")
				}
				if err := validateString("aud", s, rules); err != nil {
					return err
				}
			}
		default:
			return invalidClaim("aud", "must be a string or an array of strings")
		}
	}

	return nil
}

type stringRules struct {
	maxLength      int
	rejectPatterns bool
}

func validateString(fieldName, value string, rules stringRules) error {
	if len(value) == 0 {
		return nil
	}

	if len(value) > rules.maxLength {
		return invalidClaim(fieldName, fmt.Sprintf("too long: maximum %d characters", rules.maxLength))
	}

	for i := 0; i < len(value); i++ {
		char := value[i]
		if char < 32 && char != '\t' && char != '\n' && char != '\r' {
			return invalidClaim(fieldName, "contains invalid control character")
		}
	}

	if rules.rejectPatterns && containsDangerousPattern(value) {
		return invalidClaim(fieldName, "contains suspicious pattern")
	}

	return nil
}

var dangerousPatterns = [...]string{
	"<script", "javascript:", "eval(", "../", "file://", "vbscript:",
}

func containsDangerousPattern(value string) bool {
	if len(value) < 4 {
		return false
	}

	lower := strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
