package jwt

import (
	"errors"
	"fmt"

	"github.com/cybergodev/jwtcodec/internal/core"
	"github.com/cybergodev/jwtcodec/internal/signing"
)

// Predefined errors for encode and decode operations
var (
	// Algorithm errors
	ErrUnsupportedAlgorithm = signing.ErrUnsupportedAlgorithm
	ErrIncorrectAlgorithm   = signing.ErrIncorrectAlgorithm

	// Structural decode errors, all wrapping ErrMalformedToken
	ErrMalformedToken  = core.ErrMalformedToken
	ErrSegmentCount    = core.ErrSegmentCount
	ErrSegmentEncoding = core.ErrSegmentEncoding
	ErrTokenTooLarge   = core.ErrTokenTooLarge

	// Signature errors
	ErrVerificationFailed = errors.New("signature verification failed")

	// Claims errors
	ErrInvalidClaims    = errors.New("invalid claims")
	ErrInvalidIssuer    = fmt.Errorf("%w: issuer mismatch", ErrInvalidClaims)
	ErrTokenExpired     = fmt.Errorf("%w: token has expired", ErrInvalidClaims)
	ErrTokenNotYetValid = fmt.Errorf("%w: token is not valid yet", ErrInvalidClaims)
	ErrTokenRevoked     = fmt.Errorf("%w: token has been revoked", ErrInvalidClaims)

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError represents a validation error for a specific claim.
// It provides detailed information about what validation failed and why.
type ValidationError struct {
	Field   string // The claim that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for field '%s': %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidClaim(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: ErrInvalidClaims}
}
