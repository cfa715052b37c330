package jwt

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cybergodev/jwtcodec/internal/core"
)

// Config represents codec configuration
type Config struct {
	// Algorithm is used by Encode when the caller passes no algorithm
	Algorithm Algorithm `yaml:"algorithm" json:"algorithm"`

	// Algorithms pins the algorithms Decode accepts when the call does not pin
	// any itself. Empty means the token header selects the algorithm.
	Algorithms []Algorithm `yaml:"algorithms" json:"algorithms"`

	// MaxTokenLength bounds the size of tokens produced by Encode and accepted by Decode
	MaxTokenLength int `yaml:"max_token_length" json:"max_token_length"`

	// Issuer is the expected "iss" claim, checked when VerifyIssuer is set
	Issuer       string `yaml:"issuer" json:"issuer"`
	VerifyIssuer bool   `yaml:"verify_issuer" json:"verify_issuer"`

	// VerifyExpiration enables exp and nbf checks on verified object payloads
	VerifyExpiration bool `yaml:"verify_expiration" json:"verify_expiration"`

	// Leeway widens the exp and nbf windows to absorb clock skew
	Leeway time.Duration `yaml:"leeway" json:"leeway"`

	// ClaimsValidator runs on object payloads before signing; nil disables it
	ClaimsValidator ClaimsValidator `yaml:"-" json:"-"`

	// ClaimsChecker runs on object payloads after verification; nil disables it
	ClaimsChecker ClaimsChecker `yaml:"-" json:"-"`

	// Logger receives debug records for rejected tokens and weak secrets;
	// nil selects the logrus standard logger
	Logger logrus.FieldLogger `yaml:"-" json:"-"`
}

// DefaultConfig returns the configuration used by the package-level functions
func DefaultConfig() Config {
	return Config{
		Algorithm:        DefaultAlgorithm,
		Algorithms:       nil,
		MaxTokenLength:   core.DefaultMaxTokenLength,
		Issuer:           "",
		VerifyIssuer:     false,
		VerifyExpiration: true,
		Leeway:           0,
		ClaimsValidator:  DefaultClaimsValidator{},
		ClaimsChecker:    RegisteredClaimsChecker{},
		Logger:           nil,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	if c.Algorithm != "" && !c.Algorithm.Supported() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnsupportedAlgorithm, c.Algorithm)
	}

	for _, alg := range c.Algorithms {
		if !alg.Supported() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnsupportedAlgorithm, alg)
		}
	}

	if c.MaxTokenLength < 0 {
		return fmt.Errorf("%w: max token length must not be negative", ErrInvalidConfig)
	}

	if c.Leeway < 0 {
		return fmt.Errorf("%w: leeway must not be negative", ErrInvalidConfig)
	}

	if c.VerifyIssuer && c.Issuer == "" {
		return fmt.Errorf("%w: issuer verification requires an issuer", ErrInvalidConfig)
	}

	return nil
}
