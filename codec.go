package jwt

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cybergodev/jwtcodec/internal/core"
	"github.com/cybergodev/jwtcodec/internal/security"
	"github.com/cybergodev/jwtcodec/internal/signing"
)

// Codec encodes and decodes compact tokens. A Codec is immutable after New and
// safe for concurrent use.
type Codec struct {
	algorithm        Algorithm
	algorithms       []Algorithm
	maxTokenLength   int
	issuer           string
	verifyIssuer     bool
	verifyExpiration bool
	leeway           time.Duration
	validator        ClaimsValidator
	checker          ClaimsChecker
	logger           logrus.FieldLogger
}

// New creates a Codec from an optional configuration. Without one
// DefaultConfig is used.
func New(config ...Config) (*Codec, error) {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}
	if cfg.MaxTokenLength == 0 {
		cfg.MaxTokenLength = core.DefaultMaxTokenLength
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Codec{
		algorithm:        cfg.Algorithm,
		algorithms:       append([]Algorithm(nil), cfg.Algorithms...),
		maxTokenLength:   cfg.MaxTokenLength,
		issuer:           cfg.Issuer,
		verifyIssuer:     cfg.VerifyIssuer,
		verifyExpiration: cfg.VerifyExpiration,
		leeway:           cfg.Leeway,
		validator:        cfg.ClaimsValidator,
		checker:          cfg.ClaimsChecker,
		logger:           cfg.Logger,
	}, nil
}

// Algorithm returns the algorithm Encode uses when none is given
func (c *Codec) Algorithm() Algorithm {
	return c.algorithm
}

// Encode signs payload with key under alg and returns the compact token.
//
// An empty alg selects the codec default. The payload may be any value that
// encodes to JSON; object payloads are checked by the configured
// ClaimsValidator first. header supplies extra header members; its "alg" is
// always replaced by the algorithm actually used. A token longer than the
// configured MaxTokenLength fails with ErrTokenTooLarge, since Decode on the
// same configuration would refuse it.
func (c *Codec) Encode(payload any, key Key, alg Algorithm, header Header) (string, error) {
	if alg == "" {
		alg = c.algorithm
	}

	payloadJSON, err := core.MarshalJSON(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	if c.validator != nil && core.IsObject(payloadJSON) {
		var claims map[string]any
		if err := core.UnmarshalJSON(payloadJSON, &claims); err != nil {
			return "", fmt.Errorf("failed to encode payload: %w", err)
		}
		if err := c.validator.ValidateClaims(claims); err != nil {
			return "", err
		}
	}

	method, err := signing.Resolve(string(alg))
	if err != nil {
		return "", err
	}

	h := header.Clone()
	if h == nil {
		h = make(Header, 1)
	}
	h["alg"] = method.Alg()

	headerJSON, err := core.MarshalJSON(h)
	if err != nil {
		return "", fmt.Errorf("failed to encode header: %w", err)
	}

	if method.Family() == signing.FamilyHMAC && key.Kind() == signing.KindSecret && security.IsWeakKey(key.Secret()) {
		c.logger.WithField("alg", method.Alg()).Debug("signing with a weak HMAC secret")
	}

	signingInput := core.SigningInput(headerJSON, payloadJSON)
	signature, err := method.Sign(key, []byte(signingInput))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	token := core.Serialize(signingInput, signature)
	if len(token) > c.maxTokenLength {
		return "", fmt.Errorf("%w: encoded token is %d characters, maximum %d allowed", ErrTokenTooLarge, len(token), c.maxTokenLength)
	}
	return token, nil
}

// Decode parses tokenString and returns its payload and header.
//
// With verify set the header algorithm must satisfy the pin from opts or the
// codec configuration, the signature must verify under key, and object
// payloads must pass the configured ClaimsChecker. Without a pin any
// registered algorithm except "none" is accepted.
//
// With verify unset the key is ignored and only the token structure is
// checked. Use this to inspect tokens that are not trusted.
func (c *Codec) Decode(tokenString string, key Key, verify bool, opts ...DecodeOptions) (any, Header, error) {
	token, err := core.Parse(tokenString, verify, c.maxTokenLength)
	if err != nil {
		return c.reject("", err)
	}

	header := Header(token.Header)
	if !verify {
		return token.Payload, header, nil
	}

	options := c.decodeOptions(opts)
	alg := Algorithm(token.Alg())

	if !options.allows(alg) {
		return c.reject(alg, fmt.Errorf("%w: token algorithm %q is not accepted", ErrIncorrectAlgorithm, alg))
	}

	method, err := signing.Resolve(string(alg))
	if err != nil {
		return c.reject(alg, err)
	}

	signature, err := token.DecodeSignature()
	if err != nil {
		return c.reject(alg, err)
	}

	valid, err := method.Verify(key, []byte(token.SigningInput), signature)
	if err != nil {
		return c.reject(alg, err)
	}
	if !valid {
		return c.reject(alg, ErrVerificationFailed)
	}

	if c.checker != nil {
		if claims, ok := token.Payload.(map[string]any); ok {
			if err := c.checker.CheckClaims(claims, options); err != nil {
				return c.reject(alg, err)
			}
		}
	}

	return token.Payload, header, nil
}

// decodeOptions layers per-call options over the codec configuration
func (c *Codec) decodeOptions(opts []DecodeOptions) DecodeOptions {
	options := DecodeOptions{
		Algorithms:       c.algorithms,
		Issuer:           c.issuer,
		VerifyIssuer:     c.verifyIssuer,
		VerifyExpiration: c.verifyExpiration,
		Leeway:           c.leeway,
	}

	for _, opt := range opts {
		if opt.Algorithm != "" || len(opt.Algorithms) > 0 {
			options.Algorithm = opt.Algorithm
			options.Algorithms = opt.Algorithms
		}
		if opt.Issuer != "" {
			options.Issuer = opt.Issuer
		}
		if opt.Leeway > 0 {
			options.Leeway = opt.Leeway
		}
		options.VerifyIssuer = options.VerifyIssuer || opt.VerifyIssuer
		options.VerifyExpiration = options.VerifyExpiration || opt.VerifyExpiration
	}

	return options
}

func (c *Codec) reject(alg Algorithm, err error) (any, Header, error) {
	c.logger.WithFields(logrus.Fields{
		"alg":   alg,
		"error": err,
	}).Debug("token rejected")
	return nil, nil, err
}
