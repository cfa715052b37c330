package jwt

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"slices"
	"time"

	"github.com/cybergodev/jwtcodec/internal/signing"
)

// Algorithm identifies a token signing algorithm by its header "alg" value.
// Names are matched exactly and case-sensitively.
type Algorithm string

const (
	// AlgorithmNone produces unsigned tokens. It is only accepted on decode
	// when verification is off or when it is pinned explicitly.
	AlgorithmNone Algorithm = "none"

	// HMAC with SHA-2. HS512256 is HMAC-SHA-512 truncated to 256 bits.
	AlgorithmHS256    Algorithm = "HS256"
	AlgorithmHS384    Algorithm = "HS384"
	AlgorithmHS512    Algorithm = "HS512"
	AlgorithmHS512256 Algorithm = "HS512256"

	// RSASSA-PKCS1-v1_5
	AlgorithmRS256 Algorithm = "RS256"
	AlgorithmRS384 Algorithm = "RS384"
	AlgorithmRS512 Algorithm = "RS512"

	// RSASSA-PSS
	AlgorithmPS256 Algorithm = "PS256"
	AlgorithmPS384 Algorithm = "PS384"
	AlgorithmPS512 Algorithm = "PS512"

	// ECDSA on P-256, P-384 and P-521
	AlgorithmES256 Algorithm = "ES256"
	AlgorithmES384 Algorithm = "ES384"
	AlgorithmES512 Algorithm = "ES512"

	AlgorithmED25519 Algorithm = "ED25519"
)

// DefaultAlgorithm is used by Encode when no algorithm is given
const DefaultAlgorithm = AlgorithmHS256

// Algorithms returns every supported algorithm in registry order
func Algorithms() []Algorithm {
	names := signing.Algorithms()
	algs := make([]Algorithm, len(names))
	for i, name := range names {
		algs[i] = Algorithm(name)
	}
	return algs
}

// Supported reports whether a names a registered algorithm
func (a Algorithm) Supported() bool {
	_, err := signing.Resolve(string(a))
	return err == nil
}

func (a Algorithm) String() string {
	return string(a)
}

// Header is the decoded JOSE header of a token
type Header map[string]any

// Alg returns the "alg" member, or "" when it is missing or not a string
func (h Header) Alg() string {
	alg, _ := h["alg"].(string)
	return alg
}

// Clone returns a shallow copy of h
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	out := make(Header, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	return out
}

// DecodeOptions narrows what Decode accepts. Zero fields fall back to the
// codec configuration; the boolean switches are additive.
type DecodeOptions struct {
	// Algorithm pins the single algorithm the token header must declare
	Algorithm Algorithm `yaml:"algorithm" json:"algorithm"`

	// Algorithms pins a set of acceptable algorithms. It is ignored when
	// Algorithm is set.
	Algorithms []Algorithm `yaml:"algorithms" json:"algorithms"`

	// Issuer is the expected "iss" claim, checked when VerifyIssuer is set
	Issuer string `yaml:"issuer" json:"issuer"`

	VerifyIssuer     bool `yaml:"verify_issuer" json:"verify_issuer"`
	VerifyExpiration bool `yaml:"verify_expiration" json:"verify_expiration"`

	// Leeway widens the exp and nbf windows to absorb clock skew
	Leeway time.Duration `yaml:"leeway" json:"leeway"`
}

// pinned returns the algorithms the header must match, or nil when none are pinned
func (o *DecodeOptions) pinned() []Algorithm {
	if o.Algorithm != "" {
		return []Algorithm{o.Algorithm}
	}
	return o.Algorithms
}

// allows reports whether alg satisfies the pin. With no pin every algorithm
// except "none" is allowed.
func (o *DecodeOptions) allows(alg Algorithm) bool {
	pins := o.pinned()
	if len(pins) == 0 {
		return alg != AlgorithmNone
	}
	return slices.Contains(pins, alg)
}

// Key is the key material passed to Encode and Decode. Build one with the
// New*Key constructors or KeyFromCrypto; the zero Key carries no material and
// only works with AlgorithmNone.
type Key = signing.Key

// KeyKind tags the family of a Key
type KeyKind = signing.KeyKind

const (
	KeyKindNone    = signing.KindNone
	KeyKindSecret  = signing.KindSecret
	KeyKindRSA     = signing.KindRSA
	KeyKindEC      = signing.KindEC
	KeyKindEd25519 = signing.KindEd25519
)

// NewSecretKey wraps an HMAC secret
func NewSecretKey(secret []byte) Key { return signing.NewSecretKey(secret) }

// NewSecretKeyString wraps an HMAC secret given as a string
func NewSecretKeyString(secret string) Key { return signing.NewSecretKeyString(secret) }

func NewRSAPrivateKey(key *rsa.PrivateKey) Key { return signing.NewRSAPrivateKey(key) }
func NewRSAPublicKey(key *rsa.PublicKey) Key   { return signing.NewRSAPublicKey(key) }

func NewECPrivateKey(key *ecdsa.PrivateKey) Key { return signing.NewECPrivateKey(key) }
func NewECPublicKey(key *ecdsa.PublicKey) Key   { return signing.NewECPublicKey(key) }

func NewEd25519PrivateKey(key ed25519.PrivateKey) (Key, error) {
	return signing.NewEd25519PrivateKey(key)
}

func NewEd25519PublicKey(key ed25519.PublicKey) (Key, error) {
	return signing.NewEd25519PublicKey(key)
}

// NewEd25519Seed derives an Ed25519 signing key from a 32-byte seed
func NewEd25519Seed(seed []byte) (Key, error) { return signing.NewEd25519Seed(seed) }

// KeyFromCrypto converts crypto package key types, []byte and string secrets into a Key
func KeyFromCrypto(key any) (Key, error) { return signing.KeyFromCrypto(key) }
