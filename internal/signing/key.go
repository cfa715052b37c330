package signing

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"
)

// KeyKind tags the family of key material held by a Key
type KeyKind int

const (
	KindNone KeyKind = iota
	KindSecret
	KindRSA
	KindEC
	KindEd25519
)

func (k KeyKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSecret:
		return "secret"
	case KindRSA:
		return "rsa"
	case KindEC:
		return "ec"
	case KindEd25519:
		return "ed25519"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

// Key is key material handed to a signing method. Exactly one family is set,
// selected by kind. The zero value carries no key and is only usable with the
// "none" algorithm.
type Key struct {
	kind KeyKind

	secret []byte

	rsaPrivate *rsa.PrivateKey
	rsaPublic  *rsa.PublicKey

	ecPrivate *ecdsa.PrivateKey
	ecPublic  *ecdsa.PublicKey

	edPrivate ed25519.PrivateKey
	edPublic  ed25519.PublicKey
}

// NewSecretKey wraps an HMAC secret. The slice is referenced, not copied.
func NewSecretKey(secret []byte) Key {
	if secret == nil {
		secret = []byte{}
	}
	return Key{kind: KindSecret, secret: secret}
}

// NewSecretKeyString wraps an HMAC secret given as a string
func NewSecretKeyString(secret string) Key {
	return NewSecretKey([]byte(secret))
}

func NewRSAPrivateKey(key *rsa.PrivateKey) Key {
	if key == nil {
		return Key{}
	}
	return Key{kind: KindRSA, rsaPrivate: key, rsaPublic: &key.PublicKey}
}

func NewRSAPublicKey(key *rsa.PublicKey) Key {
	if key == nil {
		return Key{}
	}
	return Key{kind: KindRSA, rsaPublic: key}
}

func NewECPrivateKey(key *ecdsa.PrivateKey) Key {
	if key == nil {
		return Key{}
	}
	return Key{kind: KindEC, ecPrivate: key, ecPublic: &key.PublicKey}
}

func NewECPublicKey(key *ecdsa.PublicKey) Key {
	if key == nil {
		return Key{}
	}
	return Key{kind: KindEC, ecPublic: key}
}

func NewEd25519PrivateKey(key ed25519.PrivateKey) (Key, error) {
	if len(key) != ed25519.PrivateKeySize {
		return Key{}, fmt.Errorf("ed25519 private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(key))
	}
	return Key{kind: KindEd25519, edPrivate: key, edPublic: key.Public().(ed25519.PublicKey)}, nil
}

func NewEd25519PublicKey(key ed25519.PublicKey) (Key, error) {
	if len(key) != ed25519.PublicKeySize {
		return Key{}, fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	return Key{kind: KindEd25519, edPublic: key}, nil
}

// NewEd25519Seed derives an Ed25519 signing key from a 32-byte seed
func NewEd25519Seed(seed []byte) (Key, error) {
	if len(seed) != ed25519.SeedSize {
		return Key{}, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return NewEd25519PrivateKey(ed25519.NewKeyFromSeed(seed))
}

// KeyFromCrypto converts key types from the crypto packages (as returned by
// x509 parsing) and raw secrets into a Key.
func KeyFromCrypto(key any) (Key, error) {
	switch k := key.(type) {
	case Key:
		return k, nil
	case []byte:
		return NewSecretKey(k), nil
	case string:
		return NewSecretKeyString(k), nil
	case *rsa.PrivateKey:
		return NewRSAPrivateKey(k), nil
	case *rsa.PublicKey:
		return NewRSAPublicKey(k), nil
	case *ecdsa.PrivateKey:
		return NewECPrivateKey(k), nil
	case *ecdsa.PublicKey:
		return NewECPublicKey(k), nil
	case ed25519.PrivateKey:
		return NewEd25519PrivateKey(k)
	case *ed25519.PrivateKey:
		return NewEd25519PrivateKey(*k)
	case ed25519.PublicKey:
		return NewEd25519PublicKey(k)
	case *ed25519.PublicKey:
		return NewEd25519PublicKey(*k)
	case nil:
		return Key{}, nil
	default:
		return Key{}, fmt.Errorf("unsupported key type %T", key)
	}
}

// Kind returns the key family
func (k Key) Kind() KeyKind {
	return k.kind
}

// IsZero reports whether k carries no key material
func (k Key) IsZero() bool {
	return k.kind == KindNone
}

// HasPrivate reports whether k can produce signatures. Crypto keys missing
// their private scalar or modulus count as public only.
func (k Key) HasPrivate() bool {
	switch k.kind {
	case KindSecret:
		return true
	case KindRSA:
		return k.rsaPrivate != nil && k.rsaPrivate.N != nil && k.rsaPrivate.D != nil
	case KindEC:
		return k.ecPrivate != nil && k.ecPrivate.D != nil
	case KindEd25519:
		return k.edPrivate != nil
	default:
		return false
	}
}

// Curve returns the elliptic curve name of an EC key, or "" for other kinds
func (k Key) Curve() string {
	if k.kind != KindEC || k.ecPublic == nil || k.ecPublic.Curve == nil {
		return ""
	}
	return k.ecPublic.Curve.Params().Name
}

// Secret returns the HMAC secret of a secret key
func (k Key) Secret() []byte {
	return k.secret
}

// Public returns the verification half of k. Secret keys are returned as is.
func (k Key) Public() Key {
	switch k.kind {
	case KindRSA:
		return Key{kind: KindRSA, rsaPublic: k.rsaPublic}
	case KindEC:
		return Key{kind: KindEC, ecPublic: k.ecPublic}
	case KindEd25519:
		return Key{kind: KindEd25519, edPublic: k.edPublic}
	default:
		return k
	}
}

func (k Key) String() string {
	if k.kind == KindEC {
		return fmt.Sprintf("ec(%s)", k.Curve())
	}
	return k.kind.String()
}
