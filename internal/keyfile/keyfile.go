// Package keyfile loads signing and verification keys from PEM and JWK
// documents.
package keyfile

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/cybergodev/jwtcodec/internal/signing"
)

var (
	ErrNoKey          = errors.New("no key found")
	ErrUnsupportedKey = errors.New("unsupported key type")
)

// Load reads path and parses it as a JWK or JWK set when it holds a JSON
// object, and as PEM otherwise. kid selects a key from a JWK set.
func Load(path, kid string) (signing.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return signing.Key{}, fmt.Errorf("failed to read key file: %w", err)
	}
	return Parse(data, kid)
}

// Parse parses a PEM or JWK document. See Load.
func Parse(data []byte, kid string) (signing.Key, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return ParseJWK(trimmed, kid)
	}
	return ParsePEM(trimmed)
}

// ParsePEM parses the first PEM block of data. Private keys may be PKCS#1,
// PKCS#8 or SEC 1; public keys PKIX or PKCS#1; certificates yield their
// public key.
func ParsePEM(data []byte) (signing.Key, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return signing.Key{}, fmt.Errorf("%w: no PEM block", ErrNoKey)
	}

	switch {
	case block.Type == "PRIVATE KEY" || strings.HasSuffix(block.Type, " PRIVATE KEY"):
		return parsePrivateKey(block.Bytes)
	case block.Type == "PUBLIC KEY" || strings.HasSuffix(block.Type, " PUBLIC KEY"):
		return parsePublicKey(block.Bytes)
	case block.Type == "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return signing.Key{}, fmt.Errorf("failed to parse certificate: %w", err)
		}
		return fromCrypto(cert.PublicKey)
	default:
		return signing.Key{}, fmt.Errorf("unexpected PEM block: %s", block.Type)
	}
}

func parsePrivateKey(der []byte) (signing.Key, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return signing.NewRSAPrivateKey(key), nil
	}
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return fromCrypto(key)
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return signing.NewECPrivateKey(key), nil
	}
	return signing.Key{}, errors.New("failed to parse private key")
}

func parsePublicKey(der []byte) (signing.Key, error) {
	if key, err := x509.ParsePKIXPublicKey(der); err == nil {
		return fromCrypto(key)
	}
	if key, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return signing.NewRSAPublicKey(key), nil
	}
	return signing.Key{}, errors.New("failed to parse public key")
}

// ParseJWK parses a single JWK or a JWK set. From a set, the key with ID kid
// is chosen, or the only key when kid is empty.
func ParseJWK(data []byte, kid string) (signing.Key, error) {
	set, err := jwk.Parse(data)
	if err != nil {
		return signing.Key{}, fmt.Errorf("failed to parse JWK: %w", err)
	}

	var key jwk.Key
	switch {
	case kid != "":
		found, ok := set.LookupKeyID(kid)
		if !ok {
			return signing.Key{}, fmt.Errorf("%w: no JWK with kid %q", ErrNoKey, kid)
		}
		key = found
	case set.Len() == 1:
		key, _ = set.Key(0)
	case set.Len() == 0:
		return signing.Key{}, fmt.Errorf("%w: empty JWK set", ErrNoKey)
	default:
		return signing.Key{}, fmt.Errorf("%w: JWK set holds %d keys, select one by kid", ErrNoKey, set.Len())
	}

	var raw any
	if err := key.Raw(&raw); err != nil {
		return signing.Key{}, fmt.Errorf("failed to export JWK: %w", err)
	}
	return fromCrypto(raw)
}

// fromCrypto accepts the key types produced by x509 and jwk
func fromCrypto(key any) (signing.Key, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey, *rsa.PublicKey, *ecdsa.PrivateKey, *ecdsa.PublicKey,
		ed25519.PrivateKey, ed25519.PublicKey, []byte:
		return signing.KeyFromCrypto(k)
	default:
		return signing.Key{}, fmt.Errorf("%w: %T", ErrUnsupportedKey, key)
	}
}
