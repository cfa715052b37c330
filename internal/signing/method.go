package signing

import (
	"crypto"
	"errors"
	"fmt"

	_ "crypto/sha256"
	_ "crypto/sha512"
)

var (
	// ErrUnsupportedAlgorithm is returned for algorithm names outside the registry
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrIncorrectAlgorithm is returned when the key cannot be used with the
	// algorithm: wrong family, wrong curve or missing key half.
	ErrIncorrectAlgorithm = errors.New("incorrect algorithm")
)

// Family groups algorithms that share a signing scheme
type Family int

const (
	FamilyNone Family = iota
	FamilyHMAC
	FamilyRSAPKCS1
	FamilyRSAPSS
	FamilyECDSA
	FamilyEdDSA
)

func (f Family) String() string {
	switch f {
	case FamilyNone:
		return "none"
	case FamilyHMAC:
		return "hmac"
	case FamilyRSAPKCS1:
		return "rsa-pkcs1"
	case FamilyRSAPSS:
		return "rsa-pss"
	case FamilyECDSA:
		return "ecdsa"
	case FamilyEdDSA:
		return "eddsa"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Method signs and verifies the signing input of a compact token.
//
// Verify reports a well-formed signature that does not match as false with a
// nil error. An error is reserved for keys the method cannot use, and always
// wraps ErrIncorrectAlgorithm.
type Method interface {
	Alg() string
	Hash() crypto.Hash
	Family() Family
	Sign(key Key, signingInput []byte) ([]byte, error)
	Verify(key Key, signingInput, signature []byte) (bool, error)
}

func keyMismatch(alg string, key Key) error {
	return fmt.Errorf("%w: %s cannot be used with a %s key", ErrIncorrectAlgorithm, alg, key)
}

func digest(hash crypto.Hash, data []byte) []byte {
	h := hash.New()
	h.Write(data)
	return h.Sum(nil)
}
