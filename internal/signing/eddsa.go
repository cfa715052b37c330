package signing

import (
	"crypto"
	"crypto/ed25519"
	"fmt"
)

// ed25519Method signs the signing input directly; Ed25519 has no separate digest
type ed25519Method struct {
	name string
}

func (m *ed25519Method) Alg() string       { return m.name }
func (m *ed25519Method) Hash() crypto.Hash { return 0 }
func (m *ed25519Method) Family() Family    { return FamilyEdDSA }

func (m *ed25519Method) Sign(key Key, signingInput []byte) ([]byte, error) {
	if key.Kind() != KindEd25519 {
		return nil, keyMismatch(m.name, key)
	}
	if key.edPrivate == nil {
		return nil, fmt.Errorf("%w: %s signing requires a private key", ErrIncorrectAlgorithm, m.name)
	}
	return ed25519.Sign(key.edPrivate, signingInput), nil
}

func (m *ed25519Method) Verify(key Key, signingInput, signature []byte) (bool, error) {
	if key.Kind() != KindEd25519 || len(key.edPublic) != ed25519.PublicKeySize {
		return false, keyMismatch(m.name, key)
	}
	return ed25519.Verify(key.edPublic, signingInput, signature), nil
}
