package signing

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"math/big"
)

// ecdsaMethod binds one curve to one digest. Signatures use the fixed-width
// r||s encoding, keySize bytes per integer.
type ecdsaMethod struct {
	name    string
	hash    crypto.Hash
	curve   string
	keySize int
}

func (m *ecdsaMethod) Alg() string       { return m.name }
func (m *ecdsaMethod) Hash() crypto.Hash { return m.hash }
func (m *ecdsaMethod) Family() Family    { return FamilyECDSA }

func (m *ecdsaMethod) checkCurve(key Key) error {
	if key.Kind() != KindEC {
		return keyMismatch(m.name, key)
	}
	if curve := key.Curve(); curve != m.curve {
		return fmt.Errorf("%w: %s requires curve %s, key uses %q", ErrIncorrectAlgorithm, m.name, m.curve, curve)
	}
	if key.ecPublic.X == nil || key.ecPublic.Y == nil {
		return fmt.Errorf("%w: %s key has no public point", ErrIncorrectAlgorithm, m.name)
	}
	return nil
}

func (m *ecdsaMethod) Sign(key Key, signingInput []byte) ([]byte, error) {
	if err := m.checkCurve(key); err != nil {
		return nil, err
	}
	if !key.HasPrivate() {
		return nil, fmt.Errorf("%w: %s signing requires a private key", ErrIncorrectAlgorithm, m.name)
	}

	r, s, err := ecdsa.Sign(rand.Reader, key.ecPrivate, digest(m.hash, signingInput))
	if err != nil {
		return nil, fmt.Errorf("%s signing failed: %w", m.name, err)
	}

	sig := make([]byte, 2*m.keySize)
	r.FillBytes(sig[:m.keySize])
	s.FillBytes(sig[m.keySize:])
	return sig, nil
}

func (m *ecdsaMethod) Verify(key Key, signingInput, signature []byte) (bool, error) {
	if err := m.checkCurve(key); err != nil {
		return false, err
	}

	if len(signature) != 2*m.keySize {
		return false, nil
	}

	r := new(big.Int).SetBytes(signature[:m.keySize])
	s := new(big.Int).SetBytes(signature[m.keySize:])

	return ecdsa.Verify(key.ecPublic, digest(m.hash, signingInput), r, s), nil
}
