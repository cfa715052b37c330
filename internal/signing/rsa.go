package signing

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// rsaMethod covers RSASSA-PKCS1-v1_5 (RS*) and RSASSA-PSS (PS*). PSS signs
// with a salt as long as the digest and verifies with the salt length taken
// from the signature; MGF1 uses the same digest.
type rsaMethod struct {
	name string
	hash crypto.Hash
	pss  bool
}

func (m *rsaMethod) Alg() string       { return m.name }
func (m *rsaMethod) Hash() crypto.Hash { return m.hash }

func (m *rsaMethod) Family() Family {
	if m.pss {
		return FamilyRSAPSS
	}
	return FamilyRSAPKCS1
}

func (m *rsaMethod) Sign(key Key, signingInput []byte) ([]byte, error) {
	if key.Kind() != KindRSA || !key.HasPrivate() {
		return nil, keyMismatch(m.name, key)
	}

	hashed := digest(m.hash, signingInput)

	var (
		sig []byte
		err error
	)
	if m.pss {
		sig, err = rsa.SignPSS(rand.Reader, key.rsaPrivate, m.hash, hashed, &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
		})
	} else {
		sig, err = rsa.SignPKCS1v15(rand.Reader, key.rsaPrivate, m.hash, hashed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s signing failed: %w", m.name, err)
	}
	return sig, nil
}

func (m *rsaMethod) Verify(key Key, signingInput, signature []byte) (bool, error) {
	if key.Kind() != KindRSA || key.rsaPublic == nil || key.rsaPublic.N == nil {
		return false, keyMismatch(m.name, key)
	}

	hashed := digest(m.hash, signingInput)

	if m.pss {
		err := rsa.VerifyPSS(key.rsaPublic, m.hash, hashed, signature, &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthAuto,
		})
		return err == nil, nil
	}
	return rsa.VerifyPKCS1v15(key.rsaPublic, m.hash, hashed, signature) == nil, nil
}
