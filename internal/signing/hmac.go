package signing

import (
	"crypto"
	"crypto/hmac"

	"github.com/cybergodev/jwtcodec/internal/security"
)

// hmacMethod signs with a shared secret. A non-zero size truncates the MAC to
// its first size bytes (HS512256 is HMAC-SHA-512 cut to 256 bits).
type hmacMethod struct {
	name string
	hash crypto.Hash
	size int
}

func (m *hmacMethod) Alg() string       { return m.name }
func (m *hmacMethod) Hash() crypto.Hash { return m.hash }
func (m *hmacMethod) Family() Family    { return FamilyHMAC }

func (m *hmacMethod) mac(secret, signingInput []byte) []byte {
	secureKey := security.NewSecureBytesFromSlice(secret)
	defer secureKey.Destroy()

	hasher := hmac.New(m.hash.New, secureKey.Bytes())
	hasher.Write(signingInput)
	sum := hasher.Sum(nil)

	if m.size > 0 && m.size < len(sum) {
		truncated := make([]byte, m.size)
		copy(truncated, sum)
		security.ZeroBytes(sum)
		return truncated
	}
	return sum
}

func (m *hmacMethod) Sign(key Key, signingInput []byte) ([]byte, error) {
	if key.Kind() != KindSecret {
		return nil, keyMismatch(m.name, key)
	}
	return m.mac(key.Secret(), signingInput), nil
}

func (m *hmacMethod) Verify(key Key, signingInput, signature []byte) (bool, error) {
	if key.Kind() != KindSecret {
		return false, keyMismatch(m.name, key)
	}

	expected := m.mac(key.Secret(), signingInput)
	defer security.ZeroBytes(expected)

	return security.SecureCompare(signature, expected), nil
}
