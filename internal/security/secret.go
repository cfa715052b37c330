package security

import (
	"crypto/subtle"
	"runtime"
	"strings"
)

// SecureBytes holds a private copy of secret material that is wiped by Destroy
type SecureBytes struct {
	data []byte
}

// NewSecureBytesFromSlice copies data into a new SecureBytes
func NewSecureBytesFromSlice(data []byte) *SecureBytes {
	secure := &SecureBytes{data: make([]byte, len(data))}
	copy(secure.data, data)
	return secure
}

// Bytes returns the held bytes; they are only valid until Destroy
func (s *SecureBytes) Bytes() []byte {
	return s.data
}

// Destroy zeroes the held bytes
func (s *SecureBytes) Destroy() {
	if s == nil {
		return
	}
	ZeroBytes(s.data)
	s.data = nil
}

// ZeroBytes overwrites data with zeros
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}
	clear(data)
	runtime.KeepAlive(data)
}

// SecureCompare reports whether a and b are equal in time independent of their contents
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

var weakPatterns = [...]string{
	"12345678", "87654321", "11111111", "00000000", "aaaaaaaa",
	"abcdefgh", "qwerty", "asdfgh", "zxcvbn", "password",
	"letmein", "welcome", "default", "example", "secret",
	"changeme", "admin", "test",
}

// IsWeakKey reports whether an HMAC secret is short, repetitive or built from
// well-known words and keyboard runs. It is advisory: callers decide whether
// to reject or merely report such a key.
func IsWeakKey(key []byte) bool {
	if len(key) < 32 {
		return true
	}

	if isRepeated(key) || isSequential(key) || hasLowEntropy(key) {
		return true
	}

	lower := strings.ToLower(string(key))
	for _, pattern := range weakPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return false
}

// isRepeated detects keys made of one short unit repeated, such as "abab..."
func isRepeated(key []byte) bool {
	for unit := 1; unit <= 4 && unit*3 <= len(key); unit++ {
		repeated := true
		for i := unit; i < len(key); i++ {
			if key[i] != key[i%unit] {
				repeated = false
				break
			}
		}
		if repeated {
			return true
		}
	}
	return false
}

func isSequential(key []byte) bool {
	if len(key) < 8 {
		return false
	}
	ascending, descending := true, true
	for i := 1; i < 8; i++ {
		if key[i] != key[i-1]+1 {
			ascending = false
		}
		if key[i] != key[i-1]-1 {
			descending = false
		}
	}
	return ascending || descending
}

// hasLowEntropy flags keys with few distinct bytes or a single character class
func hasLowEntropy(key []byte) bool {
	var seen [256]bool
	unique := 0
	var lower, upper, digit, other bool

	for _, b := range key {
		if !seen[b] {
			seen[b] = true
			unique++
		}
		switch {
		case b >= 'a' && b <= 'z':
			lower = true
		case b >= 'A' && b <= 'Z':
			upper = true
		case b >= '0' && b <= '9':
			digit = true
		default:
			other = true
		}
	}

	if float64(unique)/float64(len(key)) < 0.3 {
		return true
	}

	classes := 0
	for _, present := range [...]bool{lower, upper, digit, other} {
		if present {
			classes++
		}
	}
	return classes < 2
}
