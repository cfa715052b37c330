package signing

import (
	"crypto"
	"fmt"
)

var (
	MethodNone = &noneMethod{}

	MethodHS256    = &hmacMethod{name: "HS256", hash: crypto.SHA256}
	MethodHS384    = &hmacMethod{name: "HS384", hash: crypto.SHA384}
	MethodHS512    = &hmacMethod{name: "HS512", hash: crypto.SHA512}
	MethodHS512256 = &hmacMethod{name: "HS512256", hash: crypto.SHA512, size: 32}

	MethodRS256 = &rsaMethod{name: "RS256", hash: crypto.SHA256}
	MethodRS384 = &rsaMethod{name: "RS384", hash: crypto.SHA384}
	MethodRS512 = &rsaMethod{name: "RS512", hash: crypto.SHA512}

	MethodPS256 = &rsaMethod{name: "PS256", hash: crypto.SHA256, pss: true}
	MethodPS384 = &rsaMethod{name: "PS384", hash: crypto.SHA384, pss: true}
	MethodPS512 = &rsaMethod{name: "PS512", hash: crypto.SHA512, pss: true}

	MethodES256 = &ecdsaMethod{name: "ES256", hash: crypto.SHA256, curve: "P-256", keySize: 32}
	MethodES384 = &ecdsaMethod{name: "ES384", hash: crypto.SHA384, curve: "P-384", keySize: 48}
	MethodES512 = &ecdsaMethod{name: "ES512", hash: crypto.SHA512, curve: "P-521", keySize: 66}

	MethodED25519 = &ed25519Method{name: "ED25519"}
)

// ordered is the registry in presentation order. New algorithms are added
// here deliberately; nothing is discovered at runtime.
var ordered = [...]Method{
	MethodNone,
	MethodHS256, MethodHS384, MethodHS512, MethodHS512256,
	MethodRS256, MethodRS384, MethodRS512,
	MethodPS256, MethodPS384, MethodPS512,
	MethodES256, MethodES384, MethodES512,
	MethodED25519,
}

var registry = func() map[string]Method {
	m := make(map[string]Method, len(ordered))
	for _, method := range ordered {
		m[method.Alg()] = method
	}
	return m
}()

// Resolve returns the method registered under alg. Matching is exact and
// case-sensitive.
func Resolve(alg string) (Method, error) {
	method, ok := registry[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
	return method, nil
}

// Algorithms lists the registered algorithm names
func Algorithms() []string {
	names := make([]string, len(ordered))
	for i, method := range ordered {
		names[i] = method.Alg()
	}
	return names
}
