package jwt

import (
	"sync"
)

var (
	defaultCodec     *Codec
	defaultCodecOnce sync.Once
)

// Default returns the shared codec behind the package-level functions. It is
// built from DefaultConfig on first use.
func Default() *Codec {
	defaultCodecOnce.Do(func() {
		codec, err := New(DefaultConfig())
		if err != nil {
			panic("jwt: default configuration is invalid: " + err.Error())
		}
		defaultCodec = codec
	})
	return defaultCodec
}

// Encode signs payload with the default codec. See Codec.Encode.
func Encode(payload any, key Key, alg Algorithm, header Header) (string, error) {
	return Default().Encode(payload, key, alg, header)
}

// Decode parses and optionally verifies tokenString with the default codec.
// See Codec.Decode.
func Decode(tokenString string, key Key, verify bool, opts ...DecodeOptions) (any, Header, error) {
	return Default().Decode(tokenString, key, verify, opts...)
}
