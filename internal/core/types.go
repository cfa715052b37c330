package core

import (
	"fmt"
)

const (
	// DefaultMaxTokenLength bounds the size of a token accepted by Parse
	DefaultMaxTokenLength = 8192

	segmentSeparator = '.'
)

// RawToken is a compact token split into its parts. HeaderJSON and PayloadJSON
// are the decoded first two segments and Header and Payload their parsed
// values. SigningInput is the transmitted "header.payload" text the signature
// was computed over.
type RawToken struct {
	Raw              string
	HeaderSegment    string
	PayloadSegment   string
	SignatureSegment string
	SigningInput     string

	HeaderJSON  []byte
	PayloadJSON []byte
	Header      map[string]any
	Payload     any
}

// Alg returns the header's "alg" value, or "" when it is missing or not a string
func (t *RawToken) Alg() string {
	alg, _ := t.Header["alg"].(string)
	return alg
}

// DecodeSignature decodes the signature segment
func (t *RawToken) DecodeSignature() ([]byte, error) {
	if t.SignatureSegment == "" {
		return nil, nil
	}
	sig, err := DecodeSegmentBytes(t.SignatureSegment)
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %v", ErrSegmentEncoding, err)
	}
	return sig, nil
}
