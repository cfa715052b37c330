package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken is the parent of every structural decode failure
	ErrMalformedToken = errors.New("malformed token")

	ErrSegmentCount    = fmt.Errorf("%w: not enough or too many segments", ErrMalformedToken)
	ErrSegmentEncoding = fmt.Errorf("%w: invalid segment encoding", ErrMalformedToken)
	ErrTokenTooLarge   = fmt.Errorf("%w: token too large", ErrMalformedToken)
)

// splitSegments splits s on '.' into at most three parts and reports how many
// segments s actually has.
func splitSegments(s string) ([3]string, int) {
	var parts [3]string
	count := 1
	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] != segmentSeparator {
			continue
		}
		if count <= 3 {
			parts[count-1] = s[start:i]
		}
		count++
		start = i + 1
	}
	if count <= 3 {
		parts[count-1] = s[start:]
	}

	return parts, count
}

// Parse splits a compact token and decodes its header and payload segments.
//
// With verify set the token must have exactly three segments. Without it a
// token lacking the signature segment is still decoded so that a bad header or
// payload is reported as ErrSegmentEncoding; the token is then rejected with
// ErrSegmentCount all the same. maxLength <= 0 selects DefaultMaxTokenLength.
func Parse(tokenString string, verify bool, maxLength int) (*RawToken, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxTokenLength
	}
	if len(tokenString) > maxLength {
		return nil, fmt.Errorf("%w: maximum %d characters allowed", ErrTokenTooLarge, maxLength)
	}

	parts, count := splitSegments(tokenString)
	switch {
	case count == 3:
	case count == 2 && !verify:
	default:
		return nil, ErrSegmentCount
	}

	token := &RawToken{
		Raw:              tokenString,
		HeaderSegment:    parts[0],
		PayloadSegment:   parts[1],
		SignatureSegment: parts[2],
		SigningInput:     tokenString[:len(parts[0])+1+len(parts[1])],
	}

	var err error
	if token.HeaderJSON, err = DecodeSegmentBytes(parts[0]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrSegmentEncoding, err)
	}
	if token.PayloadJSON, err = DecodeSegmentBytes(parts[1]); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrSegmentEncoding, err)
	}
	if err := UnmarshalJSON(token.HeaderJSON, &token.Header); err != nil || token.Header == nil {
		return nil, fmt.Errorf("%w: header is not a JSON object", ErrSegmentEncoding)
	}
	if err := UnmarshalJSON(token.PayloadJSON, &token.Payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrSegmentEncoding, err)
	}

	if count != 3 {
		return nil, ErrSegmentCount
	}

	return token, nil
}

// SigningInput joins the encoded header and payload JSON with a '.'
func SigningInput(headerJSON, payloadJSON []byte) string {
	return EncodeSegment(headerJSON) + "." + EncodeSegment(payloadJSON)
}

// Serialize appends the encoded signature to signingInput. An empty signature
// still produces the trailing '.', so the result always has three segments.
func Serialize(signingInput string, signature []byte) string {
	sig := EncodeSegment(signature)

	buf := make([]byte, 0, len(signingInput)+1+len(sig))
	buf = append(buf, signingInput...)
	buf = append(buf, segmentSeparator)
	buf = append(buf, sig...)

	return string(buf)
}
