package core

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var urlToStd = strings.NewReplacer("-", "+", "_", "/")

// EncodeSegment encodes data with the URL-safe base64 alphabet without padding
func EncodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeSegmentBytes decodes a base64url segment. Missing padding is restored
// before decoding; an already padded segment is accepted as well.
func DecodeSegmentBytes(segment string) ([]byte, error) {
	s := urlToStd.Replace(segment)

	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	case 1:
		return nil, fmt.Errorf("invalid base64url length %d", len(segment))
	}

	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64url: %w", err)
	}
	return decoded, nil
}

// DecodeSegment decodes a base64url encoded JSON segment into dest
func DecodeSegment(segment string, dest any) error {
	buf, err := DecodeSegmentBytes(segment)
	if err != nil {
		return err
	}

	if err := UnmarshalJSON(buf, dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// UnmarshalJSON decodes a single JSON value from data into dest. Numbers are
// kept as json.Number so integers beyond 2^53 survive a round trip.
func UnmarshalJSON(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// MarshalJSON encodes v as compact JSON. HTML characters are left unescaped so
// the output matches what other JWT implementations produce for the same value.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// IsObject reports whether raw holds a JSON object
func IsObject(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}
