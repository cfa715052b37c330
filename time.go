package jwt

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// maxUnixTime is 9999-12-31T23:59:59Z
const maxUnixTime = 253402300799

// NumericDate represents a JSON numeric date value as specified in RFC 7519.
// It stores time as Unix timestamp (seconds since epoch) for JWT compatibility.
type NumericDate struct {
	time.Time
}

// NewNumericDate creates a new NumericDate from time.Time truncated to whole seconds
func NewNumericDate(t time.Time) *NumericDate {
	return &NumericDate{Time: t.Truncate(time.Second)}
}

// MarshalJSON implements json.Marshaler interface
func (date NumericDate) MarshalJSON() ([]byte, error) {
	if date.Time.IsZero() {
		return []byte("null"), nil
	}

	return fmt.Appendf(nil, "%d", date.Unix()), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (date *NumericDate) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		date.Time = time.Time{}
		return nil
	}

	var value any
	if err := json.Unmarshal(b, &value); err != nil {
		return fmt.Errorf("invalid numeric date: %w", err)
	}

	parsed, err := numericDateFrom(value)
	if err != nil {
		return err
	}
	*date = parsed
	return nil
}

// numericDateFrom converts a decoded claim value into a NumericDate.
// Fractional seconds are accepted and truncated.
func numericDateFrom(value any) (NumericDate, error) {
	var unix float64
	switch v := value.(type) {
	case float64:
		unix = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return NumericDate{}, fmt.Errorf("invalid unix timestamp: %s", v)
		}
		unix = f
	case int:
		unix = float64(v)
	case int64:
		unix = float64(v)
	default:
		return NumericDate{}, fmt.Errorf("invalid time format: expected unix timestamp, got %T", value)
	}

	if math.IsNaN(unix) || unix < 0 || unix > maxUnixTime {
		return NumericDate{}, fmt.Errorf("invalid unix timestamp: %v", unix)
	}
	return NumericDate{Time: time.Unix(int64(unix), 0).UTC()}, nil
}
