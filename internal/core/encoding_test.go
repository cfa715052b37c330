package core

import (
	"bytes"
	"testing"
)

func TestEncodeSegmentIsURLSafe(t *testing.T) {
	// 0xfb 0xff encodes to "+/8=" in the standard alphabet
	got := EncodeSegment([]byte{0xfb, 0xff})
	if got != "-_8" {
		t.Errorf("EncodeSegment() = %q, want %q", got, "-_8")
	}
}

func TestDecodeSegmentBytes(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		want    []byte
		wantErr bool
	}{
		{"url alphabet", "-_8", []byte{0xfb, 0xff}, false},
		{"padded input", "-_8=", []byte{0xfb, 0xff}, false},
		{"no padding needed", "c2lnbg", []byte("sign"), false},
		{"empty", "", []byte{}, false},
		{"impossible length", "abcde", nil, true},
		{"invalid characters", "!!!invalid!!!", nil, true},
		{"standard alphabet rejected chars", "a b=", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSegmentBytes(tt.segment)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeSegmentBytes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !bytes.Equal(got, tt.want) {
				t.Errorf("DecodeSegmentBytes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for n := 0; n < 64; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i*37 + n)
		}
		decoded, err := DecodeSegmentBytes(EncodeSegment(data))
		if err != nil {
			t.Fatalf("length %d: %v", n, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("length %d: round trip mismatch", n)
		}
	}
}

func TestDecodeSegment(t *testing.T) {
	var dest map[string]any
	if err := DecodeSegment("eyJhbGciOiJub25lIn0", &dest); err != nil {
		t.Fatalf("DecodeSegment failed: %v", err)
	}
	if dest["alg"] != "none" {
		t.Errorf("alg = %v, want none", dest["alg"])
	}

	if err := DecodeSegment("bm90IGpzb24", &dest); err == nil {
		t.Error("Expected error for non-JSON segment")
	}
}

func TestMarshalJSON(t *testing.T) {
	got, err := MarshalJSON(map[string]any{"user_id": "some@user.tld", "html": "<a&b>"})
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	want := `{"html":"<a&b>","user_id":"some@user.tld"}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}

	if _, err := MarshalJSON(make(chan int)); err == nil {
		t.Error("Expected error for unsupported type")
	}
}

func TestIsObject(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`{}`, true},
		{` {"a":1}`, true},
		{`[]`, false},
		{`"str"`, false},
		{`null`, false},
		{``, false},
	}
	for _, tt := range tests {
		if got := IsObject([]byte(tt.raw)); got != tt.want {
			t.Errorf("IsObject(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
