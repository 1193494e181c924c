package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		input string
		want  []byte
		err   error
	}{
		{"3102", []byte{0x31, 0x02}, nil},
		{"310203", []byte{0x31, 0x02, 0x03}, nil},
		{"a0ff10", []byte{0xA0, 0xFF, 0x10}, nil},
		{"AbCd", []byte{0xAB, 0xCD}, nil},
		{"3102\x00ZZ", []byte{0x31, 0x02}, nil},
		{"310", nil, ErrHexValuePair},
		{"31G2", nil, ErrTwoWireCharacter},
		{"31", nil, ErrTwoWireCommandLength},
		{"", nil, ErrTwoWireCommandLength},
		{"12345678901", nil, ErrTwoWireCommandTooLong},
	}

	for _, tt := range tests {
		dst := make([]byte, 5)
		n, err := DecodeHex(dst, []byte(tt.input))
		if !errors.Is(err, tt.err) {
			t.Errorf("DecodeHex(%q): expected error %v, got %v", tt.input, tt.err, err)
			continue
		}
		if err == nil && !bytes.Equal(dst[:n], tt.want) {
			t.Errorf("DecodeHex(%q): expected % X, got % X", tt.input, tt.want, dst[:n])
		}
	}
}

func TestDecodeHexCharacterCheckedFirst(t *testing.T) {
	// An invalid character wins over the length checks
	dst := make([]byte, 2)
	if _, err := DecodeHex(dst, []byte("3G")); !errors.Is(err, ErrTwoWireCharacter) {
		t.Errorf("Expected ErrTwoWireCharacter, got %v", err)
	}
	if _, err := DecodeHex(dst, []byte("0102030405z")); !errors.Is(err, ErrTwoWireCharacter) {
		t.Errorf("Expected ErrTwoWireCharacter, got %v", err)
	}
}

func TestDecodeHexFillsBuffer(t *testing.T) {
	dst := make([]byte, 3)
	n, err := DecodeHex(dst, []byte("010203"))
	if err != nil || n != 3 {
		t.Fatalf("Expected 3 bytes, got %d (%v)", n, err)
	}
	if _, err := DecodeHex(dst, []byte("0102030")); !errors.Is(err, ErrTwoWireCommandTooLong) {
		t.Errorf("Expected ErrTwoWireCommandTooLong, got %v", err)
	}
}

func TestHexRoundTrip(t *testing.T) {
	inputs := []string{
		"3102",
		"310203",
		"deadbeef",
		"00ff00ff00",
		"0123456789abcdefABCDEF00",
	}

	for _, input := range inputs {
		dst := make([]byte, len(input))
		n, err := DecodeHex(dst, []byte(input))
		if err != nil {
			t.Errorf("DecodeHex(%q) failed: %v", input, err)
			continue
		}

		got := string(AppendHex(nil, dst[:n]))
		if want := strings.ToUpper(input); got != want {
			t.Errorf("Round trip of %q: expected %q, got %q", input, want, got)
		}
	}
}

func TestHexByte(t *testing.T) {
	tests := map[byte]string{
		0x00: "0x00",
		0x03: "0x03",
		0x10: "0x10",
		0xAB: "0xAB",
		0xFF: "0xFF",
	}
	for b, want := range tests {
		if got := hexByte(b); got != want {
			t.Errorf("hexByte(%d): expected %s, got %s", b, want, got)
		}
	}
}
