package core

import (
	"errors"
	"testing"
)

func TestTokenizerValidate(t *testing.T) {
	tok := NewTokenizer(' ', 32)

	tests := []struct {
		input string
		want  error
	}{
		{"scan", nil},
		{"led on", nil},
		{"gpio 25 -1.5,2", nil},
		{"I2C R 3102\r", nil},
		{"", ErrNoInput},
		{"led;on", ErrUnrecognizedInput},
		{"i2c r 0x31", nil},
		{"echo \"hi\"", ErrUnrecognizedInput},
		{"caf\xc3\xa9", ErrUnrecognizedInput},
	}

	for _, tt := range tests {
		if err := tok.Validate([]byte(tt.input)); !errors.Is(err, tt.want) {
			t.Errorf("Validate(%q): expected %v, got %v", tt.input, tt.want, err)
		}
	}
}

func TestTokenizerValidateCustomDelimiter(t *testing.T) {
	tok := NewTokenizer(':', 32)
	if err := tok.Validate([]byte("led:on")); err != nil {
		t.Errorf("Expected the delimiter to be accepted, got %v", err)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input      string
		token      string
		compacted  string
		hasArgs    bool
		argsLength int
		args       string
	}{
		{"led on", "led", "ledon", true, 2, "on"},
		{"scan", "scan", "scan", false, 0, ""},
		{"i2c r 3102", "i2c", "i2cr3102", true, 5, "r 3102"},
		{"  led   on  ", "led", "ledon", true, 2, "on"},
		{"say Hello  World", "say", "sayHelloWorld", true, 10, "Hello  World"},
		{"led ", "led", "led", true, 0, ""},
	}

	for _, tt := range tests {
		tok := NewTokenizer(' ', 32)
		raw := []byte(tt.input)

		cmd, err := tok.Tokenize(raw)
		if err != nil {
			t.Errorf("Tokenize(%q) failed: %v", tt.input, err)
			continue
		}
		if string(cmd.Token()) != tt.token {
			t.Errorf("%q: expected token %q, got %q", tt.input, tt.token, cmd.Token())
		}
		if string(cmd.Compacted()) != tt.compacted {
			t.Errorf("%q: expected compacted %q, got %q", tt.input, tt.compacted, cmd.Compacted())
		}
		if cmd.HasArgs() != tt.hasArgs {
			t.Errorf("%q: expected hasArgs %v", tt.input, tt.hasArgs)
		}
		if cmd.ArgsLength() != tt.argsLength {
			t.Errorf("%q: expected argsLength %d, got %d", tt.input, tt.argsLength, cmd.ArgsLength())
		}
		if cmd.HasArgs() {
			if got := newArgs(raw, cmd.ArgsStart()).String(); got != tt.args {
				t.Errorf("%q: expected args %q, got %q", tt.input, tt.args, got)
			}
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tok := NewTokenizer(' ', 16)
	for _, input := range []string{"", "   ", "\t\r"} {
		if _, err := tok.Tokenize([]byte(input)); !errors.Is(err, ErrNoInput) {
			t.Errorf("Tokenize(%q): expected ErrNoInput, got %v", input, err)
		}
	}
}

func TestTokenizeCustomDelimiter(t *testing.T) {
	tok := NewTokenizer(',', 32)
	raw := []byte("gpio,25,1")

	cmd, err := tok.Tokenize(raw)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if string(cmd.Token()) != "gpio" {
		t.Errorf("Expected token 'gpio', got %q", cmd.Token())
	}
	if string(cmd.Compacted()) != "gpio251" {
		t.Errorf("Expected later delimiters to be skipped, got %q", cmd.Compacted())
	}
	if got := newArgs(raw, cmd.ArgsStart()).String(); got != "25,1" {
		t.Errorf("Expected args '25,1', got %q", got)
	}
}

func TestTokenizeLeadingDelimiter(t *testing.T) {
	tok := NewTokenizer(':', 32)
	raw := []byte("::led:on")

	cmd, err := tok.Tokenize(raw)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if string(cmd.Token()) != "led" || cmd.ArgsStart() != 6 {
		t.Errorf("Expected token 'led' with args at 6, got %q at %d", cmd.Token(), cmd.ArgsStart())
	}
}

func TestTokenizeDelimiterInLastSlot(t *testing.T) {
	tok := NewTokenizer(' ', 4)

	cmd, err := tok.Tokenize([]byte("abc "))
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if cmd.HasArgs() {
		t.Error("Expected a delimiter in the last slot not to open arguments")
	}
	if string(cmd.Token()) != "abc" {
		t.Errorf("Expected token 'abc', got %q", cmd.Token())
	}
}

func TestTokenizerReset(t *testing.T) {
	tok := NewTokenizer(' ', 8)
	tok.Tokenize([]byte("led on"))
	tok.Reset()

	for i, c := range tok.data {
		if c != 0 {
			t.Fatalf("Expected zeroed buffer, byte %d is %q", i, c)
		}
	}
}

func TestArgs(t *testing.T) {
	line := []byte("gpio  25 1 \x00")
	args := newArgs(line, 5)

	if args.String() != "25 1" {
		t.Errorf("Expected '25 1', got %q", args.String())
	}
	if args.Len() != 4 || args.Offset() != 6 {
		t.Errorf("Expected len 4 at 6, got len %d at %d", args.Len(), args.Offset())
	}
	if args.Empty() {
		t.Error("Expected non-empty args")
	}

	var bare Args
	if !bare.Empty() || bare.Bytes() != nil {
		t.Error("Expected bare args to be empty and nil")
	}
	if _, err := bare.Int(); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("Expected ErrEmptyValue from bare args, got %v", err)
	}
}

func TestArgsFields(t *testing.T) {
	line := []byte("gpio 25  1")
	fields := newArgs(line, 5).Fields(' ')
	if len(fields) != 2 || string(fields[0]) != "25" || string(fields[1]) != "1" {
		t.Errorf("Expected [25 1], got %q", fields)
	}

	line = []byte("gpio:7,1")
	fields = newArgs(line, 5).Fields(':')
	if len(fields) != 1 || string(fields[0]) != "7,1" {
		t.Errorf("Expected [7,1], got %q", fields)
	}

	if fields := (Args{}).Fields(' '); fields != nil {
		t.Errorf("Expected no fields for bare args, got %q", fields)
	}
}
