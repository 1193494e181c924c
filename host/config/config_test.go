package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `
serial:
  device: /dev/ttyACM0
  baud: 921600
  driver: bugst
terminal:
  echo: true
  line_ending: "\r"
  two_wire_size: 16
devices:
  - name: accel
    address: 0x53
    registers:
      0x00: 0xe5
  - address: 0x50
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Serial.Device != "/dev/ttyACM0" || cfg.Serial.Baud != 921600 || cfg.Serial.Driver != "bugst" {
		t.Errorf("Unexpected serial config %+v", cfg.Serial)
	}
	if cfg.Serial.ReadTimeoutMs != 100 {
		t.Errorf("Expected default read timeout, got %d", cfg.Serial.ReadTimeoutMs)
	}

	term := cfg.Terminal
	if !term.Echo || term.LineEnding != "\r" || term.TwoWire != 16 {
		t.Errorf("Unexpected terminal config %+v", term)
	}
	if term.Prompt != ">> " || term.Delimiter != " " || term.TimeoutMs != 2000 {
		t.Errorf("Defaults not applied: %+v", term)
	}

	if len(cfg.Devices) != 2 {
		t.Fatalf("Expected 2 devices, got %d", len(cfg.Devices))
	}
	if cfg.Devices[0].Registers[0] != 0xE5 {
		t.Errorf("Unexpected registers %v", cfg.Devices[0].Registers)
	}
	if cfg.Devices[1].Name != "device1" {
		t.Errorf("Expected generated name, got %q", cfg.Devices[1].Name)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Serial.Baud != 115200 || cfg.Serial.Driver != "tarm" {
		t.Errorf("Unexpected defaults %+v", cfg.Serial)
	}
	if len(cfg.Devices) == 0 {
		t.Error("Expected the default simulated devices")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative baud", "serial: {baud: -1}", "baud"},
		{"unknown driver", "serial: {driver: usb}", "unknown driver"},
		{"long delimiter", "terminal: {delimiter: ab}", "single character"},
		{"bad ending", "terminal: {line_ending: x}", "line_ending"},
		{"same delimiter and ending", `terminal: {delimiter: "\n"}`, "must differ"},
		{"two-wire too small", "terminal: {two_wire_size: 2}", "two_wire_size"},
		{"two-wire above buffer", "terminal: {buffer_size: 8, two_wire_size: 9}", "two_wire_size"},
		{"device address", "devices: [{name: x, address: 0x90}]", "out of range"},
		{"shared address", "devices: [{name: a, address: 0x10}, {name: b, address: 0x10}]", "share address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if err := Validate(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termcmd.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Serial.Device != "/dev/ttyACM0" {
		t.Errorf("Unexpected device %q", cfg.Serial.Device)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestConversions(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	port := cfg.Serial.Port()
	if port.Device != "/dev/ttyACM0" || port.Baud != 921600 || string(port.Driver) != "bugst" {
		t.Errorf("Unexpected port config %+v", port)
	}

	core := cfg.Terminal.Core()
	if core.Delimiter != ' ' || core.LineEnding != '\r' || !core.Echo || core.TwoWireSize != 16 {
		t.Errorf("Unexpected core config %+v", core)
	}

	opts := cfg.Terminal.Options()
	if opts.LineEnding != '\r' || opts.Prompt != ">> " || opts.Timeout.Milliseconds() != 2000 {
		t.Errorf("Unexpected device options %+v", opts)
	}
	if opts.TwoWireSize != 16 || opts.LegacyReadLength {
		t.Errorf("Expected the two-wire size to reach the client, got %+v", opts)
	}

	cfg.Terminal.LegacyReadLength = true
	if !cfg.Terminal.Core().LegacyReadLength || !cfg.Terminal.Options().LegacyReadLength {
		t.Error("Expected legacy read framing on both sides")
	}
}
