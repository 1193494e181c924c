package config

import (
	"fmt"

	"termcommander/core"
)

// Validate checks configuration correctness and returns the first problem.
// It does not mutate the configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	s := cfg.Serial
	if s.Baud < 0 {
		return fmt.Errorf("serial: baud %d must not be negative", s.Baud)
	}
	if s.ReadTimeoutMs < 0 {
		return fmt.Errorf("serial: read_timeout_ms %d must not be negative", s.ReadTimeoutMs)
	}
	switch s.Driver {
	case "", "tarm", "bugst":
	default:
		return fmt.Errorf("serial: unknown driver %q", s.Driver)
	}

	t := cfg.Terminal
	if len(t.Delimiter) > 1 {
		return fmt.Errorf("terminal: delimiter %q must be a single character", t.Delimiter)
	}
	switch t.LineEnding {
	case "", "\n", "\r":
	default:
		return fmt.Errorf("terminal: line_ending %q must be \\n or \\r", t.LineEnding)
	}
	ending := t.LineEnding
	if ending == "" {
		ending = "\n"
	}
	if t.Delimiter == ending {
		return fmt.Errorf("terminal: delimiter and line_ending must differ")
	}
	if t.BufferSize < 0 || t.TwoWire < 0 || t.TimeoutMs < 0 {
		return fmt.Errorf("terminal: sizes and timeouts must not be negative")
	}
	if t.TwoWire != 0 {
		size := t.BufferSize
		if size == 0 {
			size = core.DefaultBufferSize
		}
		if t.TwoWire < 3 || t.TwoWire > size {
			return fmt.Errorf("terminal: two_wire_size %d must be between 3 and %d", t.TwoWire, size)
		}
	}

	seen := make(map[int]string)
	for i := range cfg.Devices {
		d := &cfg.Devices[i]
		if err := d.Validate(); err != nil {
			return err
		}
		if prev, ok := seen[d.Address]; ok {
			return fmt.Errorf("devices %q and %q share address 0x%02x", prev, d.Name, d.Address)
		}
		seen[d.Address] = d.Name
	}

	return nil
}
