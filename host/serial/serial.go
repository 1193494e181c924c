// Package serial opens the byte stream a terminal is reached over: a local
// serial port or a telnet serial bridge.
package serial

import (
	"fmt"
	"io"
	"strings"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (github.com/tarm/serial or go.bug.st/serial)
// - Telnet serial bridges such as ser2net (github.com/ziutek/telnet)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Driver selects the native serial implementation
type Driver string

const (
	DriverTarm  Driver = "tarm"  // github.com/tarm/serial
	DriverBugst Driver = "bugst" // go.bug.st/serial
)

// TelnetScheme prefixes devices reached through a telnet serial bridge
const TelnetScheme = "telnet://"

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3") or "telnet://host:port"
	Device string

	// Baud rate (USB CDC ignores this)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int

	// Driver for native ports, DriverTarm when empty
	Driver Driver
}

// DefaultConfig returns a default configuration for a terminal device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
		Driver:      DriverTarm,
	}
}

// Open opens the port described by cfg
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Device == "" {
		return nil, fmt.Errorf("serial device is required")
	}

	if addr, ok := strings.CutPrefix(cfg.Device, TelnetScheme); ok {
		return openTelnet(addr, cfg)
	}

	switch cfg.Driver {
	case "", DriverTarm:
		return openTarm(cfg)
	case DriverBugst:
		return openBugst(cfg)
	default:
		return nil, fmt.Errorf("unknown serial driver %q", cfg.Driver)
	}
}
