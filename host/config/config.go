// Package config loads the host tool's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"termcommander/core"
	"termcommander/host/device"
	"termcommander/host/serial"
	"termcommander/host/sim"
)

type Config struct {
	Serial   SerialConfig     `yaml:"serial"`
	Terminal TerminalConfig   `yaml:"terminal"`
	Devices  []sim.DeviceSpec `yaml:"devices"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Device        string `yaml:"device"` // path, COM name or telnet://host:port
	Baud          int    `yaml:"baud"`
	Driver        string `yaml:"driver"` // tarm | bugst
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
}

// ---- TERMINAL ----

type TerminalConfig struct {
	Prompt     string `yaml:"prompt"`
	Delimiter  string `yaml:"delimiter"`   // single character
	LineEnding string `yaml:"line_ending"` // "\n" or "\r"
	Echo       bool   `yaml:"echo"`
	BufferSize int    `yaml:"buffer_size"`
	TwoWire    int    `yaml:"two_wire_size"`
	TimeoutMs  int    `yaml:"timeout_ms"` // host wait for the prompt

	// LegacyReadLength selects the read framing of older firmware
	LegacyReadLength bool `yaml:"legacy_read_length"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}

// Load reads, validates and normalizes the file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes, validates and normalizes YAML config data
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	return &cfg, nil
}

// Port returns the serial settings for host/serial
func (s SerialConfig) Port() *serial.Config {
	return &serial.Config{
		Device:      s.Device,
		Baud:        s.Baud,
		ReadTimeout: s.ReadTimeoutMs,
		Driver:      serial.Driver(s.Driver),
	}
}

// Core returns the terminal settings for a local core.Terminal
func (t TerminalConfig) Core() core.Config {
	cfg := core.Config{
		Prompt:      t.Prompt,
		Echo:        t.Echo,
		BufferSize:  t.BufferSize,
		TwoWireSize: t.TwoWire,

		LegacyReadLength: t.LegacyReadLength,
	}
	if t.Delimiter != "" {
		cfg.Delimiter = t.Delimiter[0]
	}
	if t.LineEnding != "" {
		cfg.LineEnding = t.LineEnding[0]
	}
	return cfg
}

// Options returns the client settings for host/device
func (t TerminalConfig) Options() device.Options {
	opts := device.Options{
		Prompt:  t.Prompt,
		Timeout: time.Duration(t.TimeoutMs) * time.Millisecond,
		Echo:    t.Echo,

		BufferSize:       t.BufferSize,
		TwoWireSize:      t.TwoWire,
		LegacyReadLength: t.LegacyReadLength,
	}
	if t.LineEnding != "" {
		opts.LineEnding = t.LineEnding[0]
	}
	return opts
}
