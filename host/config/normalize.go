package config

import (
	"fmt"

	"termcommander/host/sim"
)

// Normalize fills defaults. Call it only after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = 115200
	}
	if cfg.Serial.Driver == "" {
		cfg.Serial.Driver = "tarm"
	}
	if cfg.Serial.ReadTimeoutMs == 0 {
		cfg.Serial.ReadTimeoutMs = 100
	}

	t := &cfg.Terminal
	if t.Prompt == "" {
		t.Prompt = ">> "
	}
	if t.Delimiter == "" {
		t.Delimiter = " "
	}
	if t.LineEnding == "" {
		t.LineEnding = "\n"
	}
	if t.TimeoutMs == 0 {
		t.TimeoutMs = 2000
	}

	for i := range cfg.Devices {
		if cfg.Devices[i].Name == "" {
			cfg.Devices[i].Name = fmt.Sprintf("device%d", i)
		}
	}

	if cfg.Devices == nil {
		cfg.Devices = sim.DefaultDevices()
	}
}
