package sim

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DeviceSpec describes one simulated device. Integers accept YAML hex (0x1d).
type DeviceSpec struct {
	Name      string      `yaml:"name"`
	Address   int         `yaml:"address"`
	Fault     Fault       `yaml:"fault,omitempty"`
	Registers map[int]int `yaml:"registers,omitempty"`
}

// Validate checks the address, fault and register values
func (s *DeviceSpec) Validate() error {
	if s.Address < 1 || s.Address > 0x7F {
		return fmt.Errorf("device %q: address 0x%02x out of range 0x01-0x7f", s.Name, s.Address)
	}
	switch s.Fault {
	case FaultNone, FaultNack, FaultOther:
	default:
		return fmt.Errorf("device %q: unknown fault %q", s.Name, s.Fault)
	}
	for reg, v := range s.Registers {
		if reg < 0 || reg > 0xFF {
			return fmt.Errorf("device %q: register 0x%x out of range", s.Name, reg)
		}
		if v < 0 || v > 0xFF {
			return fmt.Errorf("device %q: register 0x%02x value %d is not a byte", s.Name, reg, v)
		}
	}
	return nil
}

// Build creates the device described by s
func (s *DeviceSpec) Build() (*Device, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	dev := &Device{Name: s.Name, Address: uint8(s.Address), Fault: s.Fault}
	for reg, v := range s.Registers {
		dev.Registers[reg] = byte(v)
	}
	return dev, nil
}

// NewBusFromSpecs builds a bus holding every device in specs
func NewBusFromSpecs(specs []DeviceSpec) (*Bus, error) {
	bus := NewBus()
	for i := range specs {
		dev, err := specs[i].Build()
		if err != nil {
			return nil, err
		}
		if err := bus.Attach(dev); err != nil {
			return nil, err
		}
	}
	return bus, nil
}

// DecodeDevices reads a YAML list of device specs
func DecodeDevices(r io.Reader) ([]DeviceSpec, error) {
	var specs []DeviceSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&specs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode devices: %w", err)
	}
	return specs, nil
}

// LoadDevices reads device specs from a YAML file
func LoadDevices(path string) ([]DeviceSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeDevices(f)
}

// DefaultDevices is the bench used when no device file is given: an ADXL345
// accelerometer and a 24C02-style EEPROM
func DefaultDevices() []DeviceSpec {
	return []DeviceSpec{
		{Name: "adxl345", Address: 0x53, Registers: map[int]int{0x00: 0xE5, 0x2C: 0x0A}},
		{Name: "eeprom", Address: 0x50},
	}
}
