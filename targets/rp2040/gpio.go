//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"

	"termcommander/core"
)

var errPinNotOutput = errors.New("pin not configured as output")

// RPGPIODriver implements core.GPIODriver on machine pins
type RPGPIODriver struct {
	// Pins configured as outputs
	outputs map[core.GPIOPin]machine.Pin
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		outputs: make(map[core.GPIOPin]machine.Pin),
	}
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if _, exists := d.outputs[pin]; exists {
		return nil
	}

	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.outputs[pin] = machinePin
	return nil
}

// SetPin drives an output pin
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.outputs[pin]
	if !exists {
		return errPinNotOutput
	}
	machinePin.Set(value)
	return nil
}

// GetPin reads the pin level. Pins that are not outputs are read as inputs.
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	if machinePin, exists := d.outputs[pin]; exists {
		return machinePin.Get(), nil
	}
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinInput})
	return machinePin.Get(), nil
}
