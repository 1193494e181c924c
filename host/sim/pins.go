package sim

import (
	"fmt"
	"sync"

	"termcommander/core"
)

// Pins is a simulated GPIO bank for the pin commands
type Pins struct {
	mu      sync.Mutex
	count   int
	levels  map[core.GPIOPin]bool
	outputs map[core.GPIOPin]bool
}

var _ core.GPIODriver = (*Pins)(nil)

// NewPins creates count pins, all low inputs
func NewPins(count int) *Pins {
	return &Pins{
		count:   count,
		levels:  make(map[core.GPIOPin]bool),
		outputs: make(map[core.GPIOPin]bool),
	}
}

func (p *Pins) check(pin core.GPIOPin) error {
	if int(pin) >= p.count {
		return fmt.Errorf("sim: no pin %d", pin)
	}
	return nil
}

// ConfigureOutput marks pin as an output
func (p *Pins) ConfigureOutput(pin core.GPIOPin) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(pin); err != nil {
		return err
	}
	p.outputs[pin] = true
	return nil
}

// SetPin drives an output pin
func (p *Pins) SetPin(pin core.GPIOPin, value bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(pin); err != nil {
		return err
	}
	if !p.outputs[pin] {
		return fmt.Errorf("sim: pin %d is not an output", pin)
	}
	p.levels[pin] = value
	return nil
}

// GetPin returns the pin level
func (p *Pins) GetPin(pin core.GPIOPin) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(pin); err != nil {
		return false, err
	}
	return p.levels[pin], nil
}

// Drive sets the level seen on an input pin
func (p *Pins) Drive(pin core.GPIOPin, value bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.levels[pin] = value
}

// IsOutput reports whether pin was configured as an output
func (p *Pins) IsOutput(pin core.GPIOPin) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outputs[pin]
}
