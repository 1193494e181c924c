// Package sim provides an in-memory two-wire bus populated with register-file
// devices, so the terminal can run on a host without hardware.
package sim

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"termcommander/core"
)

// ErrRxEmpty is returned by ReadByte when no requested bytes remain
var ErrRxEmpty = errors.New("sim: receive buffer empty")

// Fault selects how a device misbehaves on the bus
type Fault string

const (
	FaultNone  Fault = ""
	FaultNack  Fault = "nack"  // address never acknowledged
	FaultOther Fault = "other" // reports a generic bus error
)

// Device is a register-file peripheral. The first byte of a write selects the
// register pointer; following bytes are stored and advance it, as do reads.
type Device struct {
	Name      string
	Address   uint8
	Registers [256]byte
	Fault     Fault

	pointer uint8
}

// Bus implements core.TwoWire over a set of simulated devices
type Bus struct {
	mu      sync.Mutex
	devices map[uint8]*Device

	txAddr uint8
	tx     []byte
	rx     []byte

	transactions int
}

var _ core.TwoWire = (*Bus)(nil)

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{devices: make(map[uint8]*Device)}
}

// Attach adds dev to the bus
func (b *Bus) Attach(dev *Device) error {
	if dev.Address == 0 || dev.Address > 0x7F {
		return fmt.Errorf("sim: address 0x%02x out of range", dev.Address)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.devices[dev.Address]; ok {
		return fmt.Errorf("sim: address 0x%02x already used by %q", dev.Address, existing.Name)
	}
	b.devices[dev.Address] = dev
	return nil
}

// Device returns the device at addr
func (b *Bus) Device(addr uint8) (*Device, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	dev, ok := b.devices[addr]
	return dev, ok
}

// Addresses returns the attached addresses in ascending order
func (b *Bus) Addresses() []uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()

	addrs := make([]uint8, 0, len(b.devices))
	for a := range b.devices {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// Transactions returns the number of completed transmissions and requests
func (b *Bus) Transactions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transactions
}

// BeginTransmission starts staging a write to addr
func (b *Bus) BeginTransmission(addr uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.txAddr = addr & 0x7F
	b.tx = b.tx[:0]
}

// WriteByte stages one byte
func (b *Bus) WriteByte(c byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.tx) == core.DefaultTwoWireTxSize {
		return core.ErrTwoWireTxFull
	}
	b.tx = append(b.tx, c)
	return nil
}

// EndTransmission delivers the staged bytes to the addressed device
func (b *Bus) EndTransmission() core.TwoWireStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transactions++

	dev, status := b.lookup(b.txAddr)
	if status != core.TwoWireOK {
		return status
	}

	if len(b.tx) > 0 {
		dev.pointer = b.tx[0]
		for _, c := range b.tx[1:] {
			dev.Registers[dev.pointer] = c
			dev.pointer++
		}
	}
	return core.TwoWireOK
}

// RequestFrom reads count bytes from the device's register pointer
func (b *Bus) RequestFrom(addr uint8, count int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transactions++

	b.rx = b.rx[:0]
	dev, status := b.lookup(addr & 0x7F)
	if status != core.TwoWireOK {
		return 0
	}

	for i := 0; i < count; i++ {
		b.rx = append(b.rx, dev.Registers[dev.pointer])
		dev.pointer++
	}
	return len(b.rx)
}

// Available returns the number of requested bytes not yet read
func (b *Bus) Available() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.rx)
}

// ReadByte returns the next requested byte
func (b *Bus) ReadByte() (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.rx) == 0 {
		return 0, ErrRxEmpty
	}
	c := b.rx[0]
	b.rx = b.rx[1:]
	return c, nil
}

func (b *Bus) lookup(addr uint8) (*Device, core.TwoWireStatus) {
	dev, ok := b.devices[addr]
	if !ok {
		return nil, core.TwoWireNackAddress
	}
	switch dev.Fault {
	case FaultNack:
		return nil, core.TwoWireNackAddress
	case FaultOther:
		return nil, core.TwoWireOther
	}
	return dev, core.TwoWireOK
}
