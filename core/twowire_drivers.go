package core

import (
	"errors"

	"tinygo.org/x/drivers"
)

// DefaultTwoWireTxSize matches the 32-byte transmit buffer of the Arduino Wire library
const DefaultTwoWireTxSize = 32

var (
	// ErrTwoWireTxFull is returned by DriversBus.WriteByte when the transmit buffer is full
	ErrTwoWireTxFull = errors.New("two-wire transmit buffer full")

	// ErrTwoWireRxEmpty is returned by DriversBus.ReadByte when no received bytes remain
	ErrTwoWireRxEmpty = errors.New("two-wire receive buffer empty")
)

// DriversBus adapts a TinyGo drivers.I2C bus (machine.I2C on hardware) to the
// TwoWire interface. Staged bytes go out in a single Tx at EndTransmission.
//
// drivers.I2C reports failures as plain errors, so every failed Tx is reported
// as TwoWireNackAddress.
type DriversBus struct {
	bus drivers.I2C

	addr     uint8
	tx       []byte
	overflow bool

	rx    []byte
	rxPos int
	probe [1]byte
}

// NewDriversBus wraps bus with a transmit buffer of txSize bytes
func NewDriversBus(bus drivers.I2C, txSize int) *DriversBus {
	if txSize <= 0 {
		txSize = DefaultTwoWireTxSize
	}
	return &DriversBus{
		bus: bus,
		tx:  make([]byte, 0, txSize),
	}
}

// BeginTransmission starts staging a write to addr
func (d *DriversBus) BeginTransmission(addr uint8) {
	d.addr = addr & 0x7F
	d.tx = d.tx[:0]
	d.overflow = false
}

// WriteByte stages one byte
func (d *DriversBus) WriteByte(b byte) error {
	if len(d.tx) == cap(d.tx) {
		d.overflow = true
		return ErrTwoWireTxFull
	}
	d.tx = append(d.tx, b)
	return nil
}

// EndTransmission sends the staged bytes.
// An empty transmission probes the address with a one-byte read instead.
func (d *DriversBus) EndTransmission() TwoWireStatus {
	if d.overflow {
		return TwoWireTxBufferOverflow
	}

	var err error
	if len(d.tx) == 0 {
		err = d.bus.Tx(uint16(d.addr), nil, d.probe[:])
	} else {
		err = d.bus.Tx(uint16(d.addr), d.tx, nil)
	}
	if err != nil {
		return TwoWireNackAddress
	}
	return TwoWireOK
}

// RequestFrom reads count bytes from addr. Nothing is buffered on failure.
func (d *DriversBus) RequestFrom(addr uint8, count int) int {
	d.rxPos = 0
	if count <= 0 {
		d.rx = d.rx[:0]
		return 0
	}

	if cap(d.rx) < count {
		d.rx = make([]byte, count)
	}
	d.rx = d.rx[:count]

	if err := d.bus.Tx(uint16(addr&0x7F), nil, d.rx); err != nil {
		d.rx = d.rx[:0]
		return 0
	}
	return count
}

// Available returns the number of unread received bytes
func (d *DriversBus) Available() int {
	return len(d.rx) - d.rxPos
}

// ReadByte returns the next received byte
func (d *DriversBus) ReadByte() (byte, error) {
	if d.rxPos >= len(d.rx) {
		return 0, ErrTwoWireRxEmpty
	}
	b := d.rx[d.rxPos]
	d.rxPos++
	return b, nil
}
