package core

//go:generate go tool mockgen -source=twowire_hal.go -destination=mock_twowire_test.go -package=core

// TwoWireStatus is the outcome of a two-wire transmission, numbered like the
// Arduino Wire endTransmission codes.
type TwoWireStatus uint8

const (
	TwoWireOK               TwoWireStatus = iota // Acknowledged
	TwoWireTxBufferOverflow                      // Data too long for the transmit buffer
	TwoWireNackAddress                           // Address not acknowledged
	TwoWireNackData                              // Data byte not acknowledged
	TwoWireOther                                 // Other bus error
	TwoWireTimeout                               // Bus timeout
)

// String returns the status name
func (s TwoWireStatus) String() string {
	switch s {
	case TwoWireOK:
		return "ok"
	case TwoWireTxBufferOverflow:
		return "tx-overflow"
	case TwoWireNackAddress:
		return "nack-address"
	case TwoWireNackData:
		return "nack-data"
	case TwoWireOther:
		return "other"
	case TwoWireTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// TwoWire is the abstract I2C bus interface that the built-in commands use.
// Calls are synchronous; retries and timeouts belong to the implementation.
type TwoWire interface {
	// BeginTransmission starts staging a write to the 7-bit address
	BeginTransmission(addr uint8)

	// WriteByte stages one byte of the current transmission
	WriteByte(b byte) error

	// EndTransmission sends the staged bytes followed by a stop condition
	EndTransmission() TwoWireStatus

	// RequestFrom reads up to count bytes from the device and returns how many arrived
	RequestFrom(addr uint8, count int) int

	// Available returns the number of received bytes not yet read
	Available() int

	// ReadByte returns the next received byte
	ReadByte() (byte, error)
}
