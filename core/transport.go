package core

//go:generate go tool mockgen -source=transport.go -destination=mock_transport_test.go -package=core

// Transport is the byte-oriented serial link the terminal serves.
// Reads are polled: the terminal only reads bytes that Available reports.
type Transport interface {
	// Available returns the number of bytes that can be read without blocking
	Available() int

	// ReadByte returns the next received byte
	ReadByte() (byte, error)

	// Write sends text to the peer
	Write(p []byte) (int, error)
}

// Flusher is implemented by transports that stage output.
// The terminal flushes once at the end of every tick that wrote something.
type Flusher interface {
	Flush() error
}
