// Package protocol moves terminal bytes between a host port and the polled
// core.Transport interface.
package protocol

// Version represents the termcommander version
const Version = "0.1.0"

// Buffer sizes
const (
	DefaultFifoSize    = 512 // Receive FIFO, holds several command transcripts
	DefaultScratchSize = 256 // Transmit staging, flushed at the end of every tick
	readChunkSize      = 256 // Bytes requested per port read
)
