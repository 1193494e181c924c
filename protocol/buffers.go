package protocol

import "errors"

// ErrFifoEmpty is returned by FifoBuffer.ReadByte when no bytes are buffered
var ErrFifoEmpty = errors.New("protocol: fifo empty")

// ScratchOutput stages outgoing bytes in a fixed-size buffer
type ScratchOutput struct {
	buf []byte
	pos int
}

// NewScratchOutput creates a scratch buffer of the given capacity
func NewScratchOutput(capacity int) *ScratchOutput {
	if capacity <= 0 {
		capacity = DefaultScratchSize
	}
	return &ScratchOutput{buf: make([]byte, capacity)}
}

// Output copies as much of data as fits and returns the number of bytes taken
func (s *ScratchOutput) Output(data []byte) int {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
	return n
}

// Result returns the staged bytes
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset empties the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// FifoBuffer is a circular byte queue. One slot stays free to tell a full
// queue from an empty one.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
}

// NewFifoBuffer creates a FIFO holding up to capacity-1 bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

// Write appends as much of data as fits and returns the number of bytes stored
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		next := (f.write + 1) % len(f.buf)
		if next == f.read {
			break
		}
		f.buf[f.write] = b
		f.write = next
		written++
	}
	return written
}

// ReadByte removes and returns the oldest byte
func (f *FifoBuffer) ReadByte() (byte, error) {
	if f.read == f.write {
		return 0, ErrFifoEmpty
	}
	b := f.buf[f.read]
	f.read = (f.read + 1) % len(f.buf)
	return b, nil
}

// Available returns the number of buffered bytes
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return len(f.buf) - f.read + f.write
}
