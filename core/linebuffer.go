package core

// LineState is the ingestion state of a LineBuffer
type LineState uint8

const (
	LineIdle     LineState = iota // Empty, waiting for the first byte
	LineFilling                   // Accepting bytes
	LineComplete                  // Line ending observed
	LineOverflow                  // Capacity exceeded, bytes are dropped
)

// String returns the state name
func (s LineState) String() string {
	switch s {
	case LineIdle:
		return "idle"
	case LineFilling:
		return "filling"
	case LineComplete:
		return "complete"
	case LineOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// LineBuffer accumulates transport bytes into a fixed-capacity line.
// The line ending is never stored.
type LineBuffer struct {
	raw      []byte
	cursor   int
	complete bool
	overflow bool
	ending   byte
}

// NewLineBuffer creates a line buffer holding up to capacity bytes
func NewLineBuffer(capacity int, ending byte) *LineBuffer {
	return &LineBuffer{
		raw:    make([]byte, capacity),
		ending: ending,
	}
}

// Feed processes one incoming byte and returns the resulting state.
// A completed or overflowed line ignores further bytes until Reset.
func (b *LineBuffer) Feed(c byte) LineState {
	if b.complete || b.overflow {
		return b.State()
	}

	if c == b.ending {
		b.complete = true
		return LineComplete
	}

	if b.cursor >= len(b.raw) {
		b.overflow = true
		return LineOverflow
	}

	b.raw[b.cursor] = c
	b.cursor++
	return LineFilling
}

// Backspace removes the last stored byte.
// Returns false when there was nothing to remove or the line is no longer filling.
func (b *LineBuffer) Backspace() bool {
	if b.cursor == 0 || b.complete || b.overflow {
		return false
	}
	b.cursor--
	b.raw[b.cursor] = 0
	return true
}

// Reset clears the stored bytes and flags
func (b *LineBuffer) Reset() {
	for i := range b.raw {
		b.raw[i] = 0
	}
	b.cursor = 0
	b.complete = false
	b.overflow = false
}

// State returns the current ingestion state
func (b *LineBuffer) State() LineState {
	switch {
	case b.overflow:
		return LineOverflow
	case b.complete:
		return LineComplete
	case b.cursor > 0:
		return LineFilling
	default:
		return LineIdle
	}
}

// Complete reports whether the line ending has been observed
func (b *LineBuffer) Complete() bool { return b.complete }

// Overflow reports whether the capacity was exceeded
func (b *LineBuffer) Overflow() bool { return b.overflow }

// Bytes returns the stored line. The slice aliases the buffer.
func (b *LineBuffer) Bytes() []byte { return b.raw[:b.cursor] }

// Len returns the number of stored bytes
func (b *LineBuffer) Len() int { return b.cursor }

// Cap returns the buffer capacity
func (b *LineBuffer) Cap() int { return len(b.raw) }

// Ending returns the line-ending byte
func (b *LineBuffer) Ending() byte { return b.ending }
