package core

// DebugWriter is a function type for writing debug messages.
// Debug output never goes to the terminal's transport.
type DebugWriter func(string)

// AsyncDebug queues debug messages for a background writer so that slow
// outputs (a debug UART, a log file) do not stall the terminal tick.
type AsyncDebug struct {
	writer  DebugWriter
	queue   chan string
	done    chan struct{}
	dropped uint32
}

// NewAsyncDebug starts the background writer with room for depth queued messages
func NewAsyncDebug(writer DebugWriter, depth int) *AsyncDebug {
	if depth <= 0 {
		depth = 16
	}
	a := &AsyncDebug{
		writer: writer,
		queue:  make(chan string, depth),
		done:   make(chan struct{}),
	}
	go a.worker()
	return a
}

// worker runs in background, drains the queue
func (a *AsyncDebug) worker() {
	defer close(a.done)
	for msg := range a.queue {
		if a.writer != nil {
			a.writer(msg)
		}
	}
}

// Write queues msg and returns immediately. The message is dropped when the
// queue is full.
func (a *AsyncDebug) Write(msg string) {
	select {
	case a.queue <- msg:
	default:
		a.dropped++
	}
}

// Writer returns Write as a DebugWriter
func (a *AsyncDebug) Writer() DebugWriter {
	return a.Write
}

// Dropped returns the number of messages lost to a full queue
func (a *AsyncDebug) Dropped() uint32 {
	return a.dropped
}

// Close flushes the queued messages and stops the writer.
// Write must not be called after Close.
func (a *AsyncDebug) Close() {
	close(a.queue)
	<-a.done
}
