package protocol

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// ErrClosed is returned by PortTransport after Close
var ErrClosed = errors.New("protocol: transport closed")

const (
	// closeTimeout bounds the wait for the reader goroutine in Close
	closeTimeout = 500 * time.Millisecond

	// maxReadErrors consecutive identical read errors stop the reader
	maxReadErrors = 50

	readRetryDelay = 10 * time.Millisecond
)

// PortTransport turns a blocking io.ReadWriteCloser (a serial port, a telnet
// connection, stdin/stdout) into the polled transport the terminal expects.
// A background goroutine moves received bytes into a FIFO; writes are staged
// and sent on Flush.
type PortTransport struct {
	port io.ReadWriteCloser

	// Received bytes, guarded by readMutex
	readMutex sync.Mutex
	input     *FifoBuffer
	dropped   int
	readErr   error

	// Staged output, guarded by writeMutex
	writeMutex sync.Mutex
	output     *ScratchOutput

	// Signalled (non-blocking) whenever bytes arrive
	notify chan struct{}

	closeOnce sync.Once
	stopChan  chan struct{}
	doneChan  chan struct{}
}

// NewPortTransport starts reading from port. fifoSize and scratchSize of zero
// select the defaults.
func NewPortTransport(port io.ReadWriteCloser, fifoSize, scratchSize int) *PortTransport {
	if fifoSize <= 0 {
		fifoSize = DefaultFifoSize
	}

	t := &PortTransport{
		port:     port,
		input:    NewFifoBuffer(fifoSize),
		output:   NewScratchOutput(scratchSize),
		notify:   make(chan struct{}, 1),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}

	// Start background reader
	go t.readLoop()

	return t
}

// readLoop continuously reads from the port into the input FIFO
func (t *PortTransport) readLoop() {
	defer close(t.doneChan)

	buffer := make([]byte, readChunkSize)

	var lastErr string
	repeats := 0

	for {
		select {
		case <-t.stopChan:
			return
		default:
		}

		n, err := t.port.Read(buffer)
		if n > 0 {
			t.readMutex.Lock()
			written := t.input.Write(buffer[:n])
			t.dropped += n - written
			t.readMutex.Unlock()

			select {
			case t.notify <- struct{}{}:
			default:
			}
		}

		if err != nil {
			select {
			case <-t.stopChan:
				return
			default:
			}
			if errors.Is(err, io.EOF) {
				t.setReadErr(err)
				return
			}

			// Transient port errors are retried; the same error over and over
			// means the port is gone (an unplugged USB CDC device keeps failing)
			if err.Error() == lastErr {
				repeats++
			} else {
				lastErr = err.Error()
				repeats = 1
			}
			if repeats >= maxReadErrors {
				t.setReadErr(fmt.Errorf("port read: %w", err))
				return
			}
			time.Sleep(readRetryDelay)
			continue
		}

		lastErr = ""
		repeats = 0
	}
}

func (t *PortTransport) setReadErr(err error) {
	t.readMutex.Lock()
	t.readErr = err
	t.readMutex.Unlock()

	select {
	case t.notify <- struct{}{}:
	default:
	}
}

// Available returns the number of received bytes not yet read
func (t *PortTransport) Available() int {
	t.readMutex.Lock()
	defer t.readMutex.Unlock()
	return t.input.Available()
}

// ReadByte returns the next received byte
func (t *PortTransport) ReadByte() (byte, error) {
	t.readMutex.Lock()
	defer t.readMutex.Unlock()
	return t.input.ReadByte()
}

// Write stages p, flushing to the port whenever the staging buffer fills
func (t *PortTransport) Write(p []byte) (int, error) {
	select {
	case <-t.stopChan:
		return 0, ErrClosed
	default:
	}

	t.writeMutex.Lock()
	defer t.writeMutex.Unlock()

	total := 0
	for len(p) > 0 {
		n := t.output.Output(p)
		total += n
		p = p[n:]
		if len(p) > 0 {
			if err := t.flushLocked(); err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// Flush sends the staged output to the port
func (t *PortTransport) Flush() error {
	t.writeMutex.Lock()
	defer t.writeMutex.Unlock()
	return t.flushLocked()
}

func (t *PortTransport) flushLocked() error {
	data := t.output.Result()
	if len(data) == 0 {
		return nil
	}
	defer t.output.Reset()

	n, err := t.port.Write(data)
	if err != nil {
		return fmt.Errorf("port write: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("incomplete write: %d/%d bytes", n, len(data))
	}
	return nil
}

// Notify returns a channel that receives a value after new bytes arrive or
// the port fails
func (t *PortTransport) Notify() <-chan struct{} {
	return t.notify
}

// Err returns the error that stopped the reader, if any
func (t *PortTransport) Err() error {
	t.readMutex.Lock()
	defer t.readMutex.Unlock()
	return t.readErr
}

// Dropped returns the number of received bytes lost to a full FIFO
func (t *PortTransport) Dropped() int {
	t.readMutex.Lock()
	defer t.readMutex.Unlock()
	return t.dropped
}

// Done is closed when the reader goroutine has exited
func (t *PortTransport) Done() <-chan struct{} {
	return t.doneChan
}

// Close flushes pending output, stops the reader and closes the port
func (t *PortTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		flushErr := t.Flush()
		close(t.stopChan)

		// Closing the port unblocks a pending Read on most ports. Terminals
		// do not always honour it, so the wait is bounded.
		err = t.port.Close()
		select {
		case <-t.doneChan:
		case <-time.After(closeTimeout):
		}
		if err == nil {
			err = flushErr
		}
	})
	return err
}
