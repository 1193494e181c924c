// Package device is the host side of the terminal's text protocol: it sends
// one command line at a time and collects the transcript up to the next prompt.
package device

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"termcommander/core"
	"termcommander/host/serial"
	"termcommander/protocol"
)

var (
	// ErrNotConnected is returned when the device has been closed
	ErrNotConnected = errors.New("device: not connected")

	// ErrTimeout is returned when the prompt does not arrive in time
	ErrTimeout = errors.New("device: timed out waiting for prompt")

	// ErrDisconnected is returned when the port stops delivering data
	ErrDisconnected = errors.New("device: port disconnected")

	// ErrInvalidLine is returned for a command line holding the line ending
	ErrInvalidLine = errors.New("device: command line contains the line ending")
)

// Options configures the client. Zero values select the terminal defaults.
type Options struct {
	Prompt     string
	LineEnding byte
	Timeout    time.Duration // per command

	// Echo strips the command line the device echoes back
	Echo bool

	// BufferSize and TwoWireSize are the device's line and two-wire buffer
	// capacities, bounding reads
	BufferSize  int
	TwoWireSize int

	// LegacyReadLength frames reads for firmware that derives the read length
	// from the number of hex pairs after the address
	LegacyReadLength bool

	Logger *slog.Logger
}

func (o *Options) setDefaults() {
	if o.Prompt == "" {
		o.Prompt = ">> "
	}
	if o.LineEnding == 0 {
		o.LineEnding = '\n'
	}
	if o.Timeout == 0 {
		o.Timeout = 2 * time.Second
	}
	if o.BufferSize == 0 {
		o.BufferSize = core.DefaultBufferSize
	}
	if o.TwoWireSize == 0 {
		o.TwoWireSize = core.DefaultTwoWireSize
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// Device represents a connection to a terminal
type Device struct {
	transport *protocol.PortTransport
	opts      Options
	pending   bytes.Buffer // output received after the last prompt
	connected bool
	stats     Stats
}

// Stats counts the traffic of a Device
type Stats struct {
	Commands      uint64
	Errors        uint64 // transcripts holding an error line
	BytesSent     uint64
	BytesReceived uint64
}

// Connect connects to a device via serial port or telnet bridge
func Connect(device string, opts Options) (*Device, error) {
	return ConnectWithConfig(serial.DefaultConfig(device), opts)
}

// ConnectWithConfig connects to a device with a custom serial config
func ConnectWithConfig(cfg *serial.Config, opts Options) (*Device, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	return New(port, opts), nil
}

// New wraps an open port
func New(port io.ReadWriteCloser, opts Options) *Device {
	opts.setDefaults()
	return &Device{
		transport: protocol.NewPortTransport(port, 0, 0),
		opts:      opts,
		connected: true,
	}
}

// Stats returns the traffic counters
func (d *Device) Stats() Stats {
	return d.stats
}

// Dropped returns the number of received bytes lost to a full receive buffer
func (d *Device) Dropped() int {
	return d.transport.Dropped()
}

// Close closes the connection to the device
func (d *Device) Close() error {
	if !d.connected {
		return nil
	}
	d.connected = false
	return d.transport.Close()
}

// IsConnected returns whether the device is connected
func (d *Device) IsConnected() bool {
	return d.connected
}

// Sync sends an empty line and waits for the prompt, discarding whatever the
// device printed before. The empty line costs one "No Input" error.
func (d *Device) Sync(ctx context.Context) error {
	if !d.connected {
		return ErrNotConnected
	}
	d.pending.Reset()

	if err := d.send(nil); err != nil {
		return err
	}

	// Earlier prompts may still be in flight; wait for the answer to the empty line
	for {
		out, err := d.collect(ctx)
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}
		if strings.Contains(out, core.ErrNoInput.Error()) {
			return nil
		}
	}
}

// Exec sends one command line and returns the transcript printed before the
// next prompt
func (d *Device) Exec(ctx context.Context, line string) (*Response, error) {
	if !d.connected {
		return nil, ErrNotConnected
	}
	if strings.IndexByte(line, d.opts.LineEnding) >= 0 {
		return nil, ErrInvalidLine
	}

	d.opts.Logger.Debug("sending command", "line", line)
	if err := d.send([]byte(line)); err != nil {
		return nil, err
	}

	raw, err := d.collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", line, err)
	}

	if d.opts.Echo {
		raw = stripEcho(raw, line)
	}

	resp := parseResponse(raw)
	d.stats.Commands++
	if resp.Failed() {
		d.stats.Errors++
	}
	d.opts.Logger.Debug("received transcript", "line", line, "lines", len(resp.Lines), "error", resp.Error)
	return resp, nil
}

func (d *Device) send(line []byte) error {
	n, err := d.transport.Write(append(line, d.opts.LineEnding))
	d.stats.BytesSent += uint64(n)
	if err != nil {
		return fmt.Errorf("failed to write command: %w", err)
	}
	if err := d.transport.Flush(); err != nil {
		return fmt.Errorf("failed to write command: %w", err)
	}
	return nil
}

// collect reads until the received text ends with the prompt
func (d *Device) collect(ctx context.Context) (string, error) {
	timer := time.NewTimer(d.opts.Timeout)
	defer timer.Stop()

	prompt := []byte(d.opts.Prompt)
	for {
		for d.transport.Available() > 0 {
			b, err := d.transport.ReadByte()
			if err != nil {
				break
			}
			d.pending.WriteByte(b)
			d.stats.BytesReceived++
		}

		if data := d.pending.Bytes(); bytes.HasSuffix(data, prompt) {
			out := string(data[:len(data)-len(prompt)])
			d.pending.Reset()
			return out, nil
		}

		select {
		case <-ctx.Done():
			return d.pending.String(), ctx.Err()
		case <-timer.C:
			return d.pending.String(), ErrTimeout
		case <-d.transport.Done():
			if d.transport.Available() == 0 {
				return d.pending.String(), fmt.Errorf("%w: %v", ErrDisconnected, d.transport.Err())
			}
		case <-d.transport.Notify():
		}
	}
}

// stripEcho removes the echoed command line and its line break
func stripEcho(raw, line string) string {
	rest, ok := strings.CutPrefix(raw, line)
	if !ok {
		return raw
	}
	if r, ok := strings.CutPrefix(rest, "\r\n"); ok {
		return r
	}
	if r, ok := strings.CutPrefix(rest, "\n"); ok {
		return r
	}
	return raw
}
