package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"termcommander/core"
	"termcommander/host/config"
	"termcommander/host/sim"
	"termcommander/protocol"
)

const (
	simTick = time.Millisecond

	// Simulated board: RP2040 user pins with the LED on GP25
	simPins   = 30
	simLEDPin = 25

	ctrlC = 0x03
	ctrlD = 0x04
)

// stdio joins stdin and stdout into the port the terminal serves. In raw mode
// an interrupt byte ends the input.
type stdio struct {
	in        io.Reader
	out       io.Writer
	raw       bool
	interrupt func()
}

func (s *stdio) Read(p []byte) (int, error) {
	n, err := s.in.Read(p)
	if !s.raw {
		return n, err
	}
	for i := 0; i < n; i++ {
		if p[i] == ctrlC || p[i] == ctrlD {
			s.interrupt()
			return i, io.EOF
		}
	}
	return n, err
}

func (s *stdio) Write(p []byte) (int, error) { return s.out.Write(p) }

// Close leaves the process's stdin and stdout open
func (s *stdio) Close() error { return nil }

func runSim(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	bus, err := sim.NewBusFromSpecs(cfg.Devices)
	if err != nil {
		return err
	}
	for _, addr := range bus.Addresses() {
		dev, _ := bus.Device(addr)
		logger.Info("Simulated device", "name", dev.Name, "address", fmt.Sprintf("0x%02x", addr), "fault", string(dev.Fault))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	port := &stdio{in: os.Stdin, out: os.Stdout, interrupt: cancel}
	tcfg := cfg.Terminal.Core()

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer term.Restore(fd, state)

		// A raw TTY sends CR for Enter and needs CRLF to start a new line
		port.raw = true
		tcfg.LineEnding = '\r'
		tcfg.NewLine = "\r\n"
		tcfg.Echo = true
	}

	trace := core.NewAsyncDebug(func(msg string) { logger.Debug(msg, "source", "terminal") }, 0)
	defer trace.Close()
	tcfg.Debug = trace.Writer()

	transport := protocol.NewPortTransport(port, 0, 0)
	defer transport.Close()

	terminal, err := core.NewTerminal(transport, bus, tcfg)
	if err != nil {
		return err
	}
	registerSimCommands(terminal, transport, bus, tcfg.NewLine)
	if err := core.NewPinCommands(terminal, sim.NewPins(simPins), simLEDPin, simPins-1).Register(); err != nil {
		return err
	}
	terminal.MustOnCommand("help", terminal.Help)

	// Piped input: stop once everything read has been served
	go func() {
		select {
		case <-transport.Done():
		case <-ctx.Done():
			return
		}
		for transport.Available() > 0 {
			time.Sleep(10 * simTick)
		}
		time.Sleep(10 * simTick)
		cancel()
	}()

	terminal.Init()
	err = terminal.Run(ctx, simTick)

	stats := terminal.Stats()
	logger.Info("Simulator stopped", "lines", stats.Lines, "errors", stats.Errors,
		"warnings", stats.Warnings, "overflows", stats.Overflows, "transactions", bus.Transactions())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// registerSimCommands adds user commands that inspect the simulated bench
func registerSimCommands(t *core.Terminal, out io.Writer, bus *sim.Bus, newline string) {
	t.MustOnCommand("devices", func(core.Args) error {
		for _, addr := range bus.Addresses() {
			dev, _ := bus.Device(addr)
			line := fmt.Sprintf("0x%02X %s", addr, dev.Name)
			if dev.Fault != sim.FaultNone {
				line += " (" + string(dev.Fault) + ")"
			}
			fmt.Fprint(out, line+newline)
		}
		return nil
	})

	t.MustOnCommand("stats", func(core.Args) error {
		s := t.Stats()
		fmt.Fprintf(out, "Lines: %d Errors: %d Warnings: %d Overflows: %d%s", s.Lines, s.Errors, s.Warnings, s.Overflows, newline)
		return nil
	})
}
