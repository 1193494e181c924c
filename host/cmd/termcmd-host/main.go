// termcmd-host talks to a serial command terminal from a workstation, or runs
// one locally over a simulated I2C bus.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"termcommander/host/config"
	"termcommander/host/serial"
	"termcommander/protocol"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	devicePath = flag.String("device", "", "Serial device path or telnet://host:port")
	baud       = flag.Int("baud", 0, "Baud rate (ignored for USB CDC)")
	mode       = flag.String("mode", "console", "Mode: console, sim or list")
	echo       = flag.Bool("echo", false, "Device echoes input (console) or enable echo (sim)")
	delimiter  = flag.String("delimiter", "", "Command delimiter character")
	timeout    = flag.Duration("timeout", 0, "Time to wait for the prompt after each command")
	logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logJSON    = flag.Bool("log-json", false, "Log as JSON")
	version    = flag.Bool("version", false, "Print the version and exit")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("termcmd-host", protocol.Version)
		return
	}

	logger := newLogger(*logLevel, *logJSON)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "console":
		err = runConsole(ctx, cfg, logger)
	case "sim":
		err = runSim(ctx, cfg, logger)
	case "list":
		err = runList()
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}

	if err != nil && ctx.Err() == nil {
		logger.Error("termcmd-host failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
}

func newLogger(level string, asJSON bool) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	if asJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// loadConfig reads the config file, if any, and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(cfg, set)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags over the file values
func applyFlags(cfg *config.Config, set map[string]bool) {
	if *devicePath != "" {
		cfg.Serial.Device = *devicePath
	}
	if *baud != 0 {
		cfg.Serial.Baud = *baud
	}
	if set["echo"] {
		cfg.Terminal.Echo = *echo
	}
	if *delimiter != "" {
		cfg.Terminal.Delimiter = *delimiter
	}
	if *timeout != 0 {
		cfg.Terminal.TimeoutMs = int(*timeout / time.Millisecond)
	}
}

func runList() error {
	ports, err := serial.List()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p.String())
	}
	return nil
}
