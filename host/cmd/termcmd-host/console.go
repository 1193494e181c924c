package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"termcommander/host/config"
	"termcommander/host/device"
)

// errQuit ends the console loop
var errQuit = errors.New("quit")

func runConsole(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Serial.Device == "" {
		return fmt.Errorf("no device given (use -device or serial.device in the config)")
	}

	opts := cfg.Terminal.Options()
	opts.Logger = logger

	logger.Info("Connecting", "device", cfg.Serial.Device, "baud", cfg.Serial.Baud, "driver", cfg.Serial.Driver)
	dev, err := device.ConnectWithConfig(cfg.Serial.Port(), opts)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := dev.Sync(ctx); err != nil {
		return fmt.Errorf("no prompt from %s: %w", cfg.Serial.Device, err)
	}
	logger.Info("Connected", "device", cfg.Serial.Device)
	fmt.Println("Type :help for console commands, :quit to exit")

	editor := newLineEditor()
	defer editor.Close()

	session := &consoleSession{dev: dev, started: time.Now()}

	go func() {
		<-ctx.Done()
		dev.Close()
	}()

	for {
		line, err := editor.GetLine(cfg.Terminal.Prompt)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if err := session.meta(ctx, strings.TrimSpace(line)); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				fmt.Println(err)
			}
			continue
		}

		resp, err := dev.Exec(ctx, line)
		if err != nil {
			if errors.Is(err, device.ErrDisconnected) || errors.Is(err, device.ErrNotConnected) {
				return err
			}
			logger.Warn("Command failed", "line", line, "error", err)
			continue
		}
		fmt.Print(resp.Raw)
	}
}
