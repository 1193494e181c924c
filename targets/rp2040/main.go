//go:build rp2040 || rp2350

// Firmware serving the command terminal over USB CDC on RP2040/RP2350 boards.
package main

import (
	"machine"
	"time"

	"termcommander/core"
)

const (
	// i2cFrequency is the I2C0 clock rate in Hz
	i2cFrequency = 400000

	// maxGPIO is the highest user GPIO on the RP2040
	maxGPIO = 29

	// tickInterval is the pause between terminal ticks
	tickInterval = 100 * time.Microsecond
)

var (
	terminal *core.Terminal
	bootTime = time.Now()
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()
	InitDebugUART()

	bus, err := InitI2C(i2cFrequency)
	if err != nil {
		DebugPrintln("I2C init failed: " + err.Error())
	}

	cfg := core.Config{
		Echo:  true,
		Debug: DebugWriter(),
	}

	// A nil bus makes the two-wire built-ins report that the bus is missing
	var twoWire core.TwoWire
	if bus != nil {
		twoWire = core.NewDriversBus(bus, core.DefaultTwoWireTxSize)
	}

	terminal, err = core.NewTerminal(usbTransport{}, twoWire, cfg)
	if err != nil {
		DebugPrintln("terminal: " + err.Error())
		return
	}

	// Registration errors are configuration mistakes
	pins := core.NewPinCommands(terminal, NewRPGPIODriver(), core.GPIOPin(machine.LED), maxGPIO)
	if err := pins.Register(); err != nil {
		panic(err.Error())
	}
	if bus != nil {
		terminal.MustOnCommand("accel", accelCommand(bus))
	}
	terminal.MustOnCommand("uptime", uptimeCommand)
	terminal.MustOnCommand("help", terminal.Help)

	terminal.Init()

	for {
		// Recover from panics in user commands to keep the terminal alive
		func() {
			defer func() {
				if r := recover(); r != nil {
					DebugPrintln("panic in terminal loop")
				}
			}()
			terminal.Loop()
		}()

		// Yield to other goroutines
		time.Sleep(tickInterval)
	}
}

// uptimeCommand prints the time since boot
func uptimeCommand(args core.Args) error {
	if !args.Empty() {
		return core.ErrUnrecognizedProtocol
	}
	ms := time.Since(bootTime).Milliseconds()
	terminal.Println("Uptime: ", formatInt(ms/1000), ".", pad3(ms%1000), " s")
	return nil
}
