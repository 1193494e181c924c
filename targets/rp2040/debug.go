//go:build rp2040 || rp2350

package main

import (
	"machine"

	"termcommander/core"
)

var (
	debugUART    *machine.UART
	debugEnabled bool
)

// InitDebugUART initializes UART0 on its default pins (TX=GP0, RX=GP1) for the
// terminal trace. Baud rate: 115200
func InitDebugUART() {
	debugUART = machine.UART0

	err := debugUART.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	if err != nil {
		debugEnabled = false
		return
	}

	debugEnabled = true
	DebugPrintln("=== Terminal Debug UART Initialized ===")
}

// DebugPrintln writes a string to the debug UART with newline
func DebugPrintln(s string) {
	if !debugEnabled || debugUART == nil {
		return
	}
	debugUART.Write([]byte(s))
	debugUART.Write([]byte("\r\n"))
}

// DebugWriter returns the terminal trace hook, nil when the UART is unavailable
func DebugWriter() core.DebugWriter {
	if !debugEnabled {
		return nil
	}
	return DebugPrintln
}
