//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// InitUSB initializes USB serial communication.
// On RP2040, machine.Serial is USB CDC, not UART; the descriptors are set by
// TinyGo's runtime.
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// usbTransport exposes machine.Serial as the terminal transport
type usbTransport struct{}

// Available returns the number of bytes available to read from USB
func (usbTransport) Available() int {
	return machine.Serial.Buffered()
}

// ReadByte reads a single byte from USB
func (usbTransport) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}

// Write sends data to USB, retrying briefly while the endpoint is busy
func (usbTransport) Write(data []byte) (int, error) {
	written := 0
	for retries := 0; written < len(data) && retries < 10; retries++ {
		n, err := machine.Serial.Write(data[written:])
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
