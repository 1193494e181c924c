//go:build rp2040 || rp2350

package main

import (
	"strconv"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/adxl345"

	"termcommander/core"
)

// accelCommand returns the "accel" user command, which prints one raw
// ADXL345 reading. The sensor is configured on first use.
func accelCommand(bus drivers.I2C) core.CommandHandler {
	var sensor *adxl345.Device

	return func(args core.Args) error {
		if !args.Empty() {
			return core.ErrUnrecognizedProtocol
		}
		if sensor == nil {
			dev := adxl345.New(bus)
			dev.Configure()
			dev.SetRange(adxl345.RANGE_16G)
			sensor = &dev
		}

		x, y, z := sensor.ReadRawAcceleration()
		terminal.Println("X: ", formatInt(int64(x)), " Y: ", formatInt(int64(y)), " Z: ", formatInt(int64(z)))
		return nil
	}
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// pad3 formats n (0..999) with leading zeros
func pad3(n int64) string {
	s := formatInt(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
