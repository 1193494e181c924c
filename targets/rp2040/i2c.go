//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// InitI2C configures I2C0 on its default pins (SDA=GP4, SCL=GP5) at
// frequencyHz. The bus is shared by the two-wire built-ins and the sensor
// commands.
func InitI2C(frequencyHz uint32) (*machine.I2C, error) {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		Frequency: frequencyHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})
	if err != nil {
		return nil, err
	}
	return i2c, nil
}
