package core

// Two-wire built-in verbs:
//
//	i2c r AARR[NN]     read NN bytes (default 1) from register RR of device AA
//	i2c w AARRDD[DD..] write DD... to register RR of device AA
//	scan               probe addresses 1..127
//
// hex arguments are the compacted bytes following "i2cr" / "i2cw".

// readCount returns the number of bytes to request for a read of n decoded bytes
func (t *Terminal) readCount(n int) (int, error) {
	if t.cfg.LegacyReadLength {
		// one byte per hex pair after the address
		return n - 1, nil
	}

	switch n {
	case 2:
		return 1, nil
	case 3:
		count := int(t.twoWire[2])
		if count < 1 || count > len(t.twoWire) {
			return 0, ErrTwoWireReadCount
		}
		return count, nil
	}
	return 0, ErrTwoWireReadCount
}

func (t *Terminal) twoWireRead(hex []byte) error {
	n, err := DecodeHex(t.twoWire, hex)
	if err != nil {
		return err
	}

	addr, reg := t.twoWire[0], t.twoWire[1]
	count, err := t.readCount(n)
	if err != nil {
		return err
	}

	t.writeLine("I2C Read")
	t.writeLine("Address: ", hexByte(addr))
	t.writeLine("Register: ", hexByte(reg))

	clear(t.twoWire)

	t.bus.BeginTransmission(addr)
	if err := t.bus.WriteByte(reg); err != nil {
		t.trace("i2c write register: " + err.Error())
	}
	status := t.bus.EndTransmission()
	t.trace("i2c read select " + hexByte(addr) + ": " + status.String())
	if status == TwoWireNackAddress {
		return ErrTwoWireReadNack
	}

	t.cfg.Sleep(t.cfg.TwoWireDelay)
	got := t.bus.RequestFrom(addr, count)
	t.cfg.Sleep(t.cfg.TwoWireDelay)
	t.trace("i2c request " + itoa(count) + " got " + itoa(got))

	received := 0
	for t.bus.Available() > 0 {
		if received >= len(t.twoWire) {
			return ErrTwoWireReadLength
		}
		b, err := t.bus.ReadByte()
		if err != nil {
			t.trace("i2c read: " + err.Error())
			break
		}
		t.twoWire[received] = b
		received++
	}

	out := make([]byte, 0, len("Read Data:")+5*received+len(" No Data Received"))
	out = append(out, "Read Data:"...)
	if received == 0 {
		out = append(out, " No Data Received"...)
	}
	for _, b := range t.twoWire[:received] {
		out = append(out, " 0x"...)
		out = appendHexByte(out, b)
	}
	t.write(out)
	t.writeString(t.cfg.NewLine)
	return nil
}

func (t *Terminal) twoWireWrite(hex []byte) error {
	n, err := DecodeHex(t.twoWire, hex)
	if err != nil {
		return err
	}
	if n < 3 {
		return ErrTwoWireWriteData
	}

	addr, reg := t.twoWire[0], t.twoWire[1]
	payload := t.twoWire[2:n]

	t.writeLine("I2C Write")
	t.writeLine("Address: ", hexByte(addr))
	t.writeLine("Register: ", hexByte(reg))

	t.bus.BeginTransmission(addr)
	if err := t.bus.WriteByte(reg); err != nil {
		t.trace("i2c write register: " + err.Error())
	}
	for _, b := range payload {
		if err := t.bus.WriteByte(b); err != nil {
			t.trace("i2c write data: " + err.Error())
		}
	}
	status := t.bus.EndTransmission()
	t.trace("i2c write " + hexByte(addr) + ": " + status.String())
	if status == TwoWireNackAddress {
		return ErrTwoWireWriteNack
	}

	out := make([]byte, 0, len("Write Data:")+5*len(payload))
	out = append(out, "Write Data:"...)
	for _, b := range payload {
		out = append(out, " 0x"...)
		out = appendHexByte(out, b)
	}
	t.write(out)
	t.writeString(t.cfg.NewLine)
	return nil
}

func (t *Terminal) scanTwoWire() error {
	t.writeLine("Scanning for available I2C devices...")

	found := 0
	for addr := uint8(1); addr <= 127; addr++ {
		t.bus.BeginTransmission(addr)
		switch t.bus.EndTransmission() {
		case TwoWireOK:
			t.writeLine("I2C device found at Address: ", hexByte(addr))
			found++
		case TwoWireOther:
			t.writeLine("Unknown error at Address: ", hexByte(addr))
		}
	}

	if found == 0 {
		t.writeLine("No I2C devices found :(")
	} else {
		t.writeLine("Scan complete, ", itoa(found), " devices found!")
	}
	return nil
}
