package device

import (
	"context"
	"fmt"
	"strings"
)

// Scan runs the scan built-in and returns the addresses that acknowledged
func (d *Device) Scan(ctx context.Context) ([]uint8, error) {
	resp, err := d.Exec(ctx, "scan")
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var found []uint8
	for _, line := range resp.Lines {
		rest, ok := strings.CutPrefix(line, "I2C device found at Address: ")
		if !ok {
			continue
		}
		addr, err := parseHexByte(rest)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		found = append(found, addr)
	}
	return found, nil
}

// ReadRegister reads count bytes starting at reg of the device at addr.
//
// By default the count is sent as an explicit third hex pair, which the
// firmware accepts up to its two-wire buffer size. With LegacyReadLength the
// count is encoded as count-1 padding pairs instead, and the address and
// register take two slots of the same buffer while the padding has to fit in
// the line buffer.
func (d *Device) ReadRegister(ctx context.Context, addr, reg uint8, count int) ([]byte, error) {
	limit := d.opts.TwoWireSize
	if d.opts.LegacyReadLength {
		limit = min(limit-1, (d.opts.BufferSize-len("i2c r AARR"))/2+1)
	}
	if count < 1 || count > limit {
		return nil, fmt.Errorf("read count %d out of range 1-%d", count, limit)
	}

	line := fmt.Sprintf("i2c r %02x%02x", addr, reg)
	switch {
	case d.opts.LegacyReadLength:
		line += strings.Repeat("00", count-1)
	case count > 1:
		line += fmt.Sprintf("%02x", count)
	}

	resp, err := d.Exec(ctx, line)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	data, ok := resp.Find("Read Data:")
	if !ok {
		return nil, fmt.Errorf("read: no data line in %q", resp.Raw)
	}
	data = strings.TrimSpace(data)
	if data == "No Data Received" {
		return nil, nil
	}

	fields := strings.Fields(data)
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		b, err := parseHexByte(f)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		out = append(out, b)
	}
	return out, nil
}

// WriteRegister writes data starting at reg of the device at addr
func (d *Device) WriteRegister(ctx context.Context, addr, reg uint8, data ...byte) error {
	if len(data) == 0 {
		return fmt.Errorf("write: no data")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "i2c w %02x%02x", addr, reg)
	for _, b := range data {
		fmt.Fprintf(&sb, "%02x", b)
	}

	resp, err := d.Exec(ctx, sb.String())
	if err != nil {
		return err
	}
	return resp.Err()
}
