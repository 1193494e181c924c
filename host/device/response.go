package device

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Response is the transcript of one command
type Response struct {
	Raw   string   // everything printed before the prompt
	Lines []string // non-empty lines with line breaks removed
	Error string   // error or warning text reported by the device, if any
}

// errorPrefixes mark the lines the terminal prints for a failed cycle
var errorPrefixes = []string{"Error:", "Input Error:", "Warning:"}

func parseResponse(raw string) *Response {
	resp := &Response{Raw: raw}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if isErrorLine(line) {
			resp.Error = line
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}

func isErrorLine(line string) bool {
	for _, p := range errorPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Failed reports whether the device reported an error (warnings excluded)
func (r *Response) Failed() bool {
	return r.Error != "" && !r.Warning()
}

// Warning reports whether the device reported a warning
func (r *Response) Warning() bool {
	return strings.HasPrefix(r.Error, "Warning:")
}

// Err returns the reported error as a Go error, or nil
func (r *Response) Err() error {
	if !r.Failed() {
		return nil
	}
	return &DeviceError{Message: r.Error}
}

// Find returns the remainder of the first line starting with prefix
func (r *Response) Find(prefix string) (string, bool) {
	for _, line := range r.Lines {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return rest, true
		}
	}
	return "", false
}

// DeviceError is an error line printed by the device
type DeviceError struct {
	Message string
}

func (e *DeviceError) Error() string {
	return "device reported: " + e.Message
}

// IsDeviceError reports whether err carries an error printed by the device
func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}

// parseHexByte parses the "0xHH" form the terminal prints
func parseHexByte(s string) (uint8, error) {
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok {
		return 0, fmt.Errorf("missing 0x prefix in %q", s)
	}
	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid hex byte %q: %w", s, err)
	}
	return uint8(v), nil
}
