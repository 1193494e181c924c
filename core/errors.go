package core

import "errors"

// ErrorKind identifies a per-cycle terminal error.
// Every kind is an error value and compares with errors.Is.
type ErrorKind uint8

const (
	ErrNone ErrorKind = iota
	ErrNoInput
	ErrUndefinedUserCommand
	ErrUnrecognizedInput
	ErrLineTooLong
	ErrTwoWireReadLength
	ErrTwoWireCharacter
	ErrTwoWireCommandLength
	ErrTwoWireWriteData
	ErrHexValuePair
	ErrUnrecognizedProtocol
	ErrUnrecognizedTwoWireType
	ErrTwoWireReadNack
	ErrTwoWireWriteNack
	ErrTwoWireCommandTooLong
	ErrTwoWireReadCount
	ErrNoTwoWireBus
	ErrRegistryFull
	ErrDuplicateCommand
	ErrRegistryLocked
	ErrEmptyValue
	ErrNonNumeric
	ErrNumericFormat
	ErrFractionalValue
	ErrCommandFailed
	ErrUnrecognizedGPIOSelection

	numErrorKinds
)

// errorMessages is indexed by ErrorKind
var errorMessages = [numErrorKinds]string{
	ErrNone:                    "No Error",
	ErrNoInput:                 "Error: No Input",
	ErrUndefinedUserCommand:    "Error: USER function is not defined (null pointer)",
	ErrUnrecognizedInput:       "Error: Unrecognized Input Character",
	ErrLineTooLong:             "Error: Serial Command Length Exceeds Limit",
	ErrTwoWireReadLength:       "Error: Incoming TwoWire Data Exceeds Read Buffer",
	ErrTwoWireCharacter:        "Error: Invalid TwoWire Command Character",
	ErrTwoWireCommandLength:    "Error: TwoWire Command requires Address and Register",
	ErrTwoWireWriteData:        "Error: No data provided for write to I2C registers",
	ErrHexValuePair:            "Error: Commands must be in hex value pairs",
	ErrUnrecognizedProtocol:    "Error: Unrecognized Protocol",
	ErrUnrecognizedTwoWireType: "Error: Unrecognized I2C transaction type",
	ErrTwoWireReadNack:         "Error: I2C read attempt received NACK",
	ErrTwoWireWriteNack:        "Error: I2C write attempt received NACK",
	ErrTwoWireCommandTooLong:   "Error: TwoWire Command Length Exceeds Limit",
	ErrTwoWireReadCount:        "Error: Invalid TwoWire read count",
	ErrNoTwoWireBus:            "Error: TwoWire bus not configured",
	ErrRegistryFull:            "Error: User command table is full",
	ErrDuplicateCommand:        "Error: User command already registered",
	ErrRegistryLocked:          "Error: User commands cannot be registered during dispatch",
	ErrEmptyValue:              "Input Error: Protocol specified but command empty",
	ErrNonNumeric:              "Input Error: Input value must be numeric",
	ErrNumericFormat:           "Input Error: Unrecognized numeric formatting",
	ErrFractionalValue:         "Warning: Only integer data values are accepted",
	ErrCommandFailed:           "Error: User command failed",

	ErrUnrecognizedGPIOSelection: "Error: Unrecognized GPIO selection",
}

// Error returns the transcript text for the kind, without a line terminator
func (k ErrorKind) Error() string {
	if k >= numErrorKinds {
		return "Error: Unknown error " + itoa(int(k))
	}
	return errorMessages[k]
}

// Configuration errors returned by NewTerminal
var (
	// ErrNilTransport is returned when a Terminal is constructed without a Transport.
	ErrNilTransport = errors.New("terminal: transport is nil")

	// ErrBufferSize is returned when the line buffer capacity is not positive.
	ErrBufferSize = errors.New("terminal: line buffer size must be positive")

	// ErrTwoWireBufferSize is returned when the two-wire buffer cannot hold an
	// address and a register, or is larger than the line buffer.
	ErrTwoWireBufferSize = errors.New("terminal: two-wire buffer size must be between 3 and the line buffer size")

	// ErrCommandCapacity is returned when the user command table capacity is not positive.
	ErrCommandCapacity = errors.New("terminal: user command capacity must be positive")
)

// warningError marks a kind as a warning rather than an error
type warningError struct {
	kind ErrorKind
}

func (w *warningError) Error() string { return w.kind.Error() }

func (w *warningError) Unwrap() error { return w.kind }

// Warn wraps kind so that ErrorState records it as a warning.
// errors.Is(Warn(k), k) holds.
func Warn(kind ErrorKind) error {
	return &warningError{kind: kind}
}

// IsWarning reports whether err was produced by Warn
func IsWarning(err error) bool {
	var w *warningError
	return errors.As(err, &w)
}

// ErrorState holds the outcome of the current request cycle.
// It is set at most once per cycle and drained by the Terminal at the end of it.
type ErrorState struct {
	flag    bool
	warning bool
	kind    ErrorKind
	message string
}

// Set records kind as the cycle's error, overwriting any previous one
func (e *ErrorState) Set(kind ErrorKind) {
	e.flag = true
	e.kind = kind
	e.message = kind.Error()
}

// Warn records kind as the cycle's warning
func (e *ErrorState) Warn(kind ErrorKind) {
	e.Set(kind)
	e.warning = true
}

// SetError records err. ErrorKind values and warnings keep their table text;
// any other error is reported as a failed user command with its own text.
func (e *ErrorState) SetError(err error) {
	if err == nil {
		return
	}

	var kind ErrorKind
	if errors.As(err, &kind) {
		if IsWarning(err) {
			e.Warn(kind)
		} else {
			e.Set(kind)
		}
		return
	}

	e.flag = true
	e.warning = false
	e.kind = ErrCommandFailed
	e.message = "Error: " + err.Error()
}

// Clear drops the flag and kind; the message is left stale
func (e *ErrorState) Clear() {
	e.flag = false
	e.warning = false
	e.kind = ErrNone
}

// Reset clears the state and the message
func (e *ErrorState) Reset() {
	e.Clear()
	e.message = ""
}

// Flag reports whether an error or warning is pending
func (e *ErrorState) Flag() bool { return e.flag }

// Warning reports whether the pending entry is a warning
func (e *ErrorState) Warning() bool { return e.warning }

// Kind returns the pending kind, ErrNone when clear
func (e *ErrorState) Kind() ErrorKind { return e.kind }

// Message returns the text of the last recorded entry
func (e *ErrorState) Message() string { return e.message }
