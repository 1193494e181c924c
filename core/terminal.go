package core

import (
	"context"
	"time"
)

// Default terminal settings
const (
	DefaultDelimiter    = ' '
	DefaultLineEnding   = '\n'
	DefaultNewLine      = "\n"
	DefaultPrompt       = ">> "
	DefaultBufferSize   = 64
	DefaultTwoWireSize  = 30
	DefaultMaxCommands  = 10
	DefaultSettleDelay  = 100 * time.Microsecond
	DefaultTwoWireDelay = 50 * time.Microsecond
)

const (
	asciiBackspace = 0x08
	asciiDelete    = 0x7F
)

// destructiveBackspace erases the last echoed character on a VT100 terminal
const destructiveBackspace = "\b \b"

// Config holds terminal settings. Zero values select the defaults.
type Config struct {
	Delimiter  byte   // separates a command from its arguments
	LineEnding byte   // byte that completes a line
	NewLine    string // written wherever the transcript ends a line
	Prompt     string

	Echo bool // mirror accepted bytes back to the transport

	BufferSize  int // line capacity C
	TwoWireSize int // two-wire buffer capacity W, 3..C
	MaxCommands int // user command capacity M

	// SettleDelay is waited per character while resynchronizing after an overflow
	SettleDelay time.Duration
	// TwoWireDelay is waited between the phases of a two-wire read
	TwoWireDelay time.Duration

	// LegacyReadLength derives the read length from the number of hex pairs
	// after the address instead of an explicit count
	LegacyReadLength bool

	// Sleep is used for every delay. Defaults to time.Sleep.
	Sleep func(time.Duration)

	// Debug receives a trace of the terminal's decisions. Optional.
	Debug DebugWriter
}

func (c *Config) setDefaults() {
	if c.Delimiter == 0 {
		c.Delimiter = DefaultDelimiter
	}
	if c.LineEnding == 0 {
		c.LineEnding = DefaultLineEnding
	}
	if c.NewLine == "" {
		c.NewLine = DefaultNewLine
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.BufferSize == 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.TwoWireSize == 0 {
		c.TwoWireSize = DefaultTwoWireSize
		if c.TwoWireSize > c.BufferSize {
			c.TwoWireSize = c.BufferSize
		}
	}
	if c.MaxCommands == 0 {
		c.MaxCommands = DefaultMaxCommands
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.TwoWireDelay == 0 {
		c.TwoWireDelay = DefaultTwoWireDelay
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
}

func (c *Config) validate() error {
	if c.BufferSize <= 0 {
		return ErrBufferSize
	}
	if c.TwoWireSize < 3 || c.TwoWireSize > c.BufferSize {
		return ErrTwoWireBufferSize
	}
	if c.MaxCommands <= 0 {
		return ErrCommandCapacity
	}
	return nil
}

// Stats counts what a terminal has processed since it was created
type Stats struct {
	Lines     uint32 // completed lines dispatched
	Errors    uint32 // cycles that ended with an error
	Warnings  uint32 // cycles that ended with a warning
	Overflows uint32 // lines discarded for exceeding the buffer
}

// Terminal reads command lines from a transport and dispatches them to user
// commands or to the two-wire built-ins. All state is owned by the instance;
// Loop must not be called concurrently.
type Terminal struct {
	cfg       Config
	transport Transport
	bus       TwoWire

	line      *LineBuffer
	tokenizer *Tokenizer
	registry  *CommandRegistry
	errs      ErrorState
	twoWire   []byte

	echo   bool
	resync bool // discarding the tail of an overflowed line
	wrote  bool // output pending a flush

	stats Stats
}

// NewTerminal creates a terminal on transport. bus may be nil, in which case the
// two-wire built-ins report ErrNoTwoWireBus.
func NewTerminal(transport Transport, bus TwoWire, cfg Config) (*Terminal, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Terminal{
		cfg:       cfg,
		transport: transport,
		bus:       bus,
		line:      NewLineBuffer(cfg.BufferSize, cfg.LineEnding),
		tokenizer: NewTokenizer(cfg.Delimiter, cfg.BufferSize),
		registry:  NewCommandRegistry(cfg.MaxCommands),
		twoWire:   make([]byte, cfg.TwoWireSize),
		echo:      cfg.Echo,
	}, nil
}

// OnCommand registers a user command. User commands take precedence over the
// built-in verbs, so registering "scan" or "i2c" overrides them.
func (t *Terminal) OnCommand(name string, handler CommandHandler) error {
	return t.registry.Register(name, handler)
}

// MustOnCommand is like OnCommand but panics on error
func (t *Terminal) MustOnCommand(name string, handler CommandHandler) {
	if err := t.OnCommand(name, handler); err != nil {
		panic("terminal: command " + name + ": " + err.Error())
	}
}

// Commands returns the registered user command names
func (t *Terminal) Commands() []string {
	return t.registry.Names()
}

// Help is a user command handler listing the built-in verbs and the
// registered user commands. Register it as "help".
func (t *Terminal) Help(args Args) error {
	if !args.Empty() {
		return ErrUnrecognizedProtocol
	}
	t.writeLine("Built-in: scan, i2c r AARR[NN], i2c w AARRDD[DD...]")
	t.writeString("User:")
	for _, name := range t.Commands() {
		t.writeString(" ")
		t.writeString(name)
	}
	t.writeString(t.cfg.NewLine)
	return nil
}

// SetEcho enables or disables echo of received bytes
func (t *Terminal) SetEcho(enable bool) {
	t.echo = enable
}

// Delimiter returns the configured command delimiter
func (t *Terminal) Delimiter() byte {
	return t.cfg.Delimiter
}

// Print writes text to the transport. User commands use it to answer.
func (t *Terminal) Print(parts ...string) {
	for _, p := range parts {
		t.writeString(p)
	}
}

// Println is like Print followed by the configured new line
func (t *Terminal) Println(parts ...string) {
	t.writeLine(parts...)
}

// Stats returns the terminal's counters
func (t *Terminal) Stats() Stats {
	return t.stats
}

// Init writes a new line and the first prompt
func (t *Terminal) Init() {
	t.writeString(t.cfg.NewLine)
	t.writeString(t.cfg.Prompt)
	t.flush()
}

// Run calls Loop every interval until ctx is done
func (t *Terminal) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		t.Loop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Loop services the bytes currently available on the transport and dispatches
// at most one completed line. It never waits for input, except for the short
// settle delays while discarding an overflowed line.
func (t *Terminal) Loop() {
	if t.resync {
		t.discardLine()
		if t.resync {
			t.flush()
			return
		}
	}

	t.drain()

	switch {
	case t.line.Overflow():
		t.recoverOverflow()
	case t.line.Complete():
		t.cycle()
	}

	t.flush()
}

// drain moves available bytes into the line buffer until it completes or overflows
func (t *Terminal) drain() {
	for t.transport.Available() > 0 {
		c, err := t.transport.ReadByte()
		if err != nil {
			t.trace("transport read: " + err.Error())
			return
		}

		if c == asciiBackspace || c == asciiDelete {
			if t.echo && t.line.Len() > 0 {
				t.writeString(destructiveBackspace)
			}
			t.line.Backspace()
			continue
		}

		switch t.line.Feed(c) {
		case LineFilling:
			if t.echo {
				t.write([]byte{c})
			}
		case LineComplete:
			if t.echo {
				t.writeString(t.cfg.NewLine)
			}
			return
		case LineOverflow:
			return
		}
	}
}

// discardLine drops bytes until the line ending or until the transport runs dry.
// resync stays set when the ending has not arrived yet.
func (t *Terminal) discardLine() {
	for t.transport.Available() > 0 {
		c, err := t.transport.ReadByte()
		if err != nil {
			t.trace("transport read: " + err.Error())
			return
		}
		if c == t.cfg.LineEnding {
			t.resync = false
			t.trace("resync complete")
			return
		}
		t.cfg.Sleep(t.cfg.SettleDelay)
	}
}

func (t *Terminal) recoverOverflow() {
	t.stats.Overflows++
	t.trace("line overflow")

	// the rest of the line may still be arriving
	t.cfg.Sleep(t.cfg.SettleDelay)
	t.resync = true
	t.discardLine()

	t.writeString(t.cfg.NewLine)
	t.errs.Set(ErrLineTooLong)
	t.reportErrors()
	t.resetCycle()
}

// cycle processes the completed line and re-arms the prompt
func (t *Terminal) cycle() {
	t.stats.Lines++
	raw := t.line.Bytes()
	if t.cfg.Debug != nil {
		t.trace("line: " + string(raw))
	}

	if err := t.process(raw); err != nil {
		t.errs.SetError(err)
	}

	t.reportErrors()
	t.resetCycle()
}

// process validates, tokenizes and dispatches one line. User commands match
// first: by token when arguments follow, by the whole compacted line otherwise.
func (t *Terminal) process(raw []byte) error {
	if err := t.tokenizer.Validate(raw); err != nil {
		return err
	}

	cmd, err := t.tokenizer.Tokenize(raw)
	if err != nil {
		return err
	}

	if cmd.HasArgs() {
		if ok, err := t.registry.Dispatch(cmd.Token(), newArgs(raw, cmd.ArgsStart())); ok {
			t.trace("user command: " + string(cmd.Token()))
			return err
		}
	} else if ok, err := t.registry.Dispatch(cmd.Compacted(), Args{}); ok {
		t.trace("user command: " + string(cmd.Compacted()))
		return err
	}

	return t.builtin(cmd)
}

// builtin dispatches the i2c and scan verbs, matched case-insensitively
func (t *Terminal) builtin(cmd *ParsedCommand) error {
	data := cmd.Compacted()

	switch {
	case hasPrefixFold(data, "i2c"):
		if t.bus == nil {
			return ErrNoTwoWireBus
		}
		if len(data) < 4 {
			return ErrUnrecognizedTwoWireType
		}
		switch toLower(data[3]) {
		case 'r':
			return t.twoWireRead(data[4:])
		case 'w':
			return t.twoWireWrite(data[4:])
		}
		return ErrUnrecognizedTwoWireType

	case hasPrefixFold(data, "scan"):
		if cmd.CommandLength()+cmd.ArgsLength() > 4 {
			return ErrUnrecognizedProtocol
		}
		if t.bus == nil {
			return ErrNoTwoWireBus
		}
		return t.scanTwoWire()
	}

	return ErrUnrecognizedProtocol
}

// reportErrors prints and clears the cycle's error state
func (t *Terminal) reportErrors() {
	if t.errs.Flag() {
		if t.errs.Warning() {
			t.stats.Warnings++
		} else {
			t.stats.Errors++
		}
		t.trace("cycle error: " + t.errs.Message())
		t.writeString(t.errs.Message())
		t.writeString(t.cfg.NewLine)
	}
	t.errs.Clear()
}

// resetCycle clears the per-line buffers and writes a fresh prompt
func (t *Terminal) resetCycle() {
	t.line.Reset()
	t.tokenizer.Reset()
	clear(t.twoWire)
	t.writeString(t.cfg.Prompt)
}

func (t *Terminal) write(b []byte) {
	if _, err := t.transport.Write(b); err != nil {
		t.trace("transport write: " + err.Error())
		return
	}
	t.wrote = true
}

func (t *Terminal) writeString(s string) {
	t.write([]byte(s))
}

// writeLine writes parts followed by the configured new line
func (t *Terminal) writeLine(parts ...string) {
	for _, p := range parts {
		t.writeString(p)
	}
	t.writeString(t.cfg.NewLine)
}

func (t *Terminal) flush() {
	if !t.wrote {
		return
	}
	t.wrote = false
	if f, ok := t.transport.(Flusher); ok {
		if err := f.Flush(); err != nil {
			t.trace("transport flush: " + err.Error())
		}
	}
}

func (t *Terminal) trace(msg string) {
	if t.cfg.Debug != nil {
		t.cfg.Debug(msg)
	}
}

// hasPrefixFold reports whether b starts with the lowercase ASCII prefix,
// ignoring case
func hasPrefixFold(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if toLower(b[i]) != prefix[i] {
			return false
		}
	}
	return true
}
