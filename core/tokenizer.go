package core

// ParsedCommand is the tokenized form of one line.
// Matching uses the compacted copy; arguments refer back to the raw line.
type ParsedCommand struct {
	data       []byte // compacted line, delimiters and whitespace removed
	cmdLength  int
	argsStart  int // index into the raw line, -1 when no delimiter was found
	argsLength int
}

// Token returns the command name
func (p *ParsedCommand) Token() []byte { return p.data[:p.cmdLength] }

// Compacted returns the whole compacted line
func (p *ParsedCommand) Compacted() []byte { return p.data }

// Tail returns the compacted bytes following the command name
func (p *ParsedCommand) Tail() []byte { return p.data[p.cmdLength:] }

// HasArgs reports whether a delimiter opened an argument span
func (p *ParsedCommand) HasArgs() bool { return p.argsStart >= 0 }

// ArgsStart returns the raw-line index where the arguments begin, or -1
func (p *ParsedCommand) ArgsStart() int { return p.argsStart }

// ArgsLength returns the compacted length of the arguments
func (p *ParsedCommand) ArgsLength() int { return p.argsLength }

// CommandLength returns the compacted length of the command name
func (p *ParsedCommand) CommandLength() int { return p.cmdLength }

// Tokenizer splits raw lines into commands using a single-character delimiter.
// It owns the compacted buffer, so one Tokenizer serves one Terminal.
type Tokenizer struct {
	delimiter byte
	capacity  int
	data      []byte
	parsed    ParsedCommand
}

// NewTokenizer creates a tokenizer for lines of up to capacity bytes
func NewTokenizer(delimiter byte, capacity int) *Tokenizer {
	return &Tokenizer{
		delimiter: delimiter,
		capacity:  capacity,
		data:      make([]byte, capacity),
	}
}

// Delimiter returns the configured delimiter
func (t *Tokenizer) Delimiter() byte { return t.delimiter }

// Validate checks that raw only holds characters the terminal accepts:
// ASCII letters and digits, whitespace, the delimiter, '-', '.' and ','.
func (t *Tokenizer) Validate(raw []byte) error {
	for _, c := range raw {
		switch {
		case isLetter(c), isDigit(c), isSpace(c):
		case c == t.delimiter:
		case c == '-', c == '.', c == ',':
		default:
			return ErrUnrecognizedInput
		}
	}

	if len(raw) == 0 {
		return ErrNoInput
	}
	return nil
}

// Tokenize splits a validated raw line. The returned command is reused by the
// next call.
//
// The first delimiter seen after some token content ends the command name and
// opens the argument span; leading delimiters do not count, and a delimiter in
// the last slot of the buffer does not open a span.
func (t *Tokenizer) Tokenize(raw []byte) (*ParsedCommand, error) {
	p := &t.parsed
	*p = ParsedCommand{argsStart: -1}

	n := 0
	for i, c := range raw {
		if c == t.delimiter {
			if p.argsStart < 0 && n != 0 && i != t.capacity-1 {
				p.argsStart = i + 1
				p.cmdLength = n
			}
			continue
		}
		if !isSpace(c) {
			t.data[n] = c
			n++
		}
	}

	if n == 0 {
		return nil, ErrNoInput
	}

	if p.argsStart < 0 {
		p.cmdLength = n
	}
	p.data = t.data[:n]
	p.argsLength = n - p.cmdLength
	return p, nil
}

// Reset zeroes the compacted buffer
func (t *Tokenizer) Reset() {
	for i := range t.data {
		t.data[i] = 0
	}
	t.parsed = ParsedCommand{argsStart: -1}
}

// Args is a borrowed view of a user command's argument text in the raw line.
// It is only valid while the handler runs; the line buffer is reset afterwards.
type Args struct {
	line   []byte
	start  int
	length int
}

// newArgs builds the view for a command whose span opens at start.
// Leading and trailing whitespace is excluded.
func newArgs(line []byte, start int) Args {
	for start < len(line) && isSpace(line[start]) {
		start++
	}

	end := len(line)
	for end > start && (line[end-1] == 0 || isSpace(line[end-1])) {
		end--
	}

	return Args{line: line, start: start, length: end - start}
}

// Bytes returns the argument text, nil for a bare command
func (a Args) Bytes() []byte {
	if a.line == nil {
		return nil
	}
	return a.line[a.start : a.start+a.length]
}

// String returns a copy of the argument text
func (a Args) String() string { return string(a.Bytes()) }

// Len returns the argument length
func (a Args) Len() int { return a.length }

// Offset returns the index of the first argument byte in the raw line
func (a Args) Offset() int { return a.start }

// Empty reports whether there is no argument text
func (a Args) Empty() bool { return a.length == 0 }

// Fields splits the argument text on delim and whitespace.
// The fields alias the raw line.
func (a Args) Fields(delim byte) [][]byte {
	var fields [][]byte
	b := a.Bytes()
	start := -1
	for i, c := range b {
		if c == delim || isSpace(c) {
			if start >= 0 {
				fields = append(fields, b[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, b[start:])
	}
	return fields
}

// Int parses the argument text with ParseInt
func (a Args) Int() (int, error) { return ParseInt(a.Bytes()) }
