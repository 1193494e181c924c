package core

const (
	maxInt32 = 1<<31 - 1
	minInt32 = -1 << 31
)

// ParseInt parses a decimal integer argument such as a pin number or a level.
//
// An optional leading '-' is accepted. A fractional part is truncated toward
// zero and the value is returned together with Warn(ErrFractionalValue).
// Errors:
//   - ErrEmptyValue: b is empty
//   - ErrNonNumeric: a character other than a digit, '-' or '.'
//   - ErrNumericFormat: a misplaced '-', a second '.', no digits on either
//     side of the point, or a value outside the int32 range
func ParseInt(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, ErrEmptyValue
	}

	neg := false
	i := 0
	if b[0] == '-' {
		neg = true
		i = 1
	}

	var value int64
	intDigits := 0
	for ; i < len(b) && b[i] != '.'; i++ {
		c := b[i]
		switch {
		case isDigit(c):
			value = value*10 + int64(c-'0')
			if value > maxInt32+1 {
				return 0, ErrNumericFormat
			}
			intDigits++
		case c == '-':
			return 0, ErrNumericFormat
		default:
			return 0, ErrNonNumeric
		}
	}

	fraction := false
	if i < len(b) {
		// b[i] is the decimal point
		i++
		fracDigits := 0
		for ; i < len(b); i++ {
			c := b[i]
			switch {
			case isDigit(c):
				fracDigits++
			case c == '-', c == '.':
				return 0, ErrNumericFormat
			default:
				return 0, ErrNonNumeric
			}
		}
		if fracDigits == 0 {
			return 0, ErrNumericFormat
		}
		fraction = true
	}

	if intDigits == 0 && !fraction {
		return 0, ErrNumericFormat
	}

	if neg {
		value = -value
	}
	if value > maxInt32 || value < minInt32 {
		return 0, ErrNumericFormat
	}

	if fraction {
		return int(value), Warn(ErrFractionalValue)
	}
	return int(value), nil
}
