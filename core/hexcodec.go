package core

// hexNibble maps an ASCII hex digit to its value. Lowercase a-f fold to A-F.
func hexNibble(c byte) (byte, bool) {
	if c >= 'a' && c <= 'f' {
		c -= 'a' - 'A'
	}

	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// DecodeHex packs the ASCII hex digits in src into dst, high nibble first,
// and returns the number of bytes written.
//
// Decoding stops at a NUL byte. Errors, in the order they are checked:
//   - ErrTwoWireCharacter: a character is not a hex digit
//   - ErrTwoWireCommandTooLong: the bytes do not fit in dst
//   - ErrTwoWireCommandLength: fewer than three digits
//   - ErrHexValuePair: an odd number of digits
func DecodeHex(dst, src []byte) (int, error) {
	nibbles := 0
	for _, c := range src {
		if c == 0 {
			break
		}
		if _, ok := hexNibble(c); !ok {
			return 0, ErrTwoWireCharacter
		}
		nibbles++
	}

	if (nibbles+1)/2 > len(dst) {
		return 0, ErrTwoWireCommandTooLong
	}
	if nibbles < 3 {
		return 0, ErrTwoWireCommandLength
	}
	if nibbles%2 != 0 {
		return 0, ErrHexValuePair
	}

	for i := 0; i < nibbles; i += 2 {
		hi, _ := hexNibble(src[i])
		lo, _ := hexNibble(src[i+1])
		dst[i/2] = hi<<4 | lo
	}
	return nibbles / 2, nil
}

// AppendHex appends src to dst as uppercase hex digits
func AppendHex(dst, src []byte) []byte {
	for _, b := range src {
		dst = appendHexByte(dst, b)
	}
	return dst
}
