package core

const hexDigits = "0123456789ABCDEF"

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	var buf [20]byte
	return string(appendInt(buf[:0], n))
}

// appendInt appends the decimal form of n to dst
func appendInt(dst []byte, n int) []byte {
	if n == 0 {
		return append(dst, '0')
	}

	// Work on the negative value so the minimum int does not overflow
	negative := n < 0
	if !negative {
		n = -n
	}

	var buf [20]byte
	pos := len(buf)
	for n < 0 {
		pos--
		buf[pos] = byte('0' - n%10)
		n /= 10
	}

	if negative {
		pos--
		buf[pos] = '-'
	}

	return append(dst, buf[pos:]...)
}

// appendHexByte appends b as two uppercase hex digits
func appendHexByte(dst []byte, b byte) []byte {
	return append(dst, hexDigits[b>>4], hexDigits[b&0x0F])
}

// hexByte formats b as 0xHH
func hexByte(b byte) string {
	buf := [4]byte{'0', 'x'}
	appendHexByte(buf[:2], b)
	return string(buf[:])
}

// isSpace matches the C locale whitespace set: space, \t, \n, \v, \f, \r
func isSpace(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

// isLetter checks if a byte is an ASCII letter
func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// isDigit checks if a byte is an ASCII digit
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// toLower converts an ASCII letter to lowercase
func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
