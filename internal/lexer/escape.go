package lexer

// isHexDigit reports whether c is a valid hex digit in a \uXXXX escape.
func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}

// isValidEscape reports whether c may validly follow a backslash inside a
// JSON string. The lexer only needs to validate the escape shape, not
// decode it: unescaping the full string is left to the leaf decoder.
func isValidEscape(c byte) bool {
	switch c {
	case 'n', 'r', 't', 'b', 'f', '\\', '/', '"', 'u':
		return true
	}
	return false
}
