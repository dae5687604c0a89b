package loaders

// StripComments blanks out // line comments and /* */ block comments that
// are not inside string literals. Comment characters are replaced by spaces
// and newlines are kept, so offsets, lines and columns in the result match
// the original text.
func StripComments(src []byte) []byte {
	const (
		code = iota
		str
		lineComment
		blockComment
	)

	out := make([]byte, len(src))
	copy(out, src)

	state := code
	escaped := false
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch state {
		case code:
			switch {
			case c == '"':
				state = str
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				state = lineComment
				out[i], out[i+1] = ' ', ' '
				i++
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				state = blockComment
				out[i], out[i+1] = ' ', ' '
				i++
			}
		case str:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				state = code
			case c == '\n':
				// unterminated string; let the parser report it
				state = code
			}
		case lineComment:
			if c == '\n' {
				state = code
				continue
			}
			out[i] = ' '
		case blockComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				state = code
				continue
			}
			if c != '\n' && c != '\r' {
				out[i] = ' '
			}
		}
	}
	return out
}
