package termui

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// ScanArgs implements a bufio.SplitFunc that scans optionally quoted arg
// tokens separated by spaces.
func ScanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// Skip leading spaces.
	start := 0
	var r rune
	for width := 0; start < len(data); start += width {
		r, width = utf8.DecodeRune(data[start:])
		if !unicode.IsSpace(r) {
			break
		}
	}

	if r == '"' || r == '\'' {
		// Scan until end quote, skipping escaped quotes.
		q := r
		esc := false
		for width, i := 0, start+1; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			if r == '\\' {
				esc = true
			} else if !esc && r == q {
				return i + width, data[start:i], nil
			} else {
				esc = false
			}
		}
	} else {
		// Scan until space.
		for width, i := 0, start; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			if unicode.IsSpace(r) {
				return i + width, data[start:i], nil
			}
		}
	}

	// If we're at EOF, we have a final, non-empty, non-terminated arg. Return it.
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	// Request more data.
	return start, nil, nil
}

// UnquoteArg strips one level of quoting from an arg token scanned by
// ScanArgs.
func UnquoteArg(arg string) string {
	if len(arg) > 0 && (arg[0] == '"' || arg[0] == '\'') {
		if s, err := strconv.Unquote(arg + string(arg[0])); err == nil {
			return s
		}
		return arg[1:]
	}
	return arg
}
