package cson

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// dedentBlock applies block string rules: the smallest indentation of the
// non-blank lines after the opening quotes is removed from every such line,
// then a leading blank line and a trailing blank line are dropped.
func dedentBlock(raw string) string {
	lines := strings.Split(raw, "\n")

	indent := ""
	found := false
	for _, l := range lines[1:] {
		body := strings.TrimLeft(l, " \t")
		if strings.TrimRight(body, "\r") == "" {
			continue
		}
		ws := l[:len(l)-len(body)]
		if !found || len(ws) < len(indent) {
			indent = ws
			found = true
		}
	}
	if indent != "" {
		for i := 1; i < len(lines); i++ {
			lines[i] = strings.TrimPrefix(lines[i], indent)
		}
	}

	if len(lines) > 1 && strings.TrimRight(lines[0], " \t\r") == "" {
		lines = lines[1:]
	}
	if n := len(lines); n > 1 && strings.TrimRight(lines[n-1], " \t\r") == "" {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}

// joinStringLines folds a quoted string that spans lines into one line, the
// way a multi-line single or double quoted string reads.
func joinStringLines(raw string) string {
	if !strings.Contains(raw, "\n") {
		return raw
	}
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		if i > 0 {
			l = strings.TrimLeft(l, " \t")
		}
		if i < len(lines)-1 {
			l = strings.TrimRight(l, " \t\r")
		}
		lines[i] = l
	}
	return strings.Join(lines, " ")
}

var errTrailingBackslash = errors.New("string ends with a lone backslash")

func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", errTrailingBackslash
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if i+2 >= len(s) {
				return "", fmt.Errorf("short \\x escape")
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape %q", s[i-1:i+3])
			}
			b.WriteRune(rune(v))
			i += 2
		case 'u':
			r, n, err := decodeUnicodeEscape(s[i+1:])
			if err != nil {
				return "", err
			}
			i += n
			if utf16.IsSurrogate(r) && strings.HasPrefix(s[i+1:], `\u`) {
				low, m, err := decodeUnicodeEscape(s[i+3:])
				if err == nil {
					if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
						r = pair
						i += 2 + m
					}
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}

// decodeUnicodeEscape reads the part after \u: four hex digits or a braced
// code point. It returns the rune and the number of bytes consumed.
func decodeUnicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, fmt.Errorf("unterminated \\u{} escape")
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, fmt.Errorf("invalid \\u{} escape %q", s[:end+1])
		}
		return rune(v), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, fmt.Errorf("short \\u escape")
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid \\u escape %q", s[:4])
	}
	return rune(v), 4, nil
}
