package cson

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokString
	tokNumber
	tokIdent
	tokColon
	tokComma
	tokLBrack
	tokRBrack
	tokLBrace
	tokRBrace
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNewline:
		return "newline"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokColon:
		return "':'"
	case tokComma:
		return "','"
	case tokLBrack:
		return "'['"
	case tokRBrack:
		return "']'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	default:
		return "token"
	}
}

type token struct {
	kind  tokenKind
	text  string
	value any
	line  int
	col   int
	// indent is the leading whitespace width of the line the token starts on.
	indent int
	// first is set for the first token on its line.
	first bool
}

// SyntaxError reports malformed CSON with a 1-based position.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("cson: line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

type lexer struct {
	src         string
	pos         int
	line        int
	lineStart   int
	indent      int
	atLineStart bool
	toks        []token
}

func tokenize(src string) ([]token, error) {
	src = strings.TrimPrefix(src, "\uFEFF")
	lx := &lexer{src: src, line: 1, atLineStart: true}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.toks, nil
}

func (lx *lexer) col() int {
	return lx.pos - lx.lineStart + 1
}

func (lx *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{Line: lx.line, Col: lx.col(), Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) emit(t token) {
	t.indent = lx.indent
	t.first = lx.atLineStart
	lx.atLineStart = false
	lx.toks = append(lx.toks, t)
}

// advance moves n bytes forward, keeping line accounting in step.
func (lx *lexer) advance(n int) {
	end := lx.pos + n
	for lx.pos < end {
		if lx.src[lx.pos] == '\n' {
			lx.pos++
			lx.line++
			lx.lineStart = lx.pos
			continue
		}
		lx.pos++
	}
}

func (lx *lexer) run() error {
	for {
		if lx.atLineStart {
			lx.measureIndent()
		}
		if lx.pos >= len(lx.src) {
			lx.toks = append(lx.toks, token{kind: tokEOF, line: lx.line, col: lx.col()})
			return nil
		}

		c := lx.src[lx.pos]
		line, col := lx.line, lx.col()
		switch {
		case c == '\n':
			if !lx.atLineStart {
				lx.toks = append(lx.toks, token{kind: tokNewline, line: line, col: col})
			}
			lx.advance(1)
			lx.atLineStart = true
		case c == ' ' || c == '\t' || c == '\r':
			lx.pos++
		case c == '#':
			if strings.HasPrefix(lx.src[lx.pos:], "###") && !strings.HasPrefix(lx.src[lx.pos:], "####") {
				end := strings.Index(lx.src[lx.pos+3:], "###")
				if end < 0 {
					return lx.errorf("unterminated block comment")
				}
				lx.advance(3 + end + 3)
				continue
			}
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		case c == ':':
			lx.pos++
			lx.emit(token{kind: tokColon, text: ":", line: line, col: col})
		case c == ',':
			lx.pos++
			lx.emit(token{kind: tokComma, text: ",", line: line, col: col})
		case c == '[':
			lx.pos++
			lx.emit(token{kind: tokLBrack, text: "[", line: line, col: col})
		case c == ']':
			lx.pos++
			lx.emit(token{kind: tokRBrack, text: "]", line: line, col: col})
		case c == '{':
			lx.pos++
			lx.emit(token{kind: tokLBrace, text: "{", line: line, col: col})
		case c == '}':
			lx.pos++
			lx.emit(token{kind: tokRBrace, text: "}", line: line, col: col})
		case c == '\'' || c == '"':
			s, err := lx.lexString(c)
			if err != nil {
				return err
			}
			lx.emit(token{kind: tokString, value: s, line: line, col: col})
		case c == '-' || c == '+' || c == '.' || isDigit(c):
			text, n, err := lx.lexNumber()
			if err != nil {
				return err
			}
			lx.emit(token{kind: tokNumber, text: text, value: n, line: line, col: col})
		case isIdentStart(c):
			start := lx.pos
			for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
				lx.pos++
			}
			lx.emit(token{kind: tokIdent, text: lx.src[start:lx.pos], line: line, col: col})
		default:
			r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
			return lx.errorf("unexpected character %q", r)
		}
	}
}

func (lx *lexer) measureIndent() {
	width := 0
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c != ' ' && c != '\t' {
			break
		}
		width++
		lx.pos++
	}
	lx.indent = width
}

func (lx *lexer) lexString(quote byte) (string, error) {
	line, col := lx.line, lx.col()
	rest := lx.src[lx.pos:]

	delim := strings.Repeat(string(quote), 3)
	if strings.HasPrefix(rest, delim) {
		end := findClosing(rest[3:], delim)
		if end < 0 {
			return "", &SyntaxError{Line: line, Col: col, Msg: "unterminated block string"}
		}
		raw := rest[3 : 3+end]
		lx.advance(3 + end + 3)
		s, err := unescape(dedentBlock(raw))
		if err != nil {
			return "", &SyntaxError{Line: line, Col: col, Msg: err.Error()}
		}
		return s, nil
	}

	end := findClosing(rest[1:], string(quote))
	if end < 0 {
		return "", &SyntaxError{Line: line, Col: col, Msg: "unterminated string"}
	}
	raw := rest[1 : 1+end]
	lx.advance(1 + end + 1)
	s, err := unescape(joinStringLines(raw))
	if err != nil {
		return "", &SyntaxError{Line: line, Col: col, Msg: err.Error()}
	}
	return s, nil
}

func (lx *lexer) lexNumber() (string, float64, error) {
	start := lx.pos
	if c := lx.src[lx.pos]; c == '-' || c == '+' {
		lx.pos++
	}
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if isIdentPart(c) || c == '.' {
			lx.pos++
			continue
		}
		prev := lx.src[lx.pos-1]
		if (c == '-' || c == '+') && (prev == 'e' || prev == 'E') && !isPrefixedInt(lx.src[start:lx.pos]) {
			lx.pos++
			continue
		}
		break
	}
	text := lx.src[start:lx.pos]
	n, err := parseNumber(text)
	if err != nil {
		lx.pos = start
		return "", 0, lx.errorf("invalid number %q", text)
	}
	return text, n, nil
}

// findClosing returns the offset of the first unescaped delim in s, or -1.
func findClosing(s string, delim string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if strings.HasPrefix(s[i:], delim) {
			return i
		}
	}
	return -1
}

func parseNumber(text string) (float64, error) {
	if isPrefixedInt(text) {
		i, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return 0, err
		}
		return float64(i), nil
	}
	return strconv.ParseFloat(text, 64)
}

func isPrefixedInt(text string) bool {
	t := strings.TrimLeft(text, "+-")
	if len(t) < 2 || t[0] != '0' {
		return false
	}
	switch t[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
