// Package cson decodes CoffeeScript Object Notation, the format Boostnote
// stores notes in.
//
// Only the data subset is supported: implicit and braced objects, nesting by
// indentation, arrays, quoted and block strings, numbers, booleans and null.
// Values decode to the same shapes encoding/json produces for an any:
// map[string]any, []any, string, float64, bool and nil.
package cson

import (
	"fmt"
	"os"
)

// Unmarshal decodes a CSON document. An empty document decodes to nil.
func Unmarshal(data []byte) (any, error) {
	toks, err := tokenize(string(data))
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.document()
}

// ReadFile reads and decodes the CSON file at path.
func ReadFile(path string) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(b)
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.peekAt(0)
}

func (p *parser) peekAt(offset int) token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorAt(t token, format string, args ...any) error {
	return &SyntaxError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipNewlines() {
	for p.peek().kind == tokNewline {
		p.pos++
	}
}

func (p *parser) skipSeparators() {
	for k := p.peek().kind; k == tokNewline || k == tokComma; k = p.peek().kind {
		p.pos++
	}
}

func (p *parser) isKeyStart(offset int) bool {
	switch p.peekAt(offset).kind {
	case tokIdent, tokString, tokNumber:
		return p.peekAt(offset+1).kind == tokColon
	default:
		return false
	}
}

func (p *parser) document() (any, error) {
	p.skipNewlines()
	if p.peek().kind == tokEOF {
		return nil, nil
	}

	var v any
	var err error
	if p.isKeyStart(0) {
		v, err = p.members(-1, tokEOF)
	} else {
		v, err = p.value()
	}
	if err != nil {
		return nil, err
	}

	p.skipNewlines()
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorAt(t, "unexpected %s after end of document", t.kind)
	}
	return v, nil
}

// members reads key: value pairs until closer, a line indented less than
// indent, or end of input. A negative indent is fixed by the first key that
// starts a line.
func (p *parser) members(indent int, closer tokenKind) (map[string]any, error) {
	obj := map[string]any{}
	for {
		if p.skipMemberSeparators(closer, len(obj) > 0) {
			return obj, nil
		}
		t := p.peek()
		if t.kind == closer || t.kind == tokEOF {
			return obj, nil
		}
		if t.first && indent >= 0 {
			if t.indent < indent {
				return obj, nil
			}
			if t.indent > indent {
				return nil, p.errorAt(t, "unexpected indentation")
			}
		}
		if indent < 0 && t.first {
			indent = t.indent
		}

		key, err := p.key()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokColon {
			return nil, p.errorAt(c, "expected ':' after key %q, found %s", key, c.kind)
		}
		v, err := p.memberValue(t, key, closer)
		if err != nil {
			return nil, err
		}
		obj[key] = v

		after := p.peek()
		switch after.kind {
		case tokNewline, tokComma, tokEOF, closer:
		default:
			// a nested block already consumed the line break before a dedent
			if after.first {
				continue
			}
			return nil, p.errorAt(after, "unexpected %s after value of %q", after.kind, key)
		}
	}
}

// skipMemberSeparators skips newlines and commas between members. Inside an
// array a comma that starts its own line ends the current implicit object,
// in which case it is left for the array and true is returned.
func (p *parser) skipMemberSeparators(closer tokenKind, open bool) bool {
	for {
		t := p.peek()
		switch {
		case t.kind == tokComma && t.first && closer == tokRBrack && open:
			return true
		case t.kind == tokNewline || t.kind == tokComma:
			p.pos++
		default:
			return false
		}
	}
}

func (p *parser) memberValue(keyTok token, key string, closer tokenKind) (any, error) {
	if p.peek().kind != tokNewline {
		return p.value()
	}

	p.skipNewlines()
	t := p.peek()
	if t.kind == tokEOF || t.kind == closer || t.indent <= keyTok.indent {
		return nil, p.errorAt(keyTok, "missing value for %q", key)
	}
	if p.isKeyStart(0) {
		return p.members(t.indent, closer)
	}
	return p.value()
}

func (p *parser) key() (string, error) {
	t := p.next()
	switch t.kind {
	case tokIdent, tokNumber:
		return t.text, nil
	case tokString:
		return t.value.(string), nil
	default:
		return "", p.errorAt(t, "expected key, found %s", t.kind)
	}
}

func (p *parser) value() (any, error) {
	t := p.next()
	switch t.kind {
	case tokString:
		return t.value.(string), nil
	case tokNumber:
		return t.value.(float64), nil
	case tokIdent:
		switch t.text {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		case "null", "undefined":
			return nil, nil
		}
		return nil, p.errorAt(t, "unexpected identifier %q", t.text)
	case tokLBrack:
		return p.array(t)
	case tokLBrace:
		return p.object(t)
	default:
		return nil, p.errorAt(t, "unexpected %s", t.kind)
	}
}

func (p *parser) array(open token) ([]any, error) {
	out := []any{}
	for {
		p.skipSeparators()
		t := p.peek()
		switch t.kind {
		case tokRBrack:
			p.next()
			return out, nil
		case tokEOF:
			return nil, p.errorAt(open, "unterminated array")
		}

		var v any
		var err error
		if p.isKeyStart(0) {
			indent := -1
			if t.first {
				indent = t.indent
			}
			v, err = p.members(indent, tokRBrack)
		} else {
			v, err = p.value()
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		switch after := p.peek(); after.kind {
		case tokNewline, tokComma, tokRBrack:
		case tokEOF:
			return nil, p.errorAt(open, "unterminated array")
		default:
			if after.first {
				continue
			}
			return nil, p.errorAt(after, "unexpected %s in array", after.kind)
		}
	}
}

func (p *parser) object(open token) (map[string]any, error) {
	obj, err := p.members(-1, tokRBrace)
	if err != nil {
		return nil, err
	}
	t := p.next()
	switch t.kind {
	case tokRBrace:
		return obj, nil
	case tokEOF:
		return nil, p.errorAt(open, "unterminated object")
	default:
		return nil, p.errorAt(t, "expected '}', found %s", t.kind)
	}
}
