package jsonx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// SyntaxError describes malformed JSON input. Line and Col are 1-based; Offset
// is the byte offset into the input.
type SyntaxError struct {
	Msg    string
	Line   int
	Col    int
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: line %d column %d (char %d)", e.Msg, e.Line, e.Col, e.Offset)
}

// Parse parses a single JSON document. Leading and trailing whitespace is
// allowed; anything else after the document is an error.
func Parse(src string) (*Value, error) {
	p := newParser(src)
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf(p.pos, "Extra data")
	}
	return v, nil
}

// Valid reports whether src is a single well-formed JSON document.
func Valid(src string) bool {
	_, err := Parse(src)
	return err == nil
}

type parser struct {
	src        string
	pos        int
	lineStarts []int
}

func newParser(src string) *parser {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &parser{src: src, lineStarts: starts}
}

func (p *parser) position(offset int) Pos {
	line := sort.Search(len(p.lineStarts), func(i int) bool { return p.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Pos{Line: line, Col: offset - p.lineStarts[line]}
}

func (p *parser) errorf(offset int, format string, args ...any) *SyntaxError {
	pos := p.position(offset)
	return &SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   pos.Line + 1,
		Col:    pos.Col + 1,
		Offset: offset,
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) value() (*Value, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorf(p.pos, "Expecting value")
	}
	start := p.pos
	var v *Value
	var err error
	switch c := p.src[p.pos]; {
	case c == '{':
		v, err = p.object()
	case c == '[':
		v, err = p.array()
	case c == '"':
		var s string
		s, err = p.str()
		v = &Value{Kind: String, Str: s}
	case c == '-' || (c >= '0' && c <= '9'):
		v, err = p.number()
	case strings.HasPrefix(p.src[p.pos:], "true"):
		p.pos += 4
		v = &Value{Kind: Bool, Bool: true}
	case strings.HasPrefix(p.src[p.pos:], "false"):
		p.pos += 5
		v = &Value{Kind: Bool}
	case strings.HasPrefix(p.src[p.pos:], "null"):
		p.pos += 4
		v = &Value{Kind: Null}
	default:
		return nil, p.errorf(p.pos, "Expecting value")
	}
	if err != nil {
		return nil, err
	}
	v.Start = p.position(start)
	v.End = p.position(p.pos)
	return v, nil
}

func (p *parser) object() (*Value, error) {
	p.pos++ // {
	v := &Value{Kind: Object}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return v, nil
	}
	for {
		if p.pos >= len(p.src) || p.src[p.pos] != '"' {
			return nil, p.errorf(p.pos, "Expecting property name enclosed in double quotes")
		}
		keyStart := p.pos
		key, err := p.str()
		if err != nil {
			return nil, err
		}
		keyEnd := p.pos
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, p.errorf(p.pos, "Expecting ':' delimiter")
		}
		p.pos++
		p.skipSpace()
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		m := &Member{Key: key, KeyStart: p.position(keyStart), KeyEnd: p.position(keyEnd), Value: val}
		if existing, ok := v.Member(key); ok {
			// Last duplicate wins but keeps the first slot.
			*existing = *m
		} else {
			v.Members = append(v.Members, m)
		}
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf(p.pos, "Expecting ',' delimiter")
		}
		switch p.src[p.pos] {
		case '}':
			p.pos++
			return v, nil
		case ',':
			p.pos++
			p.skipSpace()
		default:
			return nil, p.errorf(p.pos, "Expecting ',' delimiter")
		}
	}
}

func (p *parser) array() (*Value, error) {
	p.pos++ // [
	v := &Value{Kind: Array}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		return v, nil
	}
	for {
		item, err := p.value()
		if err != nil {
			return nil, err
		}
		v.Items = append(v.Items, item)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf(p.pos, "Expecting ',' delimiter")
		}
		switch p.src[p.pos] {
		case ']':
			p.pos++
			return v, nil
		case ',':
			p.pos++
			p.skipSpace()
		default:
			return nil, p.errorf(p.pos, "Expecting ',' delimiter")
		}
	}
}

func (p *parser) number() (*Value, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	digits := func() int {
		n := 0
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
			n++
		}
		return n
	}
	if p.pos < len(p.src) && p.src[p.pos] == '0' {
		p.pos++
	} else if digits() == 0 {
		return nil, p.errorf(start, "Expecting value")
	}
	if p.pos+1 < len(p.src) && p.src[p.pos] == '.' && isDigit(p.src[p.pos+1]) {
		p.pos++
		digits()
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		save := p.pos
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		if digits() == 0 {
			p.pos = save
		}
	}
	return &Value{Kind: Number, Num: p.src[start:p.pos]}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *parser) str() (string, error) {
	start := p.pos
	p.pos++ // opening quote
	var sb strings.Builder
	chunk := p.pos
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf(start, "Unterminated string starting at")
		}
		c := p.src[p.pos]
		switch {
		case c == '"':
			sb.WriteString(p.src[chunk:p.pos])
			p.pos++
			return sb.String(), nil
		case c == '\\':
			sb.WriteString(p.src[chunk:p.pos])
			if err := p.escape(&sb); err != nil {
				return "", err
			}
			chunk = p.pos
		case c < 0x20:
			return "", p.errorf(p.pos, "Invalid control character at")
		default:
			p.pos++
		}
	}
}

func (p *parser) escape(sb *strings.Builder) error {
	esc := p.pos
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return p.errorf(esc, "Unterminated string starting at")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '"', '\\', '/':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, ok := p.hex4()
		if !ok {
			return p.errorf(esc, "Invalid \\uXXXX escape")
		}
		if utf16.IsSurrogate(r) && strings.HasPrefix(p.src[p.pos:], "\\u") {
			save := p.pos
			p.pos += 2
			if r2, ok := p.hex4(); ok {
				if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
					sb.WriteRune(dec)
					return nil
				}
			}
			p.pos = save
		}
		sb.WriteRune(r)
	default:
		return p.errorf(esc, "Invalid \\escape")
	}
	return nil
}

func (p *parser) hex4() (rune, bool) {
	if p.pos+4 > len(p.src) {
		return 0, false
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
	if err != nil {
		return 0, false
	}
	p.pos += 4
	return rune(n), true
}
