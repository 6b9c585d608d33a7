package jsonx

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// IndentWidth is the indentation unit of pretty output.
const IndentWidth = 4

// EncodeOptions controls serialization.
type EncodeOptions struct {
	// Indent > 0 produces multi-line output indented by that many spaces.
	Indent int
	// SortKeys orders object members by key.
	SortKeys bool
	// Tight drops the space after ',' and ':' in single-line output.
	Tight bool
}

// Encode serializes v according to opts.
func Encode(v *Value, opts EncodeOptions) string {
	if opts.SortKeys {
		v = SortKeys(v)
	}
	var sb strings.Builder
	e := encoder{sb: &sb, opts: opts}
	e.value(v, 0)
	return sb.String()
}

// Pretty serializes v with 4-space indentation.
func Pretty(v *Value) string {
	return Encode(v, EncodeOptions{Indent: IndentWidth})
}

// Compact serializes v on one line with ", " and ": " separators.
func Compact(v *Value) string {
	return Encode(v, EncodeOptions{})
}

// Minify serializes v on one line without any optional whitespace.
func Minify(v *Value) string {
	return Encode(v, EncodeOptions{Tight: true})
}

type encoder struct {
	sb   *strings.Builder
	opts EncodeOptions
}

func (e *encoder) newline(depth int) {
	e.sb.WriteByte('\n')
	e.sb.WriteString(strings.Repeat(" ", depth*e.opts.Indent))
}

func (e *encoder) itemSep(depth int) {
	e.sb.WriteByte(',')
	switch {
	case e.opts.Indent > 0:
		e.newline(depth)
	case !e.opts.Tight:
		e.sb.WriteByte(' ')
	}
}

func (e *encoder) value(v *Value, depth int) {
	if v == nil {
		e.sb.WriteString("null")
		return
	}
	switch v.Kind {
	case Null:
		e.sb.WriteString("null")
	case Bool:
		if v.Bool {
			e.sb.WriteString("true")
		} else {
			e.sb.WriteString("false")
		}
	case Number:
		e.sb.WriteString(v.Num)
	case String:
		writeQuoted(e.sb, v.Str)
	case Array:
		if len(v.Items) == 0 {
			e.sb.WriteString("[]")
			return
		}
		e.sb.WriteByte('[')
		if e.opts.Indent > 0 {
			e.newline(depth + 1)
		}
		for i, item := range v.Items {
			if i > 0 {
				e.itemSep(depth + 1)
			}
			e.value(item, depth+1)
		}
		if e.opts.Indent > 0 {
			e.newline(depth)
		}
		e.sb.WriteByte(']')
	case Object:
		if len(v.Members) == 0 {
			e.sb.WriteString("{}")
			return
		}
		e.sb.WriteByte('{')
		if e.opts.Indent > 0 {
			e.newline(depth + 1)
		}
		for i, m := range v.Members {
			if i > 0 {
				e.itemSep(depth + 1)
			}
			writeQuoted(e.sb, m.Key)
			if e.opts.Tight {
				e.sb.WriteByte(':')
			} else {
				e.sb.WriteString(": ")
			}
			e.value(m.Value, depth+1)
		}
		if e.opts.Indent > 0 {
			e.newline(depth)
		}
		e.sb.WriteByte('}')
	}
}

// Quote returns s as a JSON string literal. Non-ASCII text is kept as is.
func Quote(s string) string {
	var sb strings.Builder
	writeQuoted(&sb, s)
	return sb.String()
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\b':
			sb.WriteString(`\b`)
		case r == '\f':
			sb.WriteString(`\f`)
		case r < 0x20:
			fmt.Fprintf(sb, `\u%04x`, r)
		case r == utf8.RuneError && size == 1:
			sb.WriteString("\uFFFD")
		default:
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	sb.WriteByte('"')
}
