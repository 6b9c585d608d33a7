// Package jsonpath implements the restricted JSONPath dialect used by search
// and substitute: $, .key, .*, [n], [*], ['key'], ..key and ..*.
//
// Find returns locations (key/index sequences) rather than values so callers
// can map every match back onto the source text.
package jsonpath

import (
	"strconv"
	"strings"

	"github.com/zjrosen/jvim/internal/jsonx"
)

// Error is returned for malformed path expressions.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Step is one element of a Location: an object key or an array index.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Step) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return "." + s.Key
}

// KeyStep returns an object-key step.
func KeyStep(key string) Step { return Step{Key: key} }

// IndexStep returns an array-index step.
func IndexStep(i int) Step { return Step{Index: i, IsIndex: true} }

// Location is the path from the root to a matched value.
type Location []Step

func (l Location) String() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, s := range l {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Last returns the final step. ok is false for the root location.
func (l Location) Last() (Step, bool) {
	if len(l) == 0 {
		return Step{}, false
	}
	return l[len(l)-1], true
}

type segKind int

const (
	segChild segKind = iota
	segIndex
	segWildcard
	segDescend
)

type segment struct {
	kind  segKind
	key   string // segChild, segDescend ("*" matches any key)
	index int    // segIndex
}

// Path is a compiled path expression.
type Path struct {
	expr string
	segs []segment
}

func (p *Path) String() string { return p.expr }

// Compile parses a path expression.
func Compile(expr string) (*Path, error) {
	if !strings.HasPrefix(expr, "$") {
		return nil, &Error{Msg: "JSONPath must start with $"}
	}
	p := &Path{expr: expr}
	rest := expr[1:]
	for rest != "" {
		var seg segment
		var err error
		switch {
		case strings.HasPrefix(rest, ".."):
			seg, rest, err = descendSegment(rest[2:])
		case rest[0] == '.':
			seg, rest = dotSegment(rest[1:])
		case rest[0] == '[':
			seg, rest, err = bracketSegment(rest)
		default:
			return nil, &Error{Msg: "unexpected character " + strconv.Quote(rest[:1])}
		}
		if err != nil {
			return nil, err
		}
		p.segs = append(p.segs, seg)
	}
	return p, nil
}

func nameEnd(s string) int {
	if i := strings.IndexAny(s, ".[]"); i >= 0 {
		return i
	}
	return len(s)
}

func dotSegment(s string) (segment, string) {
	end := nameEnd(s)
	key := s[:end]
	if key == "*" {
		return segment{kind: segWildcard}, s[end:]
	}
	return segment{kind: segChild, key: key}, s[end:]
}

func descendSegment(s string) (segment, string, error) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return segment{}, "", &Error{Msg: "Unclosed bracket"}
		}
		return segment{kind: segDescend, key: unquoteKey(s[1:end])}, s[end+1:], nil
	}
	end := nameEnd(s)
	if end == 0 {
		return segment{}, "", &Error{Msg: "missing key after .."}
	}
	return segment{kind: segDescend, key: s[:end]}, s[end:], nil
}

func bracketSegment(s string) (segment, string, error) {
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return segment{}, "", &Error{Msg: "Unclosed bracket"}
	}
	inner := s[1:end]
	rest := s[end+1:]
	if inner == "*" {
		return segment{kind: segWildcard}, rest, nil
	}
	if isInteger(inner) {
		n, err := strconv.Atoi(inner)
		if err != nil {
			return segment{}, "", &Error{Msg: "invalid index " + inner}
		}
		return segment{kind: segIndex, index: n}, rest, nil
	}
	return segment{kind: segChild, key: unquoteKey(inner)}, rest, nil
}

func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func unquoteKey(s string) string {
	return strings.Trim(s, `'"`)
}

// Find resolves the path against root and returns every matching location in
// document order. Negative indexes are reported as their non-negative form.
func (p *Path) Find(root *jsonx.Value) []Location {
	var out []Location
	p.walk(root, 0, nil, &out)
	return out
}

func extend(loc Location, s Step) Location {
	next := make(Location, len(loc)+1)
	copy(next, loc)
	next[len(loc)] = s
	return next
}

func (p *Path) walk(v *jsonx.Value, i int, loc Location, out *[]Location) {
	if i == len(p.segs) {
		*out = append(*out, loc)
		return
	}
	seg := p.segs[i]
	switch seg.kind {
	case segChild:
		if m, ok := v.Member(seg.key); ok {
			p.walk(m.Value, i+1, extend(loc, KeyStep(m.Key)), out)
		}
	case segIndex:
		if v.Kind != jsonx.Array {
			return
		}
		idx := seg.index
		if idx < 0 {
			idx += len(v.Items)
		}
		if idx >= 0 && idx < len(v.Items) {
			p.walk(v.Items[idx], i+1, extend(loc, IndexStep(idx)), out)
		}
	case segWildcard:
		p.eachChild(v, loc, func(child *jsonx.Value, childLoc Location) {
			p.walk(child, i+1, childLoc, out)
		})
	case segDescend:
		p.descend(v, i, loc, out)
	}
}

func (p *Path) eachChild(v *jsonx.Value, loc Location, fn func(*jsonx.Value, Location)) {
	switch v.Kind {
	case jsonx.Object:
		for _, m := range v.Members {
			fn(m.Value, extend(loc, KeyStep(m.Key)))
		}
	case jsonx.Array:
		for idx, item := range v.Items {
			fn(item, extend(loc, IndexStep(idx)))
		}
	}
}

// descend visits every object member below v whose key matches the segment,
// continuing the path from each match and recursing into all children.
func (p *Path) descend(v *jsonx.Value, i int, loc Location, out *[]Location) {
	key := p.segs[i].key
	switch v.Kind {
	case jsonx.Object:
		for _, m := range v.Members {
			childLoc := extend(loc, KeyStep(m.Key))
			if key == "*" || m.Key == key {
				p.walk(m.Value, i+1, childLoc, out)
			}
			p.descend(m.Value, i, childLoc, out)
		}
	case jsonx.Array:
		for idx, item := range v.Items {
			p.descend(item, i, extend(loc, IndexStep(idx)), out)
		}
	}
}

// ValueAt returns the value at loc.
func ValueAt(root *jsonx.Value, loc Location) (*jsonx.Value, bool) {
	cur := root
	for _, s := range loc {
		var ok bool
		if s.IsIndex {
			cur, ok = cur.Index(s.Index)
		} else {
			cur, ok = cur.Get(s.Key)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// MemberAt returns the object member addressed by loc, whose last step must
// be a key.
func MemberAt(root *jsonx.Value, loc Location) (*jsonx.Member, bool) {
	last, ok := loc.Last()
	if !ok || last.IsIndex {
		return nil, false
	}
	parent, ok := ValueAt(root, loc[:len(loc)-1])
	if !ok {
		return nil, false
	}
	return parent.Member(last.Key)
}
