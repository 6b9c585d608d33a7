package jsonpath

import (
	"strings"

	"github.com/zjrosen/jvim/internal/jsonx"
	"github.com/zjrosen/jvim/internal/regexcache"
)

// Op is a leaf filter operator.
type Op string

const (
	OpNone  Op = ""
	OpEq    Op = "="
	OpNe    Op = "!="
	OpGt    Op = ">"
	OpLt    Op = "<"
	OpGe    Op = ">="
	OpLe    Op = "<="
	OpMatch Op = "~"
)

// Longer operators come first so "!=" is never read as "=".
var scanOrder = []Op{OpNe, OpGe, OpLe, OpMatch, OpEq, OpGt, OpLt}

// Filter is an optional comparison applied to each matched leaf.
type Filter struct {
	Op    Op
	Value *jsonx.Value
	// Empty is set when the operator had no operand, e.g. "$.a=".
	Empty bool
}

// Active reports whether the filter has an operator.
func (f Filter) Active() bool { return f.Op != OpNone }

// SplitFilter separates a trailing leaf filter from a path expression.
// Operators inside [...] are part of the path.
func SplitFilter(pattern string) (string, Filter) {
	for _, op := range scanOrder {
		depth := 0
		for i := 0; i < len(pattern); i++ {
			switch pattern[i] {
			case '[':
				depth++
				continue
			case ']':
				depth--
				continue
			}
			if depth == 0 && strings.HasPrefix(pattern[i:], string(op)) {
				value, empty := parseOperand(pattern[i+len(op):])
				return pattern[:i], Filter{Op: op, Value: value, Empty: empty}
			}
		}
	}
	return pattern, Filter{}
}

// parseOperand reads a filter operand as JSON, then as a 'quoted' string, then
// as a bare string. An empty operand is null.
func parseOperand(s string) (*jsonx.Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return jsonx.NullValue(), true
	}
	if v, err := jsonx.Parse(s); err == nil {
		return v, false
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return jsonx.StringValue(s[1 : len(s)-1]), false
	}
	return jsonx.StringValue(s), false
}

// Match reports whether actual satisfies the filter. An inactive filter
// matches everything; comparisons between unrelated kinds are false.
func (f Filter) Match(actual *jsonx.Value) bool {
	if actual == nil {
		actual = jsonx.NullValue()
	}
	switch f.Op {
	case OpNone:
		return true
	case OpEq:
		return actual.Equal(f.Value)
	case OpNe:
		return !actual.Equal(f.Value)
	case OpGt, OpLt, OpGe, OpLe:
		cmp, ok := actual.Compare(f.Value)
		if !ok {
			return false
		}
		switch f.Op {
		case OpGt:
			return cmp > 0
		case OpLt:
			return cmp < 0
		case OpGe:
			return cmp >= 0
		default:
			return cmp <= 0
		}
	case OpMatch:
		re, err := regexcache.Compile(f.Value.Text())
		if err != nil {
			return false
		}
		return re.MatchString(actual.Text())
	}
	return false
}

// Query is a compiled path together with its leaf filter.
type Query struct {
	Path   *Path
	Filter Filter
}

// ParseQuery splits off the filter and compiles the remaining path.
func ParseQuery(pattern string) (*Query, error) {
	expr, f := SplitFilter(pattern)
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Query{Path: p, Filter: f}, nil
}

// Find returns the locations whose values pass the filter.
func (q *Query) Find(root *jsonx.Value) []Location {
	locs := q.Path.Find(root)
	if !q.Filter.Active() {
		return locs
	}
	out := locs[:0]
	for _, loc := range locs {
		v, _ := ValueAt(root, loc)
		if q.Filter.Match(v) {
			out = append(out, loc)
		}
	}
	return out
}

// IsPathPattern reports whether a search or substitute pattern should be
// treated as a JSONPath query.
func IsPathPattern(pattern string) bool {
	return strings.HasPrefix(pattern, "$.") || strings.HasPrefix(pattern, "$[")
}
