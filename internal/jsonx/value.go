// Package jsonx implements an order-preserving JSON value tree with a parser
// that records the source span of every value and object key.
//
// The tree keeps number literals verbatim so that reformatting a document never
// changes how its numbers are written.
package jsonx

import (
	"sort"
	"strconv"
)

// Kind is the tag of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Pos is a source position: zero-based line and zero-based byte column.
type Pos struct {
	Line int
	Col  int
}

// Before reports whether p sorts strictly before o.
func (p Pos) Before(o Pos) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Col < o.Col
}

// Value is a node of a parsed JSON document.
// Only the fields matching Kind are meaningful.
type Value struct {
	Kind    Kind
	Bool    bool
	Num     string // number literal as written
	Str     string
	Items   []*Value
	Members []*Member

	// Start and End delimit the value in its source text (End is exclusive).
	// Both are zero for values that were not produced by Parse.
	Start Pos
	End   Pos
}

// Member is a single key/value pair of an object.
type Member struct {
	Key      string
	KeyStart Pos
	KeyEnd   Pos
	Value    *Value
}

// NullValue returns a new null.
func NullValue() *Value { return &Value{Kind: Null} }

// BoolValue returns a new boolean.
func BoolValue(b bool) *Value { return &Value{Kind: Bool, Bool: b} }

// NumberValue returns a number holding the given literal.
func NumberValue(lit string) *Value { return &Value{Kind: Number, Num: lit} }

// StringValue returns a new string.
func StringValue(s string) *Value { return &Value{Kind: String, Str: s} }

// ArrayValue returns an array of the given items.
func ArrayValue(items ...*Value) *Value { return &Value{Kind: Array, Items: items} }

// ObjectValue returns an object of the given members.
func ObjectValue(members ...*Member) *Value { return &Value{Kind: Object, Members: members} }

// IsContainer reports whether v is an array or an object.
func (v *Value) IsContainer() bool {
	return v != nil && (v.Kind == Array || v.Kind == Object)
}

// Len returns the number of items or members, or zero for scalars.
func (v *Value) Len() int {
	switch v.Kind {
	case Array:
		return len(v.Items)
	case Object:
		return len(v.Members)
	}
	return 0
}

// Member returns the member with the given key.
func (v *Value) Member(key string) (*Member, bool) {
	if v == nil || v.Kind != Object {
		return nil, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m, true
		}
	}
	return nil, false
}

// Get returns the value stored under key.
func (v *Value) Get(key string) (*Value, bool) {
	m, ok := v.Member(key)
	if !ok {
		return nil, false
	}
	return m.Value, true
}

// Index returns the i-th array item.
func (v *Value) Index(i int) (*Value, bool) {
	if v == nil || v.Kind != Array || i < 0 || i >= len(v.Items) {
		return nil, false
	}
	return v.Items[i], true
}

// Float returns the numeric value of a number.
func (v *Value) Float() (float64, bool) {
	if v == nil || v.Kind != Number {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.Num, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Text returns the string form used for regex matching: the raw text of a
// string and the compact JSON encoding of anything else.
func (v *Value) Text() string {
	if v == nil {
		return "null"
	}
	if v.Kind == String {
		return v.Str
	}
	return Compact(v)
}

// Equal reports deep equality. Numbers compare by numeric value and object
// member order is ignored.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Bool:
		return v.Bool == o.Bool
	case Number:
		a, okA := v.Float()
		b, okB := o.Float()
		if okA && okB {
			return a == b
		}
		return v.Num == o.Num
	case String:
		return v.Str == o.Str
	case Array:
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.Members) != len(o.Members) {
			return false
		}
		for _, m := range v.Members {
			other, ok := o.Get(m.Key)
			if !ok || !m.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders two numbers or two strings. ok is false when the values are
// not mutually comparable.
func (v *Value) Compare(o *Value) (cmp int, ok bool) {
	if v == nil || o == nil {
		return 0, false
	}
	switch {
	case v.Kind == Number && o.Kind == Number:
		a, okA := v.Float()
		b, okB := o.Float()
		if !okA || !okB {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	case v.Kind == String && o.Kind == String:
		switch {
		case v.Str < o.Str:
			return -1, true
		case v.Str > o.Str:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// SortKeys returns a deep copy of v whose object members are sorted by key.
func SortKeys(v *Value) *Value {
	if v == nil {
		return nil
	}
	out := *v
	switch v.Kind {
	case Array:
		out.Items = make([]*Value, len(v.Items))
		for i, item := range v.Items {
			out.Items[i] = SortKeys(item)
		}
	case Object:
		out.Members = make([]*Member, len(v.Members))
		for i, m := range v.Members {
			cp := *m
			cp.Value = SortKeys(m.Value)
			out.Members[i] = &cp
		}
		sort.SliceStable(out.Members, func(i, j int) bool {
			return out.Members[i].Key < out.Members[j].Key
		})
	}
	return &out
}
