package diff

import (
	"unicode"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
	opReplace
)

// opcode describes how a[i1:i2] turns into b[j1:j2].
type opcode struct {
	kind   opKind
	i1, i2 int
	j1, j2 int
}

// encode maps every distinct item of a and b to its own rune so go-diff can
// align the sequences. It fails when there are more distinct items than
// usable code points.
func encode(a, b []string) ([]rune, []rune, bool) {
	ids := make(map[string]rune)
	next := rune(1)
	enc := func(items []string) ([]rune, bool) {
		out := make([]rune, len(items))
		for i, s := range items {
			r, ok := ids[s]
			if !ok {
				if next > unicode.MaxRune {
					return nil, false
				}
				r = next
				ids[s] = r
				next++
				if next == 0xD800 {
					next = 0xE000
				}
			}
			out[i] = r
		}
		return out, true
	}
	ra, ok := enc(a)
	if !ok {
		return nil, nil, false
	}
	rb, ok := enc(b)
	return ra, rb, ok
}

// align returns the edit script between two sequences as a list of opcodes.
// Adjacent deletes and inserts are merged into a single replace.
func align(a, b []string) []opcode {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	ra, rb, ok := encode(a, b)
	if !ok {
		return []opcode{change(0, len(a), 0, len(b))}
	}
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(ra, rb, false)

	var ops []opcode
	i, j := 0, 0
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			ops = append(ops, opcode{kind: opEqual, i1: i, i2: i + n, j1: j, j2: j + n})
			i += n
			j += n
		case diffmatchpatch.DiffDelete:
			ops = appendChange(ops, i, i+n, j, j)
			i += n
		case diffmatchpatch.DiffInsert:
			ops = appendChange(ops, i, i, j, j+n)
			j += n
		}
	}
	return ops
}

func change(i1, i2, j1, j2 int) opcode {
	op := opcode{kind: opReplace, i1: i1, i2: i2, j1: j1, j2: j2}
	switch {
	case j1 == j2:
		op.kind = opDelete
	case i1 == i2:
		op.kind = opInsert
	}
	return op
}

func appendChange(ops []opcode, i1, i2, j1, j2 int) []opcode {
	if n := len(ops); n > 0 && ops[n-1].kind != opEqual {
		last := ops[n-1]
		ops[n-1] = change(last.i1, i2, last.j1, j2)
		return ops
	}
	return append(ops, change(i1, i2, j1, j2))
}
