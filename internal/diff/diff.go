package diff

import (
	"strings"
	"unicode"

	"github.com/zjrosen/jvim/internal/jsonx"
	"github.com/zjrosen/jvim/internal/log"
)

const (
	// DefaultMinBlockCount is the number of brackets at one indentation level
	// needed before documents are compared block by block.
	DefaultMinBlockCount = 4
	// DefaultFullDiffLimit is the combined line count above which no
	// alignment is attempted and the whole document is one replaced hunk.
	DefaultFullDiffLimit = 50_000
)

// Options configures Diff.
type Options struct {
	// Normalize sorts object keys before comparing.
	Normalize bool
	// JSONL compares one record per line instead of one document.
	JSONL bool
	// MinBlockCount overrides DefaultMinBlockCount when > 0.
	MinBlockCount int
	// FullDiffLimit overrides DefaultFullDiffLimit when > 0.
	FullDiffLimit int
}

// DefaultOptions returns the options used by the diff command.
func DefaultOptions() Options {
	return Options{
		Normalize:     true,
		MinBlockCount: DefaultMinBlockCount,
		FullDiffLimit: DefaultFullDiffLimit,
	}
}

func (o *Options) applyDefaults() {
	if o.MinBlockCount <= 0 {
		o.MinBlockCount = DefaultMinBlockCount
	}
	if o.FullDiffLimit <= 0 {
		o.FullDiffLimit = DefaultFullDiffLimit
	}
}

// Diff aligns left and right. Inputs that are not valid JSON are compared as
// text and reported in Result.Warnings.
func Diff(left, right string, opts Options) *Result {
	opts.applyDefaults()
	b := &builder{}
	if opts.JSONL {
		b.records(canonicalRecords(left, opts.Normalize), canonicalRecords(right, opts.Normalize), opts)
	} else {
		l, lerr := canonical(left, opts.Normalize)
		r, rerr := canonical(right, opts.Normalize)
		if lerr != nil {
			b.res.Warnings = append(b.res.Warnings, parseWarning("left", lerr))
		}
		if rerr != nil {
			b.res.Warnings = append(b.res.Warnings, parseWarning("right", rerr))
		}
		b.document(strings.Split(l, "\n"), strings.Split(r, "\n"), opts)
	}
	res := b.finish()
	log.Debug(log.CatDiff, "diff computed",
		"rows", res.Len(), "hunks", len(res.Hunks), "jsonl", opts.JSONL, "normalize", opts.Normalize)
	return res
}

func parseWarning(side string, err error) Error {
	return NewError(ErrCategoryParse, side+" side is not valid JSON: "+err.Error()).
		WithHelpText("It was compared as plain text.")
}

func encodeOptions(normalize bool) jsonx.EncodeOptions {
	return jsonx.EncodeOptions{Indent: jsonx.IndentWidth, SortKeys: normalize}
}

// canonical re-serializes a document, or returns it unchanged with the parse
// error.
func canonical(content string, normalize bool) (string, error) {
	v, err := jsonx.Parse(content)
	if err != nil {
		return content, err
	}
	return jsonx.Encode(v, encodeOptions(normalize)), nil
}

// canonicalRecords re-serializes every non-blank line of a JSONL document.
// Malformed records are kept verbatim.
func canonicalRecords(content string, normalize bool) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if v, err := jsonx.Parse(trimmed); err == nil {
			out = append(out, jsonx.Encode(v, encodeOptions(normalize)))
		} else {
			out = append(out, trimmed)
		}
	}
	return out
}

// builder accumulates aligned rows.
type builder struct {
	res Result
}

func (b *builder) row(l, r string, t Tag) {
	b.res.Left = append(b.res.Left, l)
	b.res.Right = append(b.res.Right, r)
	b.res.Tags = append(b.res.Tags, t)
}

func (b *builder) equal(lines []string) {
	for _, l := range lines {
		b.row(l, l, Equal)
	}
}

func (b *builder) deleted(lines []string) {
	for _, l := range lines {
		b.row(l, "", Delete)
	}
}

func (b *builder) inserted(lines []string) {
	for _, r := range lines {
		b.row("", r, Insert)
	}
}

// replaced pairs rows up; the longer side's excess becomes deleted or
// inserted rows.
func (b *builder) replaced(left, right []string) {
	n := min(len(left), len(right))
	for k := range n {
		b.row(left[k], right[k], Replace)
	}
	b.deleted(left[n:])
	b.inserted(right[n:])
}

// lines runs a line-level alignment.
func (b *builder) lines(left, right []string) {
	for _, op := range align(left, right) {
		l, r := left[op.i1:op.i2], right[op.j1:op.j2]
		switch op.kind {
		case opEqual:
			b.equal(l)
		case opDelete:
			b.deleted(l)
		case opInsert:
			b.inserted(r)
		case opReplace:
			b.replaced(l, r)
		}
	}
}

// fullReplace emits every row as replaced without aligning.
func (b *builder) fullReplace(left, right []string) {
	n := max(len(left), len(right))
	for k := range n {
		var l, r string
		if k < len(left) {
			l = left[k]
		}
		if k < len(right) {
			r = right[k]
		}
		b.row(l, r, Replace)
	}
}

// document diffs two single documents, block by block when both share a
// dominant block indentation. FullDiffLimit only bounds the plain line
// alignment used when no block structure is found.
func (b *builder) document(left, right []string, opts Options) {
	li, lok := blockIndent(left, opts.MinBlockCount)
	ri, rok := blockIndent(right, opts.MinBlockCount)
	if lok && rok && li == ri {
		log.Debug(log.CatDiff, "block diff", "indent", li)
		b.blocks(left, right, segments(left, li), segments(right, li))
		return
	}
	if len(left)+len(right) > opts.FullDiffLimit {
		log.Debug(log.CatDiff, "full replace", "lines", len(left)+len(right))
		b.fullReplace(left, right)
		return
	}
	b.lines(left, right)
}

// blockIndent finds the indentation with the most lines opening a block.
func blockIndent(lines []string, minCount int) (int, bool) {
	counts := make(map[int]int)
	best, bestCount := 0, 0
	for _, line := range lines {
		stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
		if stripped == "" || (stripped[0] != '{' && stripped[0] != '[') {
			continue
		}
		indent := len(line) - len(stripped)
		counts[indent]++
		if c := counts[indent]; c > bestCount || (c == bestCount && indent < best) {
			best, bestCount = indent, c
		}
	}
	return best, bestCount >= minCount
}

// segment is the half-open row range [start, end).
type segment struct{ start, end int }

// segments splits lines into blocks opened and closed at indent, and the gaps
// between them.
func segments(lines []string, indent int) []segment {
	var segs []segment
	blockStart, gapStart := -1, 0
	for i, line := range lines {
		stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
		if stripped == "" || len(line)-len(stripped) != indent {
			continue
		}
		switch stripped[0] {
		case '{', '[':
			if blockStart < 0 {
				if gapStart < i {
					segs = append(segs, segment{gapStart, i})
				}
				blockStart = i
			}
		case '}', ']':
			if blockStart >= 0 {
				segs = append(segs, segment{blockStart, i + 1})
				gapStart = i + 1
				blockStart = -1
			}
		}
	}
	switch {
	case blockStart >= 0:
		segs = append(segs, segment{blockStart, len(lines)})
	case gapStart < len(lines):
		segs = append(segs, segment{gapStart, len(lines)})
	}
	return segs
}

// blocks aligns segments first and only diffs lines inside replaced segment
// pairs.
func (b *builder) blocks(left, right []string, lsegs, rsegs []segment) {
	key := func(src []string, s segment) string { return strings.Join(src[s.start:s.end], "\n") }
	lkeys := make([]string, len(lsegs))
	for i, s := range lsegs {
		lkeys[i] = key(left, s)
	}
	rkeys := make([]string, len(rsegs))
	for i, s := range rsegs {
		rkeys[i] = key(right, s)
	}

	for _, op := range align(lkeys, rkeys) {
		ls, rs := lsegs[op.i1:op.i2], rsegs[op.j1:op.j2]
		switch op.kind {
		case opEqual:
			for _, s := range ls {
				b.equal(left[s.start:s.end])
			}
		case opDelete:
			for _, s := range ls {
				b.deleted(left[s.start:s.end])
			}
		case opInsert:
			for _, s := range rs {
				b.inserted(right[s.start:s.end])
			}
		case opReplace:
			n := min(len(ls), len(rs))
			for k := range n {
				b.lines(left[ls[k].start:ls[k].end], right[rs[k].start:rs[k].end])
			}
			for _, s := range ls[n:] {
				b.deleted(left[s.start:s.end])
			}
			for _, s := range rs[n:] {
				b.inserted(right[s.start:s.end])
			}
		}
	}
}

// records aligns JSONL records and diffs lines inside paired records that
// differ. Records are separated by a blank row tagged like the record that
// follows it.
func (b *builder) records(left, right []string, opts Options) {
	first := true
	emit := func(fill func(sub *builder)) {
		sub := &builder{}
		fill(sub)
		if len(sub.res.Tags) == 0 {
			return
		}
		if !first {
			b.row("", "", sub.res.Tags[0])
		}
		first = false
		b.res.Left = append(b.res.Left, sub.res.Left...)
		b.res.Right = append(b.res.Right, sub.res.Right...)
		b.res.Tags = append(b.res.Tags, sub.res.Tags...)
	}
	split := func(rec string) []string { return strings.Split(rec, "\n") }

	for _, op := range align(left, right) {
		l, r := left[op.i1:op.i2], right[op.j1:op.j2]
		switch op.kind {
		case opEqual:
			for _, rec := range l {
				emit(func(s *builder) { s.equal(split(rec)) })
			}
		case opDelete:
			for _, rec := range l {
				emit(func(s *builder) { s.deleted(split(rec)) })
			}
		case opInsert:
			for _, rec := range r {
				emit(func(s *builder) { s.inserted(split(rec)) })
			}
		case opReplace:
			n := min(len(l), len(r))
			for k := range n {
				emit(func(s *builder) {
					ll, rl := split(l[k]), split(r[k])
					if len(ll)+len(rl) > opts.FullDiffLimit {
						s.fullReplace(ll, rl)
						return
					}
					s.lines(ll, rl)
				})
			}
			for _, rec := range l[n:] {
				emit(func(s *builder) { s.deleted(split(rec)) })
			}
			for _, rec := range r[n:] {
				emit(func(s *builder) { s.inserted(split(rec)) })
			}
		}
	}
}

// finish computes hunks as maximal runs of non-equal rows.
func (b *builder) finish() *Result {
	res := &b.res
	start := -1
	for i, t := range res.Tags {
		switch {
		case t != Equal && start < 0:
			start = i
		case t == Equal && start >= 0:
			res.Hunks = append(res.Hunks, Hunk{Start: start, Length: i - start})
			start = -1
		}
	}
	if start >= 0 {
		res.Hunks = append(res.Hunks, Hunk{Start: start, Length: len(res.Tags) - start})
	}
	return res
}
