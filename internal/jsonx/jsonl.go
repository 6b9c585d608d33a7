package jsonx

import (
	"fmt"
	"strings"
)

// RecordError is a syntax error inside one record of a JSONL document.
// Record is 1-based.
type RecordError struct {
	Record int
	Err    *SyntaxError
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Record, e.Err.Msg)
}

func (e *RecordError) Unwrap() error { return e.Err }

// IsBlank reports whether a line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Format re-serializes a JSON document with 4-space indentation.
func Format(content string) (string, error) {
	v, err := Parse(content)
	if err != nil {
		return "", err
	}
	return Pretty(v), nil
}

// JSONLToPretty converts one-record-per-line JSONL into pretty-printed
// records separated by a blank line. Malformed records are kept verbatim.
func JSONLToPretty(content string) string {
	var blocks []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if v, err := Parse(trimmed); err == nil {
			blocks = append(blocks, Pretty(v))
		} else {
			blocks = append(blocks, trimmed)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// SplitBlocks splits pretty JSONL content into records separated by blank lines.
func SplitBlocks(content string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(content, "\n") {
		if !IsBlank(line) {
			current = append(current, line)
			continue
		}
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

// BlockStarts returns the first line index of every record, in order.
func BlockStarts(lines []string) []int {
	var starts []int
	inBlock := false
	for i, line := range lines {
		if IsBlank(line) {
			inBlock = false
			continue
		}
		if !inBlock {
			starts = append(starts, i)
			inBlock = true
		}
	}
	return starts
}

// LineRecords maps every line to the 1-based record number it starts, or 0
// for continuation and separator lines.
func LineRecords(lines []string) []int {
	out := make([]int, len(lines))
	for n, start := range BlockStarts(lines) {
		out[start] = n + 1
	}
	return out
}

// PrettyToJSONL converts pretty records back to one compact record per line.
// Malformed records are collapsed onto a single line.
func PrettyToJSONL(content string) string {
	blocks := SplitBlocks(content)
	lines := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if v, err := Parse(block); err == nil {
			lines = append(lines, Compact(v))
		} else {
			lines = append(lines, strings.Join(strings.Fields(block), " "))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatJSONL pretty-prints every record of pretty JSONL content. It fails on
// the first malformed record.
func FormatJSONL(content string) (string, error) {
	blocks := SplitBlocks(content)
	out := make([]string, 0, len(blocks))
	for i, block := range blocks {
		v, err := Parse(block)
		if err != nil {
			return "", &RecordError{Record: i + 1, Err: err.(*SyntaxError)}
		}
		out = append(out, Pretty(v))
	}
	return strings.Join(out, "\n\n"), nil
}

// ValidateJSONL checks every record of pretty JSONL content.
func ValidateJSONL(content string) error {
	for i, block := range SplitBlocks(content) {
		if _, err := Parse(block); err != nil {
			return &RecordError{Record: i + 1, Err: err.(*SyntaxError)}
		}
	}
	return nil
}
