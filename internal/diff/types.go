// Package diff computes a side-by-side, line-aligned diff of two JSON or JSONL
// documents.
//
// Both inputs are re-serialized first, so whitespace and (optionally) key order
// never show up as changes. Documents made of many similar blocks are compared
// block by block before descending to lines, which keeps large homogeneous
// files fast.
package diff

// Tag classifies one aligned row.
type Tag int

const (
	// Equal rows hold the same line on both sides.
	Equal Tag = iota
	// Insert rows exist only on the right; the left side is a filler.
	Insert
	// Delete rows exist only on the left; the right side is a filler.
	Delete
	// Replace rows hold different lines on both sides.
	Replace
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case Equal:
		return "EQUAL"
	case Insert:
		return "INSERT"
	case Delete:
		return "DELETE"
	case Replace:
		return "REPLACE"
	default:
		return "UNKNOWN"
	}
}

// Hunk is a maximal run of non-equal rows.
type Hunk struct {
	Start  int
	Length int
}

// End returns the row after the hunk.
func (h Hunk) End() int { return h.Start + h.Length }

// Result is an aligned diff. Left, Right and Tags always have the same length;
// Tags[i] applies to both sides of row i.
type Result struct {
	Left  []string
	Right []string
	Tags  []Tag
	Hunks []Hunk

	// Warnings notes inputs that were not valid JSON and were compared as
	// plain text.
	Warnings []Error
}

// Len returns the number of aligned rows.
func (r *Result) Len() int { return len(r.Tags) }

// Identical reports whether the documents have no differences.
func (r *Result) Identical() bool { return len(r.Hunks) == 0 }

// Stats summarizes a result.
type Stats struct {
	Hunks    int
	Inserted int
	Deleted  int
	Replaced int
}

// Stats counts hunks and rows by tag.
func (r *Result) Stats() Stats {
	s := Stats{Hunks: len(r.Hunks)}
	for _, t := range r.Tags {
		switch t {
		case Insert:
			s.Inserted++
		case Delete:
			s.Deleted++
		case Replace:
			s.Replaced++
		}
	}
	return s
}

// ErrorCategory represents the category of a diff error.
type ErrorCategory int

const (
	// ErrCategoryParse indicates an input that is not valid JSON.
	ErrCategoryParse ErrorCategory = iota
	// ErrCategoryIO indicates an input that could not be read.
	ErrCategoryIO
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryParse:
		return "Parse Error"
	case ErrCategoryIO:
		return "I/O Error"
	default:
		return "Unknown Error"
	}
}

// Error is a diff failure or warning with guidance for the user.
type Error struct {
	Category ErrorCategory // Type of error
	Message  string        // Human-readable error message
	HelpText string        // Additional guidance for the user
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// NewError creates an Error with the given category and message.
func NewError(category ErrorCategory, message string) Error {
	return Error{Category: category, Message: message}
}

// WithHelpText sets additional help text for the error.
func (e Error) WithHelpText(help string) Error {
	e.HelpText = help
	return e
}
