package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/jvim/internal/ui/styles"
)

// synClass is the syntax colour of one grapheme.
type synClass uint8

const (
	synText synClass = iota
	synBracket
	synPunct
	synKey
	synString
	synNumber
	synBool
	synNull
	synDim
)

func isNumberChar(g string) bool {
	if len(g) != 1 {
		return false
	}
	switch c := g[0]; {
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E':
		return true
	}
	return false
}

// lex classifies each grapheme of a line. It works line by line and never
// fails: strings before the first unquoted colon are keys, other strings are
// values.
func lex(gs []string) []synClass {
	out := make([]synClass, len(gs))
	inStr := make([]bool, len(gs))
	colon := -1
	open, escaped := false, false
	for i, g := range gs {
		switch {
		case open && escaped:
			inStr[i] = true
			escaped = false
		case open && g == `\`:
			inStr[i] = true
			escaped = true
		case g == `"`:
			open = !open
			inStr[i] = true
		case open:
			inStr[i] = true
		case g == ":" && colon < 0:
			colon = i
		}
	}

	for i, g := range gs {
		switch {
		case inStr[i]:
			if i < colon {
				out[i] = synKey
			} else {
				out[i] = synString
			}
		case g == "{" || g == "}" || g == "[" || g == "]":
			out[i] = synBracket
		case g == ":" || g == ",":
			out[i] = synPunct
		case isNumberChar(g):
			out[i] = synNumber
		}
	}

	for _, kw := range []struct {
		word  string
		class synClass
	}{{"true", synBool}, {"false", synBool}, {"null", synNull}} {
		markKeyword(gs, inStr, out, kw.word, kw.class)
	}
	return out
}

func markKeyword(gs []string, inStr []bool, out []synClass, word string, class synClass) {
	n := len(word)
	for i := 0; i+n <= len(gs); i++ {
		if inStr[i] {
			continue
		}
		match := true
		for j := range n {
			if gs[i+j] != word[j:j+1] {
				match = false
				break
			}
		}
		if match {
			for j := range n {
				out[i+j] = class
			}
			i += n - 1
		}
	}
}

func synStyle(c synClass) lipgloss.Style {
	switch c {
	case synBracket:
		return styles.JSONPunctStyle.Bold(true)
	case synPunct:
		return styles.JSONPunctStyle
	case synKey:
		return styles.JSONKeyStyle
	case synString:
		return styles.JSONStringStyle
	case synNumber:
		return styles.JSONNumberStyle
	case synBool:
		return styles.JSONBoolStyle
	case synNull:
		return styles.JSONNullStyle
	case synDim:
		return styles.FoldStyle
	default:
		return styles.TextStyle
	}
}
