// Package overlay draws boxes (help, log pane, toasts) over a rendered editor
// frame without clearing it.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is the anchor of the foreground box.
type Position int

const (
	// Center places the box in the middle of the frame.
	Center Position = iota
	// Top centers the box horizontally at the top edge.
	Top
	// Bottom centers the box horizontally at the bottom edge.
	Bottom
	// BottomRight anchors the box to the bottom right corner.
	BottomRight
)

// Config describes the frame and where the box goes in it.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadX is the distance from the right edge for BottomRight.
	PadX int
	// PadY is the distance from the top or bottom edge.
	PadY int
}

// Place draws fg over bg. Both may carry ANSI styling. The result has exactly
// cfg.Height lines when cfg.Height is positive.
func Place(cfg Config, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}
	if cfg.Height > 0 && len(bgLines) > cfg.Height {
		bgLines = bgLines[:cfg.Height]
	}
	if fg == "" {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, w, h int) (x, y int) {
	switch cfg.Position {
	case Top:
		x, y = (cfg.Width-w)/2, cfg.PadY
	case Bottom:
		x, y = (cfg.Width-w)/2, cfg.Height-h-cfg.PadY
	case BottomRight:
		x, y = cfg.Width-w-cfg.PadX, cfg.Height-h-cfg.PadY
	default:
		x, y = (cfg.Width-w)/2, (cfg.Height-h)/2
	}
	return max(0, x), max(0, y)
}
