package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"} // hints, fillers, help footers

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#2E8B57", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}

	// JSON syntax
	JSONKeyColor    = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	JSONStringColor = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"}
	JSONNumberColor = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"}
	JSONBoolColor   = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
	JSONNullColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"}
	JSONPunctColor  = lipgloss.AdaptiveColor{Light: "#7C7F93", Dark: "#9399B2"}
	JSONFoldColor   = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"}

	// Buffer decorations (backgrounds)
	CursorColor            = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#F5E0DC"}
	SelectionColor         = lipgloss.AdaptiveColor{Light: "#CCD0DA", Dark: "#45475A"}
	SearchMatchColor       = lipgloss.AdaptiveColor{Light: "#F9E2AF", Dark: "#5C4D1E"}
	SearchCurrentColor     = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#B7791F"}
	LineNumberColor        = lipgloss.AdaptiveColor{Light: "#ACB0BE", Dark: "#585B70"}
	LineNumberCurrentColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}

	// Diff backgrounds
	DiffInsertColor     = lipgloss.AdaptiveColor{Light: "#DDF5E3", Dark: "#1E3A26"}
	DiffDeleteColor     = lipgloss.AdaptiveColor{Light: "#FBE1E4", Dark: "#3F1D22"}
	DiffReplaceColor    = lipgloss.AdaptiveColor{Light: "#FBF3D9", Dark: "#2E2A1A"}
	DiffWordAddColor    = lipgloss.AdaptiveColor{Light: "#A6E3B4", Dark: "#2F6B3A"}
	DiffWordDeleteColor = lipgloss.AdaptiveColor{Light: "#F2A7B1", Dark: "#7A2E38"}
	DiffFillerColor     = lipgloss.AdaptiveColor{Light: "#E6E9EF", Dark: "#313244"}

	// Mode badges
	ModeNormalColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	ModeInsertColor = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#73F59F"}
	ModeVisualColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#8C8C8C"}

	TextStyle  lipgloss.Style
	MutedStyle lipgloss.Style

	JSONKeyStyle    lipgloss.Style
	JSONStringStyle lipgloss.Style
	JSONNumberStyle lipgloss.Style
	JSONBoolStyle   lipgloss.Style
	JSONNullStyle   lipgloss.Style
	JSONPunctStyle  lipgloss.Style
	FoldStyle       lipgloss.Style

	CursorStyle            lipgloss.Style
	SelectionStyle         lipgloss.Style
	SearchMatchStyle       lipgloss.Style
	SearchCurrentStyle     lipgloss.Style
	LineNumberStyle        lipgloss.Style
	LineNumberCurrentStyle lipgloss.Style

	DiffInsertStyle     lipgloss.Style
	DiffDeleteStyle     lipgloss.Style
	DiffReplaceStyle    lipgloss.Style
	DiffWordAddStyle    lipgloss.Style
	DiffWordDeleteStyle lipgloss.Style
	DiffFillerStyle     lipgloss.Style

	ModeNormalStyle lipgloss.Style
	ModeInsertStyle lipgloss.Style
	ModeVisualStyle lipgloss.Style

	StatusBarStyle lipgloss.Style
	ErrorStyle     lipgloss.Style
	WarningStyle   lipgloss.Style
	SuccessStyle   lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles recreates every Style from the current colors. Styles capture
// colors when built, so this runs after each theme change.
func rebuildStyles() {
	TextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	JSONKeyStyle = lipgloss.NewStyle().Foreground(JSONKeyColor)
	JSONStringStyle = lipgloss.NewStyle().Foreground(JSONStringColor)
	JSONNumberStyle = lipgloss.NewStyle().Foreground(JSONNumberColor)
	JSONBoolStyle = lipgloss.NewStyle().Foreground(JSONBoolColor)
	JSONNullStyle = lipgloss.NewStyle().Foreground(JSONNullColor).Italic(true)
	JSONPunctStyle = lipgloss.NewStyle().Foreground(JSONPunctColor)
	FoldStyle = lipgloss.NewStyle().Foreground(JSONFoldColor).Italic(true)

	CursorStyle = lipgloss.NewStyle().Reverse(true)
	SelectionStyle = lipgloss.NewStyle().Background(SelectionColor)
	SearchMatchStyle = lipgloss.NewStyle().Background(SearchMatchColor)
	SearchCurrentStyle = lipgloss.NewStyle().Background(SearchCurrentColor).Bold(true)
	LineNumberStyle = lipgloss.NewStyle().Foreground(LineNumberColor)
	LineNumberCurrentStyle = lipgloss.NewStyle().Foreground(LineNumberCurrentColor).Bold(true)

	DiffInsertStyle = lipgloss.NewStyle().Background(DiffInsertColor)
	DiffDeleteStyle = lipgloss.NewStyle().Background(DiffDeleteColor)
	DiffReplaceStyle = lipgloss.NewStyle().Background(DiffReplaceColor)
	DiffWordAddStyle = lipgloss.NewStyle().Background(DiffWordAddColor).Bold(true)
	DiffWordDeleteStyle = lipgloss.NewStyle().Background(DiffWordDeleteColor).Bold(true)
	DiffFillerStyle = lipgloss.NewStyle().Foreground(DiffFillerColor)

	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#1E1E2E"))
	ModeNormalStyle = badge.Background(ModeNormalColor)
	ModeInsertStyle = badge.Background(ModeInsertColor)
	ModeVisualStyle = badge.Background(ModeVisualColor)

	StatusBarStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Padding(0, 1)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
}
