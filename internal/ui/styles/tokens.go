// Package styles holds the Lip Gloss colors and styles used to render the
// editor, and the theme presets users can choose from.
package styles

// ColorToken names a themeable color. Tokens are the keys users override
// under theme.colors in the config file.
type ColorToken string

const (
	// Text hierarchy
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextMuted   ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// JSON syntax
	TokenJSONKey    ColorToken = "json.key"
	TokenJSONString ColorToken = "json.string"
	TokenJSONNumber ColorToken = "json.number"
	TokenJSONBool   ColorToken = "json.bool"
	TokenJSONNull   ColorToken = "json.null"
	TokenJSONPunct  ColorToken = "json.punct"
	TokenJSONFold   ColorToken = "json.fold"

	// Buffer decorations
	TokenCursor            ColorToken = "cursor"
	TokenSelection         ColorToken = "selection"
	TokenSearchMatch       ColorToken = "search.match"
	TokenSearchCurrent     ColorToken = "search.current"
	TokenLineNumber        ColorToken = "line_number"
	TokenLineNumberCurrent ColorToken = "line_number.current"

	// Diff view
	TokenDiffInsert     ColorToken = "diff.insert"
	TokenDiffDelete     ColorToken = "diff.delete"
	TokenDiffReplace    ColorToken = "diff.replace"
	TokenDiffWordAdd    ColorToken = "diff.word.add"
	TokenDiffWordDelete ColorToken = "diff.word.delete"
	TokenDiffFiller     ColorToken = "diff.filler"

	// Status line mode badges
	TokenModeNormal ColorToken = "mode.normal"
	TokenModeInsert ColorToken = "mode.insert"
	TokenModeVisual ColorToken = "mode.visual"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextMuted,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenJSONKey,
		TokenJSONString,
		TokenJSONNumber,
		TokenJSONBool,
		TokenJSONNull,
		TokenJSONPunct,
		TokenJSONFold,

		TokenCursor,
		TokenSelection,
		TokenSearchMatch,
		TokenSearchCurrent,
		TokenLineNumber,
		TokenLineNumberCurrent,

		TokenDiffInsert,
		TokenDiffDelete,
		TokenDiffReplace,
		TokenDiffWordAdd,
		TokenDiffWordDelete,
		TokenDiffFiller,

		TokenModeNormal,
		TokenModeInsert,
		TokenModeVisual,

		TokenOverlayTitle,
		TokenOverlayBorder,
	}
}
