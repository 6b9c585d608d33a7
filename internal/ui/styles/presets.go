package styles

// Preset is a complete color theme.
type Preset struct {
	Name        string
	Description string
	// Dark marks presets designed for dark backgrounds.
	Dark   bool
	Colors map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"light":            LightPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the jvim color scheme for dark terminals.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default jvim theme",
	Dark:        true,
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#CCCCCC",
		TokenTextMuted:   "#696969",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		// JSON syntax (Catppuccin Mocha inspired)
		TokenJSONKey:    "#89B4FA",
		TokenJSONString: "#A6E3A1",
		TokenJSONNumber: "#FAB387",
		TokenJSONBool:   "#CBA6F7",
		TokenJSONNull:   "#F38BA8",
		TokenJSONPunct:  "#9399B2",
		TokenJSONFold:   "#6C7086",

		TokenCursor:            "#F5E0DC",
		TokenSelection:         "#45475A",
		TokenSearchMatch:       "#5C4D1E",
		TokenSearchCurrent:     "#B7791F",
		TokenLineNumber:        "#585B70",
		TokenLineNumberCurrent: "#FECA57",

		TokenDiffInsert:     "#1E3A26",
		TokenDiffDelete:     "#3F1D22",
		TokenDiffReplace:    "#2E2A1A",
		TokenDiffWordAdd:    "#2F6B3A",
		TokenDiffWordDelete: "#7A2E38",
		TokenDiffFiller:     "#313244",

		TokenModeNormal: "#54A0FF",
		TokenModeInsert: "#73F59F",
		TokenModeVisual: "#CBA6F7",

		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",
	},
}

// LightPreset is the default scheme adjusted for light terminals. It is
// chosen automatically when no preset is set and the background is light.
var LightPreset = Preset{
	Name:        "light",
	Description: "Default jvim theme for light backgrounds",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#333333",
		TokenTextMuted:   "#8A8A8A",

		TokenBorderDefault: "#BBBBBB",
		TokenBorderFocus:   "#333333",

		TokenStatusSuccess: "#2E8B57",
		TokenStatusWarning: "#B7791F",
		TokenStatusError:   "#D20F39",

		TokenJSONKey:    "#1E66F5",
		TokenJSONString: "#40A02B",
		TokenJSONNumber: "#FE640B",
		TokenJSONBool:   "#8839EF",
		TokenJSONNull:   "#D20F39",
		TokenJSONPunct:  "#7C7F93",
		TokenJSONFold:   "#9CA0B0",

		TokenCursor:            "#4C4F69",
		TokenSelection:         "#CCD0DA",
		TokenSearchMatch:       "#F9E2AF",
		TokenSearchCurrent:     "#DF8E1D",
		TokenLineNumber:        "#ACB0BE",
		TokenLineNumberCurrent: "#DF8E1D",

		TokenDiffInsert:     "#DDF5E3",
		TokenDiffDelete:     "#FBE1E4",
		TokenDiffReplace:    "#FBF3D9",
		TokenDiffWordAdd:    "#A6E3B4",
		TokenDiffWordDelete: "#F2A7B1",
		TokenDiffFiller:     "#E6E9EF",

		TokenModeNormal: "#1E66F5",
		TokenModeInsert: "#40A02B",
		TokenModeVisual: "#8839EF",

		TokenOverlayTitle:  "#4C4F69",
		TokenOverlayBorder: "#9CA0B0",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Dark:        true,
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#CDD6F4", // text
		TokenTextMuted:   "#6C7086", // overlay0

		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#CDD6F4", // text

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenJSONKey:    "#89B4FA", // blue
		TokenJSONString: "#A6E3A1", // green
		TokenJSONNumber: "#FAB387", // peach
		TokenJSONBool:   "#CBA6F7", // mauve
		TokenJSONNull:   "#F38BA8", // red
		TokenJSONPunct:  "#9399B2", // overlay2
		TokenJSONFold:   "#6C7086", // overlay0

		TokenCursor:            "#F5E0DC", // rosewater
		TokenSelection:         "#45475A", // surface1
		TokenSearchMatch:       "#585B70", // surface2
		TokenSearchCurrent:     "#F9E2AF", // yellow
		TokenLineNumber:        "#585B70", // surface2
		TokenLineNumberCurrent: "#B4BEFE", // lavender

		TokenDiffInsert:     "#243B2E",
		TokenDiffDelete:     "#3E2432",
		TokenDiffReplace:    "#35302A",
		TokenDiffWordAdd:    "#3B6A45",
		TokenDiffWordDelete: "#7D3B52",
		TokenDiffFiller:     "#313244", // surface0

		TokenModeNormal: "#89B4FA", // blue
		TokenModeInsert: "#A6E3A1", // green
		TokenModeVisual: "#CBA6F7", // mauve

		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0
	},
}

// CatppuccinLattePreset is the Catppuccin Latte (light) theme.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#4C4F69", // text
		TokenTextMuted:   "#9CA0B0", // overlay0

		TokenBorderDefault: "#9CA0B0", // overlay0
		TokenBorderFocus:   "#4C4F69", // text

		TokenStatusSuccess: "#40A02B", // green
		TokenStatusWarning: "#DF8E1D", // yellow
		TokenStatusError:   "#D20F39", // red

		TokenJSONKey:    "#1E66F5", // blue
		TokenJSONString: "#40A02B", // green
		TokenJSONNumber: "#FE640B", // peach
		TokenJSONBool:   "#8839EF", // mauve
		TokenJSONNull:   "#D20F39", // red
		TokenJSONPunct:  "#7C7F93", // overlay2
		TokenJSONFold:   "#9CA0B0", // overlay0

		TokenCursor:            "#DC8A78", // rosewater
		TokenSelection:         "#CCD0DA", // surface0
		TokenSearchMatch:       "#BCC0CC", // surface1
		TokenSearchCurrent:     "#DF8E1D", // yellow
		TokenLineNumber:        "#ACB0BE", // surface2
		TokenLineNumberCurrent: "#7287FD", // lavender

		TokenDiffInsert:     "#D8EFD3",
		TokenDiffDelete:     "#F6D5DC",
		TokenDiffReplace:    "#F7EAD2",
		TokenDiffWordAdd:    "#A9DB9E",
		TokenDiffWordDelete: "#EDA3B3",
		TokenDiffFiller:     "#E6E9EF", // mantle

		TokenModeNormal: "#1E66F5", // blue
		TokenModeInsert: "#40A02B", // green
		TokenModeVisual: "#8839EF", // mauve

		TokenOverlayTitle:  "#4C4F69", // text
		TokenOverlayBorder: "#9CA0B0", // overlay0
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Dark:        true,
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#F8F8F2", // foreground
		TokenTextMuted:   "#6272A4", // comment

		TokenBorderDefault: "#6272A4", // comment
		TokenBorderFocus:   "#F8F8F2", // foreground

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		TokenJSONKey:    "#8BE9FD", // cyan
		TokenJSONString: "#F1FA8C", // yellow
		TokenJSONNumber: "#BD93F9", // purple
		TokenJSONBool:   "#FF79C6", // pink
		TokenJSONNull:   "#FF5555", // red
		TokenJSONPunct:  "#F8F8F2", // foreground
		TokenJSONFold:   "#6272A4", // comment

		TokenCursor:            "#F8F8F2", // foreground
		TokenSelection:         "#44475A", // current line
		TokenSearchMatch:       "#44475A", // current line
		TokenSearchCurrent:     "#FFB86C", // orange
		TokenLineNumber:        "#6272A4", // comment
		TokenLineNumberCurrent: "#F1FA8C", // yellow

		TokenDiffInsert:     "#1F3B2A",
		TokenDiffDelete:     "#45232A",
		TokenDiffReplace:    "#3A3522",
		TokenDiffWordAdd:    "#2E7D44",
		TokenDiffWordDelete: "#8C2F3A",
		TokenDiffFiller:     "#343746",

		TokenModeNormal: "#BD93F9", // purple
		TokenModeInsert: "#50FA7B", // green
		TokenModeVisual: "#FF79C6", // pink

		TokenOverlayTitle:  "#F8F8F2", // foreground
		TokenOverlayBorder: "#6272A4", // comment
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Dark:        true,
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#ECEFF4", // snow storm 3
		TokenTextMuted:   "#4C566A", // polar night 4

		TokenBorderDefault: "#4C566A", // polar night 4
		TokenBorderFocus:   "#ECEFF4", // snow storm 3

		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		TokenJSONKey:    "#88C0D0", // frost 2
		TokenJSONString: "#A3BE8C", // aurora green
		TokenJSONNumber: "#D08770", // aurora orange
		TokenJSONBool:   "#B48EAD", // aurora purple
		TokenJSONNull:   "#BF616A", // aurora red
		TokenJSONPunct:  "#D8DEE9", // snow storm 1
		TokenJSONFold:   "#4C566A", // polar night 4

		TokenCursor:            "#D8DEE9", // snow storm 1
		TokenSelection:         "#434C5E", // polar night 3
		TokenSearchMatch:       "#434C5E", // polar night 3
		TokenSearchCurrent:     "#EBCB8B", // aurora yellow
		TokenLineNumber:        "#4C566A", // polar night 4
		TokenLineNumberCurrent: "#81A1C1", // frost 3

		TokenDiffInsert:     "#2E3F36",
		TokenDiffDelete:     "#46333A",
		TokenDiffReplace:    "#403D34",
		TokenDiffWordAdd:    "#4F6E50",
		TokenDiffWordDelete: "#7F4A52",
		TokenDiffFiller:     "#3B4252", // polar night 2

		TokenModeNormal: "#81A1C1", // frost 3
		TokenModeInsert: "#A3BE8C", // aurora green
		TokenModeVisual: "#B48EAD", // aurora purple

		TokenOverlayTitle:  "#ECEFF4", // snow storm 3
		TokenOverlayBorder: "#4C566A", // polar night 4
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Dark:        true,
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#FFFFFF",
		TokenTextMuted:   "#FFFFFF", // no muted colors in high contrast

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenJSONKey:    "#00FFFF",
		TokenJSONString: "#00FF00",
		TokenJSONNumber: "#FF8800",
		TokenJSONBool:   "#FF00FF",
		TokenJSONNull:   "#FF0000",
		TokenJSONPunct:  "#FFFFFF",
		TokenJSONFold:   "#FFFF00",

		TokenCursor:            "#FFFF00",
		TokenSelection:         "#0000AA",
		TokenSearchMatch:       "#555500",
		TokenSearchCurrent:     "#FFFF00",
		TokenLineNumber:        "#FFFFFF",
		TokenLineNumberCurrent: "#FFFF00",

		TokenDiffInsert:     "#004400",
		TokenDiffDelete:     "#550000",
		TokenDiffReplace:    "#444400",
		TokenDiffWordAdd:    "#008800",
		TokenDiffWordDelete: "#AA0000",
		TokenDiffFiller:     "#222222",

		TokenModeNormal: "#00FFFF",
		TokenModeInsert: "#00FF00",
		TokenModeVisual: "#FF00FF",

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",
	},
}
