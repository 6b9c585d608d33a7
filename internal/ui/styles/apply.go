package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	// Mode is "light", "dark" or empty to ask the terminal.
	Mode   string
	Colors map[string]string
}

// detectDark asks the terminal for its background. Tests replace it.
var detectDark = termenv.HasDarkBackground

// ApplyTheme applies a theme in order: the base preset for the background,
// the named preset, then individual color overrides. All styles are rebuilt.
func ApplyTheme(cfg ThemeConfig) error {
	dark, err := resolveDark(cfg.Mode)
	if err != nil {
		return err
	}
	lipgloss.SetHasDarkBackground(dark)

	base := DefaultPreset
	if !dark {
		base = LightPreset
	}
	colors := maps.Clone(base.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func resolveDark(mode string) (bool, error) {
	switch strings.ToLower(mode) {
	case "":
		return detectDark(), nil
	case "dark":
		return true, nil
	case "light":
		return false, nil
	}
	return false, fmt.Errorf("theme mode must be \"light\", \"dark\" or empty, got %q", mode)
}

func applyColors(colors map[ColorToken]string) {
	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:       &TextPrimaryColor,
		TokenTextMuted:         &TextMutedColor,
		TokenBorderDefault:     &BorderDefaultColor,
		TokenBorderFocus:       &BorderFocusColor,
		TokenStatusSuccess:     &StatusSuccessColor,
		TokenStatusWarning:     &StatusWarningColor,
		TokenStatusError:       &StatusErrorColor,
		TokenJSONKey:           &JSONKeyColor,
		TokenJSONString:        &JSONStringColor,
		TokenJSONNumber:        &JSONNumberColor,
		TokenJSONBool:          &JSONBoolColor,
		TokenJSONNull:          &JSONNullColor,
		TokenJSONPunct:         &JSONPunctColor,
		TokenJSONFold:          &JSONFoldColor,
		TokenCursor:            &CursorColor,
		TokenSelection:         &SelectionColor,
		TokenSearchMatch:       &SearchMatchColor,
		TokenSearchCurrent:     &SearchCurrentColor,
		TokenLineNumber:        &LineNumberColor,
		TokenLineNumberCurrent: &LineNumberCurrentColor,
		TokenDiffInsert:        &DiffInsertColor,
		TokenDiffDelete:        &DiffDeleteColor,
		TokenDiffReplace:       &DiffReplaceColor,
		TokenDiffWordAdd:       &DiffWordAddColor,
		TokenDiffWordDelete:    &DiffWordDeleteColor,
		TokenDiffFiller:        &DiffFillerColor,
		TokenModeNormal:        &ModeNormalColor,
		TokenModeInsert:        &ModeInsertColor,
		TokenModeVisual:        &ModeVisualColor,
		TokenOverlayTitle:      &OverlayTitleColor,
		TokenOverlayBorder:     &OverlayBorderColor,
	}
	for token, hex := range colors {
		if target, ok := targets[token]; ok {
			*target = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 3 && len(hex) != 6) {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}

// ValidateTheme checks a theme without applying it.
func ValidateTheme(cfg ThemeConfig) error {
	if cfg.Mode != "" {
		if _, err := resolveDark(cfg.Mode); err != nil {
			return err
		}
	}
	if cfg.Preset != "" && cfg.Preset != "default" {
		if _, ok := Presets[cfg.Preset]; !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
	}
	for key, value := range cfg.Colors {
		if !isValidToken(ColorToken(key)) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
	}
	return nil
}
