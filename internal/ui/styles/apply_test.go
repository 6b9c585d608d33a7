package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func withBackground(t *testing.T, dark bool) {
	t.Helper()
	prev := detectDark
	detectDark = func() bool { return dark }
	t.Cleanup(func() {
		detectDark = prev
		require.NoError(t, ApplyTheme(ThemeConfig{Mode: "dark"}))
	})
}

func TestApplyTheme_Default(t *testing.T) {
	withBackground(t, true)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
	require.Equal(t, DefaultPreset.Colors[TokenJSONKey], JSONKeyColor.Dark)
}

func TestApplyTheme_LightBackgroundUsesLightBase(t *testing.T) {
	withBackground(t, false)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, LightPreset.Colors[TokenJSONString], JSONStringColor.Light)
}

func TestApplyTheme_ModeOverridesDetection(t *testing.T) {
	withBackground(t, true)
	require.NoError(t, ApplyTheme(ThemeConfig{Mode: "light"}))
	require.Equal(t, LightPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	withBackground(t, true)
	Presets["test"] = Preset{Name: "test", Colors: map[ColorToken]string{TokenJSONNumber: "#FF0000"}}
	defer delete(Presets, "test")

	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "test"}))
	require.Equal(t, "#FF0000", JSONNumberColor.Dark)
	// Tokens the preset leaves out keep the base colors.
	require.Equal(t, DefaultPreset.Colors[TokenJSONKey], JSONKeyColor.Dark)
}

func TestApplyTheme_PresetWithOverride(t *testing.T) {
	withBackground(t, true)
	require.NoError(t, ApplyTheme(ThemeConfig{
		Preset: "dracula",
		Colors: map[string]string{"json.key": "#00FF00"},
	}))
	require.Equal(t, "#00FF00", JSONKeyColor.Dark)
	require.Equal(t, DraculaPreset.Colors[TokenJSONString], JSONStringColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	withBackground(t, true)
	tests := []struct {
		name string
		cfg  ThemeConfig
		want string
	}{
		{"unknown preset", ThemeConfig{Preset: "nope"}, "unknown theme preset: nope"},
		{"unknown token", ThemeConfig{Colors: map[string]string{"bql.keyword": "#FFFFFF"}}, "unknown color token: bql.keyword"},
		{"bad hex", ThemeConfig{Colors: map[string]string{"json.key": "blue"}}, "invalid hex color for json.key: blue"},
		{"bad mode", ThemeConfig{Mode: "sepia"}, `theme mode must be "light", "dark" or empty, got "sepia"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.EqualError(t, ApplyTheme(tt.cfg), tt.want)
			require.EqualError(t, ValidateTheme(tt.cfg), tt.want)
		})
	}
}

func TestValidateTheme_Valid(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{}))
	require.NoError(t, ValidateTheme(ThemeConfig{Preset: "nord", Mode: "Dark", Colors: map[string]string{"cursor": "#abc"}}))
}

func TestIsValidHexColor(t *testing.T) {
	require.True(t, isValidHexColor("#FFF"))
	require.True(t, isValidHexColor("#a1b2c3"))
	require.False(t, isValidHexColor("FFF"))
	require.False(t, isValidHexColor("#FFFF"))
	require.False(t, isValidHexColor("#GGGGGG"))
}
