package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 60, cfg.Editor.CollapseLength)
	require.Equal(t, 20, cfg.Editor.PreviewLength)
	require.True(t, cfg.Diff.Normalize)
	require.Equal(t, "file", cfg.Tracing.Exporter)
}

func TestValidateEditor(t *testing.T) {
	tests := []struct {
		name    string
		editor  EditorConfig
		wantErr string
	}{
		{name: "defaults", editor: Defaults().Editor},
		{name: "collapse disabled", editor: EditorConfig{CollapseLength: 0, PreviewLength: 20}},
		{name: "negative collapse", editor: EditorConfig{CollapseLength: -1}, wantErr: "collapse_length"},
		{name: "negative preview", editor: EditorConfig{PreviewLength: -5}, wantErr: "preview_length"},
		{name: "preview too long", editor: EditorConfig{CollapseLength: 10, PreviewLength: 10}, wantErr: "must be shorter"},
		{name: "negative undo", editor: EditorConfig{UndoLimit: -1}, wantErr: "undo_limit"},
		{name: "negative history", editor: EditorConfig{HistoryLimit: -1}, wantErr: "history_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEditor(tt.editor)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDiff(t *testing.T) {
	require.NoError(t, ValidateDiff(Defaults().Diff))
	require.ErrorContains(t, ValidateDiff(DiffConfig{MinBlockCount: -1}), "min_block_count")
	require.ErrorContains(t, ValidateDiff(DiffConfig{FullDiffLimit: -1}), "full_diff_limit")
}

func TestValidateUI(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{}))
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "light"}))
	require.ErrorContains(t, ValidateUI(UIConfig{MarkdownStyle: "sepia"}), "markdown_style")
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{}))
	require.NoError(t, ValidateTracing(Defaults().Tracing))

	err := ValidateTracing(TracingConfig{SampleRate: 1.5})
	require.ErrorContains(t, err, "sample_rate")

	err = ValidateTracing(TracingConfig{Exporter: "jaeger"})
	require.ErrorContains(t, err, "tracing.exporter")

	err = ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp"})
	require.ErrorContains(t, err, "otlp_endpoint")

	// Endpoint only matters once tracing is on
	require.NoError(t, ValidateTracing(TracingConfig{Exporter: "otlp"}))
}

func TestValidate_Theme(t *testing.T) {
	cfg := Defaults()
	cfg.Theme.Preset = "solarized"
	require.ErrorContains(t, cfg.Validate(), "unknown theme preset")

	cfg = Defaults()
	cfg.Theme.Colors = map[string]any{"json": map[string]any{"key": "red"}}
	require.ErrorContains(t, cfg.Validate(), "invalid hex color for json.key")
}

func TestFlattenedColors(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"json": map[string]any{
				"key":    "#111111",
				"string": "#222222",
			},
			"diff.insert": "#333333",
			"mode": map[any]any{
				"normal": "#444444",
			},
			"ignored": 42,
		},
	}
	require.Equal(t, map[string]string{
		"json.key":    "#111111",
		"json.string": "#222222",
		"diff.insert": "#333333",
		"mode.normal": "#444444",
	}, theme.FlattenedColors())
}

func TestDefaultHistoryPath_XDGStateHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	require.Equal(t, filepath.Join("/tmp/state", "jvim", "history.db"), DefaultHistoryPath())
}

func TestDefaultHistoryPath_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)
	require.Equal(t, filepath.Join(home, ".local", "state", "jvim", "history.db"), DefaultHistoryPath())
}

func TestDefaultTracesFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.Equal(t, filepath.Join(home, ".config", "jvim", "traces", "traces.jsonl"), DefaultTracesFilePath())
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDefaultConfigTemplate_LoadsAsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	cfg, used, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, used)
	require.NoError(t, cfg.Validate())

	want := Defaults()
	require.Equal(t, want.Editor, cfg.Editor)
	require.Equal(t, want.Search, cfg.Search)
	require.Equal(t, want.Diff, cfg.Diff)
	require.Equal(t, want.UI, cfg.UI)
}
