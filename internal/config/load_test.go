package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
editor:
  collapse_length: 80
  clipboard: false
diff:
  normalize: false
ui:
  markdown_style: light
`)
	cfg, used, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, used)

	require.Equal(t, 80, cfg.Editor.CollapseLength)
	require.False(t, cfg.Editor.Clipboard)
	require.False(t, cfg.Diff.Normalize)
	require.Equal(t, "light", cfg.UI.MarkdownStyle)

	// Unset keys keep their defaults
	require.Equal(t, 20, cfg.Editor.PreviewLength)
	require.True(t, cfg.Diff.WordDiff)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "editor: [unclosed\n")
	_, _, err := Load(path)
	require.Error(t, err)
}

func TestLoad_NoConfigUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, used, err := Load("")
	require.NoError(t, err)
	require.Empty(t, used)
	require.Equal(t, Defaults().Editor, cfg.Editor)
	require.Equal(t, filepath.Join(home, ".config", "jvim", "traces", "traces.jsonl"), cfg.Tracing.FilePath)
}

func TestLoad_LocalConfigWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeHome := filepath.Join(home, ".config", "jvim")
	require.NoError(t, os.MkdirAll(writeHome, 0o750))
	writeConfig(t, writeHome, "editor:\n  undo_limit: 5\n")

	work := t.TempDir()
	t.Chdir(work)
	require.NoError(t, os.MkdirAll(".jvim", 0o750))
	require.NoError(t, os.WriteFile(LocalConfigPath, []byte("editor:\n  undo_limit: 7\n"), 0o600))

	cfg, used, err := Load("")
	require.NoError(t, err)
	require.Equal(t, LocalConfigPath, used)
	require.Equal(t, 7, cfg.Editor.UndoLimit)
}

func TestLoad_HomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	dir := filepath.Join(home, ".config", "jvim")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := writeConfig(t, dir, "history:\n  enabled: false\n")

	cfg, used, err := Load("")
	require.NoError(t, err)
	require.Equal(t, path, used)
	require.False(t, cfg.History.Enabled)
}
