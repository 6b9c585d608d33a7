package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSetting_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "jvim", "config.yaml")

	err := SaveSetting(configPath, "theme.preset", "dracula")
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "theme:\n  preset: dracula\n", string(data))
}

func TestSaveSetting_PreservesOtherConfig(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), `# jvim configuration
editor:
  collapse_length: 80 # long strings
ui:
  line_numbers: false
theme:
  preset: nord
`)

	err := SaveSetting(configPath, "theme.preset", "dracula")
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# jvim configuration")
	assert.Contains(t, content, "collapse_length: 80 # long strings")
	assert.Contains(t, content, "line_numbers: false")
	assert.Contains(t, content, "preset: dracula")
	assert.NotContains(t, content, "nord")

	cfg, _, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, 80, cfg.Editor.CollapseLength)
	require.Equal(t, "dracula", cfg.Theme.Preset)
}

func TestSaveSetting_AddsMissingSection(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "editor:\n  clipboard: true\n")

	require.NoError(t, SaveSetting(configPath, "history.enabled", "false"))

	cfg, _, err := Load(configPath)
	require.NoError(t, err)
	require.True(t, cfg.Editor.Clipboard)
	require.False(t, cfg.History.Enabled)
}

func TestSaveSetting_ReplacesNullSection(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "theme:\n")

	require.NoError(t, SaveSetting(configPath, "theme.mode", "light"))

	cfg, _, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, "light", cfg.Theme.Mode)
}

func TestSaveSetting_InvalidKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	for _, key := range []string{"preset", ".preset", "theme."} {
		err := SaveSetting(configPath, key, "x")
		require.Error(t, err, key)
		require.Contains(t, err.Error(), "section.key")
	}
	_, err := os.Stat(configPath)
	require.True(t, os.IsNotExist(err))
}

func TestSaveSetting_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "editor: [unclosed\n")
	err := SaveSetting(configPath, "theme.preset", "nord")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")
}
