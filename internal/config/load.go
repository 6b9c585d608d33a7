package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zjrosen/jvim/internal/log"
)

// LocalConfigPath is the project-local config, relative to the working
// directory.
const LocalConfigPath = ".jvim/config.yaml"

// DefaultConfigPath returns ~/.config/jvim/config.yaml, or an empty string
// if the home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jvim", "config.yaml")
}

// NewViper returns a viper instance seeded with the defaults. Keys use "::"
// as the delimiter so dotted color tokens such as "json.key" stay intact.
func NewViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	d := Defaults()

	v.SetDefault("editor::collapse_length", d.Editor.CollapseLength)
	v.SetDefault("editor::preview_length", d.Editor.PreviewLength)
	v.SetDefault("editor::undo_limit", d.Editor.UndoLimit)
	v.SetDefault("editor::history_limit", d.Editor.HistoryLimit)
	v.SetDefault("editor::clipboard", d.Editor.Clipboard)
	v.SetDefault("editor::auto_reload", d.Editor.AutoReload)
	v.SetDefault("search::highlight_all", d.Search.HighlightAll)
	v.SetDefault("diff::normalize", d.Diff.Normalize)
	v.SetDefault("diff::min_block_count", d.Diff.MinBlockCount)
	v.SetDefault("diff::full_diff_limit", d.Diff.FullDiffLimit)
	v.SetDefault("diff::word_diff", d.Diff.WordDiff)
	v.SetDefault("ui::line_numbers", d.UI.LineNumbers)
	v.SetDefault("ui::show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui::markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui::mouse", d.UI.Mouse)
	v.SetDefault("tracing::enabled", d.Tracing.Enabled)
	v.SetDefault("tracing::exporter", d.Tracing.Exporter)
	v.SetDefault("tracing::otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing::sample_rate", d.Tracing.SampleRate)
	v.SetDefault("history::enabled", d.History.Enabled)
	v.SetDefault("history::path", d.History.Path)

	v.SetEnvPrefix("JVIM")
	return v
}

// Load reads the config file and returns the merged configuration along with
// the path it was read from. When explicit is empty the lookup order is
// .jvim/config.yaml then ~/.config/jvim/config.yaml; a missing file yields
// the defaults and an empty path.
func Load(explicit string) (Config, string, error) {
	v := NewViper()

	path := explicit
	if path == "" {
		path = findConfig()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if explicit != "" || !errors.As(err, &notFound) {
				return Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
			}
			path = ""
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath()
	}
	log.Debug(log.CatConfig, "config loaded", "path", path)
	return cfg, path, nil
}

func findConfig() string {
	if _, err := os.Stat(LocalConfigPath); err == nil {
		return LocalConfigPath
	}
	if p := DefaultConfigPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
