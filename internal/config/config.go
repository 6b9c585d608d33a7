// Package config provides configuration types, defaults and persistence for
// jvim.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/ui/styles"
)

// Config holds all configuration options for jvim.
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor"`
	Search  SearchConfig  `mapstructure:"search"`
	Diff    DiffConfig    `mapstructure:"diff"`
	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Tracing TracingConfig `mapstructure:"tracing"`
	History HistoryConfig `mapstructure:"history"`
}

// EditorConfig holds buffer editing options.
type EditorConfig struct {
	CollapseLength int  `mapstructure:"collapse_length"` // Strings at least this long start collapsed
	PreviewLength  int  `mapstructure:"preview_length"`  // Characters shown for a collapsed string
	UndoLimit      int  `mapstructure:"undo_limit"`
	HistoryLimit   int  `mapstructure:"history_limit"` // Search and command history entries kept
	Clipboard      bool `mapstructure:"clipboard"`     // Mirror yanks to the system clipboard
	AutoReload     bool `mapstructure:"auto_reload"`   // Watch the file and offer to reload on change
}

// SearchConfig holds search display options.
type SearchConfig struct {
	HighlightAll bool `mapstructure:"highlight_all"` // Highlight every match, not just the current one
}

// DiffConfig holds options for `jvim diff`.
type DiffConfig struct {
	Normalize     bool `mapstructure:"normalize"`       // Sort object keys before comparing
	MinBlockCount int  `mapstructure:"min_block_count"` // Brackets per level before block-wise diffing
	FullDiffLimit int  `mapstructure:"full_diff_limit"` // Line count above which no alignment is tried
	WordDiff      bool `mapstructure:"word_diff"`       // Highlight changed words in replaced rows
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	LineNumbers   bool   `mapstructure:"line_numbers"`
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	Mouse         bool   `mapstructure:"mouse"`          // Enable mouse support (hunk gutter clicks)
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "light", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Colors overrides individual color tokens, either nested:
	//   colors:
	//     json:
	//       key: "#FF0000"
	// or as quoted dot notation:
	//   colors:
	//     "json.key": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns Colors with nested maps flattened to dot-notation
// keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// Styles converts the theme section for styles.ApplyTheme.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{
		Preset: t.Preset,
		Mode:   t.Mode,
		Colors: t.FlattenedColors(),
	}
}

// TracingConfig holds OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active. Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp". Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/jvim/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// HistoryConfig controls the persisted search and command history.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Path is the sqlite database. Default: ~/.local/state/jvim/history.db
	Path string `mapstructure:"path"`
}

// DefaultTracesFilePath returns ~/.config/jvim/traces/traces.jsonl, or an
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jvim", "traces", "traces.jsonl")
}

// DefaultHistoryPath returns the history database location, honoring
// XDG_STATE_HOME. It returns an empty string if no home directory is known.
func DefaultHistoryPath() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "jvim", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "jvim", "history.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			CollapseLength: 60,
			PreviewLength:  20,
			UndoLimit:      200,
			HistoryLimit:   50,
			Clipboard:      true,
			AutoReload:     true,
		},
		Search: SearchConfig{
			HighlightAll: true,
		},
		Diff: DiffConfig{
			Normalize:     true,
			MinBlockCount: 4,
			FullDiffLimit: 50_000,
			WordDiff:      true,
		},
		UI: UIConfig{
			LineNumbers:   true,
			ShowStatusBar: true,
			MarkdownStyle: "dark",
			Mouse:         true,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from the home directory at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    DefaultHistoryPath(),
		},
	}
}

// ValidateEditor checks editor options.
func ValidateEditor(e EditorConfig) error {
	switch {
	case e.CollapseLength < 0:
		return fmt.Errorf("editor.collapse_length must not be negative, got %d", e.CollapseLength)
	case e.PreviewLength < 0:
		return fmt.Errorf("editor.preview_length must not be negative, got %d", e.PreviewLength)
	case e.CollapseLength > 0 && e.PreviewLength >= e.CollapseLength:
		return fmt.Errorf("editor.preview_length (%d) must be shorter than editor.collapse_length (%d)", e.PreviewLength, e.CollapseLength)
	case e.UndoLimit < 0:
		return fmt.Errorf("editor.undo_limit must not be negative, got %d", e.UndoLimit)
	case e.HistoryLimit < 0:
		return fmt.Errorf("editor.history_limit must not be negative, got %d", e.HistoryLimit)
	}
	return nil
}

// ValidateDiff checks diff options.
func ValidateDiff(d DiffConfig) error {
	if d.MinBlockCount < 0 {
		return fmt.Errorf("diff.min_block_count must not be negative, got %d", d.MinBlockCount)
	}
	if d.FullDiffLimit < 0 {
		return fmt.Errorf("diff.full_diff_limit must not be negative, got %d", d.FullDiffLimit)
	}
	return nil
}

// ValidateUI checks user interface options.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	}
	return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateDiff(c.Diff); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := styles.ValidateTheme(c.Theme.Styles()); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# jvim configuration

# Editing
editor:
  collapse_length: 60   # String values at least this long start collapsed
  preview_length: 20    # Characters shown for a collapsed string
  undo_limit: 200       # Undo steps kept per buffer
  history_limit: 50     # Search and command history entries kept
  clipboard: true       # Mirror yanks to the system clipboard
  auto_reload: true     # Offer to reload when the file changes on disk

# Search
search:
  highlight_all: true   # Highlight every match of the last search

# jvim diff
diff:
  normalize: true       # Sort object keys before comparing
  word_diff: true       # Highlight changed words within replaced lines
  # min_block_count: 4  # Brackets at one level before comparing block by block
  # full_diff_limit: 50000

# UI settings
ui:
  line_numbers: true
  show_status_bar: true
  # markdown_style: dark  # Help rendering style: "dark" (default) or "light"
  mouse: true             # Click hunks in the diff gutter

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default jvim theme
  #   light             - Default theme for light terminals
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # mode: dark            # Force "light" or "dark"; detected when unset
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   json.key: "#89B4FA"
  #   json.string: "#A6E3A1"
  #   search.current: "#F9E2AF"
  #   diff.insert: "#1E3A26"

# Persisted search and command history
history:
  enabled: true
  # path: ~/.local/state/jvim/history.db

# OpenTelemetry tracing of load, format, diff and save
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/jvim/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
