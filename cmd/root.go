// Package cmd wires the jvim command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/jvim/internal/app"
	"github.com/zjrosen/jvim/internal/config"
	"github.com/zjrosen/jvim/internal/history"
	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/tracing"
	"github.com/zjrosen/jvim/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the command line.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	// envLogPath overrides the debug log location.
	envLogPath = "JVIM_LOG"
	// envLogLevel sets the lowest level written to the debug log.
	envLogLevel = "JVIM_LOG_LEVEL"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool

	readOnlyFlag bool
	jsonlFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "jvim [file]",
	Short: "A vim-style editor for JSON and JSONL",
	Long: `jvim is a modal, vim-style terminal editor for JSON and JSON Lines.
It folds nested blocks, collapses long strings, searches with regexes or
JSONPath and edits JSON embedded in string values.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .jvim/config.yaml, then ~/.config/jvim/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also enabled by "+log.EnvDebug+")")
	rootCmd.Flags().BoolVarP(&readOnlyFlag, "readonly", "R", false, "open the file read-only")
	rootCmd.Flags().BoolVar(&jsonlFlag, "jsonl", false, "treat the file as JSON Lines")
}

// session holds what every subcommand needs: configuration, logging and the
// tracer. close releases them in reverse order. Interactive sessions log
// through bubbletea so the runtime's own messages land in the same file.
type session struct {
	cfg     config.Config
	cfgPath string
	tracer  *tracing.Provider
	cleanup []func()
}

func startSession(interactive bool) (*session, error) {
	s := &session{}
	if log.Enabled(debugFlag) {
		logPath := os.Getenv(envLogPath)
		if logPath == "" {
			logPath = "debug.log"
		}
		var cleanup func()
		var err error
		if interactive {
			cleanup, err = log.InitWithTeaLog(logPath, "jvim")
		} else {
			cleanup, err = log.Init(logPath)
		}
		if err != nil {
			return nil, fmt.Errorf("initializing logging: %w", err)
		}
		s.cleanup = append(s.cleanup, cleanup)
		if lvl := os.Getenv(envLogLevel); lvl != "" {
			log.SetMinLevel(log.ParseLevel(lvl))
		}
		log.Info(log.CatConfig, "jvim starting", "version", version, "logPath", logPath)
	}

	cfg, path, err := config.Load(cfgFile)
	if err != nil {
		s.close()
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		s.close()
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	s.cfg, s.cfgPath = cfg, path

	provider, err := tracing.NewProvider(tracing.FromConfig(cfg.Tracing))
	if err != nil {
		s.close()
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	s.tracer = provider
	s.cleanup = append(s.cleanup, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracer shutdown failed", err)
		}
	})
	return s, nil
}

func (s *session) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
	s.cleanup = nil
}

func runEditor(_ *cobra.Command, args []string) error {
	s, err := startSession(true)
	if err != nil {
		return err
	}
	defer s.close()

	if err := styles.ApplyTheme(s.cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	zone.NewGlobal()

	opts := app.Options{
		ReadOnly:  readOnlyFlag,
		JSONL:     jsonlFlag,
		Debug:     log.Enabled(debugFlag),
		Config:    s.cfg,
		Tracer:    s.tracer.Tracer(),
		Clipboard: app.SystemClipboard{},
	}
	if len(args) == 1 {
		opts.Path = args[0]
	}

	if s.cfg.History.Enabled && s.cfg.History.Path != "" {
		db, err := history.NewDB(s.cfg.History.Path)
		if err != nil {
			// The editor still starts without history.
			log.ErrorErr(log.CatHistory, "opening history database", err, "path", s.cfg.History.Path)
		} else {
			defer func() { _ = db.Close() }()
			opts.History = db.Store()
		}
	}

	model, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("opening %s: %w", opts.Path, err)
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if s.cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, progOpts...)
	final, err := p.Run()
	// :e replaces the watcher, so close the model the program ended with.
	if fm, ok := final.(app.Model); ok {
		model = fm
	}

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jvim:", err)
		return err
	}
	return nil
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
