package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/jvim/internal/app"
	"github.com/zjrosen/jvim/internal/config"
	"github.com/zjrosen/jvim/internal/diff"
	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/tracing"
	"github.com/zjrosen/jvim/internal/ui/styles"
)

var (
	diffNoNormalize bool
	diffJSONL       bool
	diffSummary     bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <left> <right>",
	Short: "Show a side-by-side diff of two JSON or JSONL files",
	Long: `Both files are re-serialized before comparing, so whitespace never
shows up as a change. Object keys are sorted first unless --no-normalize is
given. Unchanged blocks start folded; ]c and [c jump between hunks.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffNoNormalize, "no-normalize", false, "compare keys in file order")
	diffCmd.Flags().BoolVar(&diffJSONL, "jsonl", false, "compare record by record (default: when both files are .jsonl)")
	diffCmd.Flags().BoolVar(&diffSummary, "summary", false, "print hunk counts instead of opening the viewer")
	rootCmd.AddCommand(diffCmd)
}

func readDiffInput(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return "", diff.NewError(diff.ErrCategoryIO, fmt.Sprintf("cannot read %s: %v", path, err)).
			WithHelpText("Check that the file exists and is readable.")
	}
	return string(data), nil
}

// diffOptions builds diff options from the config and command-line flags.
func diffOptions(cfg config.DiffConfig, leftPath, rightPath string) diff.Options {
	return diff.Options{
		Normalize:     cfg.Normalize && !diffNoNormalize,
		JSONL:         diffJSONL || (app.IsJSONL(leftPath) && app.IsJSONL(rightPath)),
		MinBlockCount: cfg.MinBlockCount,
		FullDiffLimit: cfg.FullDiffLimit,
	}
}

// computeDiff reads both files and aligns them inside a json.diff span.
func computeDiff(ctx context.Context, tracer trace.Tracer, leftPath, rightPath string, opts diff.Options) (*diff.Result, error) {
	var res *diff.Result
	err := tracing.Run(ctx, tracer, tracing.SpanDiff, func(_ context.Context, span trace.Span) error {
		left, err := readDiffInput(leftPath)
		if err != nil {
			return err
		}
		right, err := readDiffInput(rightPath)
		if err != nil {
			return err
		}
		res = diff.Diff(left, right, opts)
		span.SetAttributes(
			attribute.Int(tracing.AttrDiffHunks, len(res.Hunks)),
			attribute.Int(tracing.AttrDiffWarnings, len(res.Warnings)),
		)
		return nil
	}, attribute.Bool(tracing.AttrDiffNormalize, opts.Normalize), attribute.Bool(tracing.AttrJSONL, opts.JSONL))
	if err != nil {
		return nil, err
	}
	log.Info(log.CatDiff, "diff computed", "left", leftPath, "right", rightPath, "hunks", len(res.Hunks))
	return res, nil
}

func printSummary(w io.Writer, res *diff.Result) {
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "warning: %s %s\n", warn.Message, warn.HelpText)
	}
	if res.Identical() {
		fmt.Fprintln(w, "Files are identical")
		return
	}
	s := res.Stats()
	noun := "hunks"
	if s.Hunks == 1 {
		noun = "hunk"
	}
	fmt.Fprintf(w, "%d %s: %d inserted, %d deleted, %d replaced\n", s.Hunks, noun, s.Inserted, s.Deleted, s.Replaced)
}

func runDiff(cmd *cobra.Command, args []string) error {
	s, err := startSession(!diffSummary)
	if err != nil {
		return err
	}
	defer s.close()

	res, err := computeDiff(cmd.Context(), s.tracer.Tracer(), args[0], args[1], diffOptions(s.cfg.Diff, args[0], args[1]))
	if err != nil {
		if de, ok := err.(diff.Error); ok && de.HelpText != "" {
			return fmt.Errorf("%s (%s)", de.Message, de.HelpText)
		}
		return err
	}
	if diffSummary {
		printSummary(cmd.OutOrStdout(), res)
		return nil
	}

	if err := styles.ApplyTheme(s.cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	zone.NewGlobal()

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if s.cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	model := app.NewDiff(res, args[0], args[1], s.cfg)
	if _, err := tea.NewProgram(model, progOpts...).Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
