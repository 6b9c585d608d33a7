package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/jvim/internal/app"
	"github.com/zjrosen/jvim/internal/jsonx"
	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/tracing"
)

// errNeedsFormat is returned by `fmt --check` for a file that would change.
var errNeedsFormat = errors.New("file is not formatted")

var (
	fmtJSONL    bool
	fmtCheck    bool
	fmtSortKeys bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Format a JSON or JSONL file in place",
	Long: `Re-serializes a JSON document with 4-space indentation, or a JSONL
file as one compact record per line. With --check nothing is written and the
command fails if the file would change.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtJSONL, "jsonl", false, "treat the file as JSON Lines (default: by extension)")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "report whether the file is formatted without writing it")
	fmtCmd.Flags().BoolVar(&fmtSortKeys, "sort-keys", false, "sort object keys")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	s, err := startSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	path := args[0]
	jsonl := fmtJSONL || app.IsJSONL(path)
	return tracing.Run(cmd.Context(), s.tracer.Tracer(), tracing.SpanFormat, func(_ context.Context, span trace.Span) error {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		content := string(data)
		formatted, records, err := formatContent(content, jsonl, fmtSortKeys)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		changed := strings.TrimRight(content, "\n") != formatted
		span.SetAttributes(
			attribute.Bool(tracing.AttrFormatChanged, changed),
			attribute.Int(tracing.AttrFormatRecords, records),
		)

		out := cmd.OutOrStdout()
		if fmtCheck {
			if changed {
				fmt.Fprintf(out, "%s: would reformat\n", path)
				return errNeedsFormat
			}
			return nil
		}
		if !changed {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Info(log.CatIO, "formatted", "path", path, "records", records)
		fmt.Fprintf(out, "%s: formatted\n", path)
		return nil
	}, attribute.String(tracing.AttrFilePath, path), attribute.Bool(tracing.AttrJSONL, jsonl))
}

// formatContent returns the canonical on-disk form of content and the number
// of records (1 for a JSON document). JSONL errors name the 1-based record.
func formatContent(content string, jsonl, sortKeys bool) (string, int, error) {
	if !jsonl {
		v, err := jsonx.Parse(content)
		if err != nil {
			return "", 0, err
		}
		return jsonx.Encode(v, jsonx.EncodeOptions{Indent: jsonx.IndentWidth, SortKeys: sortKeys}), 1, nil
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if jsonx.IsBlank(line) {
			continue
		}
		v, err := jsonx.Parse(line)
		if err != nil {
			var syn *jsonx.SyntaxError
			if errors.As(err, &syn) {
				return "", 0, &jsonx.RecordError{Record: len(lines) + 1, Err: syn}
			}
			return "", 0, err
		}
		lines = append(lines, jsonx.Encode(v, jsonx.EncodeOptions{SortKeys: sortKeys}))
	}
	return strings.Join(lines, "\n"), len(lines), nil
}
