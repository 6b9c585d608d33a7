package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/tracing"
)

// IsJSONL reports whether path names a JSON Lines file.
func IsJSONL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".jsonl")
}

// NewFileContent is the buffer a new file starts with.
func NewFileContent(jsonl bool) string {
	if jsonl {
		return ""
	}
	return "{}"
}

// errNotFound wraps fs.ErrNotExist for files that do not exist yet.
var errNotFound = errors.New("file not found")

// readFile loads path inside a file.load span.
func readFile(ctx context.Context, tracer trace.Tracer, spanName, path string) (string, error) {
	var content string
	err := tracing.Run(ctx, tracer, spanName, func(_ context.Context, span trace.Span) error {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path is the file the user asked to edit
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", errNotFound, path)
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		content = string(data)
		span.SetAttributes(
			attribute.Int(tracing.AttrFileBytes, len(data)),
			attribute.Int(tracing.AttrFileLines, strings.Count(content, "\n")+1),
		)
		return nil
	}, attribute.String(tracing.AttrFilePath, path), attribute.Bool(tracing.AttrJSONL, IsJSONL(path)))
	if err != nil {
		log.ErrorErr(log.CatIO, "load failed", err, "path", path)
		return "", err
	}
	log.Info(log.CatIO, "loaded", "path", path, "bytes", len(content))
	return content, nil
}

// writeFile saves content to path inside a file.save span, creating parent
// directories. An existing file keeps its permissions.
func writeFile(ctx context.Context, tracer trace.Tracer, path, content string) error {
	err := tracing.Run(ctx, tracer, tracing.SpanSave, func(_ context.Context, span trace.Span) error {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
		}
		perm := fs.FileMode(0o644)
		if info, err := os.Stat(path); err == nil {
			perm = info.Mode().Perm()
		}
		if err := os.WriteFile(path, []byte(content), perm); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		span.SetAttributes(attribute.Int(tracing.AttrFileBytes, len(content)))
		return nil
	}, attribute.String(tracing.AttrFilePath, path))
	if err != nil {
		log.ErrorErr(log.CatIO, "save failed", err, "path", path)
		return err
	}
	log.Info(log.CatIO, "saved", "path", path, "bytes", len(content))
	return nil
}
