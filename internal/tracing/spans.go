package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrFilePath  = "file.path"
	AttrFileBytes = "file.bytes"
	AttrFileLines = "file.lines"
	AttrJSONL     = "file.jsonl"
	AttrReadOnly  = "editor.readonly"

	AttrDiffHunks     = "diff.hunks"
	AttrDiffNormalize = "diff.normalize"
	AttrDiffWarnings  = "diff.warnings"

	AttrFormatChanged = "format.changed"
	AttrFormatRecords = "format.records"

	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanLoad   = "file.load"
	SpanSave   = "file.save"
	SpanReload = "file.reload"
	SpanFormat = "json.format"
	SpanDiff   = "json.diff"
)

// Event names.
const (
	EventValidationFailed = "validation.failed"
	EventWatcherChange    = "watcher.change"
)

// Run executes fn inside a span named name and records its error, if any.
func Run(ctx context.Context, tracer trace.Tracer, name string, fn func(ctx context.Context, span trace.Span) error, attrs ...attribute.KeyValue) error {
	ctx, span := tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	err := fn(ctx, span)
	End(span, err)
	return err
}

// End sets the span status from err. It does not end the span.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
