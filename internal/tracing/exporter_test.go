package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		out = append(out, r)
	}
	require.NoError(t, scanner.Err())
	return out
}

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	_, err = os.Stat(tracePath)
	require.NoError(t, err, "trace file should be created with parent dirs")
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_AppendsToExistingFile(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"name":"existing"}`+"\n"), 0o600))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	stub := tracetest.SpanStub{
		Name:      SpanLoad,
		StartTime: time.Now(),
		EndTime:   time.Now().Add(100 * time.Millisecond),
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2)
	require.Equal(t, "existing", records[0].Name)
	require.Equal(t, SpanLoad, records[1].Name)
}

func TestFileExporter_RecordFields(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	parentID, _ := trace.SpanIDFromHex("1112131415161718")
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	stub := tracetest.SpanStub{
		Name: SpanDiff,
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  spanID,
		}),
		Parent: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  parentID,
		}),
		SpanKind:   trace.SpanKindInternal,
		StartTime:  start,
		EndTime:    start.Add(1500 * time.Microsecond),
		Attributes: []attribute.KeyValue{attribute.Int(AttrDiffHunks, 3)},
		Status:     sdktrace.Status{Code: codes.Error, Description: "bad input"},
		Events: []sdktrace.Event{{
			Name:       EventValidationFailed,
			Time:       start,
			Attributes: []attribute.KeyValue{attribute.String(AttrErrorMessage, "line 2")},
		}},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 1)
	r := records[0]
	require.Equal(t, "0102030405060708090a0b0c0d0e0f10", r.TraceID)
	require.Equal(t, "0102030405060708", r.SpanID)
	require.Equal(t, "1112131415161718", r.ParentSpanID)
	require.Equal(t, "INTERNAL", r.Kind)
	require.Equal(t, "ERROR", r.Status)
	require.Equal(t, "bad input", r.StatusMsg)
	require.Equal(t, 1.5, r.DurationMs)
	require.Equal(t, float64(3), r.Attributes[AttrDiffHunks])
	require.Len(t, r.Events, 1)
	require.Equal(t, EventValidationFailed, r.Events[0].Name)
	require.Equal(t, "line 2", r.Events[0].Attributes[AttrErrorMessage])
}

func TestFileExporter_EmptyBatch(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)
	require.NoError(t, exporter.ExportSpans(context.Background(), nil))
	require.NoError(t, exporter.Shutdown(context.Background()))

	info, err := os.Stat(tracePath)
	require.NoError(t, err)
	require.Zero(t, info.Size())
}

func TestFileExporter_ExportAfterShutdown(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()), "second shutdown is a no-op")

	stub := tracetest.SpanStub{Name: "late"}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err)
	require.False(t, errors.Is(err, os.ErrClosed))
}

func TestSpanKindToString(t *testing.T) {
	require.Equal(t, "SERVER", spanKindToString(trace.SpanKindServer))
	require.Equal(t, "CLIENT", spanKindToString(trace.SpanKindClient))
	require.Equal(t, "PRODUCER", spanKindToString(trace.SpanKindProducer))
	require.Equal(t, "CONSUMER", spanKindToString(trace.SpanKindConsumer))
	require.Equal(t, "UNSPECIFIED", spanKindToString(trace.SpanKindUnspecified))
}
