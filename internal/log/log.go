// Package log provides structured, file-backed logging for jvim.
//
// Logging is off until Init is called (the CLI does so for --debug or when
// JVIM_DEBUG is set); until then every call is a no-op. Each entry is written
// to the log file and published on a broker so the host can show a live log
// pane.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/jvim/internal/pubsub"
)

// EnvDebug enables logging when set to a non-empty value.
const EnvDebug = "JVIM_DEBUG"

// recentLimit is how many entries are kept in memory for the log pane.
const recentLimit = 500

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, case-insensitively. Unknown names are
// LevelDebug.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	}
	return LevelDebug
}

// Category groups related log messages.
type Category string

const (
	CatEditor  Category = "editor"  // Key dispatch, modes and buffer edits
	CatSearch  Category = "search"  // Regex and JSONPath search
	CatSubst   Category = "subst"   // :s substitutions
	CatFold    Category = "fold"    // Fold table changes
	CatDiff    Category = "diff"    // Diff computation
	CatIO      Category = "io"      // File load/save
	CatConfig  Category = "config"  // Configuration loading/saving
	CatUI      Category = "ui"      // UI component updates
	CatWatcher Category = "watcher" // File watcher events
	CatHistory Category = "history" // Search/command history store
	CatTrace   Category = "trace"
	CatCache   Category = "cache"
)

// Entry is one log record.
type Entry struct {
	Time     time.Time
	Level    Level
	Category Category
	Message  string
	// Fields holds alternating keys and values.
	Fields []any
}

// String formats the entry as a single line:
//
//	2025-12-06T10:45:00 [ERROR] [search] message key=value key2=value2
func (e Entry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", e.Time.Format("2006-01-02T15:04:05"), e.Level, e.Category, e.Message)
	for i := 0; i+1 < len(e.Fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", e.Fields[i], e.Fields[i+1])
	}
	if len(e.Fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", e.Fields[len(e.Fields)-1])
	}
	return sb.String()
}

// Logger writes entries to a file and publishes them.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
	recent   []Entry
	broker   *pubsub.Broker[Entry]
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func install(l *Logger) func() {
	defaultMu.Lock()
	prev := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()
	if prev != nil {
		prev.close()
	}
	return func() {
		defaultMu.Lock()
		if defaultLogger == l {
			defaultLogger = nil
		}
		defaultMu.Unlock()
		l.close()
	}
}

// Init starts logging to path, appending. The returned function stops
// logging and closes the file. Calling Init again replaces the logger.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // G304: user-chosen debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return install(newLogger(f, f)), nil
}

// InitWithTeaLog starts logging through tea.LogToFile, which also routes the
// bubbletea runtime's own log output to path.
func InitWithTeaLog(path, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return install(newLogger(f, f)), nil
}

// InitWriter logs to w without owning it. Tests use it to capture output.
func InitWriter(w io.Writer) func() {
	return install(newLogger(w, nil))
}

// Enabled reports whether debug logging was requested, either by flag or
// through JVIM_DEBUG.
func Enabled(flag bool) bool {
	return flag || os.Getenv(EnvDebug) != ""
}

func newLogger(w io.Writer, c io.Closer) *Logger {
	return &Logger{
		writer:   w,
		closer:   c,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBrokerWithBuffer[Entry](256),
	}
}

func (l *Logger) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = false
	l.broker.Close()
	if l.closer != nil {
		_ = l.closer.Close()
		l.closer = nil
	}
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields)
}

func write(level Level, cat Category, msg string, fields []any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}

	entry := Entry{Time: time.Now(), Level: level, Category: cat, Message: msg, Fields: fields}
	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry.String()+"\n")
	}
	if len(l.recent) == recentLimit {
		l.recent = append(l.recent[:0], l.recent[1:]...)
	}
	l.recent = append(l.recent, entry)
	l.broker.Publish(pubsub.Logged, entry)
}

// Recent returns up to the last n entries, oldest first.
func Recent(n int) []Entry {
	l := current()
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	start := max(0, len(l.recent)-n)
	return append([]Entry(nil), l.recent[start:]...)
}

// ClearRecent drops the in-memory entries. The log file is untouched.
func ClearRecent() {
	l := current()
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recent = l.recent[:0]
}

// LogEvent is a pubsub event carrying an entry.
type LogEvent = pubsub.Event[Entry]

// LogListener delivers log events to a bubbletea model.
type LogListener = pubsub.Listener[Entry]

// NewListener subscribes to log entries for the lifetime of ctx. It returns
// nil when logging is not initialized.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewListener[Entry](ctx, l.broker)
}
