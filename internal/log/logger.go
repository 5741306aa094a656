package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger wraps slog.Logger. Every record carries a component attribute.
type Logger struct {
	*slog.Logger
	root *slog.Logger
}

// Config selects the handler used by Setup.
type Config struct {
	Level     string
	Format    string
	Component string
}

// New wraps a handler into a Logger tagged with component.
func New(handler slog.Handler, component string) *Logger {
	root := slog.New(handler)
	return &Logger{
		Logger: root.With(FieldComponent, component),
		root:   root,
	}
}

// Setup builds a text or JSON logger writing to w.
func Setup(cfg Config, w io.Writer) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	component := cfg.Component
	if component == "" {
		component = ComponentApp
	}
	return New(handler, component), nil
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New(slog.NewTextHandler(io.Discard, nil), ComponentApp)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// With returns a new logger with the given attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
		root:   l.root,
	}
}

// WithComponent returns a new logger with a specific component name.
// Attributes added with With are not carried over.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.root.With(FieldComponent, component),
		root:   l.root,
	}
}

// SetDefault installs l as the process-wide slog default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
