package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync/atomic"
	"time"

	"github.com/MatusOllah/slogcolor"
	"github.com/fatih/color"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(NewJSON(os.Stdout))
}

// NewJSON returns a logger writing one JSON object per line with ts/level/msg keys.
func NewJSON(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: renameCoreKeys,
	}))
}

// NewConsole returns a colored human-oriented logger for local development.
func NewConsole(w io.Writer) *slog.Logger {
	opts := slogcolor.DefaultOptions
	opts.Level = slog.LevelDebug
	opts.MsgColor = color.New(color.FgMagenta)
	opts.SrcFileMode = slogcolor.Nop
	return slog.New(slogcolor.NewHandler(w, opts))
}

// Setup selects the process logger for the given environment.
func Setup(env string) *slog.Logger {
	var l *slog.Logger
	if env == "dev" {
		l = NewConsole(os.Stderr)
	} else {
		l = NewJSON(os.Stdout)
	}
	SetLogger(l)
	return l
}

// SetLogger replaces the process logger. It also becomes slog's default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	current.Store(l)
	slog.SetDefault(l)
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	return current.Load()
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write(slog.LevelInfo, msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write(slog.LevelWarn, msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write(slog.LevelError, msg, fields)
}

func write(level slog.Level, msg string, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	Logger().LogAttrs(context.Background(), level, msg, attrs...)
}

func renameCoreKeys(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		a.Key = "ts"
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
		}
	case slog.LevelKey:
		a.Key = "level"
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelName(lvl))
		}
	case slog.MessageKey:
		a.Key = "msg"
	}
	return a
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warn"
	case l >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
