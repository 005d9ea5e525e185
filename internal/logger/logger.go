package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"patchenv/internal/console"

	"github.com/charmbracelet/x/ansi"
	"github.com/lmittmann/tint"
)

// Custom log levels, NOTICE sits where slog puts INFO
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
)

const timeFormat = "2006-01-02 15:04:05"

// LevelVar allows dynamic changing of the log level
var LevelVar = new(slog.LevelVar)
var FileLevelVar = new(slog.LevelVar)

var (
	logFileMu sync.Mutex
	logFile   *os.File
)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel sets the console level. The file level follows it down but
// never records less than INFO.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

// ParseLevel maps a level name from the config file or flags to a level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "", "notice":
		return LevelNotice, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelNotice, fmt.Errorf("unknown log level %q", name)
}

// levelLabel renders a level as a fixed width bracketed tag.
func levelLabel(level slog.Level) string {
	switch level {
	case LevelTrace:
		return "[TRACE ]"
	case LevelDebug:
		return "[DEBUG ]"
	case LevelInfo:
		return "[INFO  ]"
	case LevelNotice:
		return "[NOTICE]"
	case LevelWarn:
		return "[WARN  ]"
	case LevelError:
		return "[ERROR ]"
	default:
		return "[" + level.String() + "]"
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= LevelError:
		return console.CodeRed
	case level >= LevelWarn:
		return console.CodeYellow
	case level == LevelNotice:
		return console.CodeGreen
	default:
		return console.CodeBlue
	}
}

// NewConsoleHandler returns the handler used for the console. Colours are
// used only when w is a terminal and NO_COLOR is unset.
func NewConsoleHandler(w io.Writer) slog.Handler {
	color := console.ColorEnabled(w)

	replaceAttr := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.LevelKey || len(groups) != 0 {
			return a
		}
		if level, ok := a.Value.Any().(slog.Level); ok {
			label := levelLabel(level)
			if color {
				label = levelColor(level) + label + console.CodeReset
			}
			a.Value = slog.StringValue(label)
		}
		return a
	}

	return tint.NewHandler(w, &tint.Options{
		Level:       LevelVar,
		TimeFormat:  timeFormat,
		NoColor:     !color,
		ReplaceAttr: replaceAttr,
	})
}

// NewFileHandler returns the handler used for the log file. Messages are
// stripped of ANSI sequences.
func NewFileHandler(w io.Writer) slog.Handler {
	replaceAttr := func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) != 0 {
			return a
		}
		switch a.Key {
		case slog.LevelKey:
			if level, ok := a.Value.Any().(slog.Level); ok {
				a.Value = slog.StringValue(levelLabel(level))
			}
		case slog.MessageKey:
			a.Value = slog.StringValue(ansi.Strip(a.Value.String()))
		}
		return a
	}

	return tint.NewHandler(w, &tint.Options{
		Level:       FileLevelVar,
		TimeFormat:  timeFormat,
		NoColor:     true,
		ReplaceAttr: replaceAttr,
	})
}

// NewLogger builds a logger writing to stderr, and additionally appending
// to logFilePath when it is not empty. A log file that cannot be opened is
// reported on stderr and skipped.
func NewLogger(stderr io.Writer, logFilePath string) *slog.Logger {
	handlers := []slog.Handler{NewConsoleHandler(stderr)}

	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
		} else {
			logFileMu.Lock()
			if logFile != nil {
				_ = logFile.Close()
			}
			logFile = f
			logFileMu.Unlock()
			handlers = append(handlers, NewFileHandler(f))
		}
	}

	return slog.New(&FanoutHandler{handlers: handlers})
}

// Cleanup closes the log file opened by NewLogger, if any.
func Cleanup() {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// log formats msg with args when it carries format verbs, and emits one
// record per line.
func log(ctx context.Context, level slog.Level, msg string, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	if len(args) > 0 && strings.Contains(msg, "%") {
		msg = fmt.Sprintf(msg, args...)
		args = nil
	}

	now := time.Now()
	for i, line := range strings.Split(msg, "\n") {
		r := slog.NewRecord(now, level, line, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

func Trace(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelError, msg, args...)
}
