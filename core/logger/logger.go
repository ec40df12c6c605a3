package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu  sync.Mutex
	log *slog.Logger
)

// Init configures the process logger at the given level. It may be
// called again to reconfigure; messages logged before the first call
// go through an info-level default.
func Init(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	mu.Lock()
	defer mu.Unlock()
	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
}

func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return log
}

// normalize allows the common call shapes used across the codebase:
// Error("Repo:Method", err) and Error("Svc:Method", "key", value, ...).
// A lone trailing value is keyed as "error".
func normalize(args []any) []any {
	if len(args)%2 == 1 {
		return append([]any{"error"}, args...)
	}
	return args
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}
