package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitReconfiguresAfterEarlyUse(t *testing.T) {
	// A log call before Init falls back to the info-level default.
	Info("startup message before configuration")
	require.False(t, get().Enabled(context.Background(), slog.LevelDebug))

	// A later Init must still take effect, not be swallowed by the
	// earlier implicit default.
	Init("debug")
	require.True(t, get().Enabled(context.Background(), slog.LevelDebug))

	Init("error")
	require.False(t, get().Enabled(context.Background(), slog.LevelInfo))
	require.True(t, get().Enabled(context.Background(), slog.LevelError))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, []any{"error", "boom"}, normalize([]any{"boom"}))
	require.Equal(t, []any{"key", "value"}, normalize([]any{"key", "value"}))
	require.Empty(t, normalize(nil))
}
