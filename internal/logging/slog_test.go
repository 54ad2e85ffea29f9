package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "skip", "entry", "2025-06-01")
	log.Info(ctx, "upload", "phase", "upload")
	log.Warn(ctx, "image", "failures", 1)
	log.Error(ctx, "ping", "attempt", 2)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		kv    string
	}{
		{"DEBUG", "skip", "entry=2025-06-01"},
		{"INFO", "upload", "phase=upload"},
		{"WARN", "image", "failures=1"},
		{"ERROR", "ping", "attempt=2"},
	}

	for _, tc := range tests {
		require.Contains(t, out, "level="+tc.level)
		require.Contains(t, out, "msg="+tc.msg)
		require.Contains(t, out, tc.kv)
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("module", "sync", "user", "u1").Info(context.Background(), "started", "k", "v")

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=started", "module=sync", "user=u1", "k=v"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestNewJSONLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, slog.LevelInfo)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "shown", "n", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "shown", rec["msg"])
	require.EqualValues(t, 3, rec["n"])
}

func TestNewRotatingFileLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")

	log, closer, err := NewRotatingFileLogger(path, 1, slog.LevelDebug)
	require.NoError(t, err)

	log.Info(context.Background(), "hello", "module", "test")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
}

func TestNop_DiscardsAndChains(t *testing.T) {
	l := Nop().With("a", 1)
	ctx := context.TODO()
	l.Debug(ctx, "x")
	l.Info(ctx, "x")
	l.Warn(ctx, "x")
	l.Error(ctx, "x")
}
