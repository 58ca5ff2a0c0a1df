package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetLevelIsShared(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	NewLogger("svc", "mod", "info")
	SetLevel("error")
	assert.Equal(t, slog.LevelError, level.Level())
}

func TestTraceHandlerInjectsIDs(t *testing.T) {
	var buf bytes.Buffer
	h := &TraceHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(h).With("k", "v")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "counted")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rec["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", rec["span_id"])
	assert.Equal(t, "v", rec["k"])
}

func TestFileOutput(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	path := filepath.Join(t.TempDir(), "app.log")
	l := NewFromConfig(Config{Service: "svc", Module: "test", Level: "debug", File: path, MaxSize: 1})
	l.Named("counter").Debug("hello", "n", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "svc", rec["service"])
	assert.Equal(t, "counter", rec["component"])
	assert.Contains(t, rec, "timestamp")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := newMultiHandler(slog.NewTextHandler(&a, nil), slog.NewTextHandler(&b, nil))
	slog.New(h).WithGroup("g").Info("x", "y", 1)

	assert.Contains(t, a.String(), "g.y=1")
	assert.Contains(t, b.String(), "g.y=1")
}
