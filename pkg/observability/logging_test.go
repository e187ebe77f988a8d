package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "Warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "", expected: slog.LevelInfo},
		{input: "xyzzy", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestInitLogger_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "warn", Format: "json", ServiceName: "credit-schedule-service", Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept", "credit_id", "c-1")

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "kept", recs[0]["msg"])
	assert.Equal(t, "credit-schedule-service", recs[0]["service"])
	assert.Equal(t, "c-1", recs[0]["credit_id"])
	assert.NotContains(t, recs[0], "trace_id")
}

func TestInitLogger_StampsSpanIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Format: "json", Output: &buf})

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x0a, 0x0b, 0x0c, 0x0d, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		SpanID:     trace.SpanID{1, 2, 3, 4, 5, 6, 7, 8},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.With("tenant_id", "t-1").InfoContext(ctx, "schedule computed")

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, sc.TraceID().String(), recs[0]["trace_id"])
	assert.Equal(t, "0102030405060708", recs[0]["span_id"])
	assert.Equal(t, "t-1", recs[0]["tenant_id"])
}

func TestInitLogger_TextByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "debug", Output: &buf})

	logger.Debug("debug msg", "periods", 12)

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "periods=12")
}

func TestInitLogger_SetsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Format: "json", ServiceName: "svc", Output: &buf})

	assert.Equal(t, logger.Handler(), slog.Default().Handler())
	slog.Info("via default")
	assert.Contains(t, buf.String(), `"service":"svc"`)
}
