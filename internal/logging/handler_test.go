// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/aurras/marketplace/pkg/errutil"
)

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("marketplace", "1.0.0", "json", slog.LevelInfo, &buf)

	logger.Info("discovered plugins", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "Failed to parse JSON: %s", buf.String())

	assert.Equal(t, "discovered plugins", entry["msg"])
	assert.Equal(t, "marketplace", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.InDelta(t, 3, entry["count"], 0)
}

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("marketplace", "1.0.0", "text", slog.LevelInfo, &buf)

	logger.Warn("validation warnings")

	output := buf.String()
	assert.Contains(t, output, "validation warnings")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "service=marketplace")
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("marketplace", "dev", "text", slog.LevelWarn, &buf)

	logger.Info("validated plugin")
	assert.Empty(t, buf.String())

	logger.Error("schema validation failed")
	assert.Contains(t, buf.String(), "schema validation failed")
}

func TestHandler_TraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("marketplace", "1.0.0", "json", slog.LevelDebug, &buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.InfoContext(ctx, "traced message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry["span_id"])
}

func TestHandler_InvalidSpanContextIgnored(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("marketplace", "1.0.0", "json", slog.LevelInfo, &buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	ctx := trace.ContextWithSpanContext(context.Background(),
		trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID}))

	logger.InfoContext(ctx, "half a span")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "trace_id")
}

func TestHandler_NoTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("marketplace", "1.0.0", "json", slog.LevelInfo, &buf)

	logger.Info("no trace message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "trace_id")
	assert.NotContains(t, entry, "span_id")
}

func TestSetup_DefaultFormatIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("marketplace", "1.0.0", "", slog.LevelInfo, &buf)

	logger.Info("test message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "Default format should be JSON")
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("marketplace", "1.0.0", "json", slog.LevelInfo, &buf).
		With("run_id", "01J").
		WithGroup("plugin")

	logger.Info("validated plugin", "id", "foo")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "01J", entry["run_id"])
	assert.Equal(t, "marketplace", entry["service"], "service stays outside groups")
	group, ok := entry["plugin"].(map[string]any)
	require.True(t, ok, "expected plugin group in %v", entry)
	assert.Equal(t, "foo", group["id"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "LOG_LEVEL_INVALID")
}

func TestSetDefault(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	var buf bytes.Buffer
	logger := SetDefault("marketplace", "2.0.0", "json", slog.LevelInfo, &buf)

	assert.Same(t, logger, slog.Default())
}
