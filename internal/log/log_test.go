package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/product-api/internal/config"
	"github.com/tuanvumaihuynh/product-api/internal/log"
	"github.com/tuanvumaihuynh/product-api/pkg/correlationid"
)

func TestNew(t *testing.T) {
	t.Run("Should enrich json records with correlation id", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}, &buf)

		ctx := correlationid.NewContext(context.Background(), "corr-1")
		logger.InfoContext(ctx, "product created", slog.Int64("product_id", 1))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "product created", record["msg"])
		assert.Equal(t, "corr-1", record["correlation_id"])
		assert.EqualValues(t, 1, record["product_id"])
	})

	t.Run("Should respect level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(config.Log{Format: config.LogFormatText, Level: slog.LevelWarn}, &buf)

		logger.Info("dropped")
		assert.Empty(t, buf.String())

		logger.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})
}

func TestNewWithSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}, &buf)

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	logger.With(slog.String("service", "http")).InfoContext(ctx, "http request")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", record["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", record["span_id"])
	assert.Equal(t, "http", record["service"])
	assert.NotContains(t, record, "correlation_id")
}
