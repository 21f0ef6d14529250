package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestNew_Format(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("generated", "year", 2025)
	assert.Contains(t, buf.String(), `"msg":"generated"`)
	assert.Contains(t, buf.String(), `"year":2025`)

	buf.Reset()
	New(&buf, "info", "text").Info("generated", "year", 2025)
	assert.Contains(t, buf.String(), "msg=generated year=2025")

	buf.Reset()
	New(&buf, "warn", "text").Info("hidden")
	assert.Empty(t, buf.String())
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))

	chiCtx := context.WithValue(ctx, middleware.RequestIDKey, "chi-123")
	assert.Equal(t, "chi-123", RequestID(chiCtx))

	assert.Equal(t, "own-456", RequestID(WithRequestID(chiCtx, "own-456")))
}

func TestFromContext_TagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&buf, "debug", "text"))
	defer slog.SetDefault(prev)

	ctx := WithRequestID(context.Background(), "req-1")
	Error(ctx, "save failed", errors.New("disk full"), "year", 2025)

	out := buf.String()
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, `error="disk full"`)
	assert.Contains(t, out, "year=2025")
}
