package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := WithContext(context.Background(), logger)
	assert.NotNil(t, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	// Should return a no-op logger, never nil
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("hello")
	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "req-123", logs[0].ContextMap()["request_id"])
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}
