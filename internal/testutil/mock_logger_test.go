package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)
	v, ok := messages[0].Field("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_DerivedLoggersShareBuffer(t *testing.T) {
	root := testutil.NewMockLogger()
	child := root.Named("analytics").With(logging.String("operation", "compute"))

	child.Warn("degraded", logging.String("resource_type", "opinion"))

	warns := root.MessagesAt("warn")
	require.Len(t, warns, 1)
	assert.Equal(t, "analytics", warns[0].Logger)
	op, _ := warns[0].Field("operation")
	rt, _ := warns[0].Field("resource_type")
	assert.Equal(t, "compute", op)
	assert.Equal(t, "opinion", rt)
}

var _ logging.Logger = (*testutil.MockLogger)(nil)
