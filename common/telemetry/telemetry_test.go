package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "test", "", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown(context.Background())

	_, span := GetTracer("test").Start(context.Background(), "noop")
	defer span.End()
	assert.False(t, span.SpanContext().IsValid())
}

func TestAttributes(t *testing.T) {
	assert.Equal(t, "job_1", String("job_id", "job_1").Value.AsString())
	assert.Equal(t, int64(3), Int("count", 3).Value.AsInt64())
}
