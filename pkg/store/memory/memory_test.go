package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatency_ZeroValueWaitsNothing(t *testing.T) {
	start := time.Now()
	err := Latency{}.Wait(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}

func TestLatency_WaitsWithinBounds(t *testing.T) {
	l := Latency{Min: 20 * time.Millisecond, Max: 40 * time.Millisecond}

	start := time.Now()
	err := l.Wait(context.Background())
	require.NoError(t, err)

	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.Less(t, elapsed, 200*time.Millisecond)
}

func TestLatency_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Latency{Min: time.Second, Max: time.Second}.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
