package llm

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// countingCompletion records call counts for each method.
type countingCompletion struct {
	classify int32
	generate int32
	synth    int32
	store    driven.PromptStore
}

func (c *countingCompletion) ClassifyRoute(ctx context.Context, question string) (string, error) {
	atomic.AddInt32(&c.classify, 1)
	return "sql", nil
}

func (c *countingCompletion) GenerateQuery(ctx context.Context, question, schema, queryContext string) (string, error) {
	atomic.AddInt32(&c.generate, 1)
	return "SELECT 1", nil
}

func (c *countingCompletion) Synthesize(ctx context.Context, req driven.SynthesisRequest) (driven.SynthesisResult, error) {
	atomic.AddInt32(&c.synth, 1)
	return driven.SynthesisResult{Answer: "1"}, nil
}

func (c *countingCompletion) ModelName() string { return "counting" }

func (c *countingCompletion) Ping(ctx context.Context) error { return nil }

func (c *countingCompletion) Close() error { return nil }

func (c *countingCompletion) SetPromptStore(store driven.PromptStore) { c.store = store }

func TestNewRateLimited_ZeroRateReturnsUnwrapped(t *testing.T) {
	inner := &countingCompletion{}
	assert.Same(t, driven.CompletionService(inner), NewRateLimited(inner, 0))
	assert.Same(t, driven.CompletionService(inner), NewRateLimited(inner, -1))
}

func TestRateLimited_Delegates(t *testing.T) {
	inner := &countingCompletion{}
	limited := NewRateLimited(inner, 100)
	ctx := context.Background()

	route, err := limited.ClassifyRoute(ctx, "how many orders?")
	require.NoError(t, err)
	assert.Equal(t, "sql", route)

	sql, err := limited.GenerateQuery(ctx, "q", "schema", "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", sql)

	result, err := limited.Synthesize(ctx, driven.SynthesisRequest{Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "1", result.Answer)

	assert.Equal(t, int32(1), inner.classify)
	assert.Equal(t, int32(1), inner.generate)
	assert.Equal(t, int32(1), inner.synth)
	assert.Equal(t, "counting", limited.ModelName())
	assert.NoError(t, limited.Ping(ctx))
	assert.NoError(t, limited.Close())
}

func TestRateLimited_CancelledContextStopsWaiting(t *testing.T) {
	inner := &countingCompletion{}
	// 1 request per minute with the burst already spent forces a wait.
	limited := NewRateLimited(inner, 1.0/60.0)

	ctx := context.Background()
	for i := 0; i < DefaultBurstSize; i++ {
		_, err := limited.ClassifyRoute(ctx, "warm up")
		require.NoError(t, err)
	}

	cancelled, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()

	_, err := limited.ClassifyRoute(cancelled, "blocked")
	assert.Error(t, err)
	assert.Equal(t, int32(DefaultBurstSize), inner.classify)
}

func TestRateLimited_ForwardsPromptStore(t *testing.T) {
	inner := &countingCompletion{}
	limited := NewRateLimited(inner, 10)

	store := &stubPromptStore{}
	limited.(driven.PromptStoreAware).SetPromptStore(store)
	assert.Same(t, driven.PromptStore(store), inner.store)
}
