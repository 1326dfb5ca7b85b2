package llm

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// Ensure RateLimited implements the interfaces.
var (
	_ driven.CompletionService = (*RateLimited)(nil)
	_ driven.PromptStoreAware  = (*RateLimited)(nil)
)

// DefaultBurstSize is the token bucket burst for rate-limited services.
const DefaultBurstSize = 2

// RateLimited wraps a completion service with a token bucket so batch
// runs don't hammer a metered API. Each completion call waits for a
// token before delegating; Ping, ModelName and Close pass through.
type RateLimited struct {
	inner   driven.CompletionService
	limiter *rate.Limiter
}

// NewRateLimited wraps svc at the given sustained requests per second.
// A non-positive rate returns svc unwrapped.
func NewRateLimited(svc driven.CompletionService, requestsPerSecond float64) driven.CompletionService {
	if requestsPerSecond <= 0 {
		return svc
	}
	return &RateLimited{
		inner:   svc,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), DefaultBurstSize),
	}
}

// ClassifyRoute waits for a token, then delegates.
func (r *RateLimited) ClassifyRoute(ctx context.Context, question string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.ClassifyRoute(ctx, question)
}

// GenerateQuery waits for a token, then delegates.
func (r *RateLimited) GenerateQuery(ctx context.Context, question, schema, queryContext string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.GenerateQuery(ctx, question, schema, queryContext)
}

// Synthesize waits for a token, then delegates.
func (r *RateLimited) Synthesize(ctx context.Context, req driven.SynthesisRequest) (driven.SynthesisResult, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return driven.SynthesisResult{}, err
	}
	return r.inner.Synthesize(ctx, req)
}

// ModelName returns the wrapped service's model name.
func (r *RateLimited) ModelName() string {
	return r.inner.ModelName()
}

// SetPromptStore forwards the store to the wrapped service if it
// accepts one.
func (r *RateLimited) SetPromptStore(store driven.PromptStore) {
	if aware, ok := r.inner.(driven.PromptStoreAware); ok {
		aware.SetPromptStore(store)
	}
}

// Ping delegates without consuming a token.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Close closes the wrapped service.
func (r *RateLimited) Close() error {
	return r.inner.Close()
}
