package llm

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.LLMService = (*RateLimited)(nil)

// DefaultRequestsPerMinute is a conservative client-side ceiling that
// keeps sequential chunk analysis under typical provider quotas.
const DefaultRequestsPerMinute = 30

// RateLimited wraps an LLMService with a client-side token bucket so
// chunked analysis of large documents does not trip provider quotas.
type RateLimited struct {
	inner   driven.LLMService
	limiter *rate.Limiter
}

// NewRateLimited wraps svc with a requests-per-minute ceiling.
// A non-positive limit falls back to DefaultRequestsPerMinute.
func NewRateLimited(svc driven.LLMService, requestsPerMinute int) *RateLimited {
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}
	return &RateLimited{
		inner:   svc,
		limiter: rate.NewLimiter(rate.Limit(requestsPerMinute)/60, 1),
	}
}

// Generate waits for a token, then delegates.
func (r *RateLimited) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Generate(ctx, prompt, opts)
}

// Chat waits for a token, then delegates.
func (r *RateLimited) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Chat(ctx, messages, opts)
}

// ModelName delegates to the wrapped service.
func (r *RateLimited) ModelName() string {
	return r.inner.ModelName()
}

// Ping delegates without consuming a token; it is a health check, not
// an inference call.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Close delegates to the wrapped service.
func (r *RateLimited) Close() error {
	return r.inner.Close()
}
