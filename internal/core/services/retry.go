package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// retryablePatterns mark failures worth retrying: connection problems,
// network hiccups, and provider-side server errors.
var retryablePatterns = []string{
	"connection",
	"network",
	"timeout",
	"timed out",
	"temporarily",
	"unexpected EOF",
	"status 500",
	"status 502",
	"status 503",
	"status 504",
	"server error",
}

// isRetryable classifies an analysis failure. Authentication and
// rate-limit errors are never retried; connection, network, and
// server-side failures are.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrAuthFailed) || errors.Is(err, domain.ErrRateLimited) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range retryablePatterns {
		if strings.Contains(msg, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// retryPolicy is a bounded retry loop with a fixed delay between
// attempts. It lives entirely inside the orchestrator instead of being
// spread across callers.
type retryPolicy struct {
	maxRetries int
	delay      time.Duration
}

// do runs op, retrying retryable failures up to maxRetries times.
// Non-retryable failures and context cancellation return immediately.
func (p retryPolicy) do(ctx context.Context, op func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.delay):
			}
		}

		err = op(ctx)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
	}
	return err
}
