// Package llm holds shared plumbing for the provider adapters:
// HTTP status classification and client-side rate limiting.
package llm

import (
	"fmt"
	"net/http"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// ClassifyStatus maps HTTP failures onto the domain error taxonomy.
// Auth and rate-limit failures carry their sentinel so the pipeline
// never retries them; other failures keep the status code in the
// message for retry classification.
func ClassifyStatus(provider string, status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("%s: %w", provider, domain.ErrAuthFailed)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", provider, domain.ErrRateLimited)
	default:
		return fmt.Errorf("%s: unexpected status %d: %s", provider, status, string(body))
	}
}
