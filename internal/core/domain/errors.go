package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates no normaliser handles the format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailed indicates the file bytes could not be decoded.
	// This is the normaliser's only hard failure; everything else
	// degrades into warnings.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrUnreadableContent indicates extraction succeeded syntactically
	// but the content failed the readability heuristic. Not fatal.
	ErrUnreadableContent = errors.New("unreadable content")

	// ErrChunkAnalysisFailed indicates the analysis call for a chunk
	// failed. Recoverable when at least one prior chunk succeeded.
	ErrChunkAnalysisFailed = errors.New("chunk analysis failed")

	// ErrCombinationFailed indicates the consolidation call over the
	// partial summaries failed. Never fatal; the raw concatenation is
	// used instead.
	ErrCombinationFailed = errors.New("combination failed")

	// ErrAnalysisTimeout indicates the per-document safety timeout fired.
	ErrAnalysisTimeout = errors.New("analysis timed out")

	// ErrAnalysisInProgress indicates an analysis for the same document
	// id is already in flight.
	ErrAnalysisInProgress = errors.New("analysis already in progress")

	// ErrAuthFailed indicates the analysis endpoint rejected the
	// credential. Never retried.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates the analysis endpoint rate limit was
	// exceeded. Never retried automatically.
	ErrRateLimited = errors.New("rate limited")

	// ErrLLMUnavailable indicates no analysis provider is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
