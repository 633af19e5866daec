package driven

import (
	"context"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// Normaliser extracts analysable prose from raw document bytes.
// Each normaliser handles specific source formats (e.g., PDF, DOCX).
type Normaliser interface {
	// SupportedFormats returns the source formats this normaliser handles.
	SupportedFormats() []domain.SourceFormat

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts text from a raw document.
	//
	// The only hard failure is domain.ErrExtractionFailed (undecodable
	// bytes). Degraded conditions - unreadable content, binary
	// artifacts, empty pages - are reported through the ExtractedText
	// flags and warnings instead of an error.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error)
}
