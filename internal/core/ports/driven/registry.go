package driven

import (
	"context"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a document.
// It maintains a priority-ordered list of normalisers and dispatches
// based on source format.
type NormaliserRegistry interface {
	// Normalise extracts text using the best matching normaliser.
	// Returns domain.ErrUnsupportedFormat when no normaliser matches.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedFormats returns all formats that can be normalised.
	SupportedFormats() []domain.SourceFormat
}
