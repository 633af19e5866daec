package driven

import (
	"context"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// DocumentStore persists analysed documents.
type DocumentStore interface {
	// Save stores a new document entry.
	Save(ctx context.Context, doc *domain.AnalyzedDocument) error

	// Replace swaps the stored entry for the document with the same ID.
	// This is the single mutate-in-place operation the pipeline uses
	// when a run completes.
	Replace(ctx context.Context, doc *domain.AnalyzedDocument) error

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.AnalyzedDocument, error)

	// List returns all stored documents, most recent first.
	List(ctx context.Context) ([]domain.AnalyzedDocument, error)

	// Delete removes a document.
	Delete(ctx context.Context, id string) error
}
