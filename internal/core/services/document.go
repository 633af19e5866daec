package services

import (
	"context"
	"fmt"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driving"
)

var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes previously analysed documents.
type DocumentService struct {
	store driven.DocumentStore
}

// NewDocumentService creates a document service over the given store.
func NewDocumentService(store driven.DocumentStore) *DocumentService {
	return &DocumentService{store: store}
}

// List returns all analysed documents, most recent first.
func (s *DocumentService) List(ctx context.Context) ([]domain.AnalyzedDocument, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.AnalyzedDocument, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}
