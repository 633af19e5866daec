package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.AnalyzedDocument
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.AnalyzedDocument),
	}
}

// Save stores a new document entry.
func (s *DocumentStore) Save(_ context.Context, doc *domain.AnalyzedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// Replace swaps the stored entry for the document with the same ID.
func (s *DocumentStore) Replace(_ context.Context, doc *domain.AnalyzedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[doc.ID]; !ok {
		return domain.ErrNotFound
	}
	s.documents[doc.ID] = *doc
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.AnalyzedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// List returns all stored documents, most recent first.
func (s *DocumentStore) List(_ context.Context) ([]domain.AnalyzedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.AnalyzedDocument, 0, len(s.documents))
	for id := range s.documents {
		result = append(result, s.documents[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result, nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}
