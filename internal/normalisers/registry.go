package normalisers

import (
	"context"
	"sort"
	"sync"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches documents to the highest-priority normaliser
// registered for their source format.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a normaliser, keeping the list sorted by priority
// (highest first).
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// Normalise extracts text using the best matching normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.normalisers {
		for _, format := range n.SupportedFormats() {
			if format == raw.SourceFormat {
				return n.Normalise(ctx, raw)
			}
		}
	}

	return nil, domain.ErrUnsupportedFormat
}

// SupportedFormats returns all formats that can be normalised.
func (r *Registry) SupportedFormats() []domain.SourceFormat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.SourceFormat]bool)
	var formats []domain.SourceFormat
	for _, n := range r.normalisers {
		for _, format := range n.SupportedFormats() {
			if !seen[format] {
				seen[format] = true
				formats = append(formats, format)
			}
		}
	}
	return formats
}
