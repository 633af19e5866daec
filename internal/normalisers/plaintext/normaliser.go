package plaintext

import (
	"context"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
	"github.com/parecer-labs/parecer-cli/internal/normalisers/scan"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents. It also serves as the
// fallback for unknown formats.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFormats returns the source formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.SourceFormat {
	return []domain.SourceFormat{
		domain.FormatPlainText,
		domain.FormatUnknown,
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise reads the raw bytes as text. Already-clean text passes
// through unchanged; control characters are stripped otherwise.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text := scan.StripControl(string(raw.Content))

	extracted := &domain.ExtractedText{
		DocumentID: raw.ID,
		Text:       text,
	}

	if scan.IsBinaryArtifact(text) {
		extracted.BinaryArtifact = true
		extracted.Unreadable = true
		extracted.Text = ""
		extracted.Warnings = append(extracted.Warnings,
			"o arquivo parece conter dados binários em vez de texto")
		return extracted, nil
	}

	if !scan.IsReadable(text) {
		extracted.Unreadable = true
		extracted.Text = ""
		extracted.Warnings = append(extracted.Warnings,
			"não foi possível extrair texto legível do arquivo")
	}

	return extracted, nil
}
