package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
	"github.com/parecer-labs/parecer-cli/internal/normalisers/scan"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser extracts text from PDF documents page by page.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFormats returns the source formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.SourceFormat {
	return []domain.SourceFormat{domain.FormatPaginatedBinary}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Format-specific normaliser
}

// Normalise decodes the PDF and joins per-page text with blank lines.
// Pages without text content are skipped. A document whose decoded text
// fails the readability heuristic is flagged unreadable rather than
// rejected; only an undecodable file is a hard failure.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	extracted := &domain.ExtractedText{DocumentID: raw.ID}

	text, warnings, err := extractText(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	extracted.Warnings = warnings

	text = scan.StripControl(text)
	extracted.Text = text

	if scan.IsBinaryArtifact(text) {
		extracted.BinaryArtifact = true
		extracted.Unreadable = true
		extracted.Text = ""
		extracted.Warnings = append(extracted.Warnings,
			"o conteúdo extraído ainda contém estrutura binária do PDF")
		return extracted, nil
	}

	if !scan.IsReadable(text) {
		extracted.Unreadable = true
		extracted.Text = ""
		extracted.Warnings = append(extracted.Warnings,
			"o PDF não contém texto legível; pode ser digitalizado sem OCR")
	}

	return extracted, nil
}

// extractText walks the document pages and accumulates their text,
// separated by blank lines. The pdf library panics on some corrupt
// files, so decoding runs under a recover that converts the panic into
// the extraction error.
func extractText(content []byte) (text string, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("corrupt PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, err
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("página %d ignorada: %v", i, err))
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			// Pages without text items are skipped, not an error.
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n\n"), warnings, nil
}
