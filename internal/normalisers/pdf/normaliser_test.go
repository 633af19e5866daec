package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedFormats(t *testing.T) {
	formats := New().SupportedFormats()

	require.Len(t, formats, 1)
	assert.Equal(t, domain.FormatPaginatedBinary, formats[0])
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_CorruptFile(t *testing.T) {
	normaliser := New()

	raw := &domain.RawDocument{
		ID:           "doc-1",
		Name:         "corrompido.pdf",
		SourceFormat: domain.FormatPaginatedBinary,
		Content:      []byte("definitely not a pdf"),
	}

	_, err := normaliser.Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestNormalise_EmptyFile(t *testing.T) {
	normaliser := New()

	raw := &domain.RawDocument{
		ID:           "doc-1",
		SourceFormat: domain.FormatPaginatedBinary,
		Content:      nil,
	}

	_, err := normaliser.Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestNormalise_TruncatedHeader(t *testing.T) {
	normaliser := New()

	// A valid magic header with nothing behind it must surface as an
	// extraction failure, not a panic.
	raw := &domain.RawDocument{
		ID:           "doc-1",
		SourceFormat: domain.FormatPaginatedBinary,
		Content:      []byte("%PDF-1.7\n"),
	}

	_, err := normaliser.Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
