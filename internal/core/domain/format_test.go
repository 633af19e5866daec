package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceFormat_IsValid(t *testing.T) {
	tests := []struct {
		format SourceFormat
		valid  bool
	}{
		{FormatPlainText, true},
		{FormatPaginatedBinary, true},
		{FormatOfficeXML, true},
		{FormatUnknown, true},
		{SourceFormat("spreadsheet"), false},
		{SourceFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.IsValid())
		})
	}
}

func TestSourceFormat_DefaultChunkSize(t *testing.T) {
	assert.Equal(t, DefaultChunkSizePaginatedBinary, FormatPaginatedBinary.DefaultChunkSize())
	assert.Equal(t, DefaultChunkSizeOfficeXML, FormatOfficeXML.DefaultChunkSize())
	assert.Equal(t, DefaultChunkSizePlainText, FormatPlainText.DefaultChunkSize())
	assert.Equal(t, DefaultChunkSizeUnknown, FormatUnknown.DefaultChunkSize())
	assert.Equal(t, DefaultChunkSizeUnknown, SourceFormat("bogus").DefaultChunkSize())
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want SourceFormat
	}{
		{"peticao.pdf", FormatPaginatedBinary},
		{"contrato.DOCX", FormatOfficeXML},
		{"notas.txt", FormatPlainText},
		{"README.md", FormatPlainText},
		{"planilha.xlsx", FormatUnknown},
		{"sem-extensao", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.name))
		})
	}
}
