package domain

import (
	"path/filepath"
	"strings"
)

// SourceFormat identifies the file format of an uploaded document.
type SourceFormat string

// Known source formats.
const (
	// FormatPlainText is raw UTF-8 text (txt, md).
	FormatPlainText SourceFormat = "plain-text"

	// FormatPaginatedBinary is a page-oriented binary format (PDF).
	FormatPaginatedBinary SourceFormat = "paginated-binary"

	// FormatOfficeXML is a zipped-XML office document (DOCX).
	FormatOfficeXML SourceFormat = "office-xml"

	// FormatUnknown is anything not recognised by extension.
	FormatUnknown SourceFormat = "unknown"
)

// Default maximum chunk sizes per format, in characters.
// These are tuning parameters, overridable via settings.
const (
	DefaultChunkSizePlainText       = 10000
	DefaultChunkSizePaginatedBinary = 6000
	DefaultChunkSizeOfficeXML       = 8000
	DefaultChunkSizeUnknown         = 3500
)

// IsValid returns true if the format is recognised.
func (f SourceFormat) IsValid() bool {
	switch f {
	case FormatPlainText, FormatPaginatedBinary, FormatOfficeXML, FormatUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f SourceFormat) String() string {
	return string(f)
}

// DefaultChunkSize returns the default maximum chunk size for this format.
func (f SourceFormat) DefaultChunkSize() int {
	switch f {
	case FormatPaginatedBinary:
		return DefaultChunkSizePaginatedBinary
	case FormatOfficeXML:
		return DefaultChunkSizeOfficeXML
	case FormatPlainText:
		return DefaultChunkSizePlainText
	default:
		return DefaultChunkSizeUnknown
	}
}

// DetectFormat infers the source format from a file name.
func DetectFormat(name string) SourceFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".text":
		return FormatPlainText
	case ".pdf":
		return FormatPaginatedBinary
	case ".docx":
		return FormatOfficeXML
	default:
		return FormatUnknown
	}
}
