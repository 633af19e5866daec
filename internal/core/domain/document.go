package domain

import "time"

// RawDocument represents an uploaded file before extraction.
// It is immutable once created.
type RawDocument struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the original file name.
	Name string

	// SourceFormat identifies the file format.
	SourceFormat SourceFormat

	// Content is the raw bytes.
	Content []byte

	// ByteSize is the size of Content in bytes.
	ByteSize int64

	// UploadedAt is when the document entered the pipeline.
	UploadedAt time.Time
}

// ExtractedText is the normaliser output for one RawDocument.
// It is transient: discarded after chunking.
type ExtractedText struct {
	// DocumentID links back to the RawDocument.
	DocumentID string

	// Text is the normalised prose.
	Text string

	// BinaryArtifact is true when the content looks like undecoded
	// binary structure rather than prose.
	BinaryArtifact bool

	// Unreadable is true when the text failed the readability heuristic.
	// Text is left empty in that case.
	Unreadable bool

	// Warnings records degraded-but-non-fatal extraction conditions.
	Warnings []string
}

// AnalyzedDocument is a RawDocument enriched with analysis results.
// It is owned by the caller; the pipeline returns a new value to merge in.
type AnalyzedDocument struct {
	// ID matches the RawDocument ID.
	ID string

	// Name is the original file name.
	Name string

	// SourceFormat identifies the file format.
	SourceFormat SourceFormat

	// ByteSize is the original file size in bytes.
	ByteSize int64

	// UploadedAt is when the document entered the pipeline.
	UploadedAt time.Time

	// Processed flips true exactly once, when analysis completes or
	// fails terminally. It is the only state a caller needs to poll.
	Processed bool

	// Summary is the combined document summary. Never empty once
	// Processed is true; failure detail is embedded here.
	Summary string

	// KeyPoints are the merged key points, deduplicated by title.
	KeyPoints []KeyPoint

	// Highlights are the merged highlights, capped.
	Highlights []Highlight

	// Content is the analysed text content.
	Content string

	// Conclusion is the final opinion section, when present.
	Conclusion string

	// AnalyzedAt is when analysis finished.
	AnalyzedAt time.Time
}
