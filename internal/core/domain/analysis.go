package domain

// TextChunk is a bounded-size contiguous slice of normalised text.
// Index order is processing order is concatenation order.
type TextChunk struct {
	// Index is the 0-based, order-significant position.
	Index int

	// Text is the chunk content, trimmed.
	Text string

	// SourceDocumentID links to the originating document.
	SourceDocumentID string
}

// Importance ranks how relevant a highlight is.
type Importance string

// Highlight importance levels.
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// IsValid returns true if the importance level is recognised.
func (i Importance) IsValid() bool {
	switch i {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
		return true
	default:
		return false
	}
}

// Highlight is a notable passage surfaced by the analysis.
type Highlight struct {
	// Text is the highlighted passage.
	Text string

	// Page is the 1-based page number, 0 when unknown.
	Page int

	// Importance ranks the highlight.
	Importance Importance
}

// KeyPoint is a titled finding extracted from the document.
// Title is the deduplication key within a combined result.
type KeyPoint struct {
	Title       string
	Description string
}

// ChunkAnalysis is the structured result of analysing one chunk
// (or one whole small document). Transient.
type ChunkAnalysis struct {
	Summary    string
	Highlights []Highlight
	KeyPoints  []KeyPoint
	Content    string
	Conclusion string
}

// ParsedAnalysis is the structured form of free-text model output.
// Every field is guaranteed non-empty; sentinels substitute for
// anything the parser could not extract.
type ParsedAnalysis struct {
	Summary    string
	KeyPoints  []KeyPoint
	Conclusion string
}

// OutcomeKind discriminates AnalysisOutcome variants.
type OutcomeKind int

// Analysis outcome kinds.
const (
	// OutcomeSuccess means every chunk was analysed.
	OutcomeSuccess OutcomeKind = iota

	// OutcomePartial means a strict prefix of chunks succeeded.
	OutcomePartial

	// OutcomeUnreadable means extraction succeeded but the content
	// failed the readability heuristic.
	OutcomeUnreadable

	// OutcomeFailed means no usable result could be produced.
	OutcomeFailed
)

// AnalysisOutcome is the tagged result of one pipeline run, making the
// degrade-vs-fail decision explicit for callers.
type AnalysisOutcome struct {
	Kind OutcomeKind

	// Result is set for Success and Partial.
	Result *ChunkAnalysis

	// Warnings is set for Partial and Unreadable.
	Warnings []string

	// Err is set for Failed.
	Err error
}

// Usable returns true when the outcome carries an analysis result.
func (o AnalysisOutcome) Usable() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomePartial
}
