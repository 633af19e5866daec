package driving

import (
	"context"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

// ProgressStage identifies where in the pipeline a progress event occurred.
type ProgressStage string

// Pipeline stages, in order.
const (
	StageExtracting ProgressStage = "extracting"
	StageChunking   ProgressStage = "chunking"
	StageAnalyzing  ProgressStage = "analyzing"
	StageCombining  ProgressStage = "combining"
	StageDone       ProgressStage = "done"
)

// ProgressEvent reports pipeline progress at chunk and combination
// boundaries. Percent is monotonically non-decreasing within one run.
type ProgressEvent struct {
	// Stage is the current pipeline stage.
	Stage ProgressStage

	// Percent is the overall completion, 0..100.
	Percent int

	// Message is a human-readable status line.
	Message string
}

// ProgressFunc receives progress events. Implementations must be fast;
// the pipeline calls it synchronously between chunks. A nil ProgressFunc
// disables progress reporting.
type ProgressFunc func(ProgressEvent)

// AnalysisService runs the document ingestion and analysis pipeline.
type AnalysisService interface {
	// Analyze extracts, chunks, analyses, and combines one document.
	//
	// The returned document always has Processed set; terminal failures
	// embed their explanation in the Summary field rather than leaving
	// the document stuck unprocessed. The error return is non-nil only
	// when no usable result could be fabricated (extraction failure,
	// first-chunk failure, timeout after retries).
	//
	// A second call for a document id still in flight returns
	// domain.ErrAnalysisInProgress.
	Analyze(ctx context.Context, raw *domain.RawDocument, progress ProgressFunc) (*domain.AnalyzedDocument, error)
}

// DocumentService manages previously analysed documents.
type DocumentService interface {
	// List returns all analysed documents, most recent first.
	List(ctx context.Context) ([]domain.AnalyzedDocument, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.AnalyzedDocument, error)

	// Delete removes a document.
	Delete(ctx context.Context, id string) error
}
