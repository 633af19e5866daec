package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/parecer-labs/parecer-cli/internal/chunker"
	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driving"
	"github.com/parecer-labs/parecer-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// Highlight merge caps: at most two highlights survive from each chunk,
// and at most five in the combined result.
const (
	maxHighlightsPerChunk = 2
	maxHighlightsTotal    = 5
)

// AnalysisService orchestrates the document ingestion pipeline:
// extraction, chunking, per-chunk analysis, and result combination.
type AnalysisService struct {
	registry driven.NormaliserRegistry
	llm      driven.LLMService
	store    driven.DocumentStore
	settings domain.AnalysisSettings
	retry    retryPolicy

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewAnalysisService creates the pipeline orchestrator. The settings
// object is fixed for the lifetime of the service, so multiple
// documents can be processed with different configurations by
// constructing separate instances.
func NewAnalysisService(
	registry driven.NormaliserRegistry,
	llm driven.LLMService,
	store driven.DocumentStore,
	settings domain.AnalysisSettings,
) *AnalysisService {
	return &AnalysisService{
		registry: registry,
		llm:      llm,
		store:    store,
		settings: settings,
		retry: retryPolicy{
			maxRetries: settings.MaxRetries,
			delay:      settings.RetryDelay,
		},
		inFlight: make(map[string]bool),
	}
}

// Analyze runs the full pipeline for one document.
func (s *AnalysisService) Analyze(ctx context.Context, raw *domain.RawDocument, progress driving.ProgressFunc) (*domain.AnalyzedDocument, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	if !s.acquire(raw.ID) {
		return nil, domain.ErrAnalysisInProgress
	}
	defer s.release(raw.ID)

	if s.settings.DocumentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.DocumentTimeout)
		defer cancel()
	}

	doc := newAnalyzedDocument(raw)
	if s.store != nil {
		if err := s.store.Save(ctx, doc); err != nil {
			logger.Warn("analysis: failed to save initial document entry: %v", err)
		}
	}

	reporter := newProgressReporter(progress)
	outcome := s.run(ctx, raw, reporter)
	s.applyOutcome(doc, outcome)
	reporter.report(driving.StageDone, 100, "Análise concluída")

	if s.store != nil {
		if err := s.store.Replace(ctx, doc); err != nil {
			logger.Warn("analysis: failed to persist result for %s: %v", doc.ID, err)
		}
	}

	if outcome.Kind == domain.OutcomeFailed {
		return doc, outcome.Err
	}
	return doc, nil
}

// run executes extraction through combination and classifies the result.
func (s *AnalysisService) run(ctx context.Context, raw *domain.RawDocument, reporter *progressReporter) domain.AnalysisOutcome {
	reporter.report(driving.StageExtracting, 5, fmt.Sprintf("Extraindo texto de %s", raw.Name))

	extracted, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return domain.AnalysisOutcome{Kind: domain.OutcomeFailed, Err: err}
	}

	if extracted.Unreadable || extracted.BinaryArtifact {
		return domain.AnalysisOutcome{
			Kind:     domain.OutcomeUnreadable,
			Err:      domain.ErrUnreadableContent,
			Warnings: extracted.Warnings,
		}
	}

	text := strings.TrimSpace(extracted.Text)
	if len(text) < s.settings.SmallDocumentThreshold {
		return s.runSmall(ctx, text, reporter)
	}
	return s.runChunked(ctx, raw, text, reporter, extracted.Warnings)
}

// runSmall analyses the whole text in one call, skipping chunking.
func (s *AnalysisService) runSmall(ctx context.Context, text string, reporter *progressReporter) domain.AnalysisOutcome {
	reporter.report(driving.StageAnalyzing, 20, "Analisando documento")

	analysis, err := s.analyzeChunkWithRetry(ctx, text)
	if err != nil {
		return domain.AnalysisOutcome{
			Kind: domain.OutcomeFailed,
			Err:  fmt.Errorf("%w: %w", domain.ErrChunkAnalysisFailed, err),
		}
	}

	reporter.report(driving.StageCombining, 90, "Montando resultado")
	return domain.AnalysisOutcome{Kind: domain.OutcomeSuccess, Result: analysis}
}

// runChunked splits the text and analyses each chunk sequentially.
// Sequential calls bound the load on the analysis endpoint and allow
// early termination when the first chunk fails.
func (s *AnalysisService) runChunked(ctx context.Context, raw *domain.RawDocument, text string, reporter *progressReporter, warnings []string) domain.AnalysisOutcome {
	reporter.report(driving.StageChunking, 10, "Dividindo documento em partes")

	splitter := chunker.New(chunker.WithMaxChunkSize(s.settings.ChunkSizeFor(raw.SourceFormat)))
	chunks := splitter.Split(raw.ID, text)
	if len(chunks) == 0 {
		return domain.AnalysisOutcome{
			Kind: domain.OutcomeFailed,
			Err:  fmt.Errorf("%w: no chunks produced", domain.ErrExtractionFailed),
		}
	}

	logger.Info("analysis: document %s split into %d chunks", raw.ID, len(chunks))

	var analyses []domain.ChunkAnalysis
	for i, chunk := range chunks {
		reporter.report(driving.StageAnalyzing,
			10+(i*80)/len(chunks),
			fmt.Sprintf("Analisando parte %d de %d", i+1, len(chunks)))

		analysis, err := s.analyzeChunkWithRetry(ctx, chunk.Text)
		if err != nil {
			if i == 0 {
				// No partial result is possible without the first chunk.
				return domain.AnalysisOutcome{
					Kind: domain.OutcomeFailed,
					Err:  fmt.Errorf("%w: %w", domain.ErrChunkAnalysisFailed, err),
				}
			}
			logger.Warn("analysis: chunk %d of %d failed, combining the %d completed parts: %v",
				i+1, len(chunks), len(analyses), err)
			warnings = append(warnings,
				fmt.Sprintf("a análise foi interrompida na parte %d de %d", i+1, len(chunks)))
			break
		}
		analyses = append(analyses, *analysis)
	}

	reporter.report(driving.StageCombining, 90, "Combinando resultados")
	combined := s.combine(ctx, analyses)

	if len(analyses) < len(chunks) {
		return domain.AnalysisOutcome{
			Kind:     domain.OutcomePartial,
			Result:   combined,
			Warnings: warnings,
		}
	}
	return domain.AnalysisOutcome{
		Kind:     domain.OutcomeSuccess,
		Result:   combined,
		Warnings: warnings,
	}
}

// analyzeChunkWithRetry calls the analysis endpoint through the bounded
// retry loop.
func (s *AnalysisService) analyzeChunkWithRetry(ctx context.Context, text string) (*domain.ChunkAnalysis, error) {
	var analysis *domain.ChunkAnalysis
	err := s.retry.do(ctx, func(ctx context.Context) error {
		var err error
		analysis, err = s.analyzeChunk(ctx, text)
		return err
	})
	return analysis, err
}

// analyzeChunk sends one chunk to the model and parses the response
// into a structured analysis.
func (s *AnalysisService) analyzeChunk(ctx context.Context, text string) (*domain.ChunkAnalysis, error) {
	prompt := fmt.Sprintf(analysisPrompt, text)

	response, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   1500,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	parsed := ParseAnalysisResult(response)
	return &domain.ChunkAnalysis{
		Summary:    parsed.Summary,
		KeyPoints:  parsed.KeyPoints,
		Highlights: parseHighlights(response),
		Content:    text,
		Conclusion: parsed.Conclusion,
	}, nil
}

// combine merges the per-chunk analyses into one coherent result. With
// more than one part, the concatenated partial summaries are sent back
// to the model for consolidation; if that call fails the raw
// concatenation is used instead. Never fatal.
func (s *AnalysisService) combine(ctx context.Context, analyses []domain.ChunkAnalysis) *domain.ChunkAnalysis {
	if len(analyses) == 0 {
		return &domain.ChunkAnalysis{}
	}
	if len(analyses) == 1 {
		result := analyses[0]
		return &result
	}

	parts := make([]string, len(analyses))
	for i, a := range analyses {
		parts[i] = fmt.Sprintf("Parte %d: %s", i+1, a.Summary)
	}
	concatenated := strings.Join(parts, "\n\n")

	summary, err := s.consolidateSummary(ctx, concatenated)
	if err != nil {
		logger.Warn("analysis: %v, using raw concatenation", err)
		summary = concatenated
	}

	combined := &domain.ChunkAnalysis{
		Summary:    summary,
		KeyPoints:  dedupeKeyPoints(analyses),
		Highlights: mergeHighlights(analyses),
		Conclusion: lastConclusion(analyses),
	}

	var contents []string
	for _, a := range analyses {
		contents = append(contents, a.Content)
	}
	combined.Content = strings.Join(contents, "\n\n")
	return combined
}

// consolidateSummary issues the final consolidation call over the
// concatenated partial summaries, truncated to the configured budget.
func (s *AnalysisService) consolidateSummary(ctx context.Context, concatenated string) (string, error) {
	input := concatenated
	if budget := s.settings.CombineBudget; budget > 0 && len(input) > budget {
		input = input[:budget]
	}

	prompt := fmt.Sprintf(consolidationPrompt, input)
	response, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   800,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrCombinationFailed, err)
	}
	if strings.TrimSpace(response) == "" {
		return "", fmt.Errorf("%w: empty consolidation response", domain.ErrCombinationFailed)
	}
	return strings.TrimSpace(response), nil
}

// lastConclusion picks the final opinion from the analysed parts: the
// last one that is not the parser's placeholder.
func lastConclusion(analyses []domain.ChunkAnalysis) string {
	for i := len(analyses) - 1; i >= 0; i-- {
		if c := analyses[i].Conclusion; c != "" && c != SentinelConclusion {
			return c
		}
	}
	return ""
}

// dedupeKeyPoints merges key points from all analyses, dropping later
// duplicates by exact title match. First occurrence wins.
func dedupeKeyPoints(analyses []domain.ChunkAnalysis) []domain.KeyPoint {
	seen := make(map[string]bool)
	var points []domain.KeyPoint
	for _, a := range analyses {
		for _, kp := range a.KeyPoints {
			if seen[kp.Title] {
				continue
			}
			seen[kp.Title] = true
			points = append(points, kp)
		}
	}
	return points
}

// mergeHighlights takes at most two highlights from each chunk and caps
// the combined total at five.
func mergeHighlights(analyses []domain.ChunkAnalysis) []domain.Highlight {
	var merged []domain.Highlight
	for _, a := range analyses {
		take := a.Highlights
		if len(take) > maxHighlightsPerChunk {
			take = take[:maxHighlightsPerChunk]
		}
		merged = append(merged, take...)
	}
	if len(merged) > maxHighlightsTotal {
		merged = merged[:maxHighlightsTotal]
	}
	return merged
}

// applyOutcome maps the pipeline outcome onto the document. The
// document always leaves processed; failure detail is embedded in the
// summary so callers only ever poll the Processed flag.
func (s *AnalysisService) applyOutcome(doc *domain.AnalyzedDocument, outcome domain.AnalysisOutcome) {
	doc.Processed = true
	doc.AnalyzedAt = time.Now()

	switch outcome.Kind {
	case domain.OutcomeSuccess, domain.OutcomePartial:
		result := outcome.Result
		doc.Summary = result.Summary
		doc.KeyPoints = result.KeyPoints
		doc.Highlights = result.Highlights
		doc.Content = result.Content
		doc.Conclusion = result.Conclusion
		if outcome.Kind == domain.OutcomePartial && len(outcome.Warnings) > 0 {
			doc.Summary += "\n\nAviso: " + strings.Join(outcome.Warnings, "; ") + "."
		}
	case domain.OutcomeUnreadable:
		doc.Summary = "Não foi possível ler o conteúdo deste documento."
		if len(outcome.Warnings) > 0 {
			doc.Summary += " " + strings.Join(outcome.Warnings, "; ") + "."
		}
	case domain.OutcomeFailed:
		doc.Summary = failureSummary(outcome.Err)
	}

	if doc.Summary == "" {
		doc.Summary = SentinelSummary
	}
	if len(doc.KeyPoints) == 0 {
		doc.KeyPoints = []domain.KeyPoint{{
			Title:       SentinelKeyPointTitle,
			Description: SentinelKeyPointDescription,
		}}
	}
	if doc.Conclusion == "" {
		doc.Conclusion = SentinelConclusion
	}
	if doc.Content == "" {
		doc.Content = doc.Summary
	}
}

// failureSummary builds the user-facing explanation for a terminal
// failure. Authentication and rate-limit failures get specific
// messages; everything else gets a generic one with the cause.
func failureSummary(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		return "Falha de autenticação com o serviço de análise. Verifique a chave de API configurada."
	case errors.Is(err, domain.ErrRateLimited):
		return "O serviço de análise está temporariamente sobrecarregado (limite de requisições). Tente novamente em alguns minutos."
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, domain.ErrAnalysisTimeout):
		return "A análise excedeu o tempo limite e foi interrompida."
	case errors.Is(err, domain.ErrExtractionFailed):
		return fmt.Sprintf("Não foi possível extrair o texto do arquivo: %v.", err)
	default:
		return fmt.Sprintf("A análise falhou: %v.", err)
	}
}

// acquire marks a document id as in flight. Returns false when an
// analysis for the same id is already running.
func (s *AnalysisService) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[id] {
		return false
	}
	s.inFlight[id] = true
	return true
}

// release clears the in-flight mark.
func (s *AnalysisService) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// newAnalyzedDocument creates the unprocessed document entry for a run.
func newAnalyzedDocument(raw *domain.RawDocument) *domain.AnalyzedDocument {
	return &domain.AnalyzedDocument{
		ID:           raw.ID,
		Name:         raw.Name,
		SourceFormat: raw.SourceFormat,
		ByteSize:     raw.ByteSize,
		UploadedAt:   raw.UploadedAt,
	}
}

// progressReporter clamps progress events so the reported percentage
// never decreases within one run.
type progressReporter struct {
	fn   driving.ProgressFunc
	last int
}

func newProgressReporter(fn driving.ProgressFunc) *progressReporter {
	return &progressReporter{fn: fn}
}

func (r *progressReporter) report(stage driving.ProgressStage, percent int, message string) {
	if percent < r.last {
		percent = r.last
	}
	r.last = percent
	if r.fn != nil {
		r.fn(driving.ProgressEvent{Stage: stage, Percent: percent, Message: message})
	}
}
