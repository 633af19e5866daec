package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/parecer-labs/parecer-cli/internal/adapters/driven/ai"
	"github.com/parecer-labs/parecer-cli/internal/adapters/driving/tui"
	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driving"
	"github.com/parecer-labs/parecer-cli/internal/core/services"
	"github.com/parecer-labs/parecer-cli/internal/logger"
	"github.com/parecer-labs/parecer-cli/internal/normalisers"
	"github.com/parecer-labs/parecer-cli/internal/normalisers/docx"
	"github.com/parecer-labs/parecer-cli/internal/normalisers/pdf"
	"github.com/parecer-labs/parecer-cli/internal/normalisers/plaintext"
)

// plainOutput disables the interactive progress view.
var plainOutput bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file...]",
	Short: "Analyse one or more documents",
	Long: `Runs each file through the analysis pipeline: text extraction,
chunking, per-chunk LLM analysis, and consolidation. Results are kept
in the local history; use 'parecer document list' to revisit them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print plain progress lines instead of the interactive view")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if settingsService == nil || docStore == nil {
		return errors.New("analysis services not configured")
	}

	svc, closeLLM, err := buildAnalysisService()
	if err != nil {
		return err
	}
	defer closeLLM()

	for _, path := range args {
		if err := analyzeFile(cmd, svc, path, !plainOutput); err != nil {
			return err
		}
	}

	return nil
}

// buildAnalysisService assembles the pipeline from the configured
// provider, the normaliser registry, and the document store.
func buildAnalysisService() (driving.AnalysisService, func(), error) {
	llmSettings, err := settingsService.LLM()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load provider settings: %w", err)
	}

	llmService, err := ai.CreateLLMService(llmSettings)
	if err != nil {
		return nil, nil, err
	}

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(pdf.New())
	registry.Register(docx.New())

	svc := services.NewAnalysisService(registry, llmService, docStore, settingsService.Analysis())

	closer := func() {
		if err := llmService.Close(); err != nil {
			logger.Debug("failed to close LLM service: %v", err)
		}
	}

	return svc, closer, nil
}

func analyzeFile(cmd *cobra.Command, svc driving.AnalysisService, path string, interactive bool) error {
	raw, err := loadRawDocument(path)
	if err != nil {
		return err
	}

	logger.Debug("analysing %s (%s, %d bytes)", raw.Name, raw.SourceFormat, raw.ByteSize)

	var doc *domain.AnalyzedDocument
	if interactive {
		doc, err = tui.RunAnalysis(cmd.Context(), svc, raw)
	} else {
		doc, err = svc.Analyze(cmd.Context(), raw, plainProgress(cmd))
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("analysis of %s canceled", raw.Name)
		}
		if doc != nil {
			// Terminal failures still record a document; show what we got.
			cmd.Println(tui.RenderDocument(doc))
		}
		return fmt.Errorf("analysis of %s failed: %w", raw.Name, err)
	}

	cmd.Println(tui.RenderDocument(doc))
	return nil
}

func plainProgress(cmd *cobra.Command) driving.ProgressFunc {
	return func(e driving.ProgressEvent) {
		cmd.Printf("[%3d%%] %s\n", e.Percent, e.Message)
	}
}

func loadRawDocument(path string) (*domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := filepath.Base(path)

	return &domain.RawDocument{
		ID:           uuid.NewString(),
		Name:         name,
		SourceFormat: domain.DetectFormat(name),
		Content:      content,
		ByteSize:     int64(len(content)),
		UploadedAt:   time.Now(),
	}, nil
}
