package driving

import "github.com/parecer-labs/parecer-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// LLM returns the configured analysis provider settings.
	LLM() (*domain.LLMSettings, error)

	// SetLLMProvider configures the analysis provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey, baseURL string) error

	// Analysis returns the pipeline tuning settings.
	Analysis() domain.AnalysisSettings

	// SetChunkSize overrides the maximum chunk size for a format.
	SetChunkSize(format domain.SourceFormat, size int) error

	// Validate checks the current settings are usable for analysis.
	Validate() error
}
