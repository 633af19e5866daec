package services

import (
	"fmt"
	"time"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driving"
)

var _ driving.SettingsService = (*SettingsService)(nil)

// Configuration keys.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMRequestTimeout = "llm.request_timeout_seconds"

	chunkSizeKeyPrefix = "analysis.chunk_size."

	keySmallDocThreshold = "analysis.small_document_threshold"
	keyCombineBudget     = "analysis.combine_budget"
	keyMaxRetries        = "analysis.max_retries"
	keyRetryDelaySecs    = "analysis.retry_delay_seconds"
	keyDocTimeoutSecs    = "analysis.document_timeout_seconds"
)

// SettingsService reads and writes application settings through the
// configuration store.
type SettingsService struct {
	config driven.ConfigStore
}

// NewSettingsService creates a settings service backed by the given store.
func NewSettingsService(config driven.ConfigStore) *SettingsService {
	return &SettingsService{config: config}
}

// LLM returns the configured analysis provider settings.
func (s *SettingsService) LLM() (*domain.LLMSettings, error) {
	provider := domain.AIProvider(s.config.GetString(keyLLMProvider))
	if provider == "" {
		provider = domain.AIProviderOllama
	}

	model := s.config.GetString(keyLLMModel)
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	timeout := domain.DefaultRequestTimeout
	if secs := s.config.GetInt(keyLLMRequestTimeout); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	return &domain.LLMSettings{
		Provider:       provider,
		Model:          model,
		APIKey:         s.config.GetString(keyLLMAPIKey),
		BaseURL:        s.config.GetString(keyLLMBaseURL),
		RequestTimeout: timeout,
	}, nil
}

// SetLLMProvider configures the analysis provider. Empty model, API
// key, and base URL values leave the stored ones untouched.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey, baseURL string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}

	if err := s.config.Set(keyLLMProvider, provider.String()); err != nil {
		return fmt.Errorf("failed to set provider: %w", err)
	}
	if model != "" {
		if err := s.config.Set(keyLLMModel, model); err != nil {
			return fmt.Errorf("failed to set model: %w", err)
		}
	}
	if apiKey != "" {
		if err := s.config.Set(keyLLMAPIKey, apiKey); err != nil {
			return fmt.Errorf("failed to set API key: %w", err)
		}
	}
	if baseURL != "" {
		if err := s.config.Set(keyLLMBaseURL, baseURL); err != nil {
			return fmt.Errorf("failed to set base URL: %w", err)
		}
	}
	return nil
}

// Analysis returns the pipeline tuning settings, with stored overrides
// applied on top of the defaults.
func (s *SettingsService) Analysis() domain.AnalysisSettings {
	settings := domain.DefaultAnalysisSettings()

	for _, format := range []domain.SourceFormat{
		domain.FormatPlainText,
		domain.FormatPaginatedBinary,
		domain.FormatOfficeXML,
		domain.FormatUnknown,
	} {
		if size := s.config.GetInt(chunkSizeKeyPrefix + format.String()); size > 0 {
			settings.ChunkSizes[format] = size
		}
	}

	if v := s.config.GetInt(keySmallDocThreshold); v > 0 {
		settings.SmallDocumentThreshold = v
	}
	if v := s.config.GetInt(keyCombineBudget); v > 0 {
		settings.CombineBudget = v
	}
	if v := s.config.GetInt(keyMaxRetries); v > 0 {
		settings.MaxRetries = v
	}
	if v := s.config.GetInt(keyRetryDelaySecs); v > 0 {
		settings.RetryDelay = time.Duration(v) * time.Second
	}
	if v := s.config.GetInt(keyDocTimeoutSecs); v > 0 {
		settings.DocumentTimeout = time.Duration(v) * time.Second
	}
	return settings
}

// SetChunkSize overrides the maximum chunk size for a format.
func (s *SettingsService) SetChunkSize(format domain.SourceFormat, size int) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
	}
	if size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", domain.ErrInvalidInput)
	}
	if err := s.config.Set(chunkSizeKeyPrefix+format.String(), size); err != nil {
		return fmt.Errorf("failed to set chunk size: %w", err)
	}
	return nil
}

// Validate checks the current settings are usable for analysis.
func (s *SettingsService) Validate() error {
	llm, err := s.LLM()
	if err != nil {
		return err
	}
	if err := llm.Validate(); err != nil {
		return fmt.Errorf("provider %s: %w", llm.Provider, err)
	}
	return nil
}
