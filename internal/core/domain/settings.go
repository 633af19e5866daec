package domain

import "time"

// AIProvider identifies an analysis service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true when the provider runs on the local machine.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable provider name.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI"
	case AIProviderAnthropic:
		return "Anthropic"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return string(p)
	}
}

// AllAIProviders lists the selectable providers, local first.
func AllAIProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels maps each provider to its default model.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-sonnet-4-5",
		AIProviderOllama:    "llama3.2",
	}
}

// LLMSettings configures the analysis provider.
type LLMSettings struct {
	// Provider selects the adapter.
	Provider AIProvider

	// Model is the provider-specific model name.
	Model string

	// APIKey is the opaque credential. The pipeline only checks it is
	// non-empty; format validation belongs to the provider adapter.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// RequestTimeout bounds each analysis call.
	RequestTimeout time.Duration
}

// Validate checks the settings are usable.
func (s *LLMSettings) Validate() error {
	if !s.Provider.IsValid() {
		return ErrInvalidInput
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return ErrAuthFailed
	}
	return nil
}

// Default pipeline tuning values.
const (
	// DefaultSmallDocumentThreshold is the text length below which
	// chunking is skipped entirely.
	DefaultSmallDocumentThreshold = 4000

	// DefaultCombineBudget caps the concatenated-summaries text sent
	// to the consolidation call.
	DefaultCombineBudget = 7500

	// DefaultMaxRetries is the retry cap for transient failures.
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the fixed delay between retries.
	DefaultRetryDelay = 3 * time.Second

	// DefaultRequestTimeout bounds a single analysis call.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultDocumentTimeout is the coarse per-document safety timeout.
	DefaultDocumentTimeout = 45 * time.Second
)

// AnalysisSettings tunes the ingestion pipeline. The zero value is not
// usable; construct with DefaultAnalysisSettings and override fields.
type AnalysisSettings struct {
	// ChunkSizes maps each source format to its maximum chunk size.
	// Missing formats fall back to the format default.
	ChunkSizes map[SourceFormat]int

	// SmallDocumentThreshold is the no-chunking text length cutoff.
	SmallDocumentThreshold int

	// CombineBudget caps the consolidation input length.
	CombineBudget int

	// MaxRetries bounds retries of transient failures.
	MaxRetries int

	// RetryDelay is the fixed pause between retries.
	RetryDelay time.Duration

	// DocumentTimeout aborts a whole document run.
	DocumentTimeout time.Duration
}

// DefaultAnalysisSettings returns the default pipeline tuning.
func DefaultAnalysisSettings() AnalysisSettings {
	return AnalysisSettings{
		ChunkSizes:             map[SourceFormat]int{},
		SmallDocumentThreshold: DefaultSmallDocumentThreshold,
		CombineBudget:          DefaultCombineBudget,
		MaxRetries:             DefaultMaxRetries,
		RetryDelay:             DefaultRetryDelay,
		DocumentTimeout:        DefaultDocumentTimeout,
	}
}

// ChunkSizeFor returns the configured chunk size for a format, falling
// back to the format default.
func (s AnalysisSettings) ChunkSizeFor(format SourceFormat) int {
	if size, ok := s.ChunkSizes[format]; ok && size > 0 {
		return size
	}
	return format.DefaultChunkSize()
}
