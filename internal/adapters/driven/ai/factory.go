// Package ai provides factory functions for creating analysis provider adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/parecer-labs/parecer-cli/internal/adapters/driven/llm"
	anthropicllm "github.com/parecer-labs/parecer-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/parecer-labs/parecer-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/parecer-labs/parecer-cli/internal/adapters/driven/llm/openai"
	"github.com/parecer-labs/parecer-cli/internal/core/domain"
	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the appropriate LLM service based on settings,
// wrapped with client-side rate limiting.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	svc, err := createProvider(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return llm.NewRateLimited(svc, llm.DefaultRequestsPerMinute), nil
}

// CreateAndValidateLLMService creates an LLM service and validates
// connectivity before handing it to the pipeline.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'parecer settings provider' to fix",
			domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service
// and pinging it. Used by the settings commands to check credentials on
// configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// createProvider selects the adapter for the configured provider.
func createProvider(settings *domain.LLMSettings) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.RequestTimeout,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.RequestTimeout,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.RequestTimeout,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
