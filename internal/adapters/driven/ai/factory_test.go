package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parecer-labs/parecer-cli/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantErr  bool
	}{
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  true,
		},
		{
			name:     "unconfigured settings",
			settings: &domain.LLMSettings{},
			wantErr:  true,
		},
		{
			name: "ollama needs no key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				Model:    "llama3.2",
			},
			wantErr: false,
		},
		{
			name: "openai with key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
			},
			wantErr: false,
		},
		{
			name: "openai without key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantErr: true,
		},
		{
			name: "anthropic with key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			settings: &domain.LLMSettings{
				Provider: domain.AIProvider("gemini"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			defer svc.Close()
			assert.NotEmpty(t, svc.ModelName())
		})
	}
}

func TestCreateLLMServiceDefaultModels(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
	})
	require.NoError(t, err)
	defer svc.Close()
	assert.Equal(t, "llama3.2", svc.ModelName())
}
