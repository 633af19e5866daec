package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parecer-labs/parecer-cli/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewLLMService(LLMConfig{BaseURL: server.URL})
}

func TestGenerate(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultLLMModel, req.Model)
		assert.False(t, req.Stream)

		_ = json.NewEncoder(w).Encode(generateResponse{Response: "resposta", Done: true})
	})

	out, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{MaxTokens: 50})
	require.NoError(t, err)
	assert.Equal(t, "resposta", out)
}

func TestChat(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)

		_ = json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "ok"},
			Done:    true,
		})
	})

	out, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "instruções"},
		{Role: "user", Content: "pergunta"},
	}, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestGenerateServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, svc.Ping(context.Background()))
}
