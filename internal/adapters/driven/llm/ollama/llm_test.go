package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

func newTestLLM(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewLLMService(LLMConfig{BaseURL: server.URL, Model: "test-llm"})
}

func TestGenerate(t *testing.T) {
	svc := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-llm", req.Model)
		assert.Equal(t, "the prompt", req.Prompt)
		assert.False(t, req.Stream)
		require.NotNil(t, req.Options)
		assert.InDelta(t, 0.2, req.Options.Temperature, 1e-9)

		json.NewEncoder(w).Encode(map[string]any{"response": "the answer", "done": true})
	})

	answer, err := svc.Generate(context.Background(), "the prompt",
		driven.GenerateOptions{Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, "the answer", answer)
}

func TestGenerateUnwrapsMessageEnvelope(t *testing.T) {
	svc := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]any{"content": "chat-style answer"},
			"done":    true,
		})
	})

	answer, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "chat-style answer", answer)
}

func TestGenerateOmitsOptionsWhenUnset(t *testing.T) {
	svc := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.NotContains(t, raw, "options")

		json.NewEncoder(w).Encode(map[string]any{"response": "ok", "done": true})
	})

	_, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	require.NoError(t, err)
}

func TestGenerateServerError(t *testing.T) {
	svc := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	})

	_, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	assert.ErrorContains(t, err, "status 500")
}

func TestLLMPing(t *testing.T) {
	svc := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestLLMModelNameDefaults(t *testing.T) {
	svc := NewLLMService(LLMConfig{})
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
}
