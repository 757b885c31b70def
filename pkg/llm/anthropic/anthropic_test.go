package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

func TestLLMProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-sonnet", req["model"])
		assert.NotZero(t, req["max_tokens"])

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "thinking", "text": ""},
				{"type": "text", "text": "hold"},
			},
		})
	}))
	t.Cleanup(server.Close)

	provider, err := NewLLMProvider(types.Settings{
		"deep_think_llm":    "claude-sonnet",
		"backend_url":       server.URL,
		"anthropic_api_key": "secret",
	})
	require.NoError(t, err)

	model, err := provider.DeepThinkingModel()
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet", model.ModelID())

	reply, err := model.Generate(context.Background(), "advice?")
	require.NoError(t, err)
	assert.Equal(t, "hold", reply)
}

func TestLLMProvider_MissingModelSetting(t *testing.T) {
	provider, err := NewLLMProvider(types.Settings{})
	require.NoError(t, err)

	_, err = provider.DeepThinkingModel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deep_think_llm")
}

func TestLLMProvider_Name(t *testing.T) {
	provider, err := NewLLMProvider(types.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", provider.ProviderName())
}

func TestEmbeddingProvider_DelegatesToOpenAI(t *testing.T) {
	provider, err := NewEmbeddingProvider(types.Settings{})
	require.NoError(t, err)

	assert.Equal(t, "anthropic", provider.ProviderName())
	assert.Equal(t, "openai-fallback-text-embedding-3-small", provider.EmbeddingModelName())
}

func TestEmbeddingProvider_ForwardsBackendOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float64{1, 2}}},
		})
	}))
	t.Cleanup(server.Close)

	provider, err := NewEmbeddingProvider(types.Settings{"backend_url": server.URL})
	require.NoError(t, err)

	vector, err := provider.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vector)
}
