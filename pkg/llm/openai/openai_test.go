package openai

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

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestLLMProvider_ModelSelection(t *testing.T) {
	provider, err := NewLLMProvider(types.Settings{
		"deep_think_llm":  "o4-mini",
		"quick_think_llm": "gpt-4o-mini",
	})
	require.NoError(t, err)

	deep, err := provider.DeepThinkingModel()
	require.NoError(t, err)
	assert.Equal(t, "o4-mini", deep.ModelID())

	quick, err := provider.QuickThinkingModel()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", quick.ModelID())
}

func TestLLMProvider_FreshHandlePerCall(t *testing.T) {
	provider, err := NewLLMProvider(types.Settings{"deep_think_llm": "o4-mini"})
	require.NoError(t, err)

	first, err := provider.DeepThinkingModel()
	require.NoError(t, err)
	second, err := provider.DeepThinkingModel()
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.ModelID(), second.ModelID())
}

func TestLLMProvider_MissingModelSetting(t *testing.T) {
	provider, err := NewLLMProvider(types.Settings{"deep_think_llm": "o4-mini"})
	require.NoError(t, err)

	_, err = provider.QuickThinkingModel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quick_think_llm")
}

func TestChatModel_Generate(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "buy low, sell high"}},
			},
		})
	})

	model := NewChatModel("gpt-4o-mini", server.URL, "secret")
	reply, err := model.Generate(context.Background(), "advice?")
	require.NoError(t, err)
	assert.Equal(t, "buy low, sell high", reply)
}

func TestChatModel_Generate_NoChoices(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	model := NewChatModel("gpt-4o-mini", server.URL, "secret")
	_, err := model.Generate(context.Background(), "advice?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestEmbeddingProvider_ModelByBackend(t *testing.T) {
	hosted, err := NewEmbeddingProvider(types.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", hosted.EmbeddingModelName())

	local, err := NewEmbeddingProvider(types.Settings{"backend_url": LocalBackendURL})
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", local.EmbeddingModelName())

	other, err := NewEmbeddingProvider(types.Settings{"backend_url": "https://example.com/v1"})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", other.EmbeddingModelName())
}

func TestEmbeddingProvider_Embed(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req["model"])
		assert.Equal(t, "hello", req["input"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float64{0.1, 0.2, 0.3}},
			},
		})
	})

	provider, err := NewEmbeddingProvider(types.Settings{"backend_url": server.URL})
	require.NoError(t, err)

	vector, err := provider.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vector)
}

func TestEmbeddingProvider_Embed_EmptyData(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	provider, err := NewEmbeddingProvider(types.Settings{"backend_url": server.URL})
	require.NoError(t, err)

	_, err = provider.Embed(context.Background(), "hello")
	require.Error(t, err)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	assert.Equal(t, "configured", ResolveAPIKey("configured"))
	assert.Equal(t, "test-key", ResolveAPIKey(""))

	t.Setenv("OPENAI_API_KEY", "from-env")
	assert.Equal(t, "from-env", ResolveAPIKey(""))
	assert.Equal(t, "configured", ResolveAPIKey("configured"))
}

func TestProviderNames(t *testing.T) {
	llm, err := NewLLMProvider(types.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "openai", llm.ProviderName())

	embedding, err := NewEmbeddingProvider(types.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "openai", embedding.ProviderName())
}
