package ollama

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

func TestLLMProvider_ModelHandles(t *testing.T) {
	provider, err := NewLLMProvider(types.Settings{
		"deep_think_llm":  "llama3.1",
		"quick_think_llm": "llama3.1:8b",
	})
	require.NoError(t, err)

	deep, err := provider.DeepThinkingModel()
	require.NoError(t, err)
	assert.Equal(t, "llama3.1", deep.ModelID())

	quick, err := provider.QuickThinkingModel()
	require.NoError(t, err)
	assert.Equal(t, "llama3.1:8b", quick.ModelID())
}

func TestLLMProvider_MissingModelSetting(t *testing.T) {
	provider, err := NewLLMProvider(types.Settings{"quick_think_llm": "llama3.1"})
	require.NoError(t, err)

	_, err = provider.DeepThinkingModel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deep_think_llm")
}

func TestLLMProvider_Name(t *testing.T) {
	provider, err := NewLLMProvider(types.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "ollama", provider.ProviderName())
}

// The local default backend selects the local embedding model, and the name
// carries no fallback prefix since the server embeds natively.
func TestEmbeddingProvider_LocalModel(t *testing.T) {
	provider, err := NewEmbeddingProvider(types.Settings{})
	require.NoError(t, err)

	assert.Equal(t, "nomic-embed-text", provider.EmbeddingModelName())
	assert.Equal(t, "ollama", provider.ProviderName())
}

func TestEmbeddingProvider_ExplicitBackendKeepsHostedModel(t *testing.T) {
	provider, err := NewEmbeddingProvider(types.Settings{"backend_url": "https://example.com/v1"})
	require.NoError(t, err)

	assert.Equal(t, "text-embedding-3-small", provider.EmbeddingModelName())
}
