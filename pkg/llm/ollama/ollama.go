// Package ollama implements the LLM and embedding contracts against a local
// Ollama server, which speaks the OpenAI-compatible API. Both capabilities
// reuse the OpenAI protocol implementation with a local backend URL.
package ollama

import (
	"context"
	"fmt"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm/openai"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// Config is the settings payload recognized by the Ollama provider.
type Config struct {
	DeepThinkLLM  string `mapstructure:"deep_think_llm"`
	QuickThinkLLM string `mapstructure:"quick_think_llm"`
	BackendURL    string `mapstructure:"backend_url"`
}

// OllamaLLMProvider builds chat model handles for a local Ollama server.
type OllamaLLMProvider struct {
	cfg Config
}

// NewLLMProvider constructs the provider from an opaque settings payload.
func NewLLMProvider(settings types.Settings) (*OllamaLLMProvider, error) {
	var c Config
	if err := settings.Decode(&c); err != nil {
		return nil, err
	}
	return &OllamaLLMProvider{cfg: c}, nil
}

// DeepThinkingModel returns a handle to the deep_think_llm model.
func (p *OllamaLLMProvider) DeepThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.DeepThinkLLM, "deep_think_llm")
}

// QuickThinkingModel returns a handle to the quick_think_llm model.
func (p *OllamaLLMProvider) QuickThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.QuickThinkLLM, "quick_think_llm")
}

// ProviderName returns the short diagnostic name, "ollama".
func (p *OllamaLLMProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}

func (p *OllamaLLMProvider) model(modelID, key string) (types.ChatModel, error) {
	if modelID == "" {
		return nil, fmt.Errorf("ollama: %s must be set", key)
	}
	backendURL := p.cfg.BackendURL
	if backendURL == "" {
		backendURL = openai.LocalBackendURL
	}
	// Local servers ignore the key; the placeholder keeps the protocol happy.
	return openai.NewChatModel(modelID, backendURL, "test-key"), nil
}

// OllamaEmbeddingProvider embeds text through the local server's
// OpenAI-compatible embeddings endpoint, using a local embedding model.
type OllamaEmbeddingProvider struct {
	inner *openai.OpenAIEmbeddingProvider
}

// NewEmbeddingProvider constructs the provider, defaulting the backend to
// the conventional local Ollama endpoint when none is configured.
func NewEmbeddingProvider(settings types.Settings) (*OllamaEmbeddingProvider, error) {
	forwarded := settings.Clone()
	if forwarded.GetString("backend_url", "") == "" {
		forwarded["backend_url"] = openai.LocalBackendURL
	}
	inner, err := openai.NewEmbeddingProvider(forwarded)
	if err != nil {
		return nil, err
	}
	return &OllamaEmbeddingProvider{inner: inner}, nil
}

// Embed converts a text string into a numeric vector.
func (p *OllamaEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	return p.inner.Embed(ctx, text)
}

// EmbeddingModelName returns the active embedding model's name.
func (p *OllamaEmbeddingProvider) EmbeddingModelName() string {
	return p.inner.EmbeddingModelName()
}

// ProviderName returns the short diagnostic name, "ollama".
func (p *OllamaEmbeddingProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}
