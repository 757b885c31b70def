// Package openrouter implements the LLM contract against OpenRouter, which
// exposes an OpenAI-compatible API under its own backend URL. Chat handles
// reuse the OpenAI protocol implementation; embeddings delegate to OpenAI
// since OpenRouter offers none.
package openrouter

import (
	"context"
	"fmt"
	"os"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm/openai"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// DefaultBackendURL is the hosted OpenRouter API endpoint.
const DefaultBackendURL = "https://openrouter.ai/api/v1"

// Config is the settings payload recognized by the OpenRouter provider.
type Config struct {
	DeepThinkLLM  string `mapstructure:"deep_think_llm"`
	QuickThinkLLM string `mapstructure:"quick_think_llm"`
	BackendURL    string `mapstructure:"backend_url"`
	APIKey        string `mapstructure:"openrouter_api_key"`
}

// OpenRouterLLMProvider builds chat model handles for the OpenRouter API.
type OpenRouterLLMProvider struct {
	cfg Config
}

// NewLLMProvider constructs the provider from an opaque settings payload.
func NewLLMProvider(settings types.Settings) (*OpenRouterLLMProvider, error) {
	var c Config
	if err := settings.Decode(&c); err != nil {
		return nil, err
	}
	return &OpenRouterLLMProvider{cfg: c}, nil
}

// DeepThinkingModel returns a handle to the deep_think_llm model.
func (p *OpenRouterLLMProvider) DeepThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.DeepThinkLLM, "deep_think_llm")
}

// QuickThinkingModel returns a handle to the quick_think_llm model.
func (p *OpenRouterLLMProvider) QuickThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.QuickThinkLLM, "quick_think_llm")
}

// ProviderName returns the short diagnostic name, "openrouter".
func (p *OpenRouterLLMProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}

func (p *OpenRouterLLMProvider) model(modelID, key string) (types.ChatModel, error) {
	if modelID == "" {
		return nil, fmt.Errorf("openrouter: %s must be set", key)
	}
	backendURL := p.cfg.BackendURL
	if backendURL == "" {
		backendURL = DefaultBackendURL
	}
	apiKey := p.cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}
	return openai.NewChatModel(modelID, backendURL, apiKey), nil
}

// OpenRouterEmbeddingProvider satisfies the embedding contract by delegating
// to OpenAI, since OpenRouter does not provide embeddings.
type OpenRouterEmbeddingProvider struct {
	inner *openai.OpenAIEmbeddingProvider
}

// NewEmbeddingProvider constructs the OpenAI-backed delegate, defaulting the
// backend to the hosted OpenAI endpoint when none is configured.
func NewEmbeddingProvider(settings types.Settings) (*OpenRouterEmbeddingProvider, error) {
	forwarded := settings.Clone()
	if forwarded.GetString("backend_url", "") == "" {
		forwarded["backend_url"] = openai.DefaultBackendURL
	}
	inner, err := openai.NewEmbeddingProvider(forwarded)
	if err != nil {
		return nil, err
	}
	return &OpenRouterEmbeddingProvider{inner: inner}, nil
}

// Embed converts a text string into a numeric vector via the delegate.
func (p *OpenRouterEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	return p.inner.Embed(ctx, text)
}

// EmbeddingModelName names the delegate's model, marked as a fallback.
func (p *OpenRouterEmbeddingProvider) EmbeddingModelName() string {
	return "openai-fallback-" + p.inner.EmbeddingModelName()
}

// ProviderName returns the short diagnostic name, "openrouter".
func (p *OpenRouterEmbeddingProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}
