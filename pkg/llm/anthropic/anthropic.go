// Package anthropic implements the LLM contract against the Anthropic
// messages API. Anthropic offers no embedding service, so the embedding
// provider delegates to OpenAI.
package anthropic

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cecil-the-coder/trading-provider-kit/internal/httpx"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm/openai"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// DefaultBackendURL is the hosted Anthropic API endpoint.
const DefaultBackendURL = "https://api.anthropic.com"

const (
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 4096
)

// Config is the settings payload recognized by the Anthropic provider.
type Config struct {
	DeepThinkLLM  string `mapstructure:"deep_think_llm"`
	QuickThinkLLM string `mapstructure:"quick_think_llm"`
	BackendURL    string `mapstructure:"backend_url"`
	APIKey        string `mapstructure:"anthropic_api_key"`
}

// AnthropicLLMProvider builds chat model handles for the Anthropic API.
type AnthropicLLMProvider struct {
	cfg Config
}

// NewLLMProvider constructs the provider from an opaque settings payload.
func NewLLMProvider(settings types.Settings) (*AnthropicLLMProvider, error) {
	var c Config
	if err := settings.Decode(&c); err != nil {
		return nil, err
	}
	return &AnthropicLLMProvider{cfg: c}, nil
}

// DeepThinkingModel returns a handle to the deep_think_llm model.
func (p *AnthropicLLMProvider) DeepThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.DeepThinkLLM, "deep_think_llm")
}

// QuickThinkingModel returns a handle to the quick_think_llm model.
func (p *AnthropicLLMProvider) QuickThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.QuickThinkLLM, "quick_think_llm")
}

// ProviderName returns the short diagnostic name, "anthropic".
func (p *AnthropicLLMProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}

func (p *AnthropicLLMProvider) model(modelID, key string) (types.ChatModel, error) {
	if modelID == "" {
		return nil, fmt.Errorf("anthropic: %s must be set", key)
	}
	backendURL := p.cfg.BackendURL
	if backendURL == "" {
		backendURL = DefaultBackendURL
	}
	apiKey := p.cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return &chatModel{
		modelID: modelID,
		client: httpx.New(httpx.Config{
			BaseURL: backendURL,
			Timeout: 120 * time.Second,
			Headers: map[string]string{
				"x-api-key":         apiKey,
				"anthropic-version": apiVersion,
			},
		}),
	}, nil
}

type chatModel struct {
	modelID string
	client  *httpx.Client
}

func (m *chatModel) ModelID() string {
	return m.modelID
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (m *chatModel) Generate(ctx context.Context, prompt string) (string, error) {
	req := messagesRequest{
		Model:     m.modelID,
		MaxTokens: defaultMaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	var resp messagesResponse
	if err := m.client.PostJSON(ctx, "/v1/messages", req, &resp); err != nil {
		return "", err
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic: model %s returned no text content", m.modelID)
}

// AnthropicEmbeddingProvider satisfies the embedding contract by delegating
// to OpenAI, since Anthropic does not provide embeddings.
type AnthropicEmbeddingProvider struct {
	inner *openai.OpenAIEmbeddingProvider
}

// NewEmbeddingProvider constructs the OpenAI-backed delegate. The forwarded
// settings get the hosted OpenAI backend when none is configured, so the
// delegate never targets the Anthropic endpoint.
func NewEmbeddingProvider(settings types.Settings) (*AnthropicEmbeddingProvider, error) {
	forwarded := settings.Clone()
	if forwarded.GetString("backend_url", "") == "" {
		forwarded["backend_url"] = openai.DefaultBackendURL
	}
	inner, err := openai.NewEmbeddingProvider(forwarded)
	if err != nil {
		return nil, err
	}
	return &AnthropicEmbeddingProvider{inner: inner}, nil
}

// Embed converts a text string into a numeric vector via the delegate.
func (p *AnthropicEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	return p.inner.Embed(ctx, text)
}

// EmbeddingModelName names the delegate's model, marked as a fallback.
func (p *AnthropicEmbeddingProvider) EmbeddingModelName() string {
	return "openai-fallback-" + p.inner.EmbeddingModelName()
}

// ProviderName returns the short diagnostic name, "anthropic".
func (p *AnthropicEmbeddingProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}
