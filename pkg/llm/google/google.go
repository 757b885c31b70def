// Package google implements the LLM contract against the Google generative
// language API. Google's embedding surface differs from the contract, so the
// embedding provider delegates to OpenAI.
package google

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/cecil-the-coder/trading-provider-kit/internal/httpx"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm/openai"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// DefaultBackendURL is the hosted generative language endpoint.
const DefaultBackendURL = "https://generativelanguage.googleapis.com/v1beta"

// Config is the settings payload recognized by the Google provider. The
// shared backend_url setting is ignored here: Google models are addressed
// through their own endpoint, mirroring the vendor SDK.
type Config struct {
	DeepThinkLLM  string `mapstructure:"deep_think_llm"`
	QuickThinkLLM string `mapstructure:"quick_think_llm"`
	APIKey        string `mapstructure:"google_api_key"`
}

// GoogleLLMProvider builds chat model handles for the Google API.
type GoogleLLMProvider struct {
	cfg Config
}

// NewLLMProvider constructs the provider from an opaque settings payload.
func NewLLMProvider(settings types.Settings) (*GoogleLLMProvider, error) {
	var c Config
	if err := settings.Decode(&c); err != nil {
		return nil, err
	}
	return &GoogleLLMProvider{cfg: c}, nil
}

// DeepThinkingModel returns a handle to the deep_think_llm model.
func (p *GoogleLLMProvider) DeepThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.DeepThinkLLM, "deep_think_llm")
}

// QuickThinkingModel returns a handle to the quick_think_llm model.
func (p *GoogleLLMProvider) QuickThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.QuickThinkLLM, "quick_think_llm")
}

// ProviderName returns the short diagnostic name, "google".
func (p *GoogleLLMProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}

func (p *GoogleLLMProvider) model(modelID, key string) (types.ChatModel, error) {
	if modelID == "" {
		return nil, fmt.Errorf("google: %s must be set", key)
	}
	apiKey := p.cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	return &chatModel{
		modelID: modelID,
		apiKey:  apiKey,
		client: httpx.New(httpx.Config{
			BaseURL: DefaultBackendURL,
			Timeout: 120 * time.Second,
		}),
	}, nil
}

type chatModel struct {
	modelID string
	apiKey  string
	client  *httpx.Client
}

func (m *chatModel) ModelID() string {
	return m.modelID
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (m *chatModel) Generate(ctx context.Context, prompt string) (string, error) {
	path := fmt.Sprintf("/models/%s:generateContent?key=%s", url.PathEscape(m.modelID), url.QueryEscape(m.apiKey))
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	var resp generateResponse
	if err := m.client.PostJSON(ctx, path, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("google: model %s returned no candidates", m.modelID)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// GoogleEmbeddingProvider satisfies the embedding contract by delegating to
// OpenAI.
type GoogleEmbeddingProvider struct {
	inner *openai.OpenAIEmbeddingProvider
}

// NewEmbeddingProvider constructs the OpenAI-backed delegate, defaulting the
// backend to the hosted OpenAI endpoint when none is configured.
func NewEmbeddingProvider(settings types.Settings) (*GoogleEmbeddingProvider, error) {
	forwarded := settings.Clone()
	if forwarded.GetString("backend_url", "") == "" {
		forwarded["backend_url"] = openai.DefaultBackendURL
	}
	inner, err := openai.NewEmbeddingProvider(forwarded)
	if err != nil {
		return nil, err
	}
	return &GoogleEmbeddingProvider{inner: inner}, nil
}

// Embed converts a text string into a numeric vector via the delegate.
func (p *GoogleEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	return p.inner.Embed(ctx, text)
}

// EmbeddingModelName names the delegate's model, marked as a fallback.
func (p *GoogleEmbeddingProvider) EmbeddingModelName() string {
	return "openai-fallback-" + p.inner.EmbeddingModelName()
}

// ProviderName returns the short diagnostic name, "google".
func (p *GoogleEmbeddingProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}
