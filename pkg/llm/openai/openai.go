// Package openai implements the LLM and embedding contracts against the
// OpenAI API. Its chat handle speaks the OpenAI-compatible chat completions
// protocol and is reused by the openrouter and ollama providers, which
// expose the same wire format under different backend URLs.
package openai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cecil-the-coder/trading-provider-kit/internal/httpx"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// DefaultBackendURL is the hosted OpenAI API endpoint.
const DefaultBackendURL = "https://api.openai.com/v1"

// LocalBackendURL is the conventional local Ollama endpoint. Embeddings
// against it use a local model instead of the hosted one.
const LocalBackendURL = "http://localhost:11434/v1"

const (
	hostedEmbeddingModel = "text-embedding-3-small"
	localEmbeddingModel  = "nomic-embed-text"
)

// Config is the settings payload recognized by the OpenAI providers.
type Config struct {
	DeepThinkLLM  string `mapstructure:"deep_think_llm"`
	QuickThinkLLM string `mapstructure:"quick_think_llm"`
	BackendURL    string `mapstructure:"backend_url"`
	APIKey        string `mapstructure:"openai_api_key"`
}

// ResolveAPIKey returns the API key from settings, the OPENAI_API_KEY
// environment variable, or a placeholder usable against keyless local
// backends.
func ResolveAPIKey(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv("OPENAI_API_KEY"); env != "" {
		return env
	}
	return "test-key"
}

// OpenAILLMProvider builds chat model handles from its settings. Handles are
// constructed on every call; callers cache them if they want reuse.
type OpenAILLMProvider struct {
	cfg Config
}

// NewLLMProvider constructs the provider from an opaque settings payload.
func NewLLMProvider(settings types.Settings) (*OpenAILLMProvider, error) {
	var c Config
	if err := settings.Decode(&c); err != nil {
		return nil, err
	}
	return &OpenAILLMProvider{cfg: c}, nil
}

// DeepThinkingModel returns a handle to the deep_think_llm model.
func (p *OpenAILLMProvider) DeepThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.DeepThinkLLM, "deep_think_llm")
}

// QuickThinkingModel returns a handle to the quick_think_llm model.
func (p *OpenAILLMProvider) QuickThinkingModel() (types.ChatModel, error) {
	return p.model(p.cfg.QuickThinkLLM, "quick_think_llm")
}

// ProviderName returns the short diagnostic name, "openai".
func (p *OpenAILLMProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}

func (p *OpenAILLMProvider) model(modelID, key string) (types.ChatModel, error) {
	if modelID == "" {
		return nil, fmt.Errorf("openai: %s must be set", key)
	}
	backendURL := p.cfg.BackendURL
	if backendURL == "" {
		backendURL = DefaultBackendURL
	}
	return NewChatModel(modelID, backendURL, ResolveAPIKey(p.cfg.APIKey)), nil
}

// ChatModel is a handle to one model on an OpenAI-compatible backend.
type ChatModel struct {
	modelID string
	client  *httpx.Client
}

// NewChatModel builds a handle for modelID on an OpenAI-compatible backend.
func NewChatModel(modelID, backendURL, apiKey string) *ChatModel {
	return &ChatModel{
		modelID: modelID,
		client: httpx.New(httpx.Config{
			BaseURL: backendURL,
			APIKey:  apiKey,
			Timeout: 120 * time.Second,
		}),
	}
}

// ModelID returns the model identifier the handle was built with.
func (m *ChatModel) ModelID() string {
	return m.modelID
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends a single-turn prompt and returns the first completion.
func (m *ChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:    m.modelID,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	var resp chatResponse
	if err := m.client.PostJSON(ctx, "/chat/completions", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: model %s returned no choices", m.modelID)
	}
	return resp.Choices[0].Message.Content, nil
}

// OpenAIEmbeddingProvider embeds text via the OpenAI embeddings endpoint.
type OpenAIEmbeddingProvider struct {
	model  string
	client *httpx.Client
}

// NewEmbeddingProvider constructs the provider from an opaque settings
// payload. The embedding model is chosen by backend: local Ollama backends
// get nomic-embed-text, everything else text-embedding-3-small.
func NewEmbeddingProvider(settings types.Settings) (*OpenAIEmbeddingProvider, error) {
	var c Config
	if err := settings.Decode(&c); err != nil {
		return nil, err
	}
	backendURL := c.BackendURL
	if backendURL == "" {
		backendURL = DefaultBackendURL
	}
	model := hostedEmbeddingModel
	if backendURL == LocalBackendURL {
		model = localEmbeddingModel
	}
	return &OpenAIEmbeddingProvider{
		model: model,
		client: httpx.New(httpx.Config{
			BaseURL: backendURL,
			APIKey:  ResolveAPIKey(c.APIKey),
			Timeout: 30 * time.Second,
		}),
	}, nil
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed converts a text string into a numeric vector.
func (p *OpenAIEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	req := embeddingRequest{Model: p.model, Input: text}
	var resp embeddingResponse
	if err := p.client.PostJSON(ctx, "/embeddings", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai: embeddings response carried no data")
	}
	return resp.Data[0].Embedding, nil
}

// EmbeddingModelName returns the active embedding model's name.
func (p *OpenAIEmbeddingProvider) EmbeddingModelName() string {
	return p.model
}

// ProviderName returns the short diagnostic name, "openai".
func (p *OpenAIEmbeddingProvider) ProviderName() string {
	return types.DeriveProviderName(p)
}
