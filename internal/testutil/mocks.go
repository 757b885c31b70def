// Package testutil provides shared mock providers for use across the
// trading-provider-kit test suite.
package testutil

import (
	"context"
	"sync"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// MockDataProvider is a configurable DataProvider implementation. Zero value
// behaves as an always-available provider returning empty results.
type MockDataProvider struct {
	mu sync.Mutex

	// Configuration
	Name        string
	Settings    types.Settings
	Records     types.DateRecords
	Err         error
	Unavailable bool

	// Call tracking
	NewsCalls         int
	SentimentCalls    int
	TransactionCalls  int
	AvailabilityCalls int
}

// NewMockDataProvider returns a mock remembering the settings it was
// constructed with, matching the registry constructor shape.
func NewMockDataProvider(cfg types.Settings) (*MockDataProvider, error) {
	return &MockDataProvider{Name: "mock", Settings: cfg}, nil
}

func (m *MockDataProvider) GetNews(ctx context.Context, ticker, startDate, endDate string) (types.DateRecords, error) {
	m.mu.Lock()
	m.NewsCalls++
	m.mu.Unlock()
	return m.result()
}

func (m *MockDataProvider) GetInsiderSentiment(ctx context.Context, ticker, startDate, endDate string) (types.DateRecords, error) {
	m.mu.Lock()
	m.SentimentCalls++
	m.mu.Unlock()
	return m.result()
}

func (m *MockDataProvider) GetInsiderTransactions(ctx context.Context, ticker, startDate, endDate string) (types.DateRecords, error) {
	m.mu.Lock()
	m.TransactionCalls++
	m.mu.Unlock()
	return m.result()
}

func (m *MockDataProvider) ProviderName() string {
	if m.Name != "" {
		return m.Name
	}
	return "mock"
}

func (m *MockDataProvider) IsAvailable() bool {
	m.mu.Lock()
	m.AvailabilityCalls++
	m.mu.Unlock()
	return !m.Unavailable
}

func (m *MockDataProvider) result() (types.DateRecords, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Records != nil {
		return m.Records, nil
	}
	return types.DateRecords{}, nil
}

// StaticChatModel is a ChatModel returning a fixed completion.
type StaticChatModel struct {
	ID       string
	Response string
}

func (m *StaticChatModel) ModelID() string {
	return m.ID
}

func (m *StaticChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	return m.Response, nil
}

// MockLLMProvider is a configurable LLMProvider implementation.
type MockLLMProvider struct {
	Name     string
	Settings types.Settings
	Deep     types.ChatModel
	Quick    types.ChatModel
	Err      error
}

// NewMockLLMProvider returns a mock remembering the settings it was
// constructed with, matching the registry constructor shape.
func NewMockLLMProvider(cfg types.Settings) (*MockLLMProvider, error) {
	return &MockLLMProvider{Name: "mock", Settings: cfg}, nil
}

func (m *MockLLMProvider) DeepThinkingModel() (types.ChatModel, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Deep != nil {
		return m.Deep, nil
	}
	return &StaticChatModel{ID: "mock-deep"}, nil
}

func (m *MockLLMProvider) QuickThinkingModel() (types.ChatModel, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Quick != nil {
		return m.Quick, nil
	}
	return &StaticChatModel{ID: "mock-quick"}, nil
}

func (m *MockLLMProvider) ProviderName() string {
	if m.Name != "" {
		return m.Name
	}
	return "mock"
}

// MockEmbeddingProvider is a configurable EmbeddingProvider implementation.
type MockEmbeddingProvider struct {
	Name     string
	Settings types.Settings
	Vector   []float64
	Model    string
	Err      error
}

// NewMockEmbeddingProvider returns a mock remembering the settings it was
// constructed with, matching the registry constructor shape.
func NewMockEmbeddingProvider(cfg types.Settings) (*MockEmbeddingProvider, error) {
	return &MockEmbeddingProvider{Name: "mock", Settings: cfg}, nil
}

func (m *MockEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Vector != nil {
		return m.Vector, nil
	}
	return []float64{0, 0, 0}, nil
}

func (m *MockEmbeddingProvider) EmbeddingModelName() string {
	if m.Model != "" {
		return m.Model
	}
	return "mock-embedding"
}

func (m *MockEmbeddingProvider) ProviderName() string {
	if m.Name != "" {
		return m.Name
	}
	return "mock"
}
