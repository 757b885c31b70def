package types

import "context"

// Record is a single data point as returned by a concrete provider. Field
// sets are provider-specific; the contracts only constrain the date-keyed
// grouping of records.
type Record = map[string]any

// DateRecords maps a YYYY-MM-DD date string to the records for that date.
// A range with no data yields an empty (or nil) map, never an error.
type DateRecords map[string][]Record

// DataProvider is the capability contract for financial-data sources.
//
// All date parameters are inclusive YYYY-MM-DD strings. Implementations
// should return an empty DateRecords for missing or unavailable data rather
// than an error, but may return a *DateRangeError for malformed date inputs.
type DataProvider interface {
	// GetNews returns news records for a ticker within a date range.
	GetNews(ctx context.Context, ticker, startDate, endDate string) (DateRecords, error)

	// GetInsiderSentiment returns insider sentiment records for a ticker
	// within a date range.
	GetInsiderSentiment(ctx context.Context, ticker, startDate, endDate string) (DateRecords, error)

	// GetInsiderTransactions returns insider transaction records for a
	// ticker within a date range.
	GetInsiderTransactions(ctx context.Context, ticker, startDate, endDate string) (DateRecords, error)

	// ProviderName returns the short diagnostic name of the provider.
	// It is independent of the registry key the provider was resolved by.
	ProviderName() string
}

// ChatModel is a handle to a configured language model. Handles are cheap
// and are constructed from settings on every call; callers that want reuse
// cache the handle themselves.
type ChatModel interface {
	// ModelID returns the model identifier the handle was built with.
	ModelID() string

	// Generate sends a single-turn prompt to the model and returns the
	// text of the first completion.
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMProvider is the capability contract for language-model backends.
type LLMProvider interface {
	// DeepThinkingModel returns a handle to the model configured for
	// complex reasoning tasks (the deep_think_llm setting).
	DeepThinkingModel() (ChatModel, error)

	// QuickThinkingModel returns a handle to the model configured for
	// fast responses (the quick_think_llm setting).
	QuickThinkingModel() (ChatModel, error)

	// ProviderName returns the short diagnostic name of the provider.
	ProviderName() string
}

// EmbeddingProvider is the capability contract for embedding backends.
type EmbeddingProvider interface {
	// Embed converts a text string into a fixed-length numeric vector.
	Embed(ctx context.Context, text string) ([]float64, error)

	// EmbeddingModelName returns the identifying name of the active
	// embedding model.
	EmbeddingModelName() string

	// ProviderName returns the short diagnostic name of the provider.
	ProviderName() string
}

// AvailabilityReporter is an optional capability a provider may implement to
// report whether its backing data or service is reachable. Providers that do
// not implement it are treated as always available.
type AvailabilityReporter interface {
	IsAvailable() bool
}
