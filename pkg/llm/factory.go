// Package llm provides the language-model and embedding provider categories:
// two factories sharing the llm_provider configuration key but owning
// independent registries, mirroring the data-provider mechanism.
package llm

import (
	"strings"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/config"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm/anthropic"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm/google"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm/ollama"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm/openai"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/llm/openrouter"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/registry"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// DefaultProvider is the built-in default used when neither the caller, the
// settings payload, nor the configuration names a provider.
const DefaultProvider = "openai"

// Factory resolves LLM-provider names to instances.
type Factory struct {
	registry *registry.Registry[types.LLMProvider]
	conf     *config.Store
}

// NewFactory creates an LLM factory with the built-in providers registered.
// A nil store falls back to the built-in defaults.
func NewFactory(conf *config.Store) *Factory {
	if conf == nil {
		conf = config.New()
	}
	f := &Factory{
		registry: registry.New[types.LLMProvider]("llm"),
		conf:     conf,
	}
	f.registry.Register("openai", func(cfg types.Settings) (types.LLMProvider, error) {
		return openai.NewLLMProvider(cfg)
	})
	f.registry.Register("anthropic", func(cfg types.Settings) (types.LLMProvider, error) {
		return anthropic.NewLLMProvider(cfg)
	})
	f.registry.Register("google", func(cfg types.Settings) (types.LLMProvider, error) {
		return google.NewLLMProvider(cfg)
	})
	f.registry.Register("openrouter", func(cfg types.Settings) (types.LLMProvider, error) {
		return openrouter.NewLLMProvider(cfg)
	})
	f.registry.Register("ollama", func(cfg types.Settings) (types.LLMProvider, error) {
		return ollama.NewLLMProvider(cfg)
	})
	return f
}

// GetProvider resolves and constructs an LLM provider.
//
// The name resolution order is: explicit argument, the settings payload's
// llm_provider key, then DefaultProvider. Settings resolve as: explicit
// argument, then the configuration snapshot. The full settings payload is
// passed through to the constructor unmodified.
func (f *Factory) GetProvider(name string, settings types.Settings) (types.LLMProvider, error) {
	name, settings = f.resolve(name, settings)
	return f.registry.Resolve(name, settings)
}

// Register registers a statically typed constructor under a name.
func (f *Factory) Register(name string, ctor registry.Constructor[types.LLMProvider]) {
	f.registry.Register(name, ctor)
}

// RegisterProvider registers a constructor supplied as a plain value,
// validating it against the LLMProvider contract at registration time.
func (f *Factory) RegisterProvider(name string, ctor any) error {
	return f.registry.RegisterImpl(name, ctor)
}

// ListProviders returns the registered provider names, sorted.
func (f *Factory) ListProviders() []string {
	return f.registry.Names()
}

func (f *Factory) resolve(name string, settings types.Settings) (string, types.Settings) {
	if settings == nil {
		settings = f.conf.Snapshot()
	}
	if strings.TrimSpace(name) == "" {
		name = settings.GetString(config.KeyLLMProvider, DefaultProvider)
	}
	return name, settings
}

// EmbeddingFactory resolves embedding-provider names to instances. It is an
// independent namespace from the LLM registry even though both categories
// share the llm_provider configuration key.
type EmbeddingFactory struct {
	registry *registry.Registry[types.EmbeddingProvider]
	conf     *config.Store
}

// NewEmbeddingFactory creates an embedding factory with the built-in
// providers registered. A nil store falls back to the built-in defaults.
func NewEmbeddingFactory(conf *config.Store) *EmbeddingFactory {
	if conf == nil {
		conf = config.New()
	}
	f := &EmbeddingFactory{
		registry: registry.New[types.EmbeddingProvider]("embedding"),
		conf:     conf,
	}
	f.registry.Register("openai", func(cfg types.Settings) (types.EmbeddingProvider, error) {
		return openai.NewEmbeddingProvider(cfg)
	})
	f.registry.Register("anthropic", func(cfg types.Settings) (types.EmbeddingProvider, error) {
		return anthropic.NewEmbeddingProvider(cfg)
	})
	f.registry.Register("google", func(cfg types.Settings) (types.EmbeddingProvider, error) {
		return google.NewEmbeddingProvider(cfg)
	})
	f.registry.Register("openrouter", func(cfg types.Settings) (types.EmbeddingProvider, error) {
		return openrouter.NewEmbeddingProvider(cfg)
	})
	f.registry.Register("ollama", func(cfg types.Settings) (types.EmbeddingProvider, error) {
		return ollama.NewEmbeddingProvider(cfg)
	})
	return f
}

// GetProvider resolves and constructs an embedding provider, with the same
// resolution order as the LLM factory.
func (f *EmbeddingFactory) GetProvider(name string, settings types.Settings) (types.EmbeddingProvider, error) {
	if settings == nil {
		settings = f.conf.Snapshot()
	}
	if strings.TrimSpace(name) == "" {
		name = settings.GetString(config.KeyLLMProvider, DefaultProvider)
	}
	return f.registry.Resolve(name, settings)
}

// Register registers a statically typed constructor under a name.
func (f *EmbeddingFactory) Register(name string, ctor registry.Constructor[types.EmbeddingProvider]) {
	f.registry.Register(name, ctor)
}

// RegisterProvider registers a constructor supplied as a plain value,
// validating it against the EmbeddingProvider contract at registration time.
func (f *EmbeddingFactory) RegisterProvider(name string, ctor any) error {
	return f.registry.RegisterImpl(name, ctor)
}

// ListProviders returns the registered provider names, sorted.
func (f *EmbeddingFactory) ListProviders() []string {
	return f.registry.Names()
}
