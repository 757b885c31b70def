// Package dataflows provides the financial-data provider category: the
// factory resolving configuration to concrete data providers, runtime
// registration of custom providers, and the primary/fallback orchestrator.
package dataflows

import (
	"log"
	"strings"
	"sync"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/config"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/dataflows/finnhub"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/dataflows/twelvedata"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/registry"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// DefaultProvider is the built-in default used when neither the caller nor
// the configuration names a provider.
const DefaultProvider = "finnhub"

// Factory resolves data-provider names to instances. Each factory owns an
// independent registry, so tests and embedders can run isolated factories
// without cross-polluting registrations.
type Factory struct {
	registry *registry.Registry[types.DataProvider]
	conf     *config.Store

	mu         sync.RWMutex
	logger     *log.Logger
	onFallback func(FallbackEvent)
}

// NewFactory creates a factory with the built-in providers registered. A nil
// store falls back to the built-in defaults.
func NewFactory(conf *config.Store) *Factory {
	if conf == nil {
		conf = config.New()
	}
	f := &Factory{
		registry: registry.New[types.DataProvider]("data"),
		conf:     conf,
		logger:   log.Default(),
	}
	f.registry.Register("finnhub", func(cfg types.Settings) (types.DataProvider, error) {
		return finnhub.New(cfg)
	})
	f.registry.Register("twelvedata", func(cfg types.Settings) (types.DataProvider, error) {
		return twelvedata.New(cfg)
	})
	return f
}

// GetProvider resolves and constructs a data provider.
//
// The name resolution order is: explicit argument, the configuration's
// data_provider setting, then DefaultProvider. Settings resolve as: explicit
// argument, a bundle carrying the configuration's data_dir, then empty. The
// factory never caches instances; every call constructs a fresh provider
// owned by the caller.
func (f *Factory) GetProvider(name string, settings types.Settings) (types.DataProvider, error) {
	if strings.TrimSpace(name) == "" {
		name = f.conf.GetString(config.KeyDataProvider, DefaultProvider)
	}
	if settings == nil {
		settings = types.Settings{
			config.KeyDataDir: f.conf.GetString(config.KeyDataDir, ""),
		}
	}
	return f.registry.Resolve(name, settings)
}

// GetProviderAt resolves a provider with only the storage location set. It
// covers the common file-backed call shape without building a settings map
// by hand.
func (f *Factory) GetProviderAt(name, dataDir string) (types.DataProvider, error) {
	return f.GetProvider(name, types.Settings{config.KeyDataDir: dataDir})
}

// Register registers a statically typed constructor under a name. The name
// is normalized; re-registration silently replaces the previous constructor,
// including built-ins.
func (f *Factory) Register(name string, ctor registry.Constructor[types.DataProvider]) {
	f.registry.Register(name, ctor)
}

// RegisterProvider registers a constructor supplied as a plain value,
// validating at registration time that it produces DataProvider
// implementations. Non-conforming constructors are rejected with
// *types.InvalidProviderError and the registry is left unchanged.
func (f *Factory) RegisterProvider(name string, ctor any) error {
	return f.registry.RegisterImpl(name, ctor)
}

// ListProviders returns the registered provider names, sorted.
func (f *Factory) ListProviders() []string {
	return f.registry.Names()
}
