// Package config provides the configuration store consulted by the provider
// factories when a caller does not supply a provider name or settings
// explicitly. It layers YAML file values and runtime overrides over built-in
// defaults and hands out copy-on-read snapshots.
package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// Recognized keys consumed by the factories. All other keys pass through
// opaquely to provider constructors.
const (
	KeyDataProvider  = "data_provider"
	KeyDataDir       = "data_dir"
	KeyLLMProvider   = "llm_provider"
	KeyDeepThinkLLM  = "deep_think_llm"
	KeyQuickThinkLLM = "quick_think_llm"
	KeyBackendURL    = "backend_url"
)

// Defaults returns the baseline configuration. Callers receive a fresh map
// on every call and may modify it freely.
func Defaults() types.Settings {
	return types.Settings{
		KeyDataProvider:  "finnhub",
		KeyDataDir:       "",
		KeyLLMProvider:   "openai",
		KeyDeepThinkLLM:  "o4-mini",
		KeyQuickThinkLLM: "gpt-4o-mini",
		KeyBackendURL:    "https://api.openai.com/v1",
	}
}

// Store holds the active configuration. It is an explicit object rather than
// process-global state so tests and embedders can run isolated instances
// side by side.
//
// A Store is safe for concurrent use. Snapshot returns copies, so readers
// never observe a partially applied update.
type Store struct {
	mu     sync.RWMutex
	values types.Settings
}

// New creates a store initialized with Defaults.
func New() *Store {
	return &Store{values: Defaults()}
}

// Load creates a store with the YAML file at path merged over Defaults.
// Keys absent from the file keep their default values.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var overrides map[string]any
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	store := New()
	store.Set(overrides)
	return store, nil
}

// Set merges the given key-value pairs into the active configuration,
// preserving settings that are not mentioned.
func (s *Store) Set(overrides map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range overrides {
		s.values[k] = v
	}
}

// Snapshot returns a copy of the current configuration. The copy is
// independent: mutating it does not affect the store.
func (s *Store) Snapshot() types.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.values.Clone()
}

// GetString returns the string value for key from the current configuration,
// or def when absent.
func (s *Store) GetString(key, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.values.GetString(key, def)
}
