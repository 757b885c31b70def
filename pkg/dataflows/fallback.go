package dataflows

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/registry"
	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// FallbackEvent is the diagnostic record emitted when the orchestrator
// switches from the primary to the fallback provider. Emission is non-fatal
// and purely informational.
type FallbackEvent struct {
	ID        string    // unique event id
	From      string    // normalized primary provider name
	To        string    // normalized fallback provider name
	Reason    string    // why the primary was rejected
	Timestamp time.Time // when the switch happened
}

// SetLogger replaces the logger used for fallback diagnostics. A nil logger
// silences them. The default is log.Default().
func (f *Factory) SetLogger(l *log.Logger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logger = l
}

// OnFallback installs a callback invoked with every fallback event, in
// addition to the log line. A nil callback removes it.
func (f *Factory) OnFallback(fn func(FallbackEvent)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onFallback = fn
}

// GetProviderWithFallback attempts the primary provider and switches to the
// fallback when the primary cannot be constructed or reports itself
// unavailable. Providers that do not implement types.AvailabilityReporter
// are treated as always available.
//
// When the fallback leg also fails, the returned error is a
// *types.FallbackExhaustedError carrying both underlying failures.
func (f *Factory) GetProviderWithFallback(primary, fallback string, settings types.Settings) (types.DataProvider, error) {
	provider, primaryErr := f.GetProvider(primary, settings)
	if primaryErr == nil && available(provider) {
		return provider, nil
	}

	reason := "provider reported unavailable"
	if primaryErr != nil {
		reason = primaryErr.Error()
	}
	f.emitFallback(FallbackEvent{
		ID:        uuid.NewString(),
		From:      registry.Normalize(primary),
		To:        registry.Normalize(fallback),
		Reason:    reason,
		Timestamp: time.Now(),
	})

	fbProvider, fallbackErr := f.GetProvider(fallback, settings)
	if fallbackErr != nil {
		return nil, &types.FallbackExhaustedError{
			Primary:     registry.Normalize(primary),
			Fallback:    registry.Normalize(fallback),
			PrimaryErr:  primaryErr,
			FallbackErr: fallbackErr,
		}
	}
	return fbProvider, nil
}

// available probes the optional availability capability.
func available(provider types.DataProvider) bool {
	if reporter, ok := provider.(types.AvailabilityReporter); ok {
		return reporter.IsAvailable()
	}
	return true
}

func (f *Factory) emitFallback(event FallbackEvent) {
	f.mu.RLock()
	logger := f.logger
	callback := f.onFallback
	f.mu.RUnlock()

	if logger != nil {
		logger.Printf("data provider fallback %s: %q -> %q (%s)", event.ID, event.From, event.To, event.Reason)
	}
	if callback != nil {
		callback(event)
	}
}
