package types

import (
	"fmt"
	"strings"
)

// UnknownProviderError reports a lookup for a provider name that is not
// present in the registry. The message enumerates the registered names,
// sorted, so callers can see what is actually available.
type UnknownProviderError struct {
	Category   string   // registry category, e.g. "data", "llm", "embedding"
	Name       string   // the normalized name that was requested
	Registered []string // currently registered names, sorted
}

// Error implements the error interface
func (e *UnknownProviderError) Error() string {
	if len(e.Registered) == 0 {
		return fmt.Sprintf("unknown %s provider %q: no providers registered", e.Category, e.Name)
	}
	return fmt.Sprintf("unknown %s provider %q, available providers: %s",
		e.Category, e.Name, strings.Join(e.Registered, ", "))
}

// InvalidProviderError reports a registration attempt whose constructor does
// not conform to the category's capability contract. The registration is
// rejected and the registry is left unchanged.
type InvalidProviderError struct {
	Category string // registry category the registration targeted
	TypeName string // the offending constructor or instance type
}

// Error implements the error interface
func (e *InvalidProviderError) Error() string {
	return fmt.Sprintf("invalid %s provider implementation: %s does not satisfy the %s capability contract",
		e.Category, e.TypeName, e.Category)
}

// FallbackExhaustedError reports that both the primary and the fallback
// provider failed to produce a usable instance. Both underlying failures are
// attached and visible to errors.Is/As.
type FallbackExhaustedError struct {
	Primary     string // primary provider name
	Fallback    string // fallback provider name
	PrimaryErr  error  // why the primary was rejected (nil if it was only unavailable)
	FallbackErr error  // why the fallback failed
}

// Error implements the error interface
func (e *FallbackExhaustedError) Error() string {
	primary := "reported unavailable"
	if e.PrimaryErr != nil {
		primary = e.PrimaryErr.Error()
	}
	return fmt.Sprintf("fallback exhausted: primary %q failed (%s); fallback %q failed (%v)",
		e.Primary, primary, e.Fallback, e.FallbackErr)
}

// Unwrap returns both underlying errors for errors.Is/As
func (e *FallbackExhaustedError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.PrimaryErr != nil {
		errs = append(errs, e.PrimaryErr)
	}
	if e.FallbackErr != nil {
		errs = append(errs, e.FallbackErr)
	}
	return errs
}
