// Package registry provides the generic name-to-constructor registry shared
// by every provider category. A Registry maps normalized provider names to
// constructor functions, mediates provider creation, and validates runtime
// registrations against the category's capability contract.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/cecil-the-coder/trading-provider-kit/pkg/types"
)

// Constructor builds a provider instance from an opaque settings payload.
// Construction should only fail for clearly invalid configuration; such
// failures propagate unmodified to the caller that requested the provider.
type Constructor[T any] func(cfg types.Settings) (T, error)

// Registry maps normalized provider names to constructors for one provider
// category. Categories are independent namespaces; the kit instantiates one
// Registry per contract type.
//
// A Registry is safe for concurrent registration and lookup. It never caches
// instances: every Resolve call runs the constructor, and the returned
// instance is owned exclusively by the caller.
type Registry[T any] struct {
	category string
	mu       sync.RWMutex
	ctors    map[string]Constructor[T]
}

// New creates an empty registry for the named category. The category string
// only appears in error messages and diagnostics.
func New[T any](category string) *Registry[T] {
	return &Registry[T]{
		category: category,
		ctors:    make(map[string]Constructor[T]),
	}
}

// Normalize canonicalizes a provider name for registration and lookup. Two
// names differing only in case or surrounding whitespace refer to the same
// registry slot.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Category returns the category name the registry was created with.
func (r *Registry[T]) Category() string {
	return r.category
}

// Register inserts or replaces the constructor for a name. Re-registration
// under an existing name silently replaces the previous constructor, which
// also permits overriding built-ins in tests and custom deployments.
func (r *Registry[T]) Register(name string, ctor Constructor[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ctors[Normalize(name)] = ctor
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// RegisterImpl registers a constructor supplied as a plain value, typically
// by code that does not know the category's contract type statically. The
// constructor must be a func taking types.Settings and returning a contract
// implementation, optionally with a trailing error. Anything else is
// rejected with *types.InvalidProviderError and the registry is left
// unchanged.
func (r *Registry[T]) RegisterImpl(name string, ctor any) error {
	if typed, ok := ctor.(Constructor[T]); ok {
		r.Register(name, typed)
		return nil
	}
	if typed, ok := ctor.(func(types.Settings) (T, error)); ok {
		r.Register(name, typed)
		return nil
	}

	contract := reflect.TypeOf((*T)(nil)).Elem()
	rv := reflect.ValueOf(ctor)
	if err := validateConstructor(rv, contract); err != nil {
		return &types.InvalidProviderError{Category: r.category, TypeName: typeName(ctor)}
	}

	r.Register(name, func(cfg types.Settings) (T, error) {
		var zero T
		results := rv.Call([]reflect.Value{reflect.ValueOf(cfg)})
		if len(results) == 2 && !results[1].IsNil() {
			return zero, results[1].Interface().(error)
		}
		instance, ok := results[0].Interface().(T)
		if !ok {
			return zero, &types.InvalidProviderError{Category: r.category, TypeName: typeName(results[0].Interface())}
		}
		return instance, nil
	})
	return nil
}

// validateConstructor checks the shape func(types.Settings) (impl[, error])
// where impl satisfies the contract interface.
func validateConstructor(rv reflect.Value, contract reflect.Type) error {
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return fmt.Errorf("not a constructor func")
	}
	rt := rv.Type()
	settingsType := reflect.TypeOf(types.Settings(nil))
	if rt.NumIn() != 1 || !settingsType.AssignableTo(rt.In(0)) {
		return fmt.Errorf("constructor must take types.Settings")
	}
	if rt.NumOut() < 1 || rt.NumOut() > 2 {
		return fmt.Errorf("constructor must return an implementation and an optional error")
	}
	if !rt.Out(0).Implements(contract) {
		return fmt.Errorf("return type does not satisfy the contract")
	}
	if rt.NumOut() == 2 && rt.Out(1) != errType {
		return fmt.Errorf("second return value must be error")
	}
	return nil
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Resolve normalizes the name, looks up its constructor, and builds a fresh
// instance with the given settings. The settings are passed through
// unmodified. An unregistered name yields *types.UnknownProviderError whose
// message enumerates the registered names, sorted for determinism.
func (r *Registry[T]) Resolve(name string, cfg types.Settings) (T, error) {
	normalized := Normalize(name)

	r.mu.RLock()
	ctor, ok := r.ctors[normalized]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, &types.UnknownProviderError{
			Category:   r.category,
			Name:       normalized,
			Registered: r.Names(),
		}
	}
	return ctor(cfg)
}

// Names returns the currently registered normalized names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
