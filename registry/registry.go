// Package registry provides thread-safe storage of type-keyed registrations.
package registry

import (
	"reflect"
	"sync"
)

// Registration maps one abstract type to an ordered list of factories.
type Registration struct {
	// AbstractType is the type being registered (e.g., the Logger interface).
	AbstractType reflect.Type

	// Lifetime describes how the first factory manages instances.
	// Values: "transient", "singleton", "instance", "factory".
	Lifetime string

	// Factories is the ordered factory list for this key. Resolution always
	// uses the first entry; the list keeps the contract extensible.
	Factories []any
}

// First returns the factory consulted during resolution.
func (r *Registration) First() any {
	if len(r.Factories) == 0 {
		return nil
	}
	return r.Factories[0]
}

// Registry provides thread-safe storage for registrations keyed by
// reflect.Type, and owns the container's lifetime flag: once Dispose flips
// it, the registry is permanently disposed.
type Registry struct {
	mu            sync.RWMutex
	registrations map[reflect.Type]*Registration
	disposed      bool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		registrations: make(map[reflect.Type]*Registration),
	}
}

// Register stores a registration under its abstract type. A key, once
// registered, keeps its first factory for the registry's lifetime:
// registering the same key again is a no-op and Register reports false.
//
// This method is goroutine-safe.
func (r *Registry) Register(reg *Registration) bool {
	if reg == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registrations[reg.AbstractType]; exists {
		return false
	}

	r.registrations[reg.AbstractType] = reg
	return true
}

// Get retrieves the registration for an abstract type.
//
// This method is goroutine-safe.
func (r *Registry) Get(abstractType reflect.Type) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, exists := r.registrations[abstractType]
	return reg, exists
}

// Has reports whether a registration exists for the given type.
//
// This method is goroutine-safe.
func (r *Registry) Has(abstractType reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.registrations[abstractType]
	return exists
}

// Types returns all registered abstract types.
//
// This method is goroutine-safe.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]reflect.Type, 0, len(r.registrations))
	for t := range r.registrations {
		types = append(types, t)
	}
	return types
}

// Len returns the number of registered types.
//
// This method is goroutine-safe.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.registrations)
}

// Dispose flips the irreversible disposed flag. It reports true on the first
// call and false on every subsequent one.
//
// This method is goroutine-safe.
func (r *Registry) Dispose() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return false
	}
	r.disposed = true
	return true
}

// Disposed reports whether Dispose has been called.
//
// This method is goroutine-safe.
func (r *Registry) Disposed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.disposed
}
