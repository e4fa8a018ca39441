package chly

import (
	"fmt"
	"reflect"
)

// ServiceProvider is the interface that must be implemented by service providers.
// Service providers encapsulate related service registrations.
//
// Example:
//
//	type LoggingProvider struct{}
//
//	func (p *LoggingProvider) Register(container *chly.Container) error {
//	    return container.RegisterSingleton((*Logger)(nil), NewConsoleLogger)
//	}
type ServiceProvider interface {
	Register(container *Container) error
}

// BootableProvider is an optional interface for providers that need a boot phase.
// The Boot method is called after all providers have been registered.
//
// Example:
//
//	type DatabaseProvider struct{}
//
//	func (p *DatabaseProvider) Register(container *chly.Container) error {
//	    return container.RegisterSingleton((*Database)(nil), NewPostgres)
//	}
//
//	func (p *DatabaseProvider) Boot(container *chly.Container) error {
//	    db, err := chly.Resolve[Database](container)
//	    if err != nil {
//	        return err
//	    }
//	    return db.Connect()
//	}
type BootableProvider interface {
	ServiceProvider
	Boot(container *Container) error
}

// DeferredProvider is an optional interface for providers that should be
// registered conditionally.
//
// Example:
//
//	type CacheProvider struct{}
//
//	func (p *CacheProvider) ShouldRegister(container *chly.Container) bool {
//	    return config.CacheEnabled
//	}
type DeferredProvider interface {
	ServiceProvider
	ShouldRegister(container *Container) bool
}

// providerEntry tracks a registered provider.
type providerEntry struct {
	provider ServiceProvider
	booted   bool
}

// RegisterProvider registers a service provider with the container.
// The provider's Register method is called immediately.
// If the provider implements BootableProvider, its Boot method will be called
// when BootProviders() is invoked.
//
// Example:
//
//	container.RegisterProvider(&LoggingProvider{})
//	container.RegisterProvider(&DatabaseProvider{})
//	container.BootProviders() // Call boot phase
func (c *Container) RegisterProvider(provider ServiceProvider) error {
	if c.registry.Disposed() {
		return &DisposedError{Op: "register provider"}
	}

	if provider == nil {
		return &InvalidRegistrationError{Reason: "provider cannot be nil"}
	}

	if deferred, ok := provider.(DeferredProvider); ok {
		if !deferred.ShouldRegister(c) {
			return nil
		}
	}

	// Check if already registered (by type)
	providerType := reflect.TypeOf(provider)
	c.mu.Lock()
	for _, entry := range c.providers {
		if reflect.TypeOf(entry.provider) == providerType {
			c.mu.Unlock()
			return nil
		}
	}
	c.mu.Unlock()

	if err := provider.Register(c); err != nil {
		return fmt.Errorf("provider registration failed: %w", err)
	}

	c.mu.Lock()
	c.providers = append(c.providers, &providerEntry{provider: provider})
	c.mu.Unlock()

	return nil
}

// BootProviders calls the Boot method on all registered providers that
// implement BootableProvider, in registration order. This should be called
// after all providers have been registered.
//
// Example:
//
//	container.RegisterProvider(&DatabaseProvider{})
//	container.RegisterProvider(&CacheProvider{})
//
//	if err := container.BootProviders(); err != nil {
//	    log.Fatal(err)
//	}
func (c *Container) BootProviders() error {
	if c.registry.Disposed() {
		return &DisposedError{Op: "boot providers"}
	}

	c.mu.Lock()
	entries := make([]*providerEntry, len(c.providers))
	copy(entries, c.providers)
	c.mu.Unlock()

	for _, entry := range entries {
		if entry.booted {
			continue
		}

		if bootable, ok := entry.provider.(BootableProvider); ok {
			if err := bootable.Boot(c); err != nil {
				return fmt.Errorf("provider boot failed: %w", err)
			}
			entry.booted = true
		}
	}

	return nil
}

// GetProviders returns a list of all registered providers.
// This is useful for debugging and introspection.
func (c *Container) GetProviders() []ServiceProvider {
	c.mu.Lock()
	defer c.mu.Unlock()

	providers := make([]ServiceProvider, len(c.providers))
	for i, entry := range c.providers {
		providers[i] = entry.provider
	}
	return providers
}
