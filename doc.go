// Package chly provides a minimal inversion-of-control container for Go.
//
// Chly maps abstract types (interfaces or concrete types) to construction
// strategies and resolves fully-built object graphs on demand, recursively
// injecting each constructor's parameters from the same container.
//
// # Features
//
//   - Constructor injection with recursive dependency resolution
//   - Transient, singleton (eager and lazy), instance, and factory lifetimes
//   - First-registration-wins semantics: re-registering a key is a no-op
//   - Ownership and ordered teardown of disposable instances
//   - Circular dependency detection
//   - Service providers for modular configuration
//   - Thread-safe registration and resolution
//
// # Quick Start
//
// Create a container, register mappings, resolve:
//
//	container := chly.New()
//	container.Register((*Logger)(nil), NewConsoleLogger)
//	container.Register((*Greeter)(nil), NewGreeter) // func NewGreeter(l Logger) *Greeter
//
//	greeter, err := chly.Resolve[Greeter](container)
//
// # Lifetimes
//
// Register produces a new instance per resolution:
//
//	container.Register((*Service)(nil), NewService)
//
// RegisterSingleton builds one shared instance eagerly, at registration time,
// so missing dependencies surface immediately:
//
//	err := container.RegisterSingleton((*Database)(nil), NewPostgres)
//
// RegisterInstance shares a value built by the caller:
//
//	chly.RegisterInstance[*Config](container, cfg)
//
// # Disposal
//
// Instances owned by the container (registered values and singletons) that
// implement Disposable are torn down exactly once when the container is
// disposed, in registration order:
//
//	defer container.Dispose()
//
// After Dispose, every registration and resolution fails with DisposedError.
//
// # Service Providers
//
// Organize registrations in reusable modules:
//
//	type DatabaseProvider struct{}
//
//	func (p *DatabaseProvider) Register(c *chly.Container) error {
//	    return c.RegisterSingleton((*Database)(nil), NewPostgres)
//	}
//
//	container.RegisterProvider(&DatabaseProvider{})
//
// # Error Handling
//
// All failures are synchronous and typed: ResolutionError names the exact
// unregistered type (a transitive failure names the missing dependency, not
// the root), ConstructionError reports an unusable construction target at
// registration time, and CircularDependencyError renders the resolution
// chain.
//
// # Thread Safety
//
// All operations are thread-safe and can be used concurrently.
package chly
