package chly

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/Domeee/chlycontainer/registry"
)

// resolverFunc is the internal factory shape stored in the registry. The
// stack carries the types currently being resolved so that dependency cycles
// surface as errors instead of unbounded recursion; it is threaded by
// parameter, never shared between resolutions.
type resolverFunc func(c *Container, stack []reflect.Type) (any, error)

// Container is the inversion-of-control container. It maps abstract types to
// factories, resolves fully-built object graphs on demand, and owns the
// teardown of every instance registered or built through it.
type Container struct {
	registry *registry.Registry
	logger   *slog.Logger

	mu        sync.Mutex
	disposers []func() error
	providers []*providerEntry
	metrics   containerMetrics
}

// New creates an empty Container.
// Options can be provided to configure the container behavior.
//
// Example:
//
//	container := chly.New()
//	// or with options:
//	container := chly.New(chly.WithLogger(logger))
func New(options ...Option) *Container {
	c := &Container{
		registry: registry.New(),
		logger:   slog.Default(),
	}

	for _, opt := range options {
		if err := opt(c); err != nil {
			panic(fmt.Sprintf("failed to apply option: %v", err))
		}
	}

	return c
}

// Register maps an abstract type to a construction target with transient
// lifetime: every resolution builds a fresh instance and its whole dependency
// subtree. The abstractType is a pointer type token like (*Logger)(nil).
//
// The target's factory is derived once, here; its dependencies are resolved
// lazily on each Resolve call, so a registration may reference types that are
// not registered yet, or even itself.
//
// If the abstract type is already registered the call is a no-op: a key keeps
// its first registration for the container's lifetime.
//
// Example:
//
//	container.Register((*Greeter)(nil), NewConsoleGreeter)
//	// Where: func NewConsoleGreeter(logger Logger) *ConsoleGreeter
func (c *Container) Register(abstractType any, target Constructor) error {
	if c.registry.Disposed() {
		return &DisposedError{Op: "register"}
	}

	t, err := abstractTypeOf(abstractType)
	if err != nil {
		return err
	}

	if c.registry.Has(t) {
		c.logger.Debug("registration ignored, type already registered", "type", t.String())
		return nil
	}

	factory, resultType, err := c.buildFactory(target)
	if err != nil {
		return err
	}

	if err := checkAssignable(resultType, t); err != nil {
		return err
	}

	c.store(t, LifetimeTransient, factory)
	return nil
}

// RegisterInstance maps an abstract type to a pre-built instance. Every
// resolution returns that exact instance. If the instance implements
// Disposable it is enrolled for teardown on container disposal.
//
// The abstractType token names the key: for an interface key pass a token
// like (*Logger)(nil); for a concrete pointer key prefer the generic
// RegisterInstance helper, which spells the key exactly.
//
// Example:
//
//	container.RegisterInstance((*Logger)(nil), &ConsoleLogger{})
func (c *Container) RegisterInstance(abstractType, instance any) error {
	if c.registry.Disposed() {
		return &DisposedError{Op: "register"}
	}

	t, err := abstractTypeOf(abstractType)
	if err != nil {
		return err
	}

	if instance == nil {
		return &InvalidRegistrationError{Reason: "instance cannot be nil"}
	}

	if err := checkAssignable(reflect.TypeOf(instance), t); err != nil {
		return err
	}

	if c.store(t, LifetimeInstance, constantFactory(instance)) {
		c.enrollInstance(instance)
	}
	return nil
}

// RegisterSingleton maps an abstract type to a construction target and builds
// the one shared instance immediately: a missing dependency or a dependency
// cycle surfaces from this call, not from a later Resolve. The instance is
// enrolled for teardown if it implements Disposable.
//
// Example:
//
//	err := container.RegisterSingleton((*Database)(nil), NewPostgres)
func (c *Container) RegisterSingleton(abstractType any, target Constructor) error {
	if c.registry.Disposed() {
		return &DisposedError{Op: "register"}
	}

	t, err := abstractTypeOf(abstractType)
	if err != nil {
		return err
	}

	if c.registry.Has(t) {
		c.logger.Debug("registration ignored, type already registered", "type", t.String())
		return nil
	}

	factory, resultType, err := c.buildFactory(target)
	if err != nil {
		return err
	}

	if err := checkAssignable(resultType, t); err != nil {
		return err
	}

	instance, err := factory(c, []reflect.Type{t})
	if err != nil {
		return err
	}

	if c.store(t, LifetimeSingleton, constantFactory(instance)) {
		c.enrollInstance(instance)
	}
	return nil
}

// RegisterLazySingleton is RegisterSingleton with deferred construction: the
// shared instance is built on the first Resolve call and reused afterwards,
// so missing dependencies surface lazily. Construction is guarded so it runs
// exactly once even under concurrent resolution. The instance, if it
// implements Disposable and was ever built, is torn down on container
// disposal in this registration's subscription slot.
func (c *Container) RegisterLazySingleton(abstractType any, target Constructor) error {
	if c.registry.Disposed() {
		return &DisposedError{Op: "register"}
	}

	t, err := abstractTypeOf(abstractType)
	if err != nil {
		return err
	}

	if c.registry.Has(t) {
		c.logger.Debug("registration ignored, type already registered", "type", t.String())
		return nil
	}

	factory, resultType, err := c.buildFactory(target)
	if err != nil {
		return err
	}

	if err := checkAssignable(resultType, t); err != nil {
		return err
	}

	holder := &singleton{}
	lazy := func(cc *Container, stack []reflect.Type) (any, error) {
		return holder.get(func() (any, error) {
			return factory(cc, stack)
		})
	}

	if c.store(t, LifetimeSingleton, lazy) {
		c.enroll(holder.dispose)
	}
	return nil
}

// RegisterFactory maps an abstract type to a caller-supplied factory function
// that is invoked on every resolution.
//
// Example:
//
//	container.RegisterFactory((*Connection)(nil), func(c *chly.Container) (any, error) {
//	    cfg, err := chly.Resolve[*Config](c)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return Dial(cfg.Addr)
//	})
func (c *Container) RegisterFactory(abstractType any, factory Factory) error {
	if c.registry.Disposed() {
		return &DisposedError{Op: "register"}
	}

	t, err := abstractTypeOf(abstractType)
	if err != nil {
		return err
	}

	if factory == nil {
		return &InvalidRegistrationError{Reason: "factory cannot be nil"}
	}

	wrapped := func(cc *Container, _ []reflect.Type) (any, error) {
		return factory(cc)
	}

	c.store(t, LifetimeFactory, wrapped)
	return nil
}

// Resolve returns an instance for the registered abstract type. The
// abstractType is the same pointer type token used at registration, like
// (*Logger)(nil). Prefer the generic Resolve helper over calling this method
// directly.
//
// An unregistered type fails with ResolutionError naming that type; when a
// transitive dependency is the one missing, the error names the dependency,
// not the root type requested.
func (c *Container) Resolve(abstractType any) (any, error) {
	t, err := abstractTypeOf(abstractType)
	if err != nil {
		return nil, err
	}

	c.metrics.resolutions.Add(1)

	instance, err := c.resolve(t, nil)
	if err != nil {
		c.metrics.failures.Add(1)
		return nil, err
	}

	c.logger.Debug("resolved", "type", t.String())
	return instance, nil
}

// resolve is the recursive core shared by Resolve and by every constructing
// factory. The stack holds the types whose factories are currently executing.
func (c *Container) resolve(t reflect.Type, stack []reflect.Type) (any, error) {
	if c.registry.Disposed() {
		return nil, &DisposedError{Op: "resolve"}
	}

	for _, pending := range stack {
		if pending == t {
			return nil, &CircularDependencyError{Chain: typeChain(stack, t)}
		}
	}

	reg, ok := c.registry.Get(t)
	if !ok {
		return nil, &ResolutionError{Type: t}
	}

	factory := reg.First().(resolverFunc)
	return factory(c, append(stack, t))
}

// Has reports whether the abstract type has a registration.
func (c *Container) Has(abstractType any) bool {
	t, err := abstractTypeOf(abstractType)
	if err != nil {
		return false
	}
	return c.registry.Has(t)
}

// Size returns the number of registered types.
func (c *Container) Size() int {
	return c.registry.Len()
}

// Keys returns the names of all registered types, sorted.
func (c *Container) Keys() []string {
	types := c.registry.Types()
	keys := make([]string, 0, len(types))
	for _, t := range types {
		keys = append(keys, t.String())
	}
	sort.Strings(keys)
	return keys
}

// store places a factory in the registry under the abstract type. It reports
// whether the registration was stored; false means the key was already taken
// and the call was a no-op.
func (c *Container) store(t reflect.Type, lifetime Lifetime, factory resolverFunc) bool {
	stored := c.registry.Register(&registry.Registration{
		AbstractType: t,
		Lifetime:     lifetime.String(),
		Factories:    []any{factory},
	})

	if stored {
		c.metrics.registrations.Add(1)
		c.logger.Debug("registered", "type", t.String(), "lifetime", lifetime.String())
	} else {
		c.logger.Debug("registration ignored, type already registered", "type", t.String())
	}
	return stored
}

// abstractTypeOf extracts the registry key from a pointer type token such as
// (*Logger)(nil).
func abstractTypeOf(token any) (reflect.Type, error) {
	if token == nil {
		return nil, &InvalidRegistrationError{Reason: "type token cannot be nil"}
	}

	t := reflect.TypeOf(token)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, nil
}

// checkAssignable verifies a factory's result type satisfies the abstract
// type it is being registered under.
func checkAssignable(resultType, abstractType reflect.Type) error {
	if !resultType.AssignableTo(abstractType) {
		return &InvalidRegistrationError{
			Reason: fmt.Sprintf("%v is not assignable to %v", resultType, abstractType),
		}
	}
	return nil
}

// typeChain renders a resolution stack plus the type that closed the cycle.
func typeChain(stack []reflect.Type, t reflect.Type) []string {
	chain := make([]string, 0, len(stack)+1)
	for _, s := range stack {
		chain = append(chain, s.String())
	}
	return append(chain, t.String())
}
