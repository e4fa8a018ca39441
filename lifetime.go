package chly

// Lifetime represents the lifecycle strategy for a registered type.
type Lifetime string

const (
	// LifetimeTransient creates a new instance on every resolution.
	// This is the lifetime produced by Register().
	LifetimeTransient Lifetime = "transient"

	// LifetimeSingleton reuses one instance for all resolutions. With
	// RegisterSingleton the instance is built eagerly at registration time;
	// with RegisterLazySingleton it is built on first resolution.
	LifetimeSingleton Lifetime = "singleton"

	// LifetimeInstance returns a pre-built value supplied by the caller
	// through RegisterInstance.
	LifetimeInstance Lifetime = "instance"

	// LifetimeFactory calls a caller-supplied factory function on every
	// resolution.
	LifetimeFactory Lifetime = "factory"
)

// String returns the string representation of the lifetime.
func (l Lifetime) String() string {
	return string(l)
}

// Factory is a function that creates instances dynamically. It receives the
// container to resolve nested dependencies and returns the created instance
// or an error.
//
// Example:
//
//	factory := func(c *chly.Container) (any, error) {
//	    cfg, err := chly.Resolve[*Config](c)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewConnection(cfg.DSN), nil
//	}
//	container.RegisterFactory((*Connection)(nil), factory)
type Factory func(c *Container) (any, error)
