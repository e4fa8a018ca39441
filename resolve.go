package chly

import (
	"fmt"
)

// Register is the generic form of Container.Register: it registers a
// transient construction target under T.
//
// Example:
//
//	err := chly.Register[Greeter](c, NewConsoleGreeter)
func Register[T any](c *Container, target Constructor) error {
	return c.Register((*T)(nil), target)
}

// RegisterInstance is the generic form of Container.RegisterInstance. The
// compiler guarantees the instance satisfies T.
//
// Example:
//
//	err := chly.RegisterInstance[*Config](c, cfg)
func RegisterInstance[T any](c *Container, instance T) error {
	return c.RegisterInstance((*T)(nil), instance)
}

// RegisterSingleton is the generic form of Container.RegisterSingleton.
//
// Example:
//
//	err := chly.RegisterSingleton[Database](c, NewPostgres)
func RegisterSingleton[T any](c *Container, target Constructor) error {
	return c.RegisterSingleton((*T)(nil), target)
}

// RegisterLazySingleton is the generic form of
// Container.RegisterLazySingleton.
func RegisterLazySingleton[T any](c *Container, target Constructor) error {
	return c.RegisterLazySingleton((*T)(nil), target)
}

// RegisterFactory is the generic form of Container.RegisterFactory.
func RegisterFactory[T any](c *Container, factory Factory) error {
	return c.RegisterFactory((*T)(nil), factory)
}

// Resolve is a generic helper that resolves a typed instance from the
// container. It is the recommended way to retrieve values:
//
//	db, err := chly.Resolve[Database](c)
func Resolve[T any](c *Container) (T, error) {
	var zero T

	instance, err := c.Resolve((*T)(nil))
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("cannot convert resolved %T to %T", instance, zero)
	}

	return typed, nil
}

// MustResolve is like Resolve but panics on failure. Intended for application
// wiring code where a missing registration is a programming error.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether T has a registration.
func Has[T any](c *Container) bool {
	return c.Has((*T)(nil))
}
