package chly

import (
	"errors"
	"fmt"
)

// Disposable represents an instance that requires cleanup. Instances owned by
// the container (registered through RegisterInstance or built through
// RegisterSingleton and RegisterLazySingleton) have Dispose called exactly
// once when the container itself is disposed.
//
// Example:
//
//	type DatabaseConnection struct{}
//
//	func (d *DatabaseConnection) Dispose() error {
//	    return d.connection.Close()
//	}
type Disposable interface {
	Dispose() error
}

// Dispose tears down the container. The first call invokes every subscribed
// teardown callback exactly once, in registration order. Later-registered
// instances may depend on earlier-registered ones, so teardown mirrors
// construction order rather than reversing it. Callback failures do not stop
// teardown; they are collected and returned as a single joined error.
//
// Dispose is idempotent: a second call invokes no callbacks and returns nil.
// After the first call every Register*, RegisterProvider and Resolve
// operation fails with DisposedError.
func (c *Container) Dispose() error {
	if !c.registry.Dispose() {
		return nil
	}

	c.mu.Lock()
	disposers := c.disposers
	c.disposers = nil
	c.mu.Unlock()

	c.logger.Debug("disposing container", "owned", len(disposers))

	var errs []error
	for _, dispose := range disposers {
		if err := dispose(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Disposed reports whether Dispose has been called.
func (c *Container) Disposed() bool {
	return c.registry.Disposed()
}

// enrollInstance subscribes a pre-built instance for teardown if it exposes
// the disposal capability.
func (c *Container) enrollInstance(instance any) {
	d, ok := instance.(Disposable)
	if !ok {
		return
	}

	c.enroll(func() error {
		if err := d.Dispose(); err != nil {
			return fmt.Errorf("disposing %T: %w", instance, err)
		}
		return nil
	})
}

// enroll appends a teardown callback to the subscription list.
func (c *Container) enroll(dispose func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposers = append(c.disposers, dispose)
}
