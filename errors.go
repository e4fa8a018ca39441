package chly

import (
	"fmt"
	"reflect"
	"strings"
)

// ResolutionError is returned when a requested type, or a transitive
// dependency of it, has no registration. Type names the exact missing type,
// which for a transitive failure is the unregistered dependency rather than
// the root type requested.
type ResolutionError struct {
	Type reflect.Type
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no registration found for type %v. Did you forget to call Register()?", e.Type)
}

// DisposedError is returned when any registration or resolution operation is
// invoked after the container has been disposed.
type DisposedError struct {
	Op string
}

func (e *DisposedError) Error() string {
	return fmt.Sprintf("cannot %s: container has been disposed", e.Op)
}

// ConstructionError is returned at registration time when a construction
// target cannot be used for injection.
type ConstructionError struct {
	Type   reflect.Type
	Reason string
}

func (e *ConstructionError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("cannot construct: %s", e.Reason)
	}
	return fmt.Sprintf("cannot construct %v: %s", e.Type, e.Reason)
}

// InvalidRegistrationError is returned when a registration is called with
// invalid arguments, such as a nil type token or a nil instance.
type InvalidRegistrationError struct {
	Reason string
}

func (e *InvalidRegistrationError) Error() string {
	return fmt.Sprintf("invalid registration: %s", e.Reason)
}

// CircularDependencyError is returned when resolution meets a dependency
// cycle. Chain holds the resolution path, ending with the type that closed
// the cycle.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	if len(e.Chain) == 0 {
		return "circular dependency detected"
	}
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Chain, " -> "))
}
