package chly

import (
	"sync"
)

// singleton holds a lazily built instance and ensures its factory runs only
// once, even under concurrent resolution.
type singleton struct {
	value any
	err   error
	built bool
	once  sync.Once
}

// get returns the held instance, building it with factory on the first call.
// A factory error is remembered and returned by every subsequent call.
func (s *singleton) get(factory func() (any, error)) (any, error) {
	s.once.Do(func() {
		s.value, s.err = factory()
		s.built = s.err == nil
	})
	return s.value, s.err
}

// dispose tears down the held instance if it was ever built and implements
// Disposable. A holder whose instance was never resolved has nothing to tear
// down.
func (s *singleton) dispose() error {
	// Settle the once: waits for an in-flight build and blocks later ones.
	s.once.Do(func() {})

	if !s.built {
		return nil
	}
	if d, ok := s.value.(Disposable); ok {
		return d.Dispose()
	}
	return nil
}
