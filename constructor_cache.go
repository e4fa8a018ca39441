package chly

import (
	"reflect"
	"sync"
)

// constructorCache caches parsed constructor metadata keyed by function type.
// Signature analysis happens once per distinct constructor shape, no matter
// how many constructors or containers share it.
type constructorCache struct {
	mu sync.RWMutex

	infos map[reflect.Type]*constructorInfo
}

// constructors is the process-wide cache. Metadata depends only on the
// function type, never on a particular function value, so sharing is safe.
var constructors = &constructorCache{
	infos: make(map[reflect.Type]*constructorInfo),
}

// get retrieves or computes the metadata for a constructor function type.
func (cc *constructorCache) get(fnType reflect.Type) (*constructorInfo, error) {
	// Fast path: check cache with read lock
	cc.mu.RLock()
	info, exists := cc.infos[fnType]
	cc.mu.RUnlock()

	if exists {
		return info, nil
	}

	info, err := parseConstructor(fnType)
	if err != nil {
		return nil, err
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, exists := cc.infos[fnType]; exists {
		return cached, nil
	}

	cc.infos[fnType] = info
	return info, nil
}
