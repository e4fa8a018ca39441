package chly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test types recording teardown order

type teardownLog struct {
	order []string
}

type disposableConn struct {
	log   *teardownLog
	calls int
	err   error
}

func (d *disposableConn) Dispose() error {
	d.calls++
	d.log.order = append(d.log.order, "conn")
	return d.err
}

type disposableCache struct {
	log   *teardownLog
	calls int
	err   error
}

func (d *disposableCache) Dispose() error {
	d.calls++
	d.log.order = append(d.log.order, "cache")
	return d.err
}

type disposableQueue struct {
	log   *teardownLog
	calls int
}

func (d *disposableQueue) Dispose() error {
	d.calls++
	d.log.order = append(d.log.order, "queue")
	return nil
}

// Tests

func TestDispose_PropagationInRegistrationOrder(t *testing.T) {
	container := New()
	log := &teardownLog{}

	conn := &disposableConn{log: log}
	require.NoError(t, RegisterInstance[*disposableConn](container, conn))

	var cache *disposableCache
	require.NoError(t, RegisterSingleton[*disposableCache](container, func() *disposableCache {
		cache = &disposableCache{log: log}
		return cache
	}))

	queue := &disposableQueue{log: log}
	require.NoError(t, RegisterInstance[*disposableQueue](container, queue))

	require.NoError(t, container.Dispose())

	assert.Equal(t, []string{"conn", "cache", "queue"}, log.order,
		"teardown must follow registration order")
	assert.Equal(t, 1, conn.calls)
	assert.Equal(t, 1, cache.calls)
	assert.Equal(t, 1, queue.calls)
}

func TestDispose_Idempotent(t *testing.T) {
	container := New()
	log := &teardownLog{}

	conn := &disposableConn{log: log}
	require.NoError(t, RegisterInstance[*disposableConn](container, conn))

	require.NoError(t, container.Dispose())
	require.NoError(t, container.Dispose(), "second Dispose is a no-op")

	assert.Equal(t, 1, conn.calls, "second Dispose must not invoke callbacks again")
	assert.True(t, container.Disposed())
}

func TestDispose_CollectsFailures(t *testing.T) {
	container := New()
	log := &teardownLog{}

	conn := &disposableConn{log: log, err: errors.New("conn teardown failed")}
	cache := &disposableCache{log: log, err: errors.New("cache teardown failed")}
	queue := &disposableQueue{log: log}

	require.NoError(t, RegisterInstance[*disposableConn](container, conn))
	require.NoError(t, RegisterInstance[*disposableCache](container, cache))
	require.NoError(t, RegisterInstance[*disposableQueue](container, queue))

	err := container.Dispose()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "conn teardown failed")
	assert.Contains(t, err.Error(), "cache teardown failed")
	assert.Equal(t, []string{"conn", "cache", "queue"}, log.order,
		"a failing callback must not stop the remaining teardown")
}

func TestDispose_TransientsNotOwned(t *testing.T) {
	container := New()
	log := &teardownLog{}

	require.NoError(t, Register[*disposableConn](container, func() *disposableConn {
		return &disposableConn{log: log}
	}))

	_, err := Resolve[*disposableConn](container)
	require.NoError(t, err)
	_, err = Resolve[*disposableConn](container)
	require.NoError(t, err)

	require.NoError(t, container.Dispose())
	assert.Empty(t, log.order, "transient instances are not owned by the container")
}

func TestDispose_LazySingletonNeverBuilt(t *testing.T) {
	container := New()
	log := &teardownLog{}

	require.NoError(t, RegisterLazySingleton[*disposableCache](container, func() *disposableCache {
		return &disposableCache{log: log}
	}))

	require.NoError(t, container.Dispose())
	assert.Empty(t, log.order, "a lazy singleton that was never built has nothing to tear down")
}

func TestDispose_LazySingletonBuilt(t *testing.T) {
	container := New()
	log := &teardownLog{}

	require.NoError(t, RegisterLazySingleton[*disposableCache](container, func() *disposableCache {
		return &disposableCache{log: log}
	}))

	cache, err := Resolve[*disposableCache](container)
	require.NoError(t, err)

	require.NoError(t, container.Dispose())
	assert.Equal(t, []string{"cache"}, log.order)
	assert.Equal(t, 1, cache.calls)
}

func TestDispose_Lockout(t *testing.T) {
	container := New()
	require.NoError(t, container.Dispose())

	var disposed *DisposedError

	err := container.Register((*Logger)(nil), NewConsoleLogger)
	require.ErrorAs(t, err, &disposed)

	err = container.RegisterInstance((*Logger)(nil), &ConsoleLogger{})
	require.ErrorAs(t, err, &disposed)

	err = container.RegisterSingleton((*Logger)(nil), NewConsoleLogger)
	require.ErrorAs(t, err, &disposed)

	err = container.RegisterLazySingleton((*Logger)(nil), NewConsoleLogger)
	require.ErrorAs(t, err, &disposed)

	err = container.RegisterFactory((*Logger)(nil), func(c *Container) (any, error) {
		return &ConsoleLogger{}, nil
	})
	require.ErrorAs(t, err, &disposed)

	_, err = container.Resolve((*Logger)(nil))
	require.ErrorAs(t, err, &disposed)
}

func TestDispose_LockoutBeforeFirstRegistration(t *testing.T) {
	container := New()

	require.NoError(t, container.Register((*Logger)(nil), NewConsoleLogger))
	require.NoError(t, container.Dispose())

	_, err := container.Resolve((*Logger)(nil))
	var disposed *DisposedError
	require.ErrorAs(t, err, &disposed,
		"even registered types are unreachable after disposal")
}
