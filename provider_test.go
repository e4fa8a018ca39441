package chly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test providers

type loggingProvider struct{}

func (p *loggingProvider) Register(c *Container) error {
	return c.Register((*Logger)(nil), NewConsoleLogger)
}

type lifecycleProvider struct {
	events *[]string
}

func (p *lifecycleProvider) Register(c *Container) error {
	*p.events = append(*p.events, "register")
	return c.Register((*Database)(nil), NewMockDB)
}

func (p *lifecycleProvider) Boot(c *Container) error {
	*p.events = append(*p.events, "boot")
	return nil
}

type disabledProvider struct {
	registered bool
}

func (p *disabledProvider) Register(c *Container) error {
	p.registered = true
	return nil
}

func (p *disabledProvider) ShouldRegister(c *Container) bool {
	return false
}

type failingProvider struct{}

func (p *failingProvider) Register(c *Container) error {
	return errors.New("bad wiring")
}

type failingBootProvider struct{}

func (p *failingBootProvider) Register(c *Container) error { return nil }

func (p *failingBootProvider) Boot(c *Container) error {
	return errors.New("boot exploded")
}

// Tests

func TestRegisterProvider(t *testing.T) {
	container := New()

	require.NoError(t, container.RegisterProvider(&loggingProvider{}))

	assert.True(t, container.Has((*Logger)(nil)),
		"provider registrations apply immediately")
	assert.Len(t, container.GetProviders(), 1)
}

func TestRegisterProvider_DeduplicatedByType(t *testing.T) {
	container := New()

	require.NoError(t, container.RegisterProvider(&loggingProvider{}))
	require.NoError(t, container.RegisterProvider(&loggingProvider{}))

	assert.Len(t, container.GetProviders(), 1)
}

func TestRegisterProvider_Nil(t *testing.T) {
	container := New()

	err := container.RegisterProvider(nil)
	var invalid *InvalidRegistrationError
	require.ErrorAs(t, err, &invalid)
}

func TestRegisterProvider_Deferred(t *testing.T) {
	container := New()
	provider := &disabledProvider{}

	require.NoError(t, container.RegisterProvider(provider))

	assert.False(t, provider.registered, "ShouldRegister=false skips registration")
	assert.Empty(t, container.GetProviders())
}

func TestRegisterProvider_RegisterFails(t *testing.T) {
	container := New()

	err := container.RegisterProvider(&failingProvider{})
	require.ErrorContains(t, err, "provider registration failed")
	assert.Empty(t, container.GetProviders())
}

func TestBootProviders(t *testing.T) {
	container := New()
	var events []string

	require.NoError(t, container.RegisterProvider(&lifecycleProvider{events: &events}))
	require.NoError(t, container.BootProviders())
	require.NoError(t, container.BootProviders(), "booting twice must not re-boot")

	assert.Equal(t, []string{"register", "boot"}, events)
}

func TestBootProviders_Fails(t *testing.T) {
	container := New()

	require.NoError(t, container.RegisterProvider(&failingBootProvider{}))

	err := container.BootProviders()
	require.ErrorContains(t, err, "provider boot failed")
}

func TestProviders_DisposedLockout(t *testing.T) {
	container := New()
	require.NoError(t, container.Dispose())

	var disposed *DisposedError

	err := container.RegisterProvider(&loggingProvider{})
	require.ErrorAs(t, err, &disposed)

	err = container.BootProviders()
	require.ErrorAs(t, err, &disposed)
}
