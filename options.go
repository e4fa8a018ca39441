package chly

import "log/slog"

// Option is a function that configures a Container.
type Option func(*Container) error

// WithLogger sets the structured logger used for container debug events.
// Registration, resolution, and disposal are logged at debug level. Defaults
// to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) error {
		if logger == nil {
			return &InvalidRegistrationError{Reason: "logger cannot be nil"}
		}
		c.logger = logger
		return nil
	}
}
