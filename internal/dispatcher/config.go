package dispatcher

import "github.com/rs/zerolog"

// Config holds dispatcher configuration options.
type Config struct {
	// Logger receives a debug entry per completed operation.
	Logger zerolog.Logger

	// EnableMetrics enables operation counting and timing.
	EnableMetrics bool
}

// DefaultConfig returns a configuration with logging disabled and no metrics.
func DefaultConfig() Config {
	return Config{
		Logger: zerolog.Nop(),
	}
}

// WithLogger returns a copy of the config using the given logger.
func (c Config) WithLogger(l zerolog.Logger) Config {
	c.Logger = l
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}
