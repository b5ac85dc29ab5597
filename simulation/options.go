package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("simulation: invalid config")

// Config defines the shape of a simulation run.
type Config struct {
	Steps       int   // steps during which new requests arrive
	MinArrivals int   // fewest requests arriving on a step
	MaxArrivals int   // most requests arriving on a step
	MinPriority int   // lowest priority assigned
	MaxPriority int   // highest priority assigned
	Seed        int64 // seed of the default random source
}

// DefaultConfig returns ten steps of 1-10 arrivals with priorities 1-5.
func DefaultConfig() Config {
	return Config{
		Steps:       10,
		MinArrivals: 1,
		MaxArrivals: 10,
		MinPriority: 1,
		MaxPriority: 5,
		Seed:        1,
	}
}

// Validate reports the first inconsistent field.
func (c Config) Validate() error {
	switch {
	case c.Steps < 1:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	case c.MinArrivals < 0:
		return fmt.Errorf("%w: min arrivals must not be negative, got %d", ErrInvalidConfig, c.MinArrivals)
	case c.MaxArrivals < 1 || c.MaxArrivals < c.MinArrivals:
		return fmt.Errorf("%w: max arrivals %d must be positive and at least min arrivals %d",
			ErrInvalidConfig, c.MaxArrivals, c.MinArrivals)
	case c.MaxPriority < c.MinPriority:
		return fmt.Errorf("%w: max priority %d is below min priority %d",
			ErrInvalidConfig, c.MaxPriority, c.MinPriority)
	case !spanFits(c.MinArrivals, c.MaxArrivals):
		return fmt.Errorf("%w: arrival range %d..%d is too wide",
			ErrInvalidConfig, c.MinArrivals, c.MaxArrivals)
	case !spanFits(c.MinPriority, c.MaxPriority):
		return fmt.Errorf("%w: priority range %d..%d is too wide",
			ErrInvalidConfig, c.MinPriority, c.MaxPriority)
	}
	return nil
}

// spanFits reports whether the size of the range [lo, hi], hi-lo+1, fits in
// an int. lo must not exceed hi.
func spanFits(lo, hi int) bool {
	return lo > 0 || hi < math.MaxInt+lo
}

// options defines the collaborators of a simulator.
type options struct {
	logger *zap.Logger
	rnd    *rand.Rand
}

// Option is a function that configures the simulator options.
type Option func(*options)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRand sets the random source, overriding Config.Seed. A nil source
// keeps the one seeded from Config.Seed.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) {
		o.rnd = rnd
	}
}

// defaultOptions returns the default configuration.
func defaultOptions(cfg Config) options {
	return options{
		logger: zap.NewNop(),
		rnd:    rand.New(rand.NewSource(cfg.Seed)),
	}
}
