package cascade

import (
	"math/rand"

	"github.com/dd0wney/cluso-gridsim/pkg/config"
	"github.com/dd0wney/cluso-gridsim/pkg/logging"
	"github.com/dd0wney/cluso-gridsim/pkg/metrics"
)

// Defaults for a Simulator built with no options
const (
	DefaultMaxSteps     = 20
	DefaultVariationMin = 0.5
	DefaultVariationMax = 1.5
)

// Option configures a Simulator
type Option func(*Simulator)

// WithMaxSteps caps the number of cascade iterations. Values below 1 are ignored.
func WithMaxSteps(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.maxSteps = n
		}
	}
}

// WithStopOnDisconnect ends the cascade as soon as a failure splits the grid
func WithStopOnDisconnect(stop bool) Option {
	return func(s *Simulator) {
		s.stopOnDisconnect = stop
	}
}

// WithVariationRange sets the [min, max) range random load factors are drawn from
func WithVariationRange(min, max float64) Option {
	return func(s *Simulator) {
		if min > 0 && max > min {
			s.variationMin, s.variationMax = min, max
		}
	}
}

// WithRand supplies the random source used for load variation. A Simulator
// holding its own source must not be shared between goroutines.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) {
		s.rng = r
	}
}

// WithSeed is WithRand with a freshly seeded source
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithRedistribution selects the endpoint mode used when a line fails
func WithRedistribution(mode RedistributionMode) Option {
	return func(s *Simulator) {
		s.redistribution = mode
	}
}

// WithLogger sets the logger. Runs log at DEBUG per failure and INFO per run.
func WithLogger(logger logging.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records run metrics into reg
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Simulator) {
		s.metrics = reg
	}
}

// FromConfig applies a loaded simulation config. A zero seed leaves the
// shared random source in place.
func FromConfig(cfg config.SimulationConfig) Option {
	return func(s *Simulator) {
		WithMaxSteps(cfg.MaxSteps)(s)
		WithStopOnDisconnect(cfg.StopOnDisconnect)(s)
		WithVariationRange(cfg.VariationMin, cfg.VariationMax)(s)
		if cfg.Redistribution != "" {
			WithRedistribution(RedistributionMode(cfg.Redistribution))(s)
		}
		if cfg.Seed != 0 {
			WithSeed(cfg.Seed)(s)
		}
	}
}
