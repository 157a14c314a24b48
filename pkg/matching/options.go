package matching

import (
	"digital.vasic.correspond/pkg/logging"
	"digital.vasic.correspond/pkg/metrics"
)

// Option configures a matching run.
type Option func(*config)

type config struct {
	logger  logging.Logger
	metrics metrics.MatchMetrics
}

// WithLogger sets the logger that receives one debug entry per
// run and a warning when the correspondence failed.
func WithLogger(logger logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics sink for matching runs.
func WithMetrics(m metrics.MatchMetrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

func newConfig(opts []Option) config {
	c := config{
		logger:  logging.NullLogger{},
		metrics: metrics.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
