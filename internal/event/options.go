package event

import (
	"github.com/dshills/eventgate/internal/event/dispatch"
	"github.com/dshills/eventgate/internal/metrics"
	"github.com/rs/zerolog"
)

// Option configures a Channel or an Eventable.
type Option func(*config)

// config holds channel dependencies shared by every channel of a host.
type config struct {
	logger   zerolog.Logger
	executor *dispatch.Executor
	recorder *metrics.Recorder
}

func defaultConfig() config {
	return config{
		logger:   zerolog.Nop(),
		executor: dispatch.NewExecutor(),
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithLogger sets the logger used to report recovered callback panics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithExecutor sets the executor that runs callbacks.
func WithExecutor(e *dispatch.Executor) Option {
	return func(c *config) {
		if e != nil {
			c.executor = e
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}
