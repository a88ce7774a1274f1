package listener

import (
	"github.com/dshills/eventgate/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Option configures a Cache.
type Option func(*options)

type options struct {
	newID    func() string
	logger   zerolog.Logger
	recorder *metrics.Recorder
}

func defaultOptions() options {
	return options{
		newID:  uuid.NewString,
		logger: zerolog.Nop(),
	}
}

// WithIDGenerator replaces the target id generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithLogger sets the cache logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}
