package gateway

import (
	"slices"
	"time"

	"github.com/dshills/eventgate/internal/event/dispatch"
	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/listener"
	"github.com/dshills/eventgate/internal/metrics"
	"github.com/rs/zerolog"
)

// DefaultPollInterval is the scroll-probe interval used by OnDomReady.
const DefaultPollInterval = 10 * time.Millisecond

// Option configures a Gateway.
type Option func(*Gateway)

// WithCache sets the listener cache. Gateways sharing a cache share
// registrations.
func WithCache(c *listener.Cache[Handler]) Option {
	return func(g *Gateway) {
		if c != nil {
			g.cache = c
		}
	}
}

// WithLogger sets the gateway logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Gateway) {
		g.log = logger
	}
}

// WithMatcher replaces the hotkey matcher derived from the probe.
func WithMatcher(m key.Matcher) Option {
	return func(g *Gateway) {
		g.matcher = m
		g.customMatcher = true
	}
}

// WithPollInterval sets the scroll-probe interval.
func WithPollInterval(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.pollInterval = d
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(g *Gateway) {
		g.rec = r
	}
}

// WithExecutor sets the executor that runs handlers.
func WithExecutor(e *dispatch.Executor) Option {
	return func(g *Gateway) {
		if e != nil {
			g.exec = e
		}
	}
}

// ListenerOption configures a single registration.
type ListenerOption func(*listenerConfig)

type listenerConfig struct {
	scope any
	args  []any
	stop  bool
}

func newListenerConfig(opts []ListenerOption) listenerConfig {
	var c listenerConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithScope sets the scope handlers observe. A nil scope selects the event
// target.
func WithScope(scope any) ListenerOption {
	return func(c *listenerConfig) {
		c.scope = scope
	}
}

// WithArgs binds extra arguments passed on every invocation.
func WithArgs(args ...any) ListenerOption {
	return func(c *listenerConfig) {
		c.args = slices.Clone(args)
	}
}

// WithStop makes a key listener stop the native event when it matches.
func WithStop(stop bool) ListenerOption {
	return func(c *listenerConfig) {
		c.stop = stop
	}
}
