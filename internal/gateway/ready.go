package gateway

import (
	"context"
	"sync"

	"github.com/dshills/eventgate/internal/capability"
	"github.com/dshills/eventgate/internal/event"
	"github.com/dshills/eventgate/internal/native"
	"github.com/sethvargo/go-retry"
)

// ReadyStrategy is the mechanism OnDomReady selected.
type ReadyStrategy int

// Ready strategies.
const (
	// ReadyNone means the callback will never run.
	ReadyNone ReadyStrategy = iota
	// ReadyImmediate ran the callback before returning.
	ReadyImmediate
	// ReadyContentLoaded waits for the native content-loaded event.
	ReadyContentLoaded
	// ReadyDeferredScript waits for a deferred script to complete.
	ReadyDeferredScript
	// ReadyScrollProbe polls the document until it accepts a scroll.
	ReadyScrollProbe
)

// String returns the strategy name.
func (s ReadyStrategy) String() string {
	switch s {
	case ReadyImmediate:
		return "immediate"
	case ReadyContentLoaded:
		return "content-loaded"
	case ReadyDeferredScript:
		return "deferred-script"
	case ReadyScrollProbe:
		return "scroll-probe"
	default:
		return "none"
	}
}

// ReadyScriptID is the id of the deferred script written by the
// deferred-script strategy.
const ReadyScriptID = "eventgate-dom-ready"

// OnDomReady runs cb once the document structure is usable, exactly once
// and never before. WithScope and WithArgs bind the callback scope and
// arguments. ctx stops a pending scroll probe; the event-driven strategies
// ignore it.
func (g *Gateway) OnDomReady(ctx context.Context, cb event.Callback, opts ...ListenerOption) ReadyStrategy {
	if g.doc == nil || !event.Callable(cb) {
		g.log.Debug().Msg("dom ready rejected")
		return ReadyNone
	}
	cfg := newListenerConfig(opts)

	var once sync.Once
	fire := func() {
		once.Do(func() {
			result := g.exec.Execute("domready", func() {
				cb.Invoke(cfg.scope, cfg.args...)
			})
			if result.Panicked() {
				g.rec.RecordPanic("domready")
				g.log.Error().Interface("panic", result.Recovered).Msg("dom ready callback panicked")
			}
		})
	}

	if g.doc.ReadyState() != native.ReadyLoading {
		fire()
		return ReadyImmediate
	}

	if capability.SupportsContentLoaded(g.probe) {
		node := g.doc.Node()
		var h Handler
		h = Func(func(*Event, []any) {
			g.Remove(El(node), native.TypeContentLoaded, h)
			fire()
		})
		if g.Add(El(node), native.TypeContentLoaded, h) {
			return ReadyContentLoaded
		}
	}

	if g.probe.EngineFamily() == capability.FamilyIE && !g.doc.Secure() {
		if script, ok := g.doc.WriteDeferredScript(ReadyScriptID); ok {
			var h Handler
			h = Func(func(*Event, []any) {
				rs, ok := script.(native.ReadyStater)
				if !ok || rs.ReadyState() != native.ReadyComplete {
					return
				}
				g.Remove(El(script), native.TypeReadyStateChange, h)
				fire()
			})
			if g.Add(El(script), native.TypeReadyStateChange, h) {
				return ReadyDeferredScript
			}
		}
	}

	go g.pollReady(ctx, fire)
	return ReadyScrollProbe
}

// pollReady probes the document until it accepts a scroll or ctx ends.
func (g *Gateway) pollReady(ctx context.Context, fire func()) {
	err := retry.Do(ctx, retry.NewConstant(g.pollInterval), func(context.Context) error {
		if err := g.doc.DoScroll(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		g.log.Debug().Err(err).Msg("dom ready poll stopped")
		return
	}
	fire()
}
