package gateway

import (
	"slices"
	"time"

	"github.com/dshills/eventgate/internal/capability"
	"github.com/dshills/eventgate/internal/event/dispatch"
	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/listener"
	"github.com/dshills/eventgate/internal/metrics"
	"github.com/dshills/eventgate/internal/native"
	"github.com/rs/zerolog"
)

// Gateway attaches handlers to native targets.
type Gateway struct {
	doc   native.Document
	probe capability.Probe
	cache *listener.Cache[Handler]
	exec  *dispatch.Executor
	log   zerolog.Logger
	rec   *metrics.Recorder

	matcher       key.Matcher
	customMatcher bool
	pollInterval  time.Duration
}

// New creates a gateway over doc. doc may be nil, in which case id refs
// never resolve and OnDomReady is unavailable. A nil probe is treated as an
// unknown legacy environment.
func New(doc native.Document, probe capability.Probe, opts ...Option) *Gateway {
	if probe == nil {
		probe = capability.Static{}
	}
	g := &Gateway{
		doc:          doc,
		probe:        probe,
		log:          zerolog.Nop(),
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.cache == nil {
		g.cache = listener.New[Handler](listener.WithLogger(g.log), listener.WithRecorder(g.rec))
	}
	if g.exec == nil {
		g.exec = dispatch.NewExecutor()
	}
	if !g.customMatcher {
		g.matcher = key.NewMatcher(key.WithGeckoPad(capability.IsGecko(probe)))
	}
	return g
}

// Cache returns the listener cache.
func (g *Gateway) Cache() *listener.Cache[Handler] { return g.cache }

// Matcher returns the hotkey matcher.
func (g *Gateway) Matcher() key.Matcher { return g.matcher }

// Document returns the document, which may be nil.
func (g *Gateway) Document() native.Document { return g.doc }

// wrapper is the listener registered with the native source.
type wrapper struct {
	g       *Gateway
	typ     string
	handler Handler
	scope   any
	args    []any
}

func (w *wrapper) HandleEvent(raw *native.RawEvent) {
	ev := newEvent(raw, w.scope)
	args := slices.Clone(w.args)

	w.g.rec.RecordWrapperCall(w.typ)
	result := w.g.exec.Execute(w.typ, func() {
		w.handler.HandleEvent(ev, args)
	})
	if result.Panicked() {
		w.g.rec.RecordPanic(w.typ)
		w.g.log.Error().
			Str("type", w.typ).
			Interface("panic", result.Recovered).
			Msg("event handler panicked")
	}
}

// Add attaches h to every target of ref for native events of type typ.
// Returns true only if every target was attached. A handler already
// attached to a target for typ is left alone and reported as false.
func (g *Gateway) Add(ref Ref, typ string, h Handler, opts ...ListenerOption) bool {
	if !callable(h) {
		g.log.Debug().Str("type", typ).Msg("add rejected: handler not callable")
		return false
	}
	targets := g.resolve(ref)
	if len(targets) == 0 {
		g.log.Debug().Str("type", typ).Msg("add rejected: no target")
		return false
	}
	cfg := newListenerConfig(opts)

	ok := true
	for _, t := range targets {
		if !g.addOne(t, typ, h, cfg) {
			ok = false
		}
	}
	return ok
}

// On is Add.
func (g *Gateway) On(ref Ref, typ string, h Handler, opts ...ListenerOption) bool {
	return g.Add(ref, typ, h, opts...)
}

// AddEventListener is Add.
func (g *Gateway) AddEventListener(ref Ref, typ string, h Handler, opts ...ListenerOption) bool {
	return g.Add(ref, typ, h, opts...)
}

// AddEvent is Add.
func (g *Gateway) AddEvent(ref Ref, typ string, h Handler, opts ...ListenerOption) bool {
	return g.Add(ref, typ, h, opts...)
}

func (g *Gateway) addOne(target any, typ string, h Handler, cfg listenerConfig) bool {
	w := &wrapper{g: g, typ: typ, handler: h, scope: cfg.scope, args: cfg.args}
	if !g.cache.Add(target, typ, w, h) {
		return false
	}
	if !g.attach(target, typ, w) {
		g.cache.DeleteHandler(target, typ, h)
		g.log.Debug().Str("type", typ).Msg("target supports no registration mechanism")
		return false
	}
	return true
}

// Remove detaches handlers from every target of ref.
//
// With a handler, only that handler is removed from typ. With a nil handler
// every handler of typ is removed. An empty typ removes every type and drops
// the target's cache entry. Returns true if anything was removed.
func (g *Gateway) Remove(ref Ref, typ string, h Handler) bool {
	if h != nil && !callable(h) {
		return false
	}
	removed := false
	for _, t := range g.resolve(ref) {
		if g.removeOne(t, typ, h) {
			removed = true
		}
	}
	return removed
}

// Un is Remove.
func (g *Gateway) Un(ref Ref, typ string, h Handler) bool {
	return g.Remove(ref, typ, h)
}

func (g *Gateway) removeOne(target any, typ string, h Handler) bool {
	var records []listener.Record[Handler]
	switch {
	case typ == "" && h == nil:
		for _, list := range g.cache.Clear(target) {
			records = append(records, list...)
		}
	case typ == "":
		all, _ := g.cache.LoadAll(target)
		for t := range all {
			if r, ok := g.cache.DeleteHandler(target, t, h); ok {
				records = append(records, r)
			}
		}
	case h == nil:
		records = g.cache.Delete(target, typ)
	default:
		if r, ok := g.cache.DeleteHandler(target, typ, h); ok {
			records = append(records, r)
		}
	}

	for _, r := range records {
		if !r.Suspended() {
			g.detach(target, r.Type, r.Wrapper)
		}
	}
	return len(records) > 0
}

// Suspend detaches matching handlers from the native source while keeping
// their cache entries. An empty typ selects every type; a nil handler
// selects every handler. Returns true if anything was suspended.
func (g *Gateway) Suspend(ref Ref, typ string, h Handler) bool {
	return g.setSuspended(ref, typ, h, true)
}

// Restore re-attaches suspended handlers using their original wrappers.
// No cache entries are created. Returns true if anything was restored.
func (g *Gateway) Restore(ref Ref, typ string, h Handler) bool {
	return g.setSuspended(ref, typ, h, false)
}

func (g *Gateway) setSuspended(ref Ref, typ string, h Handler, suspended bool) bool {
	if h != nil && !callable(h) {
		return false
	}
	var match func(Handler) bool
	if h != nil {
		match = func(c Handler) bool { return c == h }
	}

	changed := false
	for _, t := range g.resolve(ref) {
		for _, r := range g.cache.SetSuspended(t, typ, match, suspended) {
			changed = true
			if suspended {
				g.detach(t, r.Type, r.Wrapper)
				continue
			}
			if !g.attach(t, r.Type, r.Wrapper) {
				g.log.Debug().Str("type", r.Type).Msg("restore failed to attach")
			}
		}
	}
	return changed
}

// GetListeners returns the cached registrations of the first target of ref.
func (g *Gateway) GetListeners(ref Ref) (map[string][]listener.Record[Handler], bool) {
	targets := g.resolve(ref)
	if len(targets) == 0 {
		return nil, false
	}
	return g.cache.Listeners(targets[0])
}

// CloneListeners attaches every handler cached on the first target of src
// to each target of dst with fresh wrappers, keeping bound scope, args and
// suspended state.
// A non-empty typ restricts cloning to that type. Returns true if at least
// one handler was attached.
func (g *Gateway) CloneListeners(src, dst Ref, typ string) bool {
	sources := g.resolve(src)
	if len(sources) == 0 {
		return false
	}
	var records []listener.Record[Handler]
	if typ != "" {
		records, _ = g.cache.Load(sources[0], typ)
	} else {
		all, _ := g.cache.LoadAll(sources[0])
		for _, list := range all {
			records = append(records, list...)
		}
	}

	cloned := false
	for _, t := range g.resolve(dst) {
		for _, r := range records {
			var cfg listenerConfig
			if w, ok := r.Wrapper.(*wrapper); ok {
				cfg.scope = w.scope
				cfg.args = w.args
			}
			if !g.addOne(t, r.Type, r.Handler, cfg) {
				continue
			}
			cloned = true
			if r.Suspended() {
				g.setSuspended(El(t), r.Type, r.Handler, true)
			}
		}
	}
	return cloned
}

// attach registers l with target. The standard mechanism is used when the
// probe reports it and the target implements it; otherwise the legacy one.
func (g *Gateway) attach(target any, typ string, l native.Listener) bool {
	if g.probe.SupportsNativeListeners() && native.SupportsStandard(target) {
		if st, ok := target.(native.StandardTarget); ok {
			st.AddEventListener(typ, l, false)
			g.rec.RecordAttach(metrics.MechanismStandard)
			return true
		}
	}
	if lt, ok := target.(native.LegacyTarget); ok {
		if lt.AttachEvent(native.LegacyName(typ), l) {
			g.rec.RecordAttach(metrics.MechanismLegacy)
			return true
		}
	}
	return false
}

func (g *Gateway) detach(target any, typ string, l native.Listener) {
	if g.probe.SupportsNativeListeners() && native.SupportsStandard(target) {
		if st, ok := target.(native.StandardTarget); ok {
			st.RemoveEventListener(typ, l, false)
			g.rec.RecordDetach(metrics.MechanismStandard)
			return
		}
	}
	if lt, ok := target.(native.LegacyTarget); ok {
		lt.DetachEvent(native.LegacyName(typ), l)
		g.rec.RecordDetach(metrics.MechanismLegacy)
	}
}
