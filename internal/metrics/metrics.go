// Package metrics exposes Prometheus collectors for the event subsystem.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registration mechanism label values.
const (
	MechanismStandard = "standard"
	MechanismLegacy   = "legacy"
)

// Recorder groups the event subsystem collectors.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	attaches        *prometheus.CounterVec
	detaches        *prometheus.CounterVec
	wrapperCalls    *prometheus.CounterVec
	channelFires    *prometheus.CounterVec
	hotkeyMatches   *prometheus.CounterVec
	callbackPanics  *prometheus.CounterVec
	cachedListeners prometheus.Gauge
}

// NewRecorder creates unregistered collectors under the given namespace.
// Use Register to expose them.
func NewRecorder(namespace string) *Recorder {
	return &Recorder{
		attaches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "native_attaches_total",
				Help:      "Wrappers attached to a native event source",
			},
			[]string{"mechanism"},
		),
		detaches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "native_detaches_total",
				Help:      "Wrappers detached from a native event source",
			},
			[]string{"mechanism"},
		),
		wrapperCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wrapper_invocations_total",
				Help:      "Native event firings delivered to handlers",
			},
			[]string{"type"},
		),
		channelFires: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "channel_fires_total",
				Help:      "Custom event fires",
			},
			[]string{"channel"},
		),
		hotkeyMatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hotkey_matches_total",
				Help:      "Key-down events that satisfied a key listener",
			},
			[]string{"trigger"},
		),
		callbackPanics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "callback_panics_total",
				Help:      "Handlers and subscribers that panicked",
			},
			[]string{"source"},
		),
		cachedListeners: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cached_listeners",
				Help:      "Wrappers currently held by the listener cache",
			},
		),
	}
}

// Register registers every collector with reg.
// Panics if registration fails (following prometheus convention).
func (r *Recorder) Register(reg prometheus.Registerer) {
	if r == nil {
		return
	}
	reg.MustRegister(
		r.attaches,
		r.detaches,
		r.wrapperCalls,
		r.channelFires,
		r.hotkeyMatches,
		r.callbackPanics,
		r.cachedListeners,
	)
}

// RecordAttach counts a native attachment.
func (r *Recorder) RecordAttach(mechanism string) {
	if r == nil {
		return
	}
	r.attaches.WithLabelValues(mechanism).Inc()
}

// RecordDetach counts a native detachment.
func (r *Recorder) RecordDetach(mechanism string) {
	if r == nil {
		return
	}
	r.detaches.WithLabelValues(mechanism).Inc()
}

// RecordWrapperCall counts a wrapper invocation for a native event type.
func (r *Recorder) RecordWrapperCall(eventType string) {
	if r == nil {
		return
	}
	r.wrapperCalls.WithLabelValues(eventType).Inc()
}

// RecordFire counts a custom event fire.
func (r *Recorder) RecordFire(channel string) {
	if r == nil {
		return
	}
	r.channelFires.WithLabelValues(channel).Inc()
}

// RecordHotkeyMatch counts a satisfied key listener.
func (r *Recorder) RecordHotkeyMatch(trigger string) {
	if r == nil {
		return
	}
	r.hotkeyMatches.WithLabelValues(trigger).Inc()
}

// RecordPanic counts a recovered callback panic.
func (r *Recorder) RecordPanic(source string) {
	if r == nil {
		return
	}
	r.callbackPanics.WithLabelValues(source).Inc()
}

// AddCachedListeners adjusts the cached listener gauge by delta.
func (r *Recorder) AddCachedListeners(delta int) {
	if r == nil {
		return
	}
	r.cachedListeners.Add(float64(delta))
}

// Attaches returns the attach counter for mechanism.
func (r *Recorder) Attaches(mechanism string) prometheus.Counter {
	return r.attaches.WithLabelValues(mechanism)
}

// Detaches returns the detach counter for mechanism.
func (r *Recorder) Detaches(mechanism string) prometheus.Counter {
	return r.detaches.WithLabelValues(mechanism)
}

// WrapperCalls returns the wrapper invocation counter for eventType.
func (r *Recorder) WrapperCalls(eventType string) prometheus.Counter {
	return r.wrapperCalls.WithLabelValues(eventType)
}

// ChannelFires returns the fire counter for channel.
func (r *Recorder) ChannelFires(channel string) prometheus.Counter {
	return r.channelFires.WithLabelValues(channel)
}

// HotkeyMatches returns the match counter for trigger.
func (r *Recorder) HotkeyMatches(trigger string) prometheus.Counter {
	return r.hotkeyMatches.WithLabelValues(trigger)
}

// CallbackPanics returns the panic counter for source.
func (r *Recorder) CallbackPanics(source string) prometheus.Counter {
	return r.callbackPanics.WithLabelValues(source)
}

// CachedListeners returns the cached listener gauge.
func (r *Recorder) CachedListeners() prometheus.Gauge {
	return r.cachedListeners
}
