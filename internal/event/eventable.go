package event

import (
	"maps"
	"sync"
)

// Host is implemented by any object carrying named custom events.
type Host interface {
	CreateEvent(name string, scope any) *Channel
	FireEvent(name string, args ...any) bool
	Subscribe(name string, cb Callback, scope any, args ...any) bool
	Unsubscribe(name string, cb Callback) bool
	Events() map[string]*Channel
}

var _ Host = (*Eventable)(nil)

// Eventable gives its owner a private set of named channels.
// The zero value is usable; its channels default to a nil scope.
type Eventable struct {
	owner any
	opts  []Option

	mu     sync.RWMutex
	events map[string]*Channel
}

// NewEventable creates the capability for owner. owner is the default scope
// of channels created without one. opts apply to every channel.
func NewEventable(owner any, opts ...Option) *Eventable {
	return &Eventable{
		owner:  owner,
		opts:   opts,
		events: make(map[string]*Channel),
	}
}

// CreateEvent creates the channel name, replacing any existing one.
// A nil scope selects the owner.
func (e *Eventable) CreateEvent(name string, scope any) *Channel {
	if scope == nil {
		scope = e.owner
	}
	ch := NewChannel(name, scope, e.opts...)

	e.mu.Lock()
	if e.events == nil {
		e.events = make(map[string]*Channel)
	}
	e.events[name] = ch
	e.mu.Unlock()

	return ch
}

// Event returns the channel name or nil.
func (e *Eventable) Event(name string) *Channel {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.events[name]
}

// FireEvent fires the channel name. Returns false if it does not exist.
func (e *Eventable) FireEvent(name string, args ...any) bool {
	ch := e.Event(name)
	if ch == nil {
		return false
	}
	ch.Fire(args...)
	return true
}

// Subscribe subscribes cb to the channel name.
func (e *Eventable) Subscribe(name string, cb Callback, scope any, args ...any) bool {
	ch := e.Event(name)
	if ch == nil {
		return false
	}
	return ch.Subscribe(cb, scope, args...)
}

// Unsubscribe removes cb from the channel name; a nil cb removes all.
func (e *Eventable) Unsubscribe(name string, cb Callback) bool {
	ch := e.Event(name)
	if ch == nil {
		return false
	}
	return ch.Unsubscribe(cb)
}

// Events returns a copy of the name to channel mapping.
func (e *Eventable) Events() map[string]*Channel {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.events == nil {
		return map[string]*Channel{}
	}
	return maps.Clone(e.events)
}
