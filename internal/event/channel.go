package event

import (
	"slices"
	"sync"
)

// Subscriber is a registration on a Channel.
type Subscriber struct {
	callback Callback
	scope    any
	args     []any
}

// Callback returns the subscribed callback.
func (s Subscriber) Callback() Callback { return s.callback }

// Scope returns the scope the callback observes.
func (s Subscriber) Scope() any { return s.scope }

// Args returns a copy of the bound arguments.
func (s Subscriber) Args() []any { return slices.Clone(s.args) }

// Channel is a named custom event.
type Channel struct {
	name  string
	scope any
	cfg   config

	mu   sync.RWMutex
	subs []*Subscriber
}

// NewChannel creates a channel. scope is the default scope for subscribers
// that do not supply one.
func NewChannel(name string, scope any, opts ...Option) *Channel {
	return &Channel{
		name:  name,
		scope: scope,
		cfg:   newConfig(opts),
	}
}

// Name returns the channel name.
func (c *Channel) Name() string { return c.name }

// Scope returns the default scope.
func (c *Channel) Scope() any { return c.scope }

// Subscribe appends cb with its scope and bound args. A nil scope selects
// the channel default. Returns false if cb is not callable or already
// subscribed.
func (c *Channel) Subscribe(cb Callback, scope any, args ...any) bool {
	if !Callable(cb) {
		c.cfg.logger.Debug().Str("channel", c.name).Msg("subscribe rejected: callback not callable")
		return false
	}
	if scope == nil {
		scope = c.scope
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexLocked(cb) >= 0 {
		return false
	}
	c.subs = append(c.subs, &Subscriber{
		callback: cb,
		scope:    scope,
		args:     slices.Clone(args),
	})
	return true
}

// Unsubscribe removes cb. A nil cb removes every subscriber.
// Returns true if anything was removed.
func (c *Channel) Unsubscribe(cb Callback) bool {
	if cb == nil {
		return c.UnsubscribeAll() > 0
	}
	if !Callable(cb) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(cb)
	if i < 0 {
		return false
	}
	*c.subs[i] = Subscriber{}
	c.subs = slices.Delete(c.subs, i, i+1)
	return true
}

// UnsubscribeAll removes every subscriber and returns how many were removed.
func (c *Channel) UnsubscribeAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.subs)
	for i, s := range c.subs {
		*s = Subscriber{}
		c.subs[i] = nil
	}
	c.subs = nil
	return n
}

// IsSubscribed reports whether cb is currently subscribed.
func (c *Channel) IsSubscribed(cb Callback) bool {
	if !Callable(cb) {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexLocked(cb) >= 0
}

// Subscribers returns a copy of the subscriber list in fire order.
func (c *Channel) Subscribers() []Subscriber {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Subscriber, len(c.subs))
	for i, s := range c.subs {
		out[i] = Subscriber{callback: s.callback, scope: s.scope, args: slices.Clone(s.args)}
	}
	return out
}

// Len returns the number of subscribers.
func (c *Channel) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}

// Fire invokes every subscriber in insertion order and returns the number
// invoked. Each callback receives its bound args followed by args.
func (c *Channel) Fire(args ...any) int {
	c.mu.RLock()
	snapshot := slices.Clone(c.subs)
	c.mu.RUnlock()

	c.cfg.recorder.RecordFire(c.name)

	invoked := 0
	for _, s := range snapshot {
		c.mu.RLock()
		cb, scope := s.callback, s.scope
		callArgs := make([]any, 0, len(s.args)+len(args))
		callArgs = append(callArgs, s.args...)
		c.mu.RUnlock()

		// Removed by an earlier callback in this fire.
		if cb == nil {
			continue
		}
		callArgs = append(callArgs, args...)

		result := c.cfg.executor.Execute(c.name, func() {
			cb.Invoke(scope, callArgs...)
		})
		invoked++
		if result.Panicked() {
			c.cfg.recorder.RecordPanic(c.name)
			c.cfg.logger.Error().
				Str("channel", c.name).
				Interface("panic", result.Recovered).
				Msg("subscriber panicked")
		}
	}
	return invoked
}

func (c *Channel) indexLocked(cb Callback) int {
	return slices.IndexFunc(c.subs, func(s *Subscriber) bool {
		return s.callback == cb
	})
}
