package listener

import (
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/dshills/eventgate/internal/native"
)

// Record is one cached registration.
type Record[H comparable] struct {
	Type      string
	Wrapper   native.Listener
	Handler   H
	suspended bool
}

// Suspended reports whether the wrapper is detached but preserved.
func (r Record[H]) Suspended() bool { return r.suspended }

// Cache stores wrappers by target id and event type.
type Cache[H comparable] struct {
	opts options

	mu      sync.Mutex
	ids     map[any]string
	entries map[string]map[string][]*Record[H]
}

// New creates an empty cache.
func New[H comparable](opts ...Option) *Cache[H] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[H]{
		opts:    o,
		ids:     make(map[any]string),
		entries: make(map[string]map[string][]*Record[H]),
	}
}

// ID returns the id of target, assigning one when needed. Returns false for
// targets that cannot be identified.
func (c *Cache[H]) ID(target any) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idLocked(target, true)
}

// Add caches wrapper for handler on (target, typ). Returns false if handler
// is already cached there or target cannot be identified.
func (c *Cache[H]) Add(target any, typ string, wrapper native.Listener, handler H) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.idLocked(target, true)
	if !ok {
		return false
	}
	types := c.entries[id]
	if types == nil {
		types = make(map[string][]*Record[H])
		c.entries[id] = types
	}
	for _, r := range types[typ] {
		if r.Handler == handler {
			c.opts.logger.Debug().Str("target", id).Str("type", typ).Msg("handler already cached")
			return false
		}
	}
	types[typ] = append(types[typ], &Record[H]{Type: typ, Wrapper: wrapper, Handler: handler})
	c.opts.recorder.AddCachedListeners(1)
	return true
}

// Load returns a copy of the records for (target, typ).
func (c *Cache[H]) Load(target any, typ string) ([]Record[H], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	types, ok := c.typesLocked(target)
	if !ok {
		return nil, false
	}
	list, ok := types[typ]
	if !ok {
		return nil, false
	}
	return copyRecords(list), true
}

// LoadAll returns a copy of every record for target keyed by type.
func (c *Cache[H]) LoadAll(target any) (map[string][]Record[H], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	types, ok := c.typesLocked(target)
	if !ok {
		return nil, false
	}
	out := make(map[string][]Record[H], len(types))
	for typ, list := range types {
		out[typ] = copyRecords(list)
	}
	return out, true
}

// Listeners is LoadAll.
func (c *Cache[H]) Listeners(target any) (map[string][]Record[H], bool) {
	return c.LoadAll(target)
}

// Delete removes every record for (target, typ) and returns them.
func (c *Cache[H]) Delete(target any, typ string) []Record[H] {
	return c.deleteWhere(target, typ, func(*Record[H]) bool { return true })
}

// DeleteHandler removes the record for handler on (target, typ).
func (c *Cache[H]) DeleteHandler(target any, typ string, handler H) (Record[H], bool) {
	removed := c.deleteWhere(target, typ, func(r *Record[H]) bool { return r.Handler == handler })
	if len(removed) == 0 {
		var zero Record[H]
		return zero, false
	}
	return removed[0], true
}

// Clear removes every record for target and returns them by type. The
// target keeps its id.
func (c *Cache[H]) Clear(target any) map[string][]Record[H] {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.idLocked(target, false)
	if !ok {
		return nil
	}
	types := c.entries[id]
	out := make(map[string][]Record[H], len(types))
	n := 0
	for typ, list := range types {
		out[typ] = copyRecords(list)
		n += len(list)
		release(list)
	}
	delete(c.entries, id)
	c.opts.recorder.AddCachedListeners(-n)
	return out
}

// SetSuspended marks records on target as suspended or active. An empty typ
// selects every type; a nil match selects every handler. Only records whose
// state changes are returned.
func (c *Cache[H]) SetSuspended(target any, typ string, match func(H) bool, suspended bool) []Record[H] {
	c.mu.Lock()
	defer c.mu.Unlock()

	types, ok := c.typesLocked(target)
	if !ok {
		return nil
	}
	var changed []Record[H]
	for _, t := range sortedTypes(types, typ) {
		for _, r := range types[t] {
			if r.suspended == suspended || (match != nil && !match(r.Handler)) {
				continue
			}
			r.suspended = suspended
			changed = append(changed, *r)
		}
	}
	return changed
}

// Reset drops every record and id.
func (c *Cache[H]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, types := range c.entries {
		for _, list := range types {
			n += len(list)
			release(list)
		}
	}
	c.entries = make(map[string]map[string][]*Record[H])
	c.ids = make(map[any]string)
	c.opts.recorder.AddCachedListeners(-n)
}

// Len returns the number of cached records.
func (c *Cache[H]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, types := range c.entries {
		for _, list := range types {
			n += len(list)
		}
	}
	return n
}

func (c *Cache[H]) deleteWhere(target any, typ string, match func(*Record[H]) bool) []Record[H] {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.idLocked(target, false)
	if !ok {
		return nil
	}
	types := c.entries[id]
	list := types[typ]

	var removed []Record[H]
	kept := list[:0]
	for _, r := range list {
		if match(r) {
			removed = append(removed, *r)
			*r = Record[H]{}
			continue
		}
		kept = append(kept, r)
	}
	clear(list[len(kept):])

	if len(kept) == 0 {
		delete(types, typ)
	} else {
		types[typ] = kept
	}
	if len(types) == 0 {
		delete(c.entries, id)
	}
	c.opts.recorder.AddCachedListeners(-len(removed))
	return removed
}

func (c *Cache[H]) typesLocked(target any) (map[string][]*Record[H], bool) {
	id, ok := c.idLocked(target, false)
	if !ok {
		return nil, false
	}
	types, ok := c.entries[id]
	return types, ok
}

// idLocked looks up target's id, creating it when assign is set.
func (c *Cache[H]) idLocked(target any, assign bool) (string, bool) {
	if target == nil {
		return "", false
	}
	if t, ok := target.(native.Identifiable); ok {
		if id := t.CacheID(); id != "" {
			return id, true
		}
		if !assign {
			return "", false
		}
		id := c.opts.newID()
		t.SetCacheID(id)
		return id, true
	}

	if !reflect.ValueOf(target).Comparable() {
		return "", false
	}
	if id, ok := c.ids[target]; ok {
		return id, true
	}
	if !assign {
		return "", false
	}
	id := c.opts.newID()
	c.ids[target] = id
	return id, true
}

func copyRecords[H comparable](list []*Record[H]) []Record[H] {
	out := make([]Record[H], len(list))
	for i, r := range list {
		out[i] = *r
	}
	return out
}

// release zeroes records so dropped wrappers do not retain handlers.
func release[H comparable](list []*Record[H]) {
	for i, r := range list {
		*r = Record[H]{}
		list[i] = nil
	}
}

func sortedTypes[H comparable](types map[string][]*Record[H], typ string) []string {
	if typ != "" {
		if _, ok := types[typ]; !ok {
			return nil
		}
		return []string{typ}
	}
	return slices.Sorted(maps.Keys(types))
}
