package native

import (
	"slices"
	"strings"
	"sync"

	"github.com/dshills/eventgate/internal/input/key"
)

// Mode selects the registration mechanisms an Element accepts.
type Mode uint8

// Registration modes.
const (
	ModeStandard Mode = 1 << iota
	ModeLegacy
	ModeBoth = ModeStandard | ModeLegacy
)

// Element is an in-memory event target.
type Element struct {
	id   string
	mode Mode

	mu         sync.RWMutex
	parent     *Element
	cacheID    string
	readyState ReadyState
	standard   map[string][]Listener
	legacy     map[string][]Listener
}

// ElementOption configures an Element.
type ElementOption func(*Element)

// WithMode restricts the registration mechanisms the element accepts.
func WithMode(m Mode) ElementOption {
	return func(el *Element) {
		if m != 0 {
			el.mode = m
		}
	}
}

// WithParent sets the element events bubble to.
func WithParent(p *Element) ElementOption {
	return func(el *Element) {
		el.parent = p
	}
}

// NewElement creates an element accepting both mechanisms.
func NewElement(id string, opts ...ElementOption) *Element {
	el := &Element{
		id:         id,
		mode:       ModeBoth,
		readyState: ReadyComplete,
		standard:   make(map[string][]Listener),
		legacy:     make(map[string][]Listener),
	}
	for _, opt := range opts {
		opt(el)
	}
	return el
}

// ID returns the element id.
func (el *Element) ID() string { return el.id }

// Mode returns the accepted registration mechanisms.
func (el *Element) Mode() Mode { return el.mode }

// Parent returns the bubbling parent or nil.
func (el *Element) Parent() *Element {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.parent
}

// SetParent changes the bubbling parent.
func (el *Element) SetParent(p *Element) {
	el.mu.Lock()
	el.parent = p
	el.mu.Unlock()
}

// CacheID implements Identifiable.
func (el *Element) CacheID() string {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.cacheID
}

// SetCacheID implements Identifiable.
func (el *Element) SetCacheID(id string) {
	el.mu.Lock()
	el.cacheID = id
	el.mu.Unlock()
}

// ReadyState implements ReadyStater. Plain elements are always complete.
func (el *Element) ReadyState() ReadyState {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.readyState
}

// AddEventListener implements StandardTarget. Duplicate registrations are
// ignored. capture is accepted for interface compatibility; dispatch has no
// capture phase.
func (el *Element) AddEventListener(typ string, l Listener, _ bool) {
	if el.mode&ModeStandard == 0 || l == nil {
		return
	}
	el.mu.Lock()
	defer el.mu.Unlock()
	if !slices.Contains(el.standard[typ], l) {
		el.standard[typ] = append(el.standard[typ], l)
	}
}

// RemoveEventListener implements StandardTarget.
func (el *Element) RemoveEventListener(typ string, l Listener, _ bool) {
	el.mu.Lock()
	defer el.mu.Unlock()
	remove(el.standard, typ, l)
}

// AttachEvent implements LegacyTarget. name must carry the "on" prefix.
func (el *Element) AttachEvent(name string, l Listener) bool {
	if el.mode&ModeLegacy == 0 || l == nil || !strings.HasPrefix(name, LegacyPrefix) {
		return false
	}
	typ := strings.TrimPrefix(name, LegacyPrefix)
	el.mu.Lock()
	defer el.mu.Unlock()
	if !slices.Contains(el.legacy[typ], l) {
		el.legacy[typ] = append(el.legacy[typ], l)
	}
	return true
}

// DetachEvent implements LegacyTarget.
func (el *Element) DetachEvent(name string, l Listener) {
	typ := strings.TrimPrefix(name, LegacyPrefix)
	el.mu.Lock()
	defer el.mu.Unlock()
	remove(el.legacy, typ, l)
}

// ListenerCount returns the number of native registrations for typ across
// both mechanisms.
func (el *Element) ListenerCount(typ string) int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.standard[typ]) + len(el.legacy[typ])
}

// Dispatch delivers e to el and then to each ancestor until propagation is
// stopped. Listeners registered during dispatch are not invoked for e, and
// listeners removed by an earlier listener are skipped.
func (el *Element) Dispatch(e *RawEvent) *RawEvent {
	if e.Target == nil {
		e.Target = el
	}
	if e.SrcElement == nil {
		e.SrcElement = el
	}
	for node := el; node != nil; node = node.Parent() {
		e.CurrentTarget = node

		node.mu.RLock()
		standard := slices.Clone(node.standard[e.Type])
		legacy := slices.Clone(node.legacy[e.Type])
		node.mu.RUnlock()

		e.Legacy = false
		for _, l := range standard {
			if node.registered(node.standard, e.Type, l) {
				l.HandleEvent(e)
			}
		}
		e.Legacy = true
		for _, l := range legacy {
			if node.registered(node.legacy, e.Type, l) {
				l.HandleEvent(e)
			}
		}
		e.Legacy = false

		if e.PropagationStopped() {
			break
		}
	}
	return e
}

// Fire dispatches a new event of type typ.
func (el *Element) Fire(typ string) *RawEvent {
	return el.Dispatch(NewRawEvent(typ))
}

// KeyDown dispatches a key-down event.
func (el *Element) KeyDown(code key.Code, mods key.Modifier) *RawEvent {
	return el.Dispatch(NewKeyEvent(TypeKeyDown, code, mods))
}

func (el *Element) setReadyState(s ReadyState) {
	el.mu.Lock()
	el.readyState = s
	el.mu.Unlock()
}

// registered reports whether l is still attached to node for typ.
func (el *Element) registered(m map[string][]Listener, typ string, l Listener) bool {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return slices.Contains(m[typ], l)
}

func remove(m map[string][]Listener, typ string, l Listener) {
	list := m[typ]
	i := slices.Index(list, l)
	if i < 0 {
		return
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(m, typ)
		return
	}
	m[typ] = list
}
