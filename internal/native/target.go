package native

// Listener receives native events.
// Implementations must be comparable; identity is used for removal.
type Listener interface {
	HandleEvent(e *RawEvent)
}

type listenerFunc struct {
	fn func(*RawEvent)
}

func (l *listenerFunc) HandleEvent(e *RawEvent) { l.fn(e) }

// ListenerFunc adapts fn to a Listener with pointer identity.
func ListenerFunc(fn func(*RawEvent)) Listener {
	return &listenerFunc{fn: fn}
}

// StandardTarget supports the standard registration mechanism.
type StandardTarget interface {
	AddEventListener(typ string, l Listener, capture bool)
	RemoveEventListener(typ string, l Listener, capture bool)
}

// LegacyTarget supports the legacy registration mechanism. Names carry the
// "on" prefix.
type LegacyTarget interface {
	AttachEvent(name string, l Listener) bool
	DetachEvent(name string, l Listener)
}

// ModeReporter is implemented by targets that accept only some
// registration mechanisms.
type ModeReporter interface {
	Mode() Mode
}

// SupportsStandard reports whether target accepts the standard mechanism.
func SupportsStandard(target any) bool {
	if _, ok := target.(StandardTarget); !ok {
		return false
	}
	if m, ok := target.(ModeReporter); ok {
		return m.Mode()&ModeStandard != 0
	}
	return true
}

// SupportsLegacy reports whether target accepts the legacy mechanism.
func SupportsLegacy(target any) bool {
	if _, ok := target.(LegacyTarget); !ok {
		return false
	}
	if m, ok := target.(ModeReporter); ok {
		return m.Mode()&ModeLegacy != 0
	}
	return true
}

// Identifiable targets carry the synthetic id assigned by the listener cache.
type Identifiable interface {
	CacheID() string
	SetCacheID(id string)
}

// ReadyState is a document or script loading state.
type ReadyState string

// Ready states in transition order.
const (
	ReadyLoading     ReadyState = "loading"
	ReadyInteractive ReadyState = "interactive"
	ReadyComplete    ReadyState = "complete"
)

func (s ReadyState) rank() int {
	switch s {
	case ReadyLoading:
		return 0
	case ReadyInteractive:
		return 1
	case ReadyComplete:
		return 2
	default:
		return -1
	}
}

// ReadyStater reports a loading state.
type ReadyStater interface {
	ReadyState() ReadyState
}

// Document is the root of a target tree.
type Document interface {
	ReadyStater

	// Node returns the document's own event target.
	Node() any

	// ElementByID resolves id to a target.
	ElementByID(id string) (any, bool)

	// Secure reports whether the document was served over https.
	Secure() bool

	// WriteDeferredScript inserts a deferred script element with id while the
	// document is loading. The script reaches ReadyComplete once parsing
	// finishes and fires readystatechange.
	WriteDeferredScript(id string) (any, bool)

	// DoScroll fails until the document structure is usable.
	DoScroll() error
}
