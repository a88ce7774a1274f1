package native

import (
	"errors"
	"sync"
)

// ErrNotReady is returned by DoScroll while the document is loading.
var ErrNotReady = errors.New("document not ready")

// DocumentID is the id of the document node itself.
const DocumentID = "#document"

var _ Document = (*Doc)(nil)

// Doc is an in-memory document. Events dispatched on elements appended to it
// bubble to the document node.
type Doc struct {
	*Element

	secure bool

	stateMu sync.RWMutex
	state   ReadyState
	byID    map[string]*Element
	scripts []*Element
}

// DocOption configures a Doc.
type DocOption func(*Doc)

// WithSecure marks the document as served over https.
func WithSecure(secure bool) DocOption {
	return func(d *Doc) {
		d.secure = secure
	}
}

// WithReadyState sets the initial ready state.
func WithReadyState(s ReadyState) DocOption {
	return func(d *Doc) {
		if s.rank() >= 0 {
			d.state = s
		}
	}
}

// NewDoc creates a loading document.
func NewDoc(opts ...DocOption) *Doc {
	d := &Doc{
		Element: NewElement(DocumentID),
		state:   ReadyLoading,
		byID:    make(map[string]*Element),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Append registers el under its id and makes the document its parent when
// it has none.
func (d *Doc) Append(el *Element) *Element {
	if el.Parent() == nil {
		el.SetParent(d.Element)
	}
	if el.ID() != "" {
		d.stateMu.Lock()
		d.byID[el.ID()] = el
		d.stateMu.Unlock()
	}
	return el
}

// Node implements Document.
func (d *Doc) Node() any {
	return d.Element
}

// ElementByID implements Document.
func (d *Doc) ElementByID(id string) (any, bool) {
	if id == DocumentID {
		return d.Element, true
	}
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	el, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Remove unregisters the element with id. Its listeners stay attached.
func (d *Doc) Remove(id string) {
	d.stateMu.Lock()
	el, ok := d.byID[id]
	delete(d.byID, id)
	d.stateMu.Unlock()
	if ok {
		el.SetParent(nil)
	}
}

// ReadyState implements Document.
func (d *Doc) ReadyState() ReadyState {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state
}

// Secure implements Document.
func (d *Doc) Secure() bool {
	return d.secure
}

// WriteDeferredScript implements Document. It fails once parsing finished.
func (d *Doc) WriteDeferredScript(id string) (any, bool) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	if d.state != ReadyLoading {
		return nil, false
	}
	script := NewElement(id)
	script.readyState = ReadyLoading
	d.scripts = append(d.scripts, script)
	if id != "" {
		d.byID[id] = script
	}
	return script, true
}

// DoScroll implements Document.
func (d *Doc) DoScroll() error {
	if d.ReadyState() == ReadyLoading {
		return ErrNotReady
	}
	return nil
}

// Advance moves the document forward to s, passing through intermediate
// states and firing their notifications. Returns false if s is not ahead of
// the current state.
func (d *Doc) Advance(s ReadyState) bool {
	if s.rank() <= d.ReadyState().rank() {
		return false
	}
	for d.ReadyState().rank() < s.rank() {
		switch d.ReadyState() {
		case ReadyLoading:
			d.enterInteractive()
		case ReadyInteractive:
			d.enterComplete()
		}
	}
	return true
}

func (d *Doc) enterInteractive() {
	d.stateMu.Lock()
	d.state = ReadyInteractive
	scripts := d.scripts
	d.scripts = nil
	d.stateMu.Unlock()

	d.Fire(TypeReadyStateChange)
	for _, script := range scripts {
		script.setReadyState(ReadyComplete)
		script.Fire(TypeReadyStateChange)
	}
	d.Fire(TypeContentLoaded)
}

func (d *Doc) enterComplete() {
	d.stateMu.Lock()
	d.state = ReadyComplete
	d.stateMu.Unlock()

	d.Fire(TypeReadyStateChange)
	d.Fire(TypeLoad)
}
