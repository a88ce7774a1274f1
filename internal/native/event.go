package native

import "github.com/dshills/eventgate/internal/input/key"

// RawEvent is one native event occurrence.
//
// Standard listeners observe Target and the StopPropagation/PreventDefault
// methods. Legacy listeners observe SrcElement and the CancelBubble and
// ReturnValue fields; Legacy is true while they run.
type RawEvent struct {
	Type          string
	Target        any
	SrcElement    any
	CurrentTarget any

	ShiftKey bool
	CtrlKey  bool
	AltKey   bool
	KeyCode  key.Code

	Legacy       bool
	CancelBubble bool
	ReturnValue  bool

	propagationStopped bool
	defaultPrevented   bool
}

// NewRawEvent creates an event of type typ.
func NewRawEvent(typ string) *RawEvent {
	return &RawEvent{Type: typ, ReturnValue: true}
}

// NewKeyEvent creates a key event carrying code and mods.
func NewKeyEvent(typ string, code key.Code, mods key.Modifier) *RawEvent {
	e := NewRawEvent(typ)
	e.KeyCode = code
	e.ShiftKey = mods.HasShift()
	e.CtrlKey = mods.HasCtrl()
	e.AltKey = mods.HasAlt()
	return e
}

// Modifiers returns the held modifiers.
func (e *RawEvent) Modifiers() key.Modifier {
	return key.Modifiers(e.ShiftKey, e.CtrlKey, e.AltKey)
}

// StopPropagation stops bubbling after the current node.
func (e *RawEvent) StopPropagation() {
	e.propagationStopped = true
}

// PreventDefault cancels the default action.
func (e *RawEvent) PreventDefault() {
	e.defaultPrevented = true
}

// PropagationStopped reports whether either mechanism stopped bubbling.
func (e *RawEvent) PropagationStopped() bool {
	return e.propagationStopped || e.CancelBubble
}

// DefaultPrevented reports whether either mechanism cancelled the default
// action.
func (e *RawEvent) DefaultPrevented() bool {
	return e.defaultPrevented || !e.ReturnValue
}
