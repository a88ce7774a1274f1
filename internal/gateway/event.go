package gateway

import (
	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/native"
)

// Event is a normalized native event occurrence.
// It is valid only for the duration of the handler call.
type Event struct {
	// Raw is the native event.
	Raw *native.RawEvent

	// Target received the native event.
	Target any

	// Modifiers held when the event was created.
	Modifiers key.Modifier

	// KeyCode of key events, zero otherwise.
	KeyCode key.Code

	// Scope is the handler scope: the bound scope or Target.
	Scope any

	// Legacy is true when the legacy mechanism delivered the event.
	Legacy bool
}

func newEvent(raw *native.RawEvent, scope any) *Event {
	target := raw.Target
	if target == nil {
		target = raw.SrcElement
	}
	if scope == nil {
		scope = target
	}
	return &Event{
		Raw:       raw,
		Target:    target,
		Modifiers: raw.Modifiers(),
		KeyCode:   raw.KeyCode,
		Scope:     scope,
		Legacy:    raw.Legacy,
	}
}

// Type returns the native event type.
func (e *Event) Type() string { return e.Raw.Type }

// Shift reports whether shift was held.
func (e *Event) Shift() bool { return e.Modifiers.HasShift() }

// Ctrl reports whether ctrl was held.
func (e *Event) Ctrl() bool { return e.Modifiers.HasCtrl() }

// Alt reports whether alt was held.
func (e *Event) Alt() bool { return e.Modifiers.HasAlt() }

// StopPropagation stops the native event from bubbling.
func (e *Event) StopPropagation() {
	if e.Legacy {
		e.Raw.CancelBubble = true
		return
	}
	e.Raw.StopPropagation()
}

// PreventDefault cancels the native default action.
func (e *Event) PreventDefault() {
	if e.Legacy {
		e.Raw.ReturnValue = false
		return
	}
	e.Raw.PreventDefault()
}

// Stop stops propagation and cancels the default action.
func (e *Event) Stop() {
	e.StopPropagation()
	e.PreventDefault()
}
