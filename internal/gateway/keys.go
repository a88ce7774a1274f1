package gateway

import (
	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/native"
)

// keyHandler filters key-down events through a trigger.
type keyHandler struct {
	g       *Gateway
	trigger key.Trigger
	cb      Handler
	stop    bool
}

func (k *keyHandler) HandleEvent(e *Event, args []any) {
	if !k.trigger.Matches(k.g.matcher, e.Modifiers, e.KeyCode) {
		return
	}
	k.g.rec.RecordHotkeyMatch(k.trigger.String())
	if k.stop {
		e.Stop()
	}
	k.cb.HandleEvent(e, args)
}

// AddKeyListener attaches a key-down handler to ref that invokes cb when
// the pressed key satisfies trigger. WithStop stops the native event on a
// match. The returned handler removes the listener when passed to Remove;
// nil means nothing was attached.
func (g *Gateway) AddKeyListener(ref Ref, trigger key.Trigger, cb Handler, opts ...ListenerOption) Handler {
	if trigger.IsZero() || !callable(cb) {
		g.log.Debug().Str("trigger", trigger.String()).Msg("key listener rejected")
		return nil
	}
	cfg := newListenerConfig(opts)
	kh := &keyHandler{g: g, trigger: trigger, cb: cb, stop: cfg.stop}
	if !g.Add(ref, native.TypeKeyDown, kh, opts...) {
		return nil
	}
	return kh
}

// IsValidHotKey reports whether a key press with mods and code satisfies
// descriptor.
func (g *Gateway) IsValidHotKey(mods key.Modifier, code key.Code, descriptor string) bool {
	return g.matcher.Match(mods, code, descriptor)
}

// GetCharCodeFromHotKey resolves token against code through the key tables.
func (g *Gateway) GetCharCodeFromHotKey(token string, code key.Code) (key.Code, bool) {
	return g.matcher.CodeFor(token, code)
}
