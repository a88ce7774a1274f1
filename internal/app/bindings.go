package app

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/eventgate/internal/config"
	"github.com/dshills/eventgate/internal/gateway"
	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/native"
)

// applyBindings replaces the installed hotkey listeners with hk's.
func (app *Application) applyBindings(hk config.HotkeysConfig) {
	ref := gateway.El(app.root)
	for name, h := range app.bindings {
		app.gw.Remove(ref, native.TypeKeyDown, h)
		delete(app.bindings, name)
	}

	for _, name := range hk.BindingNames() {
		desc := hk.Bindings[name]
		h := app.gw.AddKeyListener(ref, key.Hotkey(desc), gateway.Func(func(e *gateway.Event, _ []any) {
			app.onHotkey(name, desc, e)
		}))
		if h == nil {
			app.log.Warn().Str("binding", name).Str("hotkey", desc).Msg("binding not installed")
			continue
		}
		app.bindings[name] = h
	}
	app.log.Debug().Int("bindings", len(app.bindings)).Msg("hotkeys applied")
}

// Bindings returns the sorted names of the installed hotkey bindings.
func (app *Application) Bindings() []string {
	return slices.Sorted(maps.Keys(app.bindings))
}

func (app *Application) onHotkey(name, desc string, e *gateway.Event) {
	app.FireEvent(EventHotkey, name, desc)
	stroke := key.NewStroke(e.KeyCode, e.Modifiers)
	app.term.Println(fmt.Sprintf("%s: %s (pressed %s, code %d)", name, desc, stroke, stroke.Code))
}
