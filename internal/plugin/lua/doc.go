// Package lua runs plugin scripts that take part in the event system.
//
// Each script runs in its own State with only the base, table, string and
// math libraries. The Runtime installs an "eventgate" module:
//
//	eventgate.create(name)                -- create a custom event
//	eventgate.subscribe(name, fn)         -- fn(...) on every fire
//	eventgate.unsubscribe(name)           -- drop this script's subscriptions
//	eventgate.fire(name, ...)             -- fire with arguments
//	eventgate.bind(descriptor, fn, stop)  -- fn(ev) on a matching key press
//	eventgate.valid_hotkey(descriptor)    -- descriptor resolves
//	eventgate.log(msg)                    -- write to the plugin log
//
// Key events reach Lua as tables with fields type, code, shift, ctrl and
// alt. print writes to the plugin log instead of stdout.
//
// gopher-lua states are not goroutine-safe: fire events into a Runtime
// from the goroutine that loaded it.
package lua
