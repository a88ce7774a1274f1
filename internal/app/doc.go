// Package app wires the event system into a runnable terminal program.
//
// An Application owns one document with a single "root" element. Key
// presses read from the terminal are dispatched to that element, where
// the configured hotkey bindings and plugin key listeners match them
// through the gateway. The application itself is an event host with
// these channels:
//
//	hotkey           fired with the binding name and descriptor on a match
//	ready            fired once when the document becomes ready
//	config.reloaded  fired with the new config.Config after a reload
//
// Plugins subscribe to them through the eventgate Lua module.
package app
