// Package gateway is the public event façade.
//
// A Gateway attaches handlers to native targets through whichever
// registration mechanism the capability probe allows, wraps every native
// firing into an Event, and tracks each attachment in a listener cache so it
// can be removed, suspended, restored, or cloned onto another target.
//
// Per (target, type, handler) the lifecycle is:
//
//	unattached -> attached -> suspended -> attached -> removed
//
// Operations never return errors. Malformed input (a nil or non-comparable
// handler, a target that does not resolve) is logged at debug level and
// reported through a false or nil result.
//
// Key listeners compose a key-down handler with the hotkey matcher, and
// OnDomReady picks a readiness strategy from the probe and guarantees the
// callback runs exactly once.
package gateway
