// Package native models the native event source wrapped by the gateway.
//
// A native source exposes one or both registration mechanisms:
//
//   - StandardTarget: AddEventListener/RemoveEventListener with bare type names
//   - LegacyTarget: AttachEvent/DetachEvent with "on"-prefixed names
//
// Element and Doc are in-memory implementations used by the terminal bridge,
// the Lua plugins and the tests. Element dispatch bubbles from the target to
// its ancestors until propagation is stopped. Doc adds id lookup and the
// loading, interactive, complete ready-state sequence along with the
// deferred-script and scroll-probe hooks used for dom-ready detection.
package native
