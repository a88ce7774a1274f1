// Package listener provides the cache of wrappers attached to native event
// targets.
//
// Entries are keyed by a synthetic target id and a native event type. Each
// entry holds the wrapper registered with the native source and the original
// handler it wraps. A handler appears at most once per (target, type), so a
// false return from Add means the caller must not touch the native source.
//
// Ids are assigned on first use and reused afterwards. Targets implementing
// native.Identifiable carry their id; other comparable targets are tracked by
// identity. Cached wrappers can therefore be detached after the target has
// been removed from its document.
package listener
