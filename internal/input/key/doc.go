// Package key provides key codes, modifier state and hotkey matching.
//
// This package defines the fundamental types for describing keyboard input
// as it arrives from a native key-down notification:
//
//   - Code: the integer key code reported by the native source
//   - Modifier: the Shift, Ctrl and Alt state at the time of the key press
//   - Stroke: a single key press with modifiers and timestamp
//   - Matcher: decides whether a stroke satisfies a hotkey descriptor
//
// # Hotkey Descriptors
//
// Descriptors are written in one of three forms:
//
//   - Conjunction: "ctrl+s", "ctrl+shift+F5" (modifiers plus one key)
//   - Disjunction: "esc|space" (any listed key, no modifier held)
//   - Single key: "enter" (no modifier held)
//
// Tokens are case-sensitive and are resolved through the key tables in a
// fixed order: alphabetical, special, navigation, function keys, numeric
// pad, and the Gecko numeric pad exceptions when the matcher is built for
// that engine family.
//
// # Structured Combos
//
// A Combo states the exact modifier state and a set of accepted key codes.
// Trigger wraps either form for listeners that accept both.
package key
