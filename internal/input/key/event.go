package key

import (
	"time"
)

// Stroke represents a single key press as seen by a key-down listener.
type Stroke struct {
	// Code is the native key code.
	Code Code

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the key was pressed.
	Timestamp time.Time
}

// NewStroke creates a stroke with the current timestamp.
func NewStroke(code Code, mods Modifier) Stroke {
	return Stroke{
		Code:      code,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsModified returns true if any modifier is pressed.
func (s Stroke) IsModified() bool {
	return !s.Modifiers.IsEmpty()
}

// Name returns the first key-table token mapped to the stroke's code,
// or the decimal code when no table has it.
func (s Stroke) Name() string {
	for _, t := range Tables(false) {
		if name, ok := nameIn(t, s.Code); ok {
			return name
		}
	}
	return s.Code.String()
}

// String returns a descriptor-like rendering such as "ctrl+s".
func (s Stroke) String() string {
	if s.Modifiers.IsEmpty() {
		return s.Name()
	}
	return s.Modifiers.String() + "+" + s.Name()
}

// Satisfies reports whether the stroke matches trigger, using m for
// descriptor strings.
func (s Stroke) Satisfies(m Matcher, trigger Trigger) bool {
	return trigger.Matches(m, s.Modifiers, s.Code)
}

// nameIn finds the lexically smallest token mapped to code so that names
// are stable across runs despite map iteration order.
func nameIn(t Table, code Code) (string, bool) {
	var best string
	found := false
	for name, c := range t.Keys {
		if c != code {
			continue
		}
		if !found || name < best {
			best = name
			found = true
		}
	}
	return best, found
}
