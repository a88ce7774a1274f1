package key

import "strings"

// Modifier is the set of modifier keys held during a keystroke.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt

	// ModNone is the empty set.
	ModNone Modifier = 0
)

// modifierTokens lists the descriptor tokens in the order String emits them.
// Tokens are case-sensitive, like every other descriptor token.
var modifierTokens = [...]struct {
	name string
	mod  Modifier
}{
	{"ctrl", ModCtrl},
	{"alt", ModAlt},
	{"shift", ModShift},
}

// Modifiers packs the three native flags.
func Modifiers(shift, ctrl, alt bool) Modifier {
	var m Modifier
	for _, f := range [...]struct {
		on  bool
		mod Modifier
	}{{shift, ModShift}, {ctrl, ModCtrl}, {alt, ModAlt}} {
		if f.on {
			m |= f.mod
		}
	}
	return m
}

// Has reports whether any bit of mod is held.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool  { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool   { return m.Has(ModAlt) }

// With adds mod to the set.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// IsEmpty reports whether no modifier is held.
func (m Modifier) IsEmpty() bool { return m == ModNone }

// String renders the set in descriptor form, e.g. "ctrl+shift".
func (m Modifier) String() string {
	names := make([]string, 0, len(modifierTokens))
	for _, t := range modifierTokens {
		if m.Has(t.mod) {
			names = append(names, t.name)
		}
	}
	return strings.Join(names, "+")
}

// ModifierFromName maps a descriptor token to its modifier, or ModNone.
func ModifierFromName(name string) Modifier {
	for _, t := range modifierTokens {
		if t.name == name {
			return t.mod
		}
	}
	return ModNone
}
