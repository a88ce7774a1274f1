package key

import (
	"strings"
	"unicode"
)

// Kind identifies the form of a hotkey descriptor.
type Kind int

const (
	// KindEmpty is a descriptor with no tokens.
	KindEmpty Kind = iota

	// KindCombo is a "+"-joined modifier and key conjunction.
	KindCombo

	// KindAny is a "|"-joined list of alternative keys.
	KindAny

	// KindSingle is a single bare key token.
	KindSingle
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindCombo:
		return "combo"
	case KindAny:
		return "any"
	case KindSingle:
		return "single"
	default:
		return "unknown"
	}
}

// Descriptor is the parsed form of a hotkey string.
// Descriptors are parsed on every match and never cached.
type Descriptor struct {
	// Source is the descriptor with whitespace removed.
	Source string

	// Kind is the descriptor form.
	Kind Kind

	// Modifiers holds the modifiers named in a combo.
	Modifiers Modifier

	// Keys holds the non-modifier tokens in order of appearance.
	Keys []string
}

// ParseDescriptor parses a hotkey descriptor.
//
// Supported forms:
//   - "ctrl+s", "ctrl+alt+del": modifiers and a key joined by "+"
//   - "esc|space": alternative keys joined by "|"
//   - "enter": a single key
//
// A descriptor containing "+" is always a combo, even when it also
// contains "|".
func ParseDescriptor(s string) Descriptor {
	src := stripSpace(s)
	d := Descriptor{Source: src}

	switch {
	case src == "":
		d.Kind = KindEmpty
	case strings.Contains(src, "+"):
		d.Kind = KindCombo
		for _, tok := range strings.Split(src, "+") {
			if mod := ModifierFromName(tok); mod != ModNone {
				d.Modifiers = d.Modifiers.With(mod)
				continue
			}
			d.Keys = append(d.Keys, tok)
		}
	case strings.Contains(src, "|"):
		d.Kind = KindAny
		d.Keys = strings.Split(src, "|")
	default:
		d.Kind = KindSingle
		d.Keys = []string{src}
	}

	return d
}

// Valid reports whether every key token resolves in some key table and a
// combo names at least one key.
func (d Descriptor) Valid(gecko bool) bool {
	if d.Kind == KindEmpty || len(d.Keys) == 0 {
		return false
	}
	for _, tok := range d.Keys {
		if !resolvable(tok, gecko) {
			return false
		}
	}
	return true
}

func resolvable(token string, gecko bool) bool {
	for _, t := range Tables(gecko) {
		if _, ok := t.Lookup(token); ok {
			return true
		}
	}
	return false
}

// stripSpace removes every whitespace rune from s.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
