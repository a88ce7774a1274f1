package key

import "slices"

// Combo is the structured hotkey form. All three modifier flags must match
// the pressed state exactly and the pressed code must be one of Keys.
type Combo struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Keys  []Code
}

// Modifier returns the modifier state the combo requires.
func (c Combo) Modifier() Modifier {
	return Modifiers(c.Shift, c.Ctrl, c.Alt)
}

// Matches reports whether the pressed state satisfies the combo.
func (c Combo) Matches(mods Modifier, code Code) bool {
	if mods != c.Modifier() {
		return false
	}
	return slices.Contains(c.Keys, code)
}

// Trigger is either a hotkey descriptor string or a structured Combo.
type Trigger struct {
	hotkey string
	combo  *Combo
}

// Hotkey returns a trigger for a descriptor string.
func Hotkey(descriptor string) Trigger {
	return Trigger{hotkey: descriptor}
}

// ComboTrigger returns a trigger for a structured combo.
func ComboTrigger(c Combo) Trigger {
	keys := slices.Clone(c.Keys)
	c.Keys = keys
	return Trigger{combo: &c}
}

// IsCombo reports whether the trigger holds a structured combo.
func (t Trigger) IsCombo() bool {
	return t.combo != nil
}

// IsZero reports whether the trigger holds neither form.
func (t Trigger) IsZero() bool {
	return t.combo == nil && t.hotkey == ""
}

// Descriptor returns the descriptor string of a hotkey trigger.
func (t Trigger) Descriptor() string {
	return t.hotkey
}

// Combo returns the structured combo, if any.
func (t Trigger) Combo() (Combo, bool) {
	if t.combo == nil {
		return Combo{}, false
	}
	return *t.combo, true
}

// Matches evaluates the trigger against a key press using m for
// descriptor strings.
func (t Trigger) Matches(m Matcher, mods Modifier, code Code) bool {
	if t.combo != nil {
		return t.combo.Matches(mods, code)
	}
	return m.Match(mods, code, t.hotkey)
}

// String returns the descriptor or a rendering of the combo.
func (t Trigger) String() string {
	if t.combo == nil {
		return t.hotkey
	}
	s := t.combo.Modifier().String()
	for i, c := range t.combo.Keys {
		switch {
		case i == 0 && s != "":
			s += "+"
		case i > 0:
			s += "|"
		}
		s += c.String()
	}
	return s
}
