package key

// Matcher decides whether a key press satisfies a hotkey descriptor.
// The zero value is a lenient, non-Gecko matcher.
type Matcher struct {
	gecko  bool
	strict bool
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithGeckoPad enables the Gecko numeric pad exception table.
func WithGeckoPad(enabled bool) MatcherOption {
	return func(m *Matcher) {
		m.gecko = enabled
	}
}

// WithStrictModifiers makes combos reject presses that hold modifiers the
// descriptor does not name. By default only the named modifiers are checked,
// so "ctrl+s" also matches ctrl+shift+s.
func WithStrictModifiers(strict bool) MatcherOption {
	return func(m *Matcher) {
		m.strict = strict
	}
}

// NewMatcher creates a matcher with the given options.
func NewMatcher(opts ...MatcherOption) Matcher {
	var m Matcher
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Gecko reports whether the Gecko pad exceptions are consulted.
func (m Matcher) Gecko() bool {
	return m.gecko
}

// Strict reports whether unnamed modifiers must be released.
func (m Matcher) Strict() bool {
	return m.strict
}

// Match reports whether a key press with the given modifier state and code
// satisfies descriptor. Malformed or unresolvable descriptors never match.
func (m Matcher) Match(mods Modifier, code Code, descriptor string) bool {
	return m.MatchDescriptor(mods, code, ParseDescriptor(descriptor))
}

// MatchDescriptor is Match for an already parsed descriptor.
func (m Matcher) MatchDescriptor(mods Modifier, code Code, d Descriptor) bool {
	switch d.Kind {
	case KindCombo:
		if !m.anyKey(d.Keys, code) {
			return false
		}
		// Every named modifier must be held.
		if mods&d.Modifiers != d.Modifiers {
			return false
		}
		if m.strict && mods != d.Modifiers {
			return false
		}
		return true

	case KindAny, KindSingle:
		if !mods.IsEmpty() {
			return false
		}
		return m.anyKey(d.Keys, code)

	default:
		return false
	}
}

// CodeFor resolves token against code. The token matches when any key
// table, in resolution order, maps it to code; the first such table wins.
func (m Matcher) CodeFor(token string, code Code) (Code, bool) {
	for _, t := range Tables(m.gecko) {
		if c, ok := t.Lookup(token); ok && c == code {
			return c, true
		}
	}
	return CodeNone, false
}

func (m Matcher) anyKey(tokens []string, code Code) bool {
	for _, tok := range tokens {
		if _, ok := m.CodeFor(tok, code); ok {
			return true
		}
	}
	return false
}
