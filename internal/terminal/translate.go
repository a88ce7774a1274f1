package terminal

import (
	"unicode"

	"github.com/dshills/eventgate/internal/input/key"
	"github.com/gdamore/tcell/v2"
)

// namedKeys maps tcell special keys to key-down codes.
var namedKeys = map[tcell.Key]key.Code{
	tcell.KeyEnter:     13,
	tcell.KeyTab:       9,
	tcell.KeyBacktab:   9,
	tcell.KeyEscape:    27,
	tcell.KeyBackspace: 8,
	tcell.KeyDelete:    46,
	tcell.KeyInsert:    45,
	tcell.KeyHome:      36,
	tcell.KeyEnd:       35,
	tcell.KeyPgUp:      33,
	tcell.KeyPgDn:      34,
	tcell.KeyUp:        38,
	tcell.KeyDown:      40,
	tcell.KeyLeft:      37,
	tcell.KeyRight:     39,
	tcell.KeyPause:     19,
	tcell.KeyF1:        112,
	tcell.KeyF2:        113,
	tcell.KeyF3:        114,
	tcell.KeyF4:        115,
	tcell.KeyF5:        116,
	tcell.KeyF6:        117,
	tcell.KeyF7:        118,
	tcell.KeyF8:        119,
	tcell.KeyF9:        120,
	tcell.KeyF10:       121,
	tcell.KeyF11:       122,
	tcell.KeyF12:       123,
}

// punctuation maps unshifted punctuation runes to key-down codes.
var punctuation = map[rune]key.Code{
	' ':  32,
	';':  186,
	'=':  187,
	',':  188,
	'-':  189,
	'.':  190,
	'/':  191,
	'`':  192,
	'[':  219,
	'\\': 220,
	']':  221,
	'\'': 222,
}

// Translator converts tcell key events to key codes and modifiers.
// The zero value reports digits with their main row codes.
type Translator struct {
	// KeypadDigits reports digits with the numeric keypad codes, which
	// non-Gecko matchers resolve for digit descriptors.
	KeypadDigits bool
}

// Translate returns the key code and modifier state for ev.
// It reports false for keys with no key-down code.
func (tr Translator) Translate(ev *tcell.EventKey) (key.Code, key.Modifier, bool) {
	mods := convertMod(ev.Modifiers())

	k := ev.Key()
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.Code('A' + rune(k-tcell.KeyCtrlA)), mods.With(key.ModCtrl), true
	}
	if k == tcell.KeyBacktab {
		mods = mods.With(key.ModShift)
	}
	if code, ok := namedKeys[k]; ok {
		return code, mods, true
	}
	if k != tcell.KeyRune {
		return key.CodeNone, mods, false
	}

	r := ev.Rune()
	switch {
	case r >= 'a' && r <= 'z':
		return key.Code(unicode.ToUpper(r)), mods, true
	case r >= 'A' && r <= 'Z':
		return key.Code(r), mods.With(key.ModShift), true
	case r >= '0' && r <= '9':
		if tr.KeypadDigits {
			return key.Code(96 + r - '0'), mods, true
		}
		return key.Code(r), mods, true
	}
	if code, ok := punctuation[r]; ok {
		return code, mods, true
	}
	return key.CodeNone, mods, false
}

func convertMod(m tcell.ModMask) key.Modifier {
	return key.Modifiers(
		m&tcell.ModShift != 0,
		m&tcell.ModCtrl != 0,
		m&tcell.ModAlt != 0 || m&tcell.ModMeta != 0,
	)
}
