package key

import "strconv"

// Code is a native key code as reported by a key-down notification.
// Zero means the event carried no key code.
type Code int

// Named key codes for the most used keys.
const (
	CodeNone      Code = 0
	CodeBackspace Code = 8
	CodeTab       Code = 9
	CodeEnter     Code = 13
	CodeShift     Code = 16
	CodeCtrl      Code = 17
	CodeAlt       Code = 18
	CodeCapsLock  Code = 20
	CodeEsc       Code = 27
	CodeSpace     Code = 32
	CodePageUp    Code = 33
	CodePageDown  Code = 34
	CodeEnd       Code = 35
	CodeHome      Code = 36
	CodeLeft      Code = 37
	CodeUp        Code = 38
	CodeRight     Code = 39
	CodeDown      Code = 40
	CodeDel       Code = 46
	CodeF1        Code = 112
	CodeF2        Code = 113
	CodeF3        Code = 114
	CodeF4        Code = 115
	CodeF5        Code = 116
	CodeF6        Code = 117
	CodeF7        Code = 118
	CodeF8        Code = 119
	CodeF9        Code = 120
	CodeF10       Code = 121
	CodeF11       Code = 122
	CodeF12       Code = 123
	CodeNumLock   Code = 144
)

// String returns the decimal code.
func (c Code) String() string {
	return strconv.Itoa(int(c))
}

// IsSet returns true if the code is non-zero.
func (c Code) IsSet() bool {
	return c != CodeNone
}

// Table is a named token to code mapping.
type Table struct {
	Name string
	Keys map[string]Code
}

// Lookup returns the code for token in this table.
func (t Table) Lookup(token string) (Code, bool) {
	c, ok := t.Keys[token]
	return c, ok
}

// Alphabetical maps letters to their key-down codes.
var Alphabetical = Table{
	Name: "alphabetical",
	Keys: map[string]Code{
		"a": 65, "b": 66, "c": 67, "d": 68, "e": 69, "f": 70,
		"g": 71, "h": 72, "i": 73, "j": 74, "k": 75, "l": 76, "m": 77,
		"n": 78, "o": 79, "p": 80, "q": 81, "r": 82, "s": 83, "t": 84,
		"u": 85, "v": 86, "w": 87, "x": 88, "y": 89, "z": 90,
	},
}

// Special maps editing, lock and punctuation keys.
// Several punctuation entries share codes with digits because they are
// produced by the shifted digit row on the reference layout.
var Special = Table{
	Name: "special",
	Keys: map[string]Code{
		"del": 46, "enter": 13, "end": 35, "esc": 27,
		"tab": 9, "space": 32, "pause": 19, "capslock": 20,
		"scrolllock": 145, "numlock": 144, "insert": 45, "altgr": 18,
		"comma": 188, "dash": 54, "openbracket": 219, "closebracket": 221,
		"slash": 191, "backslash": 220, "singlequote": 222, "dblquote": 51,
		"ampersand": 49, "backspace": 8, "openparenthesis": 53, "closeparenthesis": 219,
		"asterisk": 220, "semicolon": 190, "equalsign": 187, "dollar": 186,
		"underscore": 56, "ctrl": 17,
	},
}

// Navigation maps arrow and paging keys.
var Navigation = Table{
	Name: "navigation",
	Keys: map[string]Code{
		"left": 37, "right": 39, "up": 38, "down": 39,
		"pgup": 33, "pgdown": 40, "home": 36,
	},
}

// Functions maps F1 through F12.
var Functions = Table{
	Name: "functions",
	Keys: map[string]Code{
		"F1": 112, "F2": 113, "F3": 114, "F4": 115, "F5": 116, "F6": 117,
		"F7": 118, "F8": 119, "F9": 120, "F10": 121, "F11": 122, "F12": 123,
	},
}

// NumericPad maps numeric keypad keys.
var NumericPad = Table{
	Name: "numeric-pad",
	Keys: map[string]Code{
		"0": 96, "1": 97, "2": 98, "3": 99, "4": 100,
		"5": 101, "6": 102, "7": 103, "8": 104, "9": 105,
		"slash": 111, "asterisk": 106, "dash": 109, "minus": 107,
		"dot": 110,
	},
}

// GeckoPad holds the keypad digits reported by Gecko-family engines,
// which use the main digit row codes.
var GeckoPad = Table{
	Name: "gecko-numeric-pad",
	Keys: map[string]Code{
		"0": 48, "1": 49, "2": 50, "3": 51, "4": 52,
		"5": 53, "6": 54, "7": 55, "8": 56, "9": 57,
	},
}

// Tables returns the key tables in resolution order.
// GeckoPad is appended only when gecko is true.
func Tables(gecko bool) []Table {
	tables := []Table{Alphabetical, Special, Navigation, Functions, NumericPad}
	if gecko {
		tables = append(tables, GeckoPad)
	}
	return tables
}

// CodeOf returns the code the first table containing token maps it to.
// Use Matcher.CodeFor to test a token against a reported code.
func CodeOf(token string) (Code, bool) {
	for _, t := range Tables(false) {
		if c, ok := t.Lookup(token); ok {
			return c, true
		}
	}
	return CodeNone, false
}
