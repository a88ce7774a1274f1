// Package terminal turns tcell keyboard input into native key-down events.
//
// A Terminal reads events from a tcell.Screen, translates each key press
// into a key code and modifier state using the same codes a browser
// reports on key-down, and dispatches it to a KeySink (typically a
// *native.Element). It also keeps a scrolling log of lines on screen so
// that listeners can report what they matched.
//
// Tests drive a Terminal through tcell.NewSimulationScreen.
package terminal
