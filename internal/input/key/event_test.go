package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStroke(t *testing.T) {
	s := NewStroke(83, ModCtrl)
	assert.False(t, s.Timestamp.IsZero())
	assert.True(t, s.IsModified())
	assert.Equal(t, "s", s.Name())
	assert.Equal(t, "ctrl+s", s.String())
	assert.True(t, s.Satisfies(NewMatcher(), Hotkey("ctrl+s")))
	assert.False(t, s.Satisfies(NewMatcher(), Hotkey("s")))
	assert.True(t, s.Satisfies(NewMatcher(), ComboTrigger(Combo{Ctrl: true, Keys: []Code{83}})))
	assert.False(t, s.Satisfies(NewMatcher(), ComboTrigger(Combo{Keys: []Code{83}})))

	plain := NewStroke(CodeEsc, ModNone)
	assert.False(t, plain.IsModified())
	assert.Equal(t, "esc", plain.String())

	// Right and down share a code in the navigation table.
	assert.Equal(t, "down", NewStroke(39, ModNone).Name())

	assert.Equal(t, "999", NewStroke(999, ModNone).Name())
}
