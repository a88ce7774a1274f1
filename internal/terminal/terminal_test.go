package terminal

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/native"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type press struct {
	code key.Code
	mods key.Modifier
}

type recordingSink struct {
	mu      sync.Mutex
	presses []press
}

func (s *recordingSink) KeyDown(code key.Code, mods key.Modifier) *native.RawEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presses = append(s.presses, press{code, mods})
	return native.NewKeyEvent(native.TypeKeyDown, code, mods)
}

func (s *recordingSink) snapshot() []press {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]press(nil), s.presses...)
}

func newSimTerminal(t *testing.T, opts ...Option) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	term := NewWithScreen(screen, opts...)
	require.NoError(t, term.Init())
	screen.SetSize(40, 5)
	return term, screen
}

func screenText(screen tcell.SimulationScreen, row int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[row*width+x]
		if len(cell.Runes) > 0 {
			b.WriteRune(cell.Runes[0])
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func TestRunDispatchesKeys(t *testing.T) {
	term, screen := newSimTerminal(t, WithQuit(key.Hotkey("ctrl+q"), key.NewMatcher()))
	defer term.Shutdown()

	sink := &recordingSink{}
	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background(), sink) }()

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	screen.InjectKey(tcell.KeyRune, 'é', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return on quit key")
	}

	assert.Equal(t, []press{
		{65, key.ModNone},
		{83, key.ModCtrl},
		{13, key.ModNone},
	}, sink.snapshot())
}

func TestRunStopsOnContext(t *testing.T) {
	term, _ := newSimTerminal(t)
	defer term.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Run(ctx, &recordingSink{}) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return on cancel")
	}
}

func TestRunStopsOnShutdown(t *testing.T) {
	term, _ := newSimTerminal(t)

	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background(), &recordingSink{}) }()

	term.Shutdown()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after shutdown")
	}
}

func TestRunDispatchesToElement(t *testing.T) {
	term, screen := newSimTerminal(t, WithQuit(key.Hotkey("ctrl+q"), key.NewMatcher()))
	defer term.Shutdown()

	el := native.NewElement("root")
	var got []key.Code
	var mu sync.Mutex
	el.AddEventListener(native.TypeKeyDown, native.ListenerFunc(func(e *native.RawEvent) {
		mu.Lock()
		got = append(got, e.KeyCode)
		mu.Unlock()
	}), false)

	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background(), el) }()

	screen.InjectKey(tcell.KeyF2, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []key.Code{113}, got)
}

func TestPrintlnDraws(t *testing.T) {
	term, screen := newSimTerminal(t, WithTitle("eventgate"))
	defer term.Shutdown()

	term.Println("first")
	term.Println("second")

	assert.Equal(t, "eventgate", screenText(screen, 0))
	assert.Equal(t, "first", screenText(screen, 1))
	assert.Equal(t, "second", screenText(screen, 2))
}

func TestPrintlnScrolls(t *testing.T) {
	term, _ := newSimTerminal(t)
	defer term.Shutdown()

	for _, s := range []string{"1", "2", "3", "4", "5", "6"} {
		term.Println(s)
	}
	// Five rows, one for the title.
	assert.Equal(t, []string{"3", "4", "5", "6"}, term.Lines())
}

func TestPostRunsOnLoop(t *testing.T) {
	term, screen := newSimTerminal(t, WithQuit(key.Hotkey("ctrl+q"), key.NewMatcher()))
	defer term.Shutdown()

	ran := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background(), &recordingSink{}) }()

	require.NoError(t, term.Post(func() { close(ran) }))
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("posted function did not run")
	}

	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	require.NoError(t, <-done)
}
