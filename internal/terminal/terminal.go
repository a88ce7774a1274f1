package terminal

import (
	"context"
	"sync"

	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/native"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

// KeySink receives translated key presses.
type KeySink interface {
	KeyDown(code key.Code, mods key.Modifier) *native.RawEvent
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Terminal) {
		t.log = l
	}
}

// WithTranslator sets the key translator.
func WithTranslator(tr Translator) Option {
	return func(t *Terminal) {
		t.tr = tr
	}
}

// WithQuit makes Run return when a press matches trigger.
func WithQuit(trigger key.Trigger, m key.Matcher) Option {
	return func(t *Terminal) {
		t.quit = trigger
		t.matcher = m
	}
}

// WithTitle sets the header line.
func WithTitle(title string) Option {
	return func(t *Terminal) {
		t.title = title
	}
}

// Terminal reads key presses from a screen and shows a line log.
type Terminal struct {
	screen  tcell.Screen
	tr      Translator
	log     zerolog.Logger
	quit    key.Trigger
	matcher key.Matcher
	title   string

	mu    sync.Mutex
	lines []string
}

// New creates a terminal on the process's controlling tty.
func New(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, ErrInit(err)
	}
	return NewWithScreen(screen, opts...), nil
}

// NewWithScreen creates a terminal on an existing screen.
func NewWithScreen(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{
		screen: screen,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return ErrInit(err)
	}
	t.drawLocked()
	return nil
}

// Shutdown restores the terminal. Run returns once the screen is finalized.
func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

// Println appends a line to the on-screen log.
func (t *Terminal) Println(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = append(t.lines, line)
	_, height := t.screen.Size()
	if limit := height - 1; limit > 0 && len(t.lines) > limit {
		t.lines = append(t.lines[:0], t.lines[len(t.lines)-limit:]...)
	}
	t.drawLocked()
}

// Lines returns a copy of the visible log.
func (t *Terminal) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Post queues fn to run on the goroutine executing Run.
func (t *Terminal) Post(fn func()) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// Run dispatches key presses to sink until ctx is done, the quit trigger
// matches, or the screen is finalized.
func (t *Terminal) Run(ctx context.Context, sink KeySink) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil

		case *tcell.EventInterrupt:
			if fn, ok := ev.Data().(func()); ok {
				fn()
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}

		case *tcell.EventResize:
			t.mu.Lock()
			t.screen.Sync()
			t.drawLocked()
			t.mu.Unlock()

		case *tcell.EventKey:
			code, mods, ok := t.tr.Translate(ev)
			if !ok {
				t.log.Debug().Str("key", ev.Name()).Msg("untranslated key")
				continue
			}
			stroke := key.NewStroke(code, mods)
			t.log.Debug().Stringer("stroke", stroke).Time("at", stroke.Timestamp).Msg("key down")
			if !t.quit.IsZero() && stroke.Satisfies(t.matcher, t.quit) {
				return nil
			}
			sink.KeyDown(stroke.Code, stroke.Modifiers)
		}
	}
}

func (t *Terminal) drawLocked() {
	t.screen.Clear()
	width, _ := t.screen.Size()

	header := tcell.StyleDefault.Reverse(true)
	t.putLocked(0, t.title, header, width)
	for i, line := range t.lines {
		t.putLocked(i+1, line, tcell.StyleDefault, width)
	}
	t.screen.Show()
}

func (t *Terminal) putLocked(y int, s string, style tcell.Style, width int) {
	x := 0
	for _, r := range s {
		if x >= width {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
