// Package watcher reports changes to a single configuration file.
//
// The file's directory is watched rather than the file itself so that
// editors which replace the file through a rename keep being observed.
// Bursts of changes are coalesced into one Event after a quiet period.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/eventgate/internal/config"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay is the quiet period before a change is reported.
const DefaultDelay = 100 * time.Millisecond

// ErrClosed is returned when using a closed watcher.
var ErrClosed = errors.New("watcher closed")

// Op describes a file operation.
type Op uint8

// File operations.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Has reports whether op includes o.
func (op Op) Has(o Op) bool {
	return op&o != 0
}

// Event is a coalesced change to the watched file.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Watcher) {
		w.log = l
	}
}

// Watcher watches one file.
type Watcher struct {
	path  string
	base  string
	delay time.Duration
	log   zerolog.Logger

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending *Event
	timer   *time.Timer
	closed  bool

	events   chan Event
	errors   chan error
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New starts watching path. The file need not exist yet, but its
// directory must.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		base:    filepath.Base(abs),
		delay:   DefaultDelay,
		log:     zerolog.Nop(),
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the debounced change channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = nil
	w.mu.Unlock()

	err := w.fsw.Close()
	w.closedWg.Wait()

	close(w.events)
	close(w.errors)
	return err
}

// Flush reports a pending change immediately.
func (w *Watcher) Flush() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.fire()
}

// Reload loads the file after every change and passes the result to fn
// until ctx is done or the watcher is closed. Removals are not reported.
func (w *Watcher) Reload(ctx context.Context, fn func(config.Config, error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.events:
			if !ok {
				return ErrClosed
			}
			if ev.Op.Has(OpRemove) || ev.Op.Has(OpRename) {
				if _, err := os.Stat(w.path); err != nil {
					w.log.Debug().Str("path", w.path).Msg("config file removed")
					continue
				}
			}
			cfg, err := config.Load(w.path)
			fn(cfg, err)

		case err, ok := <-w.errors:
			if !ok {
				return ErrClosed
			}
			fn(config.Config{}, err)
		}
	}
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Str("path", w.path).Msg("config watch error")
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(fsEvent fsnotify.Event) {
	if filepath.Base(fsEvent.Name) != w.base {
		return
	}
	op := convertOp(fsEvent.Op)
	if op == 0 || op == OpChmod {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if w.pending != nil {
		w.pending.Op |= op
		w.pending.Timestamp = time.Now()
		w.timer.Reset(w.delay)
		return
	}
	w.pending = &Event{Path: w.path, Op: op, Timestamp: time.Now()}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.delay, w.fire)
	} else {
		w.timer.Reset(w.delay)
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.pending == nil {
		return
	}
	ev := *w.pending
	w.pending = nil

	w.log.Debug().Str("path", ev.Path).Uint8("op", uint8(ev.Op)).Msg("config changed")
	select {
	case w.events <- ev:
	default:
		w.log.Warn().Str("path", ev.Path).Msg("config change dropped")
	}
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
