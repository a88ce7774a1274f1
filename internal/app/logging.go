package app

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dshills/eventgate/internal/config"
	"github.com/rs/zerolog"
)

// LevelFilter is a zerolog hook that drops events below a level that can be
// changed while the logger and every child derived from it are in use.
type LevelFilter struct {
	min atomic.Int32
}

// NewLevelFilter returns a filter passing events at or above level.
func NewLevelFilter(level zerolog.Level) *LevelFilter {
	f := &LevelFilter{}
	f.Set(level)
	return f
}

// Set changes the minimum level.
func (f *LevelFilter) Set(level zerolog.Level) { f.min.Store(int32(level)) }

// Level returns the minimum level.
func (f *LevelFilter) Level() zerolog.Level { return zerolog.Level(f.min.Load()) }

// Run implements zerolog.Hook.
func (f *LevelFilter) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	if level < f.Level() {
		e.Discard()
	}
}

// NewLogger builds the root logger from the log settings. A nil w writes
// to stderr. The returned filter controls the level of the root logger and
// of every logger derived from it.
func NewLogger(cfg config.LogConfig, w io.Writer) (zerolog.Logger, *LevelFilter, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	if cfg.Format != config.FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	filter := NewLevelFilter(level)
	ctx := zerolog.New(w).With().Timestamp()
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger().Level(zerolog.TraceLevel).Hook(filter), filter, nil
}
