package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/eventgate/internal/config"
	"github.com/dshills/eventgate/internal/config/watcher"
	"github.com/dshills/eventgate/internal/event"
	"github.com/dshills/eventgate/internal/gateway"
	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/metrics"
	"github.com/dshills/eventgate/internal/native"
	"github.com/dshills/eventgate/internal/plugin/lua"
	"github.com/dshills/eventgate/internal/terminal"
	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Channels created on every Application.
const (
	EventHotkey         = "hotkey"
	EventReady          = "ready"
	EventConfigReloaded = "config.reloaded"
)

// RootID is the id of the element key presses are dispatched to.
const RootID = "root"

// QuitKey ends Run.
const QuitKey = "ctrl+q"

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML file to load and watch. Empty uses defaults
	// and disables reloading.
	ConfigPath string

	// Config replaces the file contents when set. ConfigPath is still
	// watched.
	Config *config.Config

	// LogOutput receives log output. Defaults to stderr.
	LogOutput io.Writer

	// Screen is the terminal screen. Defaults to the controlling tty.
	Screen tcell.Screen
}

// Application ties a terminal, a document and the gateway together and
// hosts the application channels.
type Application struct {
	*event.Eventable

	opts Options

	mu    sync.RWMutex
	cfg   config.Config
	log   zerolog.Logger
	level *LevelFilter

	rec      *metrics.Recorder
	registry *prometheus.Registry

	doc  *native.Doc
	root *native.Element
	gw   *gateway.Gateway
	term *terminal.Terminal

	bindings map[string]gateway.Handler
	plugins  []*lua.Runtime

	running atomic.Bool
}

// New loads the configuration and builds every component. Nothing is
// drawn or loaded until Run.
func New(opts Options) (*Application, error) {
	var cfg config.Config
	if opts.Config != nil {
		if err := opts.Config.Validate(); err != nil {
			return nil, err
		}
		cfg = *opts.Config
	} else {
		var err error
		if cfg, err = config.LoadOrDefault(opts.ConfigPath); err != nil {
			return nil, err
		}
	}

	log, level, err := NewLogger(cfg.Log, opts.LogOutput)
	if err != nil {
		return nil, err
	}

	app := &Application{
		opts:     opts,
		cfg:      cfg,
		log:      log,
		level:    level,
		bindings: make(map[string]gateway.Handler),
	}

	if cfg.Metrics.Enabled {
		app.rec = metrics.NewRecorder(cfg.Metrics.Namespace)
		app.registry = prometheus.NewRegistry()
		app.rec.Register(app.registry)
	}

	app.Eventable = event.NewEventable(app,
		event.WithLogger(app.component("event")),
		event.WithRecorder(app.rec),
	)
	for _, name := range []string{EventHotkey, EventReady, EventConfigReloaded} {
		app.CreateEvent(name, nil)
	}

	probe, err := cfg.Capability.Probe()
	if err != nil {
		return nil, err
	}
	matcher := cfg.Matcher()

	app.doc = native.NewDoc()
	app.root = app.doc.Append(native.NewElement(RootID))
	app.gw = gateway.New(app.doc, probe,
		gateway.WithLogger(app.component("gateway")),
		gateway.WithMatcher(matcher),
		gateway.WithPollInterval(cfg.Ready.PollInterval.Duration),
		gateway.WithMetrics(app.rec),
	)

	termOpts := []terminal.Option{
		terminal.WithLogger(app.component("terminal")),
		terminal.WithTranslator(terminal.Translator{KeypadDigits: !matcher.Gecko()}),
		terminal.WithQuit(key.Hotkey(QuitKey), matcher),
		terminal.WithTitle("eventgate (" + QuitKey + " quits)"),
	}
	if opts.Screen != nil {
		app.term = terminal.NewWithScreen(opts.Screen, termOpts...)
	} else {
		if app.term, err = terminal.New(termOpts...); err != nil {
			return nil, err
		}
	}

	app.applyBindings(cfg.Hotkeys)
	return app, nil
}

func (app *Application) component(name string) zerolog.Logger {
	return app.log.With().Str("component", name).Logger()
}

// Config returns the active configuration.
func (app *Application) Config() config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Gateway returns the event gateway.
func (app *Application) Gateway() *gateway.Gateway { return app.gw }

// Document returns the document.
func (app *Application) Document() *native.Doc { return app.doc }

// Root returns the element key presses are dispatched to.
func (app *Application) Root() *native.Element { return app.root }

// Terminal returns the terminal.
func (app *Application) Terminal() *terminal.Terminal { return app.term }

// Registry returns the metrics registry, or nil when metrics are disabled.
func (app *Application) Registry() *prometheus.Registry { return app.registry }

// Plugins returns the loaded plugin runtimes.
func (app *Application) Plugins() []*lua.Runtime {
	return append([]*lua.Runtime(nil), app.plugins...)
}

// Run initializes the terminal, loads plugins, marks the document ready
// and dispatches key presses until the quit key, ctx cancellation or a
// terminal failure.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := app.term.Init(); err != nil {
		return err
	}
	defer app.term.Shutdown()

	app.loadPlugins(ctx)
	defer app.closePlugins()

	strategy := app.gw.OnDomReady(ctx, event.Func(func(_ any, _ ...any) {
		app.post(func() {
			app.FireEvent(EventReady)
			app.term.Println("ready")
		})
	}))
	app.log.Debug().Str("strategy", strategy.String()).Msg("waiting for document")
	app.doc.Advance(native.ReadyInteractive)
	app.doc.Advance(native.ReadyComplete)

	if stop, err := app.startMetrics(); err != nil {
		app.log.Warn().Err(err).Msg("metrics disabled")
	} else if stop != nil {
		defer stop()
	}

	if app.opts.ConfigPath != "" {
		stop, err := app.watchConfig(ctx)
		if err != nil {
			app.log.Warn().Err(err).Str("path", app.opts.ConfigPath).Msg("config reload disabled")
		} else {
			defer stop()
		}
	}

	err := app.term.Run(ctx, app.root)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// post runs fn on the terminal loop, which owns the plugins.
func (app *Application) post(fn func()) {
	if err := app.term.Post(fn); err != nil {
		app.log.Warn().Err(err).Msg("terminal queue full")
	}
}

func (app *Application) loadPlugins(ctx context.Context) {
	for _, path := range app.Config().Plugins.Scripts {
		r, err := lua.Load(ctx, path, app, app.gw, gateway.El(app.root),
			lua.WithLogger(app.component("plugin")),
		)
		if err != nil {
			app.log.Warn().Err(err).Str("script", path).Msg("plugin not loaded")
			app.term.Println(fmt.Sprintf("plugin %s failed: %v", path, err))
			continue
		}
		app.plugins = append(app.plugins, r)
	}
}

func (app *Application) closePlugins() {
	for _, r := range app.plugins {
		r.Close()
	}
	app.plugins = nil
}

func (app *Application) startMetrics() (func(), error) {
	cfg := app.Config().Metrics
	if app.registry == nil || cfg.Addr == "" {
		return nil, nil
	}

	srv := NewMetricsServer(cfg.Addr, app.registry, func() bool {
		return app.doc.ReadyState() == native.ReadyComplete
	}, app.component("metrics"))
	if _, err := srv.Start(); err != nil {
		return nil, err
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			app.log.Warn().Err(err).Msg("metrics server shutdown")
		}
	}, nil
}

func (app *Application) watchConfig(ctx context.Context) (func(), error) {
	w, err := watcher.New(app.opts.ConfigPath, watcher.WithLogger(app.component("watcher")))
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Reload(ctx, func(cfg config.Config, err error) {
			app.post(func() { app.reload(cfg, err) })
		})
	}()

	return func() {
		_ = w.Close()
		<-done
	}, nil
}

// reload applies a reloaded configuration. The capability facts and the
// matcher are fixed for the life of the application. The log level applies
// to every component logger through the shared filter.
func (app *Application) reload(cfg config.Config, err error) {
	if err != nil {
		app.log.Warn().Err(err).Msg("config reload failed")
		app.term.Println("config error: " + err.Error())
		return
	}

	if level, lerr := cfg.Log.LogLevel(); lerr == nil {
		app.level.Set(level)
	}

	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()

	app.applyBindings(cfg.Hotkeys)
	app.FireEvent(EventConfigReloaded, cfg)
	app.term.Println(fmt.Sprintf("config reloaded (%d bindings)", len(cfg.Hotkeys.Bindings)))
}
