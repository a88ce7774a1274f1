package lua

import (
	"context"
	"path/filepath"

	"github.com/dshills/eventgate/internal/event"
	"github.com/dshills/eventgate/internal/gateway"
	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/native"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the global table scripts use.
const ModuleName = "eventgate"

// KeyBinder installs key listeners. *gateway.Gateway implements it.
type KeyBinder interface {
	AddKeyListener(ref gateway.Ref, trigger key.Trigger, cb gateway.Handler, opts ...gateway.ListenerOption) gateway.Handler
	Remove(ref gateway.Ref, typ string, h gateway.Handler) bool
	Matcher() key.Matcher
}

var _ KeyBinder = (*gateway.Gateway)(nil)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runtime) {
		r.log = l
	}
}

// WithStateOptions passes options to the underlying State.
func WithStateOptions(opts ...StateOption) Option {
	return func(r *Runtime) {
		r.stateOpts = append(r.stateOpts, opts...)
	}
}

// Runtime is one loaded script and everything it registered.
type Runtime struct {
	name      string
	host      event.Host
	keys      KeyBinder
	root      gateway.Ref
	log       zerolog.Logger
	stateOpts []StateOption

	state    *State
	subs     map[string][]event.Callback
	bindings []gateway.Handler
}

// NewRuntime creates a runtime whose scripts subscribe to channels on
// host and bind hotkeys on root through keys. keys may be nil, in which
// case eventgate.bind always returns false.
func NewRuntime(name string, host event.Host, keys KeyBinder, root gateway.Ref, opts ...Option) *Runtime {
	r := &Runtime{
		name: name,
		host: host,
		keys: keys,
		root: root,
		log:  zerolog.Nop(),
		subs: make(map[string][]event.Callback),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With().Str("plugin", name).Logger()

	r.state = NewState(append([]StateOption{WithStateLogger(r.log)}, r.stateOpts...)...)
	r.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"create":       r.luaCreate,
		"subscribe":    r.luaSubscribe,
		"unsubscribe":  r.luaUnsubscribe,
		"fire":         r.luaFire,
		"bind":         r.luaBind,
		"valid_hotkey": r.luaValidHotkey,
		"log":          r.luaLog,
	})
	return r
}

// Load creates a runtime and runs the script at path.
func Load(ctx context.Context, path string, host event.Host, keys KeyBinder, root gateway.Ref, opts ...Option) (*Runtime, error) {
	r := NewRuntime(filepath.Base(path), host, keys, root, opts...)
	if err := r.state.DoFile(ctx, path); err != nil {
		r.Close()
		return nil, ErrLoad(path, err)
	}
	r.log.Debug().Str("path", path).Msg("plugin loaded")
	return r, nil
}

// Name returns the runtime name.
func (r *Runtime) Name() string {
	return r.name
}

// State returns the underlying Lua state.
func (r *Runtime) State() *State {
	return r.state
}

// Exec runs Lua source in the runtime.
func (r *Runtime) Exec(ctx context.Context, code string) error {
	return r.state.DoString(ctx, code)
}

// Subscriptions returns how many callbacks the script holds on name.
func (r *Runtime) Subscriptions(name string) int {
	return len(r.subs[name])
}

// Bindings returns how many key listeners the script installed.
func (r *Runtime) Bindings() int {
	return len(r.bindings)
}

// Close removes every subscription and key listener the script created
// and releases the Lua state.
func (r *Runtime) Close() {
	for name := range r.subs {
		r.unsubscribe(name)
	}
	if r.keys != nil {
		for _, h := range r.bindings {
			r.keys.Remove(r.root, native.TypeKeyDown, h)
		}
	}
	r.bindings = nil
	r.state.Close()
}

func (r *Runtime) unsubscribe(name string) int {
	n := 0
	for _, cb := range r.subs[name] {
		if r.host.Unsubscribe(name, cb) {
			n++
		}
	}
	delete(r.subs, name)
	return n
}

// call invokes a script function, logging failures.
func (r *Runtime) call(fn *lua.LFunction, args ...lua.LValue) {
	if _, err := r.state.Call(fn, args...); err != nil {
		r.log.Warn().Err(err).Msg("plugin callback failed")
	}
}

func (r *Runtime) luaCreate(L *lua.LState) int {
	name := L.CheckString(1)
	r.host.CreateEvent(name, nil)
	L.Push(lua.LTrue)
	return 1
}

func (r *Runtime) luaSubscribe(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	cb := event.Func(func(_ any, args ...any) {
		largs := make([]lua.LValue, len(args))
		for i, a := range args {
			largs[i] = ToLua(r.state.L, a)
		}
		r.call(fn, largs...)
	})
	ok := r.host.Subscribe(name, cb, nil)
	if ok {
		r.subs[name] = append(r.subs[name], cb)
	}
	L.Push(lua.LBool(ok))
	return 1
}

func (r *Runtime) luaUnsubscribe(L *lua.LState) int {
	name := L.CheckString(1)
	L.Push(lua.LNumber(r.unsubscribe(name)))
	return 1
}

func (r *Runtime) luaFire(L *lua.LState) int {
	name := L.CheckString(1)
	args := make([]any, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		args = append(args, ToGo(L.Get(i)))
	}
	L.Push(lua.LBool(r.host.FireEvent(name, args...)))
	return 1
}

func (r *Runtime) luaBind(L *lua.LState) int {
	descriptor := L.CheckString(1)
	fn := L.CheckFunction(2)
	stop := L.OptBool(3, false)

	if r.keys == nil {
		L.Push(lua.LFalse)
		return 1
	}

	h := r.keys.AddKeyListener(r.root, key.Hotkey(descriptor), gateway.Func(func(e *gateway.Event, _ []any) {
		t := r.state.L.NewTable()
		t.RawSetString("type", lua.LString(e.Type()))
		t.RawSetString("code", lua.LNumber(e.KeyCode))
		t.RawSetString("shift", lua.LBool(e.Shift()))
		t.RawSetString("ctrl", lua.LBool(e.Ctrl()))
		t.RawSetString("alt", lua.LBool(e.Alt()))
		r.call(fn, t)
	}), gateway.WithStop(stop))
	if h == nil {
		L.Push(lua.LFalse)
		return 1
	}
	r.bindings = append(r.bindings, h)
	L.Push(lua.LTrue)
	return 1
}

func (r *Runtime) luaValidHotkey(L *lua.LState) int {
	descriptor := L.CheckString(1)
	gecko := false
	if r.keys != nil {
		gecko = r.keys.Matcher().Gecko()
	}
	L.Push(lua.LBool(key.ParseDescriptor(descriptor).Valid(gecko)))
	return 1
}

func (r *Runtime) luaLog(L *lua.LState) int {
	r.log.Info().Msg(L.CheckString(1))
	return 0
}
