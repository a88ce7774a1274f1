package lua

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/eventgate/internal/capability"
	"github.com/dshills/eventgate/internal/config"
	"github.com/dshills/eventgate/internal/event"
	"github.com/dshills/eventgate/internal/gateway"
	"github.com/dshills/eventgate/internal/input/key"
	"github.com/dshills/eventgate/internal/native"
	glua "github.com/yuin/gopher-lua"
)

type fixture struct {
	host *event.Eventable
	doc  *native.Doc
	root *native.Element
	gw   *gateway.Gateway
}

func newFixture() *fixture {
	doc := native.NewDoc(native.WithReadyState(native.ReadyComplete))
	root := doc.Append(native.NewElement("root"))
	return &fixture{
		host: event.NewEventable("app"),
		doc:  doc,
		root: root,
		gw:   gateway.New(doc, capability.Standard()),
	}
}

func (f *fixture) runtime(t *testing.T) *Runtime {
	t.Helper()
	r := NewRuntime("test", f.host, f.gw, gateway.El(f.root))
	t.Cleanup(r.Close)
	return r
}

func exec(t *testing.T, r *Runtime, code string) {
	t.Helper()
	if err := r.Exec(context.Background(), code); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
}

func TestRuntimeSubscribeAndFire(t *testing.T) {
	f := newFixture()
	f.host.CreateEvent("saved", nil)
	r := f.runtime(t)

	exec(t, r, `
		got = {}
		ok = eventgate.subscribe("saved", function(path, n)
			got.path = path
			got.n = n
		end)
	`)
	if r.State().GetGlobal("ok") != glua.LTrue {
		t.Fatal("subscribe returned false")
	}
	if r.Subscriptions("saved") != 1 {
		t.Errorf("Subscriptions() = %d, want 1", r.Subscriptions("saved"))
	}

	f.host.FireEvent("saved", "/tmp/a.txt", 3)

	got := ToGo(r.State().GetGlobal("got")).(map[string]any)
	if got["path"] != "/tmp/a.txt" || got["n"] != int64(3) {
		t.Errorf("callback saw %v", got)
	}
}

func TestRuntimeSubscribeUnknownEvent(t *testing.T) {
	f := newFixture()
	r := f.runtime(t)

	exec(t, r, `ok = eventgate.subscribe("missing", function() end)`)
	if r.State().GetGlobal("ok") != glua.LFalse {
		t.Error("subscribe to a missing event returned true")
	}
}

func TestRuntimeCreateFireFromLua(t *testing.T) {
	f := newFixture()
	r := f.runtime(t)

	var seen []any
	exec(t, r, `eventgate.create("ping")`)
	if !f.host.Subscribe("ping", event.Func(func(_ any, args ...any) { seen = args }), nil) {
		t.Fatal("ping was not created")
	}

	exec(t, r, `fired = eventgate.fire("ping", "a", 2, true)`)
	if r.State().GetGlobal("fired") != glua.LTrue {
		t.Error("fire returned false")
	}
	if len(seen) != 3 || seen[0] != "a" || seen[1] != int64(2) || seen[2] != true {
		t.Errorf("subscriber saw %v", seen)
	}

	exec(t, r, `missing = eventgate.fire("nope")`)
	if r.State().GetGlobal("missing") != glua.LFalse {
		t.Error("fire on a missing event returned true")
	}
}

func TestRuntimeReentrantFire(t *testing.T) {
	f := newFixture()
	r := f.runtime(t)

	exec(t, r, `
		count = 0
		eventgate.create("tick")
		eventgate.subscribe("tick", function() count = count + 1 end)
		eventgate.fire("tick")
		eventgate.fire("tick")
	`)
	if got := r.State().GetGlobal("count"); got != glua.LNumber(2) {
		t.Errorf("count = %v, want 2", got)
	}
}

func TestRuntimeUnsubscribe(t *testing.T) {
	f := newFixture()
	f.host.CreateEvent("saved", nil)
	r := f.runtime(t)

	exec(t, r, `
		eventgate.subscribe("saved", function() end)
		eventgate.subscribe("saved", function() end)
		n = eventgate.unsubscribe("saved")
	`)
	if got := r.State().GetGlobal("n"); got != glua.LNumber(2) {
		t.Errorf("unsubscribe = %v, want 2", got)
	}
	if f.host.Event("saved").Len() != 0 {
		t.Errorf("channel still has %d subscribers", f.host.Event("saved").Len())
	}
}

func TestRuntimeBind(t *testing.T) {
	f := newFixture()
	r := f.runtime(t)

	exec(t, r, `
		presses = 0
		ok = eventgate.bind("ctrl+s", function(ev)
			presses = presses + 1
			last = ev
		end, true)
	`)
	if r.State().GetGlobal("ok") != glua.LTrue {
		t.Fatal("bind returned false")
	}
	if r.Bindings() != 1 {
		t.Errorf("Bindings() = %d, want 1", r.Bindings())
	}

	raw := f.root.KeyDown(83, key.ModCtrl)
	f.root.KeyDown(83, key.ModNone)

	if got := r.State().GetGlobal("presses"); got != glua.LNumber(1) {
		t.Errorf("presses = %v, want 1", got)
	}
	last := ToGo(r.State().GetGlobal("last")).(map[string]any)
	if last["code"] != int64(83) || last["ctrl"] != true || last["shift"] != false || last["type"] != native.TypeKeyDown {
		t.Errorf("event table = %v", last)
	}
	if !raw.PropagationStopped() || !raw.DefaultPrevented() {
		t.Error("stop option did not stop the native event")
	}
}

func TestRuntimeBindInvalid(t *testing.T) {
	f := newFixture()
	r := f.runtime(t)

	exec(t, r, `ok = eventgate.bind("", function() end)`)
	if r.State().GetGlobal("ok") != glua.LFalse {
		t.Error("bind with an empty descriptor returned true")
	}

	noKeys := NewRuntime("nokeys", f.host, nil, gateway.Ref{})
	defer noKeys.Close()
	exec(t, noKeys, `ok = eventgate.bind("a", function() end)`)
	if noKeys.State().GetGlobal("ok") != glua.LFalse {
		t.Error("bind without a key binder returned true")
	}
}

func TestRuntimeValidHotkey(t *testing.T) {
	f := newFixture()
	r := f.runtime(t)

	exec(t, r, `
		a = eventgate.valid_hotkey("ctrl+s")
		b = eventgate.valid_hotkey("ctrl+nothing")
	`)
	if r.State().GetGlobal("a") != glua.LTrue || r.State().GetGlobal("b") != glua.LFalse {
		t.Error("valid_hotkey results wrong")
	}
}

func TestRuntimeCloseDetaches(t *testing.T) {
	f := newFixture()
	f.host.CreateEvent("saved", nil)
	r := NewRuntime("test", f.host, f.gw, gateway.El(f.root))

	exec(t, r, `
		eventgate.subscribe("saved", function() end)
		eventgate.bind("esc", function() end)
	`)
	if f.root.ListenerCount(native.TypeKeyDown) != 1 {
		t.Fatalf("ListenerCount() = %d, want 1", f.root.ListenerCount(native.TypeKeyDown))
	}

	r.Close()

	if f.host.Event("saved").Len() != 0 {
		t.Error("subscription survived Close")
	}
	if f.root.ListenerCount(native.TypeKeyDown) != 0 {
		t.Error("key listener survived Close")
	}
	if !r.State().IsClosed() {
		t.Error("state not closed")
	}
}

func TestLoad(t *testing.T) {
	f := newFixture()
	f.host.CreateEvent("config.reloaded", nil)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.lua")
	if err := os.WriteFile(good, []byte(`
		reloads = 0
		eventgate.subscribe("config.reloaded", function() reloads = reloads + 1 end)
		print("loaded", 1)
	`), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(context.Background(), good, f.host, f.gw, gateway.El(f.root))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer r.Close()
	if r.Name() != "good.lua" {
		t.Errorf("Name() = %q", r.Name())
	}

	f.host.FireEvent("config.reloaded")
	if got := r.State().GetGlobal("reloads"); got != glua.LNumber(1) {
		t.Errorf("reloads = %v, want 1", got)
	}

	bad := filepath.Join(dir, "bad.lua")
	if err := os.WriteFile(bad, []byte(`this is not lua`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(context.Background(), bad, f.host, f.gw, gateway.El(f.root))
	if got := config.Code(err); got != CodeLoad {
		t.Errorf("Load(bad) code = %q, want %q", got, CodeLoad)
	}

	_, err = Load(context.Background(), filepath.Join(dir, "missing.lua"), f.host, f.gw, gateway.El(f.root))
	if config.Code(err) != CodeLoad {
		t.Errorf("Load(missing) error = %v", err)
	}
}
