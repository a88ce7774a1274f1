package lua

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(context.Background(), `x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := s.GetGlobal("x"); got != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", got)
	}
}

func TestStateRestrictedLibraries(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"io", "os", "debug", "dofile", "loadfile", "require"} {
		if v := s.GetGlobal(name); v != glua.LNil {
			t.Errorf("global %s = %v, want nil", name, v)
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs"} {
		if v := s.GetGlobal(name); v == glua.LNil {
			t.Errorf("global %s missing", name)
		}
	}
}

func TestStateSyntaxError(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(context.Background(), `x = `); err == nil {
		t.Error("DoString() expected syntax error")
	}
}

func TestStateTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	start := time.Now()
	err := s.DoString(context.Background(), `while true do end`)
	if err == nil {
		t.Fatal("DoString() expected timeout error")
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("timeout took %v", time.Since(start))
	}
}

func TestStateCall(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(context.Background(), `function add(a, b) return a + b, "done" end`); err != nil {
		t.Fatal(err)
	}
	fn, ok := s.GetGlobal("add").(*glua.LFunction)
	if !ok {
		t.Fatal("add is not a function")
	}

	res, err := s.Call(fn, glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(res) != 2 || res[0] != glua.LNumber(5) || res[1] != glua.LString("done") {
		t.Errorf("Call() = %v", res)
	}

	if err := s.DoString(context.Background(), `function boom() error("bad") end`); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Call(s.GetGlobal("boom").(*glua.LFunction)); err == nil || !strings.Contains(err.Error(), "bad") {
		t.Errorf("Call(boom) error = %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()

	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if v := s.GetGlobal("x"); v != glua.LNil {
		t.Errorf("GetGlobal() = %v after close", v)
	}
}
