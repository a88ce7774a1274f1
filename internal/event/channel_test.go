package event

import (
	"testing"

	"github.com/dshills/eventgate/internal/event/dispatch"
	"github.com/dshills/eventgate/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	id    string
	scope any
	args  []any
}

func recorder(log *[]call, id string) Callback {
	return Func(func(scope any, args ...any) {
		*log = append(*log, call{id: id, scope: scope, args: args})
	})
}

func TestChannelSubscribeDuplicate(t *testing.T) {
	ch := NewChannel("saved", "default")
	cb := Func(func(any, ...any) {})

	require.True(t, ch.Subscribe(cb, nil))
	assert.False(t, ch.Subscribe(cb, "other"))
	assert.Equal(t, 1, ch.Len())
}

func TestChannelSubscribeRejectsNonCallable(t *testing.T) {
	ch := NewChannel("saved", nil)

	assert.False(t, ch.Subscribe(nil, nil))
	assert.False(t, ch.Subscribe(sliceCallback{1}, nil))
	assert.Equal(t, 0, ch.Len())
}

func TestChannelFireOrderScopeAndArgs(t *testing.T) {
	var log []call
	ch := NewChannel("saved", "default")

	ch.Subscribe(recorder(&log, "a"), nil, 1)
	ch.Subscribe(recorder(&log, "b"), "scopeB")
	ch.Subscribe(recorder(&log, "c"), "scopeC", 2, 3)

	n := ch.Fire("x", "y")

	assert.Equal(t, 3, n)
	assert.Equal(t, []call{
		{id: "a", scope: "default", args: []any{1, "x", "y"}},
		{id: "b", scope: "scopeB", args: []any{"x", "y"}},
		{id: "c", scope: "scopeC", args: []any{2, 3, "x", "y"}},
	}, log)

	log = nil
	ch.Fire()
	require.Len(t, log, 3)
	assert.Equal(t, "a", log[0].id)
	assert.Equal(t, "b", log[1].id)
	assert.Equal(t, "c", log[2].id)
}

func TestChannelBoundArgsAreCopied(t *testing.T) {
	var log []call
	ch := NewChannel("saved", nil)
	bound := []any{1, 2}

	ch.Subscribe(recorder(&log, "a"), nil, bound...)
	bound[0] = 99
	ch.Fire()

	require.Len(t, log, 1)
	assert.Equal(t, []any{1, 2}, log[0].args)
}

func TestChannelUnsubscribeSelfDuringFire(t *testing.T) {
	ch := NewChannel("saved", nil)
	counts := map[string]int{}

	var self Callback
	self = Func(func(any, ...any) {
		counts["self"]++
		ch.Unsubscribe(self)
	})
	first := Func(func(any, ...any) { counts["first"]++ })
	last := Func(func(any, ...any) { counts["last"]++ })

	ch.Subscribe(first, nil)
	ch.Subscribe(self, nil)
	ch.Subscribe(last, nil)

	assert.NotPanics(t, func() { ch.Fire() })
	assert.Equal(t, map[string]int{"first": 1, "self": 1, "last": 1}, counts)
	assert.False(t, ch.IsSubscribed(self))

	ch.Fire()
	assert.Equal(t, map[string]int{"first": 2, "self": 1, "last": 2}, counts)
}

func TestChannelUnsubscribeLaterDuringFire(t *testing.T) {
	ch := NewChannel("saved", nil)
	var order []string

	later := Func(func(any, ...any) { order = append(order, "later") })
	remover := Func(func(any, ...any) {
		order = append(order, "remover")
		ch.Unsubscribe(later)
	})
	tail := Func(func(any, ...any) { order = append(order, "tail") })

	ch.Subscribe(remover, nil)
	ch.Subscribe(later, nil)
	ch.Subscribe(tail, nil)

	n := ch.Fire()

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"remover", "tail"}, order)
}

func TestChannelSubscribeDuringFireWaitsForNextFire(t *testing.T) {
	ch := NewChannel("saved", nil)
	var order []string

	added := Func(func(any, ...any) { order = append(order, "added") })
	adder := Func(func(any, ...any) {
		order = append(order, "adder")
		ch.Subscribe(added, nil)
	})
	ch.Subscribe(adder, nil)

	ch.Fire()
	assert.Equal(t, []string{"adder"}, order)

	ch.Fire()
	assert.Equal(t, []string{"adder", "adder", "added"}, order)
}

func TestChannelUnsubscribe(t *testing.T) {
	ch := NewChannel("saved", nil)
	a := Func(func(any, ...any) {})
	b := Func(func(any, ...any) {})
	ch.Subscribe(a, nil)
	ch.Subscribe(b, nil)

	assert.True(t, ch.Unsubscribe(a))
	assert.False(t, ch.Unsubscribe(a))
	assert.False(t, ch.IsSubscribed(a))
	assert.True(t, ch.IsSubscribed(b))

	// Removed callbacks may subscribe again.
	assert.True(t, ch.Subscribe(a, nil))
	assert.Equal(t, 2, ch.Len())

	assert.True(t, ch.Unsubscribe(nil))
	assert.Equal(t, 0, ch.Len())
	assert.False(t, ch.Unsubscribe(nil))
}

func TestChannelUnsubscribeAll(t *testing.T) {
	ch := NewChannel("saved", nil)
	ch.Subscribe(Func(func(any, ...any) {}), nil)
	ch.Subscribe(Func(func(any, ...any) {}), nil)

	assert.Equal(t, 2, ch.UnsubscribeAll())
	assert.Equal(t, 0, ch.Len())
	assert.Equal(t, 0, ch.Fire())
}

func TestChannelSubscribersIsCopy(t *testing.T) {
	ch := NewChannel("saved", "scope")
	cb := Func(func(any, ...any) {})
	ch.Subscribe(cb, nil, "bound")

	subs := ch.Subscribers()
	require.Len(t, subs, 1)
	assert.Equal(t, cb, subs[0].Callback())
	assert.Equal(t, "scope", subs[0].Scope())
	assert.Equal(t, []any{"bound"}, subs[0].Args())

	ch.UnsubscribeAll()
	assert.Equal(t, cb, subs[0].Callback())
}

func TestChannelPanicIsolation(t *testing.T) {
	var handled []string
	exec := dispatch.NewExecutor(dispatch.WithPanicHandler(func(source string, _ any, _ []byte) {
		handled = append(handled, source)
	}))
	rec := metrics.NewRecorder("test")
	ch := NewChannel("saved", nil, WithExecutor(exec), WithRecorder(rec))

	var after bool
	ch.Subscribe(Func(func(any, ...any) { panic("boom") }), nil)
	ch.Subscribe(Func(func(any, ...any) { after = true }), nil)

	n := ch.Fire()

	assert.Equal(t, 2, n)
	assert.True(t, after)
	assert.Equal(t, []string{"saved"}, handled)
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.CallbackPanics("saved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.ChannelFires("saved")))
}

func TestChannelAccessors(t *testing.T) {
	ch := NewChannel("saved", 42)

	assert.Equal(t, "saved", ch.Name())
	assert.Equal(t, 42, ch.Scope())
}
