package dispatch

import (
	"runtime/debug"
	"time"
)

// PanicHandler receives the source label passed to Execute, the recovered
// value and the stack captured at the panic site.
type PanicHandler func(source string, recovered any, stack []byte)

// Result summarizes one callback run.
type Result struct {
	// Source is the label the caller passed to Execute.
	Source string

	// Recovered holds the panic value, or nil when fn returned normally.
	Recovered any

	// Stack is captured only when fn panicked.
	Stack []byte

	// Elapsed is the wall time spent in fn.
	Elapsed time.Duration
}

// Panicked reports whether the callback panicked.
func (r Result) Panicked() bool {
	return r.Stack != nil
}

// Executor runs callbacks and turns their panics into a Result.
type Executor struct {
	onPanic PanicHandler
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPanicHandler installs h. A nil handler is ignored.
func WithPanicHandler(h PanicHandler) ExecutorOption {
	return func(e *Executor) {
		if h != nil {
			e.onPanic = h
		}
	}
}

// NewExecutor creates an executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs fn. A nil Executor still recovers, it just has nobody to tell.
func (e *Executor) Execute(source string, fn func()) (res Result) {
	res.Source = source
	start := time.Now()

	defer func() {
		res.Elapsed = time.Since(start)
		r := recover()
		if r == nil {
			return
		}
		res.Recovered = r
		res.Stack = debug.Stack()
		if e != nil && e.onPanic != nil {
			e.report(source, r, res.Stack)
		}
	}()

	fn()
	return res
}

// report calls the handler, swallowing anything it throws.
func (e *Executor) report(source string, r any, stack []byte) {
	defer func() { _ = recover() }()
	e.onPanic(source, r, stack)
}
