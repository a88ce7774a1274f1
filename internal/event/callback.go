package event

import "reflect"

// Callback receives a fired custom event.
//
// scope is the subscriber's bound scope (or the channel default) and args are
// the subscriber's bound arguments followed by the fire arguments.
type Callback interface {
	Invoke(scope any, args ...any)
}

// funcCallback gives a plain function pointer identity.
type funcCallback struct {
	fn func(scope any, args ...any)
}

func (f *funcCallback) Invoke(scope any, args ...any) {
	f.fn(scope, args...)
}

// Func adapts fn to a Callback. Each call returns a distinct identity.
// Returns nil when fn is nil.
func Func(fn func(scope any, args ...any)) Callback {
	if fn == nil {
		return nil
	}
	return &funcCallback{fn: fn}
}

// Callable reports whether cb can be subscribed: it must be non-nil, not a
// nil pointer, and comparable so it can serve as an identity.
func Callable(cb Callback) bool {
	if cb == nil {
		return false
	}
	v := reflect.ValueOf(cb)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.Interface:
		if v.IsNil() {
			return false
		}
	}
	return v.Comparable()
}
