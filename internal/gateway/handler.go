package gateway

import "reflect"

// Handler receives normalized native events along with its bound args.
// Implementations must be comparable; identity is used for de-duplication
// and removal.
type Handler interface {
	HandleEvent(e *Event, args []any)
}

type funcHandler struct {
	fn func(*Event, []any)
}

func (f *funcHandler) HandleEvent(e *Event, args []any) { f.fn(e, args) }

// Func adapts fn to a Handler. Each call returns a distinct identity.
// Returns nil when fn is nil.
func Func(fn func(e *Event, args []any)) Handler {
	if fn == nil {
		return nil
	}
	return &funcHandler{fn: fn}
}

// callable reports whether h is usable as a handler identity.
func callable(h Handler) bool {
	if h == nil {
		return false
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.Interface:
		if v.IsNil() {
			return false
		}
	}
	return v.Comparable()
}
