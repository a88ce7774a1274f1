// Package dispatch runs event callbacks with panic isolation.
//
// Every custom-event fire and every native wrapper invocation goes through
// an Executor so that one misbehaving callback cannot abort the rest of a
// fire or unwind into the native event loop. Panics are reported through a
// configurable PanicHandler callback and summarized in a Result.
//
// # Usage
//
//	exec := dispatch.NewExecutor(
//	    dispatch.WithPanicHandler(func(source string, v any, stack []byte) {
//	        log.Error().Str("source", source).Interface("panic", v).Msg("callback panicked")
//	    }),
//	)
//	result := exec.Execute("saved", func() { cb.Invoke(scope, args...) })
//	if result.Panicked() {
//	    // Count or report the failure
//	}
package dispatch
