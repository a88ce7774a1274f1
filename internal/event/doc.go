// Package event provides named custom-event channels and the Eventable host
// capability.
//
// A Channel is a single publish/subscribe channel independent of any native
// event source. Subscribers are invoked in insertion order, each with its own
// scope and bound arguments followed by the arguments given to Fire:
//
//	ch := event.NewChannel("saved", doc)
//	cb := event.Func(func(scope any, args ...any) {
//		fmt.Println(scope, args)
//	})
//	ch.Subscribe(cb, nil, "bound")
//	ch.Fire("fired") // doc [bound fired]
//
// # Callback identity
//
// A callback is identified by its interface value. Subscribing the same
// callback twice to one channel is rejected until it is removed. Plain
// functions are not comparable in Go, so Func wraps them in a pointer; keep
// the returned Callback to unsubscribe later.
//
// # Eventable hosts
//
// Any type gains named channels by embedding *Eventable:
//
//	type Document struct {
//		*event.Eventable
//	}
//
//	d := &Document{}
//	d.Eventable = event.NewEventable(d)
//	d.CreateEvent("saved", nil)
//	d.FireEvent("saved", "path.txt")
//
// Operations on a name that was never created are no-ops.
//
// # Fire semantics
//
// Fire snapshots the subscriber list before dispatching. A subscriber removed
// by an earlier callback during the same fire is skipped; no subscriber is
// invoked twice. Subscribers added during a fire are first invoked on the
// next fire. A panicking callback is recovered, logged and counted; the
// remaining subscribers still run.
package event
