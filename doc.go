// Package beacon provides a typed, in-process publish/subscribe registry:
// a broadcaster holds a priority-ordered collection of callbacks sharing
// one payload type and invokes them synchronously on the caller's
// goroutine. It exists to decouple a subsystem's observers from its
// producer inside a single program; there is no networking, persistence
// or deferred delivery.
//
// Design decisions:
//   - Type safety: Broadcaster[T] fixes one exact callback signature per
//     broadcaster at compile time; multi-argument events are struct
//     payloads
//   - Four callback shapes: declared functions, closures, pre-erased
//     Callable values and (owner, method) pairs, unified behind one
//     type-erased invocation contract
//   - Value handles: Hook returns a comparable Handle that identifies the
//     registration by (priority, kind, identity) and carries no ownership
//   - Coarse ordering: lower priorities dispatch first; order within one
//     priority bucket is unspecified. KeepOrder trades priorities for
//     exact insertion order
//   - Explicit contract: use-before-bind, duplicate hooks, unknown
//     unhooks and mutation during dispatch are violations. They panic by
//     default and become distinguished errors with Strict(true)
//   - Owner rebinding: copying a broadcaster between owning instances
//     retargets method callbacks to the destination owner
//
// Basic usage:
//
//	b := beacon.New[int](nil)
//
//	early, _ := b.Hook(func(v int) { fmt.Println("first", v) }, 1)
//	late, _ := b.Hook(printLater, 5)
//
//	_ = b.Invoke(7) // every priority-1 callback completes before priority 5
//
//	_ = b.Unhook(early)
//	_ = b.Unhook(late)
//
// Method callbacks and rebinding:
//
//	type counter struct{ n int }
//	func (c *counter) add(v int) { c.n += v }
//
//	a := &counter{}
//	b := beacon.New[int](a)
//	h, _ := beacon.HookMethod(b, a, (*counter).add, 0)
//
// Broadcasters are single-goroutine objects: no internal locking, no
// yielding, and no iterator protection beyond refusing reentrant
// mutation. See the Liveness interface for detecting dispatch into an
// owner that has been torn down.
package beacon
