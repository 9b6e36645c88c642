package beacon

import (
	"github.com/casualjim/beacon/internal/registry"
)

// Global is the process-wide registry of named broadcasters. Producers
// register their broadcaster under a topic name; observers look it up by
// the same name without sharing a variable.
var Global = registry.New[any]()

// Register adds the broadcaster to the package registry under its
// configured name, falling back to its generated id when unnamed.
func Register[T any](b *Broadcaster[T]) {
	name := b.Name()
	if name == "" {
		name = b.ID()
	}
	Global.Add(name, b)
}

// Lookup resolves a registered broadcaster by name. The second result is
// false when the name is unknown or the registered broadcaster carries a
// different payload type.
func Lookup[T any](name string) (*Broadcaster[T], bool) {
	v, ok := Global.Get(name)
	if !ok {
		return nil, false
	}
	b, ok := v.(*Broadcaster[T])
	return b, ok
}

// Deregister drops the named broadcaster from the package registry. The
// broadcaster itself, and any handles into it, stay usable.
func Deregister(name string) {
	Global.Del(name)
}
