package beacon

import (
	"fmt"
	"slices"

	"github.com/casualjim/beacon/pkg/reflectx"
	"github.com/casualjim/beacon/pkg/stdx"
	"github.com/casualjim/beacon/pkg/uuidx"
	"github.com/fogfish/opts"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Liveness is an optional interface for owner instances. When the bound
// owner implements it, Invoke checks it before dispatching and fails with
// ErrOwnerGone instead of calling into an owner that has been torn down.
type Liveness interface {
	Alive() bool
}

// Broadcaster holds an ordered collection of callbacks sharing one
// payload type and invokes them synchronously, in ascending priority
// order, on the caller's goroutine. Multi-argument signatures are
// expressed as a struct payload.
//
// A broadcaster must be bound before any other operation: either
// construct it with New, or take the zero value and call Bind. Binding is
// mandatory and irreversible. The zero value is otherwise inert.
//
// Broadcasters are not safe for concurrent use and provide no protection
// against mutation from inside a callback being dispatched beyond
// detecting it and refusing with ErrDispatching.
type Broadcaster[T any] struct {
	id    string
	name  string
	owner any

	bound       bool
	strict      bool
	keepOrder   bool
	dispatching bool
	counter     Priority

	buckets map[Priority]*orderedmap.OrderedMap[Handle, *call[T]]
	prios   []Priority
}

// New constructs a broadcaster and binds it in one step. Pass the owning
// instance when the broadcaster lives inside another object, or nil for a
// free-standing one; the owner reference is non-owning and is only used
// for method-callback bookkeeping and rebinding on CopyFrom.
func New[T any](owner any, options ...Option) *Broadcaster[T] {
	b := &Broadcaster[T]{}
	stdx.Must0(b.Bind(owner, options...))
	return b
}

// Bind establishes the broadcaster's owner and configuration. It must run
// exactly once, before any other operation; binding an already bound
// broadcaster is a contract violation.
func (b *Broadcaster[T]) Bind(owner any, options ...Option) error {
	if b.bound {
		return b.violation(ErrRebound)
	}

	var s settings
	stdx.Must0(opts.Apply(&s, options))

	b.name = s.name
	b.strict = s.strict
	b.keepOrder = s.keepOrder
	if b.id == "" {
		b.id = uuidx.NewString()
	}
	b.owner = owner
	b.buckets = make(map[Priority]*orderedmap.OrderedMap[Handle, *call[T]])
	b.bound = true
	return nil
}

// ID returns the generated identifier of the broadcaster. Empty until
// bound.
func (b *Broadcaster[T]) ID() string {
	return b.id
}

// Name returns the configured name, or "" when unnamed.
func (b *Broadcaster[T]) Name() string {
	return b.name
}

// Bound reports whether Bind has run.
func (b *Broadcaster[T]) Bound() bool {
	return b.bound
}

// Owner returns the bound owner instance, nil for free-standing
// broadcasters.
func (b *Broadcaster[T]) Owner() any {
	return b.owner
}

// Hook registers a function or closure at the given priority hint and
// returns the handle that identifies the registration. In keep-order mode
// the hint is ignored and the broadcaster's counter supplies the
// priority. Hooking a callback whose (priority, kind, identity) triple is
// already present is a contract violation.
//
// The returned handle is the only means of unhooking the callback later.
// Hold on to it when hooking closures, or they stay hooked for good.
func (b *Broadcaster[T]) Hook(fn func(T), priority Priority) (Handle, error) {
	if err := b.guard(); err != nil {
		return Handle{}, b.violation(err)
	}
	if fn == nil {
		return Handle{}, b.violation(ErrNilCallback)
	}

	kind := KindFunc
	if reflectx.IsAnonymous(fn) {
		kind = KindClosure
	}
	h := b.mint(priority, kind, reflectx.Fingerprint(fn))
	return b.insert(h, newFuncCall(h, fn))
}

// HookCallable registers a pre-erased callable at the given priority
// hint. Identity derives from the callable's pointer when it is
// pointer-shaped; callables carried by value are identified by their
// dynamic type only, so two distinct values of one type count as the same
// registration.
func (b *Broadcaster[T]) HookCallable(c Callable[T], priority Priority) (Handle, error) {
	if err := b.guard(); err != nil {
		return Handle{}, b.violation(err)
	}
	if c == nil {
		return Handle{}, b.violation(ErrNilCallback)
	}

	h := b.mint(priority, KindCallable, reflectx.ValueFingerprint(c))
	return b.insert(h, newCallableCall(h, c))
}

// HookMethod registers a method callback: the method expression is stored
// unbound together with a non-owning reference to owner, so CopyFrom can
// retarget the registration to another instance. It is a package-level
// function because Go methods cannot introduce type parameters.
//
// Identity combines the owner's fingerprint with the method's fingerprint
// via XOR; two distinct (owner, method) pairs can theoretically collide.
func HookMethod[T any, O comparable](b *Broadcaster[T], owner O, method func(O, T), priority Priority) (Handle, error) {
	if err := b.guard(); err != nil {
		return Handle{}, b.violation(err)
	}
	var zero O
	if owner == zero {
		return Handle{}, b.violation(ErrNilOwner)
	}
	if method == nil {
		return Handle{}, b.violation(ErrNilCallback)
	}

	identity := reflectx.ValueFingerprint(owner) ^ reflectx.Fingerprint(method)
	h := b.mint(priority, KindMethod, identity)
	return b.insert(h, newMethodCall(h, owner, method))
}

// Invoke calls every hooked callback with the payload, inline and in
// ascending priority order. Order within one priority bucket is
// unspecified by contract. Hooking or unhooking from inside a callback is
// refused with ErrDispatching, as is invoking the broadcaster
// reentrantly.
func (b *Broadcaster[T]) Invoke(v T) error {
	if err := b.guard(); err != nil {
		return b.violation(err)
	}
	if alive, ok := b.owner.(Liveness); ok && !alive.Alive() {
		return b.violation(ErrOwnerGone)
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()

	for _, p := range b.prios {
		for pair := b.buckets[p].Oldest(); pair != nil; pair = pair.Next() {
			pair.Value.do(v)
		}
	}
	return nil
}

// Unhook removes exactly the registration the handle identifies.
// Unhooking an invalid handle, or one that was never hooked or was
// already removed, is a contract violation.
func (b *Broadcaster[T]) Unhook(h Handle) error {
	if err := b.guard(); err != nil {
		return b.violation(err)
	}
	if !h.Valid() {
		return b.violation(fmt.Errorf("%s: %w", h, ErrInvalidHandle))
	}

	bucket := b.buckets[h.Priority()]
	if bucket == nil {
		return b.violation(fmt.Errorf("%s: %w", h, ErrUnknownHandle))
	}
	if _, ok := bucket.Delete(h); !ok {
		return b.violation(fmt.Errorf("%s: %w", h, ErrUnknownHandle))
	}
	if bucket.Len() == 0 {
		b.dropBucket(h.Priority())
	}
	return nil
}

// UnhookOwner removes every method callback hooked with the given owner
// instance, across all priorities. Callbacks of other owners and
// non-method callbacks are left alone. Finding nothing to remove is a
// contract violation.
func (b *Broadcaster[T]) UnhookOwner(owner any) error {
	if err := b.guard(); err != nil {
		return b.violation(err)
	}
	if owner == nil {
		return b.violation(ErrNilOwner)
	}

	removed := false
	for _, p := range slices.Clone(b.prios) {
		bucket := b.buckets[p]

		var matches []Handle
		for pair := bucket.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Key.Kind() == KindMethod && pair.Value.owner == owner {
				matches = append(matches, pair.Key)
			}
		}
		for _, h := range matches {
			bucket.Delete(h)
			removed = true
		}
		if bucket.Len() == 0 {
			b.dropBucket(p)
		}
	}

	if !removed {
		return b.violation(ErrOwnerNotHooked)
	}
	return nil
}

// Len returns the total number of hooked callbacks across all priority
// buckets. An unbound broadcaster reports 0.
func (b *Broadcaster[T]) Len() int {
	size := 0
	for _, bucket := range b.buckets {
		size += bucket.Len()
	}
	return size
}

// Clear empties every bucket. The keep-order counter is preserved, so
// later hooks continue the original insertion order.
func (b *Broadcaster[T]) Clear() error {
	if err := b.guard(); err != nil {
		return b.violation(err)
	}

	b.buckets = make(map[Priority]*orderedmap.OrderedMap[Handle, *call[T]])
	b.prios = nil
	return nil
}

// CopyFrom deep-copies the source broadcaster's call list, counter and
// ordering mode into the receiver, replacing whatever was hooked before.
// When both sides are bound to owners, every method callback that
// referenced the source's owner is retargeted to the receiver's owner, so
// the copy dispatches to its own instance. Handles remain valid against
// the copy unchanged.
//
// Owners on both sides must share a type for retargeted method callbacks
// to remain invocable, mirroring the usual case of copying a value that
// embeds its broadcaster.
func (b *Broadcaster[T]) CopyFrom(src *Broadcaster[T]) error {
	if src == nil {
		return b.violation(ErrNilSource)
	}
	if b == src {
		return nil
	}
	if b.dispatching || src.dispatching {
		return b.violation(ErrDispatching)
	}
	if !src.bound {
		return b.violation(ErrNotBound)
	}

	b.buckets = make(map[Priority]*orderedmap.OrderedMap[Handle, *call[T]], len(src.buckets))
	b.prios = slices.Clone(src.prios)
	for p, bucket := range src.buckets {
		cp := orderedmap.New[Handle, *call[T]]()
		for pair := bucket.Oldest(); pair != nil; pair = pair.Next() {
			cp.Set(pair.Key, pair.Value.clone())
		}
		b.buckets[p] = cp
	}
	b.counter = src.counter
	b.keepOrder = src.keepOrder
	if !b.bound {
		if b.id == "" {
			b.id = uuidx.NewString()
		}
		b.bound = true
	}

	if b.owner != nil && src.owner != nil && b.owner != src.owner {
		for _, bucket := range b.buckets {
			for pair := bucket.Oldest(); pair != nil; pair = pair.Next() {
				c := pair.Value
				if c.handle.Kind() == KindMethod && c.owner == src.owner {
					c.owner = b.owner
				}
			}
		}
	}
	return nil
}

func (b *Broadcaster[T]) guard() error {
	if !b.bound {
		return ErrNotBound
	}
	if b.dispatching {
		return ErrDispatching
	}
	return nil
}

// violation reports a contract violation: wrapped error result in strict
// mode, panic otherwise.
func (b *Broadcaster[T]) violation(err error) error {
	err = fmt.Errorf("%s: %w", b.label(), err)
	if b.strict {
		return err
	}
	panic(err)
}

func (b *Broadcaster[T]) label() string {
	switch {
	case b.name != "":
		return "broadcaster " + b.name
	case b.id != "":
		return "broadcaster " + b.id
	default:
		return "broadcaster"
	}
}

// mint derives the handle for a new registration. In keep-order mode the
// internal counter supplies the priority and the hint is discarded.
func (b *Broadcaster[T]) mint(hint Priority, kind Kind, identity uint64) Handle {
	priority := hint
	if b.keepOrder {
		priority = b.counter
		b.counter++
	}
	return NewHandle(priority, kind, identity)
}

func (b *Broadcaster[T]) insert(h Handle, c *call[T]) (Handle, error) {
	bucket, ok := b.buckets[h.Priority()]
	if ok {
		if _, dup := bucket.Get(h); dup {
			return Handle{}, b.violation(fmt.Errorf("%s: %w", h, ErrDuplicate))
		}
	} else {
		bucket = orderedmap.New[Handle, *call[T]]()
		b.buckets[h.Priority()] = bucket
		at, _ := slices.BinarySearch(b.prios, h.Priority())
		b.prios = slices.Insert(b.prios, at, h.Priority())
	}
	bucket.Set(h, c)
	return h, nil
}

func (b *Broadcaster[T]) dropBucket(p Priority) {
	delete(b.buckets, p)
	if at, found := slices.BinarySearch(b.prios, p); found {
		b.prios = slices.Delete(b.prios, at, at+1)
	}
}
