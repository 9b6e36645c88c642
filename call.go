package beacon

// Callable is the pre-erased callback shape: any value carrying a Call
// method with the broadcaster's payload type. It is the moral equivalent
// of registering an already wrapped function object.
type Callable[T any] interface {
	Call(v T)
}

// call binds a handle to a type-erased invocable. For method
// registrations it also carries a mutable, non-owning reference to the
// owning instance so CopyFrom can retarget it. Two calls are considered
// the same registration iff their handles are equal; captured state never
// participates in comparison, which is why calls are stored keyed by
// handle.
type call[T any] struct {
	handle Handle
	owner  any
	invoke func(owner any, v T)
}

func newFuncCall[T any](h Handle, fn func(T)) *call[T] {
	return &call[T]{
		handle: h,
		invoke: func(_ any, v T) { fn(v) },
	}
}

func newCallableCall[T any](h Handle, c Callable[T]) *call[T] {
	return &call[T]{
		handle: h,
		invoke: func(_ any, v T) { c.Call(v) },
	}
}

func newMethodCall[T any, O comparable](h Handle, owner O, method func(O, T)) *call[T] {
	return &call[T]{
		handle: h,
		owner:  owner,
		invoke: func(o any, v T) { method(o.(O), v) },
	}
}

func (c *call[T]) do(v T) {
	c.invoke(c.owner, v)
}

func (c *call[T]) clone() *call[T] {
	cp := *c
	return &cp
}
