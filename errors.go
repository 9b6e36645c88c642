package beacon

import "errors"

// Contract violations. In the default mode these are raised as panics the
// moment they happen; with Strict(true) the offending operation returns
// the sentinel wrapped with the broadcaster's label instead, so embedding
// code can branch on them with errors.Is.
var (
	// ErrNotBound is reported when any operation runs before Bind (or
	// construction through New) established the broadcaster's owner.
	ErrNotBound = errors.New("broadcaster has not been bound")

	// ErrRebound is reported when Bind is called on an already bound
	// broadcaster. Binding is a one-way transition.
	ErrRebound = errors.New("broadcaster is already bound")

	// ErrNilCallback is reported when a hook is attempted with a nil
	// function, callable or method.
	ErrNilCallback = errors.New("callback is required")

	// ErrNilOwner is reported when a method hook or UnhookOwner is
	// attempted with a zero owner.
	ErrNilOwner = errors.New("owner is required")

	// ErrDuplicate is reported when a callback with an identical
	// (priority, kind, identity) triple is already hooked.
	ErrDuplicate = errors.New("duplicate callback at this priority")

	// ErrInvalidHandle is reported when Unhook is given a handle that
	// does not pass its validity check.
	ErrInvalidHandle = errors.New("handle is not valid")

	// ErrUnknownHandle is reported when Unhook finds no registration
	// matching the handle. Unhooking twice is a contract violation, not
	// a no-op.
	ErrUnknownHandle = errors.New("no callback matches the handle")

	// ErrOwnerNotHooked is reported when UnhookOwner finds no method
	// callbacks belonging to the given owner.
	ErrOwnerNotHooked = errors.New("owner has no method callbacks hooked")

	// ErrNilSource is reported when CopyFrom is given a nil source.
	ErrNilSource = errors.New("source broadcaster is required")

	// ErrDispatching is reported when the call list is touched from
	// inside an active Invoke. Mutation during dispatch is unsupported;
	// it is detected and refused rather than silently corrupting the
	// iteration.
	ErrDispatching = errors.New("broadcaster is dispatching")

	// ErrOwnerGone is reported by Invoke when the bound owner implements
	// Liveness and reports that it is no longer alive.
	ErrOwnerGone = errors.New("bound owner is no longer alive")
)
