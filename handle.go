package beacon

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Priority orders callback buckets within a broadcaster. Lower values
// dispatch earlier. In keep-order mode priorities are minted from an
// internal counter and any caller-supplied hint is ignored.
type Priority int16

// Kind tags how a callback was hooked to a broadcaster.
type Kind uint8

const (
	// KindInvalid marks a handle that identifies nothing.
	KindInvalid Kind = iota
	// KindFunc marks a declared function.
	KindFunc
	// KindClosure marks a function literal.
	KindClosure
	// KindCallable marks a pre-erased Callable value.
	KindCallable
	// KindMethod marks a (owner, method) pair.
	KindMethod
)

var kindNames = map[Kind]string{
	KindInvalid:  "invalid",
	KindFunc:     "func",
	KindClosure:  "closure",
	KindCallable: "callable",
	KindMethod:   "method",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func kindFromString(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// Handle identifies one registered callback by its (priority, kind,
// identity) triple. It is a plain comparable value: copying it never
// duplicates or shares the callback it refers to, and it is never
// invalidated by the broadcaster. The only thing a Handle is good for is
// removing the registration it was returned by.
type Handle struct {
	priority Priority
	kind     Kind
	identity uint64
}

// NewHandle builds a handle from its three components. Most callers never
// need this; Hook returns the handle for a registration. It exists for
// tests and for reconstructing handles from their serialized form.
func NewHandle(priority Priority, kind Kind, identity uint64) Handle {
	return Handle{priority: priority, kind: kind, identity: identity}
}

// Priority returns the effective priority the callback was registered at.
func (h Handle) Priority() Priority {
	return h.priority
}

// Kind returns the shape the callback was hooked as.
func (h Handle) Kind() Kind {
	return h.kind
}

// Identity returns the numeric fingerprint of the underlying callable.
// For method registrations this is the owner fingerprint combined with
// the method fingerprint via XOR, a documented lossy scheme.
func (h Handle) Identity() uint64 {
	return h.identity
}

// Valid reports whether the handle identifies a registration: the kind
// must be set and the identity non-zero.
func (h Handle) Valid() bool {
	return h.kind != KindInvalid && h.identity != 0
}

// Reset returns the handle to its zero, invalid state.
func (h *Handle) Reset() {
	h.priority = 0
	h.kind = KindInvalid
	h.identity = 0
}

// Less orders handles lexicographically by (priority, kind, identity).
func (h Handle) Less(other Handle) bool {
	if h.priority != other.priority {
		return h.priority < other.priority
	}
	if h.kind != other.kind {
		return h.kind < other.kind
	}
	return h.identity < other.identity
}

func (h Handle) String() string {
	return fmt.Sprintf("handle(priority=%d kind=%s identity=%#x)", h.priority, h.kind, h.identity)
}

var handleJSON = []byte(`{"type":"handle"}`)

// MarshalJSON implements custom JSON marshaling for Handle. The encoding
// is a diagnostic surface: it round-trips the triple faithfully but can
// never be rehydrated into a live callback. Identity is encoded as a
// decimal string because uint64 does not survive JSON number precision.
func (h Handle) MarshalJSON() ([]byte, error) {
	result := handleJSON

	var err error
	result, err = sjson.SetBytes(result, "priority", int(h.priority))
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "kind", h.kind.String())
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "identity", strconv.FormatUint(h.identity, 10))
	return result, err
}

// UnmarshalJSON implements custom JSON unmarshaling for Handle.
func (h *Handle) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	msgType := gjson.GetBytes(data, "type")
	if !msgType.Exists() || msgType.String() != "handle" {
		return fmt.Errorf("missing or invalid type, expected 'handle'")
	}

	priority := gjson.GetBytes(data, "priority")
	if !priority.Exists() {
		return fmt.Errorf("missing required field 'priority'")
	}
	p := priority.Int()
	if p < -32768 || p > 32767 {
		return fmt.Errorf("priority %d out of range", p)
	}

	kind := gjson.GetBytes(data, "kind")
	if !kind.Exists() {
		return fmt.Errorf("missing required field 'kind'")
	}
	k, ok := kindFromString(kind.String())
	if !ok {
		return fmt.Errorf("unknown kind %q", kind.String())
	}

	identity := gjson.GetBytes(data, "identity")
	if !identity.Exists() {
		return fmt.Errorf("missing required field 'identity'")
	}
	id, err := strconv.ParseUint(identity.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid identity: %w", err)
	}

	h.priority = Priority(p)
	h.kind = k
	h.identity = id
	return nil
}
