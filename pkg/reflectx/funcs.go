package reflectx

import (
	"encoding/binary"
	"hash/fnv"
	"reflect"
	"regexp"
	"runtime"
	"strings"
)

// IsFunction reports whether the provided value is a function.
func IsFunction(fn any) bool {
	if fn == nil {
		return false
	}

	return reflect.TypeOf(fn).Kind() == reflect.Func
}

// FunctionName returns the fully qualified runtime symbol name of the
// provided function, e.g. "github.com/casualjim/beacon.ExampleHook.func1"
// for a closure or "github.com/casualjim/beacon/pkg/reflectx.IsFunction"
// for a declared function. It returns "" when fn is not a function.
//
// For method values and method expressions the name includes the receiver
// type, so two methods with the same name on different types never share
// a symbol name.
func FunctionName(fn any) string {
	if !IsFunction(fn) {
		return ""
	}

	val := reflect.ValueOf(fn)
	rf := runtime.FuncForPC(val.Pointer())
	if rf == nil {
		return val.Type().String()
	}
	return strings.TrimSuffix(rf.Name(), "-fm")
}

// anonymousRegex matches the suffix the Go runtime appends to function
// literals: ".func1", ".func2.1" and so on, optionally followed by "-fm"
// for method values the compiler wraps in a closure.
var anonymousRegex = regexp.MustCompile(`\.func\d+(\.\d+)*(-fm)?$`)

// IsAnonymous reports whether fn is a function literal (a closure) rather
// than a declared function. The distinction is made from the runtime
// symbol name, which is stable across runs of the same binary.
func IsAnonymous(fn any) bool {
	if !IsFunction(fn) {
		return false
	}

	rf := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if rf == nil {
		return false
	}
	return anonymousRegex.MatchString(rf.Name())
}

// Fingerprint returns a stable 64-bit token identifying the body of the
// provided function. The token is an FNV-1a hash of the fully qualified
// runtime symbol name, so it survives ASLR and stays identical for every
// run of the same build.
//
// The scheme is deliberately lossy: two closures produced by the same
// function literal share a symbol name and therefore a fingerprint, and
// hash collisions between unrelated functions are theoretically possible.
//
// Returns 0 when fn is not a function.
func Fingerprint(fn any) uint64 {
	if !IsFunction(fn) {
		return 0
	}

	return hashString(FunctionName(fn))
}

// ValueFingerprint returns a 64-bit token identifying an arbitrary value,
// used for owner instances and pre-erased callables. Pointer-shaped values
// (pointers, maps, channels, functions, unsafe pointers) hash their
// address; everything else falls back to hashing the dynamic type name,
// which makes all values of one non-pointer type indistinguishable.
//
// Returns 0 for nil.
func ValueFingerprint(v any) uint64 {
	if v == nil {
		return 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(rv.Pointer()))
		return hashBytes(buf[:])
	default:
		return hashString(rv.Type().String())
	}
}

func hashString(s string) uint64 {
	return hashBytes([]byte(s))
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	sum := h.Sum64()
	if sum == 0 {
		// 0 is reserved for "no identity"
		return 1
	}
	return sum
}
