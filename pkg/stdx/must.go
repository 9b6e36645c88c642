package stdx

// Must0 panics if the provided error is not nil. It is intended for
// call sites where an error indicates a programming mistake rather than
// a runtime condition.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns the provided value, panicking if the accompanying error
// is not nil.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Must2 returns the two provided values, panicking if the accompanying
// error is not nil.
func Must2[T any, V any](t T, v V, err error) (T, V) {
	if err != nil {
		panic(err)
	}
	return t, v
}
