package beacon

import (
	"log/slog"

	json "github.com/goccy/go-json"
)

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Logged returns a callback that logs every payload it receives through
// slog, tagged with the given label. Hook it alongside real observers to
// trace what a broadcaster delivers:
//
//	h := stdx.Must1(b.Hook(beacon.Logged[int]("metrics"), 0))
//
// All Logged callbacks for one payload type share a fingerprint, so only
// one can be hooked per priority bucket.
func Logged[T any](label string) func(T) {
	return func(v T) {
		slog.Info("event delivered", slog.String("callback", label), slog.String("payload", mustJSON(v)))
	}
}
