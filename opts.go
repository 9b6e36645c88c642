package beacon

import (
	"github.com/fogfish/opts"
)

// settings collects the construction-time knobs of a broadcaster. They
// are fixed for the broadcaster's lifetime once Bind has run.
type settings struct {
	name      string
	strict    bool
	keepOrder bool
}

// Option configures a broadcaster at construction or bind time.
type Option = opts.Option[settings]

// WithName assigns a human-readable name used in error messages, log
// attributes and the package-level registry. Unnamed broadcasters fall
// back to their generated id.
var WithName = opts.ForName[settings, string]("name")

// Strict switches contract-violation reporting from panics to
// distinguished error results. Use it where the broadcaster is embedded
// in code that must not crash.
var Strict = opts.ForName[settings, bool]("strict")

// KeepOrder puts the broadcaster in insertion-order mode: priority hints
// are ignored and callbacks fire exactly in the order they were hooked.
var KeepOrder = opts.ForName[settings, bool]("keepOrder")
