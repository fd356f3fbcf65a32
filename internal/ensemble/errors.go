package ensemble

import "errors"

// Construction errors. These indicate misconfiguration, never a runtime
// condition: a running engine represents every degraded state as Result data.
var (
	ErrNoAdapters     = errors.New("no classifier adapters configured")
	ErrInvalidAdapter = errors.New("invalid classifier adapter")
)
