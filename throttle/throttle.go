// Package throttle provides rate limiters for outbound API calls. Each
// provider gets its own Throttler instance, so contention is scoped per
// provider.
package throttle

// Throttler blocks the caller until a request may legally proceed. Acquire
// always eventually returns; there is no failure mode. Implementations are
// safe for concurrent use.
type Throttler interface {
	Acquire()
}
