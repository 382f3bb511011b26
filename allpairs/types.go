package allpairs

import "errors"

// Sentinel errors returned by the resolver.
var (
	// ErrNilNetwork indicates that a nil *network.Network was passed to Resolve.
	ErrNilNetwork = errors.New("allpairs: network is nil")

	// ErrUnreachablePair indicates that some ordered station pair has no
	// path. The network proves strong connectivity up front, so this is a
	// defensive double-check: hitting it means a prior stage violated an
	// invariant, not that the input was bad.
	ErrUnreachablePair = errors.New("allpairs: unreachable station pair")

	// ErrBadWorkers indicates a non-positive worker count passed to WithWorkers.
	ErrBadWorkers = errors.New("allpairs: worker count must be positive")

	// ErrUnknownStation indicates a Matrix lookup with an ID the resolver
	// has never seen.
	ErrUnknownStation = errors.New("allpairs: unknown station")
)

// Options configures a Resolve run.
//
// Workers - number of goroutines running per-source computations.
// 1 (the default) keeps the resolver fully sequential.
type Options struct {
	Workers int
}

// Option is a functional option for Resolve.
type Option func(*Options)

// WithWorkers distributes the per-source shortest-path runs across n
// goroutines. The result is deterministic regardless of n.
// Panics on n < 1 to surface misconfiguration at the call site.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(ErrBadWorkers.Error())
		}
		o.Workers = n
	}
}

// defaultOptions returns the sequential default configuration.
func defaultOptions() Options {
	return Options{Workers: 1}
}
