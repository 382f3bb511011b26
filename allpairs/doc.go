// Package allpairs reduces a sparse transit network to the dense
// "virtual complete graph" required by tour optimization: for every
// ordered station pair it computes the minimum travel time and the
// concrete edge sequence achieving it.
//
// The resolver runs one priority-queue Dijkstra per source station,
// which is O(S·(E log S)) — preferred over a dense O(S³) matrix
// algorithm because each station connects to only a handful of
// neighbors. Each run carries the canonical best path to every settled
// station, so the per-pair paths need no separate reconstruction.
//
// Ties in shortest time (equal total weight via different lines or
// routes) are broken deterministically: prefer the path with fewer
// edges, then the lexicographically smallest sequence of visited
// station IDs, then the smaller line tags between parallel edges.
// Identical input therefore always produces an identical Matrix, which
// the test suite relies on.
//
// Per-source runs share no mutable state, so they may be spread across
// a worker pool (WithWorkers); results are merged after all workers
// finish, behind a single barrier. The output is identical for any
// worker count.
//
// Errors:
//
//	ErrNilNetwork      - Resolve was called with a nil network.
//	ErrUnreachablePair - a pair had no path despite the network's
//	                     connectivity proof; always a logic bug in a
//	                     prior stage, never a user error.
package allpairs
