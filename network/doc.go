// Package network defines the immutable transit graph consumed by the
// route-optimization pipeline: stations (nodes) and directed, weighted
// connections between them (ride and transfer edges).
//
// A Network is constructed once via New, which validates the raw input
// (unique station IDs, known endpoints, non-negative weights) and proves
// strong connectivity before any optimization stage may run. After New
// returns, the Network never mutates; every accessor is safe for
// concurrent use without locking.
//
// Determinism contract:
//
//   - Stations() and IDs() return stations in ascending ID order.
//   - Outgoing(id) returns edges ordered by weight ascending, then
//     destination ID, then line tag, so downstream tie-breaking is
//     reproducible for identical input.
//
// Parallel edges between the same station pair (different lines) are all
// retained: only the cheapest matters for shortest-path weights, but the
// concrete line used must survive into the final itinerary.
//
// Errors:
//
//	ErrNoStations       - the input contains no stations.
//	ErrEmptyStationID   - a station has an empty ID.
//	ErrDuplicateStation - two stations share the same ID.
//	ErrUnknownStation   - an edge references a station that was not supplied.
//	ErrNegativeWeight   - an edge carries a negative time weight.
//	ErrDisconnected     - the graph is not strongly connected; the error
//	                      text names the separated components.
package network
