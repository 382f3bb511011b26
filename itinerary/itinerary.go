// Package itinerary expands an abstract tour into the real, rideable
// walk: every virtual hop between consecutive tour stations is replaced
// by the concrete shortest path stored in the path table, with
// cumulative time offsets carried forward.
//
// Expansion is deterministic and side-effect free. It can only fail on
// an integrity violation — a missing or discontinuous stored path —
// which always indicates a bug in a prior stage, never bad user input.
package itinerary

import (
	"errors"
	"fmt"

	"github.com/transitour/transitour/allpairs"
	"github.com/transitour/transitour/network"
	"github.com/transitour/transitour/tour"
)

// ErrExpansionIntegrity indicates a path-table lookup that is missing or
// inconsistent with its tour hop. This is an invariant violation in a
// prior stage and is surfaced fatally, never recovered.
var ErrExpansionIntegrity = errors.New("itinerary: path table integrity violation")

// Stop is one visited station with its cumulative time offset in
// seconds from departure. Stations revisited in passing (e.g. a hub
// crossed on the way between two leaves) appear once per traversal.
type Stop struct {
	StationID string
	Offset    int64
}

// Leg is one real edge traversed, with cumulative depart/arrive offsets.
type Leg struct {
	Edge    network.Edge
	Depart  int64
	Arrive  int64
}

// Itinerary is the final, read-only expansion of a tour.
type Itinerary struct {
	// Stops lists every station touched, in order, starting at offset 0.
	Stops []Stop

	// Legs lists every real edge traversed, in order.
	Legs []Leg

	// Total is the final cumulative time. It equals the tour's cost
	// under the distance matrix.
	Total int64
}

// Expand substitutes each virtual hop of t with its stored real path.
// For closed tours the wrap-around hop back to the first station is
// expanded as well, so the walk physically returns to its start.
//
// Complexity: O(total real edges) time and space.
func Expand(m *allpairs.Matrix, t tour.Tour) (Itinerary, error) {
	if err := tour.Validate(m, t); err != nil {
		return Itinerary{}, err
	}

	it := Itinerary{
		Stops: []Stop{{StationID: m.ID(t.Seq[0]), Offset: 0}},
	}

	hops := len(t.Seq) - 1
	if t.Closed && len(t.Seq) > 1 {
		hops++
	}
	var clock int64
	for h := 0; h < hops; h++ {
		from := t.Seq[h]
		to := t.Seq[(h+1)%len(t.Seq)]
		path := m.PathAt(from, to)
		if len(path) == 0 {
			return Itinerary{}, fmt.Errorf("%w: no stored path %s→%s",
				ErrExpansionIntegrity, m.ID(from), m.ID(to))
		}
		at := m.ID(from)
		for _, e := range path {
			// Each stored edge must continue exactly where the walk stands.
			if e.From != at {
				return Itinerary{}, fmt.Errorf("%w: path %s→%s jumps %s→%s",
					ErrExpansionIntegrity, m.ID(from), m.ID(to), at, e.From)
			}
			leg := Leg{Edge: e, Depart: clock, Arrive: clock + e.Weight}
			clock = leg.Arrive
			it.Legs = append(it.Legs, leg)
			it.Stops = append(it.Stops, Stop{StationID: e.To, Offset: clock})
			at = e.To
		}
		if at != m.ID(to) {
			return Itinerary{}, fmt.Errorf("%w: path %s→%s ends at %s",
				ErrExpansionIntegrity, m.ID(from), m.ID(to), at)
		}
	}
	it.Total = clock

	return it, nil
}
