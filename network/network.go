package network

import (
	"fmt"
	"sort"
)

// Network is the validated, immutable transit graph. Construct it with New;
// after that every method is read-only and safe for concurrent use.
type Network struct {
	stations map[string]Station // station ID → station
	ids      []string           // station IDs in ascending order
	edges    []Edge             // all edges, deterministic order
	outgoing map[string][]Edge  // station ID → outgoing edges, sorted
}

// New validates the raw station and edge sets and builds a Network.
//
// Validation, in order:
//  1. At least one station (ErrNoStations); IDs non-empty (ErrEmptyStationID)
//     and unique (ErrDuplicateStation).
//  2. Every edge endpoint names a known station (ErrUnknownStation).
//  3. Every edge weight is non-negative (ErrNegativeWeight).
//  4. The directed graph is strongly connected (ErrDisconnected naming the
//     separated components).
//
// The inputs are copied; the caller may reuse its slices afterwards.
//
// Complexity: O(S log S + E log E) for sorting plus O(S + E) for the
// connectivity proof.
func New(stations []Station, edges []Edge) (*Network, error) {
	// 1) Station identity checks.
	if len(stations) == 0 {
		return nil, ErrNoStations
	}
	byID := make(map[string]Station, len(stations))
	ids := make([]string, 0, len(stations))
	for _, s := range stations {
		if s.ID == "" {
			return nil, ErrEmptyStationID
		}
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStation, s.ID)
		}
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)

	// 2+3) Edge endpoint and weight checks.
	for _, e := range edges {
		if _, ok := byID[e.From]; !ok {
			return nil, fmt.Errorf("%w: edge origin %q", ErrUnknownStation, e.From)
		}
		if _, ok := byID[e.To]; !ok {
			return nil, fmt.Errorf("%w: edge destination %q", ErrUnknownStation, e.To)
		}
		if e.Weight < 0 {
			return nil, fmt.Errorf("%w: %s→%s weight=%d", ErrNegativeWeight, e.From, e.To, e.Weight)
		}
	}

	// Build deterministic adjacency: outgoing edges sorted by weight, then
	// destination, then line, so that equal-cost alternatives are always
	// examined in the same order downstream.
	out := make(map[string][]Edge, len(stations))
	all := make([]Edge, len(edges))
	copy(all, edges)
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Weight != b.Weight {
			return a.Weight < b.Weight
		}
		if a.To != b.To {
			return a.To < b.To
		}

		return a.Line < b.Line
	})
	for _, e := range all {
		out[e.From] = append(out[e.From], e)
	}

	n := &Network{
		stations: byID,
		ids:      ids,
		edges:    all,
		outgoing: out,
	}

	// 4) Strong-connectivity proof. Disconnected input is a hard error:
	// a visit-all tour cannot exist if some ordered pair has no path.
	if comps := stronglyConnectedComponents(n); len(comps) > 1 {
		return nil, fmt.Errorf("%w: components %s", ErrDisconnected, formatComponents(comps))
	}

	return n, nil
}

// StationCount returns the number of stations.
func (n *Network) StationCount() int { return len(n.ids) }

// IDs returns all station IDs in ascending order.
// The returned slice is shared and must not be modified.
func (n *Network) IDs() []string { return n.ids }

// Station returns the station with the given ID.
func (n *Network) Station(id string) (Station, bool) {
	s, ok := n.stations[id]

	return s, ok
}

// Stations returns all stations in ascending ID order.
//
// Complexity: O(S) per call (fresh slice).
func (n *Network) Stations() []Station {
	out := make([]Station, len(n.ids))
	for i, id := range n.ids {
		out[i] = n.stations[id]
	}

	return out
}

// Outgoing returns the edges leaving the given station, ordered by weight
// ascending, then destination ID, then line tag. The returned slice is
// shared and must not be modified.
func (n *Network) Outgoing(id string) []Edge { return n.outgoing[id] }

// Edges returns every edge in deterministic order (origin, weight,
// destination, line). The returned slice is shared and must not be modified.
func (n *Network) Edges() []Edge { return n.edges }
