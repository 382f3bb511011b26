package allpairs

import (
	"fmt"

	"github.com/transitour/transitour/network"
)

// Matrix is the immutable all-pairs result: minimum travel times and the
// concrete shortest paths for every ordered station pair. Row/column
// order is the network's canonical ascending-ID order.
//
// A Matrix is safe for concurrent reads; it is never mutated after Resolve.
type Matrix struct {
	ids   []string
	index map[string]int
	n     int
	dist  []int64          // n×n travel times, row-major
	paths [][]network.Edge // n×n edge sequences, row-major
}

// Size returns the station count n (the matrix is n×n).
func (m *Matrix) Size() int { return m.n }

// IDs returns the station IDs in canonical (ascending) order.
// The returned slice is shared and must not be modified.
func (m *Matrix) IDs() []string { return m.ids }

// ID returns the station ID at canonical index i.
func (m *Matrix) ID(i int) string { return m.ids[i] }

// Index returns the canonical index of a station ID.
func (m *Matrix) Index(id string) (int, bool) {
	i, ok := m.index[id]

	return i, ok
}

// At returns the minimum travel time from canonical index i to j.
// Diagonal entries are zero. Panics on out-of-range indices, as would
// any dense matrix accessor.
func (m *Matrix) At(i, j int) int64 { return m.dist[i*m.n+j] }

// PathAt returns the edge sequence realizing At(i, j). The diagonal path
// is empty. The returned slice is shared and must not be modified.
func (m *Matrix) PathAt(i, j int) []network.Edge { return m.paths[i*m.n+j] }

// Dist is the ID-keyed convenience form of At.
func (m *Matrix) Dist(from, to string) (int64, error) {
	i, ok := m.index[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStation, from)
	}
	j, ok := m.index[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStation, to)
	}

	return m.At(i, j), nil
}

// Path is the ID-keyed convenience form of PathAt.
func (m *Matrix) Path(from, to string) ([]network.Edge, error) {
	i, ok := m.index[from]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStation, from)
	}
	j, ok := m.index[to]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStation, to)
	}

	return m.PathAt(i, j), nil
}
