// Package allpairs_test verifies shortest-path correctness, deterministic
// tie-breaking, and worker-count independence of the resolver.
package allpairs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitour/transitour/allpairs"
	"github.com/transitour/transitour/network"
)

// buildNet constructs a validated network or fails the test.
func buildNet(t *testing.T, stations []network.Station, edges []network.Edge) *network.Network {
	t.Helper()
	n, err := network.New(stations, edges)
	require.NoError(t, err)

	return n
}

func stationList(ids ...string) []network.Station {
	out := make([]network.Station, len(ids))
	for i, id := range ids {
		out[i] = network.Station{ID: id, Name: id}
	}

	return out
}

func ride(from, to string, w int64) network.Edge {
	return network.Edge{From: from, To: to, Weight: w, Line: "1", Kind: network.Ride}
}

func both(edges *[]network.Edge, from, to string, w int64) {
	*edges = append(*edges, ride(from, to, w), ride(to, from, w))
}

// starNet is hub H with leaves L1..L5, each spoke weight 1, both directions.
func starNet(t *testing.T) *network.Network {
	t.Helper()
	ids := []string{"H", "L1", "L2", "L3", "L4", "L5"}
	var edges []network.Edge
	for _, leaf := range ids[1:] {
		both(&edges, "H", leaf, 1)
	}

	return buildNet(t, stationList(ids...), edges)
}

// ------------------------------------------------------------------------
// 1. Core shortest-path properties.
// ------------------------------------------------------------------------

func TestResolve_DiagonalIsZero(t *testing.T) {
	m, err := allpairs.Resolve(starNet(t))
	require.NoError(t, err)

	for i := 0; i < m.Size(); i++ {
		require.Zero(t, m.At(i, i), "diagonal entry %d", i)
		require.Empty(t, m.PathAt(i, i), "diagonal path %d", i)
	}
}

func TestResolve_TriangleInequality(t *testing.T) {
	var edges []network.Edge
	both(&edges, "A", "B", 3)
	both(&edges, "B", "C", 4)
	both(&edges, "A", "C", 10) // direct is worse than A-B-C
	both(&edges, "C", "D", 2)
	m, err := allpairs.Resolve(buildNet(t, stationList("A", "B", "C", "D"), edges))
	require.NoError(t, err)

	n := m.Size()
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				require.LessOrEqual(t, m.At(a, c), m.At(a, b)+m.At(b, c),
					"dist(%d,%d) > dist(%d,%d)+dist(%d,%d)", a, c, a, b, b, c)
			}
		}
	}

	// The expensive direct edge must have been routed around.
	ai, _ := m.Index("A")
	ci, _ := m.Index("C")
	require.EqualValues(t, 7, m.At(ai, ci))
}

func TestResolve_PathWeightsSumToDistance(t *testing.T) {
	m, err := allpairs.Resolve(starNet(t))
	require.NoError(t, err)

	n := m.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum int64
			for _, e := range m.PathAt(i, j) {
				sum += e.Weight
			}
			require.Equal(t, m.At(i, j), sum, "path %s→%s", m.ID(i), m.ID(j))
		}
	}
}

func TestResolve_LeafToLeafRoutesThroughHub(t *testing.T) {
	m, err := allpairs.Resolve(starNet(t))
	require.NoError(t, err)

	d, err := m.Dist("L1", "L2")
	require.NoError(t, err)
	require.EqualValues(t, 2, d)

	path, err := m.Path("L1", "L2")
	require.NoError(t, err)
	require.Len(t, path, 2)
	require.Equal(t, "H", path[0].To)
	require.Equal(t, "H", path[1].From)
}

// ------------------------------------------------------------------------
// 2. Deterministic tie-breaking.
// ------------------------------------------------------------------------

func TestResolve_TiePrefersFewerEdges(t *testing.T) {
	// A→D directly in 4, or A→B→D in 2+2. Same total: keep the 1-edge path.
	var edges []network.Edge
	both(&edges, "A", "D", 4)
	both(&edges, "A", "B", 2)
	both(&edges, "B", "D", 2)
	m, err := allpairs.Resolve(buildNet(t, stationList("A", "B", "D"), edges))
	require.NoError(t, err)

	path, err := m.Path("A", "D")
	require.NoError(t, err)
	require.Len(t, path, 1)
}

func TestResolve_TiePrefersSmallerIntermediate(t *testing.T) {
	// Two 2-edge paths of equal cost: A→B→Z and A→C→Z. B < C must win.
	var edges []network.Edge
	both(&edges, "A", "B", 2)
	both(&edges, "B", "Z", 2)
	both(&edges, "A", "C", 2)
	both(&edges, "C", "Z", 2)
	m, err := allpairs.Resolve(buildNet(t, stationList("A", "B", "C", "Z"), edges))
	require.NoError(t, err)

	path, err := m.Path("A", "Z")
	require.NoError(t, err)
	require.Len(t, path, 2)
	require.Equal(t, "B", path[0].To)
}

func TestResolve_TiePrefersLexSmallestSequence(t *testing.T) {
	// Two disjoint 3-edge paths of equal cost: A→B→X2→D and A→C→X1→D.
	// The full visited sequence decides, not the final hop: B < C, so
	// the route through B and X2 must win even though its last
	// intermediate X2 sorts after X1.
	var edges []network.Edge
	both(&edges, "A", "B", 1)
	both(&edges, "B", "X2", 1)
	both(&edges, "X2", "D", 1)
	both(&edges, "A", "C", 1)
	both(&edges, "C", "X1", 1)
	both(&edges, "X1", "D", 1)
	m, err := allpairs.Resolve(buildNet(t, stationList("A", "B", "C", "D", "X1", "X2"), edges))
	require.NoError(t, err)

	path, err := m.Path("A", "D")
	require.NoError(t, err)
	require.Len(t, path, 3)
	require.Equal(t, "B", path[0].To)
	require.Equal(t, "X2", path[1].To)
	require.Equal(t, "D", path[2].To)

	// The reverse pair diverges at the first hop: X1 < X2 wins there.
	back, err := m.Path("D", "A")
	require.NoError(t, err)
	require.Len(t, back, 3)
	require.Equal(t, "X1", back[0].To)
	require.Equal(t, "C", back[1].To)
}

func TestResolve_TiePrefersSmallerLineTag(t *testing.T) {
	// Two parallel equal-weight edges on lines "1" and "2": line "1" wins.
	edges := []network.Edge{
		{From: "A", To: "B", Weight: 5, Line: "2", Kind: network.Ride},
		{From: "A", To: "B", Weight: 5, Line: "1", Kind: network.Ride},
		{From: "B", To: "A", Weight: 5, Line: "1", Kind: network.Ride},
	}
	m, err := allpairs.Resolve(buildNet(t, stationList("A", "B"), edges))
	require.NoError(t, err)

	path, err := m.Path("A", "B")
	require.NoError(t, err)
	require.Len(t, path, 1)
	require.Equal(t, "1", path[0].Line)
}

// ------------------------------------------------------------------------
// 3. Parallel execution: identical output for any worker count.
// ------------------------------------------------------------------------

func TestResolve_WorkerCountIndependent(t *testing.T) {
	var edges []network.Edge
	both(&edges, "A", "B", 3)
	both(&edges, "B", "C", 1)
	both(&edges, "C", "D", 4)
	both(&edges, "D", "A", 2)
	both(&edges, "B", "D", 5)
	net := buildNet(t, stationList("A", "B", "C", "D"), edges)

	seq, err := allpairs.Resolve(net)
	require.NoError(t, err)
	par, err := allpairs.Resolve(net, allpairs.WithWorkers(4))
	require.NoError(t, err)

	n := seq.Size()
	require.Equal(t, n, par.Size())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.Equal(t, seq.At(i, j), par.At(i, j))
			require.Equal(t, seq.PathAt(i, j), par.PathAt(i, j))
		}
	}
}

// ------------------------------------------------------------------------
// 4. Input validation.
// ------------------------------------------------------------------------

func TestResolve_NilNetwork(t *testing.T) {
	_, err := allpairs.Resolve(nil)
	require.ErrorIs(t, err, allpairs.ErrNilNetwork)
}

func TestWithWorkers_PanicsOnZero(t *testing.T) {
	require.Panics(t, func() { allpairs.Resolve(starNet(t), allpairs.WithWorkers(0)) })
}

func TestResolve_AsymmetricWeights(t *testing.T) {
	// Uphill costs more than downhill; the matrix must keep both directions.
	edges := []network.Edge{
		ride("A", "B", 10), ride("B", "A", 2),
		ride("B", "C", 1), ride("C", "B", 1),
		ride("C", "A", 1), ride("A", "C", 1),
	}
	m, err := allpairs.Resolve(buildNet(t, stationList("A", "B", "C"), edges))
	require.NoError(t, err)

	ab, _ := m.Dist("A", "B")
	ba, _ := m.Dist("B", "A")
	require.EqualValues(t, 2, ab) // A→C→B beats the direct 10
	require.EqualValues(t, 2, ba)
}
