// Package itinerary_test verifies that tour expansion yields a
// physically continuous walk whose cumulative time matches the tour's
// virtual-edge cost.
package itinerary_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitour/transitour/allpairs"
	"github.com/transitour/transitour/itinerary"
	"github.com/transitour/transitour/network"
	"github.com/transitour/transitour/tour"
)

func stationList(ids ...string) []network.Station {
	out := make([]network.Station, len(ids))
	for i, id := range ids {
		out[i] = network.Station{ID: id, Name: id}
	}

	return out
}

func both(edges *[]network.Edge, from, to string, w int64) {
	*edges = append(*edges,
		network.Edge{From: from, To: to, Weight: w, Line: "1", Kind: network.Ride},
		network.Edge{From: to, To: from, Weight: w, Line: "1", Kind: network.Ride})
}

func starMatrix(t *testing.T) *allpairs.Matrix {
	t.Helper()
	ids := []string{"H", "L1", "L2", "L3", "L4", "L5"}
	var edges []network.Edge
	for _, leaf := range ids[1:] {
		both(&edges, "H", leaf, 1)
	}
	net, err := network.New(stationList(ids...), edges)
	require.NoError(t, err)
	m, err := allpairs.Resolve(net)
	require.NoError(t, err)

	return m
}

func TestExpand_TotalMatchesTourCost(t *testing.T) {
	m := starMatrix(t)
	tr, err := tour.Construct(m)
	require.NoError(t, err)
	res, err := tour.Improve(m, tr)
	require.NoError(t, err)

	it, err := itinerary.Expand(m, res.Tour)
	require.NoError(t, err)
	require.Equal(t, res.Cost, it.Total)
}

func TestExpand_HubDetoursAreExplicit(t *testing.T) {
	m := starMatrix(t)
	res, err := tour.Improve(m, mustConstruct(t, m))
	require.NoError(t, err)

	it, err := itinerary.Expand(m, res.Tour)
	require.NoError(t, err)

	// Every leaf-to-leaf virtual hop physically passes back through the
	// hub, so H appears repeatedly in the expanded walk.
	hubVisits := 0
	for _, s := range it.Stops {
		if s.StationID == "H" {
			hubVisits++
		}
	}
	require.GreaterOrEqual(t, hubVisits, 5, "expected repeated hub crossings, got stops %v", it.Stops)

	// The walk is continuous: each leg departs where the previous arrived.
	for i := 1; i < len(it.Legs); i++ {
		require.Equal(t, it.Legs[i-1].Edge.To, it.Legs[i].Edge.From)
		require.Equal(t, it.Legs[i-1].Arrive, it.Legs[i].Depart)
	}
}

func TestExpand_ClosedTourReturnsToStart(t *testing.T) {
	m := starMatrix(t)
	res, err := tour.Improve(m, mustConstruct(t, m))
	require.NoError(t, err)
	require.True(t, res.Tour.Closed)

	it, err := itinerary.Expand(m, res.Tour)
	require.NoError(t, err)
	first := it.Stops[0].StationID
	last := it.Stops[len(it.Stops)-1].StationID
	require.Equal(t, first, last)
}

func TestExpand_OffsetsAreCumulative(t *testing.T) {
	m := starMatrix(t)
	res, err := tour.Improve(m, mustConstruct(t, m))
	require.NoError(t, err)

	it, err := itinerary.Expand(m, res.Tour)
	require.NoError(t, err)
	require.Zero(t, it.Stops[0].Offset)
	for i := 1; i < len(it.Stops); i++ {
		require.GreaterOrEqual(t, it.Stops[i].Offset, it.Stops[i-1].Offset)
	}
	require.Equal(t, it.Total, it.Stops[len(it.Stops)-1].Offset)
}

func TestExpand_SingleStation(t *testing.T) {
	net, err := network.New(stationList("A"), nil)
	require.NoError(t, err)
	m, err := allpairs.Resolve(net)
	require.NoError(t, err)

	it, err := itinerary.Expand(m, tour.Tour{Seq: []int{0}, Closed: true})
	require.NoError(t, err)
	require.Zero(t, it.Total)
	require.Len(t, it.Stops, 1)
	require.Empty(t, it.Legs)
}

func TestExpand_RejectsInvalidTour(t *testing.T) {
	m := starMatrix(t)
	_, err := itinerary.Expand(m, tour.Tour{Seq: []int{0, 0, 1}, Closed: true})
	require.ErrorIs(t, err, tour.ErrInvalidTour)
}

func mustConstruct(t *testing.T, m *allpairs.Matrix) tour.Tour {
	t.Helper()
	tr, err := tour.Construct(m)
	require.NoError(t, err)

	return tr
}
