package allpairs

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sourcegraph/conc/pool"

	"github.com/transitour/transitour/network"
)

// Resolve computes the all-pairs distance matrix and path table for a
// validated network by running one Dijkstra per source station.
//
// Determinism: shortest-time ties are resolved by fewer edges, then the
// lexicographically smallest sequence of visited station IDs (line tags
// break the final tie between parallel edges), and per-source runs are
// merged into fixed canonical rows, so the result does not depend on
// the worker count.
//
// Complexity:
//
//   - Time:  O(S · (S + E) log S) across all sources, plus O(L) per
//     equal-key tie for the sequence comparison.
//   - Space: O(S²) for the matrix plus O(S·L) for stored paths, where L
//     is the mean shortest-path length.
func Resolve(net *network.Network, opts ...Option) (*Matrix, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	ids := net.IDs()
	n := len(ids)
	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	m := &Matrix{
		ids:   ids,
		index: index,
		n:     n,
		dist:  make([]int64, n*n),
		paths: make([][]network.Edge, n*n),
	}

	// Each source run owns its private path table and writes only its
	// own row of the shared result, so no locking is needed; pool.Wait is
	// the single synchronization barrier.
	var (
		p    = pool.New().WithMaxGoroutines(cfg.Workers).WithErrors()
		i    int
		next string
	)
	for i, next = range ids {
		row, source := i, next
		p.Go(func() error {
			return resolveRow(net, m, row, source)
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return m, nil
}

// resolveRow runs a single-source Dijkstra and fills row `row` of the
// matrix with the distances and canonical paths to every station.
func resolveRow(net *network.Network, m *Matrix, row int, source string) error {
	r := newRunner(net, source)
	r.run()

	var (
		j    int
		dest string
	)
	for j, dest = range m.ids {
		if j == row {
			// Diagonal: zero time, empty path.
			continue
		}
		d, ok := r.dist[dest]
		if !ok || d == math.MaxInt64 {
			// The network was proven strongly connected, so this cannot
			// happen unless a prior stage broke an invariant.
			return fmt.Errorf("%w: %s→%s", ErrUnreachablePair, source, dest)
		}
		m.dist[row*m.n+j] = d
		m.paths[row*m.n+j] = r.path[dest]
	}

	return nil
}

// runner holds the mutable state for one single-source computation.
//
// The shortest-path key is the lexicographic pair (dist, hops): every
// edge strictly increases it (positive weight raises dist; zero weight
// raises hops), so finalizing vertices in increasing key order is still
// correct. Because a node's predecessors on any equal-key path carry a
// strictly smaller key, they are all finalized — and have offered their
// candidate paths — before the node itself pops, which makes the stored
// path the canonical minimum over the full tie set.
type runner struct {
	net     *network.Network
	source  string
	dist    map[string]int64          // station ID → best travel time
	hops    map[string]int            // station ID → edge count of that path
	path    map[string][]network.Edge // station ID → canonical best path
	visited map[string]bool
	pq      nodePQ
}

func newRunner(net *network.Network, source string) *runner {
	n := net.StationCount()
	r := &runner{
		net:     net,
		source:  source,
		dist:    make(map[string]int64, n),
		hops:    make(map[string]int, n),
		path:    make(map[string][]network.Edge, n),
		visited: make(map[string]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	for _, id := range net.IDs() {
		r.dist[id] = math.MaxInt64
	}
	r.dist[source] = 0
	r.hops[source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: source})

	return r
}

// run is the main loop: pop the smallest (dist, hops, id) entry, finalize
// it, and relax its outgoing edges. Lazy decrease-key: stale heap entries
// are skipped via the visited set.
func (r *runner) run() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue
		}
		r.visited[item.id] = true
		r.relax(item.id)
	}
}

// relax examines every outgoing edge of u. The path to u is final here,
// so extending it by one edge yields a complete, immutable candidate for
// each neighbor.
func (r *runner) relax(u string) {
	var (
		base    = r.path[u]
		e       network.Edge
		newDist int64
		newHops int
	)
	for _, e = range r.net.Outgoing(u) {
		if r.visited[e.To] {
			continue
		}
		newDist = r.dist[u] + e.Weight
		newHops = r.hops[u] + 1

		switch {
		case newDist < r.dist[e.To],
			newDist == r.dist[e.To] && newHops < r.hops[e.To]:
			// Strict improvement on the (dist, hops) key.
			r.dist[e.To] = newDist
			r.hops[e.To] = newHops
			r.path[e.To] = extend(base, e)
			heap.Push(&r.pq, &nodeItem{id: e.To, dist: newDist, hops: newHops})
		case newDist == r.dist[e.To] && newHops == r.hops[e.To]:
			// Same cost and length: keep the lexicographically smaller
			// full route. No re-push needed, the key is unchanged.
			if cand := extend(base, e); lexLess(cand, r.path[e.To]) {
				r.path[e.To] = cand
			}
		}
	}
}

// extend returns a fresh copy of base with e appended. Candidates never
// share backing arrays, so an accepted path is immutable from then on.
func extend(base []network.Edge, e network.Edge) []network.Edge {
	out := make([]network.Edge, len(base)+1)
	copy(out, base)
	out[len(base)] = e

	return out
}

// lexLess reports whether path a orders before path b: hop by hop on the
// visited station IDs, then on line tags for otherwise identical routes
// over parallel edges. Both paths share source and destination and, on
// the equal-key call sites, length.
func lexLess(a, b []network.Edge) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i].To != b[i].To {
			return a[i].To < b[i].To
		}
	}
	for i := range a {
		if a[i].Line != b[i].Line {
			return a[i].Line < b[i].Line
		}
	}

	return false
}

// nodeItem is a heap entry: a station with its candidate key.
type nodeItem struct {
	id   string
	dist int64
	hops int
}

// nodePQ is a min-heap ordered by (dist, hops, id). The ID component makes
// the pop order — and therefore every tie — fully deterministic.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	if pq[i].hops != pq[j].hops {
		return pq[i].hops < pq[j].hops
	}

	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
