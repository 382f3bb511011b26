package tour

import (
	"math"

	"github.com/transitour/transitour/allpairs"
)

// Construct builds the initial feasible tour with the cheapest-insertion
// heuristic, touching only the distance matrix (never the raw network).
//
// Selection rule: among unvisited stations, pick the one nearest to the
// partial tour, where nearness is the cheaper direction of travel
// between the candidate and any tour member. Insertion rule: splice it
// into the position with the smallest cost increase. All ties break to
// the lowest station index, then the lowest position, so construction
// is fully deterministic.
//
// The seed station (Options.Start) stays at Seq[0] for the lifetime of
// the tour; for open tours it is the walk's fixed departure point.
//
// Complexity: O(n²) selection + O(n²) insertion scans = O(n²) overall
// per inserted station, O(n³) worst case total; near-linear passes in
// practice on transit-sized instances.
func Construct(m *allpairs.Matrix, opts ...Option) (Tour, error) {
	if m == nil {
		return Tour{}, ErrNilMatrix
	}
	n := m.Size()
	if n == 0 {
		return Tour{}, ErrEmptyMatrix
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Start < 0 || cfg.Start >= n {
		return Tour{}, ErrStartNotFound
	}

	// Trivial instance: nothing to order.
	if n == 1 {
		return Tour{Seq: []int{0}, Closed: cfg.Closed}, nil
	}

	seq := make([]int, 0, n)
	seq = append(seq, cfg.Start)
	visited := make([]bool, n)
	visited[cfg.Start] = true

	for len(seq) < n {
		next := selectNearest(m, seq, visited)
		pos := cheapestPosition(m, seq, next, cfg.Closed)
		// Splice next into seq at index pos.
		seq = append(seq, 0)
		copy(seq[pos+1:], seq[pos:])
		seq[pos] = next
		visited[next] = true
	}

	return Tour{Seq: seq, Closed: cfg.Closed}, nil
}

// selectNearest returns the unvisited station with the smallest distance
// to or from any tour member. Scanning candidates in ascending index
// order with a strict < comparison breaks distance ties toward the
// lowest station index.
func selectNearest(m *allpairs.Matrix, seq []int, visited []bool) int {
	var (
		best     = -1
		bestDist = int64(math.MaxInt64)
		d        int64
	)
	for cand := 0; cand < m.Size(); cand++ {
		if visited[cand] {
			continue
		}
		for _, v := range seq {
			d = m.At(v, cand)
			if rev := m.At(cand, v); rev < d {
				d = rev
			}
			if d < bestDist {
				bestDist = d
				best = cand
			}
		}
	}

	return best
}

// cheapestPosition returns the splice index (1..len(seq)) that minimizes
// the cost increase of inserting cand. Position ties break low.
//
// Closed tours treat the sequence as a ring (the wrap hop participates);
// open tours keep the seed fixed at the front and allow appending.
func cheapestPosition(m *allpairs.Matrix, seq []int, cand int, closed bool) int {
	var (
		bestPos   = 1
		bestDelta = int64(math.MaxInt64)
		delta     int64
		last      = len(seq) - 1
	)
	for p := 0; p <= last; p++ {
		from := seq[p]
		switch {
		case p < last:
			// Between two existing members.
			to := seq[p+1]
			delta = m.At(from, cand) + m.At(cand, to) - m.At(from, to)
		case closed:
			// Between the last member and the wrap back to the seed.
			delta = m.At(from, cand) + m.At(cand, seq[0])
			if len(seq) > 1 {
				delta -= m.At(from, seq[0])
			}
		default:
			// Open tour: append after the current tail.
			delta = m.At(from, cand)
		}
		if delta < bestDelta {
			bestDelta = delta
			bestPos = p + 1
		}
	}

	return bestPos
}
