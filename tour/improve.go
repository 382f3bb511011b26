package tour

import (
	"time"

	"github.com/transitour/transitour/allpairs"
)

// Improve refines a tour by first-improvement local search until it
// converges or its budget runs out. The input tour is mutated in place
// and handed back inside the Result; the caller must not share it with
// another goroutine while Improve runs.
//
// Only the budget options (WithMaxPasses, WithMaxDuration) are read
// here: the seed and the closedness are properties of t itself, fixed
// at construction, so WithStart and WithClosed have no effect on
// improvement.
//
// Each scan examines, in a fixed deterministic order, every 2-opt
// segment reversal and then every single-station relocation, applying
// the first move that strictly decreases total cost and restarting the
// scan. The matrix is asymmetric in general, so 2-opt deltas re-cost the
// reversed interior arcs exactly rather than assuming w(u,v) == w(v,u).
//
// Terminal states:
//
//   - StateConverged: a full scan applied zero moves.
//   - StateBudgeted:  MaxPasses or MaxDuration was exhausted at a pass
//     boundary. A running scan always completes first, so cost stays
//     monotone per pass.
//
// Complexity: O(n³) per scan worst case (interior re-costing), O(n)
// extra space for the relocation scratch buffer.
func Improve(m *allpairs.Matrix, t Tour, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, ErrNilMatrix
	}
	if m.Size() == 0 {
		return Result{}, ErrEmptyMatrix
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxPasses < 0 || cfg.MaxDuration < 0 {
		return Result{}, ErrBadBudget
	}
	if err := Validate(m, t); err != nil {
		return Result{}, err
	}

	imp := &improver{
		m:       m,
		seq:     t.Seq,
		closed:  t.Closed,
		cost:    costSeq(m, t.Seq, t.Closed),
		scratch: make([]int, len(t.Seq)),
	}

	var (
		started = time.Now()
		passes  int
		state   State
	)
	for {
		// Budget is honored only between passes.
		if cfg.MaxPasses > 0 && passes >= cfg.MaxPasses {
			state = StateBudgeted

			break
		}
		if cfg.MaxDuration > 0 && time.Since(started) >= cfg.MaxDuration {
			state = StateBudgeted

			break
		}

		applied := imp.scanOnce()
		passes++
		if !applied {
			state = StateConverged

			break
		}
	}

	return Result{
		Tour:   Tour{Seq: imp.seq, Closed: imp.closed},
		Cost:   imp.cost,
		State:  state,
		Passes: passes,
	}, nil
}

// improver holds the mutable state of one improvement run. It is owned
// exclusively by Improve for the run's duration.
type improver struct {
	m       *allpairs.Matrix
	seq     []int
	closed  bool
	cost    int64
	scratch []int
}

// scanOnce walks the full candidate neighborhood in fixed order and
// applies the first strictly-improving move. Returns whether a move was
// applied. Position 0 (the seed station) is never displaced.
func (im *improver) scanOnce() bool {
	n := len(im.seq)

	// Phase 1: 2-opt segment reversals over 1 ≤ i < k ≤ n-1.
	for i := 1; i < n-1; i++ {
		for k := i + 1; k <= n-1; k++ {
			if delta := im.twoOptDelta(i, k); delta < 0 {
				reverseSegment(im.seq, i, k)
				im.cost += delta

				return true
			}
		}
	}

	// Phase 2: single-station relocations p → q.
	for p := 1; p <= n-1; p++ {
		for q := 1; q <= n-1; q++ {
			if q == p {
				continue
			}
			relocate(im.scratch, im.seq, p, q)
			if next := costSeq(im.m, im.scratch, im.closed); next < im.cost {
				copy(im.seq, im.scratch)
				im.cost = next

				return true
			}
		}
	}

	return false
}

// twoOptDelta returns the exact cost change of reversing seq[i..k].
// Both the boundary arcs and every interior arc are re-costed in the
// reversed direction, which keeps the delta exact on asymmetric
// matrices. Negative means strictly improving.
func (im *improver) twoOptDelta(i, k int) int64 {
	var (
		seq      = im.seq
		n        = len(seq)
		a        = seq[i-1]
		old, rev int64
	)
	old = im.m.At(a, seq[i])
	rev = im.m.At(a, seq[k])
	for t := i; t < k; t++ {
		old += im.m.At(seq[t], seq[t+1])
		rev += im.m.At(seq[t+1], seq[t])
	}
	if k < n-1 || im.closed {
		b := seq[(k+1)%n]
		old += im.m.At(seq[k], b)
		rev += im.m.At(seq[i], b)
	}

	return rev - old
}

// reverseSegment reverses seq[i..k] in place.
func reverseSegment(seq []int, i, k int) {
	for i < k {
		seq[i], seq[k] = seq[k], seq[i]
		i++
		k--
	}
}

// relocate writes into dst a copy of src with the element at p removed
// and reinserted so it lands at index q of the result.
func relocate(dst, src []int, p, q int) {
	out := dst[:0]
	for i, v := range src {
		if i != p {
			out = append(out, v)
		}
	}
	out = append(out, 0)
	copy(out[q+1:], out[q:])
	out[q] = src[p]
}
