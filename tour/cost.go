package tour

import (
	"fmt"

	"github.com/transitour/transitour/allpairs"
)

// Validate checks that t.Seq is a permutation of {0..n-1} where n is the
// matrix size. Returns ErrInvalidTour with context on any violation.
//
// Complexity: O(n) time, O(n) space.
func Validate(m *allpairs.Matrix, t Tour) error {
	if m == nil {
		return ErrNilMatrix
	}
	n := m.Size()
	if len(t.Seq) != n {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidTour, len(t.Seq), n)
	}
	seen := make([]bool, n)
	for _, v := range t.Seq {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidTour, v)
		}
		if seen[v] {
			return fmt.Errorf("%w: station %s visited twice", ErrInvalidTour, m.ID(v))
		}
		seen[v] = true
	}

	return nil
}

// Cost sums the virtual-edge costs of consecutive hops, plus the
// wrap-around hop for closed tours. All arithmetic is exact int64.
//
// Complexity: O(n).
func Cost(m *allpairs.Matrix, t Tour) (int64, error) {
	if err := Validate(m, t); err != nil {
		return 0, err
	}

	return costSeq(m, t.Seq, t.Closed), nil
}

// costSeq is the unchecked hot-path cost sum used by the improver.
func costSeq(m *allpairs.Matrix, seq []int, closed bool) int64 {
	var sum int64
	for i := 0; i+1 < len(seq); i++ {
		sum += m.At(seq[i], seq[i+1])
	}
	if closed && len(seq) > 1 {
		sum += m.At(seq[len(seq)-1], seq[0])
	}

	return sum
}

// Stations maps the tour back to station IDs in visiting order.
func Stations(m *allpairs.Matrix, t Tour) []string {
	out := make([]string, len(t.Seq))
	for i, idx := range t.Seq {
		out[i] = m.ID(idx)
	}

	return out
}
