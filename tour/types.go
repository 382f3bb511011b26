package tour

import (
	"errors"
	"time"
)

// Sentinel errors for tour construction and improvement.
var (
	// ErrNilMatrix indicates a nil *allpairs.Matrix.
	ErrNilMatrix = errors.New("tour: distance matrix is nil")

	// ErrEmptyMatrix indicates a matrix with no stations.
	ErrEmptyMatrix = errors.New("tour: distance matrix is empty")

	// ErrStartNotFound indicates a configured start station that is not
	// present in the matrix.
	ErrStartNotFound = errors.New("tour: start station not found")

	// ErrBadBudget indicates a negative pass or wall-clock budget.
	ErrBadBudget = errors.New("tour: improvement budget must be non-negative")

	// ErrInvalidTour indicates a sequence that is not a permutation of
	// all station indices.
	ErrInvalidTour = errors.New("tour: sequence is not a station permutation")
)

// State is the terminal state of an improvement run.
type State int

const (
	// StateRunning is the transient in-progress state; never returned.
	StateRunning State = iota

	// StateConverged means a full candidate scan applied zero moves:
	// the tour is a local optimum under the move neighborhood.
	StateConverged

	// StateBudgeted means the pass or wall-clock budget ran out first.
	// The tour is valid but may admit further improvement.
	StateBudgeted
)

// String returns the lowercase state tag used in logs.
func (s State) String() string {
	switch s {
	case StateConverged:
		return "converged"
	case StateBudgeted:
		return "budgeted"
	default:
		return "running"
	}
}

// Tour is an ordering of all canonical station indices of a matrix,
// each exactly once. Closed tours wrap from the last station back to
// the first when costed.
//
// The improver mutates Seq in place; hand it off, do not share it.
type Tour struct {
	// Seq holds every station index exactly once, in visiting order.
	Seq []int

	// Closed reports whether the walk returns to Seq[0] at the end.
	Closed bool
}

// Options configures construction and improvement.
//
// Start       - canonical index of the seed station (default 0, the
//               lowest station ID).
// Closed      - whether the tour must return to its start.
// MaxPasses   - improvement scan budget; 0 means unlimited.
// MaxDuration - wall-clock budget, checked at pass boundaries only, so
//               a running pass always completes; 0 means unlimited.
type Options struct {
	Start       int
	Closed      bool
	MaxPasses   int
	MaxDuration time.Duration
}

// Option is a functional option for Construct and Improve.
type Option func(*Options)

// WithStart seeds the tour at the given canonical station index.
func WithStart(idx int) Option {
	return func(o *Options) { o.Start = idx }
}

// WithClosed controls whether the tour wraps back to its start.
func WithClosed(closed bool) Option {
	return func(o *Options) { o.Closed = closed }
}

// WithMaxPasses bounds the number of improvement scans. 0 = unlimited.
func WithMaxPasses(n int) Option {
	return func(o *Options) { o.MaxPasses = n }
}

// WithMaxDuration bounds improvement wall-clock time. The budget is
// cooperative: it is honored between passes, never mid-pass. 0 = unlimited.
func WithMaxDuration(d time.Duration) Option {
	return func(o *Options) { o.MaxDuration = d }
}

// defaultOptions returns the closed-tour, unlimited-budget defaults.
func defaultOptions() Options {
	return Options{Start: 0, Closed: true}
}

// Result is the outcome of an improvement run.
type Result struct {
	// Tour is the final sequence (same backing array as the input).
	Tour Tour

	// Cost is the total virtual-edge cost of Tour.
	Cost int64

	// State is StateConverged or StateBudgeted.
	State State

	// Passes counts completed candidate scans.
	Passes int
}
