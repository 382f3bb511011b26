// Package planner wires the optimization stages into one pipeline:
// network → all-pairs resolver → tour constructor → tour improver →
// itinerary expander. Stages run strictly in sequence; each consumes
// the completed output of its predecessor, and the only internal
// parallelism is the resolver's per-source worker pool.
//
// The planner is the seam between the engine and its collaborators: it
// accepts a validated *network.Network from ingestion and hands a
// read-only Result to presentation. It emits structured progress events
// through an injected zerolog.Logger (a no-op logger by default, so the
// algorithm packages below it stay silent).
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/transitour/transitour/allpairs"
	"github.com/transitour/transitour/itinerary"
	"github.com/transitour/transitour/network"
	"github.com/transitour/transitour/tour"
)

// ErrNilNetwork indicates that Plan was called with a nil network.
var ErrNilNetwork = errors.New("planner: network is nil")

// Options configures a single pipeline run. Defaults: closed tour,
// lowest station ID as start, unlimited improvement budget, sequential
// resolver, no-op logger.
type Options struct {
	Closed      bool
	Start       string // station ID; "" = lowest station ID
	MaxPasses   int
	MaxDuration time.Duration
	Workers     int
	Logger      zerolog.Logger
}

// Option is a functional option for Plan.
type Option func(*Options)

// WithClosedTour controls whether the walk must return to its start.
func WithClosedTour(closed bool) Option {
	return func(o *Options) { o.Closed = closed }
}

// WithStart overrides the deterministic default start station.
func WithStart(id string) Option {
	return func(o *Options) { o.Start = id }
}

// WithMaxPasses bounds the improver's scan count. 0 = unlimited.
func WithMaxPasses(n int) Option {
	return func(o *Options) { o.MaxPasses = n }
}

// WithMaxDuration bounds the improver's wall-clock time. 0 = unlimited.
func WithMaxDuration(d time.Duration) Option {
	return func(o *Options) { o.MaxDuration = d }
}

// WithWorkers sets the resolver's worker-pool size.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger injects a structured logger for stage progress events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func defaultOptions() Options {
	return Options{Closed: true, Workers: 1, Logger: zerolog.Nop()}
}

// Result is the read-only outcome of a pipeline run.
type Result struct {
	// Tour is the final visiting sequence over canonical indices.
	Tour tour.Tour

	// Stations is Tour mapped to station IDs, in visiting order.
	Stations []string

	// Cost is the tour's total virtual-edge time in seconds.
	Cost int64

	// State reports whether the improver converged or ran out of budget.
	State tour.State

	// Passes counts completed improvement scans.
	Passes int

	// Itinerary is the real edge-level expansion of Tour.
	Itinerary itinerary.Itinerary

	// Matrix is the all-pairs model the tour was optimized against,
	// exposed for callers that post-process the result.
	Matrix *allpairs.Matrix
}

// Plan runs the full pipeline on a validated network.
//
// A single-station network short-circuits past construction and
// improvement with a trivial zero-cost result — there is nothing to
// order. Budget exhaustion is not an error: the result simply carries
// tour.StateBudgeted.
func Plan(net *network.Network, opts ...Option) (Result, error) {
	if net == nil {
		return Result{}, ErrNilNetwork
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.Logger

	// Stage 1: all-pairs reduction.
	resolveStart := time.Now()
	m, err := allpairs.Resolve(net, allpairs.WithWorkers(cfg.Workers))
	if err != nil {
		return Result{}, err
	}
	log.Info().
		Int("stations", m.Size()).
		Int("workers", cfg.Workers).
		Dur("took", time.Since(resolveStart)).
		Msg("all-pairs model resolved")

	// Map the configured start station onto its canonical index.
	startIdx := 0
	if cfg.Start != "" {
		idx, ok := m.Index(cfg.Start)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", tour.ErrStartNotFound, cfg.Start)
		}
		startIdx = idx
	}

	tourOpts := []tour.Option{
		tour.WithStart(startIdx),
		tour.WithClosed(cfg.Closed),
	}

	// Stage 2: initial tour. A single station needs no ordering at all.
	constructStart := time.Now()
	initial, err := tour.Construct(m, tourOpts...)
	if err != nil {
		return Result{}, err
	}
	initialCost, err := tour.Cost(m, initial)
	if err != nil {
		return Result{}, err
	}
	log.Info().
		Int64("cost", initialCost).
		Dur("took", time.Since(constructStart)).
		Msg("initial tour constructed")

	res := Result{Tour: initial, Cost: initialCost, State: tour.StateConverged, Matrix: m}

	// Stage 3: local-search refinement (skipped for the trivial instance).
	if m.Size() > 1 {
		improveStart := time.Now()
		improved, ierr := tour.Improve(m, initial,
			tour.WithMaxPasses(cfg.MaxPasses),
			tour.WithMaxDuration(cfg.MaxDuration))
		if ierr != nil {
			return Result{}, ierr
		}
		res.Tour = improved.Tour
		res.Cost = improved.Cost
		res.State = improved.State
		res.Passes = improved.Passes
		log.Info().
			Int64("cost", improved.Cost).
			Int("passes", improved.Passes).
			Stringer("state", improved.State).
			Dur("took", time.Since(improveStart)).
			Msg("tour improved")
	}

	// Stage 4: expansion back onto real edges.
	it, err := itinerary.Expand(m, res.Tour)
	if err != nil {
		return Result{}, err
	}
	res.Itinerary = it
	res.Stations = tour.Stations(m, res.Tour)
	log.Info().
		Int("stops", len(it.Stops)).
		Int64("total_seconds", it.Total).
		Msg("itinerary expanded")

	return res, nil
}
