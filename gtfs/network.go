package gtfs

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/transitour/transitour/network"
)

// Options configures network derivation from a feed.
type Options struct {
	stopFilter func(Stop) bool
}

// Option is a functional option for Feed.Network.
type Option func(*Options)

// WithStopFilter keeps only stops for which keep returns true. Edges
// touching a dropped stop are dropped with it. Useful for carving a
// sub-network out of a larger feed (the classic example being a borough
// excluded from the tour).
func WithStopFilter(keep func(Stop) bool) Option {
	return func(o *Options) { o.stopFilter = keep }
}

// pairKey identifies a directed consecutive-stop pair on one line.
type pairKey struct {
	from, to, line string
}

// Network derives the validated transit graph from the feed.
//
// Ride edges: every pair of consecutive stop_times rows of the same
// trip (stop_sequence increasing by one) contributes one observed
// travel duration; the edge weight is the mean across all observations,
// rounded to the nearest second. Overnight trips whose clock wraps past
// midnight are corrected before the delta is taken.
//
// Transfer edges come from transfers.txt with min_transfer_time as the
// weight. Transfers touching stops that carry no ride service are
// dropped, since they cannot take part in a station-visiting walk.
//
// Stations are the stops referenced by at least one surviving edge; the
// resulting graph must pass network.New validation, including the
// strong-connectivity proof.
func (f *Feed) Network(opts ...Option) (*network.Network, error) {
	cfg := Options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	stopByID := make(map[string]Stop, len(f.Stops))
	for _, s := range f.Stops {
		if cfg.stopFilter != nil && !cfg.stopFilter(s) {
			continue
		}
		stopByID[s.ID] = s
	}

	durations, err := f.observedDurations(stopByID)
	if err != nil {
		return nil, err
	}

	// Collapse observations into mean-weight ride edges.
	keys := make([]pairKey, 0, len(durations))
	for k := range durations {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.from != b.from {
			return a.from < b.from
		}
		if a.to != b.to {
			return a.to < b.to
		}

		return a.line < b.line
	})

	var (
		edges   []network.Edge
		served  = map[string]bool{}
		linesBy = map[string]map[string]bool{}
	)
	markLine := func(stopID, line string) {
		if line == "" {
			return
		}
		if linesBy[stopID] == nil {
			linesBy[stopID] = map[string]bool{}
		}
		linesBy[stopID][line] = true
	}
	for _, k := range keys {
		obs := durations[k]
		var sum int64
		for _, d := range obs {
			sum += d
		}
		mean := (sum + int64(len(obs))/2) / int64(len(obs))
		edges = append(edges, network.Edge{
			From:   k.from,
			To:     k.to,
			Weight: mean,
			Line:   k.line,
			Kind:   network.Ride,
		})
		served[k.from] = true
		served[k.to] = true
		markLine(k.from, k.line)
		markLine(k.to, k.line)
	}

	// Transfers only between stops that ride service actually reaches.
	dropped := 0
	for _, tr := range f.Transfers {
		if !served[tr.FromStopID] || !served[tr.ToStopID] {
			dropped++

			continue
		}
		edges = append(edges, network.Edge{
			From:   tr.FromStopID,
			To:     tr.ToStopID,
			Weight: tr.MinTransferTime,
			Kind:   network.Transfer,
		})
	}
	if dropped > 0 {
		log.Debug().Int("count", dropped).Msg("transfers to unserved stops dropped")
	}

	// Station set: every stop an edge touches.
	ids := make([]string, 0, len(served))
	for id := range served {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	stations := make([]network.Station, 0, len(ids))
	for _, id := range ids {
		// Every served ID passed the stopByID check during derivation.
		s := stopByID[id]
		var lines []string
		for line := range linesBy[id] {
			lines = append(lines, line)
		}
		sort.Strings(lines)
		stations = append(stations, network.Station{
			ID:    s.ID,
			Name:  s.Name,
			Lines: lines,
			Lat:   s.Latitude,
			Lon:   s.Longitude,
		})
	}

	log.Info().
		Int("stations", len(stations)).
		Int("edges", len(edges)).
		Msg("network derived from gtfs feed")

	return network.New(stations, edges)
}

// observedDurations walks stop_times in file order and collects every
// consecutive-stop travel duration, keyed by (from, to, line).
func (f *Feed) observedDurations(stopByID map[string]Stop) (map[pairKey][]int64, error) {
	lineOf := f.tripLines()

	durations := map[pairKey][]int64{}
	var (
		lastTrip    string
		lastSeq     int
		lastStop    string
		lastArrival int64
		havePrev    bool
	)
	for _, st := range f.StopTimes {
		arrival, err := parseClockTime(st.Arrival)
		if err != nil {
			return nil, err
		}
		if havePrev && st.TripID == lastTrip && st.Sequence == lastSeq+1 {
			// Overnight wrap: a trip's clock never runs backwards.
			for arrival < lastArrival {
				arrival += 24 * 60 * 60
			}
			_, fromKnown := stopByID[lastStop]
			_, toKnown := stopByID[st.StopID]
			if fromKnown && toKnown && lastStop != st.StopID {
				k := pairKey{from: lastStop, to: st.StopID, line: lineOf[st.TripID]}
				durations[k] = append(durations[k], arrival-lastArrival)
			}
		}
		lastTrip = st.TripID
		lastSeq = st.Sequence
		lastStop = st.StopID
		lastArrival = arrival
		havePrev = true
	}

	return durations, nil
}

// tripLines maps trip IDs to a human-meaningful line tag: the route's
// short name when available, otherwise the raw route ID.
func (f *Feed) tripLines() map[string]string {
	nameOf := make(map[string]string, len(f.Routes))
	for _, r := range f.Routes {
		name := r.ShortName
		if name == "" {
			name = r.ID
		}
		nameOf[r.ID] = name
	}
	out := make(map[string]string, len(f.Trips))
	for _, t := range f.Trips {
		if name, ok := nameOf[t.RouteID]; ok {
			out[t.ID] = name
		} else {
			out[t.ID] = t.RouteID
		}
	}

	return out
}
