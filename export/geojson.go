package export

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/transitour/transitour/itinerary"
	"github.com/transitour/transitour/network"
)

// Sentinel errors shared by the exporters.
var (
	// ErrEmptyItinerary indicates an itinerary with no stops.
	ErrEmptyItinerary = errors.New("export: itinerary has no stops")

	// ErrUnknownStation indicates an itinerary stop the network does not
	// know. Cannot happen for an itinerary expanded from the same
	// network; guards against mismatched inputs.
	ErrUnknownStation = errors.New("export: itinerary references unknown station")
)

// GeoJSON encodes the itinerary as a FeatureCollection: one LineString
// feature tracing the walk in visiting order, plus one Point feature
// per visited stop carrying the station name, its lines, and the
// cumulative arrival offset in seconds.
func GeoJSON(n *network.Network, it itinerary.Itinerary) ([]byte, error) {
	if len(it.Stops) == 0 {
		return nil, ErrEmptyItinerary
	}

	fc := geojson.NewFeatureCollection()

	track := make(orb.LineString, 0, len(it.Stops))
	for _, stop := range it.Stops {
		s, ok := n.Station(stop.StationID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStation, stop.StationID)
		}
		track = append(track, orb.Point{s.Lon, s.Lat})
	}

	route := geojson.NewFeature(track)
	route.Properties = geojson.Properties{
		"kind":          "route",
		"stops":         len(it.Stops),
		"total_seconds": it.Total,
	}
	fc.Append(route)

	for i, stop := range it.Stops {
		s, _ := n.Station(stop.StationID)
		f := geojson.NewFeature(orb.Point{s.Lon, s.Lat})
		f.Properties = geojson.Properties{
			"kind":           "stop",
			"sequence":       i,
			"station_id":     s.ID,
			"name":           s.Name,
			"lines":          s.Lines,
			"offset_seconds": stop.Offset,
		}
		fc.Append(f)
	}

	return fc.MarshalJSON()
}
