package network

import "errors"

// Sentinel errors for network construction and lookup.
var (
	// ErrNoStations indicates that New was called with an empty station set.
	ErrNoStations = errors.New("network: no stations")

	// ErrEmptyStationID indicates a station with an empty ID.
	ErrEmptyStationID = errors.New("network: station ID is empty")

	// ErrDuplicateStation indicates two stations sharing the same ID.
	ErrDuplicateStation = errors.New("network: duplicate station ID")

	// ErrUnknownStation indicates an edge endpoint that is not a known station.
	ErrUnknownStation = errors.New("network: unknown station")

	// ErrNegativeWeight indicates an edge with a negative time weight.
	ErrNegativeWeight = errors.New("network: negative edge weight")

	// ErrDisconnected indicates the directed graph is not strongly connected.
	// Optimization requires every station to be reachable from every other.
	ErrDisconnected = errors.New("network: graph is not strongly connected")
)

// EdgeKind tags whether an edge represents an in-vehicle ride or a
// walking/waiting transfer between platforms.
type EdgeKind int

const (
	// Ride is an in-vehicle hop between two consecutive stations on a line.
	Ride EdgeKind = iota

	// Transfer is an out-of-vehicle connection (walk plus expected wait).
	Transfer
)

// String returns the lowercase tag used in logs and exports.
func (k EdgeKind) String() string {
	if k == Transfer {
		return "transfer"
	}

	return "ride"
}

// Station is a single stop in the transit graph. It is identified by ID;
// the remaining fields are passthrough metadata for reporting and export
// and take no part in optimization.
type Station struct {
	// ID uniquely identifies the station within its Network.
	ID string

	// Name is the human-readable stop name.
	Name string

	// Lines lists the line tags serving this station.
	Lines []string

	// Lat and Lon are geographic coordinates (WGS84). Zero when unknown.
	Lat float64
	Lon float64
}

// Edge is a directed connection From→To with a non-negative time weight
// in seconds (ride time, or walk-plus-wait time for transfers). Multiple
// edges may connect the same ordered pair on different lines.
type Edge struct {
	// From is the origin station ID.
	From string

	// To is the destination station ID.
	To string

	// Weight is the traversal time in whole seconds. Never negative.
	Weight int64

	// Line identifies the service line this edge belongs to.
	// Empty for transfers.
	Line string

	// Kind distinguishes ride edges from transfer edges.
	Kind EdgeKind
}
