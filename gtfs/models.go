package gtfs

// CSV row models for the GTFS files the tour pipeline consumes.
// Field tags follow the GTFS reference column names.

// Stop is one row of stops.txt.
type Stop struct {
	ID           string  `csv:"stop_id"`
	Code         string  `csv:"stop_code"`
	Name         string  `csv:"stop_name"`
	Latitude     float64 `csv:"stop_lat"`
	Longitude    float64 `csv:"stop_lon"`
	LocationType string  `csv:"location_type"`
	Parent       string  `csv:"parent_station"`
}

// Transfer is one row of transfers.txt.
type Transfer struct {
	FromStopID      string `csv:"from_stop_id"`
	ToStopID        string `csv:"to_stop_id"`
	Type            string `csv:"transfer_type"`
	MinTransferTime int64  `csv:"min_transfer_time"`
}

// StopTime is one row of stop_times.txt. Arrival and departure keep the
// raw GTFS clock strings, which may legitimately exceed 24:00:00 for
// service running past midnight.
type StopTime struct {
	TripID    string `csv:"trip_id"`
	Arrival   string `csv:"arrival_time"`
	Departure string `csv:"departure_time"`
	StopID    string `csv:"stop_id"`
	Sequence  int    `csv:"stop_sequence"`
}

// Trip is one row of trips.txt.
type Trip struct {
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	ID        string `csv:"trip_id"`
	Headsign  string `csv:"trip_headsign"`
}

// Route is one row of routes.txt.
type Route struct {
	ID        string `csv:"route_id"`
	AgencyID  string `csv:"agency_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      int    `csv:"route_type"`
}
