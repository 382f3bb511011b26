package export_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitour/transitour/export"
	"github.com/transitour/transitour/itinerary"
	"github.com/transitour/transitour/network"
)

func coastNet(t *testing.T) *network.Network {
	t.Helper()
	stations := []network.Station{
		{ID: "A", Name: "Alpha", Lines: []string{"1"}, Lat: 40.70, Lon: -74.00},
		{ID: "B", Name: "Bravo", Lines: []string{"1"}, Lat: 40.75, Lon: -73.99},
		{ID: "C", Name: "Charlie", Lines: []string{"1"}, Lat: 40.80, Lon: -73.95},
	}
	edges := []network.Edge{
		{From: "A", To: "B", Weight: 120, Line: "1", Kind: network.Ride},
		{From: "B", To: "A", Weight: 120, Line: "1", Kind: network.Ride},
		{From: "B", To: "C", Weight: 180, Line: "1", Kind: network.Ride},
		{From: "C", To: "B", Weight: 180, Line: "1", Kind: network.Ride},
	}
	n, err := network.New(stations, edges)
	require.NoError(t, err)

	return n
}

func walk() itinerary.Itinerary {
	return itinerary.Itinerary{
		Stops: []itinerary.Stop{
			{StationID: "A", Offset: 0},
			{StationID: "B", Offset: 120},
			{StationID: "C", Offset: 300},
		},
		Total: 300,
	}
}

// ------------------------------------------------------------------------
// GeoJSON.
// ------------------------------------------------------------------------

func TestGeoJSON_FeatureCollectionShape(t *testing.T) {
	raw, err := export.GeoJSON(coastNet(t), walk())
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 4, "one route track plus one feature per stop")

	track := doc.Features[0]
	require.Equal(t, "LineString", track.Geometry.Type)
	require.Equal(t, "route", track.Properties["kind"])
	require.EqualValues(t, 300, track.Properties["total_seconds"])

	var coords [][]float64
	require.NoError(t, json.Unmarshal(track.Geometry.Coordinates, &coords))
	require.Len(t, coords, 3)
	require.InDelta(t, -74.00, coords[0][0], 1e-9)
	require.InDelta(t, 40.70, coords[0][1], 1e-9)
}

func TestGeoJSON_StopProperties(t *testing.T) {
	raw, err := export.GeoJSON(coastNet(t), walk())
	require.NoError(t, err)

	var doc struct {
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	second := doc.Features[2].Properties
	require.Equal(t, "stop", second["kind"])
	require.Equal(t, "B", second["station_id"])
	require.Equal(t, "Bravo", second["name"])
	require.EqualValues(t, 1, second["sequence"])
	require.EqualValues(t, 120, second["offset_seconds"])
}

func TestGeoJSON_EmptyItinerary(t *testing.T) {
	_, err := export.GeoJSON(coastNet(t), itinerary.Itinerary{})
	require.ErrorIs(t, err, export.ErrEmptyItinerary)
}

func TestGeoJSON_UnknownStation(t *testing.T) {
	it := walk()
	it.Stops[1].StationID = "Z"

	_, err := export.GeoJSON(coastNet(t), it)
	require.ErrorIs(t, err, export.ErrUnknownStation)
}

// ------------------------------------------------------------------------
// Earth Studio.
// ------------------------------------------------------------------------

type espProbe struct {
	Type     string `json:"type"`
	Settings struct {
		Name      string  `json:"name"`
		FrameRate float64 `json:"frameRate"`
		Duration  int     `json:"duration"`
	} `json:"settings"`
	PlaybackManager struct {
		Range struct {
			End int `json:"end"`
		} `json:"range"`
	} `json:"playbackManager"`
	Scenes []struct {
		Attributes []struct {
			Type       string `json:"type"`
			Attributes []struct {
				Type       string `json:"type"`
				Attributes []struct {
					Type       string `json:"type"`
					Attributes []struct {
						Type      string `json:"type"`
						Keyframes []struct {
							Time  float64 `json:"time"`
							Value float64 `json:"value"`
						} `json:"keyframes"`
					} `json:"attributes"`
				} `json:"attributes"`
			} `json:"attributes"`
		} `json:"attributes"`
	} `json:"scenes"`
}

func TestEarthStudio_DocumentShape(t *testing.T) {
	raw, err := export.EarthStudio(coastNet(t), walk(), export.WithName("Harbor Line"))
	require.NoError(t, err)

	var doc espProbe
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, "quickstart", doc.Type)
	require.Equal(t, "Harbor Line", doc.Settings.Name)
	// 300 seconds at 30 fps.
	require.Equal(t, 9000, doc.Settings.Duration)
	require.Equal(t, 9000, doc.PlaybackManager.Range.End)

	require.Len(t, doc.Scenes, 1)
	camera := doc.Scenes[0].Attributes[0]
	require.Equal(t, "cameraGroup", camera.Type)
	require.Equal(t, "cameraPositionGroup", camera.Attributes[0].Type)
	require.Equal(t, "cameraTargetEffect", camera.Attributes[1].Type)

	position := camera.Attributes[0].Attributes[0]
	require.Equal(t, "position", position.Type)
	require.Equal(t, "longitude", position.Attributes[0].Type)
	require.Equal(t, "latitude", position.Attributes[1].Type)
	require.Equal(t, "altitude", position.Attributes[2].Type)

	poi := camera.Attributes[1].Attributes[0]
	require.Equal(t, "poi", poi.Type)
	require.Equal(t, "longitudePOI", poi.Attributes[0].Type)
}

func TestEarthStudio_KeyframesFollowTheWalk(t *testing.T) {
	raw, err := export.EarthStudio(coastNet(t), walk())
	require.NoError(t, err)

	var doc espProbe
	require.NoError(t, json.Unmarshal(raw, &doc))

	lon := doc.Scenes[0].Attributes[0].Attributes[0].Attributes[0].Attributes[0]
	require.Len(t, lon.Keyframes, 3, "one keyframe per visited stop")
	// Longitude -74 normalized onto [0,1], arrival offsets in frames.
	require.InDelta(t, ((-74.00)+180)/360, lon.Keyframes[0].Value, 1e-9)
	require.InDelta(t, 0, lon.Keyframes[0].Time, 1e-9)
	require.InDelta(t, 120*30, lon.Keyframes[1].Time, 1e-9)
	require.InDelta(t, 300*30, lon.Keyframes[2].Time, 1e-9)

	lat := doc.Scenes[0].Attributes[0].Attributes[0].Attributes[0].Attributes[1]
	require.InDelta(t, (40.70+90)/180, lat.Keyframes[0].Value, 1e-9)

	alt := doc.Scenes[0].Attributes[0].Attributes[0].Attributes[0].Attributes[2]
	require.Len(t, alt.Keyframes, 1, "altitude stays pinned")
}

func TestEarthStudio_SpeedupCompressesTime(t *testing.T) {
	raw, err := export.EarthStudio(coastNet(t), walk(), export.WithSpeedup(2))
	require.NoError(t, err)

	var doc espProbe
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, 4500, doc.Settings.Duration)
}

func TestEarthStudio_FrameRateOption(t *testing.T) {
	raw, err := export.EarthStudio(coastNet(t), walk(), export.WithFrameRate(60))
	require.NoError(t, err)

	var doc espProbe
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, float64(60), doc.Settings.FrameRate)
	require.Equal(t, 18000, doc.Settings.Duration)
}

func TestEarthStudio_EmptyItinerary(t *testing.T) {
	_, err := export.EarthStudio(coastNet(t), itinerary.Itinerary{})
	require.ErrorIs(t, err, export.ErrEmptyItinerary)
}

func TestEarthStudio_InvalidOptionsPanic(t *testing.T) {
	require.Panics(t, func() { export.WithSpeedup(0) })
	require.Panics(t, func() { export.WithFrameRate(-1) })
}
