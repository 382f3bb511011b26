package export

import (
	"encoding/json"
	"fmt"

	"github.com/transitour/transitour/itinerary"
	"github.com/transitour/transitour/network"
)

// Options configures the Earth Studio export.
type Options struct {
	name      string
	frameRate float64
	speedup   float64
}

// Option is a functional option for EarthStudio.
type Option func(*Options)

// WithName sets the project name shown in the Earth Studio UI.
func WithName(name string) Option {
	return func(o *Options) { o.name = name }
}

// WithFrameRate sets the animation frame rate. Panics if fps <= 0.
func WithFrameRate(fps float64) Option {
	if fps <= 0 {
		panic(fmt.Sprintf("export: WithFrameRate(%v): frame rate must be positive", fps))
	}

	return func(o *Options) { o.frameRate = fps }
}

// WithSpeedup compresses real travel time by the given factor, so a
// multi-hour walk renders as a watchable clip. Panics if factor <= 0.
func WithSpeedup(factor float64) Option {
	if factor <= 0 {
		panic(fmt.Sprintf("export: WithSpeedup(%v): factor must be positive", factor))
	}

	return func(o *Options) { o.speedup = factor }
}

func defaultOptions() Options {
	return Options{name: "Transit Tour", frameRate: 30, speedup: 1}
}

// Earth Studio project document. The format keys camera movement on
// normalized coordinates: latitude mapped from [-90,90] onto [0,1] and
// longitude from [-180,180] onto [0,1], keyframed in frame units.
type espDocument struct {
	Type            string      `json:"type"`
	ModelVersion    int         `json:"modelVersion"`
	Settings        espSettings `json:"settings"`
	HasStarted      bool        `json:"has_started"`
	HasFinished     bool        `json:"has_finished"`
	PlaybackManager espPlayback `json:"playbackManager"`
	Scenes          []espScene  `json:"scenes"`
}

type espSettings struct {
	Name       string        `json:"name"`
	FrameRate  float64       `json:"frameRate"`
	Dimensions espDimensions `json:"dimensions"`
	Duration   int           `json:"duration"`
	TimeFormat string        `json:"timeFormat"`
}

type espDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type espPlayback struct {
	Range espRange `json:"range"`
}

type espRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type espScene struct {
	AnimationModel espAnimationModel `json:"animationModel"`
	Duration       int               `json:"duration"`
	Attributes     []espAttribute    `json:"attributes"`
	CameraExport   espCameraExport   `json:"cameraExport"`
}

type espAnimationModel struct {
	Roving          bool `json:"roving"`
	Logarithmic     bool `json:"logarithmic"`
	GroupedPosition bool `json:"groupedPosition"`
}

type espCameraExport struct {
	Logarithmic  bool `json:"logarithmic"`
	ModelVersion int  `json:"modelVersion"`
}

// espAttribute is one node of the heterogeneous attribute tree: groups
// carry children, leaves carry a value and keyframes.
type espAttribute struct {
	Type       string         `json:"type"`
	InTimeline bool           `json:"inTimeline,omitempty"`
	Value      map[string]any `json:"value,omitempty"`
	Keyframes  []espKeyframe  `json:"keyframes,omitempty"`
	Attributes []espAttribute `json:"attributes,omitempty"`
}

type espKeyframe struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// waypoint is one camera stop in normalized coordinates.
type waypoint struct {
	lat, lon float64 // normalized to [0,1]
	seconds  float64 // playback-time offset
}

// EarthStudio encodes the itinerary as a Google Earth Studio project:
// the camera position and its point-of-interest target follow the walk,
// one keyframe per visited stop at its (speedup-compressed) arrival
// offset. Altitude is pinned to a single mid-range keyframe; Earth
// Studio interpolates the rest.
func EarthStudio(n *network.Network, it itinerary.Itinerary, opts ...Option) ([]byte, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(it.Stops) == 0 {
		return nil, ErrEmptyItinerary
	}

	route := make([]waypoint, 0, len(it.Stops))
	var durationSeconds float64
	for _, stop := range it.Stops {
		s, ok := n.Station(stop.StationID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStation, stop.StationID)
		}
		wp := waypoint{
			lat:     (s.Lat + 90) / 180,
			lon:     (s.Lon + 180) / 360,
			seconds: float64(stop.Offset) / cfg.speedup,
		}
		route = append(route, wp)
		if wp.seconds > durationSeconds {
			durationSeconds = wp.seconds
		}
	}
	durationFrames := int(durationSeconds*cfg.frameRate + 0.5)

	doc := espDocument{
		Type:         "quickstart",
		ModelVersion: 18,
		Settings: espSettings{
			Name:       cfg.name,
			FrameRate:  cfg.frameRate,
			Dimensions: espDimensions{Width: 1920, Height: 1080},
			Duration:   durationFrames,
			TimeFormat: "frames",
		},
		HasStarted:      true,
		HasFinished:     true,
		PlaybackManager: espPlayback{Range: espRange{Start: 0, End: durationFrames}},
		Scenes: []espScene{{
			AnimationModel: espAnimationModel{Logarithmic: true, GroupedPosition: true},
			Duration:       durationFrames,
			Attributes: []espAttribute{{
				Type:       "cameraGroup",
				InTimeline: true,
				Attributes: []espAttribute{
					positionGroup("cameraPositionGroup", "position", "", route, cfg.frameRate),
					positionGroup("cameraTargetEffect", "poi", "POI", route, cfg.frameRate),
				},
			}},
			CameraExport: espCameraExport{Logarithmic: true, ModelVersion: 2},
		}},
	}

	return json.MarshalIndent(doc, "", "  ")
}

// positionGroup builds one animated camera group: keyframed longitude
// and latitude tracks plus the pinned altitude track. The POI group
// reuses the same shape with suffixed attribute names.
func positionGroup(group, attrType, suffix string, route []waypoint, fps float64) espAttribute {
	lonFrames := make([]espKeyframe, len(route))
	latFrames := make([]espKeyframe, len(route))
	for i, wp := range route {
		lonFrames[i] = espKeyframe{Time: wp.seconds * fps, Value: wp.lon}
		latFrames[i] = espKeyframe{Time: wp.seconds * fps, Value: wp.lat}
	}

	return espAttribute{
		Type:       group,
		InTimeline: true,
		Attributes: []espAttribute{{
			Type:       attrType,
			InTimeline: true,
			Attributes: []espAttribute{
				{
					Type:       "longitude" + suffix,
					InTimeline: true,
					Value:      map[string]any{"relative": route[0].lon},
					Keyframes:  lonFrames,
				},
				{
					Type:       "latitude" + suffix,
					InTimeline: true,
					Value:      map[string]any{"relative": route[0].lat},
					Keyframes:  latFrames,
				},
				{
					Type:       "altitude" + suffix,
					InTimeline: true,
					Value: map[string]any{
						"maxValueRange": 65117481,
						"minValueRange": -500,
						"relative":      0.5,
						"logarithmic":   true,
					},
					Keyframes: []espKeyframe{{Time: 0, Value: 0.5}},
				},
			},
		}},
	}
}
