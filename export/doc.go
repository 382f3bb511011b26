// Package export renders a computed itinerary into interchange formats:
// a GeoJSON FeatureCollection for maps, and a Google Earth Studio
// project document (.esp) that flies a camera along the walk.
//
// Exporters are pure: they read the validated network and the expanded
// itinerary and return the encoded document, touching no global state.
package export
