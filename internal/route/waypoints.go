package route

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"routeview/internal/geo"
)

// ErrNoWaypoints is returned when a waypoint file holds no point features.
var ErrNoWaypoints = errors.New("no waypoints found")

// Waypoint is a named stop on the route. Feed optionally points at the
// live video feed shown for the stop.
type Waypoint struct {
	Name  string
	Coord geo.LatLon
	Feed  string
}

// DefaultWaypoints are used when no waypoint file is given.
func DefaultWaypoints() []Waypoint {
	return []Waypoint{
		{Name: "Depot", Coord: geo.LatLon{Lat: 51.505, Lon: -0.09}},
		{Name: "Drop-off", Coord: geo.LatLon{Lat: 51.500, Lon: -0.1}},
	}
}

// LoadWaypoints reads the Point features of a GeoJSON FeatureCollection in
// file order. Other geometries are skipped.
func LoadWaypoints(path string) ([]Waypoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read waypoints: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse waypoints %s: %w", path, err)
	}

	var waypoints []Waypoint
	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		waypoints = append(waypoints, Waypoint{
			Name:  stringProp(f.Properties, "name", fmt.Sprintf("Waypoint %d", i+1)),
			Coord: geo.LatLon{Lat: p.Lat(), Lon: p.Lon()},
			Feed:  stringProp(f.Properties, "feed", ""),
		})
	}

	if len(waypoints) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoWaypoints)
	}
	return waypoints, nil
}

// stringProp is Properties.MustString without the panic on a non-string
// value.
func stringProp(props geojson.Properties, key, def string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return def
}

// Coords returns the coordinates of the waypoints in order.
func Coords(waypoints []Waypoint) []geo.LatLon {
	coords := make([]geo.LatLon, len(waypoints))
	for i, w := range waypoints {
		coords[i] = w.Coord
	}
	return coords
}
