package geo

import (
	"fmt"
	"math"
)

// FeatureType represents the type of base-map feature
type FeatureType int

const (
	FeatureBorder FeatureType = iota
	FeatureRiver
	FeatureCoastline
	FeatureCity
)

// String returns a string representation of the feature type
func (f FeatureType) String() string {
	switch f {
	case FeatureBorder:
		return "Border"
	case FeatureRiver:
		return "River"
	case FeatureCoastline:
		return "Coastline"
	case FeatureCity:
		return "City"
	default:
		return "Unknown"
	}
}

// LatLon is a geographic coordinate in degrees. It is compared by exact value.
type LatLon struct {
	Lat float64
	Lon float64
}

// String formats the coordinate the way the detail panel shows it
func (ll LatLon) String() string {
	return fmt.Sprintf("%.5f, %.5f", ll.Lat, ll.Lon)
}

// Point is a container-relative screen coordinate in cells.
// (0, 0) is the top-left corner of the map container.
type Point struct {
	X float64
	Y float64
}

// Add returns p offset by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Cell rounds the point to the terminal cell containing it
func (p Point) Cell() (x, y int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Feature is a base-map feature: either a polyline or a labelled point
type Feature struct {
	Type   FeatureType
	Points []LatLon // Polyline/outline points (empty for point features)
	Point  *LatLon  // Single point (cities)
	Name   string
}

// NewLineFeature creates a new line/polyline feature
func NewLineFeature(ftype FeatureType, points []LatLon) *Feature {
	return &Feature{Type: ftype, Points: points}
}

// NewPointFeature creates a new labelled point feature
func NewPointFeature(ftype FeatureType, point LatLon, name string) *Feature {
	return &Feature{Type: ftype, Point: &point, Name: name}
}

// IsPoint returns true if this is a point feature
func (f *Feature) IsPoint() bool {
	return f.Point != nil
}

// IsLine returns true if this is a line/polyline feature
func (f *Feature) IsLine() bool {
	return len(f.Points) > 1
}

// Extent returns the bounding box of the feature's geometry
func (f *Feature) Extent() BoundingBox {
	if f.IsPoint() {
		return BoundingBox{SouthWest: *f.Point, NorthEast: *f.Point}
	}
	box, _ := BoundsOf(f.Points)
	return box
}
