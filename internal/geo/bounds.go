package geo

import (
	"errors"

	"github.com/paulmach/orb"
)

// ErrEmptyInput is returned when a bounding box is requested for no coordinates
var ErrEmptyInput = errors.New("at least one coordinate is required")

// BoundingBox is a geographic rectangle given by its south-west and north-east corners
type BoundingBox struct {
	SouthWest LatLon
	NorthEast LatLon
}

// BoundsOf returns the coordinate-wise min/max box around coords.
//
// This is a plain reduction, not a hull. Coordinates on both sides of the
// antimeridian produce a box spanning almost the whole globe.
func BoundsOf(coords []LatLon) (BoundingBox, error) {
	if len(coords) == 0 {
		return BoundingBox{}, ErrEmptyInput
	}

	mp := make(orb.MultiPoint, len(coords))
	for i, c := range coords {
		mp[i] = orb.Point{c.Lon, c.Lat}
	}

	return FromBound(mp.Bound()), nil
}

// FromBound converts an orb bound (lon/lat order) into a BoundingBox
func FromBound(b orb.Bound) BoundingBox {
	return BoundingBox{
		SouthWest: LatLon{Lat: b.Min.Lat(), Lon: b.Min.Lon()},
		NorthEast: LatLon{Lat: b.Max.Lat(), Lon: b.Max.Lon()},
	}
}

// Bound converts the box into an orb bound
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.SouthWest.Lon, b.SouthWest.Lat},
		Max: orb.Point{b.NorthEast.Lon, b.NorthEast.Lat},
	}
}

// Contains checks if a point is within the box, edges included
func (b BoundingBox) Contains(ll LatLon) bool {
	return ll.Lat >= b.SouthWest.Lat && ll.Lat <= b.NorthEast.Lat &&
		ll.Lon >= b.SouthWest.Lon && ll.Lon <= b.NorthEast.Lon
}

// Intersects reports whether the two boxes overlap
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Bound().Intersects(o.Bound())
}

// Center returns the arithmetic center of the box
func (b BoundingBox) Center() LatLon {
	c := b.Bound().Center()
	return LatLon{Lat: c.Lat(), Lon: c.Lon()}
}
