package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routeview/internal/geo"
)

func TestBoundsOf(t *testing.T) {
	_, err := geo.BoundsOf(nil)
	require.ErrorIs(t, err, geo.ErrEmptyInput)

	box, err := geo.BoundsOf([]geo.LatLon{{Lat: 10, Lon: 10}})
	require.NoError(t, err)
	assert.Equal(t, box.SouthWest, box.NorthEast)

	box, err = geo.BoundsOf([]geo.LatLon{{Lat: 20, Lon: -5}, {Lat: -3, Lon: 30}, {Lat: 4, Lon: 1}})
	require.NoError(t, err)
	assert.Equal(t, geo.LatLon{Lat: -3, Lon: -5}, box.SouthWest)
	assert.Equal(t, geo.LatLon{Lat: 20, Lon: 30}, box.NorthEast)
}

func TestBoundingBox(t *testing.T) {
	box := geo.BoundingBox{
		SouthWest: geo.LatLon{Lat: 0, Lon: 0},
		NorthEast: geo.LatLon{Lat: 10, Lon: 20},
	}

	assert.True(t, box.Contains(geo.LatLon{Lat: 10, Lon: 0}), "edges are inside")
	assert.False(t, box.Contains(geo.LatLon{Lat: 11, Lon: 5}))
	assert.Equal(t, geo.LatLon{Lat: 5, Lon: 10}, box.Center())

	other := geo.BoundingBox{
		SouthWest: geo.LatLon{Lat: 5, Lon: 15},
		NorthEast: geo.LatLon{Lat: 30, Lon: 40},
	}
	assert.True(t, box.Intersects(other))

	far := geo.BoundingBox{
		SouthWest: geo.LatLon{Lat: 50, Lon: 50},
		NorthEast: geo.LatLon{Lat: 60, Lon: 60},
	}
	assert.False(t, box.Intersects(far))

	assert.Equal(t, box, geo.FromBound(box.Bound()))
}

func TestPoint(t *testing.T) {
	p := geo.Point{X: 3.5, Y: -0.25}

	assert.Equal(t, geo.Point{X: 4.5, Y: 1.75}, p.Add(geo.Point{X: 1, Y: 2}))
	x, y := p.Cell()
	assert.Equal(t, 3, x)
	assert.Equal(t, -1, y)
}
