package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	// TileSize is the width in cells of the whole world at zoom 0
	TileSize = 256.0

	// MaxLatitude is the latitude limit of the Web Mercator square
	MaxLatitude = 85.0511287798

	// mercatorExtent is half the Web Mercator world width in meters
	mercatorExtent = 20037508.342789244
)

// View is an immutable Web Mercator view of the map: center, zoom and
// container size. Terminal cells are taller than wide, so the vertical
// axis is compressed by the aspect ratio.
//
// Every derived view carries a larger version than its parent, which is
// what overlay code uses to tell views apart without looking inside.
type View struct {
	center   LatLon
	zoom     float64
	width    int
	height   int
	aspect   float64
	minZoom  float64
	maxZoom  float64
	zoomSnap float64
	version  uint64
}

// NewView creates a view centered on center at the given zoom.
// aspectRatio compensates for character dimensions (typically 2.0 for
// characters twice as tall as wide).
func NewView(center LatLon, zoom float64, width, height int, aspectRatio float64) *View {
	if aspectRatio <= 0 {
		aspectRatio = 1
	}

	v := &View{
		center:   clampLatLon(center),
		width:    width,
		height:   height,
		aspect:   aspectRatio,
		minZoom:  1,
		maxZoom:  18,
		zoomSnap: 1,
		version:  1,
	}
	v.zoom = v.clampZoom(zoom)
	return v
}

// WithZoomRange returns a copy limited to [minZoom, maxZoom]. Fitted zooms
// are snapped down to a multiple of snap; a snap of 0 disables snapping.
func (v *View) WithZoomRange(minZoom, maxZoom, snap float64) *View {
	n := v.derive()
	n.minZoom = minZoom
	n.maxZoom = math.Max(minZoom, maxZoom)
	n.zoomSnap = math.Max(snap, 0)
	n.zoom = n.clampZoom(n.zoom)
	return n
}

// WithCenter returns a copy centered on ll
func (v *View) WithCenter(ll LatLon) *View {
	n := v.derive()
	n.center = clampLatLon(ll)
	return n
}

// WithZoom returns a copy at the given zoom, clamped to the zoom range
func (v *View) WithZoom(zoom float64) *View {
	n := v.derive()
	n.zoom = n.clampZoom(zoom)
	return n
}

// WithSize returns a copy for a container of the given size
func (v *View) WithSize(width, height int) *View {
	n := v.derive()
	n.width = width
	n.height = height
	return n
}

// PanBy returns a copy whose center moved by dx, dy cells
func (v *View) PanBy(dx, dy float64) *View {
	c := v.Unproject(Point{X: float64(v.width)/2 + dx, Y: float64(v.height)/2 + dy})
	return v.WithCenter(c)
}

// Version identifies this view; derived views always have a larger version
func (v *View) Version() uint64 {
	return v.version
}

// Center returns the current center point
func (v *View) Center() LatLon {
	return v.center
}

// Zoom returns the current zoom level
func (v *View) Zoom() float64 {
	return v.zoom
}

// Size returns the container size in cells
func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// ZoomRange returns the minimum and maximum zoom
func (v *View) ZoomRange() (minZoom, maxZoom float64) {
	return v.minZoom, v.maxZoom
}

// Project converts lat/lon to container cells.
// Returns coordinates with (0, 0) at top-left; points off screen are not clipped.
func (v *View) Project(ll LatLon) Point {
	wx, wy := v.worldPoint(ll)
	cx, cy := v.worldPoint(v.center)

	return Point{
		X: wx - cx + float64(v.width)/2,
		Y: (wy-cy)/v.aspect + float64(v.height)/2,
	}
}

// Unproject converts container cells back to lat/lon
func (v *View) Unproject(p Point) LatLon {
	cx, cy := v.worldPoint(v.center)
	scale := v.worldSize()

	wx := p.X - float64(v.width)/2 + cx
	wy := (p.Y-float64(v.height)/2)*v.aspect + cy

	return fromNormalized(wx/scale, wy/scale)
}

// Bounds returns the geographic box visible in the container
func (v *View) Bounds() BoundingBox {
	topLeft := v.Unproject(Point{X: 0, Y: 0})
	bottomRight := v.Unproject(Point{X: float64(v.width), Y: float64(v.height)})

	return BoundingBox{
		SouthWest: LatLon{Lat: bottomRight.Lat, Lon: topLeft.Lon},
		NorthEast: LatLon{Lat: topLeft.Lat, Lon: bottomRight.Lon},
	}
}

// Contains checks if a lat/lon point would be visible in the container
func (v *View) Contains(ll LatLon) bool {
	p := v.Project(ll)
	return p.X >= 0 && p.X < float64(v.width) &&
		p.Y >= 0 && p.Y < float64(v.height)
}

// FitZoom returns the largest zoom at which box fits inside the container
// shrunk by padding on every side. padding is in cells.
func (v *View) FitZoom(box BoundingBox, padding Point) float64 {
	availW := float64(v.width) - 2*padding.X
	availH := (float64(v.height) - 2*padding.Y) * v.aspect
	if availW <= 0 || availH <= 0 {
		return v.minZoom
	}

	swX, swY := normalized(box.SouthWest)
	neX, neY := normalized(box.NorthEast)
	dx := math.Abs(neX - swX)
	dy := math.Abs(swY - neY)

	scale := math.Inf(1)
	if dx > 0 {
		scale = availW / (dx * TileSize)
	}
	if dy > 0 {
		scale = math.Min(scale, availH/(dy*TileSize))
	}
	if math.IsInf(scale, 1) {
		return v.maxZoom
	}

	zoom := math.Log2(scale)
	if v.zoomSnap > 0 {
		zoom = math.Floor(zoom/v.zoomSnap) * v.zoomSnap
	}

	return v.clampZoom(zoom)
}

// Fit returns a copy centered on box at the zoom that frames it with padding
func (v *View) Fit(box BoundingBox, padding Point) *View {
	swX, swY := normalized(box.SouthWest)
	neX, neY := normalized(box.NorthEast)

	n := v.derive()
	n.center = fromNormalized((swX+neX)/2, (swY+neY)/2)
	n.zoom = v.FitZoom(box, padding)
	return n
}

func (v *View) derive() *View {
	n := *v
	n.version++
	return &n
}

func (v *View) clampZoom(zoom float64) float64 {
	return math.Max(v.minZoom, math.Min(v.maxZoom, zoom))
}

// worldSize is the world width in cells at the current zoom
func (v *View) worldSize() float64 {
	return TileSize * math.Exp2(v.zoom)
}

// worldPoint returns the world-pixel coordinate of ll, with the y axis in
// horizontal cell units
func (v *View) worldPoint(ll LatLon) (x, y float64) {
	nx, ny := normalized(ll)
	scale := v.worldSize()
	return nx * scale, ny * scale
}

// normalized maps ll onto the unit Web Mercator square, y growing south
func normalized(ll LatLon) (x, y float64) {
	m := project.WGS84.ToMercator(orb.Point{ll.Lon, clampLat(ll.Lat)})
	return (m.X() + mercatorExtent) / (2 * mercatorExtent),
		(mercatorExtent - m.Y()) / (2 * mercatorExtent)
}

func fromNormalized(x, y float64) LatLon {
	m := orb.Point{x*2*mercatorExtent - mercatorExtent, mercatorExtent - y*2*mercatorExtent}
	p := project.Mercator.ToWGS84(m)
	return LatLon{Lat: clampLat(p.Lat()), Lon: p.Lon()}
}

func clampLat(lat float64) float64 {
	return math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
}

func clampLatLon(ll LatLon) LatLon {
	lon := ll.Lon
	if lon < -180 || lon >= 180 {
		lon = math.Mod(lon+180, 360)
		if lon < 0 {
			lon += 360
		}
		lon -= 180
	}
	return LatLon{Lat: clampLat(ll.Lat), Lon: lon}
}
