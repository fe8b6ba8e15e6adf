// Package overlay keeps screen elements pinned to geographic anchors on a
// pannable, zoomable map.
//
// The map itself is a Host: it owns the view and the projection math. The
// package listens to the host's view events, coalesces them per rendering
// frame, re-projects every registered Binding against one view snapshot and
// hands the resulting cells to the binding's Apply callback. It also frames
// a set of waypoints by asking the host to fit its view to their bounding box.
package overlay

import "routeview/internal/geo"

// Event is a raw view event emitted by the host map
type Event int

const (
	EventReady Event = iota
	EventMove
	EventZoom
	EventResize
)

// String returns a string representation of the event
func (e Event) String() string {
	switch e {
	case EventReady:
		return "ready"
	case EventMove:
		return "move"
	case EventZoom:
		return "zoom"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// ViewState is an opaque snapshot of the host's view. Overlay code never
// looks inside; it only hands it back to the host for projection.
type ViewState interface {
	Version() uint64
}

// Host is the map widget overlays are drawn on.
type Host interface {
	// View returns the current view, or false before the map is ready or
	// after it was disposed.
	View() (ViewState, bool)

	// Project converts a coordinate to container cells under view v.
	// It returns false when v cannot be projected.
	Project(c geo.LatLon, v ViewState) (geo.Point, bool)

	// FitBounds changes the view so box is visible with padding cells
	// kept clear on every side.
	FitBounds(box geo.BoundingBox, padding geo.Point)

	// On registers fn for raw view events and returns a function that
	// removes it.
	On(fn func(Event)) (off func())
}
