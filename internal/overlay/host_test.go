package overlay_test

import (
	"sync"

	"routeview/internal/geo"
	"routeview/internal/overlay"
)

// fakeView projects by scaling lon/lat; two views with different scales
// give different positions for the same anchor.
type fakeView struct {
	version uint64
	scale   float64
}

func (v *fakeView) Version() uint64 { return v.version }

// fakeHost is a map with a controllable view and event stream
type fakeHost struct {
	mu        sync.Mutex
	ready     bool
	views     []*fakeView // handed out in order by View, the last one sticks
	listeners map[int]func(overlay.Event)
	nextID    int
	fits      []fitCall
	projects  int
	panicOn   *geo.LatLon
	rejectOn  *geo.LatLon
}

type fitCall struct {
	box     geo.BoundingBox
	padding geo.Point
}

func newFakeHost(views ...*fakeView) *fakeHost {
	if len(views) == 0 {
		views = []*fakeView{{version: 1, scale: 1}}
	}
	return &fakeHost{views: views, listeners: make(map[int]func(overlay.Event))}
}

func (h *fakeHost) View() (overlay.ViewState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.ready {
		return nil, false
	}
	v := h.views[0]
	if len(h.views) > 1 {
		h.views = h.views[1:]
	}
	return v, true
}

func (h *fakeHost) Project(c geo.LatLon, v overlay.ViewState) (geo.Point, bool) {
	h.mu.Lock()
	h.projects++
	panicOn, rejectOn := h.panicOn, h.rejectOn
	h.mu.Unlock()

	if panicOn != nil && *panicOn == c {
		panic("projection blew up")
	}
	if rejectOn != nil && *rejectOn == c {
		return geo.Point{}, false
	}

	fv, ok := v.(*fakeView)
	if !ok {
		return geo.Point{}, false
	}
	return project(c, fv), true
}

func (h *fakeHost) FitBounds(box geo.BoundingBox, padding geo.Point) {
	h.mu.Lock()
	h.fits = append(h.fits, fitCall{box: box, padding: padding})
	h.mu.Unlock()
	h.emit(overlay.EventMove)
	h.emit(overlay.EventZoom)
}

func (h *fakeHost) On(fn func(overlay.Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

func (h *fakeHost) setReady() {
	h.mu.Lock()
	h.ready = true
	h.mu.Unlock()
	h.emit(overlay.EventReady)
}

func (h *fakeHost) setViews(views ...*fakeView) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.views = views
}

func (h *fakeHost) emit(e overlay.Event) {
	h.mu.Lock()
	fns := make([]func(overlay.Event), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

func (h *fakeHost) listenerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

func project(c geo.LatLon, v *fakeView) geo.Point {
	return geo.Point{X: c.Lon * v.scale, Y: c.Lat * v.scale}
}

// recorder collects every apply call of one binding
type recorder struct {
	mu    sync.Mutex
	calls [][]geo.Point
}

func (r *recorder) apply(points []geo.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, points)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recorder) lastCall() []geo.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}
