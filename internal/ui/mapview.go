package ui

import (
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"routeview/internal/geo"
	"routeview/internal/overlay"
	"routeview/internal/render"
)

// Drawable is an overlay element drawn on top of the base map
type Drawable interface {
	Draw(c *render.Canvas)
}

type listener struct {
	id int
	fn func(overlay.Event)
}

// MapView displays the base map and is the host overlays are pinned to.
// Every view change swaps in a new immutable geo.View and emits the
// matching overlay event.
type MapView struct {
	mu        sync.Mutex
	view      *geo.View
	ready     bool
	disposed  bool
	listeners []listener
	nextID    int

	renderer *render.MapRenderer
	canvas   *render.Canvas
	log      *slog.Logger
}

// NewMapView creates a map view; it is not ready until SetReady
func NewMapView(view *geo.View, index *geo.FeatureIndex, log *slog.Logger) *MapView {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	width, height := view.Size()
	canvas := render.NewCanvas(width, height)

	return &MapView{
		view:     view,
		renderer: render.NewMapRenderer(index, canvas, log),
		canvas:   canvas,
		log:      log,
	}
}

// View returns the current view once the map is ready
func (m *MapView) View() (overlay.ViewState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready || m.disposed {
		return nil, false
	}
	return m.view, true
}

// Project converts c to container cells under the given view
func (m *MapView) Project(c geo.LatLon, v overlay.ViewState) (geo.Point, bool) {
	view, ok := v.(*geo.View)
	if !ok || view == nil {
		return geo.Point{}, false
	}
	m.mu.Lock()
	disposed := m.disposed
	m.mu.Unlock()
	if disposed {
		return geo.Point{}, false
	}
	return view.Project(c), true
}

// FitBounds frames box with padding cells kept clear on every side
func (m *MapView) FitBounds(box geo.BoundingBox, padding geo.Point) {
	fitted := m.update(func(v *geo.View) *geo.View { return v.Fit(box, padding) })
	if fitted != nil {
		m.log.Debug("map fitted", "box_sw", box.SouthWest, "box_ne", box.NorthEast, "zoom", fitted.Zoom())
	}
	m.emit(overlay.EventMove, overlay.EventZoom)
}

// On registers fn for view events
func (m *MapView) On(fn func(overlay.Event)) (off func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return func() {}
	}
	id := m.nextID
	m.nextID++
	m.listeners = append(m.listeners, listener{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetReady marks the map as initialized; only the first call emits
func (m *MapView) SetReady() {
	m.mu.Lock()
	if m.ready || m.disposed {
		m.mu.Unlock()
		return
	}
	m.ready = true
	m.mu.Unlock()

	m.log.Debug("map ready")
	m.emit(overlay.EventReady)
}

// Dispose tears the map down; View and Project report unavailable after
func (m *MapView) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposed = true
	m.listeners = nil
}

// Pan moves the view by dx, dy cells
func (m *MapView) Pan(dx, dy int) {
	m.update(func(v *geo.View) *geo.View { return v.PanBy(float64(dx), float64(dy)) })
	m.emit(overlay.EventMove)
}

// SetCenter re-centers the view
func (m *MapView) SetCenter(ll geo.LatLon) {
	m.update(func(v *geo.View) *geo.View { return v.WithCenter(ll) })
	m.log.Debug("map re-centered", "center", ll)
	m.emit(overlay.EventMove)
}

// ZoomIn zooms in one step
func (m *MapView) ZoomIn() {
	m.SetZoom(m.Current().Zoom() + 1)
}

// ZoomOut zooms out one step
func (m *MapView) ZoomOut() {
	m.SetZoom(m.Current().Zoom() - 1)
}

// SetZoom changes the zoom around the current center
func (m *MapView) SetZoom(zoom float64) {
	v := m.update(func(v *geo.View) *geo.View { return v.WithZoom(zoom) })
	if v != nil {
		m.log.Debug("map zoom changed", "zoom", v.Zoom())
	}
	m.emit(overlay.EventZoom)
}

// Resize updates the view dimensions when the screen is resized
func (m *MapView) Resize(width, height int) {
	m.update(func(v *geo.View) *geo.View { return v.WithSize(width, height) })

	m.mu.Lock()
	m.canvas = render.NewCanvas(width, height)
	m.renderer.UpdateCanvas(m.canvas)
	m.mu.Unlock()

	m.emit(overlay.EventResize)
}

// Current returns the current view regardless of readiness
func (m *MapView) Current() *geo.View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// Draw renders the base map and then the overlay elements
func (m *MapView) Draw(screen tcell.Screen, elements ...Drawable) {
	m.mu.Lock()
	canvas, view := m.canvas, m.view
	m.mu.Unlock()

	canvas.Clear()
	m.renderer.RenderMap(view)
	for _, e := range elements {
		e.Draw(canvas)
	}
	canvas.Blit(screen, 0, 0)
}

// update swaps in the view derived by fn. It returns nil once disposed.
func (m *MapView) update(fn func(*geo.View) *geo.View) *geo.View {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return nil
	}
	m.view = fn(m.view)
	return m.view
}

// emit delivers events to the listeners registered at call time. Listeners
// run without the lock held.
func (m *MapView) emit(events ...overlay.Event) {
	m.mu.Lock()
	if !m.ready || m.disposed {
		m.mu.Unlock()
		return
	}
	listeners := append([]listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, e := range events {
		for _, l := range listeners {
			l.fn(e)
		}
	}
}
