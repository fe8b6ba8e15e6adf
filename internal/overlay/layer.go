package overlay

import "routeview/internal/geo"

// Layer wires an EventBus, a Registry and a Fitter to one host. It is what
// the UI talks to.
type Layer struct {
	bus         *EventBus
	registry    *Registry
	fitter      *Fitter
	unsubscribe func()
}

// NewLayer attaches a new overlay layer to host
func NewLayer(host Host, opts ...Option) *Layer {
	l := &Layer{
		bus:      NewEventBus(host, opts...),
		registry: NewRegistry(host, opts...),
		fitter:   NewFitter(host, opts...),
	}
	l.unsubscribe = l.bus.Subscribe(l.registry.OnViewChanged)
	return l
}

// Register adds or replaces an overlay binding
func (l *Layer) Register(b Binding) (Handle, error) {
	return l.registry.Register(b)
}

// Unregister removes an overlay binding
func (l *Layer) Unregister(h Handle) {
	l.registry.Unregister(h)
}

// FitToWaypoints frames coords in the view with padding cells on each side
func (l *Layer) FitToWaypoints(coords []geo.LatLon, padding geo.Point) (geo.BoundingBox, error) {
	return l.fitter.Fit(coords, padding)
}

// Frame is called once per rendering frame. It runs at most one projection
// pass and reports whether it did.
func (l *Layer) Frame() bool {
	return l.bus.Flush()
}

// Subscribe registers fn to run after overlays were repositioned
func (l *Layer) Subscribe(fn func()) (unsubscribe func()) {
	return l.bus.Subscribe(fn)
}

// Positions returns the points last applied to an overlay
func (l *Layer) Positions(h Handle) ([]geo.Point, bool) {
	return l.registry.Positions(h)
}

// Close stops reacting to view changes. Registered elements keep their
// last position.
func (l *Layer) Close() {
	l.unsubscribe()
	l.bus.Close()
}
