package overlay

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"routeview/internal/geo"
	"routeview/internal/metrics"
)

// Handle identifies a registered binding
type Handle string

// Binding pins one visual element to one or more anchors.
//
// Apply receives one point per anchor, in anchor order, already shifted by
// Offset. It is the only way the registry touches the element, so the
// element can be drawn with anything: canvas cells, a sprite, a polyline.
type Binding struct {
	ID      string
	Anchors []geo.LatLon
	Offset  geo.Point
	Apply   func([]geo.Point)
}

// ApplyPoint adapts a callback for single-anchor bindings
func ApplyPoint(fn func(geo.Point)) func([]geo.Point) {
	return func(points []geo.Point) {
		if len(points) > 0 {
			fn(points[0])
		}
	}
}

// entry is the registry's private, never-mutated copy of a binding.
// Replacing a binding swaps the whole entry.
type entry struct {
	id      string
	anchors []geo.LatLon
	offset  geo.Point
	apply   func([]geo.Point)
}

// Registry holds the active bindings and re-projects them whenever the
// view changes.
//
// Registry state is never locked while apply callbacks run, so a callback
// may register or unregister bindings, including its own. Such changes take
// effect from the next pass: a pass works on the binding set and the view
// as they were when it started.
type Registry struct {
	host      Host
	projector *Projector

	mu      sync.Mutex
	entries map[string]*entry
	order   []string
	last    map[string][]geo.Point

	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewRegistry creates an empty registry projecting through host
func NewRegistry(host Host, opts ...Option) *Registry {
	o := newOptions(opts)
	return &Registry{
		host:      host,
		projector: NewProjector(host),
		entries:   make(map[string]*entry),
		last:      make(map[string][]geo.Point),
		log:       o.log,
		metrics:   o.metrics,
	}
}

// Register inserts b, or replaces the binding with the same id as a whole.
// The new binding is projected right away against the current view so it
// does not wait for the next view change to show up in place; if the map
// is not ready yet that projection is skipped.
func (r *Registry) Register(b Binding) (Handle, error) {
	switch {
	case b.ID == "":
		return "", ErrNoID
	case len(b.Anchors) == 0:
		return "", fmt.Errorf("register %q: %w", b.ID, ErrNoAnchors)
	case b.Apply == nil:
		return "", fmt.Errorf("register %q: %w", b.ID, ErrNoApply)
	}

	e := &entry{
		id:      b.ID,
		anchors: slices.Clone(b.Anchors),
		offset:  b.Offset,
		apply:   b.Apply,
	}

	r.mu.Lock()
	if _, exists := r.entries[e.id]; !exists {
		r.order = append(r.order, e.id)
	}
	r.entries[e.id] = e
	count := len(r.entries)
	r.mu.Unlock()

	r.metrics.ActiveBindings.Set(float64(count))
	r.log.Debug("overlay registered", "id", e.id, "anchors", len(e.anchors))

	if view, ok := r.host.View(); ok {
		r.project(e, view)
	}

	return Handle(e.id), nil
}

// Unregister removes the binding. Unknown handles are ignored.
func (r *Registry) Unregister(h Handle) {
	id := string(h)

	r.mu.Lock()
	if _, exists := r.entries[id]; !exists {
		r.mu.Unlock()
		return
	}
	delete(r.entries, id)
	delete(r.last, id)
	r.order = slices.DeleteFunc(r.order, func(other string) bool { return other == id })
	count := len(r.entries)
	r.mu.Unlock()

	r.metrics.ActiveBindings.Set(float64(count))
	r.log.Debug("overlay unregistered", "id", id)
}

// OnViewChanged re-projects every binding against one snapshot of the
// current view, in registration order.
func (r *Registry) OnViewChanged() {
	view, ok := r.host.View()
	snapshot := r.snapshot()

	if !ok {
		r.metrics.BindingsSkipped.Add(float64(len(snapshot)))
		r.log.Debug("projection pass skipped", "reason", ErrProjectionUnavailable, "bindings", len(snapshot))
		return
	}

	start := time.Now()
	for _, e := range snapshot {
		r.project(e, view)
	}
	r.metrics.Passes.Inc()
	r.metrics.PassSeconds.Observe(time.Since(start).Seconds())
}

// Positions returns the points last applied to the binding
func (r *Registry) Positions(h Handle) ([]geo.Point, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	points, ok := r.last[string(h)]
	return slices.Clone(points), ok
}

// Len returns the number of registered bindings
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) snapshot() []*entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]*entry, 0, len(r.order))
	for _, id := range r.order {
		snapshot = append(snapshot, r.entries[id])
	}
	return snapshot
}

// project positions a single binding. A binding that cannot be fully
// projected keeps its previous position.
func (r *Registry) project(e *entry, view ViewState) {
	points, err := r.projector.ProjectAll(e.anchors, e.offset, view)
	if err != nil {
		r.metrics.BindingsSkipped.Inc()
		r.log.Debug("overlay not repositioned", "id", e.id, "error", err)
		return
	}

	if !r.apply(e, points) {
		return
	}

	r.mu.Lock()
	if r.entries[e.id] == e {
		r.last[e.id] = points
	}
	r.mu.Unlock()
}

func (r *Registry) apply(e *entry, points []geo.Point) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			r.metrics.ApplyPanics.Inc()
			r.log.Error("overlay apply panicked", "id", e.id, "panic", rec)
		}
	}()

	e.apply(slices.Clone(points))
	r.metrics.BindingsApplied.Inc()
	return true
}
