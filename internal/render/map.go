package render

import (
	"log/slog"

	"routeview/internal/geo"
)

// layerOrder puts cities last so their labels stay readable
var layerOrder = []geo.FeatureType{
	geo.FeatureCoastline,
	geo.FeatureRiver,
	geo.FeatureBorder,
}

// MapRenderer draws the base map for a view
type MapRenderer struct {
	index  *geo.FeatureIndex
	canvas *Canvas
	log    *slog.Logger
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(index *geo.FeatureIndex, canvas *Canvas, log *slog.Logger) *MapRenderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &MapRenderer{
		index:  index,
		canvas: canvas,
		log:    log,
	}
}

// RenderMap draws every base-map feature visible in view
func (m *MapRenderer) RenderMap(view *geo.View) {
	if m.index == nil {
		return
	}
	bounds := view.Bounds()

	for _, ftype := range layerOrder {
		for _, feature := range m.index.Query(bounds, ftype) {
			m.RenderFeature(view, feature)
		}
	}
	m.renderCities(view, m.index.Query(bounds, geo.FeatureCity))
}

// RenderFeature draws a single geographic feature
func (m *MapRenderer) RenderFeature(view *geo.View, feature *geo.Feature) {
	char, style := FeatureLook(feature.Type)

	if feature.IsPoint() {
		x, y := view.Project(*feature.Point).Cell()
		m.canvas.Set(x, y, '●', style)
		return
	}

	if feature.IsLine() {
		prev := view.Project(feature.Points[0])
		for _, ll := range feature.Points[1:] {
			next := view.Project(ll)
			m.canvas.DrawLine(prev, next, char, style)
			prev = next
		}
	}
}

// renderCities draws city dots and labels, dropping labels that would
// overwrite one already placed
func (m *MapRenderer) renderCities(view *geo.View, cities []*geo.Feature) {
	type span struct{ y, x0, x1 int }
	var placed []span

	overlaps := func(s span) bool {
		for _, p := range placed {
			if p.y == s.y && s.x0 <= p.x1+1 && p.x0 <= s.x1+1 {
				return true
			}
		}
		return false
	}

	drawn := 0
	for _, city := range cities {
		if city.Point == nil {
			continue
		}
		m.RenderFeature(view, city)
		drawn++

		if city.Name == "" {
			continue
		}
		x, y := view.Project(*city.Point).Cell()
		s := span{y: y, x0: x + 1, x1: x + len(city.Name)}
		if s.x1 >= m.canvas.Width() || overlaps(s) {
			continue
		}
		m.canvas.DrawText(s.x0, y, city.Name, StyleLabel)
		placed = append(placed, s)
	}

	m.log.Debug("rendered cities", "visible", drawn, "labelled", len(placed))
}

// UpdateCanvas updates the renderer's canvas
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
}
