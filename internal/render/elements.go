package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"routeview/internal/geo"
)

// Overlay elements are positioned only through their Apply methods, which
// the overlay layer calls with container points. An element that was never
// applied is not drawn.

// TruckArt is the model drawn at the delivery position
var TruckArt = []string{
	` ____[]_  `,
	`|  __ |_\_`,
	`'-(o)---(o)`,
}

// Sprite is multi-line glyph art whose top-left cell follows the applied
// point
type Sprite struct {
	art    []string
	style  tcell.Style
	width  int
	pos    geo.Point
	placed bool
}

// NewSprite creates a sprite from lines of art
func NewSprite(art []string, style tcell.Style) *Sprite {
	width := 0
	for _, line := range art {
		width = max(width, len([]rune(line)))
	}
	return &Sprite{art: art, style: style, width: width}
}

// Offset shifts the anchor so the art is centered on it
func (s *Sprite) Offset() geo.Point {
	return geo.Point{X: -float64(s.width / 2), Y: -float64(len(s.art) / 2)}
}

// Apply moves the sprite
func (s *Sprite) Apply(p geo.Point) {
	s.pos = p
	s.placed = true
}

// Position returns the last applied point
func (s *Sprite) Position() (geo.Point, bool) {
	return s.pos, s.placed
}

// Draw renders the sprite; spaces are transparent
func (s *Sprite) Draw(c *Canvas) {
	if !s.placed {
		return
	}
	x0, y0 := s.pos.Cell()
	for dy, line := range s.art {
		dx := 0
		for _, ch := range line {
			if ch != ' ' {
				c.Set(x0+dx, y0+dy, ch, s.style)
			}
			dx++
		}
	}
}

// Marker is one waypoint glyph with its label
type Marker struct {
	Glyph rune
	Label string
	Feed  bool // shows the feed frame indicator
}

var feedFrames = []rune{'|', '/', '-', '\\'}

// MarkerSet draws one marker per applied point, in marker order
type MarkerSet struct {
	markers  []Marker
	points   []geo.Point
	placed   bool
	frame    int
	selected int
}

// NewMarkerSet creates a marker set; no marker is selected
func NewMarkerSet(markers []Marker) *MarkerSet {
	return &MarkerSet{markers: markers, selected: -1}
}

// Apply moves every marker at once
func (m *MarkerSet) Apply(points []geo.Point) {
	m.points = append(m.points[:0], points...)
	m.placed = true
}

// Tick advances the feed frame indicator
func (m *MarkerSet) Tick() {
	m.frame = (m.frame + 1) % len(feedFrames)
}

// Select highlights marker i; out of range clears the selection
func (m *MarkerSet) Select(i int) {
	if i < 0 || i >= len(m.markers) {
		i = -1
	}
	m.selected = i
}

// Position returns the last applied point of marker i
func (m *MarkerSet) Position(i int) (geo.Point, bool) {
	if !m.placed || i < 0 || i >= len(m.points) {
		return geo.Point{}, false
	}
	return m.points[i], true
}

// Draw renders markers with labels to the right of the glyph
func (m *MarkerSet) Draw(c *Canvas) {
	if !m.placed {
		return
	}
	for i, p := range m.points {
		if i >= len(m.markers) {
			break
		}
		mk := m.markers[i]
		style := StyleMarker
		if i == m.selected {
			style = StyleSelected
		}

		x, y := p.Cell()
		c.Set(x, y, mk.Glyph, style)

		label := mk.Label
		if mk.Feed {
			label = strings.TrimSpace(label + " " + string(feedFrames[m.frame]))
		}
		if label != "" {
			c.DrawText(x+2, y, label, StyleLabel)
		}
	}
}

// Path is a polyline through the applied points
type Path struct {
	char   rune
	style  tcell.Style
	points []geo.Point
	placed bool
}

// NewPath creates an empty path
func NewPath(char rune, style tcell.Style) *Path {
	return &Path{char: char, style: style}
}

// Apply replaces the path's points
func (p *Path) Apply(points []geo.Point) {
	p.points = append(p.points[:0], points...)
	p.placed = true
}

// Draw renders the path as connected segments
func (p *Path) Draw(c *Canvas) {
	if !p.placed {
		return
	}
	c.DrawPolyline(p.points, p.char, p.style)
}
