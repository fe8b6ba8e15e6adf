package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"routeview/internal/geo"
	"routeview/internal/render"
	"routeview/internal/route"
)

// DetailView displays the selected waypoint
type DetailView struct {
	panel
	waypoint *route.Waypoint
	cell     geo.Point
	placed   bool
}

// NewDetailView creates a new detail view
func NewDetailView(x, y, width, height int) *DetailView {
	return &DetailView{panel: panel{x: x, y: y, width: width, height: height}}
}

// SetWaypoint sets the waypoint to display with the cell its marker was
// last placed at
func (d *DetailView) SetWaypoint(w *route.Waypoint, cell geo.Point, placed bool) {
	d.waypoint = w
	d.cell = cell
	d.placed = placed
}

// Draw renders the detail view to the screen
func (d *DetailView) Draw(screen tcell.Screen) {
	if d.waypoint == nil {
		d.clear(screen, "Waypoint Details")
		d.centered(screen, d.y+d.height/2, "No waypoint selected", render.StyleLabel)
		return
	}

	d.clear(screen, "Waypoint Details")

	w := d.waypoint
	feed := w.Feed
	if feed == "" {
		feed = "none"
	}
	cell := "not placed"
	if d.placed {
		x, y := d.cell.Cell()
		cell = fmt.Sprintf("%d, %d", x, y)
	}

	lines := []string{
		fmt.Sprintf("Name:      %s", w.Name),
		fmt.Sprintf("Position:  %s", w.Coord),
		fmt.Sprintf("Feed:      %s", feed),
		fmt.Sprintf("Map cell:  %s", cell),
	}

	for i, line := range lines {
		y := d.y + 1 + i
		if y >= d.y+d.height-1 {
			break
		}
		d.text(screen, d.x+2, y, line, render.StyleLabel)
	}

	d.centered(screen, d.y+d.height-1, "Press ESC to return", render.StyleLabel.Dim(true))
}

// UpdateDimensions updates the view dimensions
func (d *DetailView) UpdateDimensions(x, y, width, height int) {
	d.panel = panel{x: x, y: y, width: width, height: height}
}
