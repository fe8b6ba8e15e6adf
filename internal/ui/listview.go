package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"routeview/internal/render"
	"routeview/internal/route"
)

// WaypointList displays a scrollable list of waypoints
type WaypointList struct {
	panel
	waypoints     []route.Waypoint
	selectedIndex int
	scrollOffset  int
	maxVisible    int
	focused       bool
}

// NewWaypointList creates a new waypoint list
func NewWaypointList(waypoints []route.Waypoint, x, y, width, height int) *WaypointList {
	l := &WaypointList{waypoints: waypoints}
	l.UpdateDimensions(x, y, width, height)
	return l
}

// SelectNext moves selection down
func (l *WaypointList) SelectNext() bool {
	if l.selectedIndex < len(l.waypoints)-1 {
		l.selectedIndex++
		l.adjustScroll()
		return true
	}
	return false
}

// SelectPrev moves selection up
func (l *WaypointList) SelectPrev() bool {
	if l.selectedIndex > 0 {
		l.selectedIndex--
		l.adjustScroll()
		return true
	}
	return false
}

// adjustScroll adjusts scroll offset to keep selected item visible
func (l *WaypointList) adjustScroll() {
	if l.selectedIndex >= l.scrollOffset+l.maxVisible {
		l.scrollOffset = l.selectedIndex - l.maxVisible + 1
	}

	if l.selectedIndex < l.scrollOffset {
		l.scrollOffset = l.selectedIndex
	}

	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// Selected returns the selected waypoint and its index
func (l *WaypointList) Selected() (route.Waypoint, int, bool) {
	if l.selectedIndex >= 0 && l.selectedIndex < len(l.waypoints) {
		return l.waypoints[l.selectedIndex], l.selectedIndex, true
	}
	return route.Waypoint{}, -1, false
}

// SetFocused toggles whether arrow keys go to the list
func (l *WaypointList) SetFocused(focused bool) {
	l.focused = focused
}

// Focused reports whether the list has keyboard focus
func (l *WaypointList) Focused() bool {
	return l.focused
}

// Draw renders the list view to the screen
func (l *WaypointList) Draw(screen tcell.Screen) {
	title := "Waypoints"
	if l.focused {
		title = "[Waypoints]"
	}
	l.clear(screen, title)

	visibleCount := min(l.maxVisible, len(l.waypoints)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		idx := l.scrollOffset + i
		w := l.waypoints[idx]

		style := render.StyleListItem
		if idx == l.selectedIndex && l.focused {
			style = render.StyleListSelected
		}

		x, y := l.x+1, l.y+i+1
		n := l.text(screen, x, y, fmt.Sprintf("%c %-12s %s", markerGlyph(idx), w.Name, w.Coord), style)
		for j := n; j < l.width-2; j++ {
			screen.SetContent(x+j, y, ' ', nil, style)
		}
	}

	if len(l.waypoints) > l.maxVisible {
		screen.SetContent(l.x+l.width-2, l.y, '↕', nil, render.StyleLabel)
	}
}

// UpdateDimensions updates the view dimensions
func (l *WaypointList) UpdateDimensions(x, y, width, height int) {
	l.panel = panel{x: x, y: y, width: width, height: height}
	l.maxVisible = max(height-2, 1)
	l.adjustScroll()
}

// markerGlyph labels waypoints A, B, C... on the map and in the list
func markerGlyph(i int) rune {
	return rune('A' + i%26)
}
