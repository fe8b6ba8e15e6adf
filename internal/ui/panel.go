package ui

import (
	"github.com/gdamore/tcell/v2"

	"routeview/internal/render"
)

// panel is an opaque bordered box drawn over the map
type panel struct {
	x, y          int
	width, height int
}

// clear blanks the interior and draws the border with a centered title
func (p panel) clear(screen tcell.Screen, title string) {
	for row := p.y + 1; row < p.y+p.height-1; row++ {
		for col := p.x + 1; col < p.x+p.width-1; col++ {
			screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}

	p.drawBorder(screen)
	p.centered(screen, p.y, title, render.StyleLabel)
}

// text draws s from x, y, cut off at the inner right edge
func (p panel) text(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	limit := p.x + p.width - 1
	i := 0
	for _, ch := range s {
		if x+i >= limit {
			break
		}
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
	return i
}

func (p panel) centered(screen tcell.Screen, y int, s string, style tcell.Style) {
	x := p.x + (p.width-len([]rune(s)))/2
	p.text(screen, max(x, p.x+1), y, s, style)
}

func (p panel) drawBorder(screen tcell.Screen) {
	style := render.StyleLabel

	screen.SetContent(p.x, p.y, '┌', nil, style)
	screen.SetContent(p.x+p.width-1, p.y, '┐', nil, style)
	screen.SetContent(p.x, p.y+p.height-1, '└', nil, style)
	screen.SetContent(p.x+p.width-1, p.y+p.height-1, '┘', nil, style)

	for i := 1; i < p.width-1; i++ {
		screen.SetContent(p.x+i, p.y, '─', nil, style)
		screen.SetContent(p.x+i, p.y+p.height-1, '─', nil, style)
	}

	for i := 1; i < p.height-1; i++ {
		screen.SetContent(p.x, p.y+i, '│', nil, style)
		screen.SetContent(p.x+p.width-1, p.y+i, '│', nil, style)
	}
}
