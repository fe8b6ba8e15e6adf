package render

import (
	"github.com/gdamore/tcell/v2"

	"routeview/internal/geo"
)

// Cell is one character of the canvas
type Cell struct {
	Char  rune
	Style tcell.Style
}

var blank = Cell{Char: ' ', Style: tcell.StyleDefault}

// Canvas is an off-screen grid of cells, row-major, (0,0) top-left.
// Writes outside the grid are dropped.
type Canvas struct {
	width, height int
	buf           []Cell
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: max(width, 0), height: max(height, 0)}
	c.buf = make([]Cell, c.width*c.height)
	c.Clear()
	return c
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// Set writes one cell
func (c *Canvas) Set(x, y int, char rune, style tcell.Style) {
	if c.inside(x, y) {
		c.buf[y*c.width+x] = Cell{Char: char, Style: style}
	}
}

// Get returns the cell at x,y, or a blank cell off the grid
func (c *Canvas) Get(x, y int) Cell {
	if !c.inside(x, y) {
		return blank
	}
	return c.buf[y*c.width+x]
}

// Clear blanks every cell
func (c *Canvas) Clear() {
	for i := range c.buf {
		c.buf[i] = blank
	}
}

// DrawText writes text left to right, one rune per cell
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		c.Set(x, y, r, style)
		x++
	}
}

// FillRect paints a w by h block starting at x,y
func (c *Canvas) FillRect(x, y, w, h int, char rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.Set(col, row, char, style)
		}
	}
}

// Width of the canvas in cells
func (c *Canvas) Width() int { return c.width }

// Height of the canvas in cells
func (c *Canvas) Height() int { return c.height }

// Blit copies the canvas onto screen at the given offset
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for i, cell := range c.buf {
		screen.SetContent(offsetX+i%c.width, offsetY+i/c.width, cell.Char, nil, cell.Style)
	}
}

// DrawLine draws the segment between two container points. The segment is
// clipped to the canvas (plus a one-cell margin) before rasterizing, so far
// off-screen endpoints cost nothing.
func (c *Canvas) DrawLine(p0, p1 geo.Point, char rune, style tcell.Style) {
	a, b, ok := clip(p0, p1, -1, -1, float64(c.width)+1, float64(c.height)+1)
	if !ok {
		return
	}
	x0, y0 := a.Cell()
	x1, y1 := b.Cell()
	c.line(x0, y0, x1, y1, char, style)
}

// DrawPolyline draws connected segments through points
func (c *Canvas) DrawPolyline(points []geo.Point, char rune, style tcell.Style) {
	for i := 1; i < len(points); i++ {
		c.DrawLine(points[i-1], points[i], char, style)
	}
}

// line rasterizes with integer Bresenham, endpoints included
func (c *Canvas) line(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y1-y0, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}

	x, y := x0, y0
	diff := dx - dy
	for {
		c.Set(x, y, char, style)
		if x == x1 && y == y1 {
			return
		}
		if 2*diff > -dy {
			diff -= dy
			x += sx
		}
		if 2*diff < dx {
			diff += dx
			y += sy
		}
	}
}

// clip trims p0-p1 to the rectangle with Liang-Barsky. ok is false when
// the segment misses the rectangle entirely.
func clip(p0, p1 geo.Point, xmin, ymin, xmax, ymax float64) (a, b geo.Point, ok bool) {
	lo, hi := 0.0, 1.0
	dx, dy := p1.X-p0.X, p1.Y-p0.Y

	for _, e := range [...]struct{ p, q float64 }{
		{-dx, p0.X - xmin},
		{dx, xmax - p0.X},
		{-dy, p0.Y - ymin},
		{dy, ymax - p0.Y},
	} {
		switch {
		case e.p == 0:
			if e.q < 0 {
				return a, b, false
			}
		case e.p < 0:
			lo = max(lo, e.q/e.p)
		default:
			hi = min(hi, e.q/e.p)
		}
		if lo > hi {
			return a, b, false
		}
	}

	a = geo.Point{X: p0.X + lo*dx, Y: p0.Y + lo*dy}
	b = geo.Point{X: p0.X + hi*dx, Y: p0.Y + hi*dy}
	return a, b, true
}
