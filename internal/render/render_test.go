package render_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routeview/internal/geo"
	"routeview/internal/render"
)

func row(c *render.Canvas, y int) string {
	out := make([]rune, c.Width())
	for x := range out {
		out[x] = c.Get(x, y).Char
	}
	return string(out)
}

func TestCanvas_DrawLine(t *testing.T) {
	c := render.NewCanvas(10, 5)

	c.DrawLine(geo.Point{X: 0, Y: 2}, geo.Point{X: 9, Y: 2}, '-', tcell.StyleDefault)
	assert.Equal(t, "----------", row(c, 2))

	c.Clear()
	c.DrawLine(geo.Point{X: 0, Y: 0}, geo.Point{X: 4, Y: 4}, '\\', tcell.StyleDefault)
	for i := range 5 {
		assert.Equal(t, '\\', c.Get(i, i).Char)
	}
}

func TestCanvas_DrawLineClipsFarEndpoints(t *testing.T) {
	c := render.NewCanvas(10, 5)

	c.DrawLine(geo.Point{X: -1e9, Y: 2}, geo.Point{X: 1e9, Y: 2}, '=', tcell.StyleDefault)
	assert.Equal(t, "==========", row(c, 2))

	c.Clear()
	c.DrawLine(geo.Point{X: -50, Y: -50}, geo.Point{X: -10, Y: 30}, '=', tcell.StyleDefault)
	for y := range 5 {
		assert.Equal(t, "          ", row(c, y))
	}
}

func TestCanvas_OutOfRangeIsIgnored(t *testing.T) {
	c := render.NewCanvas(3, 1)
	c.Set(-1, 0, 'x', tcell.StyleDefault)
	c.Set(3, 0, 'x', tcell.StyleDefault)
	c.DrawText(1, 0, "abc", tcell.StyleDefault)

	assert.Equal(t, " ab", row(c, 0))
	assert.Equal(t, ' ', c.Get(5, 5).Char)
}

func TestSprite(t *testing.T) {
	s := render.NewSprite([]string{"ab ", "cde"}, tcell.StyleDefault)
	c := render.NewCanvas(6, 4)

	s.Draw(c)
	assert.Equal(t, "      ", row(c, 0), "never applied")

	assert.Equal(t, geo.Point{X: -1, Y: -1}, s.Offset())

	s.Apply(geo.Point{X: 2, Y: 1}.Add(s.Offset()))
	s.Draw(c)
	assert.Equal(t, " ab   ", row(c, 0))
	assert.Equal(t, " cde  ", row(c, 1))

	pos, ok := s.Position()
	require.True(t, ok)
	assert.Equal(t, geo.Point{X: 1, Y: 0}, pos)
}

func TestMarkerSet(t *testing.T) {
	m := render.NewMarkerSet([]render.Marker{
		{Glyph: 'A', Label: "Depot", Feed: true},
		{Glyph: 'B'},
	})
	c := render.NewCanvas(12, 3)

	m.Draw(c)
	assert.Equal(t, "            ", row(c, 0))

	m.Apply([]geo.Point{{X: 0, Y: 0}, {X: 3, Y: 2}})
	m.Draw(c)
	assert.Equal(t, "A Depot |   ", row(c, 0))
	assert.Equal(t, 'B', c.Get(3, 2).Char)

	m.Tick()
	m.Draw(c)
	assert.Equal(t, "A Depot /   ", row(c, 0))

	m.Select(1)
	m.Draw(c)
	assert.Equal(t, render.StyleSelected, c.Get(3, 2).Style)
	m.Select(7)
	m.Draw(c)
	assert.Equal(t, render.StyleMarker, c.Get(3, 2).Style)

	p, ok := m.Position(1)
	require.True(t, ok)
	assert.Equal(t, geo.Point{X: 3, Y: 2}, p)
	_, ok = m.Position(2)
	assert.False(t, ok)
}

func TestPath(t *testing.T) {
	p := render.NewPath('*', render.StyleRoute)
	c := render.NewCanvas(5, 3)

	p.Draw(c)
	assert.Equal(t, "     ", row(c, 0))

	p.Apply([]geo.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}})
	p.Draw(c)
	assert.Equal(t, "*****", row(c, 0))
	assert.Equal(t, "    *", row(c, 1))
	assert.Equal(t, "    *", row(c, 2))
}

func TestMapRenderer(t *testing.T) {
	london := geo.NewPointFeature(geo.FeatureCity, geo.LatLon{Lat: 51.5, Lon: -0.1}, "London")
	river := geo.NewLineFeature(geo.FeatureRiver, []geo.LatLon{{Lat: 51.5, Lon: -10}, {Lat: 51.5, Lon: 10}})
	paris := geo.NewPointFeature(geo.FeatureCity, geo.LatLon{Lat: 48.85, Lon: 2.35}, "Paris")

	idx := geo.NewFeatureIndex(map[geo.FeatureType][]*geo.Feature{
		geo.FeatureCity:  {london, paris},
		geo.FeatureRiver: {river},
	})
	view := geo.NewView(geo.LatLon{Lat: 51.5, Lon: -0.1}, 10, 40, 11, 2)
	c := render.NewCanvas(40, 11)
	m := render.NewMapRenderer(idx, c, nil)

	m.RenderMap(view)

	x, y := view.Project(*london.Point).Cell()
	assert.Equal(t, '●', c.Get(x, y).Char)
	assert.Equal(t, "London", string([]rune(row(c, y))[x+1:x+7]))
	assert.Equal(t, '~', c.Get(0, y).Char, "river crosses the whole view")
}
