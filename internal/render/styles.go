package render

import (
	"github.com/gdamore/tcell/v2"

	"routeview/internal/geo"
)

var base = tcell.StyleDefault

// Overlay and panel styles
var (
	StyleRoute        = base.Foreground(tcell.ColorBlue).Bold(true)
	StyleModel        = base.Foreground(tcell.ColorOrange).Bold(true)
	StyleMarker       = base.Foreground(tcell.ColorGreen).Bold(true)
	StyleSelected     = StyleMarker.Reverse(true)
	StyleLabel        = base.Foreground(tcell.ColorWhite)
	StyleListItem     = StyleLabel
	StyleListSelected = base.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StyleStatus       = base.Foreground(tcell.ColorBlack).Background(tcell.ColorDarkCyan)
)

type look struct {
	char  rune
	style tcell.Style
}

var featureLooks = map[geo.FeatureType]look{
	geo.FeatureBorder:    {'-', base.Foreground(tcell.ColorDarkGray)},
	geo.FeatureRiver:     {'~', base.Foreground(tcell.ColorDarkCyan)},
	geo.FeatureCoastline: {'.', base.Foreground(tcell.ColorDarkBlue)},
	geo.FeatureCity:      {'·', base.Foreground(tcell.ColorWhite)},
}

// FeatureLook returns the glyph and style a base-map feature is drawn with
func FeatureLook(ftype geo.FeatureType) (rune, tcell.Style) {
	if l, ok := featureLooks[ftype]; ok {
		return l.char, l.style
	}
	return '·', base
}
