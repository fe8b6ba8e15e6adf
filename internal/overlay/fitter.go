package overlay

import (
	"fmt"
	"log/slog"
	"math"

	"routeview/internal/geo"
	"routeview/internal/metrics"
)

// Fitter frames a set of coordinates in the host's view
type Fitter struct {
	host    Host
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewFitter creates a fitter driving host
func NewFitter(host Host, opts ...Option) *Fitter {
	o := newOptions(opts)
	return &Fitter{host: host, log: o.log, metrics: o.metrics}
}

// Fit computes the min/max bounding box of coords and asks the host to fit
// its view to it with padding cells clear on each side. Negative padding
// counts as zero.
//
// The box is a plain coordinate-wise reduction. A route crossing the
// antimeridian gets a box spanning the long way round the globe.
func (f *Fitter) Fit(coords []geo.LatLon, padding geo.Point) (geo.BoundingBox, error) {
	box, err := geo.BoundsOf(coords)
	if err != nil {
		f.metrics.FitRequests.WithLabelValues("empty").Inc()
		return geo.BoundingBox{}, fmt.Errorf("fit to waypoints: %w", err)
	}

	if box.NorthEast.Lon-box.SouthWest.Lon > 180 {
		f.log.Warn("waypoints span more than 180 degrees of longitude",
			"west", box.SouthWest.Lon, "east", box.NorthEast.Lon)
	}

	padding = geo.Point{X: math.Max(padding.X, 0), Y: math.Max(padding.Y, 0)}
	f.host.FitBounds(box, padding)
	f.metrics.FitRequests.WithLabelValues("ok").Inc()
	f.log.Debug("fit requested", "waypoints", len(coords),
		"south_west", box.SouthWest.String(), "north_east", box.NorthEast.String())

	return box, nil
}
