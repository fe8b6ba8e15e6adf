package overlay

import (
	"fmt"

	"routeview/internal/geo"
)

// Projector is the call boundary around the host's projection primitive.
// It never panics into the render path.
type Projector struct {
	host Host
}

// NewProjector creates a projector for host
func NewProjector(host Host) *Projector {
	return &Projector{host: host}
}

// Project converts c to container cells under view.
// It returns ErrProjectionUnavailable for a nil view, when the host
// rejects the view, or when the host primitive panics.
func (p *Projector) Project(c geo.LatLon, view ViewState) (pt geo.Point, err error) {
	if view == nil {
		return geo.Point{}, ErrProjectionUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			pt, err = geo.Point{}, fmt.Errorf("%w: host panicked: %v", ErrProjectionUnavailable, r)
		}
	}()

	pt, ok := p.host.Project(c, view)
	if !ok {
		return geo.Point{}, ErrProjectionUnavailable
	}
	return pt, nil
}

// ProjectAll projects every coordinate against the same view, shifted by
// offset. It fails on the first coordinate that cannot be projected.
func (p *Projector) ProjectAll(coords []geo.LatLon, offset geo.Point, view ViewState) ([]geo.Point, error) {
	points := make([]geo.Point, len(coords))
	for i, c := range coords {
		pt, err := p.Project(c, view)
		if err != nil {
			return nil, err
		}
		points[i] = pt.Add(offset)
	}
	return points, nil
}
