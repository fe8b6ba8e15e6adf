package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"

	"routeview/internal/geo"
	"routeview/internal/metrics"
)

// DirectionsClient is the part of the Google Maps client the provider uses.
type DirectionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// GoogleProvider follows roads between waypoints using the Directions API.
type GoogleProvider struct {
	client  DirectionsClient
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewGoogleProvider(client DirectionsClient, log *slog.Logger, m *metrics.Metrics) *GoogleProvider {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if m == nil {
		m = metrics.Nop()
	}
	return &GoogleProvider{client: client, log: log, metrics: m}
}

func newGoogleProvider(cfg Config) (*GoogleProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required for google route provider")
	}

	client, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}
	return NewGoogleProvider(client, cfg.Logger, cfg.Metrics), nil
}

// Route asks for a driving route from the first to the last waypoint via
// the ones in between and returns the decoded overview polyline.
func (gp *GoogleProvider) Route(ctx context.Context, waypoints []geo.LatLon) (path []geo.LatLon, err error) {
	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		gp.metrics.RouteRequestTime.WithLabelValues(string(ProviderTypeGoogle), status).Observe(time.Since(start).Seconds())
	}()

	req := directionsRequest(waypoints)
	gp.log.DebugContext(ctx, "requesting directions", "origin", req.Origin, "destination", req.Destination, "via", len(req.Waypoints))

	routes, _, err := gp.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get directions: %w", err)
	}
	if len(routes) == 0 {
		return nil, ErrNoRoute
	}

	points, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode route polyline: %w", err)
	}
	if len(points) == 0 {
		return nil, ErrNoRoute
	}

	path = make([]geo.LatLon, len(points))
	for i, p := range points {
		path[i] = geo.LatLon{Lat: p.Lat, Lon: p.Lng}
	}
	return path, nil
}

func directionsRequest(waypoints []geo.LatLon) *maps.DirectionsRequest {
	req := &maps.DirectionsRequest{
		Origin:      latLng(waypoints[0]),
		Destination: latLng(waypoints[len(waypoints)-1]),
		Mode:        maps.TravelModeDriving,
	}
	for _, w := range waypoints[1 : len(waypoints)-1] {
		req.Waypoints = append(req.Waypoints, latLng(w))
	}
	return req
}

func latLng(c geo.LatLon) string {
	return (&maps.LatLng{Lat: c.Lat, Lng: c.Lon}).String()
}
