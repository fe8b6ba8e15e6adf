package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"routeview/internal/geo"
	"routeview/internal/metrics"
)

// Provider turns an ordered list of waypoints into the polyline drawn
// between them.
type Provider interface {
	Route(ctx context.Context, waypoints []geo.LatLon) ([]geo.LatLon, error)
}

// ProviderType names a routing backend.
type ProviderType string

const (
	ProviderTypeStraight ProviderType = "straight"
	ProviderTypeGoogle   ProviderType = "google"
)

var (
	// ErrNoRoute is returned when a backend answers without any route.
	ErrNoRoute = errors.New("no route between waypoints")
	// ErrTooFewWaypoints is returned for fewer than two waypoints.
	ErrTooFewWaypoints = errors.New("route needs at least two waypoints")
)

// Config selects and configures a provider.
type Config struct {
	Type    ProviderType
	APIKey  string // Google only
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// NewProvider builds the provider named by cfg.Type. Remote providers are
// wrapped in Fallback so a failed request still yields the straight line.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop()
	}

	switch cfg.Type {
	case ProviderTypeStraight, "":
		return StraightProvider{}, nil
	case ProviderTypeGoogle:
		google, err := newGoogleProvider(cfg)
		if err != nil {
			return nil, err
		}
		return NewFallback(google, cfg.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported route provider: %q", cfg.Type)
	}
}

// StraightProvider joins the waypoints with straight segments.
type StraightProvider struct{}

func (StraightProvider) Route(_ context.Context, waypoints []geo.LatLon) ([]geo.LatLon, error) {
	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}
	return append([]geo.LatLon(nil), waypoints...), nil
}

// Fallback answers with the straight line whenever the wrapped provider
// fails.
type Fallback struct {
	primary  Provider
	straight StraightProvider
	log      *slog.Logger
}

func NewFallback(primary Provider, log *slog.Logger) *Fallback {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Fallback{primary: primary, log: log}
}

func (f *Fallback) Route(ctx context.Context, waypoints []geo.LatLon) ([]geo.LatLon, error) {
	path, err := f.primary.Route(ctx, waypoints)
	if err == nil {
		return path, nil
	}
	if errors.Is(err, ErrTooFewWaypoints) {
		return nil, err
	}
	f.log.WarnContext(ctx, "route provider failed, drawing straight line", "error", err)
	return f.straight.Route(ctx, waypoints)
}
