package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ViewEvents       *prometheus.CounterVec
	Signals          prometheus.Counter
	Passes           prometheus.Counter
	BindingsApplied  prometheus.Counter
	BindingsSkipped  prometheus.Counter
	ApplyPanics      prometheus.Counter
	ActiveBindings   prometheus.Gauge
	FitRequests      *prometheus.CounterVec
	PassSeconds      prometheus.Histogram
	RouteRequestTime *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ViewEvents: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "routeview_view_events_total",
			Help: "Raw view events received from the map, by kind.",
		}, []string{"event"}),
		Signals: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "routeview_view_signals_total",
			Help: "Coalesced view-changed signals delivered to subscribers.",
		}),
		Passes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "routeview_projection_passes_total",
			Help: "Full overlay projection passes.",
		}),
		BindingsApplied: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "routeview_bindings_applied_total",
			Help: "Overlay bindings repositioned.",
		}),
		BindingsSkipped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "routeview_bindings_skipped_total",
			Help: "Overlay bindings left in place because projection was unavailable.",
		}),
		ApplyPanics: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "routeview_apply_panics_total",
			Help: "Overlay apply callbacks that panicked.",
		}),
		ActiveBindings: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "routeview_active_bindings",
			Help: "Overlay bindings currently registered.",
		}),
		FitRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "routeview_fit_requests_total",
			Help: "Fit-to-waypoints requests, by result.",
		}, []string{"status"}),
		PassSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "routeview_projection_pass_duration_seconds",
			Help:    "Duration of a full overlay projection pass.",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}),
		RouteRequestTime: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routeview_route_request_duration_seconds",
			Help:    "Duration of route provider requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider", "status"}),
	}
}

// Nop returns metrics registered on a throwaway registry, for callers
// that do not export them.
func Nop() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
