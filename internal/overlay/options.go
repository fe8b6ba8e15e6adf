package overlay

import (
	"log/slog"

	"routeview/internal/metrics"
)

type options struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the overlay components
type Option func(*options)

// WithLogger sets the logger used for skipped bindings and recovered panics
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMetrics sets where pass, signal and fit counters are recorded
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}
	if o.metrics == nil {
		o.metrics = metrics.Nop()
	}
	return o
}
