package overlay

import (
	"log/slog"
	"sync"

	"routeview/internal/metrics"
)

// EventBus turns the host's raw ready/move/zoom/resize events into a single
// view-changed signal.
//
// Raw events only mark the bus pending. The frame loop calls Flush once per
// rendering frame, so a burst of drag events between two frames costs one
// projection pass. Nothing is delivered before the host reports ready;
// events seen earlier are kept and delivered by the first flush after it.
type EventBus struct {
	mu      sync.Mutex
	subs    []*subscription
	pending bool
	ready   bool
	closed  bool
	off     func()

	log     *slog.Logger
	metrics *metrics.Metrics
}

type subscription struct {
	fn     func()
	active bool
}

// NewEventBus creates a bus listening to host events
func NewEventBus(host Host, opts ...Option) *EventBus {
	o := newOptions(opts)
	b := &EventBus{log: o.log, metrics: o.metrics}
	b.off = host.On(b.notify)
	return b
}

// Subscribe registers fn for view-changed signals. Handlers get no payload
// and should read the current view themselves. The returned function
// removes the handler; calling it more than once is harmless.
func (b *EventBus) Subscribe(fn func()) (unsubscribe func()) {
	s := &subscription{fn: fn, active: true}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return func() {}
	}
	b.subs = append(b.subs, s)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if !s.active {
			return
		}
		s.active = false
		for i, other := range b.subs {
			if other == s {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				break
			}
		}
	}
}

// Flush delivers one signal if any raw event arrived since the last
// delivered signal and the host is ready. It reports whether a signal fired.
func (b *EventBus) Flush() bool {
	b.mu.Lock()
	if b.closed || !b.ready || !b.pending {
		b.mu.Unlock()
		return false
	}
	b.pending = false
	subs := make([]*subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	b.metrics.Signals.Inc()
	for _, s := range subs {
		if b.isActive(s) {
			s.fn()
		}
	}
	return true
}

// Pending reports whether the next Flush would fire
func (b *EventBus) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed && b.ready && b.pending
}

// Close detaches the bus from the host and drops all handlers
func (b *EventBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, s := range b.subs {
		s.active = false
	}
	b.subs = nil
	off := b.off
	b.mu.Unlock()

	if off != nil {
		off()
	}
}

func (b *EventBus) notify(e Event) {
	b.metrics.ViewEvents.WithLabelValues(e.String()).Inc()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	if e == EventReady && !b.ready {
		b.ready = true
		b.log.Debug("map ready")
	}
	b.pending = true
}

func (b *EventBus) isActive(s *subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return s.active
}
