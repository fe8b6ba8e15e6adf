package overlay_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routeview/internal/metrics"
	"routeview/internal/overlay"
)

func TestEventBus_CoalescesBurstIntoOneSignal(t *testing.T) {
	host := newFakeHost()
	m := metrics.Nop()
	bus := overlay.NewEventBus(host, overlay.WithMetrics(m))
	signals := 0
	bus.Subscribe(func() { signals++ })

	host.setReady()
	for range 25 {
		host.emit(overlay.EventMove)
	}
	host.emit(overlay.EventZoom)
	host.emit(overlay.EventResize)

	assert.True(t, bus.Flush())
	assert.Equal(t, 1, signals)

	// nothing new, nothing fired
	assert.False(t, bus.Flush())
	assert.Equal(t, 1, signals)

	host.emit(overlay.EventMove)
	assert.True(t, bus.Flush())
	assert.Equal(t, 2, signals)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Signals), 0)
	assert.InDelta(t, 25+1, testutil.ToFloat64(m.ViewEvents.WithLabelValues("move")), 0)
}

func TestEventBus_BuffersUntilReady(t *testing.T) {
	host := newFakeHost()
	bus := overlay.NewEventBus(host)
	signals := 0
	bus.Subscribe(func() { signals++ })

	host.emit(overlay.EventResize)
	host.emit(overlay.EventMove)
	assert.False(t, bus.Pending())
	assert.False(t, bus.Flush())
	assert.Zero(t, signals)

	host.setReady()
	assert.True(t, bus.Pending())
	assert.True(t, bus.Flush())
	assert.Equal(t, 1, signals)
}

func TestEventBus_ReadyAloneFires(t *testing.T) {
	host := newFakeHost()
	bus := overlay.NewEventBus(host)
	signals := 0
	bus.Subscribe(func() { signals++ })

	host.setReady()
	require.True(t, bus.Flush())
	assert.Equal(t, 1, signals)
}

func TestEventBus_HandlersRunInSubscriptionOrder(t *testing.T) {
	host := newFakeHost()
	bus := overlay.NewEventBus(host)

	var order []int
	for i := range 3 {
		bus.Subscribe(func() { order = append(order, i) })
	}

	host.setReady()
	bus.Flush()
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestEventBus_UnsubscribeIsIdempotent(t *testing.T) {
	host := newFakeHost()
	bus := overlay.NewEventBus(host)
	signals := 0
	unsubscribe := bus.Subscribe(func() { signals++ })

	unsubscribe()
	unsubscribe()

	host.setReady()
	bus.Flush()
	assert.Zero(t, signals)
}

func TestEventBus_UnsubscribeDuringFlush(t *testing.T) {
	host := newFakeHost()
	bus := overlay.NewEventBus(host)

	second := 0
	var unsubscribeSecond func()
	bus.Subscribe(func() { unsubscribeSecond() })
	unsubscribeSecond = bus.Subscribe(func() { second++ })

	host.setReady()
	require.NotPanics(t, func() { bus.Flush() })
	assert.Zero(t, second)
}

func TestEventBus_EventDuringFlushFiresNextFrame(t *testing.T) {
	host := newFakeHost()
	bus := overlay.NewEventBus(host)

	signals := 0
	bus.Subscribe(func() {
		signals++
		if signals == 1 {
			host.emit(overlay.EventZoom)
		}
	})

	host.setReady()
	assert.True(t, bus.Flush())
	assert.True(t, bus.Pending())
	assert.True(t, bus.Flush())
	assert.Equal(t, 2, signals)
}

func TestEventBus_Close(t *testing.T) {
	host := newFakeHost()
	bus := overlay.NewEventBus(host)
	signals := 0
	unsubscribe := bus.Subscribe(func() { signals++ })
	require.Equal(t, 1, host.listenerCount())

	bus.Close()
	bus.Close()
	assert.Zero(t, host.listenerCount())

	host.setReady()
	assert.False(t, bus.Flush())
	assert.Zero(t, signals)

	// teardown order must not matter
	unsubscribe()
	late := bus.Subscribe(func() { signals++ })
	late()
}
