package route_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"routeview/internal/geo"
	"routeview/internal/metrics"
	"routeview/internal/route"
)

type directionsClient struct {
	mock.Mock
}

func (m *directionsClient) Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	args := m.Called(ctx, r)
	routes, _ := args.Get(0).([]maps.Route)
	return routes, nil, args.Error(1)
}

var stops = []geo.LatLon{
	{Lat: 51.505, Lon: -0.09},
	{Lat: 51.51, Lon: -0.12},
	{Lat: 51.5, Lon: -0.1},
}

func TestGoogleProvider_Route(t *testing.T) {
	ctx := t.Context()
	wantReq := &maps.DirectionsRequest{
		Origin:      "51.505,-0.09",
		Destination: "51.5,-0.1",
		Waypoints:   []string{"51.51,-0.12"},
		Mode:        maps.TravelModeDriving,
	}

	t.Run("api returns error", func(t *testing.T) {
		client := &directionsClient{}
		provider := route.NewGoogleProvider(client, nil, nil)
		client.On("Directions", ctx, wantReq).Return(nil, assert.AnError).Once()

		_, err := provider.Route(ctx, stops)

		require.ErrorIs(t, err, assert.AnError)
		client.AssertExpectations(t)
	})

	t.Run("api returns no routes", func(t *testing.T) {
		client := &directionsClient{}
		provider := route.NewGoogleProvider(client, nil, nil)
		client.On("Directions", ctx, wantReq).Return([]maps.Route{}, nil).Once()

		_, err := provider.Route(ctx, stops)

		require.ErrorIs(t, err, route.ErrNoRoute)
		client.AssertExpectations(t)
	})

	t.Run("overview polyline is decoded", func(t *testing.T) {
		client := &directionsClient{}
		m := metrics.Nop()
		provider := route.NewGoogleProvider(client, nil, m)

		road := []maps.LatLng{{Lat: 51.505, Lng: -0.09}, {Lat: 51.507, Lng: -0.11}, {Lat: 51.5, Lng: -0.1}}
		reply := []maps.Route{{OverviewPolyline: maps.Polyline{Points: maps.Encode(road)}}}
		client.On("Directions", ctx, wantReq).Return(reply, nil).Once()

		path, err := provider.Route(ctx, stops)

		require.NoError(t, err)
		require.Len(t, path, len(road))
		for i, p := range road {
			assert.InDelta(t, p.Lat, path[i].Lat, 1e-4)
			assert.InDelta(t, p.Lng, path[i].Lon, 1e-4)
		}
		assert.Equal(t, 1, testutil.CollectAndCount(m.RouteRequestTime))
		client.AssertExpectations(t)
	})

	t.Run("too few waypoints never calls the api", func(t *testing.T) {
		client := &directionsClient{}
		provider := route.NewGoogleProvider(client, nil, nil)

		_, err := provider.Route(ctx, stops[:1])

		require.ErrorIs(t, err, route.ErrTooFewWaypoints)
		client.AssertNotCalled(t, "Directions", mock.Anything, mock.Anything)
	})
}
