package googlemaps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emergency-microservice/internal/config"
	"github.com/emergency-microservice/internal/domain"
	"github.com/emergency-microservice/internal/pkg/errors"
	"github.com/emergency-microservice/internal/repository/cache"
)

func newTestClient(t *testing.T, baseURL string, maxRetries int) *client {
	t.Helper()

	cfg := &config.GoogleConfig{
		APIKey:         "test_key",
		BaseURL:        baseURL,
		RequestTimeout: 5,
		SearchRadius:   5000,
		MaxRetries:     maxRetries,
	}

	cacheRepo := cache.NewMemoryCacheRepository(zap.NewNop())
	c := NewGoogleMapsClient(cfg, cacheRepo, 600*time.Second, zap.NewNop())
	return c.(*client)
}

func TestClient_Geocode(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(t, "/geocode/json", r.URL.Path)
			assert.Equal(t, "221B Baker St", r.URL.Query().Get("address"))

			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "OK",
				"results": []map[string]interface{}{
					{"geometry": map[string]interface{}{
						"location": map[string]float64{"lat": 51.5237, "lng": -0.1585},
					}},
				},
			})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)

		loc, err := c.Geocode(context.Background(), "221B Baker St")
		require.NoError(t, err)
		assert.Equal(t, 51.5237, loc.Lat)
		assert.Equal(t, -0.1585, loc.Lng)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("second call served from cache", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "OK",
				"results": []map[string]interface{}{
					{"geometry": map[string]interface{}{
						"location": map[string]float64{"lat": 51.5237, "lng": -0.1585},
					}},
				},
			})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)
		ctx := context.Background()

		first, err := c.Geocode(ctx, "221B Baker St")
		require.NoError(t, err)

		second, err := c.Geocode(ctx, "221B Baker St")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call must not hit the provider")
	})

	t.Run("non-OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":        "REQUEST_DENIED",
				"error_message": "The provided API key is invalid.",
			})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)

		loc, err := c.Geocode(context.Background(), "221B Baker St")
		assert.Nil(t, loc)
		assert.Equal(t, errors.ErrProviderUnavailable, err)
	})

	t.Run("transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		c := newTestClient(t, server.URL, 0)

		loc, err := c.Geocode(context.Background(), "221B Baker St")
		assert.Nil(t, loc)
		assert.Equal(t, errors.ErrProviderUnavailable, err)
	})
}

func TestClient_FindNearbyHospitals(t *testing.T) {
	location := domain.Location{Lat: 51.5237, Lng: -0.1585}

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/place/nearbysearch/json", r.URL.Path)
			assert.Equal(t, "hospital", r.URL.Query().Get("type"))
			assert.Equal(t, "5000", r.URL.Query().Get("radius"))

			json.NewEncoder(w).Encode(placesResponse{
				Status: "OK",
				Results: []domain.PlaceResult{
					{
						PlaceID:  "abc123",
						Name:     "St Mary's Hospital",
						Vicinity: "Praed St, London",
						Geometry: domain.Geometry{Location: domain.Location{Lat: 51.5174, Lng: -0.1739}},
					},
				},
			})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)

		results, err := c.FindNearbyHospitals(context.Background(), location)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "abc123", results[0].PlaceID)
		assert.Equal(t, "St Mary's Hospital", results[0].Name)
	})

	t.Run("zero results is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(placesResponse{Status: "ZERO_RESULTS"})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)

		results, err := c.FindNearbyHospitals(context.Background(), location)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("second call served from cache", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			json.NewEncoder(w).Encode(placesResponse{
				Status: "OK",
				Results: []domain.PlaceResult{
					{PlaceID: "abc123", Name: "St Mary's Hospital"},
				},
			})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)
		ctx := context.Background()

		_, err := c.FindNearbyHospitals(ctx, location)
		require.NoError(t, err)

		results, err := c.FindNearbyHospitals(ctx, location)
		require.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("non-OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(placesResponse{Status: "OVER_QUERY_LIMIT"})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)

		results, err := c.FindNearbyHospitals(context.Background(), location)
		assert.Nil(t, results)
		assert.Equal(t, errors.ErrProviderUnavailable, err)
	})
}

func TestClient_GetDirections(t *testing.T) {
	origin := domain.Location{Lat: 51.5237, Lng: -0.1585}

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/directions/json", r.URL.Path)
			assert.Equal(t, "place_id:abc123", r.URL.Query().Get("destination"))

			json.NewEncoder(w).Encode(directionsResponse{
				Status: "OK",
				Routes: []domain.Route{
					{
						Summary: "A501",
						Legs: []domain.RouteLeg{
							{
								Distance: domain.TextValue{Text: "2.1 km", Value: 2100},
								Duration: domain.TextValue{Text: "8 mins", Value: 480},
							},
						},
					},
				},
			})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)

		route, err := c.GetDirections(context.Background(), origin, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "A501", route.Summary)
		require.Len(t, route.Legs, 1)
		assert.Equal(t, 2100, route.Legs[0].Distance.Value)
	})

	t.Run("no routes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(directionsResponse{Status: "NOT_FOUND"})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)

		route, err := c.GetDirections(context.Background(), origin, "abc123")
		assert.Nil(t, route)
		assert.Equal(t, errors.ErrProviderUnavailable, err)
	})

	t.Run("second call served from cache", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			json.NewEncoder(w).Encode(directionsResponse{
				Status: "OK",
				Routes: []domain.Route{{Summary: "A501"}},
			})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)
		ctx := context.Background()

		_, err := c.GetDirections(ctx, origin, "abc123")
		require.NoError(t, err)

		route, err := c.GetDirections(ctx, origin, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "A501", route.Summary)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestClient_Retry(t *testing.T) {
	t.Run("retries transport errors up to the limit", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "OK",
				"results": []map[string]interface{}{
					{"geometry": map[string]interface{}{
						"location": map[string]float64{"lat": 1, "lng": 2},
					}},
				},
			})
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 2)

		loc, err := c.Geocode(context.Background(), "somewhere")
		require.NoError(t, err)
		assert.Equal(t, float64(1), loc.Lat)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("no retry by default", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL, 0)

		_, err := c.Geocode(context.Background(), "somewhere")
		assert.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
