package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Istanbul", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"Istanbul","latitude":41.01,"longitude":28.95}]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURLs(server.URL, server.URL))

	loc, err := client.Geocode(context.Background(), "Istanbul")
	require.NoError(t, err)
	assert.Equal(t, "Istanbul", loc.Name)
	assert.InDelta(t, 41.01, loc.Latitude, 0.001)
	assert.InDelta(t, 28.95, loc.Longitude, 0.001)
}

func TestGeocode_UnknownCity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURLs(server.URL, server.URL))

	_, err := client.Geocode(context.Background(), "Nowhereville")
	assert.ErrorIs(t, err, ErrCityNotFound)
}

func TestCurrentWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":17.3,"windspeed":11.2,"weathercode":61}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURLs(server.URL, server.URL))

	current, err := client.CurrentWeather(context.Background(), 41.01, 28.95)
	require.NoError(t, err)
	assert.InDelta(t, 17.3, current.Temperature, 0.001)
	assert.InDelta(t, 11.2, current.WindSpeed, 0.001)
	assert.Equal(t, 61, current.WeatherCode)
}

func TestGetJSON_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(WithBaseURLs(server.URL, server.URL))

	_, err := client.Geocode(context.Background(), "Istanbul")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGetJSON_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(WithBaseURLs(server.URL, server.URL))

	_, err := client.Geocode(context.Background(), "Istanbul")
	assert.ErrorIs(t, err, ErrUnavailable)
}
