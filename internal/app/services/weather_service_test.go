package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/cache"
	"github.com/dyilmaz/campushub/internal/pkg/weather"
)

type fakeWeatherProvider struct {
	location    *weather.Location
	current     *weather.Current
	geocodeErr  error
	currentErr  error
	geocodeHits int
}

func (f *fakeWeatherProvider) Geocode(_ context.Context, _ string) (*weather.Location, error) {
	f.geocodeHits++
	if f.geocodeErr != nil {
		return nil, f.geocodeErr
	}
	return f.location, nil
}

func (f *fakeWeatherProvider) CurrentWeather(_ context.Context, _, _ float64) (*weather.Current, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.current, nil
}

func newTestWeatherService(provider *fakeWeatherProvider) *WeatherService {
	return NewWeatherService(provider, cache.NewMemoryCache(), zerolog.Nop())
}

func TestWeatherService_GetCurrent(t *testing.T) {
	provider := &fakeWeatherProvider{
		location: &weather.Location{Name: "Ankara", Latitude: 39.92, Longitude: 32.85},
		current:  &weather.Current{Temperature: 21.5, WindSpeed: 12.3, WeatherCode: 2},
	}
	svc := newTestWeatherService(provider)

	resp, err := svc.GetCurrent(context.Background(), "ankara")
	require.NoError(t, err)

	assert.Equal(t, "Ankara", resp.City)
	assert.Equal(t, 21.5, resp.Temperature)
	assert.Equal(t, "Partly cloudy", resp.Description)
	assert.Equal(t, 39.92, resp.Latitude)
}

func TestWeatherService_GetCurrent_CacheHitSkipsProvider(t *testing.T) {
	provider := &fakeWeatherProvider{
		location: &weather.Location{Name: "Ankara", Latitude: 39.92, Longitude: 32.85},
		current:  &weather.Current{Temperature: 21.5, WeatherCode: 0},
	}
	svc := newTestWeatherService(provider)

	_, err := svc.GetCurrent(context.Background(), "Ankara")
	require.NoError(t, err)

	// Same city in a different case hits the cached entry.
	resp, err := svc.GetCurrent(context.Background(), "ANKARA")
	require.NoError(t, err)
	assert.Equal(t, "Ankara", resp.City)
	assert.Equal(t, 1, provider.geocodeHits)
}

func TestWeatherService_GetCurrent_EmptyCity(t *testing.T) {
	svc := newTestWeatherService(&fakeWeatherProvider{})

	_, err := svc.GetCurrent(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestWeatherService_GetCurrent_UnknownCity(t *testing.T) {
	svc := newTestWeatherService(&fakeWeatherProvider{geocodeErr: weather.ErrCityNotFound})

	_, err := svc.GetCurrent(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestWeatherService_GetCurrent_ProviderUnavailable(t *testing.T) {
	svc := newTestWeatherService(&fakeWeatherProvider{
		location:   &weather.Location{Name: "Ankara"},
		currentErr: weather.ErrUnavailable,
	})

	_, err := svc.GetCurrent(context.Background(), "Ankara")
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}

func TestDescribeWeatherCode(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{2, "Partly cloudy"},
		{45, "Fog"},
		{53, "Drizzle"},
		{63, "Rain"},
		{73, "Snow"},
		{81, "Rain showers"},
		{86, "Snow showers"},
		{96, "Thunderstorm"},
		{40, "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describeWeatherCode(tt.code))
	}
}
