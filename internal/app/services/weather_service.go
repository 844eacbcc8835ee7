package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
	"github.com/dyilmaz/campushub/internal/pkg/cache"
	"github.com/dyilmaz/campushub/internal/pkg/weather"
)

const weatherCacheTTL = 15 * time.Minute

// weatherProvider resolves a city and fetches its current conditions.
type weatherProvider interface {
	Geocode(ctx context.Context, city string) (*weather.Location, error)
	CurrentWeather(ctx context.Context, latitude, longitude float64) (*weather.Current, error)
}

// WeatherService serves current weather for a city, cached per city so
// repeated lookups do not hammer the upstream API.
type WeatherService struct {
	provider weatherProvider
	cache    cache.Cache
	logger   zerolog.Logger
}

// NewWeatherService creates a new WeatherService
func NewWeatherService(provider weatherProvider, cacheStore cache.Cache, logger zerolog.Logger) *WeatherService {
	return &WeatherService{
		provider: provider,
		cache:    cacheStore,
		logger:   logger,
	}
}

// GetCurrent returns the current weather for a city. Unknown cities map
// to a not-found error; upstream outages map to service unavailable.
func (s *WeatherService) GetCurrent(ctx context.Context, city string) (*dto.WeatherResponse, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.NewBadRequestError("city is required")
	}

	key := "weather:city:" + strings.ToLower(city)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var resp dto.WeatherResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	location, err := s.provider.Geocode(ctx, city)
	if err != nil {
		return nil, s.mapProviderError(err, city)
	}

	current, err := s.provider.CurrentWeather(ctx, location.Latitude, location.Longitude)
	if err != nil {
		return nil, s.mapProviderError(err, city)
	}

	resp := &dto.WeatherResponse{
		City:        location.Name,
		Temperature: current.Temperature,
		WindSpeed:   current.WindSpeed,
		Description: describeWeatherCode(current.WeatherCode),
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), weatherCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache weather")
		}
	}

	return resp, nil
}

func (s *WeatherService) mapProviderError(err error, city string) error {
	if errors.Is(err, weather.ErrCityNotFound) {
		return apperrors.NewResourceNotFoundError("city not found")
	}
	if errors.Is(err, weather.ErrUnavailable) {
		s.logger.Error().Err(err).Str("city", city).Msg("Weather provider unavailable")
		return apperrors.ErrServiceUnavailable
	}
	return err
}

// describeWeatherCode maps WMO weather interpretation codes to short
// human-readable descriptions.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code >= 1 && code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
