package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client errors
var (
	ErrCityNotFound = errors.New("city not found")
	ErrUnavailable  = errors.New("weather service unavailable")
)

const (
	defaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com"
	defaultForecastBaseURL  = "https://api.open-meteo.com"
	defaultTimeout          = 10 * time.Second
)

// Location is a geocoded city.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Current holds the current weather readings for a location.
type Current struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

// Client talks to the open-meteo geocoding and forecast APIs.
type Client struct {
	httpClient       *http.Client
	geocodingBaseURL string
	forecastBaseURL  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the API endpoints, used in tests.
func WithBaseURLs(geocoding, forecast string) Option {
	return func(c *Client) {
		c.geocodingBaseURL = geocoding
		c.forecastBaseURL = forecast
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a weather client with a bounded request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:       &http.Client{Timeout: defaultTimeout},
		geocodingBaseURL: defaultGeocodingBaseURL,
		forecastBaseURL:  defaultForecastBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode resolves a city name to coordinates.
func (c *Client) Geocode(ctx context.Context, city string) (*Location, error) {
	endpoint := fmt.Sprintf("%s/v1/search?name=%s&count=1&format=json",
		c.geocodingBaseURL, url.QueryEscape(city))

	var payload struct {
		Results []Location `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	if len(payload.Results) == 0 {
		return nil, ErrCityNotFound
	}
	return &payload.Results[0], nil
}

// CurrentWeather fetches the current forecast for coordinates.
func (c *Client) CurrentWeather(ctx context.Context, latitude, longitude float64) (*Current, error) {
	endpoint := fmt.Sprintf("%s/v1/forecast?latitude=%f&longitude=%f&current_weather=true",
		c.forecastBaseURL, latitude, longitude)

	var payload struct {
		CurrentWeather Current `json:"current_weather"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	return &payload.CurrentWeather, nil
}

// getJSON performs a GET request and decodes the JSON body.
// Connection failures and non-200 responses surface as ErrUnavailable
// so callers can map them to a retryable error.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "CampusHub/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}
