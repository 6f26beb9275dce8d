// Package openweather implements the geocoding, reverse-geocoding and
// current-weather collaborators on top of the OpenWeather HTTP API.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const (
	defaultBaseURL     = "https://api.openweathermap.org"
	geocodingPath      = "/geo/1.0/direct"
	reverseGeoPath     = "/geo/1.0/reverse"
	currentWeatherPath = "/data/2.5/weather"

	requestTimeout = 15 * time.Second
	maxAttempts    = 3
	retryBaseDelay = 2 * time.Second
)

// ErrNotFound signals that the provider had no result for the query.
var ErrNotFound = errors.New("location not found")

// Place is a geocoding result.
type Place struct {
	Name        string
	Latitude    float64
	Longitude   float64
	CountryCode string
}

// Conditions is a current-weather observation. Units are the provider's
// metric units: °C, %, m/s, hPa.
type Conditions struct {
	Description string
	Icon        string
	TempC       float64
	FeelsLikeC  float64
	HumidityPct int
	WindMPS     float64
	PressureHPa int
}

// HTTPClient interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is an OpenWeather API client with bounded retries.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient injects the HTTP client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an OpenWeather client.
func NewClient(apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode resolves a location query to coordinates. The country hint, if
// present, is appended ("Santiago,CL") for precision. Returns ErrNotFound
// when the provider has no match.
func (c *Client) Geocode(ctx context.Context, query, countryHint string) (*Place, error) {
	q := query
	if countryHint != "" {
		q = query + "," + countryHint
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("limit", "1")

	var results []geoResult
	if err := c.getJSON(ctx, geocodingPath, params, &results); err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", q, err)
	}
	if len(results) == 0 {
		c.logger.Debug("geocoding returned no results", "query", q)
		return nil, ErrNotFound
	}
	return results[0].place(), nil
}

// ReverseGeocode resolves coordinates to the nearest named place.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("limit", "1")

	var results []geoResult
	if err := c.getJSON(ctx, reverseGeoPath, params, &results); err != nil {
		return nil, fmt.Errorf("reverse geocoding (%f, %f): %w", lat, lon, err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results[0].place(), nil
}

// CurrentWeather fetches the current conditions at the coordinates,
// metric units, Spanish descriptions.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*Conditions, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("units", "metric")
	params.Set("lang", "es")

	var result struct {
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := c.getJSON(ctx, currentWeatherPath, params, &result); err != nil {
		return nil, fmt.Errorf("current weather (%f, %f): %w", lat, lon, err)
	}
	if len(result.Weather) == 0 {
		return nil, errors.New("weather payload missing conditions")
	}

	return &Conditions{
		Description: result.Weather[0].Description,
		Icon:        result.Weather[0].Icon,
		TempC:       result.Main.Temp,
		FeelsLikeC:  result.Main.FeelsLike,
		HumidityPct: result.Main.Humidity,
		WindMPS:     result.Wind.Speed,
		PressureHPa: result.Main.Pressure,
	}, nil
}

type geoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

func (r geoResult) place() *Place {
	return &Place{
		Name:        r.Name,
		Latitude:    r.Lat,
		Longitude:   r.Lon,
		CountryCode: r.Country,
	}
}

// getJSON performs a GET with the API key applied and decodes the JSON
// body into out. Transient failures are retried up to maxAttempts with
// linear backoff; 4xx responses are terminal.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("appid", c.apiKey)
	apiURL := c.baseURL + path + "?" + params.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				c.logger.Warn("openweather request failed", "path", path, "error", err)
				return err
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					c.logger.Debug("failed to close response body", "error", closeErr)
				}
			}()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			if resp.StatusCode != http.StatusOK {
				apiErr := apiError(resp.StatusCode, data)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 {
					return retry.Unrecoverable(apiErr)
				}
				c.logger.Warn("openweather server error", "path", path, "status", resp.StatusCode)
				return apiErr
			}

			body = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(retryBaseDelay),
		retry.DelayType(linearDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying openweather request", "path", path, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing openweather response: %w", err)
	}
	return nil
}

// linearDelay waits baseDelay, 2*baseDelay, ... between attempts.
func linearDelay(n uint, _ error, _ *retry.Config) time.Duration {
	return time.Duration(n+1) * retryBaseDelay
}

// apiError extracts the provider's message when the payload carries one.
func apiError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("openweather API error (HTTP %d): %s", status, payload.Message)
	}
	return fmt.Errorf("openweather API error: HTTP %d", status)
}
