package chatbot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chatclima/chatclima/pkg/localtime"
	"github.com/chatclima/chatclima/pkg/location"
	"github.com/chatclima/chatclima/pkg/openweather"
	"github.com/chatclima/chatclima/pkg/registry"
)

// weatherReply resolves the location to coordinates and builds the
// weather payload, mapping failures to the localized reply texts.
func (c *Chatbot) weatherReply(ctx context.Context, loc string) Reply {
	place, countryISO, err := c.locate(ctx, loc)
	if err != nil {
		if errors.Is(err, openweather.ErrNotFound) {
			c.logger.Warn("location not found for weather query", "location", loc)
			return Reply{Text: fmt.Sprintf(weatherNotFoundFormat, loc), Failure: FailureInput}
		}
		c.logger.Error("weather lookup failed", "location", loc, "error", err)
		return Reply{Text: fmt.Sprintf(weatherFailedFormat, loc), Failure: FailureInternal}
	}

	result, err := c.buildWeather(ctx, place, countryISO)
	if err != nil {
		c.logger.Error("weather fetch failed", "location", loc, "error", err)
		return Reply{Text: fmt.Sprintf(weatherFailedFormat, loc), Failure: FailureInternal}
	}
	return Reply{Weather: result}
}

// WeatherByCoordinates builds the weather payload for explicit
// coordinates, as sent by clients that share the device location. The
// place name comes from reverse geocoding; when that fails the payload
// falls back to a generic label rather than failing the whole request.
func (c *Chatbot) WeatherByCoordinates(ctx context.Context, lat, lon float64) (*WeatherResult, error) {
	place := &openweather.Place{Name: "Ubicación", Latitude: lat, Longitude: lon}
	if named, err := c.geocoder.ReverseGeocode(ctx, lat, lon); err == nil {
		place = named
	} else {
		c.logger.Warn("reverse geocoding failed", "lat", lat, "lon", lon, "error", err)
	}
	return c.buildWeather(ctx, place, place.CountryCode)
}

// locate turns free location text into coordinates. Country queries are
// substituted by their capital with an ISO hint; known foreign city
// spellings are translated; a geocoding miss triggers one deterministic
// retry pass over the registry matching the text against country names
// and capitals.
func (c *Chatbot) locate(ctx context.Context, loc string) (*openweather.Place, string, error) {
	query, hint := loc, ""
	countryISO := ""

	if name, ok := location.ResolveCountry(loc); ok {
		if country, found := registry.CountryByName(name); found {
			c.logger.Info("country query, using capital", "country", name, "capital", country.Capital)
			query, hint = country.Capital, country.ISOCode
			countryISO = country.ISOCode
		}
	} else if special, ok := registry.LookupSpecialCity(loc); ok {
		query, hint = special.Name, special.ISOCode
	}

	place, err := c.geocoder.Geocode(ctx, query, hint)
	if err == nil {
		return place, countryISO, nil
	}
	if !errors.Is(err, openweather.ErrNotFound) {
		return nil, "", err
	}

	// Retry pass: the text may name a country or capital the first
	// attempt missed. Registry order decides ties.
	lower := strings.ToLower(strings.TrimSpace(loc))
	for _, country := range registry.Countries() {
		if lower != country.Name && lower != strings.ToLower(country.Capital) {
			continue
		}
		place, err = c.geocoder.Geocode(ctx, country.Capital, country.ISOCode)
		if err == nil {
			return place, country.ISOCode, nil
		}
		if !errors.Is(err, openweather.ErrNotFound) {
			return nil, "", err
		}
	}
	return nil, "", openweather.ErrNotFound
}

// buildWeather fetches conditions and assembles the payload. Timezone
// failures degrade to empty clock fields instead of failing the reply.
func (c *Chatbot) buildWeather(ctx context.Context, place *openweather.Place, countryISO string) (*WeatherResult, error) {
	conditions, err := c.weather.CurrentWeather(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return nil, err
	}

	hint := countryISO
	if hint == "" {
		hint = place.CountryCode
	}

	result := &WeatherResult{
		Location:    displayLocation(place.Name, place.CountryCode),
		Coordinates: Coordinates{Lat: place.Latitude, Lon: place.Longitude},
		Temp:        round1(conditions.TempC),
		FeelsLike:   round1(conditions.FeelsLikeC),
		Humidity:    conditions.HumidityPct,
		WindSpeed:   round1(conditions.WindMPS * 3.6),
		Pressure:    conditions.PressureHPa,
		Description: registry.Capitalize(registry.TranslateCondition(conditions.Description)),
		Icon:        registry.WeatherIcon(conditions.Icon),
	}

	zone, err := c.tz.TimezoneFor(place.Latitude, place.Longitude, hint)
	if err != nil {
		c.logger.Warn("timezone lookup failed, clock fields omitted", "error", err)
		return result, nil
	}
	now, err := localtime.NowIn(zone)
	if err != nil {
		c.logger.Warn("zone load failed, clock fields omitted", "zone", zone, "error", err)
		return result, nil
	}

	result.Time = localtime.Clock(now)
	result.Moment = localtime.Moment(now)
	result.Weekday = localtime.Weekday(now)
	result.Date = localtime.LongDate(now)
	return result, nil
}

func displayLocation(name, countryCode string) string {
	if countryCode == "" {
		return name
	}
	return name + ", " + countryCode
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
