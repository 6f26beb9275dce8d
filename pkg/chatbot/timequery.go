package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chatclima/chatclima/pkg/localtime"
	"github.com/chatclima/chatclima/pkg/location"
	"github.com/chatclima/chatclima/pkg/openweather"
	"github.com/chatclima/chatclima/pkg/registry"
)

// timeReply answers a local-time query, memoized by normalized location
// text. The cache stores frozen snapshots: a hit returns the clock
// reading from when the entry was computed, which holds until capacity
// eviction. Failures are memoized the same way.
func (c *Chatbot) timeReply(ctx context.Context, loc string) Reply {
	key := strings.ToLower(strings.TrimSpace(loc))

	if entry, ok := c.timeCache.GetIfPresent(key); ok {
		c.logger.Debug("time lookup served from cache", "location", key)
		return entryReply(entry)
	}

	entry := c.lookupTime(ctx, loc)
	c.timeCache.Set(key, entry)
	return entryReply(entry)
}

func entryReply(entry timeEntry) Reply {
	if entry.result != nil {
		return Reply{Time: entry.result}
	}
	return Reply{Text: entry.text, Failure: entry.failure}
}

// lookupTime resolves the location, determines its zone and formats the
// snapshot. The "aquí" sentinel means the message named no place and the
// transport provided no coordinates, which is a resolution failure.
func (c *Chatbot) lookupTime(ctx context.Context, loc string) timeEntry {
	if loc == location.Here {
		return timeEntry{failure: FailureInput, text: fmt.Sprintf(timeNotFoundFormat, loc)}
	}

	query, hint := loc, ""
	countryISO := ""
	if name, ok := location.ResolveCountry(loc); ok {
		if country, found := registry.CountryByName(name); found {
			query, hint = country.Capital, country.ISOCode
			countryISO = country.ISOCode
		}
	} else if special, ok := registry.LookupSpecialCity(loc); ok {
		query, hint = special.Name, special.ISOCode
	}

	place, err := c.geocoder.Geocode(ctx, query, hint)
	if err != nil {
		if errors.Is(err, openweather.ErrNotFound) {
			c.logger.Warn("location not found for time query", "location", loc)
			return timeEntry{failure: FailureInput, text: fmt.Sprintf(timeNotFoundFormat, loc)}
		}
		c.logger.Error("geocoding failed for time query", "location", loc, "error", err)
		return timeEntry{failure: FailureInternal, text: fmt.Sprintf(timeFailedFormat, loc)}
	}

	// A country query pins the zone to the country's representative
	// candidate; city queries use the geocoded country.
	zoneHint := countryISO
	if zoneHint == "" {
		zoneHint = place.CountryCode
	}
	zone, err := c.tz.TimezoneFor(place.Latitude, place.Longitude, zoneHint)
	if err != nil {
		c.logger.Error("timezone lookup failed for time query", "location", loc, "error", err)
		return timeEntry{failure: FailureInternal, text: fmt.Sprintf(timeFailedFormat, loc)}
	}
	now, err := localtime.NowIn(zone)
	if err != nil {
		c.logger.Error("zone load failed for time query", "zone", zone, "error", err)
		return timeEntry{failure: FailureInternal, text: fmt.Sprintf(timeFailedFormat, loc)}
	}

	return timeEntry{result: &TimeResult{
		Type:            "time",
		Location:        displayLocation(place.Name, place.CountryCode),
		Timezone:        zone,
		TimezoneDisplay: localtime.OffsetDisplay(now),
		Time:            localtime.Clock(now),
		Time12:          localtime.Clock12(now),
		Moment:          localtime.Moment(now),
		Weekday:         localtime.Weekday(now),
	}}
}
