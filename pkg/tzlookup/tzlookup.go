// Package tzlookup resolves coordinates and country codes to IANA
// timezone identifiers without an external service. Country codes map
// through the registry's candidate table; coordinates without a known
// country fall back to deterministic longitude bucketing.
package tzlookup

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/chatclima/chatclima/pkg/registry"
)

// ErrNotFound signals that no timezone could be determined.
var ErrNotFound = errors.New("timezone not found")

// Locator resolves timezones. Safe for concurrent use.
type Locator struct {
	logger *slog.Logger
}

// New creates a Locator.
func New(logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{logger: logger}
}

// TimezoneFor returns the IANA zone for the coordinates. A country hint
// selects that country's representative zone (first candidate); without
// one, or for unknown codes, the zone is approximated from the longitude.
func (l *Locator) TimezoneFor(lat, lon float64, countryHint string) (string, error) {
	if countryHint != "" {
		if zones := registry.TimezonesForISO(countryHint); len(zones) > 0 {
			l.logger.Debug("timezone from country candidates", "country", countryHint, "zone", zones[0])
			return zones[0], nil
		}
		l.logger.Debug("no timezone candidates for country, using coordinates", "country", countryHint)
	}

	zone, err := zoneFromLongitude(lon)
	if err != nil {
		return "", err
	}
	l.logger.Debug("timezone from longitude", "lon", lon, "zone", zone)
	return zone, nil
}

// zoneFromLongitude buckets the longitude into 15° hour bands and returns
// the matching Etc/GMT zone. Etc zone signs are inverted relative to the
// usual UTC offset notation (Etc/GMT+5 is UTC-5).
func zoneFromLongitude(lon float64) (string, error) {
	if lon < -180 || lon > 180 {
		return "", ErrNotFound
	}

	offset := int(math.Round(lon / 15))
	var zone string
	switch {
	case offset == 0:
		zone = "Etc/GMT"
	case offset > 0:
		zone = fmt.Sprintf("Etc/GMT-%d", offset)
	default:
		zone = fmt.Sprintf("Etc/GMT+%d", -offset)
	}

	// The Etc zones only exist for whole-hour offsets up to ±12/±14;
	// validate against the zone database before handing it out.
	if _, err := time.LoadLocation(zone); err != nil {
		return "", ErrNotFound
	}
	return zone, nil
}
