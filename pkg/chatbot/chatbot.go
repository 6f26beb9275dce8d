// Package chatbot orchestrates the message pipeline: intent
// classification, location resolution, and the weather/time collaborator
// calls, producing localized Spanish replies. Every internal fault is
// caught at this boundary; callers never see panics or raw errors.
package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maypok86/otter/v2"

	"github.com/chatclima/chatclima/pkg/intent"
	"github.com/chatclima/chatclima/pkg/location"
	"github.com/chatclima/chatclima/pkg/nlp"
	"github.com/chatclima/chatclima/pkg/openweather"
)

const timeCacheCapacity = 128

// Canned replies, kept byte-for-byte stable because clients display them
// verbatim.
const (
	msgEmpty       = "No entendí tu mensaje. ¿Podrías repetirlo?"
	msgGreeting    = "¡Hola! Soy tu asistente del clima. ¿En qué puedo ayudarte hoy?"
	msgAskLocation = "¿De qué ubicación te gustaría saber el clima? Por favor, especifica una ciudad o país."
	msgHelp        = "No estoy seguro de cómo ayudarte. ¿Te gustaría saber el clima o la hora en alguna ubicación? Puedes preguntarme cosas como '¿Qué clima hace en Madrid?' o '¿Qué hora es en Tokio?'"
	msgInternal    = "Ocurrió un error al procesar tu mensaje. Por favor, inténtalo de nuevo."

	suggestionFormat      = "No estoy seguro de cómo ayudarte con eso. ¿Te refieres a algo relacionado con: %s?"
	weatherNotFoundFormat = "No pude obtener el clima para %s. ¿Podrías ser más específico?"
	weatherFailedFormat   = "Lo siento, hubo un error al obtener el clima para %s."
	timeNotFoundFormat    = "No pude obtener la hora para %s."
	timeFailedFormat      = "Lo siento, no pude obtener la hora para %s."
)

// Geocoder resolves location text or coordinates to named places.
type Geocoder interface {
	Geocode(ctx context.Context, query, countryHint string) (*openweather.Place, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*openweather.Place, error)
}

// WeatherProvider fetches current conditions for coordinates.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*openweather.Conditions, error)
}

// TimezoneLocator maps coordinates plus an optional country hint to an
// IANA zone name.
type TimezoneLocator interface {
	TimezoneFor(lat, lon float64, countryHint string) (string, error)
}

// Failure classifies a Reply for the transport layer.
type Failure int

const (
	// FailureNone is a successful or conversational reply.
	FailureNone Failure = iota
	// FailureInput means the message or its location could not be
	// resolved; transports map this to a client error.
	FailureInput
	// FailureInternal means a collaborator or the pipeline itself
	// failed; transports map this to a server error.
	FailureInternal
)

// Reply is the orchestrator's answer to one message. Exactly one of
// Text, Weather or Time is set; Failure qualifies Text replies.
type Reply struct {
	Text    string
	Weather *WeatherResult
	Time    *TimeResult
	Failure Failure
}

// Coordinates is the lat/lon pair echoed in weather payloads.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherResult is the structured current-weather payload. Field names
// and units are part of the wire contract: temperatures in °C at one
// decimal, wind in km/h at one decimal, pressure in hPa.
type WeatherResult struct {
	Location    string      `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
	Temp        float64     `json:"temp"`
	FeelsLike   float64     `json:"feels_like"`
	Humidity    int         `json:"humidity"`
	WindSpeed   float64     `json:"wind_speed"`
	Pressure    int         `json:"pressure"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Time        string      `json:"time"`
	Moment      string      `json:"moment"`
	Weekday     string      `json:"weekday"`
	Date        string      `json:"date"`
}

// TimeResult is the structured local-time payload.
type TimeResult struct {
	Type            string `json:"type"`
	Location        string `json:"location"`
	Timezone        string `json:"timezone"`
	TimezoneDisplay string `json:"timezone_display"`
	Time            string `json:"time"`
	Time12          string `json:"time_12"`
	Moment          string `json:"moment"`
	Weekday         string `json:"weekday"`
}

// timeEntry is one memoized time lookup: a frozen result snapshot or the
// failure it produced. Failures are cached on purpose; the entry lives
// until capacity eviction.
type timeEntry struct {
	result  *TimeResult
	failure Failure
	text    string
}

// Chatbot is the orchestrator. Safe for concurrent use: all mutable
// state lives in the memo cache, which is thread-safe.
type Chatbot struct {
	analyzer   nlp.Analyzer
	classifier *intent.Classifier
	geocoder   Geocoder
	weather    WeatherProvider
	tz         TimezoneLocator
	logger     *slog.Logger
	timeCache  *otter.Cache[string, timeEntry]
}

// New creates a Chatbot wired to its collaborators.
func New(analyzer nlp.Analyzer, geocoder Geocoder, weather WeatherProvider, tz TimezoneLocator, logger *slog.Logger) *Chatbot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chatbot{
		analyzer:   analyzer,
		classifier: intent.NewClassifier(analyzer, logger),
		geocoder:   geocoder,
		weather:    weather,
		tz:         tz,
		logger:     logger,
		timeCache: otter.Must(&otter.Options[string, timeEntry]{
			MaximumSize: timeCacheCapacity,
		}),
	}
}

// ProcessMessage runs the full pipeline for one user message. It never
// panics and never returns an error: every fault becomes a localized
// apology reply.
func (c *Chatbot) ProcessMessage(ctx context.Context, message string) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic while processing message", "panic", r)
			reply = Reply{Text: msgInternal, Failure: FailureInternal}
		}
	}()

	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{Text: msgEmpty}
	}

	result := c.classifier.Classify(message)
	c.logger.Info("message classified", "intent", result.Intent.String())

	switch result.Intent {
	case intent.Greeting:
		return Reply{Text: msgGreeting}

	case intent.Weather:
		bag := location.Extract(c.analyzer, c.logger, message)
		loc, ok := location.ResolveForQuery(bag, false)
		if !ok {
			return Reply{Text: msgAskLocation}
		}
		return c.weatherReply(ctx, loc)

	case intent.Time:
		bag := location.Extract(c.analyzer, c.logger, message)
		loc, _ := location.ResolveForQuery(bag, true)
		return c.timeReply(ctx, loc)

	case intent.UnknownWithSuggestion:
		return Reply{Text: fmt.Sprintf(suggestionFormat, strings.Join(result.Suggestions, ", "))}

	default:
		return Reply{Text: msgHelp}
	}
}
