package registry

import "strings"

// defaultIcon is returned for icon codes the table does not know.
const defaultIcon = "🌤️"

// weatherIcons maps the two-character OpenWeather icon code prefix to an
// emoji glyph.
var weatherIcons = map[string]string{
	"01": "☀️", // clear sky
	"02": "⛅", // few clouds
	"03": "☁️", // scattered clouds
	"04": "☁️", // broken clouds
	"09": "🌧️", // shower rain
	"10": "🌦️", // rain
	"11": "⛈️", // thunderstorm
	"13": "❄️", // snow
	"50": "🌫️", // mist
}

// conditionsES translates provider condition descriptions that arrive in
// English. Descriptions already localized pass through untouched.
var conditionsES = map[string]string{
	"clear":                "Despejado",
	"clouds":               "Nublado",
	"few clouds":           "Parcialmente nublado",
	"scattered clouds":     "Nubes dispersas",
	"broken clouds":        "Mayormente nublado",
	"overcast clouds":      "Muy nublado",
	"rain":                 "Lluvia",
	"light rain":           "Lluvia ligera",
	"moderate rain":        "Lluvia moderada",
	"heavy intensity rain": "Lluvia intensa",
	"thunderstorm":         "Tormenta",
	"snow":                 "Nieve",
	"mist":                 "Neblina",
	"fog":                  "Niebla",
	"haze":                 "Neblina",
	"drizzle":              "Llovizna",
}

// WeatherIcon returns the emoji for an OpenWeather icon code such as
// "01d". Unknown codes map to a default glyph.
func WeatherIcon(code string) string {
	if len(code) >= 2 {
		if icon, ok := weatherIcons[code[:2]]; ok {
			return icon
		}
	}
	return defaultIcon
}

// TranslateCondition localizes an English condition description and
// capitalizes the first character. Unknown descriptions are capitalized
// as-is.
func TranslateCondition(description string) string {
	d := strings.ToLower(strings.TrimSpace(description))
	if es, ok := conditionsES[d]; ok {
		return es
	}
	return Capitalize(description)
}

// Capitalize uppercases the first rune of s, leaving the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
