// Package registry holds the static country, alias, timezone and weather
// icon tables used by the resolution pipeline. All tables are read-only
// after process start; the country list preserves insertion order because
// substring resolution ties are broken by table order.
package registry

import "strings"

// Country describes one entry of the country table. Name is the canonical
// lowercase key used throughout the resolver.
type Country struct {
	Name    string
	Capital string
	ISOCode string
}

// countries is ordered: the location resolver's substring fallback returns
// the first match in this order.
var countries = []Country{
	{"chile", "Santiago", "CL"},
	{"argentina", "Buenos Aires", "AR"},
	{"españa", "Madrid", "ES"},
	{"mexico", "Ciudad de México", "MX"},
	{"colombia", "Bogotá", "CO"},
	{"peru", "Lima", "PE"},
	{"venezuela", "Caracas", "VE"},
	{"ecuador", "Quito", "EC"},
	{"bolivia", "La Paz", "BO"},
	{"paraguay", "Asunción", "PY"},
	{"uruguay", "Montevideo", "UY"},
	{"brasil", "Brasilia", "BR"},
	{"estados unidos", "Washington", "US"},
	{"canada", "Ottawa", "CA"},
	{"francia", "París", "FR"},
	{"italia", "Roma", "IT"},
	{"alemania", "Berlín", "DE"},
	{"reino unido", "Londres", "GB"},
	{"japon", "Tokio", "JP"},
	{"china", "Pekín", "CN"},
	{"rusia", "Moscú", "RU"},
	{"costa rica", "San José", "CR"},
	{"cuba", "La Habana", "CU"},
	{"el salvador", "San Salvador", "SV"},
	{"guatemala", "Ciudad de Guatemala", "GT"},
	{"honduras", "Tegucigalpa", "HN"},
	{"nicaragua", "Managua", "NI"},
	{"panama", "Ciudad de Panamá", "PA"},
	{"puerto rico", "San Juan", "PR"},
	{"republica dominicana", "Santo Domingo", "DO"},
	{"portugal", "Lisboa", "PT"},
	{"corea del sur", "Seúl", "KR"},
	{"australia", "Canberra", "AU"},
	{"nueva zelanda", "Wellington", "NZ"},
}

var countryByName = func() map[string]Country {
	m := make(map[string]Country, len(countries))
	for _, c := range countries {
		m[c.Name] = c
	}
	return m
}()

var countryByISO = func() map[string]Country {
	m := make(map[string]Country, len(countries))
	for _, c := range countries {
		m[c.ISOCode] = c
	}
	return m
}()

// aliases maps diacritic-stripped free-form country spellings and
// abbreviations to canonical country names. Lookups must strip diacritics
// first; keys here are plain ASCII on purpose.
var aliases = map[string]string{
	// América
	"usa":                       "estados unidos",
	"estados unidos de america": "estados unidos",
	"eeuu":                      "estados unidos",
	"united states":             "estados unidos",
	"us":                        "estados unidos",
	"rd":                        "republica dominicana",
	"vzla":                      "venezuela",
	"arg":                       "argentina",
	"chi":                       "chile",
	"col":                       "colombia",
	"per":                       "peru",
	"uru":                       "uruguay",
	"par":                       "paraguay",
	"ecu":                       "ecuador",
	"bol":                       "bolivia",
	// Europa
	"espana":       "españa",
	"spain":        "españa",
	"uk":           "reino unido",
	"gran bretana": "reino unido",
	"england":      "reino unido",
	"fr":           "francia",
	"de":           "alemania",
	"it":           "italia",
	"pt":           "portugal",
	// Asia
	"jp":    "japon",
	"japan": "japon",
	"cn":    "china",
	"kr":    "corea del sur",
	// Oceanía
	"au": "australia",
	"nz": "nueva zelanda",
}

// timezonesByISO lists the candidate IANA zones per country; the first
// entry is the representative zone used when no coordinates are available.
var timezonesByISO = map[string][]string{
	"RU": {
		"Europe/Moscow",
		"Europe/Kaliningrad",
		"Europe/Samara",
		"Asia/Yekaterinburg",
		"Asia/Omsk",
		"Asia/Krasnoyarsk",
		"Asia/Irkutsk",
		"Asia/Yakutsk",
		"Asia/Vladivostok",
		"Asia/Magadan",
		"Asia/Kamchatka",
	},
	"US": {
		"America/New_York",
		"America/Chicago",
		"America/Denver",
		"America/Los_Angeles",
		"America/Anchorage",
		"Pacific/Honolulu",
	},
	"ES": {"Europe/Madrid"},
	"FR": {"Europe/Paris"},
	"DE": {"Europe/Berlin"},
	"IT": {"Europe/Rome"},
	"GB": {"Europe/London"},
	"PT": {"Europe/Lisbon"},
	"MX": {"America/Mexico_City", "America/Tijuana", "America/Cancun"},
	"BR": {"America/Sao_Paulo", "America/Manaus", "America/Belem"},
	"AR": {"America/Argentina/Buenos_Aires"},
	"CL": {"America/Santiago"},
	"CO": {"America/Bogota"},
	"PE": {"America/Lima"},
	"EC": {"America/Guayaquil"},
	"VE": {"America/Caracas"},
	"BO": {"America/La_Paz"},
	"PY": {"America/Asuncion"},
	"UY": {"America/Montevideo"},
	"CR": {"America/Costa_Rica"},
	"DO": {"America/Santo_Domingo"},
	"PA": {"America/Panama"},
	"HN": {"America/Tegucigalpa"},
	"SV": {"America/El_Salvador"},
	"NI": {"America/Managua"},
	"GT": {"America/Guatemala"},
	"CU": {"America/Havana"},
	"PR": {"America/Puerto_Rico"},
	"CA": {"America/Toronto", "America/Winnipeg", "America/Edmonton", "America/Vancouver", "America/Halifax", "America/St_Johns"},
	"JP": {"Asia/Tokyo"},
	"CN": {"Asia/Shanghai"},
	"KR": {"Asia/Seoul"},
	"AU": {"Australia/Sydney", "Australia/Brisbane", "Australia/Adelaide", "Australia/Darwin", "Australia/Perth"},
	"NZ": {"Pacific/Auckland"},
}

// specialCities maps common foreign-language city spellings to the Spanish
// name plus an ISO country hint, so geocoding queries stay precise.
var specialCities = map[string]SpecialCity{
	"paris":      {"París", "FR"},
	"berlin":     {"Berlín", "DE"},
	"rome":       {"Roma", "IT"},
	"tokyo":      {"Tokio", "JP"},
	"sydney":     {"Sídney", "AU"},
	"moscow":     {"Moscú", "RU"},
	"beijing":    {"Pekín", "CN"},
	"washington": {"Washington", "US"},
	"new york":   {"Nueva York", "US"},
	"london":     {"Londres", "GB"},
	"madrid":     {"Madrid", "ES"},
	"barcelona":  {"Barcelona", "ES"},
}

// SpecialCity is a city spelling override with a country hint.
type SpecialCity struct {
	Name    string
	ISOCode string
}

// Countries returns the country table in resolution order.
func Countries() []Country {
	return countries
}

// CountryByName looks up a country by canonical lowercase name.
func CountryByName(name string) (Country, bool) {
	c, ok := countryByName[name]
	return c, ok
}

// CountryByISO looks up a country by ISO 3166-1 alpha-2 code.
func CountryByISO(code string) (Country, bool) {
	c, ok := countryByISO[strings.ToUpper(code)]
	return c, ok
}

// CanonicalAlias maps a diacritic-stripped alias to its canonical country
// name. The caller must strip diacritics before calling.
func CanonicalAlias(alias string) (string, bool) {
	name, ok := aliases[alias]
	return name, ok
}

// TimezonesForISO returns the candidate zones for a country code, ordered
// with the representative zone first.
func TimezonesForISO(code string) []string {
	return timezonesByISO[strings.ToUpper(code)]
}

// LookupSpecialCity translates common foreign city spellings.
func LookupSpecialCity(name string) (SpecialCity, bool) {
	c, ok := specialCities[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
