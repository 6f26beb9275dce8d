package registry

import "testing"

func TestAliasTargetsAreCanonical(t *testing.T) {
	for alias, canonical := range aliases {
		if _, ok := CountryByName(canonical); !ok {
			t.Errorf("alias %q maps to %q, which is not a registered country", alias, canonical)
		}
	}
}

func TestTimezoneTableMatchesCountryTable(t *testing.T) {
	// Every ISO code with timezone candidates must belong to a registered
	// country, and every country must have at least one candidate zone.
	for iso := range timezonesByISO {
		if _, ok := CountryByISO(iso); !ok {
			t.Errorf("timezone table has ISO code %q with no country entry", iso)
		}
	}
	for _, c := range Countries() {
		zones := TimezonesForISO(c.ISOCode)
		if len(zones) == 0 {
			t.Errorf("country %q (%s) has no timezone candidates", c.Name, c.ISOCode)
		}
	}
}

func TestCountryLookups(t *testing.T) {
	c, ok := CountryByName("chile")
	if !ok || c.Capital != "Santiago" || c.ISOCode != "CL" {
		t.Errorf("CountryByName(chile) = %+v, %v", c, ok)
	}

	c, ok = CountryByISO("es")
	if !ok || c.Name != "españa" {
		t.Errorf("CountryByISO(es) = %+v, %v", c, ok)
	}

	if _, ok := CountryByName("atlantis"); ok {
		t.Error("CountryByName(atlantis) should not resolve")
	}
}

func TestCountriesOrderIsStable(t *testing.T) {
	// Substring resolution depends on table order; the first three entries
	// are load-bearing for tie-breaks.
	want := []string{"chile", "argentina", "españa"}
	got := Countries()
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("Countries()[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestWeatherIcon(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"01d", "☀️"},
		{"01n", "☀️"},
		{"10d", "🌦️"},
		{"13n", "❄️"},
		{"99x", "🌤️"}, // unknown code maps to default glyph
		{"", "🌤️"},
		{"0", "🌤️"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := WeatherIcon(tt.code); got != tt.want {
				t.Errorf("WeatherIcon(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestTranslateCondition(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clear", "Despejado"},
		{"light rain", "Lluvia ligera"},
		{"Broken Clouds", "Mayormente nublado"},
		{"cielo claro", "Cielo claro"}, // already Spanish, pass through
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TranslateCondition(tt.in); got != tt.want {
				t.Errorf("TranslateCondition(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLookupSpecialCity(t *testing.T) {
	c, ok := LookupSpecialCity("London")
	if !ok || c.Name != "Londres" || c.ISOCode != "GB" {
		t.Errorf("LookupSpecialCity(London) = %+v, %v", c, ok)
	}
	if _, ok := LookupSpecialCity("springfield"); ok {
		t.Error("LookupSpecialCity(springfield) should not resolve")
	}
}
