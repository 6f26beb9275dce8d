package location

import (
	"log/slog"
	"testing"

	"github.com/chatclima/chatclima/pkg/nlp"
	"github.com/chatclima/chatclima/pkg/registry"
)

func TestResolveCountryAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"usa", "estados unidos"},
		{"eeuu", "estados unidos"},
		{"EEUU", "estados unidos"},
		{"uk", "reino unido"},
		{"vzla", "venezuela"},
		{"arg", "argentina"},
		{"méxico", "mexico"},
		{"japón", "japon"},
		{"perú", "peru"},
		{"canadá", "canada"},
		{"panamá", "panama"},
		{"españa", "españa"},
		{"espana", "españa"},
		{"rd", "republica dominicana"},
		{"república dominicana", "republica dominicana"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			got, ok := ResolveCountry(tt.alias)
			if !ok || got != tt.want {
				t.Errorf("ResolveCountry(%q) = %q, %v; want %q", tt.alias, got, ok, tt.want)
			}
		})
	}
}

func TestResolveCountryIdentity(t *testing.T) {
	// Every canonical name resolves to itself.
	for _, c := range registry.Countries() {
		got, ok := ResolveCountry(c.Name)
		if !ok || got != c.Name {
			t.Errorf("ResolveCountry(%q) = %q, %v; want identity", c.Name, got, ok)
		}
	}
}

func TestResolveCountryAbsent(t *testing.T) {
	for _, in := range []string{"", "   ", "xyzzy-not-a-place"} {
		if got, ok := ResolveCountry(in); ok {
			t.Errorf("ResolveCountry(%q) = %q, want absent", in, got)
		}
	}
}

func TestResolveCountrySubstring(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"argent", "argentina"},         // prefix of a country name
		{"republica", "republica dominicana"}, // partial multi-word name
		{"la chile profunda", "chile"},  // country name inside the input
		{"repúblic", "republica dominicana"}, // accented partial compares stripped
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ResolveCountry(tt.in)
			if !ok || got != tt.want {
				t.Errorf("ResolveCountry(%q) = %q, %v; want %q", tt.in, got, ok, tt.want)
			}
		})
	}
}

func TestExtractCountryFromMessage(t *testing.T) {
	bag := Extract(nlp.NewSpanish(), slog.Default(), "qué clima hace en Chile")
	if !bag.IsCountry || bag.ResolvedCountry != "chile" {
		t.Errorf("Extract: IsCountry=%v ResolvedCountry=%q, want chile", bag.IsCountry, bag.ResolvedCountry)
	}
	if len(bag.GPE) == 0 {
		t.Errorf("Extract: no GPE entities in %+v", bag)
	}
}

func TestExtractCityIsNotCountry(t *testing.T) {
	bag := Extract(nlp.NewSpanish(), slog.Default(), "qué clima hace en Barcelona")
	if bag.IsCountry {
		t.Errorf("Extract: Barcelona flagged as country: %+v", bag)
	}
	if len(bag.GPE) == 0 {
		t.Errorf("Extract: no GPE entities in %+v", bag)
	}
}

func TestResolveForQuery(t *testing.T) {
	t.Run("prefers GPE over LOC", func(t *testing.T) {
		bag := Entities{GPE: []string{"Madrid"}, LOC: []string{"montañas"}}
		got, ok := ResolveForQuery(bag, false)
		if !ok || got != "Madrid" {
			t.Errorf("got %q, %v", got, ok)
		}
	})

	t.Run("falls back to LOC", func(t *testing.T) {
		bag := Entities{LOC: []string{"la playa"}}
		got, ok := ResolveForQuery(bag, false)
		if !ok || got != "la playa" {
			t.Errorf("got %q, %v", got, ok)
		}
	})

	t.Run("second pass over all entities", func(t *testing.T) {
		bag := Entities{All: []nlp.Entity{
			{Text: "ACME", Label: nlp.LabelORG},
			{Text: "Cusco", Label: nlp.LabelGPE},
		}}
		got, ok := ResolveForQuery(bag, false)
		if !ok || got != "Cusco" {
			t.Errorf("got %q, %v", got, ok)
		}
	})

	t.Run("time intent defaults to here", func(t *testing.T) {
		got, ok := ResolveForQuery(Entities{}, true)
		if !ok || got != Here {
			t.Errorf("got %q, %v", got, ok)
		}
	})

	t.Run("weather intent has no default", func(t *testing.T) {
		if got, ok := ResolveForQuery(Entities{}, false); ok {
			t.Errorf("got %q, want absent", got)
		}
	})
}
