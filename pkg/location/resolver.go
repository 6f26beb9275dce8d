// Package location turns extracted entity text or raw location strings
// into canonical locations: alias-normalized country names, and the
// GPE/LOC preference chain that picks the location a query is about.
package location

import (
	"log/slog"
	"strings"

	"github.com/chatclima/chatclima/pkg/nlp"
	"github.com/chatclima/chatclima/pkg/registry"
)

// Here is the sentinel location for time queries with no explicit place:
// "use request-time geolocation". If the transport supplied no
// coordinates this surfaces downstream as a not-found error.
const Here = "aquí"

// Entities is the per-message entity bag consumed by the orchestrator.
// Built fresh for every message, never persisted.
type Entities struct {
	All             []nlp.Entity // every entity the analyzer produced
	GPE             []string     // geopolitical entities, in textual order
	LOC             []string     // generic locations, in textual order
	IsCountry       bool
	ResolvedCountry string // canonical country name when IsCountry
}

// ResolveCountry normalizes free text to a canonical country name:
// lowercase and trim, alias table, exact registry key, then a
// bidirectional substring scan in registry order. Every comparison past
// the raw exact-key check runs on the diacritic-stripped form, so
// accented spellings like "méxico" or "república dominicana" resolve the
// same as their plain counterparts. The substring scan is a deliberate
// first-match heuristic; ties break on table order.
func ResolveCountry(raw string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return "", false
	}
	stripped := nlp.StripDiacritics(text)

	if canonical, ok := registry.CanonicalAlias(stripped); ok {
		return canonical, true
	}

	if _, ok := registry.CountryByName(text); ok {
		return text, true
	}
	for _, c := range registry.Countries() {
		if nlp.StripDiacritics(c.Name) == stripped {
			return c.Name, true
		}
	}

	for _, c := range registry.Countries() {
		name := nlp.StripDiacritics(c.Name)
		if strings.Contains(name, stripped) || strings.Contains(stripped, name) {
			return c.Name, true
		}
	}
	return "", false
}

// Extract runs entity extraction and fills the entity bag, including the
// country detection pass. An analyzer failure yields an empty bag and a
// warning, never an error.
func Extract(analyzer nlp.Analyzer, logger *slog.Logger, message string) Entities {
	if logger == nil {
		logger = slog.Default()
	}

	var bag Entities
	entities, err := analyzer.ExtractEntities(message)
	if err != nil {
		logger.Warn("entity extraction failed", "error", err)
		entities = nil
	}
	bag.All = entities

	for _, e := range entities {
		switch e.Label {
		case nlp.LabelGPE:
			bag.GPE = append(bag.GPE, e.Text)
			if !bag.IsCountry {
				if name, ok := ResolveCountry(e.Text); ok {
					bag.IsCountry = true
					bag.ResolvedCountry = name
				}
			}
		case nlp.LabelLOC:
			bag.LOC = append(bag.LOC, e.Text)
		}
	}

	// Second chance: a country mentioned without entity markup, found by
	// scanning the content tokens.
	if !bag.IsCountry {
		tokens, err := analyzer.Tokenize(message)
		if err != nil {
			return bag
		}
		for _, t := range tokens {
			if t.Stop || t.Punct {
				continue
			}
			if name, ok := ResolveCountry(t.Text); ok {
				bag.IsCountry = true
				bag.ResolvedCountry = name
				break
			}
		}
	}

	return bag
}

// ResolveForQuery picks the location a weather or time query refers to.
// Preference order: first GPE, first LOC, then a second scan over all
// entities restricted to GPE/LOC labels. Time queries with no location
// default to the Here sentinel; weather queries get no default.
func ResolveForQuery(bag Entities, timeIntent bool) (string, bool) {
	if len(bag.GPE) > 0 {
		return bag.GPE[0], true
	}
	if len(bag.LOC) > 0 {
		return bag.LOC[0], true
	}
	for _, e := range bag.All {
		if e.Label == nlp.LabelGPE || e.Label == nlp.LabelLOC {
			return e.Text, true
		}
	}
	if timeIntent {
		return Here, true
	}
	return "", false
}
