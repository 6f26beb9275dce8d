package nlp

import (
	"log/slog"
	"strings"
)

// diacriticTable is the fixed accent-folding table used for alias
// comparison. Only these characters are mapped; everything else passes
// through unchanged.
var diacriticTable = map[rune]rune{
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u',
	'ü': 'u', 'ñ': 'n', 'à': 'a', 'è': 'e', 'ì': 'i',
	'ò': 'o', 'ù': 'u',
}

// StripDiacritics lowercases text and folds accented Latin characters to
// their ASCII equivalents using a fixed table. Meant for alias and
// gazetteer comparison, not for display.
func StripDiacritics(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if plain, ok := diacriticTable[r]; ok {
			b.WriteRune(plain)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalizer produces cleaned lemma tokens from free text: lowercase,
// lemmatize via the analyzer, drop stopwords and punctuation.
type Normalizer struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// NewNormalizer creates a Normalizer around the given analyzer.
func NewNormalizer(analyzer Analyzer, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{analyzer: analyzer, logger: logger}
}

// Normalize returns the lemma tokens of text with stopwords, punctuation
// and whitespace-only tokens removed. Empty input or an analyzer failure
// yields an empty slice; the failure is logged, never propagated.
func (n *Normalizer) Normalize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens, err := n.analyzer.Lemmatize(strings.ToLower(text))
	if err != nil {
		n.logger.Warn("text normalization failed", "error", err)
		return nil
	}

	var lemmas []string
	for _, t := range tokens {
		if t.Stop || t.Punct || strings.TrimSpace(t.Text) == "" {
			continue
		}
		lemma := t.Lemma
		if lemma == "" {
			lemma = strings.ToLower(t.Text)
		}
		lemmas = append(lemmas, lemma)
	}
	return lemmas
}
