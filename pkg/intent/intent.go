// Package intent classifies user messages into the chatbot's intent set
// using keyword membership over raw tokens, with a substring fallback for
// multi-word phrases and an edit-distance suggestion pass for near
// misses.
package intent

import (
	"log/slog"
	"strings"

	"github.com/chatclima/chatclima/pkg/nlp"
)

// Intent is the classification outcome for one message.
type Intent int

const (
	// Unknown means no keyword matched at all.
	Unknown Intent = iota
	// Greeting always wins over every other intent.
	Greeting
	// Weather is a current-weather query.
	Weather
	// Time is a local-time query.
	Time
	// UnknownWithSuggestion means no intent matched but some token was
	// close to a known keyword; Result.Suggestions carries the matches.
	UnknownWithSuggestion
)

// String returns the intent name for logging.
func (i Intent) String() string {
	switch i {
	case Greeting:
		return "greeting"
	case Weather:
		return "weather"
	case Time:
		return "time"
	case UnknownWithSuggestion:
		return "unknown-with-suggestion"
	default:
		return "unknown"
	}
}

// Keyword lists. Ordered by priority: greetings are checked first, then
// weather, then time. Multi-word phrases only match through the substring
// fallback.
var (
	greetingPhrases = []string{"hola", "buenos días", "buenas tardes", "buenas noches", "hey", "saludos"}
	weatherPhrases  = []string{"clima", "tiempo", "temperatura", "pronóstico", "hace calor", "hace frío"}
	timePhrases     = []string{"hora", "qué horas son", "dime la hora"}
)

// Result is the classification plus the suggestion tokens for the
// near-miss case.
type Result struct {
	Intent      Intent
	Suggestions []string
}

// Classifier classifies messages with an injected analyzer.
type Classifier struct {
	analyzer   nlp.Analyzer
	normalizer *nlp.Normalizer
	logger     *slog.Logger
}

// NewClassifier creates a Classifier.
func NewClassifier(analyzer nlp.Analyzer, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		analyzer:   analyzer,
		normalizer: nlp.NewNormalizer(analyzer, logger),
		logger:     logger,
	}
}

// Classify determines the intent of a message. It never fails: an
// analyzer error degrades to Unknown.
func (c *Classifier) Classify(message string) Result {
	tokens, err := c.analyzer.Tokenize(message)
	if err != nil {
		c.logger.Warn("tokenization failed during classification", "error", err)
		return Result{Intent: Unknown}
	}

	// Token membership, in priority order. Raw tokens on purpose: the
	// keyword lists contain words the stopword table would remove.
	lower := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !t.Punct {
			lower = append(lower, strings.ToLower(t.Text))
		}
	}

	for _, set := range []struct {
		intent  Intent
		phrases []string
	}{
		{Greeting, greetingPhrases},
		{Weather, weatherPhrases},
		{Time, timePhrases},
	} {
		if tokenMatch(lower, set.phrases) {
			return Result{Intent: set.intent}
		}
	}

	// Substring fallback over the whole lowercased message, same
	// priority: catches multi-word phrases like "qué horas son".
	msg := strings.ToLower(message)
	switch {
	case containsAny(msg, greetingPhrases):
		return Result{Intent: Greeting}
	case containsAny(msg, weatherPhrases):
		return Result{Intent: Weather}
	case containsAny(msg, timePhrases):
		return Result{Intent: Time}
	}

	// The suggestion pass works over normalized lemmas so inflected
	// near-misses ("climas", "horra") compare against base keywords.
	if suggestions := c.suggestions(c.normalizer.Normalize(message)); len(suggestions) > 0 {
		return Result{Intent: UnknownWithSuggestion, Suggestions: suggestions}
	}
	return Result{Intent: Unknown}
}

// tokenMatch reports whether any token equals a single-word phrase.
func tokenMatch(tokens, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(phrase, " ") {
			continue
		}
		for _, tok := range tokens {
			if tok == phrase {
				return true
			}
		}
	}
	return false
}

func containsAny(msg string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// suggestions collects keywords that some message token nearly matches,
// de-duplicated in keyword-list order.
func (c *Classifier) suggestions(tokens []string) []string {
	const threshold = 0.8

	var matched []string
	seen := make(map[string]bool)
	for _, phrases := range [][]string{weatherPhrases, timePhrases, greetingPhrases} {
		for _, phrase := range phrases {
			if strings.Contains(phrase, " ") || seen[phrase] {
				continue
			}
			for _, tok := range tokens {
				if nlp.Similar(tok, phrase, threshold) {
					matched = append(matched, phrase)
					seen[phrase] = true
					break
				}
			}
		}
	}
	return matched
}
