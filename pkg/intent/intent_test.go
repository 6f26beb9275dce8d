package intent

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/chatclima/chatclima/pkg/nlp"
)

func classify(t *testing.T, message string) Result {
	t.Helper()
	c := NewClassifier(nlp.NewSpanish(), slog.Default())
	return c.Classify(message)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"hola", Greeting},
		{"Hola, ¿cómo estás?", Greeting},
		{"buenos días", Greeting},
		{"qué clima hace en Madrid", Weather},
		{"dame la temperatura de Lima", Weather},
		{"qué hora es en Tokio", Time},
		{"qué horas son", Time},
		{"dime la hora", Time},
		{"me gustan los gatos", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := classify(t, tt.message)
			if got.Intent != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.message, got.Intent, tt.want)
			}
		})
	}
}

func TestGreetingTakesPriority(t *testing.T) {
	// A greeting combined with a weather keyword must classify as a
	// greeting; the weather lookup never happens.
	got := classify(t, "hola, qué clima hace en Madrid")
	if got.Intent != Greeting {
		t.Errorf("Classify = %v, want Greeting", got.Intent)
	}
}

func TestSubstringFallbackForPhrases(t *testing.T) {
	// "hace calor" is two tokens, so only the substring pass can match it.
	got := classify(t, "uf, hace calor aquí")
	if got.Intent != Weather {
		t.Errorf("Classify = %v, want Weather", got.Intent)
	}
}

func TestSuggestionOnNearMiss(t *testing.T) {
	got := classify(t, "qué horra es")
	if got.Intent != UnknownWithSuggestion {
		t.Fatalf("Classify = %v, want UnknownWithSuggestion", got.Intent)
	}
	found := false
	for _, s := range got.Suggestions {
		if s == "hora" {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggestions = %v, want to include hora", got.Suggestions)
	}
}

func TestUnknownWithoutOverlap(t *testing.T) {
	got := classify(t, "xyzzy")
	if got.Intent != Unknown {
		t.Errorf("Classify = %v, want Unknown", got.Intent)
	}
	if len(got.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want none", got.Suggestions)
	}
}

type failingAnalyzer struct{ nlp.Analyzer }

func (failingAnalyzer) Tokenize(string) ([]nlp.Token, error) {
	return nil, errors.New("model unavailable")
}

func TestAnalyzerFailureDegradesToUnknown(t *testing.T) {
	c := NewClassifier(failingAnalyzer{}, slog.Default())
	got := c.Classify("qué clima hace en Madrid")
	if got.Intent != Unknown {
		t.Errorf("Classify = %v, want Unknown on analyzer failure", got.Intent)
	}
}
