package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/genai"
)

const (
	geminiMaxAttempts = 3
	geminiRetryDelay  = 200 * time.Millisecond
	geminiMaxDelay    = 2 * time.Second
)

// Gemini is a model-backed Analyzer. Tokenization and lemmatization stay
// rule-based (the model adds nothing there); entity extraction goes
// through the Gemini API with a schema-constrained JSON response and
// falls back to the rule-based analyzer on any failure, so a missing or
// misbehaving backend never degrades below the deterministic baseline.
type Gemini struct {
	fallback *Spanish
	logger   *slog.Logger
	apiKey   string
	model    string
	timeout  time.Duration
	generate func(ctx context.Context, prompt string) (string, error)
}

// NewGemini creates a Gemini-backed analyzer. An empty model selects the
// default.
func NewGemini(apiKey, model string, logger *slog.Logger) *Gemini {
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gemini{
		fallback: NewSpanish(),
		logger:   logger,
		apiKey:   apiKey,
		model:    model,
		timeout:  10 * time.Second,
	}
	g.generate = g.callModel
	return g
}

// Tokenize delegates to the rule-based analyzer.
func (g *Gemini) Tokenize(text string) ([]Token, error) {
	return g.fallback.Tokenize(text)
}

// Lemmatize delegates to the rule-based analyzer.
func (g *Gemini) Lemmatize(text string) ([]Token, error) {
	return g.fallback.Lemmatize(text)
}

// ExtractEntities asks the model for geographic entities and falls back
// to the rule-based extractor on any error.
func (g *Gemini) ExtractEntities(text string) ([]Entity, error) {
	entities, err := g.extractWithModel(text)
	if err != nil {
		g.logger.Warn("gemini entity extraction failed, using rule-based fallback", "error", err)
		return g.fallback.ExtractEntities(text)
	}
	return entities, nil
}

// extractWithModel calls the model with bounded retries. Transient
// failures (rate limits, timeouts, 5xx) back off and retry; everything
// else fails immediately.
func (g *Gemini) extractWithModel(text string) ([]Entity, error) {
	if g.apiKey == "" {
		return nil, errors.New("gemini API key not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	prompt := "Extrae las entidades geográficas del siguiente mensaje en español. " +
		"Usa la etiqueta GPE para países, ciudades y estados, y LOC para lugares " +
		"no políticos. Devuelve cada entidad con su texto original.\n\nMensaje: " + text

	var raw string
	err := retry.Do(
		func() error {
			out, err := g.generate(ctx, prompt)
			if err != nil {
				if !isTransientGeminiError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			raw = out
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(geminiMaxAttempts),
		retry.Delay(geminiRetryDelay),
		retry.MaxDelay(geminiMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			g.logger.Debug("retrying gemini entity extraction", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	var parsed struct {
		Entities []struct {
			Text  string `json:"text"`
			Label string `json:"label"`
		} `json:"entities"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parsing gemini response: %w", err)
	}

	entities := make([]Entity, 0, len(parsed.Entities))
	for _, e := range parsed.Entities {
		if e.Text == "" {
			continue
		}
		entities = append(entities, Entity{Text: e.Text, Label: e.Label})
	}
	return entities, nil
}

// callModel performs one GenerateContent request and returns the raw
// JSON text of the first candidate.
func (g *Gemini) callModel(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  g.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	temperature := float32(0.1)
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  512,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"entities": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"text": {
								Type:        genai.TypeString,
								Description: "Surface text of the entity exactly as it appears in the message",
							},
							"label": {
								Type:        genai.TypeString,
								Enum:        []string{LabelGPE, LabelLOC, LabelORG, LabelMISC},
								Description: "Entity label",
							},
						},
						Required: []string{"text", "label"},
					},
				},
			},
			Required: []string{"entities"},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from gemini API")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in gemini response")
	}
	raw := strings.TrimSpace(candidate.Content.Parts[0].Text)
	if raw == "" {
		return "", errors.New("empty text in gemini response")
	}
	return raw, nil
}

// isTransientGeminiError reports whether the failure is worth retrying.
func isTransientGeminiError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"rate limit", "quota", "timeout", "deadline", "unavailable",
		"internal server error", "500", "502", "503", "504",
	} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
