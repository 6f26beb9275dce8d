package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/chatclima/chatclima/pkg/registry"
)

// Spanish is the rule-based analyzer. It is deterministic, needs no model
// download and never fails, which makes it the fallback implementation
// every deployment can rely on.
type Spanish struct{}

// NewSpanish creates the rule-based Spanish analyzer.
func NewSpanish() *Spanish {
	return &Spanish{}
}

// irregularLemmas covers frequent irregular forms the suffix rules cannot
// reach. Keys and values are lowercase.
var irregularLemmas = map[string]string{
	"es": "ser", "son": "ser", "era": "ser", "fue": "ser",
	"está": "estar", "estás": "estar", "están": "estar", "estaba": "estar",
	"hace": "hacer", "hacen": "hacer", "hizo": "hacer", "haría": "hacer",
	"hay": "haber", "había": "haber", "han": "haber", "ha": "haber",
	"tengo": "tener", "tiene": "tener", "tienen": "tener",
	"dime": "decir", "dice": "decir", "digo": "decir",
	"quiero": "querer", "quiere": "querer",
	"sé": "saber", "sabe": "saber",
	"puedo": "poder", "puede": "poder", "pueden": "poder",
	"voy": "ir", "va": "ir", "van": "ir",
	"horas": "hora", "días": "día", "ciudades": "ciudad", "países": "país",
}

// Tokenize splits text into word and punctuation tokens. Input is NFC
// normalized first so combining marks compare equal across sources.
func (*Spanish) Tokenize(text string) ([]Token, error) {
	text = norm.NFC.String(text)

	var tokens []Token
	var word strings.Builder
	var punct strings.Builder

	flushWord := func() {
		if word.Len() == 0 {
			return
		}
		t := word.String()
		tokens = append(tokens, Token{
			Text: t,
			Stop: IsStopword(strings.ToLower(t)),
		})
		word.Reset()
	}
	flushPunct := func() {
		if punct.Len() == 0 {
			return
		}
		tokens = append(tokens, Token{Text: punct.String(), Punct: true})
		punct.Reset()
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushPunct()
			word.WriteRune(r)
		case unicode.IsSpace(r):
			flushWord()
			flushPunct()
		default:
			flushWord()
			punct.WriteRune(r)
		}
	}
	flushWord()
	flushPunct()

	return tokens, nil
}

// Lemmatize tokenizes and fills in a lemma for every word token.
func (s *Spanish) Lemmatize(text string) ([]Token, error) {
	tokens, err := s.Tokenize(text)
	if err != nil {
		return nil, err
	}
	for i := range tokens {
		if tokens[i].Punct {
			continue
		}
		tokens[i].Lemma = lemmaOf(strings.ToLower(tokens[i].Text))
	}
	return tokens, nil
}

// lemmaOf reduces a lowercase word to a base form: irregular table first,
// then gerund/participle endings, then plural stripping.
func lemmaOf(word string) string {
	if lemma, ok := irregularLemmas[word]; ok {
		return lemma
	}
	switch {
	case strings.HasSuffix(word, "ando") && len(word) > 5:
		return word[:len(word)-4] + "ar"
	case strings.HasSuffix(word, "iendo") && len(word) > 6:
		return word[:len(word)-5] + "er"
	case strings.HasSuffix(word, "ción"):
		return word
	case strings.HasSuffix(word, "ciones"):
		return word[:len(word)-2] // estaciones -> estacion
	case strings.HasSuffix(word, "es") && len(word) > 4:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 3:
		return word[:len(word)-1]
	}
	return word
}

// ExtractEntities finds geographic entities with a gazetteer pass over
// the country, capital and special-city tables, then heuristics for
// capitalized words and preposition objects. Returned entities keep the
// original surface text, in textual order.
func (s *Spanish) ExtractEntities(text string) ([]Entity, error) {
	tokens, err := s.Tokenize(text)
	if err != nil {
		return nil, err
	}

	// Word tokens only, remembering surface forms.
	var words []string
	for _, t := range tokens {
		if !t.Punct {
			words = append(words, t.Text)
		}
	}

	var entities []Entity
	consumed := make([]bool, len(words))

	// Gazetteer pass: longest window first so "estados unidos" beats
	// "unidos".
	for size := 3; size >= 1; size-- {
		for i := 0; i+size <= len(words); i++ {
			if anyConsumed(consumed, i, size) {
				continue
			}
			surface := strings.Join(words[i:i+size], " ")
			if label, ok := gazetteerLabel(surface); ok {
				entities = append(entities, Entity{Text: surface, Label: label})
				markConsumed(consumed, i, size)
			}
		}
	}

	// Heuristic pass: capitalized words past the start of the message are
	// treated as geopolitical names; objects of locative prepositions as
	// generic locations.
	for i, w := range words {
		if consumed[i] {
			continue
		}
		lower := strings.ToLower(w)
		if IsStopword(lower) {
			continue
		}
		switch {
		case i > 0 && startsUpper(w):
			entities = append(entities, Entity{Text: w, Label: LabelGPE})
			consumed[i] = true
		case i > 0 && isLocativePreposition(strings.ToLower(words[i-1])):
			entities = append(entities, Entity{Text: w, Label: LabelLOC})
			consumed[i] = true
		}
	}

	return entities, nil
}

// gazetteerLabel checks a surface form against the static tables.
func gazetteerLabel(surface string) (string, bool) {
	key := StripDiacritics(surface)
	if _, ok := registry.CountryByName(key); ok {
		return LabelGPE, true
	}
	if canonical, ok := registry.CanonicalAlias(key); ok && canonical != "" {
		return LabelGPE, true
	}
	if _, ok := registry.LookupSpecialCity(key); ok {
		return LabelGPE, true
	}
	for _, c := range registry.Countries() {
		if StripDiacritics(c.Name) == key || StripDiacritics(c.Capital) == key {
			return LabelGPE, true
		}
	}
	return "", false
}

func anyConsumed(consumed []bool, start, size int) bool {
	for i := start; i < start+size; i++ {
		if consumed[i] {
			return true
		}
	}
	return false
}

func markConsumed(consumed []bool, start, size int) {
	for i := start; i < start+size; i++ {
		consumed[i] = true
	}
}

func startsUpper(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}

// isLocativePreposition reports whether the word introduces a place in
// queries like "clima en madrid".
func isLocativePreposition(w string) bool {
	return w == "en" || w == "de" || w == "para"
}
