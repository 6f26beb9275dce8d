// Package nlp provides the language analysis capability used by the
// intent and location pipeline: tokenization, lemmatization, named-entity
// extraction and word similarity for Spanish text.
//
// The Analyzer interface abstracts the concrete implementation. The
// default is a deterministic rule-based analyzer; an optional
// Gemini-backed analyzer can replace entity extraction when an API key is
// configured. Both are safe for concurrent use.
package nlp

// Entity labels produced by ExtractEntities.
const (
	LabelGPE  = "GPE"  // geopolitical entity: country, state, city
	LabelLOC  = "LOC"  // non-political location
	LabelORG  = "ORG"  // organization
	LabelMISC = "MISC" // anything else worth surfacing
)

// Token is a single unit of analyzed text.
type Token struct {
	Text  string
	Lemma string
	Stop  bool // member of the stopword table
	Punct bool // punctuation or symbol run
}

// Entity is a named entity found in a message.
type Entity struct {
	Text  string
	Label string
}

// Analyzer is the injected NLP capability. Implementations must never
// panic on arbitrary input; errors are reserved for infrastructure
// failures (for example a model backend being unreachable).
type Analyzer interface {
	Tokenize(text string) ([]Token, error)
	Lemmatize(text string) ([]Token, error)
	ExtractEntities(text string) ([]Entity, error)
}
