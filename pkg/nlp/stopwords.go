package nlp

// spanishStopwords is the stopword table for the rule-based analyzer.
// Subset of the usual Spanish NLP stopword lists, covering articles,
// prepositions, pronouns, common auxiliaries and question words.
var spanishStopwords = map[string]bool{
	"a": true, "al": true, "algo": true, "alguna": true, "algunas": true,
	"alguno": true, "algunos": true, "ante": true, "antes": true,
	"aquel": true, "aquella": true, "aquellas": true, "aquellos": true,
	"aqui": true, "así": true, "aun": true, "aunque": true,
	"bajo": true, "bien": true,
	"cada": true, "como": true, "cómo": true, "con": true, "contra": true,
	"cual": true, "cuál": true, "cuales": true, "cuando": true,
	"cuándo": true, "cuanto": true, "cuánto": true,
	"de": true, "debe": true, "del": true, "desde": true, "donde": true,
	"dónde": true, "dos": true, "durante": true,
	"e": true, "el": true, "él": true, "ella": true, "ellas": true,
	"ellos": true, "en": true, "entre": true, "era": true, "eran": true,
	"es": true, "esa": true, "esas": true, "ese": true, "eso": true,
	"esos": true, "esta": true, "está": true, "estaba": true,
	"estamos": true, "estan": true, "están": true, "estar": true,
	"estas": true, "este": true, "esto": true, "estos": true,
	"fue": true, "fueron": true,
	"ha": true, "haber": true, "habia": true, "había": true, "han": true,
	"hasta": true, "hay": true, "he": true,
	"la": true, "las": true, "le": true, "les": true, "lo": true,
	"los": true,
	"mas": true, "más": true, "me": true, "mi": true, "mis": true,
	"mientras": true, "mismo": true, "mucho": true, "muy": true,
	"nada": true, "ni": true, "no": true, "nos": true, "nosotros": true,
	"nuestra": true, "nuestro": true,
	"o": true, "os": true, "otra": true, "otras": true, "otro": true,
	"otros": true,
	"para": true, "pero": true, "poco": true, "por": true, "porque": true,
	"puede": true, "pues": true,
	"que": true, "qué": true, "quien": true, "quién": true,
	"se": true, "sea": true, "segun": true, "según": true, "ser": true,
	"si": true, "sí": true, "siempre": true, "sin": true, "sobre": true,
	"sois": true, "solo": true, "sólo": true, "somos": true, "son": true,
	"soy": true, "su": true, "sus": true,
	"tal": true, "tambien": true, "también": true, "tan": true,
	"tanto": true, "te": true, "tengo": true, "ti": true, "tiene": true,
	"tienen": true, "toda": true, "todas": true, "todo": true,
	"todos": true, "tu": true, "tú": true, "tus": true,
	"un": true, "una": true, "unas": true, "uno": true, "unos": true,
	"usted": true, "ustedes": true,
	"va": true, "vamos": true, "van": true, "vosotros": true, "voy": true,
	"y": true, "ya": true, "yo": true,
}

// IsStopword reports whether the lowercase word is in the stopword table.
func IsStopword(word string) bool {
	return spanishStopwords[word]
}
