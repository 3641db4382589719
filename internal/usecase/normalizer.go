package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]|_`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)
)

// colorVariants maps inflected and synonymous color spellings to their
// canonical color name. Keys are in normalized form.
var colorVariants = map[string]string{
	// Gris
	"grises": "gris", "plateado": "gris", "plateada": "gris",
	// Negro
	"negra": "negro", "negros": "negro", "negras": "negro",
	// Blanco
	"blanca": "blanco", "blancos": "blanco", "blancas": "blanco",
	// Madera
	"maderas": "madera", "natural": "madera", "naturales": "madera",
	// Beige
	"beiges": "beige", "crema": "beige", "cremas": "beige",
	// Azul
	"azules": "azul", "celeste": "azul", "celestes": "azul",
	// Rojo
	"roja": "rojo", "rojos": "rojo", "rojas": "rojo",
	// Verde
	"verdes": "verde", "esmeralda": "verde",
	// Amarillo
	"amarilla": "amarillo", "amarillos": "amarillo", "amarillas": "amarillo",
	// Rosa
	"rosas": "rosa", "fucsia": "rosa",
	// Dorado
	"dorada": "dorado", "dorados": "dorado", "doradas": "dorado",
	// Marrón
	"marron": "marrón", "cafe": "marrón", "marrones": "marrón",
}

// baseColors is the fixed base-color vocabulary the attribute matcher and the
// query-type classifier recognize.
var baseColors = map[string]bool{
	"gris": true, "negro": true, "blanco": true, "madera": true,
	"beige": true, "azul": true, "rojo": true, "verde": true,
	"amarillo": true, "rosa": true, "dorado": true, "marrón": true,
}

// Normalize canonicalizes text for matching: punctuation removed, runs of
// whitespace collapsed, lower-cased, and diacritics stripped via NFD
// decomposition. Empty input yields an empty string, never an error.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = punctuationRegex.ReplaceAllString(text, "")
	text = strings.ToLower(text)

	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		text,
	)
	if err == nil {
		text = stripped
	}

	text = multiSpaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeColor normalizes a color word and maps known variants to their
// canonical color name. Unknown words pass through in normalized form.
func NormalizeColor(word string) string {
	word = Normalize(word)
	if canonical, ok := colorVariants[word]; ok {
		return canonical
	}
	return word
}

// ContainsWord reports whether haystack contains needle, both normalized.
// This is a substring check, not a token-boundary one.
func ContainsWord(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// QueryType classifies what a user query is asking for.
type QueryType string

const (
	QueryAttributes QueryType = "attributes"
	QueryStyle      QueryType = "style"
	QueryProduct    QueryType = "product"
	QueryGeneric    QueryType = "generic"
)

// Keyword tables for the query-type classifier. All entries are in normalized
// form because they are matched against normalized queries.
var (
	attributeKeywords = []string{
		"color", "material", "tamano", "medida", "dimension",
		"alto", "ancho", "largo", "estilo", "acabado",
	}

	spaceKeywords = []string{
		"comedor", "sala", "living", "dormitorio", "habitacion", "cocina",
		"oficina", "jardin", "terraza", "bano", "cuarto", "espacio",
	}

	styleQueryKeywords = []string{
		"para", "estilo", "ambiente", "look", "diseno", "decoracion",
	}

	// Product keywords use explicit word boundaries so that e.g. "sillas"
	// does not classify as a bare "silla" mention here.
	productKeywordRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\blampara\b`),
		regexp.MustCompile(`\bsilla\b`),
		regexp.MustCompile(`\bsofa\b`),
		regexp.MustCompile(`\bmesa\b`),
		regexp.MustCompile(`\bmueble\b`),
	}
)

// DetectQueryType classifies a query by scanning its normalized form against
// fixed keyword tables. Colors win over other attributes, attributes over
// spaces, spaces over style words, style words over product mentions.
func DetectQueryType(query string) QueryType {
	query = Normalize(query)

	for _, word := range strings.Fields(query) {
		if baseColors[NormalizeColor(word)] {
			return QueryAttributes
		}
	}

	for _, kw := range attributeKeywords {
		if strings.Contains(query, kw) {
			return QueryAttributes
		}
	}

	for _, kw := range spaceKeywords {
		if strings.Contains(query, kw) {
			return QueryStyle
		}
	}

	for _, kw := range styleQueryKeywords {
		if strings.Contains(query, kw) {
			return QueryStyle
		}
	}

	for _, re := range productKeywordRegexes {
		if re.MatchString(query) {
			return QueryProduct
		}
	}

	return QueryGeneric
}
