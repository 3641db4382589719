package usecase

import (
	"strings"
	"unicode/utf8"
)

// Fuzzy thresholds for the aggregate product search strategies
const (
	directThreshold    = 0.8 // full query as typed
	correctedThreshold = 0.8 // query after mistake correction
	synonymThreshold   = 0.7 // synonym expansions
	wordThreshold      = 0.6 // individual query words
	minWordLength      = 3   // shorter words are too noisy to search alone
)

// commonMistakes maps canonical product-type names to known misspellings,
// unaccented variants and pluralizations. List entries are in normalized form.
var commonMistakes = map[string][]string{
	"silla":      {"sila", "silas", "sillas", "cilla", "cillas", "syla"},
	"mesa":       {"mesas", "meza", "mezas", "messa"},
	"sofá":       {"sofa", "sofas", "zofa", "sofaa"},
	"lámpara":    {"lampara", "lamparas", "lanpara", "lampra"},
	"mueble":     {"muebles", "mueles", "muevle"},
	"estantería": {"estanteria", "estanterias", "stanteria"},
	"cama":       {"camas", "kama"},
	"armario":    {"armarios", "almario", "almarios"},
}

// productSynonyms maps canonical product-type names to terms users reach for
// instead. Each list includes the canonical term itself.
var productSynonyms = map[string][]string{
	"silla":      {"silla", "asiento", "asientos", "banqueta", "taburete"},
	"mesa":       {"mesa", "tabla", "tablas", "mesita", "escritorio"},
	"sofá":       {"sofá", "sofa", "sillon", "sillones", "couch"},
	"lámpara":    {"lámpara", "lampara", "luminaria", "luminarias", "luz"},
	"mueble":     {"mueble", "mobiliario", "muebles"},
	"estantería": {"estantería", "estanteria", "librero", "repisa", "estante"},
	"cama":       {"cama", "lecho", "litera"},
	"armario":    {"armario", "ropero", "closet", "guardarropa"},
}

// mistakeLookup is the inverted commonMistakes table: normalized misspelling
// to canonical form.
var mistakeLookup = func() map[string]string {
	lookup := make(map[string]string)
	for canonical, mistakes := range commonMistakes {
		for _, m := range mistakes {
			lookup[m] = canonical
		}
	}
	return lookup
}()

// CorrectCommonMistakes returns the canonical product-type name when the word
// is a known misspelling of one, and the original word unchanged otherwise.
// Callers needing the normalized form must normalize separately.
func CorrectCommonMistakes(word string) string {
	if canonical, ok := mistakeLookup[Normalize(word)]; ok {
		return canonical
	}
	return word
}

// ProductSynonyms returns the full synonym list (canonical term included) when
// the word is a known product type or one of its synonyms, and a single-element
// list with the original word otherwise.
func ProductSynonyms(word string) []string {
	normalized := Normalize(word)
	for canonical, synonyms := range productSynonyms {
		if Normalize(canonical) == normalized {
			return synonyms
		}
		for _, s := range synonyms {
			if Normalize(s) == normalized {
				return synonyms
			}
		}
	}
	return []string{word}
}

// Similarity is a symmetric string-similarity ratio in [0,1] based on the
// longest common subsequence of characters: 2*LCS/(len(a)+len(b)).
// Identical strings score 1.0, strings with no characters in common 0.0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	// Two-row LCS table, same space trick as a rolling Levenshtein
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return 2.0 * float64(lcs) / float64(len(ra)+len(rb))
}

// FuzzySearch returns the candidate names matching the query, in input order,
// deduplicated by the original name. A candidate matches when either
// normalized string contains the other (regardless of threshold) or when the
// similarity ratio meets the threshold.
func FuzzySearch(query string, names []string, threshold float64) []string {
	nq := Normalize(query)

	var matches []string
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		nn := Normalize(name)
		if strings.Contains(nn, nq) || strings.Contains(nq, nn) || Similarity(nq, nn) >= threshold {
			matches = append(matches, name)
			seen[name] = true
		}
	}
	return matches
}

// ImproveProductSearch is the aggregate lexical strategy over literal product
// names. It unions, in order: a direct fuzzy search, a search on the
// mistake-corrected query, searches on synonym expansions, and searches on
// each individual query word. An empty result signals that the deterministic
// strategies found nothing and the model fallback should run.
func ImproveProductSearch(query string, names []string) []string {
	nq := Normalize(query)
	if nq == "" {
		return nil
	}

	var results []string
	seen := make(map[string]bool)
	add := func(matches []string) {
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				results = append(results, m)
			}
		}
	}

	// 1. Direct search on the query as typed
	add(FuzzySearch(nq, names, directThreshold))

	// 2. Search on the word-by-word corrected query
	corrected := correctQuery(nq)
	if corrected != nq {
		add(FuzzySearch(corrected, names, correctedThreshold))
	}

	// 3. Synonym expansions of the corrected query terms
	for _, syn := range querySynonyms(corrected) {
		if Normalize(syn) != nq {
			add(FuzzySearch(syn, names, synonymThreshold))
		}
	}

	// 4. Each corrected query word on its own
	for _, word := range strings.Fields(corrected) {
		if utf8.RuneCountInString(word) >= minWordLength {
			add(FuzzySearch(word, names, wordThreshold))
		}
	}

	return results
}

// correctQuery applies mistake correction to each word of a normalized query.
func correctQuery(query string) string {
	words := strings.Fields(query)
	changed := false
	for i, w := range words {
		if corrected := CorrectCommonMistakes(w); corrected != w {
			words[i] = Normalize(corrected)
			changed = true
		}
	}
	if !changed {
		return query
	}
	return strings.Join(words, " ")
}

// querySynonyms expands a normalized query into synonym candidates: the whole
// query when it is a known term, otherwise every table hit among its words.
func querySynonyms(query string) []string {
	if syns := ProductSynonyms(query); len(syns) > 1 {
		return syns
	}

	var expansions []string
	seen := make(map[string]bool)
	for _, word := range strings.Fields(query) {
		syns := ProductSynonyms(word)
		if len(syns) == 1 && Normalize(syns[0]) == word {
			continue // no table hit for this word
		}
		for _, s := range syns {
			if !seen[s] {
				seen[s] = true
				expansions = append(expansions, s)
			}
		}
	}
	return expansions
}
