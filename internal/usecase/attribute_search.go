package usecase

import (
	"sort"
	"strings"

	"github.com/decohogar/backend/internal/domain"
)

// maxAttributeResults caps how many products an attribute match returns
const maxAttributeResults = 12

// productTypeVocabulary is the fixed list of product types the attribute
// matcher can detect in a query, in detection priority order. Entries are in
// normalized form.
var productTypeVocabulary = []string{"silla", "mesa", "sofa", "lampara", "mueble"}

// ColorsInQuery extracts the canonical colors present in a normalized query:
// each word is color-normalized and kept when it lands in the base-color
// vocabulary.
func ColorsInQuery(query string) []string {
	var colors []string
	for _, word := range strings.Fields(query) {
		if c := NormalizeColor(word); baseColors[c] {
			colors = append(colors, c)
		}
	}
	return colors
}

// ProductTypeInQuery returns the first vocabulary product type found as a
// substring of the normalized query, or "" when none is present.
func ProductTypeInQuery(query string) string {
	query = Normalize(query)
	for _, pt := range productTypeVocabulary {
		if strings.Contains(query, pt) {
			return pt
		}
	}
	return ""
}

// MatchProductsByAttributes filters a product snapshot by the colors and
// product type detected in the query.
//
// Variant-bearing products match when a color was requested and the product
// exposes a color-variant list; membership of the requested color within that
// list is intentionally not checked. Other products must carry the requested
// color as their singular color attribute. A detected product type must also
// appear in the product's name.
//
// Survivors are sorted by sales count then base price, both descending, and
// capped at maxAttributeResults. An empty result is the signal to take the
// model fallback path.
func MatchProductsByAttributes(products []domain.Product, query string) []domain.Product {
	query = Normalize(query)
	colors := ColorsInQuery(query)
	productType := ProductTypeInQuery(query)

	var matched []domain.Product
	for _, p := range products {
		match := true

		if p.Type == domain.ProductTypeVariable {
			if len(colors) == 0 || !p.Attributes.HasColorVariants() {
				match = false
			}
		} else if len(colors) > 0 {
			productColor := Normalize(p.Attributes.Color)
			for _, c := range colors {
				if Normalize(c) != productColor {
					match = false
					break
				}
			}
		}

		if match && productType != "" {
			if !strings.Contains(Normalize(p.Name), productType) {
				match = false
			}
		}

		if match {
			matched = append(matched, p)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].SalesCount != matched[j].SalesCount {
			return matched[i].SalesCount > matched[j].SalesCount
		}
		return matched[i].BasePrice > matched[j].BasePrice
	})

	if len(matched) > maxAttributeResults {
		matched = matched[:maxAttributeResults]
	}
	return matched
}
