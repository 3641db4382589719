package domain

// ProductTypeVariable marks products whose purchasable form depends on
// selecting among attribute variants (e.g. a color).
const ProductTypeVariable = "VARIABLE"

// Attributes holds the normalized attribute set of a product. Variants maps an
// attribute name to the list of values the product is offered in; the map key
// "color" is the one the matchers care about.
type Attributes struct {
	Color    string              `json:"color,omitempty"`
	Material string              `json:"material,omitempty"`
	Variants map[string][]string `json:"variantes,omitempty"`
}

// HasColorVariants reports whether the product exposes a color variant list.
// Presence of the list is enough; callers do not check membership in it.
func (a Attributes) HasColorVariants() bool {
	_, ok := a.Variants["color"]
	return ok
}

// Product is a single read-only catalog record. A snapshot of products is
// supplied per query and never mutated by the matching core.
type Product struct {
	ID          int64      `json:"id"`
	SKU         string     `json:"sku,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type,omitempty"`
	BasePrice   float64    `json:"basePrice"`
	StockAlert  bool       `json:"stockAlert"`
	SalesCount  int        `json:"salesCount"`
	Attributes  Attributes `json:"attributes,omitempty"`
}

// ScoredProduct is a product annotated with a relevance score and category for
// ranking within a single query. The score never outlives the query.
type ScoredProduct struct {
	Product
	Score    float64 `json:"score"`
	Category string  `json:"category,omitempty"`
}
