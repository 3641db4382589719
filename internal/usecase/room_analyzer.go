package usecase

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/decohogar/backend/internal/domain"
)

// relevanceThreshold is the minimum score a product needs to be kept in a
// room analysis.
const relevanceThreshold = 0.3

// Relevance scoring weights: a room keyword in the product name counts more
// than one in the description.
const (
	nameKeywordWeight        = 0.5
	descriptionKeywordWeight = 0.3
)

// Product group categories, in the order groups are rendered.
const (
	CategoryMainFurniture = "mobiliario_principal"
	CategoryLighting      = "iluminacion"
	CategoryOrganization  = "organizacion"
	CategoryDecoration    = "decoracion"
)

var groupOrder = []string{
	CategoryMainFurniture,
	CategoryLighting,
	CategoryOrganization,
	CategoryDecoration,
}

var categoryEmojis = map[string]string{
	CategoryMainFurniture: "🪑",
	CategoryLighting:      "💡",
	CategoryOrganization:  "🗄️",
	CategoryDecoration:    "🎨",
}

// roomKeywords associates each known room with the normalized query and
// product-text keywords that imply it. Kept as an ordered slice so detection
// is deterministic.
var roomKeywords = []keywordSet{
	{"oficina", []string{"oficina", "trabajo", "escritorio", "laboral", "profesional"}},
	{"dormitorio", []string{"dormitorio", "habitacion", "recamara", "cuarto", "cama"}},
	{"sala", []string{"sala", "living", "estar", "recibidor", "social"}},
	{"comedor", []string{"comedor", "dining", "mesa", "comida"}},
	{"cocina", []string{"cocina", "kitchen", "cooking", "preparacion"}},
	{"baño", []string{"bano", "bathroom", "wc", "sanitario"}},
	{"exterior", []string{"exterior", "jardin", "terraza", "patio", "balcon"}},
}

// roomExclusions lists product-name keywords that disqualify a product from a
// room outright, e.g. beds never belong in an office listing.
var roomExclusions = map[string][]string{
	"oficina":    {"cama", "colchon", "dormitorio", "recamara"},
	"dormitorio": {"oficina", "escritorio", "laboral"},
	"baño":       {"sofa", "sillon", "mesa", "escritorio"},
	"cocina":     {"sofa", "sillon", "cama", "colchon"},
	"exterior":   {"sofa", "sillon", "cama", "colchon", "escritorio"},
}

// Product-type keywords that move a product out of the default furniture
// category.
var (
	lightingTypeKeywords     = []string{"lampara", "luz", "iluminacion"}
	organizationTypeKeywords = []string{"estanteria", "armario", "cajonera"}
	decorationTypeKeywords   = []string{"cuadro", "alfombra", "cortina"}
)

// ProductGroup is one rendered section of a room analysis: a category and the
// relevant products assigned to it, ordered by descending relevance.
type ProductGroup struct {
	Category string
	Products []domain.ScoredProduct
}

// RoomAnalyzer scores catalog products for relevance to a detected room and
// groups the survivors by category.
type RoomAnalyzer struct{}

func NewRoomAnalyzer() *RoomAnalyzer {
	return &RoomAnalyzer{}
}

// DetectRoom returns the first known room implied by the query, or "" when
// none is found.
func (a *RoomAnalyzer) DetectRoom(query string) string {
	query = Normalize(query)
	for _, room := range roomKeywords {
		for _, kw := range room.keywords {
			if strings.Contains(query, kw) {
				return room.name
			}
		}
	}
	return ""
}

// Relevance scores a product for a room and assigns its display category.
// Excluded products and unknown rooms score 0.
func (a *RoomAnalyzer) Relevance(product domain.Product, room string) (float64, string) {
	keywords := keywordsForRoom(room)
	if keywords == nil {
		return 0, ""
	}

	name := Normalize(product.Name)
	for _, excl := range roomExclusions[room] {
		if strings.Contains(name, excl) {
			return 0, ""
		}
	}

	description := Normalize(product.Description)
	score := 0.0
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			score += nameKeywordWeight
		}
		if strings.Contains(description, kw) {
			score += descriptionKeywordWeight
		}
	}

	category := CategoryMainFurniture
	productType := Normalize(product.Type)
	switch {
	case containsAny(productType, lightingTypeKeywords):
		category = CategoryLighting
	case containsAny(productType, organizationTypeKeywords):
		category = CategoryOrganization
	case containsAny(productType, decorationTypeKeywords):
		category = CategoryDecoration
	}

	return score, category
}

// Analyze scores every product against the room, drops those below the
// relevance threshold, and groups survivors by category in render order.
// Unknown rooms yield no groups.
func (a *RoomAnalyzer) Analyze(products []domain.Product, room string) []ProductGroup {
	if keywordsForRoom(room) == nil {
		return nil
	}

	byCategory := make(map[string][]domain.ScoredProduct)
	for _, p := range products {
		score, category := a.Relevance(p, room)
		if score <= relevanceThreshold {
			continue
		}
		byCategory[category] = append(byCategory[category], domain.ScoredProduct{
			Product:  p,
			Score:    score,
			Category: category,
		})
	}

	var groups []ProductGroup
	for _, category := range groupOrder {
		scored := byCategory[category]
		if len(scored) == 0 {
			continue
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
		groups = append(groups, ProductGroup{Category: category, Products: scored})
	}
	return groups
}

// Summary renders the grouped analysis as a chat-ready markdown listing.
func (a *RoomAnalyzer) Summary(groups []ProductGroup, room string) string {
	if len(groups) == 0 {
		return "No encontré productos relevantes para este ambiente."
	}

	keywords := keywordsForRoom(room)

	var lines []string
	for _, group := range groups {
		emoji, ok := categoryEmojis[group.Category]
		if !ok {
			emoji = "📦"
		}
		// cases.Caser is stateful, so build one per call
		title := cases.Title(language.Spanish).String(strings.ReplaceAll(group.Category, "_", " "))
		lines = append(lines, fmt.Sprintf("\n**%s %s**", emoji, title))

		for _, sp := range group.Products {
			lines = append(lines, fmt.Sprintf("* %s: $%.2f", sp.Name, sp.BasePrice))
		}

		lines = append(lines, fmt.Sprintf("\nProductos ideales para %s que ofrecen %s.", room, strings.Join(keywords, ", ")))
	}
	return strings.Join(lines, "\n")
}

func keywordsForRoom(room string) []string {
	for _, r := range roomKeywords {
		if r.name == room {
			return r.keywords
		}
	}
	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
