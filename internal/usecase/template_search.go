package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decohogar/backend/internal/domain"
)

// keywordSet names a room type or style and the normalized query keywords
// that imply it. Detection order follows slice order, so tables stay slices
// rather than maps.
type keywordSet struct {
	name     string
	keywords []string
}

var roomTypes = []keywordSet{
	{"dormitorio", []string{"dormitorio", "cuarto", "habitacion", "recamara", "noche", "descanso"}},
	{"oficina", []string{"oficina", "escritorio", "trabajo", "estudio", "ergonomica"}},
	{"sala", []string{"sala", "estar", "living", "sofa", "centro", "decorativa", "recibidor"}},
	{"comedor", []string{"comedor", "dining", "mesa", "silla", "banqueta"}},
	{"cocina", []string{"cocina", "taburete", "isla", "banqueta", "desayunador"}},
}

var styles = []keywordSet{
	{"moderno", []string{"moderno", "contemporaneo", "minimalista", "sencillo"}},
	{"clásico", []string{"clasico", "tradicional", "elegante", "formal"}},
	{"industrial", []string{"industrial", "rustico", "vintage", "loft"}},
	{"escandinavo", []string{"escandinavo", "nordico", "simple", "natural"}},
	{"bohemio", []string{"bohemio", "boho", "artistico", "colorido"}},
}

func detectKeywordSet(query string, sets []keywordSet) string {
	for _, set := range sets {
		if strings.Contains(query, Normalize(set.name)) {
			return set.name
		}
		for _, kw := range set.keywords {
			if strings.Contains(query, kw) {
				return set.name
			}
		}
	}
	return ""
}

// DetectRoomType returns the first room type implied by the normalized query,
// or "" when none is found.
func DetectRoomType(query string) string {
	return detectKeywordSet(Normalize(query), roomTypes)
}

// DetectStyle returns the first style implied by the normalized query, or ""
// when none is found.
func DetectStyle(query string) string {
	return detectKeywordSet(Normalize(query), styles)
}

// MatchTemplates filters a template snapshot by the room type and style
// detected in the query. Room type is mandatory: without one the result is
// empty and roomDetected is false, which tells the caller not to take the
// model fallback path. With a room type but no surviving template, the empty
// result plus roomDetected=true is the fallback signal.
//
// Survivors are sorted by sales count descending; ties go to the cheaper
// template.
func MatchTemplates(templates []domain.DesignTemplate, query string) (matches []domain.DesignTemplate, roomDetected bool) {
	query = Normalize(query)

	roomType := DetectRoomType(query)
	if roomType == "" {
		return nil, false
	}
	style := DetectStyle(query)

	for _, t := range templates {
		if Normalize(t.RoomType) != Normalize(roomType) {
			continue
		}
		if style != "" && Normalize(t.Style) != Normalize(style) {
			continue
		}
		matches = append(matches, t)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].SalesCount != matches[j].SalesCount {
			return matches[i].SalesCount > matches[j].SalesCount
		}
		return matches[i].TotalPrice < matches[j].TotalPrice
	})

	return matches, true
}

// TemplateSummary renders a plain-text summary of a template and its included
// products. Template products whose product id is not present in the snapshot
// are skipped; no referential integrity is assumed.
func TemplateSummary(template domain.DesignTemplate, templateProducts []domain.TemplateProduct, products []domain.Product) string {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var b strings.Builder
	description := template.Description
	if description == "" {
		description = "Sin descripción"
	}
	fmt.Fprintf(&b, "Plantilla: %s\nDescripción: %s\nProductos incluidos:\n", template.Name, description)

	for _, tp := range templateProducts {
		if tp.TemplateID != template.ID {
			continue
		}
		product, ok := byID[tp.ProductID]
		if !ok {
			continue
		}
		notes := ""
		if tp.Notes != "" {
			notes = fmt.Sprintf(" (%s)", tp.Notes)
		}
		optional := ""
		if tp.Optional {
			optional = " [Opcional]"
		}
		quantity := tp.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		fmt.Fprintf(&b, "- %s x%d%s%s\n", product.Name, quantity, notes, optional)
	}

	return b.String()
}
