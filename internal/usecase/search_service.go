package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/decohogar/backend/internal/domain"
)

// Prompt size limits: the model only ever sees a bounded slice of the catalog.
const (
	maxAttributePromptProducts = 50
	maxStylePromptProducts     = 30
)

// DefaultQuantity is how many results a chat turn shows when the user does
// not ask for a specific amount.
const DefaultQuantity = 4

// productTypeMentions lists the product types, singular and plural, that mark
// a query as being about a concrete product. Entries are in normalized form.
var productTypeMentions = []string{
	"silla", "sillas",
	"mesa", "mesas",
	"sofa", "sofas",
	"lampara", "lamparas",
	"mueble", "muebles",
	"estanteria", "estanterias",
	"cama", "camas",
	"armario", "armarios",
}

// templateKeywords flag a query as asking for a design template rather than
// individual products. Entries are in normalized form.
var templateKeywords = []string{"plantilla", "diseno", "decoracion", "estilo", "conjunto", "pack"}

// quantityPatterns extract an explicit result count from the raw query. Order
// matters: more specific phrasings come before their prefixes.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:opciones|productos|muebles|sillas|mesas|sofás|lamparas|estanterías|camas|armarios)`),
	regexp.MustCompile(`quiero\s*ver\s*(\d+)`),
	regexp.MustCompile(`quiero\s*(\d+)`),
	regexp.MustCompile(`necesito\s*(\d+)`),
	regexp.MustCompile(`busco\s*(\d+)`),
	regexp.MustCompile(`mostrar\s*(\d+)`),
	regexp.MustCompile(`ver\s*(\d+)`),
	regexp.MustCompile(`dame\s*(\d+)`),
	regexp.MustCompile(`opciones\s*(\d+)`),
	regexp.MustCompile(`productos\s*(\d+)`),
	regexp.MustCompile(`unos?\s*(\d+)`),
	regexp.MustCompile(`algunos?\s*(\d+)`),
	regexp.MustCompile(`(\d+)\s*(?:mas|más)`),
	regexp.MustCompile(`(\d+)\s*(?:ejemplos|opciones|productos)`),
}

// roomProfile drives the style-recommendation path: detection keywords, the
// room description fed to the model, and product lists used to prioritize and
// post-filter its picks. Keyword and irrelevant-product entries are in
// normalized form.
type roomProfile struct {
	name               string
	keywords           []string
	description        string
	typicalProducts    []string
	irrelevantProducts []string
}

var roomProfiles = []roomProfile{
	{
		name:               "dormitorio",
		keywords:           []string{"dormitorio", "cuarto", "habitacion", "recamara", "noche", "descanso", "velador", "cama", "mesita"},
		description:        "un espacio para descansar y relajarse",
		typicalProducts:    []string{"cama", "velador", "armario", "mesita de noche", "lámpara de noche"},
		irrelevantProducts: []string{"sofa", "mesa de comedor", "taburete", "cortina de bano", "escritorio", "archivador"},
	},
	{
		name:               "oficina",
		keywords:           []string{"oficina", "escritorio", "trabajo", "estudio", "ergonomica", "archivador"},
		description:        "un espacio para trabajar y concentrarse",
		typicalProducts:    []string{"escritorio", "silla ergonómica", "archivador", "lámpara de escritorio", "estantería"},
		irrelevantProducts: []string{"sofa", "cama", "velador", "cortina de bano", "mesa de comedor", "biombo", "fundas"},
	},
	{
		name:               "sala",
		keywords:           []string{"sala", "estar", "living", "sofa", "centro", "decorativa", "recibidor"},
		description:        "un espacio para socializar y recibir visitas",
		typicalProducts:    []string{"sofá", "mesa de centro", "sillón", "lámpara de pie", "estantería decorativa"},
		irrelevantProducts: []string{"escritorio", "archivador", "velador", "cortina de bano", "silla ergonomica"},
	},
	{
		name:               "comedor",
		keywords:           []string{"comedor", "dining", "mesa", "silla", "banqueta"},
		description:        "un espacio para compartir comidas",
		typicalProducts:    []string{"mesa de comedor", "sillas de comedor", "banqueta", "lámpara colgante"},
		irrelevantProducts: []string{"escritorio", "archivador", "sofa", "cortina de bano", "silla ergonomica"},
	},
	{
		name:               "cocina",
		keywords:           []string{"cocina", "taburete", "isla", "banqueta", "desayunador"},
		description:        "un espacio para preparar y disfrutar comidas",
		typicalProducts:    []string{"taburete", "banqueta", "mesa de desayunador", "estantería de cocina"},
		irrelevantProducts: []string{"sofa", "escritorio", "cama", "cortina de bano", "silla ergonomica"},
	},
}

// ChatResult is the outcome of one chat turn: the rendered response plus the
// structured results the delivery layer echoes back.
type ChatResult struct {
	Response             string
	Products             []domain.Product
	Templates            []domain.DesignTemplate
	QueryType            QueryType
	MentionedProductType string
	RequestedQuantity    int
	AvailableQuantity    int
}

// SearchService runs the chat pipeline: deterministic catalog matching first,
// the hosted model only when the deterministic strategies come up empty.
type SearchService struct {
	catalog         domain.CatalogRepository
	model           domain.ModelClient
	analyzer        *RoomAnalyzer
	defaultQuantity int
}

func NewSearchService(catalog domain.CatalogRepository, model domain.ModelClient, defaultQuantity int) *SearchService {
	if defaultQuantity <= 0 {
		defaultQuantity = DefaultQuantity
	}
	return &SearchService{
		catalog:         catalog,
		model:           model,
		analyzer:        NewRoomAnalyzer(),
		defaultQuantity: defaultQuantity,
	}
}

// ExtractQuantity pulls an explicit result count out of the raw query and
// returns it with the query stripped of the count phrasing. Queries without a
// count get the service default.
func (s *SearchService) ExtractQuantity(query string) (int, string) {
	lower := strings.ToLower(query)
	for _, pattern := range quantityPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		var quantity int
		fmt.Sscanf(m[1], "%d", &quantity)
		clean := strings.TrimSpace(pattern.ReplaceAllString(lower, ""))
		return quantity, clean
	}
	return s.defaultQuantity, query
}

// MentionedProductType returns the first known product type mentioned in the
// normalized query, or "".
func MentionedProductType(query string) string {
	query = Normalize(query)
	for _, pt := range productTypeMentions {
		if strings.Contains(query, pt) {
			return pt
		}
	}
	return ""
}

// IsTemplateQuery reports whether the normalized query asks for design
// templates rather than individual products.
func IsTemplateQuery(query string) bool {
	query = Normalize(query)
	for _, kw := range templateKeywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

// SearchProducts finds catalog products for a free-text query. Strategies run
// in order: the aggregate lexical search over product names, a direct
// substring scan, and finally a model call asking for exact names. Each later
// strategy only runs when the earlier ones found nothing.
func (s *SearchService) SearchProducts(ctx context.Context, products []domain.Product, query string) []domain.Product {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}

	if matched := ImproveProductSearch(query, names); len(matched) > 0 {
		return productsByExactName(products, matched)
	}

	nq := Normalize(query)
	var direct []domain.Product
	for _, p := range products {
		if strings.Contains(Normalize(p.Name), nq) {
			direct = append(direct, p)
		}
	}
	if len(direct) > 0 {
		return direct
	}

	if len(products) == 0 {
		return nil
	}

	log.Printf("[SEARCH] lexical strategies empty for %q, asking model", nq)
	response := s.model.Ask(ctx, productSelectionPrompt(products, query))
	return productsByNormalizedName(products, SanitizeStringList(response))
}

// SearchProductsByAttributes finds catalog products matching the colors and
// product type in the query, falling back to a model call that returns
// product ids when the deterministic matcher finds nothing.
func (s *SearchService) SearchProductsByAttributes(ctx context.Context, products []domain.Product, query string) []domain.Product {
	if matched := MatchProductsByAttributes(products, query); len(matched) > 0 {
		return matched
	}
	if len(products) == 0 {
		return nil
	}

	subset := products
	if len(subset) > maxAttributePromptProducts {
		subset = subset[:maxAttributePromptProducts]
	}
	colors := ColorsInQuery(Normalize(query))
	productType := ProductTypeInQuery(query)

	log.Printf("[SEARCH] attribute matcher empty for %q, asking model", query)
	response := s.model.Ask(ctx, attributeFallbackPrompt(subset, query, colors, productType))
	return productsByID(products, SanitizeIntList(response))
}

// SearchTemplates finds design templates for the query. The deterministic
// room/style matcher runs first; the model fallback with template ids only
// runs when a room type was detected but no template survived the narrowing.
func (s *SearchService) SearchTemplates(ctx context.Context, templates []domain.DesignTemplate, templateProducts []domain.TemplateProduct, query string) []domain.DesignTemplate {
	matched, roomDetected := MatchTemplates(templates, query)
	if len(matched) > 0 || !roomDetected {
		return matched
	}
	if len(templates) == 0 {
		return nil
	}

	roomType := DetectRoomType(query)
	style := DetectStyle(query)

	log.Printf("[SEARCH] no templates for room %q style %q, asking model", roomType, style)
	response := s.model.Ask(ctx, templateFallbackPrompt(templates, templateProducts, query, roomType, style))
	return templatesByID(templates, SanitizeIntList(response))
}

// StyleRecommendations asks the model to curate products for the room implied
// by the query. Queries with no recognizable room yield nothing. The model's
// picks are post-filtered against the room's irrelevant-product list.
func (s *SearchService) StyleRecommendations(ctx context.Context, products []domain.Product, query string) []domain.Product {
	nq := Normalize(query)

	var profile *roomProfile
	for i := range roomProfiles {
		if roomProfiles[i].matches(nq) {
			profile = &roomProfiles[i]
			break
		}
	}
	if profile == nil || len(products) == 0 {
		return nil
	}

	subset := products
	if len(subset) > maxStylePromptProducts {
		subset = subset[:maxStylePromptProducts]
	}

	response := s.model.Ask(ctx, styleRecommendationPrompt(subset, *profile))

	var structured struct {
		Selected []string `json:"productos_seleccionados"`
	}
	var names []string
	if err := json.Unmarshal([]byte(response), &structured); err == nil && len(structured.Selected) > 0 {
		names = structured.Selected
	} else {
		names = SanitizeStringList(response)
	}

	var kept []string
	for _, name := range names {
		normalized := Normalize(name)
		relevant := true
		for _, irr := range profile.irrelevantProducts {
			if strings.Contains(normalized, irr) {
				relevant = false
				break
			}
		}
		if relevant {
			kept = append(kept, name)
		}
	}

	return productsByExactName(products, kept)
}

func (p roomProfile) matches(normalizedQuery string) bool {
	if strings.Contains(normalizedQuery, p.name) {
		return true
	}
	for _, kw := range p.keywords {
		if strings.Contains(normalizedQuery, kw) {
			return true
		}
	}
	return false
}

// SummarizeProducts renders a sales-style summary of the shown products via
// the model, with static fallbacks when there is nothing to show or the model
// returns a blank response.
func (s *SearchService) SummarizeProducts(ctx context.Context, products []domain.Product) string {
	if len(products) == 0 {
		return "No encontré productos que coincidan exactamente con tu búsqueda."
	}

	var prompt string
	if len(products) == 1 {
		prompt = singleProductSummaryPrompt(products[0])
	} else {
		prompt = groupedProductsSummaryPrompt(products)
	}

	response := strings.TrimSpace(s.model.Ask(ctx, prompt))
	if response == "" || response == "[]" {
		return fmt.Sprintf("Encontré %d opciones relevantes.", len(products))
	}
	return response
}

// SummarizeTemplate renders a model-written description of one template, with
// a static fallback on a blank response.
func (s *SearchService) SummarizeTemplate(ctx context.Context, template domain.DesignTemplate, templateProducts []domain.TemplateProduct) string {
	response := strings.TrimSpace(s.model.Ask(ctx, templateSummaryPrompt(template, templateProducts)))
	if response == "" || response == "[]" {
		return "No se pudo generar una descripción para esta plantilla."
	}
	return response
}

// Chat runs one full chat turn: quantity extraction, query classification,
// the template / room-analysis / product search paths, and response
// rendering. The only error conditions are an empty message and an
// unreachable catalog; every model-side failure degrades to fewer results.
func (s *SearchService) Chat(ctx context.Context, message string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	requestedQuantity, cleanQuery := s.ExtractQuantity(message)
	userQuery := Normalize(cleanQuery)
	queryType := DetectQueryType(userQuery)
	productType := MentionedProductType(userQuery)

	log.Printf("[CHAT] type=%s query=%q normalized=%q product_type=%q quantity=%d",
		queryType, message, userQuery, productType, requestedQuantity)

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	templates, err := s.catalog.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	templateProducts, err := s.catalog.ListTemplateProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	if IsTemplateQuery(userQuery) {
		return s.chatTemplates(ctx, templates, templateProducts, products, userQuery, productType, requestedQuantity)
	}

	if room := s.analyzer.DetectRoom(userQuery); room != "" {
		return s.chatRoomAnalysis(products, room, userQuery, queryType, productType, requestedQuantity)
	}

	var matched []domain.Product
	if queryType == QueryAttributes {
		matched = s.SearchProductsByAttributes(ctx, products, userQuery)
	} else {
		matched = s.SearchProducts(ctx, products, userQuery)
		if len(matched) == 0 {
			matched = s.StyleRecommendations(ctx, products, userQuery)
		}
	}

	available := requestedQuantity
	if len(matched) < available {
		available = len(matched)
	}
	shown := matched[:available]

	response := s.SummarizeProducts(ctx, shown) + productQuantityMessage(available, requestedQuantity)

	return &ChatResult{
		Response:             response,
		Products:             shown,
		QueryType:            queryType,
		MentionedProductType: productType,
		RequestedQuantity:    requestedQuantity,
		AvailableQuantity:    available,
	}, nil
}

func (s *SearchService) chatTemplates(ctx context.Context, templates []domain.DesignTemplate, templateProducts []domain.TemplateProduct, products []domain.Product, userQuery string, productType string, requestedQuantity int) (*ChatResult, error) {
	matched := s.SearchTemplates(ctx, templates, templateProducts, userQuery)

	available := requestedQuantity
	if len(matched) < available {
		available = len(matched)
	}
	shown := matched[:available]

	var b strings.Builder
	for _, t := range shown {
		fmt.Fprintf(&b, "\n%s\n", TemplateSummary(t, templateProducts, products))
	}
	b.WriteString(templateQuantityMessage(available, requestedQuantity))

	return &ChatResult{
		Response:             b.String(),
		Templates:            shown,
		QueryType:            "template",
		MentionedProductType: productType,
		RequestedQuantity:    requestedQuantity,
		AvailableQuantity:    available,
	}, nil
}

func (s *SearchService) chatRoomAnalysis(products []domain.Product, room, userQuery string, queryType QueryType, productType string, requestedQuantity int) (*ChatResult, error) {
	groups := s.analyzer.Analyze(products, room)
	response := s.analyzer.Summary(groups, room)

	var flat []domain.Product
	for _, group := range groups {
		for _, sp := range group.Products {
			flat = append(flat, sp.Product)
		}
	}
	if len(flat) > requestedQuantity {
		flat = flat[:requestedQuantity]
	}

	response += productQuantityMessage(len(flat), requestedQuantity)

	return &ChatResult{
		Response:             response,
		Products:             flat,
		QueryType:            queryType,
		MentionedProductType: productType,
		RequestedQuantity:    requestedQuantity,
		AvailableQuantity:    len(flat),
	}, nil
}

func productQuantityMessage(available, requested int) string {
	switch {
	case available >= requested:
		return ""
	case available == 0:
		return "\n\nLo siento, no encontré más productos que coincidan con tu búsqueda."
	case available == 1:
		return "\n\nSolo encontré 1 producto más que coincide con tu búsqueda."
	default:
		return fmt.Sprintf("\n\nSolo encontré %d productos más que coinciden con tu búsqueda de %d solicitados.", available, requested)
	}
}

func templateQuantityMessage(available, requested int) string {
	switch {
	case available >= requested:
		return ""
	case available == 0:
		return "\n\nLo siento, no encontré plantillas que coincidan con tu búsqueda."
	case available == 1:
		return "\n\nSolo encontré 1 plantilla que coincide con tu búsqueda."
	default:
		return fmt.Sprintf("\n\nSolo encontré %d plantillas que coinciden con tu búsqueda de %d solicitadas.", available, requested)
	}
}

func productsByExactName(products []domain.Product, names []string) []domain.Product {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var matched []domain.Product
	for _, p := range products {
		if wanted[p.Name] {
			matched = append(matched, p)
		}
	}
	return matched
}

func productsByNormalizedName(products []domain.Product, names []string) []domain.Product {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[Normalize(n)] = true
	}
	var matched []domain.Product
	for _, p := range products {
		if wanted[Normalize(p.Name)] {
			matched = append(matched, p)
		}
	}
	return matched
}

func productsByID(products []domain.Product, ids []int) []domain.Product {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[int64(id)] = true
	}
	var matched []domain.Product
	for _, p := range products {
		if wanted[p.ID] {
			matched = append(matched, p)
		}
	}
	return matched
}

func templatesByID(templates []domain.DesignTemplate, ids []int) []domain.DesignTemplate {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[int64(id)] = true
	}
	var matched []domain.DesignTemplate
	for _, t := range templates {
		if wanted[t.ID] {
			matched = append(matched, t)
		}
	}
	return matched
}
