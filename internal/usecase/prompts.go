package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/decohogar/backend/internal/domain"
)

// Prompt builders for the hosted model. All prompts are in Spanish, ask for
// machine-readable output where a list is expected, and embed catalog data
// inline; the model never sees the database.

func productSelectionPrompt(products []domain.Product, userMessage string) string {
	var list strings.Builder
	for _, p := range products {
		fmt.Fprintf(&list, "- %s (SKU: %s, Tipo: %s)\n", p.Name, p.SKU, p.Type)
	}

	return fmt.Sprintf(`
Productos disponibles:
%s
El usuario busca: %q

Identifica los productos más relevantes considerando:
1. Coincidencias exactas o similares
2. Sin diferenciar tildes
3. SKU y tipo como contexto adicional
4. Devuelve SOLO un JSON con los nombres exactos

Ejemplo: ["Sillón Elegante", "Silla Moderna"]
`, list.String(), userMessage)
}

func singleProductSummaryPrompt(p domain.Product) string {
	stock := "Disponible"
	if p.StockAlert {
		stock = "Últimas unidades"
	}

	return fmt.Sprintf(`
Eres un experto en ventas de muebles. Crea una descripción precisa y atractiva en español para:

Nombre: %s
Tipo: %s
Descripción: %s
Precio: $%.2f
Stock: %s
Ventas: %d unidades vendidas

REGLAS:
1. Responde SIEMPRE en español
2. Mantén el nombre del producto exactamente como está
3. Sé preciso con los datos
4. Destaca disponibilidad y precio
5. Menciona el ambiente ideal para este producto
6. Máximo 2 oraciones
7. Usa un tono amigable y profesional
8. NO traduzcas el nombre del producto
`, p.Name, p.Type, p.Description, p.BasePrice, stock, p.SalesCount)
}

func groupedProductsSummaryPrompt(products []domain.Product) string {
	// Group by type in order of first appearance
	var typeOrder []string
	byType := make(map[string][]domain.Product)
	for _, p := range products {
		t := p.Type
		if t == "" {
			t = "Otros"
		}
		if _, ok := byType[t]; !ok {
			typeOrder = append(typeOrder, t)
		}
		byType[t] = append(byType[t], p)
	}

	var info strings.Builder
	for _, t := range typeOrder {
		fmt.Fprintf(&info, "\n**%s**\n", strings.ToUpper(t))
		for _, p := range byType[t] {
			fmt.Fprintf(&info, "* %s: $%.2f\n", p.Name, p.BasePrice)
		}
	}

	return fmt.Sprintf(`
Resume estos productos agrupados por tipo, destacando sus características y usos. Responde SIEMPRE en español:

%s

REGLAS:
1. Responde SIEMPRE en español
2. Mantén la agrupación por tipo de producto
3. Menciona solo el nombre y precio para cada producto
4. Mantén los nombres de productos exactamente como están
5. NO traduzcas los nombres de los productos
6. Destaca las características clave de cada tipo
7. Sugiere el mejor uso para cada grupo de productos
8. Usa un tono amigable y profesional
9. Máximo 3 oraciones por grupo de productos
10. Destaca las características únicas de cada producto
11. Asegúrate de que cada producto sea relevante para el ambiente solicitado
`, info.String())
}

func styleRecommendationPrompt(products []domain.Product, profile roomProfile) string {
	var list strings.Builder
	for _, p := range products {
		fmt.Fprintf(&list, "- %s (SKU: %s, Precio: $%.2f, Descripción: %s)\n", p.Name, p.SKU, p.BasePrice, p.Description)
	}

	room := profile.name
	return fmt.Sprintf(`
Eres un experto en decoración de interiores y análisis de productos. Tu tarea es analizar cuidadosamente cada producto y determinar si es realmente relevante para %s.

ANÁLISIS REQUERIDO:
1. Para cada producto, debes considerar:
   - ¿El producto es funcionalmente útil en %s?
   - ¿El producto es típicamente usado en %s?
   - ¿El producto tiene sentido en el contexto de %s?
   - ¿El producto podría ser confundido con otro tipo de mueble?

2. Productos que DEBEN ser descartados:
   - Productos claramente diseñados para otros ambientes
   - Productos que no tienen una función clara en %s
   - Productos que podrían confundir al usuario
   - Productos que no son típicos de %s

3. Productos que DEBEN ser priorizados:
   - Productos típicos de %s: %s
   - Productos que mencionan %s en su descripción
   - Productos que tienen una función clara en %s

Productos a analizar:
%s
INSTRUCCIONES:
1. Analiza CADA producto individualmente
2. Para cada producto, escribe una breve justificación de por qué SÍ o por qué NO es relevante
3. Selecciona SOLO los productos que son CLARAMENTE relevantes para %s
4. NO incluyas productos que generen dudas
5. Devuelve un JSON con:
   - Lista de productos seleccionados
   - Explicación de por qué cada producto es relevante
   - Lista de productos descartados y por qué

Ejemplo de respuesta:
{
    "productos_seleccionados": ["Silla Ergonómica X", "Escritorio Moderno Y"],
    "explicacion": "Estos productos son ideales para tu oficina porque...",
    "productos_descartados": [
        {
            "nombre": "Cortina de Baño",
            "razon": "Este producto está diseñado específicamente para baños y no tiene función en una oficina"
        }
    ]
}
`, profile.description, room, room, room, room, room, room, strings.Join(profile.typicalProducts, ", "), room, room, list.String(), room)
}

func attributeFallbackPrompt(products []domain.Product, userQuery string, colors []string, productType string) string {
	type promptProduct struct {
		ID         int64             `json:"id"`
		Name       string            `json:"name"`
		SKU        string            `json:"sku"`
		Type       string            `json:"type"`
		Attributes domain.Attributes `json:"attributes"`
	}

	data := make([]promptProduct, 0, len(products))
	for _, p := range products {
		data = append(data, promptProduct{
			ID:         p.ID,
			Name:       p.Name,
			SKU:        p.SKU,
			Type:       p.Type,
			Attributes: p.Attributes,
		})
	}
	encoded, _ := json.MarshalIndent(data, "", "  ")

	colorDesc := "No especificado"
	if len(colors) > 0 {
		colorDesc = strings.Join(colors, ", ")
	}
	typeDesc := productType
	if typeDesc == "" {
		typeDesc = "No especificado"
	}

	return fmt.Sprintf(`
Consulta: %q

Productos:
%s

INSTRUCCIONES:
1. Busca coincidencias con:
   - Color: %s
   - Tipo: %s
2. Considera variantes para productos VARIABLE
3. Devuelve SOLO un JSON con los IDs
`, userQuery, encoded, colorDesc, typeDesc)
}

func templateFallbackPrompt(templates []domain.DesignTemplate, templateProducts []domain.TemplateProduct, userMessage, roomType, style string) string {
	type promptTemplateProduct struct {
		ID       int64  `json:"id"`
		Quantity int    `json:"quantity"`
		Optional bool   `json:"optional"`
		Notes    string `json:"notes"`
	}
	type promptTemplate struct {
		ID         int64                   `json:"id"`
		Name       string                  `json:"name"`
		Desc       string                  `json:"description"`
		Style      string                  `json:"style"`
		RoomType   string                  `json:"room_type"`
		TotalPrice float64                 `json:"total_price"`
		Discount   float64                 `json:"discount"`
		SalesCount int                     `json:"sales_count"`
		Products   []promptTemplateProduct `json:"products"`
	}

	data := make([]promptTemplate, 0, len(templates))
	for _, t := range templates {
		pt := promptTemplate{
			ID:         t.ID,
			Name:       t.Name,
			Desc:       t.Description,
			Style:      t.Style,
			RoomType:   t.RoomType,
			TotalPrice: t.TotalPrice,
			Discount:   t.Discount,
			SalesCount: t.SalesCount,
			Products:   []promptTemplateProduct{},
		}
		for _, tp := range templateProducts {
			if tp.TemplateID != t.ID {
				continue
			}
			pt.Products = append(pt.Products, promptTemplateProduct{
				ID:       tp.ProductID,
				Quantity: tp.Quantity,
				Optional: tp.Optional,
				Notes:    tp.Notes,
			})
		}
		data = append(data, pt)
	}
	encoded, _ := json.MarshalIndent(data, "", "  ")

	styleDesc := style
	if styleDesc == "" {
		styleDesc = "No especificado"
	}

	return fmt.Sprintf(`
Consulta: %q

Plantillas disponibles:
%s

INSTRUCCIONES:
1. Busca coincidencias con:
   - Tipo de habitación: %s
   - Estilo: %s
2. Considera:
   - Precio total
   - Descuentos disponibles
   - Popularidad (ventas)
   - Productos incluidos
3. Devuelve SOLO un JSON con los IDs de las plantillas más relevantes
`, userMessage, encoded, roomType, styleDesc)
}

func templateSummaryPrompt(template domain.DesignTemplate, templateProducts []domain.TemplateProduct) string {
	type promptTemplateProduct struct {
		ID       int64  `json:"id"`
		Quantity int    `json:"quantity"`
		Optional bool   `json:"optional"`
		Notes    string `json:"notes"`
	}

	included := []promptTemplateProduct{}
	for _, tp := range templateProducts {
		if tp.TemplateID != template.ID {
			continue
		}
		included = append(included, promptTemplateProduct{
			ID:       tp.ProductID,
			Quantity: tp.Quantity,
			Optional: tp.Optional,
			Notes:    tp.Notes,
		})
	}
	encoded, _ := json.MarshalIndent(included, "", "  ")

	return fmt.Sprintf(`
Eres un experto en diseño de interiores. Crea una descripción atractiva para esta plantilla:

Nombre: %s
Descripción: %s
Tipo de Habitación: %s
Estilo: %s
Precio Total: $%.2f
Descuento: %.0f%%
Ventas: %d unidades vendidas

Productos incluidos:
%s

REGLAS:
1. Responde SIEMPRE en español
2. Mantén el nombre de la plantilla exactamente como está
3. Sé preciso con los datos
4. Destaca el estilo y tipo de habitación
5. Menciona los productos más importantes
6. Máximo 3 oraciones
7. Usa un tono amigable y profesional
8. NO traduzcas los nombres de los productos
`, template.Name, template.Description, template.RoomType, template.Style, template.TotalPrice, template.Discount, template.SalesCount, encoded)
}
