package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/decohogar/backend/internal/domain"
	"github.com/decohogar/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search *usecase.SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(search *usecase.SearchService) *Handler {
	return &Handler{search: search}
}

type chatRequest struct {
	Message string `json:"message"`
}

type productResponse struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type templateResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	RoomType    string  `json:"room_type"`
	Style       string  `json:"style"`
	TotalPrice  float64 `json:"total_price"`
	Discount    float64 `json:"discount"`
}

type chatResponse struct {
	Response             string             `json:"response"`
	Products             []productResponse  `json:"products,omitempty"`
	Templates            []templateResponse `json:"templates,omitempty"`
	QueryType            string             `json:"query_type"`
	MentionedProductType string             `json:"mentioned_product_type,omitempty"`
	RequestedQuantity    int                `json:"requested_quantity"`
	AvailableQuantity    int                `json:"available_quantity"`
}

// Chat handles one chat turn: it runs the search pipeline and returns the
// rendered response plus the structured results.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "El mensaje no puede estar vacío"})
		return
	}

	result, err := h.search.Chat(c.Request.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "El mensaje no puede estar vacío"})
		case errors.Is(err, domain.ErrCatalogUnavailable):
			log.Printf("[HTTP] catalog error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error al buscar productos"})
		default:
			log.Printf("[HTTP] unexpected chat error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error al procesar tu solicitud"})
		}
		return
	}

	resp := chatResponse{
		Response:             result.Response,
		QueryType:            string(result.QueryType),
		MentionedProductType: result.MentionedProductType,
		RequestedQuantity:    result.RequestedQuantity,
		AvailableQuantity:    result.AvailableQuantity,
	}
	for _, p := range result.Products {
		resp.Products = append(resp.Products, productResponse{
			ID:          strconv.FormatInt(p.ID, 10),
			SKU:         p.SKU,
			Slug:        p.Slug,
			Name:        p.Name,
			Description: p.Description,
		})
	}
	for _, t := range result.Templates {
		resp.Templates = append(resp.Templates, templateResponse{
			ID:          strconv.FormatInt(t.ID, 10),
			Name:        t.Name,
			Description: t.Description,
			RoomType:    t.RoomType,
			Style:       t.Style,
			TotalPrice:  t.TotalPrice,
			Discount:    t.Discount,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

// Root returns basic API information
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API de Asistente de Decoración",
		"version": "1.0.0",
		"endpoints": gin.H{
			"chat":   "/chat - POST - Búsqueda de productos y plantillas",
			"health": "/health - GET - Estado de la API",
		},
	})
}
