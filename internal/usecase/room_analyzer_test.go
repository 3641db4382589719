package usecase

import (
	"strings"
	"testing"

	"github.com/decohogar/backend/internal/domain"
)

func TestDetectRoom(t *testing.T) {
	analyzer := NewRoomAnalyzer()

	tests := []struct {
		query string
		want  string
	}{
		{"muebles para mi oficina", "oficina"},
		{"algo para el cuarto", "dormitorio"},
		{"decorar el living", "sala"},
		{"cosas para el baño", "baño"},
		{"muebles de jardín", "exterior"},
		{"hola", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := analyzer.DetectRoom(tt.query); got != tt.want {
				t.Errorf("DetectRoom(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestRelevance(t *testing.T) {
	analyzer := NewRoomAnalyzer()

	t.Run("scores name hits above description hits", func(t *testing.T) {
		inName := domain.Product{Name: "Escritorio Compacto", Description: "madera clara"}
		inDesc := domain.Product{Name: "Mesa Plegable", Description: "ideal para trabajo"}

		nameScore, _ := analyzer.Relevance(inName, "oficina")
		descScore, _ := analyzer.Relevance(inDesc, "oficina")
		if nameScore <= descScore {
			t.Errorf("name score %v should beat description score %v", nameScore, descScore)
		}
	})

	t.Run("exclusion rules zero the score", func(t *testing.T) {
		bed := domain.Product{Name: "Cama Matrimonial", Description: "para la oficina"}
		score, category := analyzer.Relevance(bed, "oficina")
		if score != 0 || category != "" {
			t.Errorf("Relevance = (%v, %q), want (0, \"\")", score, category)
		}
	})

	t.Run("unknown room scores zero", func(t *testing.T) {
		p := domain.Product{Name: "Escritorio"}
		if score, _ := analyzer.Relevance(p, "garaje"); score != 0 {
			t.Errorf("score = %v, want 0", score)
		}
	})

	t.Run("categorizes by product type", func(t *testing.T) {
		lamp := domain.Product{Name: "Lámpara Escritorio", Type: "Lámpara"}
		_, category := analyzer.Relevance(lamp, "oficina")
		if category != CategoryLighting {
			t.Errorf("category = %q, want %q", category, CategoryLighting)
		}

		shelf := domain.Product{Name: "Estantería Oficina", Type: "Estantería"}
		_, category = analyzer.Relevance(shelf, "oficina")
		if category != CategoryOrganization {
			t.Errorf("category = %q, want %q", category, CategoryOrganization)
		}
	})
}

func TestAnalyze(t *testing.T) {
	analyzer := NewRoomAnalyzer()
	products := []domain.Product{
		{ID: 1, Name: "Escritorio Ejecutivo", Description: "ideal para trabajo profesional", Type: "Escritorio"},
		{ID: 2, Name: "Lámpara de Escritorio", Description: "luz para oficina", Type: "Lámpara"},
		{ID: 3, Name: "Cama King", Description: "descanso total", Type: "Cama"},
		{ID: 4, Name: "Mesa Auxiliar", Description: "sin relación", Type: "Mesa"},
	}

	groups := analyzer.Analyze(products, "oficina")

	t.Run("drops excluded and irrelevant products", func(t *testing.T) {
		for _, g := range groups {
			for _, sp := range g.Products {
				if sp.ID == 3 {
					t.Error("excluded bed present in office analysis")
				}
				if sp.ID == 4 {
					t.Error("irrelevant product present in office analysis")
				}
			}
		}
	})

	t.Run("groups follow render order", func(t *testing.T) {
		if len(groups) != 2 {
			t.Fatalf("len(groups) = %d, want 2", len(groups))
		}
		if groups[0].Category != CategoryMainFurniture || groups[1].Category != CategoryLighting {
			t.Errorf("group order = [%s %s]", groups[0].Category, groups[1].Category)
		}
	})

	t.Run("unknown room yields nothing", func(t *testing.T) {
		if got := analyzer.Analyze(products, "garaje"); got != nil {
			t.Errorf("Analyze = %v, want nil", got)
		}
	})
}

func TestRoomSummary(t *testing.T) {
	analyzer := NewRoomAnalyzer()

	t.Run("empty groups get a fallback message", func(t *testing.T) {
		got := analyzer.Summary(nil, "oficina")
		if got != "No encontré productos relevantes para este ambiente." {
			t.Errorf("Summary = %q", got)
		}
	})

	t.Run("renders category headers and prices", func(t *testing.T) {
		groups := []ProductGroup{
			{
				Category: CategoryLighting,
				Products: []domain.ScoredProduct{
					{Product: domain.Product{Name: "Lámpara Pie", BasePrice: 49.9}},
				},
			},
		}
		got := analyzer.Summary(groups, "sala")
		if !strings.Contains(got, "💡") {
			t.Errorf("missing category emoji in %q", got)
		}
		if !strings.Contains(got, "* Lámpara Pie: $49.90") {
			t.Errorf("missing product line in %q", got)
		}
		if !strings.Contains(got, "Productos ideales para sala") {
			t.Errorf("missing room line in %q", got)
		}
	})

	t.Run("title-cases multi-word categories", func(t *testing.T) {
		groups := []ProductGroup{
			{
				Category: CategoryMainFurniture,
				Products: []domain.ScoredProduct{
					{Product: domain.Product{Name: "Escritorio", BasePrice: 120}},
				},
			},
		}
		got := analyzer.Summary(groups, "oficina")
		if !strings.Contains(got, "**🪑 Mobiliario Principal**") {
			t.Errorf("missing title-cased header in %q", got)
		}
	})
}
