package usecase

import (
	"testing"

	"github.com/decohogar/backend/internal/domain"
)

func simpleProduct(id int64, name, color string, sales int, price float64) domain.Product {
	return domain.Product{
		ID:         id,
		Name:       name,
		Type:       "SIMPLE",
		BasePrice:  price,
		SalesCount: sales,
		Attributes: domain.Attributes{Color: color},
	}
}

func TestColorsInQuery(t *testing.T) {
	t.Run("extracts canonical colors", func(t *testing.T) {
		colors := ColorsInQuery(Normalize("quiero sillas grises y rojas"))
		if len(colors) != 2 || colors[0] != "gris" || colors[1] != "rojo" {
			t.Errorf("ColorsInQuery = %v, want [gris rojo]", colors)
		}
	})

	t.Run("no colors yields empty", func(t *testing.T) {
		if colors := ColorsInQuery("quiero una mesa"); len(colors) != 0 {
			t.Errorf("ColorsInQuery = %v, want empty", colors)
		}
	})
}

func TestProductTypeInQuery(t *testing.T) {
	t.Run("detects first type by priority", func(t *testing.T) {
		if got := ProductTypeInQuery("una mesa y una silla"); got != "silla" {
			t.Errorf("ProductTypeInQuery = %q, want silla (priority order)", got)
		}
	})

	t.Run("matches plural via substring", func(t *testing.T) {
		if got := ProductTypeInQuery("busco lámparas"); got != "lampara" {
			t.Errorf("ProductTypeInQuery = %q, want lampara", got)
		}
	})

	t.Run("no type yields empty", func(t *testing.T) {
		if got := ProductTypeInQuery("algo bonito"); got != "" {
			t.Errorf("ProductTypeInQuery = %q, want empty", got)
		}
	})
}

func TestMatchProductsByAttributes(t *testing.T) {
	products := []domain.Product{
		simpleProduct(1, "Silla Moderna Gris", "gris", 10, 100),
		simpleProduct(2, "Silla Clásica Roja", "rojo", 20, 80),
		simpleProduct(3, "Mesa de Centro Gris", "gris", 30, 150),
		{
			ID: 4, Name: "Silla Ajustable", Type: domain.ProductTypeVariable,
			SalesCount: 5, BasePrice: 120,
			Attributes: domain.Attributes{Variants: map[string][]string{"color": {"gris", "negro"}}},
		},
		{
			ID: 5, Name: "Silla Fija", Type: domain.ProductTypeVariable,
			SalesCount: 50, BasePrice: 90,
			Attributes: domain.Attributes{Variants: map[string][]string{"talla": {"m"}}},
		},
	}

	t.Run("filters by color and type", func(t *testing.T) {
		got := MatchProductsByAttributes(products, "sillas grises")
		ids := idsOf(got)
		if len(ids) != 2 || ids[0] != 1 || ids[1] != 4 {
			t.Errorf("ids = %v, want [1 4]", ids)
		}
	})

	t.Run("variant without color variants never matches colored query", func(t *testing.T) {
		got := MatchProductsByAttributes(products, "silla roja")
		for _, p := range got {
			if p.ID == 5 {
				t.Error("product 5 has no color variants, should not match")
			}
		}
	})

	t.Run("variant matches any requested color", func(t *testing.T) {
		got := MatchProductsByAttributes(products, "silla roja")
		ids := idsOf(got)
		want := map[int64]bool{2: true, 4: true}
		if len(ids) != 2 || !want[ids[0]] || !want[ids[1]] {
			t.Errorf("ids = %v, want {2,4}", ids)
		}
	})

	t.Run("variants excluded without color in query", func(t *testing.T) {
		got := MatchProductsByAttributes(products, "quiero una silla")
		for _, p := range got {
			if p.Type == domain.ProductTypeVariable {
				t.Errorf("variant product %d matched query without colors", p.ID)
			}
		}
	})

	t.Run("sorted by sales then price descending", func(t *testing.T) {
		got := MatchProductsByAttributes(products, "gris")
		ids := idsOf(got)
		// 3 (30 sales), 1 (10 sales), 4 (5 sales)
		if len(ids) != 3 || ids[0] != 3 || ids[1] != 1 || ids[2] != 4 {
			t.Errorf("ids = %v, want [3 1 4]", ids)
		}
	})

	t.Run("caps results", func(t *testing.T) {
		var many []domain.Product
		for i := int64(0); i < 20; i++ {
			many = append(many, simpleProduct(i, "Silla", "gris", int(i), 10))
		}
		got := MatchProductsByAttributes(many, "silla gris")
		if len(got) != maxAttributeResults {
			t.Errorf("len = %d, want %d", len(got), maxAttributeResults)
		}
	})
}

func idsOf(products []domain.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
