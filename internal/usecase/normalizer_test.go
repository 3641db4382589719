package usecase

import "testing"

func TestNormalize(t *testing.T) {
	t.Run("strips accents and punctuation", func(t *testing.T) {
		got := Normalize("¿Tienes lámparas?")
		if got != "tienes lamparas" {
			t.Errorf("Normalize = %q, want %q", got, "tienes lamparas")
		}
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		got := Normalize("  mesa   de \t centro  ")
		if got != "mesa de centro" {
			t.Errorf("Normalize = %q, want %q", got, "mesa de centro")
		}
	})

	t.Run("lowercases", func(t *testing.T) {
		got := Normalize("SILLA Moderna")
		if got != "silla moderna" {
			t.Errorf("Normalize = %q, want %q", got, "silla moderna")
		}
	})

	t.Run("removes underscores", func(t *testing.T) {
		got := Normalize("sofa_gris")
		if got != "sofagris" {
			t.Errorf("Normalize = %q, want %q", got, "sofagris")
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		if got := Normalize(""); got != "" {
			t.Errorf("Normalize(\"\") = %q, want empty", got)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := Normalize("¡Sofá-Cama ÚNICO!")
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent: %q vs %q", once, twice)
		}
	})
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"grises", "gris"},
		{"plateado", "gris"},
		{"Negras", "negro"},
		{"cremas", "beige"},
		{"celeste", "azul"},
		{"café", "marrón"},
		{"marron", "marrón"},
		{"fucsia", "rosa"},
		{"esmeralda", "verde"},
		{"turquesa", "turquesa"}, // unknown colors pass through
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeColor(tt.in); got != tt.want {
				t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContainsWord(t *testing.T) {
	t.Run("matches across accents and case", func(t *testing.T) {
		if !ContainsWord("Sofá Esquinero Gris", "sofa") {
			t.Error("expected match for accented haystack")
		}
	})

	t.Run("no match when absent", func(t *testing.T) {
		if ContainsWord("Mesa de Centro", "silla") {
			t.Error("unexpected match")
		}
	})
}

func TestDetectQueryType(t *testing.T) {
	tests := []struct {
		query string
		want  QueryType
	}{
		{"quiero una silla roja", QueryAttributes},
		{"de qué material es", QueryAttributes},
		{"muebles para el comedor", QueryStyle},
		{"algo para mi espacio", QueryStyle},
		{"decoración moderna", QueryStyle},
		{"tienes alguna silla", QueryProduct},
		{"hola buenas tardes", QueryGeneric},
		{"sillas", QueryGeneric}, // plural does not hit the word-boundary product match
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := DetectQueryType(tt.query); got != tt.want {
				t.Errorf("DetectQueryType(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}

	t.Run("color beats other attribute keywords", func(t *testing.T) {
		if got := DetectQueryType("sillas grises para la oficina"); got != QueryAttributes {
			t.Errorf("DetectQueryType = %q, want %q", got, QueryAttributes)
		}
	})
}
