package usecase

import (
	"reflect"
	"testing"

	"github.com/Kullendorff/systembolaget/internal/domain"
)

func TestVariants_Order(t *testing.T) {
	m := NewNameMatcher(nil)

	t.Run("accented name with vintage", func(t *testing.T) {
		variants := m.Variants("Château Margaux 2015")

		if len(variants) < 2 {
			t.Fatalf("expected multiple variants, got %v", variants)
		}
		if variants[0] != "Château Margaux 2015" {
			t.Errorf("variant 1 = %q, want the input as given", variants[0])
		}
		if variants[1] != "chateau margaux 2015" {
			t.Errorf("variant 2 = %q, want the diacritic-folded form", variants[1])
		}
		// Folding must actually differ from plain lowercasing here.
		if variants[1] == "château margaux 2015" {
			t.Error("diacritic-folded variant must differ from plain lowercase")
		}

		wantStripped := "Château Margaux"
		found := false
		for _, v := range variants {
			if v == wantStripped {
				found = true
			}
		}
		if !found {
			t.Errorf("variants %v missing year-stripped form %q", variants, wantStripped)
		}
	})

	t.Run("plain ascii name skips fold variant", func(t *testing.T) {
		variants := m.Variants("Barolo Fontanafredda")
		want := []string{"Barolo Fontanafredda", "Barolo", "barolo"}
		if !reflect.DeepEqual(variants, want) {
			t.Errorf("Variants = %v, want %v", variants, want)
		}
	})

	t.Run("deduplicates preserving first occurrence", func(t *testing.T) {
		variants := m.Variants("barolo")
		want := []string{"barolo"}
		if !reflect.DeepEqual(variants, want) {
			t.Errorf("Variants = %v, want %v", variants, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := m.Variants("   "); got != nil {
			t.Errorf("Variants of blank input = %v, want nil", got)
		}
	})
}

func TestMatch_FirstVariantWins(t *testing.T) {
	m := NewNameMatcher(nil)
	products := []domain.Product{
		{ProductID: "1", ProductNameBold: "Château Margaux", ProductNameThin: "Premier Grand Cru"},
		{ProductID: "2", ProductNameBold: "Margaux du Château", ProductNameThin: ""},
	}

	t.Run("exact substring hits on first variant", func(t *testing.T) {
		hits := m.Match(products, "Château Margaux")
		if len(hits) != 1 || hits[0].ProductID != "1" {
			t.Errorf("expected only the exact record, got %v", hits)
		}
	})

	t.Run("falls through to first token variant", func(t *testing.T) {
		// Neither the literal input nor the folded form matches; the
		// first-token variant "Château" reaches both records.
		hits := m.Match(products, "Château Superieur")
		if len(hits) != 2 {
			t.Fatalf("expected first-token fallback to match both records, got %v", hits)
		}
	})

	t.Run("variants are not merged", func(t *testing.T) {
		// "Margaux 2015" as given matches nothing; the first token variant
		// "Margaux" matches both records. Once a variant hits, later
		// variants must not add more.
		hits := m.Match(products, "Margaux 2015")
		if len(hits) != 2 {
			t.Errorf("expected 2 hits from the winning variant, got %d", len(hits))
		}
	})

	t.Run("no variant matches", func(t *testing.T) {
		if hits := m.Match(products, "Rioja Reserva"); hits != nil {
			t.Errorf("expected no hits, got %v", hits)
		}
	})
}

func TestMatch_FoldedCatalogLookup(t *testing.T) {
	m := NewNameMatcher(nil)
	products := []domain.Product{
		{ProductID: "1", ProductNameBold: "Chateau Lafite", ProductNameThin: ""},
	}

	// The user types the accent, the catalog does not carry it.
	hits := m.Match(products, "Château Lafite")
	if len(hits) != 1 {
		t.Errorf("folded variant should reach the unaccented catalog entry, got %v", hits)
	}
}

func TestReconcileLogEntry(t *testing.T) {
	m := NewNameMatcher(nil)

	tests := []struct {
		name        string
		logName     string
		catalogName string
		want        bool
	}{
		{
			name:        "two token overlap",
			logName:     "Barolo Fontanafredda 2018",
			catalogName: "Fontanafredda Barolo Serralunga",
			want:        true,
		},
		{
			name:        "single shared leading token",
			logName:     "Amarone della Valpolicella",
			catalogName: "Amarone Classico",
			want:        true,
		},
		{
			name:        "single overlap not leading on both sides",
			logName:     "Castello di Barolo",
			catalogName: "Tenuta Barolo",
			want:        false,
		},
		{
			name:        "diacritics and year ignored",
			logName:     "Château Margaux 2015",
			catalogName: "Chateau Margaux",
			want:        true,
		},
		{
			name:        "substring containment counts as overlap",
			logName:     "Riesling Kabinett Mosel",
			catalogName: "Dr. Loosen Rieslingtrocken Mosel",
			want:        true,
		},
		{
			name:        "no overlap",
			logName:     "Chianti Classico",
			catalogName: "Pouilly Fumé",
			want:        false,
		},
		{
			name:        "empty log name",
			logName:     "",
			catalogName: "Barolo",
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ReconcileLogEntry(tt.logName, tt.catalogName); got != tt.want {
				t.Errorf("ReconcileLogEntry(%q, %q) = %v, want %v",
					tt.logName, tt.catalogName, got, tt.want)
			}
		})
	}
}

func TestIsExactMatch(t *testing.T) {
	m := NewNameMatcher(nil)

	margaux2015 := domain.Product{ProductID: "1", ProductNameBold: "Château Margaux", Vintage: "2015"}
	margaux2016 := domain.Product{ProductID: "2", ProductNameBold: "Château Margaux", Vintage: "2016"}
	barolo := domain.Product{ProductID: "3", ProductNameBold: "Barolo", ProductNameThin: "Fontanafredda"}

	t.Run("single candidate is exact", func(t *testing.T) {
		if !m.IsExactMatch("anything", []domain.Product{barolo}) {
			t.Error("one candidate should be an exact match")
		}
	})

	t.Run("query year matching top vintage", func(t *testing.T) {
		results := []domain.Product{margaux2015, margaux2016}
		if !m.IsExactMatch("Margaux 2015", results) {
			t.Error("matching vintage year should make the top candidate exact")
		}
	})

	t.Run("query year mismatching top vintage", func(t *testing.T) {
		results := []domain.Product{margaux2016, margaux2015}
		if m.IsExactMatch("Margaux 2015", results) {
			t.Error("mismatching vintage year should not be exact")
		}
	})

	t.Run("candidate name contains full query", func(t *testing.T) {
		results := []domain.Product{barolo, margaux2015}
		if !m.IsExactMatch("Barolo Fontanafredda", results) {
			t.Error("full query contained in candidate name should be exact")
		}
	})

	t.Run("query covers half of candidate tokens", func(t *testing.T) {
		results := []domain.Product{barolo, margaux2015}
		if !m.IsExactMatch("Fontanafredda vineyards", results) {
			t.Error("half token coverage should be exact")
		}
	})

	t.Run("unrelated query with multiple candidates", func(t *testing.T) {
		results := []domain.Product{barolo, margaux2015}
		if m.IsExactMatch("Rioja", results) {
			t.Error("unrelated query should not be exact")
		}
	})

	t.Run("empty result set", func(t *testing.T) {
		if m.IsExactMatch("Barolo", nil) {
			t.Error("empty results can never be exact")
		}
	})
}
