package usecase

import (
	"testing"

	"github.com/Kullendorff/systembolaget/internal/domain"
)

func filterFixtures() []domain.Product {
	return []domain.Product{
		{
			ProductID:       "101",
			ProductNameBold: "Barolo",
			ProductNameThin: "Fontanafredda",
			Country:         "Italien",
			OriginLevel1:    "Piemonte",
			Grapes:          []string{"Nebbiolo"},
			Price:           289,
			AlcoholPercentage: 14.0,
			Vintage:         "2019",
			CategoryLevel1:  "Vin",
			CategoryLevel2:  "Rött vin",
			TasteClockBody:  10,
			Taste:           "Kraftfull smak med fat, körsbär och tobak",
		},
		{
			ProductID:       "102",
			ProductNameBold: "Chablis",
			ProductNameThin: "Domaine Laroche",
			Country:         "Frankrike",
			OriginLevel1:    "Bourgogne",
			Grapes:          []string{"Chardonnay"},
			Price:           159,
			AlcoholPercentage: 12.5,
			Vintage:         "2022",
			CategoryLevel1:  "Vin",
			CategoryLevel2:  "Vitt vin",
			TasteClockBody:  6,
			Taste:           "Frisk syrlig smak med citrus och mineral",
		},
		{
			ProductID:       "103",
			ProductNameBold: "Rioja Crianza",
			ProductNameThin: "Bodegas Muga",
			Country:         "Spanien",
			OriginLevel1:    "Rioja",
			Grapes:          []string{"Tempranillo", "Garnacha"},
			Price:           129,
			AlcoholPercentage: 13.5,
			Vintage:         "2020",
			CategoryLevel1:  "Vin",
			CategoryLevel2:  "Rött vin",
			TasteClockBody:  7,
			Taste:           "Smakrik med vanilj och mörka bär",
		},
		{
			ProductID:       "104",
			ProductNameBold: "Cava Brut",
			ProductNameThin: "Segura Viudas",
			Country:         "Spanien",
			Grapes:          []string{"Macabeo", "Parellada"},
			Price:           99,
			AlcoholPercentage: 11.5,
			CategoryLevel1:  "Vin",
			CategoryLevel2:  "Mousserande vin",
			// No taste clock published for this record.
			Taste: "Torr fruktig smak med gröna äpplen",
		},
	}
}

func filterIDs(products []domain.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ProductID)
	}
	return ids
}

func TestApply_Axes(t *testing.T) {
	f := NewQueryFilter(nil)
	catalog := filterFixtures()

	tests := []struct {
		name   string
		params domain.FilterParams
		want   []string
	}{
		{
			name:   "nil constraint set passes everything",
			params: domain.FilterParams{},
			want:   []string{"101", "102", "103", "104"},
		},
		{
			name:   "country is a case-insensitive substring",
			params: domain.FilterParams{Country: "ital"},
			want:   []string{"101"},
		},
		{
			name:   "any requested grape matches",
			params: domain.FilterParams{Grapes: []string{"nebbiolo", "tempranillo"}},
			want:   []string{"101", "103"},
		},
		{
			name:   "price bounds are inclusive",
			params: domain.FilterParams{MinPrice: 129, MaxPrice: 159},
			want:   []string{"102", "103"},
		},
		{
			name:   "min price alone",
			params: domain.FilterParams{MinPrice: 200},
			want:   []string{"101"},
		},
		{
			name:   "alcohol bounds",
			params: domain.FilterParams{MinAlcohol: 12.0, MaxAlcohol: 13.5},
			want:   []string{"102", "103"},
		},
		{
			name:   "vintage is exact",
			params: domain.FilterParams{Vintage: "2020"},
			want:   []string{"103"},
		},
		{
			name:   "english category alias reaches the swedish catalog term",
			params: domain.FilterParams{CategoryLevel1: "red"},
			want:   []string{"101", "103"},
		},
		{
			name:   "swedish short form alias",
			params: domain.FilterParams{CategoryLevel1: "vit"},
			want:   []string{"102"},
		},
		{
			name:   "sparkling alias",
			params: domain.FilterParams{CategoryLevel1: "sparkling"},
			want:   []string{"104"},
		},
		{
			name:   "unknown category phrase falls back to substring over both levels",
			params: domain.FilterParams{CategoryLevel1: "vin"},
			want:   []string{"101", "102", "103", "104"},
		},
		{
			name:   "specific category level direct substring",
			params: domain.FilterParams{CategoryLevel2: "mousserande"},
			want:   []string{"104"},
		},
		{
			name:   "body minimum excludes records without a published body",
			params: domain.FilterParams{TasteClockBodyMin: 6},
			want:   []string{"101", "102", "103"},
		},
		{
			name:   "body maximum excludes records without a published body",
			params: domain.FilterParams{TasteClockBodyMax: 7},
			want:   []string{"102", "103"},
		},
		{
			name:   "free text searches name parts",
			params: domain.FilterParams{SearchText: "laroche"},
			want:   []string{"102"},
		},
		{
			name:   "free text searches the taste description",
			params: domain.FilterParams{SearchText: "vanilj"},
			want:   []string{"103"},
		},
		{
			name:   "axes combine with AND",
			params: domain.FilterParams{Country: "Spanien", MaxPrice: 100},
			want:   []string{"104"},
		},
		{
			name:   "no record satisfies all constraints",
			params: domain.FilterParams{Country: "Italien", MaxPrice: 100},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterIDs(f.Apply(catalog, &tt.params))
			if len(got) != len(tt.want) {
				t.Fatalf("Apply = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Apply = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestApply_NilParams(t *testing.T) {
	f := NewQueryFilter(nil)
	catalog := filterFixtures()

	got := f.Apply(catalog, nil)
	if len(got) != len(catalog) {
		t.Errorf("nil params should pass everything, got %d of %d", len(got), len(catalog))
	}
}

func TestMatchesDish(t *testing.T) {
	f := NewQueryFilter(nil)
	catalog := filterFixtures()

	tests := []struct {
		name string
		dish string
		want []string
	}{
		{
			name: "game wants a full bodied red",
			dish: "vilt",
			want: []string{"101", "103"},
		},
		{
			name: "red meat allows slightly lighter reds",
			dish: "lammstek",
			want: []string{"101", "103"},
		},
		{
			name: "fish wants a white within the body window",
			dish: "grillad lax",
			want: []string{"102"},
		},
		{
			name: "chicken constrains body only",
			dish: "kyckling",
			want: []string{"102", "103"},
		},
		{
			name: "cheese wants a full bodied red",
			dish: "ostbricka",
			want: []string{"101", "103"},
		},
		{
			name: "unrecognized dish imposes no constraint",
			dish: "surströmming",
			want: []string{"101", "102", "103", "104"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterIDs(f.Apply(catalog, &domain.FilterParams{Dish: tt.dish}))
			if len(got) != len(tt.want) {
				t.Fatalf("dish %q matched %v, want %v", tt.dish, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("dish %q matched %v, want %v", tt.dish, got, tt.want)
				}
			}
		})
	}
}

func TestMatchesStyle(t *testing.T) {
	f := NewQueryFilter(nil)
	catalog := filterFixtures()

	tests := []struct {
		name  string
		style string
		want  []string
	}{
		{name: "light means a lighter white", style: "light", want: []string{"102"}},
		{name: "full means a heavy red", style: "full", want: []string{"101"}},
		{name: "bold is a synonym for full", style: "Bold", want: []string{"101"}},
		{name: "medium spans the middle of the clock", style: "medium", want: []string{"102", "103"}},
		{name: "unknown style imposes no constraint", style: "funky", want: []string{"101", "102", "103", "104"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterIDs(f.Apply(catalog, &domain.FilterParams{PreferredStyle: tt.style}))
			if len(got) != len(tt.want) {
				t.Fatalf("style %q matched %v, want %v", tt.style, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("style %q matched %v, want %v", tt.style, got, tt.want)
				}
			}
		})
	}
}
