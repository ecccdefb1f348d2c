package domain

// Product represents a single wine in the Systembolaget catalog export.
// Records are loaded once at startup and never mutated afterwards.
type Product struct {
	ProductID         string   `json:"productId"`
	ProductNameBold   string   `json:"productNameBold"`
	ProductNameThin   string   `json:"productNameThin"`
	Vintage           string   `json:"vintage,omitempty"`
	AlcoholPercentage float64  `json:"alcoholPercentage"`
	VolumeText        string   `json:"volumeText"`
	Price             float64  `json:"price"`
	Country           string   `json:"country"`
	OriginLevel1      string   `json:"originLevel1,omitempty"`
	OriginLevel2      string   `json:"originLevel2,omitempty"`
	Grapes            []string `json:"grapes,omitempty"`
	Taste             string   `json:"taste,omitempty"`
	Usage             string   `json:"usage,omitempty"`

	// Taste clock axes on Systembolaget's 1-12 scale; 0 means not rated.
	TasteClockBody      int `json:"tasteClockBody,omitempty"`
	TasteClockRoughness int `json:"tasteClockRoughness,omitempty"`
	TasteClockSweetness int `json:"tasteClockSweetness,omitempty"`
	TasteClockFruitacid int `json:"tasteClockFruitacid,omitempty"`

	AssortmentText string `json:"assortmentText"`
	CategoryLevel1 string `json:"categoryLevel1,omitempty"`
	CategoryLevel2 string `json:"categoryLevel2,omitempty"`

	IsDiscontinued                  bool `json:"isDiscontinued"`
	IsSupplierTemporaryNotAvailable bool `json:"isSupplierTemporaryNotAvailable"`
	IsCompletelyOutOfStock          bool `json:"isCompletelyOutOfStock"`
	IsTemporaryOutOfStock           bool `json:"isTemporaryOutOfStock"`
}

// FullName returns the display name with both parts joined.
func (p *Product) FullName() string {
	if p.ProductNameThin == "" {
		return p.ProductNameBold
	}
	if p.ProductNameBold == "" {
		return p.ProductNameThin
	}
	return p.ProductNameBold + " " + p.ProductNameThin
}

// IsAvailable reports whether none of the unavailability flags are set.
func (p *Product) IsAvailable() bool {
	return !p.IsDiscontinued &&
		!p.IsSupplierTemporaryNotAvailable &&
		!p.IsCompletelyOutOfStock &&
		!p.IsTemporaryOutOfStock
}

// FilterParams is a sparse set of search constraints, typically produced by
// the natural-language interpreter. Zero values mean "no constraint on this
// axis", mirroring how the interpreter omits fields it could not extract.
type FilterParams struct {
	Country           string   `json:"country,omitempty"`
	Grapes            []string `json:"grapes,omitempty"`
	MinPrice          float64  `json:"minPrice,omitempty"`
	MaxPrice          float64  `json:"maxPrice,omitempty"`
	MinAlcohol        float64  `json:"minAlcohol,omitempty"`
	MaxAlcohol        float64  `json:"maxAlcohol,omitempty"`
	Vintage           string   `json:"vintage,omitempty"`
	CategoryLevel1    string   `json:"categoryLevel1,omitempty"`
	CategoryLevel2    string   `json:"categoryLevel2,omitempty"`
	TasteClockBodyMin int      `json:"tasteClockBodyMin,omitempty"`
	TasteClockBodyMax int      `json:"tasteClockBodyMax,omitempty"`
	SearchText        string   `json:"searchText,omitempty"`
	Dish              string   `json:"dish,omitempty"`
	PreferredStyle    string   `json:"preferredStyle,omitempty"`
}

// IsEmpty reports whether no constraint is set on any axis.
func (f *FilterParams) IsEmpty() bool {
	return f.Country == "" && len(f.Grapes) == 0 &&
		f.MinPrice == 0 && f.MaxPrice == 0 &&
		f.MinAlcohol == 0 && f.MaxAlcohol == 0 &&
		f.Vintage == "" &&
		f.CategoryLevel1 == "" && f.CategoryLevel2 == "" &&
		f.TasteClockBodyMin == 0 && f.TasteClockBodyMax == 0 &&
		f.SearchText == "" && f.Dish == "" && f.PreferredStyle == ""
}

// SearchOptions control result shaping independently of the filter axes.
type SearchOptions struct {
	// Limit caps the result count; 0 means the default of 10.
	Limit int
	// DescendingPrice sorts price high-to-low within each assortment tier,
	// used when the query implies a price ceiling and the caller wants the
	// best options near that ceiling rather than the cheapest.
	DescendingPrice bool
}

// DefaultLimit is the result cap applied when the caller does not set one.
const DefaultLimit = 10

// CatalogStats summarizes a loaded catalog snapshot.
type CatalogStats struct {
	Total      int     `json:"total"`
	Countries  int     `json:"countries"`
	RedWines   int     `json:"redWines"`
	WhiteWines int     `json:"whiteWines"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}
