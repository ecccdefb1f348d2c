package usecase

import (
	"strings"

	"github.com/Kullendorff/systembolaget/internal/domain"
)

// CategoryAlias maps caller-supplied category phrases to the canonical
// substring found in the catalog's specific category level. The table covers
// Swedish and English wine-color terms; it is injected so new languages can
// be added without touching the filter algorithm.
type CategoryAlias struct {
	Terms     []string
	Canonical string
}

// DefaultCategoryAliases returns the standard Swedish/English alias table.
func DefaultCategoryAliases() []CategoryAlias {
	return []CategoryAlias{
		{Terms: []string{"vitt vin", "vit", "white"}, Canonical: "vitt vin"},
		{Terms: []string{"rött vin", "röd", "red"}, Canonical: "rött vin"},
		{Terms: []string{"rosé", "rosa", "rose"}, Canonical: "rosé"},
		{Terms: []string{"mousserande", "champagne", "sparkling"}, Canonical: "mousserande"},
	}
}

// dishRule maps dish keywords to category and body constraints.
type dishRule struct {
	keywords []string
	category string // canonical categoryLevel2 substring, "" for any
	bodyMin  int
	bodyMax  int // 0 means unbounded
}

// defaultDishRules is the food-pairing vocabulary. Game gets its own rule
// ahead of generic red meat because it wants a fuller body.
var defaultDishRules = []dishRule{
	{keywords: []string{"vilt", "hjort", "älg", "game", "venison"},
		category: "rött vin", bodyMin: 7},
	{keywords: []string{"kött", "lamm", "nöt", "stek", "biff", "beef", "lamb", "steak"},
		category: "rött vin", bodyMin: 6},
	{keywords: []string{"lax", "fisk", "skaldjur", "räkor", "salmon", "fish", "seafood", "shrimp"},
		category: "vitt vin", bodyMin: 3, bodyMax: 8},
	{keywords: []string{"kyckling", "pasta", "pizza", "chicken"},
		bodyMin: 4, bodyMax: 9},
	{keywords: []string{"ost", "cheese"},
		category: "rött vin", bodyMin: 7},
}

// styleRule maps a preferred wine style label to constraints.
var styleRules = map[string]dishRule{
	"light":  {category: "vitt vin", bodyMax: 6},
	"crisp":  {category: "vitt vin"},
	"medium": {bodyMin: 4, bodyMax: 9},
	"smooth": {category: "rött vin", bodyMin: 4, bodyMax: 8},
	"full":   {category: "rött vin", bodyMin: 8},
	"bold":   {category: "rött vin", bodyMin: 8},
}

// QueryFilter applies structured filter parameters against a candidate set.
// All axes are independent AND-combined predicates; a zero-valued axis
// imposes no constraint.
type QueryFilter struct {
	aliases   []CategoryAlias
	dishRules []dishRule
}

// NewQueryFilter creates a query filter. A nil alias table falls back to the
// default Swedish/English one.
func NewQueryFilter(aliases []CategoryAlias) *QueryFilter {
	if aliases == nil {
		aliases = DefaultCategoryAliases()
	}
	return &QueryFilter{aliases: aliases, dishRules: defaultDishRules}
}

// Apply returns the products matching every set constraint in params.
// Catalog iteration order is preserved.
func (f *QueryFilter) Apply(products []domain.Product, params *domain.FilterParams) []domain.Product {
	if params == nil {
		return products
	}

	var results []domain.Product
	for i := range products {
		if f.matches(&products[i], params) {
			results = append(results, products[i])
		}
	}
	return results
}

func (f *QueryFilter) matches(p *domain.Product, params *domain.FilterParams) bool {
	if params.Country != "" && !containsFold(p.Country, params.Country) {
		return false
	}
	if len(params.Grapes) > 0 && !matchesAnyGrape(p, params.Grapes) {
		return false
	}
	if params.MinPrice > 0 && p.Price < params.MinPrice {
		return false
	}
	if params.MaxPrice > 0 && p.Price > params.MaxPrice {
		return false
	}
	if params.MinAlcohol > 0 && p.AlcoholPercentage < params.MinAlcohol {
		return false
	}
	if params.MaxAlcohol > 0 && p.AlcoholPercentage > params.MaxAlcohol {
		return false
	}
	if params.Vintage != "" && p.Vintage != params.Vintage {
		return false
	}
	if params.CategoryLevel1 != "" && !f.matchesCategory(p, params.CategoryLevel1) {
		return false
	}
	if params.CategoryLevel2 != "" && !containsFold(p.CategoryLevel2, params.CategoryLevel2) {
		return false
	}
	if params.TasteClockBodyMin > 0 && (p.TasteClockBody == 0 || p.TasteClockBody < params.TasteClockBodyMin) {
		return false
	}
	if params.TasteClockBodyMax > 0 && (p.TasteClockBody == 0 || p.TasteClockBody > params.TasteClockBodyMax) {
		return false
	}
	if params.SearchText != "" && !matchesFreeText(p, params.SearchText) {
		return false
	}
	if params.Dish != "" && !f.matchesDish(p, params.Dish) {
		return false
	}
	if params.PreferredStyle != "" && !matchesStyle(p, params.PreferredStyle) {
		return false
	}
	return true
}

// matchesCategory normalizes the caller's category phrase through the alias
// table and checks the canonical term against the specific category level.
// Unknown phrases fall back to a plain substring check over both levels.
func (f *QueryFilter) matchesCategory(p *domain.Product, phrase string) bool {
	term := strings.ToLower(phrase)
	for _, alias := range f.aliases {
		for _, t := range alias.Terms {
			if strings.Contains(term, t) {
				return containsFold(p.CategoryLevel2, alias.Canonical)
			}
		}
	}
	return containsFold(p.CategoryLevel1, phrase) || containsFold(p.CategoryLevel2, phrase)
}

// matchesDish applies the food-pairing heuristic. Unrecognized dish text
// imposes no additional constraint.
func (f *QueryFilter) matchesDish(p *domain.Product, dish string) bool {
	dishLower := strings.ToLower(dish)
	for _, rule := range f.dishRules {
		for _, kw := range rule.keywords {
			if strings.Contains(dishLower, kw) {
				return rule.matches(p)
			}
		}
	}
	return true
}

// matchesStyle applies a preferred-style constraint; unknown labels impose
// no constraint.
func matchesStyle(p *domain.Product, style string) bool {
	rule, ok := styleRules[strings.ToLower(strings.TrimSpace(style))]
	if !ok {
		return true
	}
	return rule.matches(p)
}

func (r dishRule) matches(p *domain.Product) bool {
	if r.category != "" && !containsFold(p.CategoryLevel2, r.category) {
		return false
	}
	if r.bodyMin > 0 && (p.TasteClockBody == 0 || p.TasteClockBody < r.bodyMin) {
		return false
	}
	if r.bodyMax > 0 && (p.TasteClockBody == 0 || p.TasteClockBody > r.bodyMax) {
		return false
	}
	return true
}

// matchesAnyGrape is true when any requested grape is a case-insensitive
// substring of any of the record's grapes.
func matchesAnyGrape(p *domain.Product, grapes []string) bool {
	if len(p.Grapes) == 0 {
		return false
	}
	for _, wanted := range grapes {
		for _, grape := range p.Grapes {
			if containsFold(grape, wanted) {
				return true
			}
		}
	}
	return false
}

// matchesFreeText checks either display-name part and the taste description.
func matchesFreeText(p *domain.Product, text string) bool {
	return containsFold(p.ProductNameBold, text) ||
		containsFold(p.ProductNameThin, text) ||
		(p.Taste != "" && containsFold(p.Taste, text))
}
