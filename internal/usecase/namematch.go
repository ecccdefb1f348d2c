package usecase

import (
	"strings"

	"github.com/Kullendorff/systembolaget/internal/domain"
	"go.uber.org/zap"
)

// minStrippedNameLength guards variant 5: a year-stripped remainder shorter
// than this is too ambiguous to search on.
const minStrippedNameLength = 3

// NameMatcher resolves free-form wine names against catalog name fields.
// Users type "Chateau Margaux 2015" for a record stored as
// "Château Margaux" + "Grand Vin" with vintage "2015", so matching walks an
// ordered list of progressively looser variants and stops at the first one
// that produces any hit.
type NameMatcher struct {
	logger *zap.Logger
}

// NewNameMatcher creates a name matcher. A nil logger disables debug output.
func NewNameMatcher(logger *zap.Logger) *NameMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NameMatcher{logger: logger}
}

// Variants returns the ordered, deduplicated list of match candidates for an
// input name. Variant order is part of the contract: earlier variants are
// stricter, and the first one with a hit wins.
func (m *NameMatcher) Variants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var variants []string

	// 1. The input as given.
	variants = append(variants, name)

	// 2. Diacritic-folded lowercase form, when folding changes anything.
	folded := foldDiacritics(name)
	if folded != strings.ToLower(name) {
		variants = append(variants, folded)
	}

	// 3. The first two tokens longer than two characters.
	long := longTokens(name)
	if len(long) >= 2 {
		variants = append(variants, long[0]+" "+long[1])
	}

	// 4. The first long token alone.
	if len(long) >= 1 {
		variants = append(variants, long[0])
	}

	// 5. The input with any vintage year removed.
	stripped := stripVintageYear(name)
	if stripped != name && len(stripped) > minStrippedNameLength {
		variants = append(variants, stripped)
	}

	// 6. Diacritic-folded first token.
	if len(long) >= 1 {
		variants = append(variants, foldDiacritics(long[0]))
	}

	return dedupeStrings(variants)
}

// Match returns the catalog records whose display name matches the input,
// trying each variant in turn until one yields at least one hit. Variants
// are never merged; a looser variant only runs when every stricter one came
// up empty. An empty slice means no variant matched.
func (m *NameMatcher) Match(products []domain.Product, name string) []domain.Product {
	for _, variant := range m.Variants(name) {
		var hits []domain.Product
		for i := range products {
			if matchesName(&products[i], variant) {
				hits = append(hits, products[i])
			}
		}
		if len(hits) > 0 {
			m.logger.Debug("name variant matched",
				zap.String("input", name),
				zap.String("variant", variant),
				zap.Int("hits", len(hits)))
			return hits
		}
	}
	return nil
}

// ReconcileLogEntry decides whether a tasting-log name and a catalog name
// refer to the same product. Both names are normalized and tokenized; two
// overlapping tokens settle it, a single overlap counts only when it is the
// leading token on both sides.
func (m *NameMatcher) ReconcileLogEntry(logName, catalogName string) bool {
	logTokens := nameTokens(normalizeWineName(logName))
	catTokens := nameTokens(normalizeWineName(catalogName))
	if len(logTokens) == 0 || len(catTokens) == 0 {
		return false
	}

	overlaps := 0
	firstOverlapsFirst := false
	for i, lt := range logTokens {
		for j, ct := range catTokens {
			if tokensOverlap(lt, ct) {
				overlaps++
				if i == 0 && j == 0 {
					firstOverlapsFirst = true
				}
				break
			}
		}
	}

	if overlaps >= 2 {
		return true
	}
	return overlaps == 1 && firstOverlapsFirst
}

// IsExactMatch reports whether a result set identifies a single product well
// enough to skip multi-candidate disambiguation. A lone candidate is exact;
// so is a vintage year in the query matching the top candidate; without a
// year, name containment either way decides.
func (m *NameMatcher) IsExactMatch(query string, results []domain.Product) bool {
	if len(results) == 0 {
		return false
	}
	if len(results) == 1 {
		return true
	}

	top := &results[0]
	if year := extractVintageYear(query); year != "" {
		return top.Vintage == year
	}

	candName := normalizeWineName(top.FullName())
	queryName := normalizeWineName(query)
	if candName == "" || queryName == "" {
		return false
	}
	if strings.Contains(candName, queryName) {
		return true
	}

	// The query covers at least half of the candidate's name tokens.
	candTokens := nameTokens(candName)
	if len(candTokens) == 0 {
		return false
	}
	covered := 0
	for _, ct := range candTokens {
		if strings.Contains(queryName, ct) {
			covered++
		}
	}
	return covered*2 >= len(candTokens)
}

// matchesName checks a variant as a case-insensitive substring of either
// display-name part.
func matchesName(p *domain.Product, variant string) bool {
	if p.ProductNameBold == "" && p.ProductNameThin == "" {
		return false
	}
	return containsFold(p.ProductNameBold, variant) ||
		containsFold(p.ProductNameThin, variant)
}

// tokensOverlap reports substring containment in either direction.
func tokensOverlap(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// longTokens returns the whitespace-delimited tokens of the raw input that
// are longer than two characters.
func longTokens(s string) []string {
	var tokens []string
	for _, tok := range strings.Fields(s) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// dedupeStrings removes duplicates preserving first occurrence.
func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
