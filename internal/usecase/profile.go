package usecase

import (
	"sort"
	"strings"

	"github.com/Kullendorff/systembolaget/internal/domain"
	"go.uber.org/zap"
)

// Profile building defaults
const (
	// defaultMinRating marks a log entry as "highly rated" on the usual
	// 5-point export scale.
	defaultMinRating = 4.0

	// topFavorites caps the favorite country and region lists.
	topFavorites = 5

	// topStyles caps the preferred style label list.
	topStyles = 3

	// Fallback price range when the log yields no usable price data.
	fallbackPriceMin = 100
	fallbackPriceMax = 300

	// baselineBodyPreference is the fixed body baseline; the log format
	// carries no body data to derive one from.
	baselineBodyPreference = 8
)

// ProfileBuilder derives a read-only taste profile from a historical
// tasting log by reconciling log entries against the catalog. The profile
// is built once at startup and never mutated.
type ProfileBuilder struct {
	matcher   *NameMatcher
	minRating float64
	logger    *zap.Logger
}

// NewProfileBuilder creates a profile builder. A minRating of 0 falls back
// to the default threshold.
func NewProfileBuilder(matcher *NameMatcher, minRating float64, logger *zap.Logger) *ProfileBuilder {
	if matcher == nil {
		matcher = NewNameMatcher(logger)
	}
	if minRating <= 0 {
		minRating = defaultMinRating
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileBuilder{matcher: matcher, minRating: minRating, logger: logger}
}

// Build derives a taste profile for userID from the tasting log. Entries
// below the rating threshold are ignored; entries that cannot be reconciled
// against any catalog record contribute nothing.
func (b *ProfileBuilder) Build(userID string, entries []domain.TastingEntry, catalog []domain.Product) *domain.UserProfile {
	countryFreq := make(map[string]int)
	regionFreq := make(map[string]int)
	styleFreq := make(map[string]int)

	priceMin, priceMax := 0.0, 0.0
	matched := 0

	for i := range entries {
		entry := &entries[i]
		if entry.Rating < b.minRating {
			continue
		}

		product := b.findCatalogMatch(entry, catalog)
		if product == nil {
			continue
		}
		matched++

		if product.Country != "" {
			countryFreq[product.Country]++
		}
		if product.OriginLevel1 != "" {
			regionFreq[product.OriginLevel1]++
		}
		if product.OriginLevel2 != "" {
			regionFreq[product.OriginLevel2]++
		}
		if product.CategoryLevel2 != "" {
			styleFreq[product.CategoryLevel2]++
		}
		if product.Price > 0 {
			if priceMin == 0 || product.Price < priceMin {
				priceMin = product.Price
			}
			if product.Price > priceMax {
				priceMax = product.Price
			}
		}
	}

	if priceMax == 0 {
		priceMin, priceMax = fallbackPriceMin, fallbackPriceMax
	}

	b.logger.Info("taste profile built",
		zap.String("user", userID),
		zap.Int("entries", len(entries)),
		zap.Int("reconciled", matched))

	return &domain.UserProfile{
		UserID:            userID,
		FavoriteCountries: topByFrequency(countryFreq, topFavorites),
		FavoriteRegions:   topByFrequency(regionFreq, topFavorites),
		PriceMin:          priceMin,
		PriceMax:          priceMax,
		BodyPreference:    baselineBodyPreference,
		PreferredStyles:   topByFrequency(styleFreq, topStyles),
	}
}

// FindLogMatch returns the tasting-log entry matching a catalog product, or
// nil when the user never logged it. The article number settles it when
// present; otherwise the name reconciliation rule decides.
func (b *ProfileBuilder) FindLogMatch(p *domain.Product, entries []domain.TastingEntry) *domain.TastingEntry {
	for i := range entries {
		if entries[i].ArticleNumber != "" && entries[i].ArticleNumber == p.ProductID {
			return &entries[i]
		}
	}
	name := p.FullName()
	for i := range entries {
		if b.matcher.ReconcileLogEntry(entries[i].WineName, name) {
			return &entries[i]
		}
	}
	return nil
}

// findCatalogMatch resolves a log entry to a catalog record, article number
// first, then name reconciliation.
func (b *ProfileBuilder) findCatalogMatch(entry *domain.TastingEntry, catalog []domain.Product) *domain.Product {
	if entry.ArticleNumber != "" {
		for i := range catalog {
			if catalog[i].ProductID == entry.ArticleNumber {
				return &catalog[i]
			}
		}
	}
	if strings.TrimSpace(entry.WineName) == "" {
		return nil
	}
	for i := range catalog {
		if b.matcher.ReconcileLogEntry(entry.WineName, catalog[i].FullName()) {
			return &catalog[i]
		}
	}
	return nil
}

// topByFrequency returns the n most frequent keys, most frequent first.
// Equal frequencies order alphabetically so the result is deterministic.
func topByFrequency(freq map[string]int, n int) []string {
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
