package usecase

import (
	"github.com/Kullendorff/systembolaget/internal/domain"
	"go.uber.org/zap"
)

// Recommendation defaults
const (
	defaultRecommendMaxPrice = 300
	defaultRecommendLimit    = 5
	// recommendOverfetch widens the candidate pool before truncation so the
	// dish constraints have something to cut from.
	recommendOverfetch = 3
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	Packaging       PackagingPolicy
	CategoryAliases []CategoryAlias
}

// SearchService runs the search pipeline over an immutable catalog
// snapshot: eligibility -> query filter -> rank -> optional personalization
// -> dedup -> truncate. Every invocation is a pure function of the snapshot,
// the parameters and the optional profile, so concurrent callers need no
// synchronization.
type SearchService struct {
	catalog domain.Catalog
	policy  PackagingPolicy
	filter  *QueryFilter
	matcher *NameMatcher
	logger  *zap.Logger
}

// NewSearchService creates a search service over the given catalog.
func NewSearchService(catalog domain.Catalog, config SearchServiceConfig, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{
		catalog: catalog,
		policy:  config.Packaging,
		filter:  NewQueryFilter(config.CategoryAliases),
		matcher: NewNameMatcher(logger),
		logger:  logger,
	}
}

// Matcher exposes the fuzzy name matcher for callers that need the
// reconciliation and exact-match primitives directly.
func (s *SearchService) Matcher() *NameMatcher {
	return s.matcher
}

// Stats returns the catalog snapshot summary.
func (s *SearchService) Stats() domain.CatalogStats {
	return s.catalog.Stats()
}

// Eligible returns the currently searchable subset of the catalog:
// available records in qualifying packaging, in catalog iteration order.
func (s *SearchService) Eligible() []domain.Product {
	all := s.catalog.All()
	eligible := make([]domain.Product, 0, len(all))
	for i := range all {
		if s.policy.Eligible(&all[i]) {
			eligible = append(eligible, all[i])
		}
	}
	return eligible
}

// FilterAndRank applies the structured filter parameters against the
// eligible subset and returns the ranked, deduplicated top results. A nil
// profile skips the personalization pass entirely. An empty result is a
// normal outcome, never an error.
func (s *SearchService) FilterAndRank(params *domain.FilterParams, profile *domain.UserProfile, opts domain.SearchOptions) []domain.Product {
	results := s.filter.Apply(s.Eligible(), params)
	Rank(results, opts.DescendingPrice)
	if profile != nil {
		results = ScoreForProfile(results, profile)
	}
	results = Deduplicate(results)

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	s.logger.Debug("search completed",
		zap.Int("results", len(results)),
		zap.Bool("personalized", profile != nil))
	return results
}

// LookupByName resolves a specific product name through the fuzzy matcher
// and returns the ranked, deduplicated hits. Empty when no variant matched.
func (s *SearchService) LookupByName(name string) []domain.Product {
	hits := s.matcher.Match(s.Eligible(), name)
	if len(hits) == 0 {
		s.logger.Debug("name lookup found nothing", zap.String("name", name))
		return nil
	}
	Rank(hits, false)
	return Deduplicate(hits)
}

// Recommend returns wine recommendations for a dish, optionally narrowed by
// a preferred style and price ceiling. It over-fetches before truncating so
// the dish constraints have a pool to cut from.
func (s *SearchService) Recommend(dish, preferredStyle string, maxPrice float64, limit int) []domain.Product {
	if maxPrice <= 0 {
		maxPrice = defaultRecommendMaxPrice
	}
	if limit <= 0 {
		limit = defaultRecommendLimit
	}

	params := &domain.FilterParams{
		Dish:           dish,
		PreferredStyle: preferredStyle,
		MaxPrice:       maxPrice,
	}
	results := s.FilterAndRank(params, nil, domain.SearchOptions{Limit: limit * recommendOverfetch})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Details returns the catalog record with the given product id.
func (s *SearchService) Details(productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, domain.ErrInvalidRequest
	}
	product, ok := s.catalog.ByID(productID)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}
