package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Kullendorff/systembolaget/internal/domain"
	"go.uber.org/zap"
)

// export mirrors the database export format: a wines array plus optional
// export metadata. Older exports are a bare product array.
type export struct {
	Wines    []domain.Product `json:"wines"`
	Metadata *exportMetadata  `json:"metadata,omitempty"`
}

type exportMetadata struct {
	ExportedAt string `json:"exportedAt,omitempty"`
	TotalWines int    `json:"totalWines,omitempty"`
}

// Store holds the immutable catalog snapshot loaded at startup. It is safe
// for concurrent readers; nothing mutates it after Load returns.
type Store struct {
	products []domain.Product
	byID     map[string]int
	stats    domain.CatalogStats
}

// Load reads the catalog export at path. An unreadable or malformed file
// degrades to an empty store and a wrapped ErrCatalogUnavailable so the
// caller can log it; downstream code treats an empty catalog as a valid,
// if degenerate, state.
func Load(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("catalog export unreadable, starting with empty catalog",
			zap.String("path", path), zap.Error(err))
		return newStore(nil), fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	products, meta, err := decode(data)
	if err != nil {
		logger.Warn("catalog export malformed, starting with empty catalog",
			zap.String("path", path), zap.Error(err))
		return newStore(nil), fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	store := newStore(products)
	fields := []zap.Field{
		zap.String("path", path),
		zap.Int("products", len(products)),
		zap.Int("countries", store.stats.Countries),
		zap.Int("red", store.stats.RedWines),
		zap.Int("white", store.stats.WhiteWines),
	}
	if meta != nil && meta.ExportedAt != "" {
		fields = append(fields, zap.String("exportedAt", meta.ExportedAt))
	}
	logger.Info("catalog loaded", fields...)
	return store, nil
}

// NewStore builds a store directly from records, used by tests and by
// callers that already hold a decoded snapshot.
func NewStore(products []domain.Product) *Store {
	return newStore(products)
}

func newStore(products []domain.Product) *Store {
	byID := make(map[string]int, len(products))
	for i := range products {
		if _, exists := byID[products[i].ProductID]; !exists {
			byID[products[i].ProductID] = i
		}
	}
	return &Store{
		products: products,
		byID:     byID,
		stats:    computeStats(products),
	}
}

// decode accepts both export formats: the wrapped object and a bare array.
func decode(data []byte) ([]domain.Product, *exportMetadata, error) {
	var wrapped export
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Wines != nil {
		return wrapped.Wines, wrapped.Metadata, nil
	}

	var bare []domain.Product
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, nil, fmt.Errorf("unrecognized export format: %w", err)
	}
	return bare, nil, nil
}

// All returns the product snapshot in load order. Callers must not mutate
// the returned slice elements.
func (s *Store) All() []domain.Product {
	return s.products
}

// ByID returns the record with the given product id.
func (s *Store) ByID(productID string) (*domain.Product, bool) {
	i, ok := s.byID[productID]
	if !ok {
		return nil, false
	}
	return &s.products[i], true
}

// Stats returns the snapshot summary computed at load time.
func (s *Store) Stats() domain.CatalogStats {
	return s.stats
}

func computeStats(products []domain.Product) domain.CatalogStats {
	stats := domain.CatalogStats{Total: len(products)}
	countries := make(map[string]bool)
	for i := range products {
		p := &products[i]
		if p.Country != "" {
			countries[p.Country] = true
		}
		switch {
		case containsCategory(p, "Rött"):
			stats.RedWines++
		case containsCategory(p, "Vitt"):
			stats.WhiteWines++
		}
		if p.Price > 0 {
			if stats.MinPrice == 0 || p.Price < stats.MinPrice {
				stats.MinPrice = p.Price
			}
			if p.Price > stats.MaxPrice {
				stats.MaxPrice = p.Price
			}
		}
	}
	stats.Countries = len(countries)
	return stats
}

func containsCategory(p *domain.Product, term string) bool {
	return containsFold(p.CategoryLevel1, term) || containsFold(p.CategoryLevel2, term)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
