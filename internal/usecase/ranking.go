package usecase

import (
	"sort"

	"github.com/Kullendorff/systembolaget/internal/domain"
)

// Assortment tier labels as they appear in the catalog export.
const (
	AssortmentPermanent = "Fast sortiment"
	AssortmentTemporary = "Tillfälligt sortiment"
	AssortmentLocal     = "Lokalt & Småskaligt"
	AssortmentOrderOnly = "Ordervaror"
)

// tierRank maps an assortment label to its precedence. Permanent stock is
// easiest to actually buy, order-only items always sort last.
func tierRank(assortment string) int {
	switch assortment {
	case AssortmentPermanent:
		return 0
	case AssortmentTemporary:
		return 1
	case AssortmentLocal:
		return 2
	case AssortmentOrderOnly:
		return 4
	default:
		return 3
	}
}

// Rank orders candidates by assortment tier precedence, then price within
// equal tiers. The sort is stable: records equal on both keys keep their
// catalog iteration order. Descending price is used when the query implied a
// price ceiling and the caller wants quality near it rather than the
// cheapest bottle.
func Rank(products []domain.Product, descendingPrice bool) {
	sort.SliceStable(products, func(i, j int) bool {
		ri, rj := tierRank(products[i].AssortmentText), tierRank(products[j].AssortmentText)
		if ri != rj {
			return ri < rj
		}
		if descendingPrice {
			return products[i].Price > products[j].Price
		}
		return products[i].Price < products[j].Price
	})
}

// Deduplicate removes later occurrences sharing a product id, keeping the
// earliest (highest-priority post-ranking) occurrence.
func Deduplicate(products []domain.Product) []domain.Product {
	seen := make(map[string]bool, len(products))
	out := products[:0:0]
	for _, p := range products {
		if seen[p.ProductID] {
			continue
		}
		seen[p.ProductID] = true
		out = append(out, p)
	}
	return out
}
