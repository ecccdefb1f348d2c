package usecase

import (
	"sort"
	"strings"

	"github.com/Kullendorff/systembolaget/internal/domain"
)

// Affinity score bonuses, one per independent axis
const (
	countryBonus    = 10 // record country is a favorite
	regionBonus     = 15 // either origin level overlaps a favorite region
	priceRangeBonus = 5  // price near the observed range
	bodyBonus       = 8  // body at or above preference minus slack
	grapeBonus      = 20 // per affinity grape match
)

// Price range tolerance around the profile's observed bounds
const (
	priceRangeLowerFactor = 0.8
	priceRangeUpperFactor = 1.2
)

// bodySlack is subtracted from the profile's body preference before the
// body comparison, so a preference of 8 still rewards a body of 6.
const bodySlack = 2

// affinityGrapes are grape varieties that reliably indicate deliberate taste
// rather than shelf grabs. Matching any of them is weighted heavily.
var affinityGrapes = []string{
	"nebbiolo", "pinot noir", "syrah", "riesling", "chardonnay", "sangiovese",
}

// ScoreForProfile assigns each candidate an additive affinity score against
// the profile and re-sorts descending by score. The sort is stable, so ties
// keep the order produced by the ranking engine. The input slice is not
// modified.
func ScoreForProfile(products []domain.Product, profile *domain.UserProfile) []domain.Product {
	if profile == nil || len(products) == 0 {
		return products
	}

	scored := make([]domain.Product, len(products))
	copy(scored, products)
	scores := make(map[string]int, len(scored))
	for i := range scored {
		scores[scored[i].ProductID] = AffinityScore(&scored[i], profile)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scores[scored[i].ProductID] > scores[scored[j].ProductID]
	})
	return scored
}

// AffinityScore computes the additive affinity score of a single product
// against a profile. Each axis contributes independently.
func AffinityScore(p *domain.Product, profile *domain.UserProfile) int {
	score := 0

	for _, country := range profile.FavoriteCountries {
		if strings.EqualFold(p.Country, country) {
			score += countryBonus
			break
		}
	}

	if overlapsAnyRegion(p, profile.FavoriteRegions) {
		score += regionBonus
	}

	if profile.PriceMax > 0 &&
		p.Price >= profile.PriceMin*priceRangeLowerFactor &&
		p.Price <= profile.PriceMax*priceRangeUpperFactor {
		score += priceRangeBonus
	}

	if p.TasteClockBody > 0 && p.TasteClockBody >= profile.BodyPreference-bodySlack {
		score += bodyBonus
	}

	for _, grape := range p.Grapes {
		for _, affinity := range affinityGrapes {
			if containsFold(grape, affinity) {
				score += grapeBonus
				break
			}
		}
	}

	return score
}

// overlapsAnyRegion checks both origin-detail levels against the favorite
// regions with bidirectional substring containment, since the log and the
// catalog disagree on granularity ("Piemonte" vs "Barolo, Piemonte").
func overlapsAnyRegion(p *domain.Product, regions []string) bool {
	for _, region := range regions {
		if region == "" {
			continue
		}
		if p.OriginLevel1 != "" &&
			(containsFold(p.OriginLevel1, region) || containsFold(region, p.OriginLevel1)) {
			return true
		}
		if p.OriginLevel2 != "" &&
			(containsFold(p.OriginLevel2, region) || containsFold(region, p.OriginLevel2)) {
			return true
		}
	}
	return false
}
