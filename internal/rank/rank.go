// Package rank orders merged fetch results for presentation and reduces
// wishlist offers to a single best offer per product. Ordering here is the
// only place completion order becomes visible, so every comparison has a
// deterministic tie-break.
package rank

import (
	"sort"

	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
	"github.com/TripleAConsortium/gog-price-checker/internal/fetch"
	"github.com/TripleAConsortium/gog-price-checker/internal/price"
)

// Rank filters the successful results and returns them cheapest-first,
// clamped to limit rows. The sort key is the USD-normalized amount when
// preferUSD is set and every successful entry carries one; otherwise the
// raw amount. Ties are broken by region display name so re-runs always
// produce the same order.
func Rank(results map[catalog.Code]fetch.PriceResult, preferUSD bool, limit int) []price.RegionPrice {
	prices := make([]price.RegionPrice, 0, len(results))
	for _, r := range results {
		if r.OK() {
			prices = append(prices, r.Value)
		}
	}

	useUSD := preferUSD
	for _, p := range prices {
		if !p.HasUSD {
			useUSD = false
			break
		}
	}

	sort.Slice(prices, func(i, j int) bool {
		cmp := prices[i].CompareValue(useUSD).Cmp(prices[j].CompareValue(useUSD))
		if cmp != 0 {
			return cmp < 0
		}
		return prices[i].Region < prices[j].Region
	})

	if limit < 0 {
		limit = 0
	}
	if limit > len(prices) {
		limit = len(prices)
	}
	return prices[:limit]
}

// Excluded returns the failed results, ordered by region display name, for
// diagnostic reporting. Default presentation omits them but they are never
// silently lost.
func Excluded(results map[catalog.Code]fetch.PriceResult) []fetch.PriceResult {
	failed := make([]fetch.PriceResult, 0)
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	sort.Slice(failed, func(i, j int) bool {
		return failed[i].Region.Name < failed[j].Region.Name
	})
	return failed
}

// Successes counts the results that produced a price.
func Successes(results map[catalog.Code]fetch.PriceResult) int {
	n := 0
	for _, r := range results {
		if r.OK() {
			n++
		}
	}
	return n
}

// ProductOffer collects one wishlist product's prices across regions.
type ProductOffer struct {
	ID     string
	Title  string
	Offers map[catalog.Code]price.RegionPrice
}

// BestOffer is a product reduced to its single cheapest regional price.
type BestOffer struct {
	ID    string
	Title string
	Price price.RegionPrice
}

// BestOffers reduces each product to the regional price with the minimum
// comparison value. Regions are visited in catalog order and only a
// strictly lower value replaces the current best, so ties resolve to the
// first region in catalog order. Products with no offers are skipped.
// Input order of products is preserved.
func BestOffers(offers []ProductOffer, order []catalog.Region, preferUSD bool) []BestOffer {
	best := make([]BestOffer, 0, len(offers))

	for _, offer := range offers {
		var (
			current price.RegionPrice
			found   bool
		)
		for _, region := range order {
			p, ok := offer.Offers[region.Code]
			if !ok {
				continue
			}
			if !found || p.CompareValue(preferUSD).Cmp(current.CompareValue(preferUSD)) < 0 {
				current = p
				found = true
			}
		}
		if !found {
			continue
		}
		best = append(best, BestOffer{ID: offer.ID, Title: offer.Title, Price: current})
	}

	return best
}
