package wishlist

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
	"github.com/TripleAConsortium/gog-price-checker/internal/config"
	"github.com/TripleAConsortium/gog-price-checker/internal/fetch"
	"github.com/TripleAConsortium/gog-price-checker/internal/fileutil"
	"github.com/TripleAConsortium/gog-price-checker/internal/gog"
	"github.com/TripleAConsortium/gog-price-checker/internal/price"
	"github.com/TripleAConsortium/gog-price-checker/internal/rank"
)

// CheckWithParams fetches username's public wishlist as seen from every
// catalog region and prints each product's single cheapest offer. Wishlist
// amounts are USD-pinned through the locale cookie, so offers compare
// directly across regions.
func CheckWithParams(username string, normalize bool, pretty bool, writeJSON bool, jsonOutput string) error {
	ctx := context.Background()
	client := gog.NewClient()

	regions, err := loadRegions()
	if err != nil {
		return err
	}

	opts := fetch.Options{Workers: config.FetchWorkers, Timeout: config.FetchTimeout}
	results := fetch.ForEachRegion(ctx, regions, opts, func(ctx context.Context, region catalog.Region) ([]gog.WishlistProduct, error) {
		return client.FetchWishlist(ctx, username, region)
	})

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
			slog.Debug("Region excluded", "region", r.Region.Name, "error", r.Err)
		}
	}
	if failed == len(regions) {
		return fmt.Errorf("could not fetch wishlist for %s in any region (%d regions failed)", username, failed)
	}
	if failed > 0 {
		slog.Warn("Some regions did not return the wishlist", "excluded", failed, "total", len(regions))
	}

	offers := buildOffers(results, regions)
	best := rank.BestOffers(offers, regions, normalize)

	if len(best) == 0 {
		fmt.Printf("No priced products found in %s's wishlist\n", username)
		return nil
	}

	if pretty {
		fmt.Print(renderPretty(best))
	} else {
		fmt.Print(renderPlain(best))
	}

	if writeJSON {
		path := jsonOutput
		if path == "" {
			path = fmt.Sprintf("wishlist-%s.json", username)
		}
		report := buildReport(username, best)
		if _, err := fileutil.WriteJSONFile(report, path, true); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		slog.Info("Wrote JSON report", "path", path)
	}

	return nil
}

// buildOffers merges the per-region wishlists into one offer set per
// product. Products keep the order of their first appearance, with regions
// visited in catalog order; a product whose price cannot be normalized in
// some region simply has no offer there.
func buildOffers(results map[catalog.Code]fetch.Result[[]gog.WishlistProduct], regions []catalog.Region) []rank.ProductOffer {
	index := make(map[string]int)
	offers := make([]rank.ProductOffer, 0)

	for _, region := range regions {
		r, ok := results[region.Code]
		if !ok || !r.OK() {
			continue
		}
		for _, product := range r.Value {
			id := product.ID.String()
			pos, seen := index[id]
			if !seen {
				pos = len(offers)
				index[id] = pos
				offers = append(offers, rank.ProductOffer{
					ID:     id,
					Title:  product.Title,
					Offers: make(map[catalog.Code]price.RegionPrice),
				})
			}

			if len(product.Price) == 0 || string(product.Price) == "null" {
				continue
			}
			quote, err := price.NormalizeWishlistPrice(product.Price)
			if err != nil {
				slog.Debug("Skipping unparsable wishlist price", "product", product.Title, "region", region.Name, "error", err)
				continue
			}
			offers[pos].Offers[region.Code] = price.New(region, quote)
		}
	}

	return offers
}

func loadRegions() ([]catalog.Region, error) {
	if config.RegionsFile == "" {
		return catalog.Regions(), nil
	}
	if _, err := os.Stat(config.RegionsFile); err != nil {
		return nil, fmt.Errorf("regions file %q is not readable: %w", config.RegionsFile, err)
	}
	return catalog.LoadFile(config.RegionsFile)
}
