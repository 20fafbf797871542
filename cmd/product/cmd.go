package product

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
	"github.com/TripleAConsortium/gog-price-checker/internal/rank"
)

// CheckWithParams resolves the product behind productURL, fetches its price
// in every catalog region in parallel and prints the cheapest count regions.
// When normalize is set the ranking uses USD-normalized amounts where the
// API provides them.
func CheckWithParams(productURL string, normalize bool, count int, pretty bool, writeJSON bool, jsonOutput string) error {
	ctx := context.Background()
	client := gog.NewClient()

	productID, err := client.ResolveProductID(ctx, productURL)
	if err != nil {
		return fmt.Errorf("failed to resolve product ID from %q: %w", productURL, err)
	}
	slog.Info("Resolved product", "url", productURL, "id", productID)

	regions, err := loadRegions()
	if err != nil {
		return err
	}

	coordinator := fetch.NewCoordinator(client, fetch.Options{
		Workers: config.FetchWorkers,
		Timeout: config.FetchTimeout,
	})
	results := coordinator.FetchAll(ctx, productID, regions, normalize)

	excluded := rank.Excluded(results)
	for _, r := range excluded {
		slog.Debug("Region excluded", "region", r.Region.Name, "error", r.Err)
	}

	if rank.Successes(results) == 0 {
		return fmt.Errorf("no region returned a price for product %s (%d regions failed)", productID, len(excluded))
	}
	if len(excluded) > 0 {
		slog.Warn("Some regions did not return a price", "excluded", len(excluded), "total", len(regions))
	}

	ranked := rank.Rank(results, normalize, count)

	if pretty {
		fmt.Print(renderPretty(ranked, normalize))
	} else {
		fmt.Print(renderPlain(ranked, normalize))
	}

	if writeJSON {
		path := jsonOutput
		if path == "" {
			path = fmt.Sprintf("prices-%s.json", productID)
		}
		report := buildReport(productID, ranked, results)
		if _, err := fileutil.WriteJSONFile(report, path, true); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		slog.Info("Wrote JSON report", "path", path)
	}

	return nil
}

// loadRegions returns the region catalog, honoring an override file when one
// is configured.
func loadRegions() ([]catalog.Region, error) {
	if config.RegionsFile == "" {
		return catalog.Regions(), nil
	}
	if _, err := os.Stat(config.RegionsFile); err != nil {
		return nil, fmt.Errorf("regions file %q is not readable: %w", config.RegionsFile, err)
	}
	return catalog.LoadFile(config.RegionsFile)
}
