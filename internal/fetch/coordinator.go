// Package fetch implements the parallel region fan-out: one unit of work
// per region code, a barrier join, and a result slot per region written
// exactly once. No region's outcome can block, cancel or corrupt another's.
package fetch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
	"github.com/TripleAConsortium/gog-price-checker/internal/errors"
	"github.com/TripleAConsortium/gog-price-checker/internal/price"
)

// Source fetches the price of one product in one region.
type Source interface {
	FetchPrice(ctx context.Context, productID string, region catalog.Region, normalizeUSD bool) (price.RegionPrice, error)
}

// Result is the tagged outcome of one region's fetch: either a value or a
// typed failure. Failures are kept, not dropped; presentation decides what
// to show.
type Result[T any] struct {
	Region catalog.Region
	Value  T
	Err    error
}

// OK reports whether the fetch for this region succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// PriceResult is the per-region outcome of a price fan-out.
type PriceResult = Result[price.RegionPrice]

// Options control a fan-out run.
type Options struct {
	// Workers caps concurrent in-flight requests. Zero means one goroutine
	// per region, which is fine at the current catalog scale (~83); larger
	// catalogs should set a cap of 10-20.
	Workers int
	// Timeout bounds the whole fan-out. On expiry, finished regions keep
	// their results and unfinished ones are recorded as network failures.
	// Zero means no bound beyond the per-request timeout.
	Timeout time.Duration
}

// ForEachRegion runs fn once per region concurrently and returns a map
// holding exactly one Result per input region. Each goroutine writes only
// its own pre-allocated slot; the WaitGroup join is the single
// synchronization point before the slots are read.
func ForEachRegion[T any](ctx context.Context, regions []catalog.Region, opts Options, fn func(context.Context, catalog.Region) (T, error)) map[catalog.Code]Result[T] {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var sem chan struct{}
	if opts.Workers > 0 {
		sem = make(chan struct{}, opts.Workers)
	}

	slots := make([]Result[T], len(regions))
	var wg sync.WaitGroup

	for i, region := range regions {
		wg.Add(1)
		go func(i int, region catalog.Region) {
			defer wg.Done()

			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					slots[i] = Result[T]{Region: region, Err: errors.NewNetworkError("fetch cancelled before start", ctx.Err())}
					return
				}
			}

			value, err := fn(ctx, region)
			if err != nil {
				slots[i] = Result[T]{Region: region, Err: classify(err)}
				return
			}
			slots[i] = Result[T]{Region: region, Value: value}
		}(i, region)
	}

	wg.Wait()

	results := make(map[catalog.Code]Result[T], len(slots))
	for _, r := range slots {
		results[r.Region.Code] = r
	}
	return results
}

// classify guarantees every failure carries a taxonomy type, even if the
// work function returned a bare error (e.g. a raw context deadline).
func classify(err error) error {
	switch {
	case errors.IsNetworkError(err),
		errors.IsNotFoundError(err),
		errors.IsMalformedError(err),
		errors.IsNormalizationError(err):
		return err
	default:
		return errors.NewNetworkError("fetch failed", err)
	}
}

// Coordinator binds a price Source to the region fan-out.
type Coordinator struct {
	source Source
	opts   Options
}

// NewCoordinator creates a coordinator over the given source.
func NewCoordinator(source Source, opts Options) *Coordinator {
	return &Coordinator{source: source, opts: opts}
}

// FetchAll fetches the product's price in every region and returns a map
// whose key set is exactly the input region set; a region that failed is
// present with its failure. No retries are performed; a failed region is
// terminal for this invocation.
func (c *Coordinator) FetchAll(ctx context.Context, productID string, regions []catalog.Region, normalizeUSD bool) map[catalog.Code]PriceResult {
	slog.Debug("Fetching regional prices", "product", productID, "regions", len(regions), "workers", c.opts.Workers)

	return ForEachRegion(ctx, regions, c.opts, func(ctx context.Context, region catalog.Region) (price.RegionPrice, error) {
		return c.source.FetchPrice(ctx, productID, region, normalizeUSD)
	})
}
