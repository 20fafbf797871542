// Package gog talks to the GOG storefront: the pricing API, product pages
// and wishlist pages. All failures are reported through the typed taxonomy
// in internal/errors so callers can tell a dead network from a product that
// is simply not sold in a region.
package gog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TripleAConsortium/gog-price-checker/internal/cache"
	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
	"github.com/TripleAConsortium/gog-price-checker/internal/config"
	"github.com/TripleAConsortium/gog-price-checker/internal/errors"
	"github.com/TripleAConsortium/gog-price-checker/internal/price"
	"github.com/TripleAConsortium/gog-price-checker/internal/ratelimit"
)

// userAgent matches what a desktop browser sends; the wishlist page serves
// a consent interstitial to unknown clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client performs HTTP calls against the GOG storefront.
type Client struct {
	apiBaseURL  string
	siteBaseURL string
	httpClient  *http.Client
	limiter     *ratelimit.Limiter
	useCache    bool
}

// NewClient creates a client configured from the global config.
func NewClient() *Client {
	return &Client{
		apiBaseURL:  config.APIBaseURL,
		siteBaseURL: config.SiteBaseURL,
		httpClient:  &http.Client{Timeout: config.APITimeout},
		limiter:     ratelimit.FromConfig("gog-api"),
		useCache:    true,
	}
}

// newClientWithBaseURLs is used by tests to point the client at a local
// server, bypassing the response cache.
func newClientWithBaseURLs(apiBaseURL, siteBaseURL string) *Client {
	return &Client{
		apiBaseURL:  apiBaseURL,
		siteBaseURL: siteBaseURL,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		limiter:     ratelimit.New("gog-api", 1000),
		useCache:    false,
	}
}

// FetchPrice fetches the price of one product in one region. When
// normalizeUSD is set, the API is asked for an additional USD-denominated
// quote. Exactly one of the taxonomy errors is returned on failure.
func (c *Client) FetchPrice(ctx context.Context, productID string, region catalog.Region, normalizeUSD bool) (price.RegionPrice, error) {
	body, err := c.priceBody(ctx, productID, region.Code, normalizeUSD)
	if err != nil {
		return price.RegionPrice{}, err
	}
	return parsePriceResponse(body, productID, region)
}

func (c *Client) priceBody(ctx context.Context, productID string, code catalog.Code, normalizeUSD bool) (string, error) {
	fetchFn := func() (string, error) {
		return c.fetchPriceBody(ctx, productID, code, normalizeUSD)
	}
	if !c.useCache {
		return fetchFn()
	}
	cacheKey := fmt.Sprintf("%s_%s_%t", productID, code, normalizeUSD)
	body, _, err := cache.GetOrFetch("prices_cache", cacheKey, fetchFn)
	return body, err
}

func (c *Client) fetchPriceBody(ctx context.Context, productID string, code catalog.Code, normalizeUSD bool) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.NewNetworkError("rate limiter interrupted", err)
	}

	endpoint := fmt.Sprintf("%s/products/%s/prices?countryCode=%s", c.apiBaseURL, url.PathEscape(productID), code)
	if normalizeUSD {
		endpoint += "&currency=USD"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.NewNetworkError("failed to build pricing request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewNetworkError("pricing request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewNetworkError("failed to read pricing response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.NewHTTPStatusError("pricing API returned an error", resp.StatusCode)
	}

	return string(body), nil
}

// parsePriceResponse converts a pricing API body into a RegionPrice.
func parsePriceResponse(body, productID string, region catalog.Region) (price.RegionPrice, error) {
	var parsed pricesResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return price.RegionPrice{}, errors.NewMalformedError("failed to parse pricing response", err)
	}

	entries := parsed.Embedded.Prices
	if len(entries) == 0 {
		return price.RegionPrice{}, errors.NewNotFoundError(productID, string(region.Code))
	}

	quote, err := price.NormalizeFinalPrice(entries[0].FinalPrice)
	if err != nil {
		return price.RegionPrice{}, errors.NewMalformedError("price entry is not parsable", err)
	}
	if quote.Currency == "" {
		quote.Currency = strings.ToUpper(entries[0].Currency.Code)
	}

	rp := price.New(region, quote)

	// Any entry quoted in USD supplies the normalized figure, not only the
	// first one.
	for _, entry := range entries {
		if !strings.EqualFold(entry.Currency.Code, "USD") {
			continue
		}
		usd, err := price.NormalizeFinalPrice(entry.FinalPrice)
		if err != nil {
			continue
		}
		rp = rp.WithUSD(usd.Amount)
		break
	}

	return rp, nil
}
