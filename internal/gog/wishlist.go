package gog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/TripleAConsortium/gog-price-checker/internal/cache"
	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
	"github.com/TripleAConsortium/gog-price-checker/internal/errors"
)

// gogDataPatterns match the embedded page state. Newer pages assign to
// window.gogData, older ones declare a gogData var.
var gogDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)window\.gogData\s*=\s*(\{.*?\});\s*window\.`),
	regexp.MustCompile(`(?s)var\s+gogData\s*=\s*(\{.*?\});`),
}

// FetchWishlist fetches a user's wishlist as seen from one region. The
// region is selected through the gog_lc locale cookie, which also pins the
// currency to USD so wishlist amounts are directly comparable.
func (c *Client) FetchWishlist(ctx context.Context, username string, region catalog.Region) ([]WishlistProduct, error) {
	fetchFn := func() ([]WishlistProduct, error) {
		return c.fetchWishlistPage(ctx, username, region.Code)
	}
	if !c.useCache {
		return fetchFn()
	}
	cacheKey := fmt.Sprintf("%s_%s", username, region.Code)
	products, _, err := cache.GetOrFetch("wishlist_cache", cacheKey, fetchFn)
	return products, err
}

func (c *Client) fetchWishlistPage(ctx context.Context, username string, code catalog.Code) ([]WishlistProduct, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.NewNetworkError("rate limiter interrupted", err)
	}

	endpoint := fmt.Sprintf("%s/u/%s/wishlist", c.siteBaseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewNetworkError("failed to build wishlist request", err)
	}
	req.Header.Set("Cookie", fmt.Sprintf("gog_lc=%s_USD_en-US", code))
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("wishlist request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewHTTPStatusError("wishlist page returned an error", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.NewMalformedError("failed to parse wishlist page", err)
	}

	payload := findGogData(doc)
	if payload == "" {
		return nil, errors.NewMalformedError("wishlist page has no gogData payload", nil)
	}

	var parsed gogData
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, errors.NewMalformedError("failed to parse gogData payload", err)
	}

	return parsed.Products, nil
}

// findGogData scans the page's script tags for the embedded state object.
func findGogData(doc *goquery.Document) string {
	var payload string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "gogData") {
			return true
		}
		for _, pattern := range gogDataPatterns {
			if m := pattern.FindStringSubmatch(text); m != nil {
				payload = m[1]
				return false
			}
		}
		return true
	})
	return payload
}
