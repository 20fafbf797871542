package gog

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/TripleAConsortium/gog-price-checker/internal/errors"
)

var productIDPattern = regexp.MustCompile(`^\d+$`)

// ResolveProductID turns a product URL into a numeric product ID.
// gogdb.org URLs carry the ID as their last path segment; storefront URLs
// require fetching the page and reading its card-product marker attribute.
func (c *Client) ResolveProductID(ctx context.Context, rawURL string) (string, error) {
	if strings.Contains(rawURL, "gogdb.org") {
		trimmed := strings.TrimRight(rawURL, "/")
		id := trimmed[strings.LastIndex(trimmed, "/")+1:]
		if !productIDPattern.MatchString(id) {
			return "", errors.NewMalformedError(fmt.Sprintf("gogdb URL %q does not end in a product ID", rawURL), nil)
		}
		return id, nil
	}
	return c.extractProductID(ctx, rawURL)
}

// extractProductID fetches a storefront product page and reads the numeric
// product ID from its card-product attribute.
func (c *Client) extractProductID(ctx context.Context, pageURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.NewNetworkError("rate limiter interrupted", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", errors.NewNetworkError("failed to build product page request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewNetworkError("product page request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewHTTPStatusError("product page returned an error", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", errors.NewMalformedError("failed to parse product page", err)
	}

	id, ok := doc.Find("[card-product]").First().Attr("card-product")
	if !ok || !productIDPattern.MatchString(id) {
		return "", errors.NewMalformedError(fmt.Sprintf("product page %s has no card-product marker", pageURL), nil)
	}

	return id, nil
}
