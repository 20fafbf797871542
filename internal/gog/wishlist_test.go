package gog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
	"github.com/TripleAConsortium/gog-price-checker/internal/errors"
	"github.com/TripleAConsortium/gog-price-checker/internal/price"
)

func TestFetchWishlist_Success(t *testing.T) {
	fixtureData, err := os.ReadFile("testdata/wishlist_page.html")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/u/someuser/wishlist", r.URL.Path)
		assert.Equal(t, "gog_lc=PL_USD_en-US", r.Header.Get("Cookie"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(fixtureData)
	}))
	defer server.Close()

	client := newClientWithBaseURLs(server.URL, server.URL)
	products, err := client.FetchWishlist(context.Background(), "someuser", catalog.Region{Code: "PL", Name: "Poland"})
	require.NoError(t, err)

	require.Len(t, products, 4)
	assert.Equal(t, "Stardew Valley", products[0].Title)
	assert.Equal(t, "1207658930", products[0].ID.String())

	// The three price shapes on the fixture page all normalize.
	money, err := price.NormalizeWishlistPrice(products[0].Price)
	require.NoError(t, err)
	assert.Equal(t, "USD", money.Currency)

	money, err = price.NormalizeWishlistPrice(products[1].Price)
	require.NoError(t, err)
	assert.Equal(t, "USD", money.Currency)

	money, err = price.NormalizeWishlistPrice(products[2].Price)
	require.NoError(t, err)
	assert.Equal(t, "9.99", money.Amount.String())

	// The unreleased product has a null price.
	_, err = price.NormalizeWishlistPrice(products[3].Price)
	require.Error(t, err)
}

func TestFetchWishlist_VarDeclarationFallback(t *testing.T) {
	page := `<html><body><script>
		var gogData = {"products":[{"id":7,"title":"Old Page Game","price":"4.99 USD"}]};
	</script></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	client := newClientWithBaseURLs(server.URL, server.URL)
	products, err := client.FetchWishlist(context.Background(), "someuser", catalog.Region{Code: "US", Name: "United States"})
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Old Page Game", products[0].Title)
}

func TestFetchWishlist_NoGogData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Please sign in</p></body></html>"))
	}))
	defer server.Close()

	client := newClientWithBaseURLs(server.URL, server.URL)
	_, err := client.FetchWishlist(context.Background(), "someuser", catalog.Region{Code: "US", Name: "United States"})

	require.Error(t, err)
	assert.True(t, errors.IsMalformedError(err), "expected MalformedError, got %v", err)
}

func TestFetchWishlist_BrokenGogDataJSON(t *testing.T) {
	page := `<html><body><script>window.gogData = {"products":[{]}; window.other = 1;</script></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	client := newClientWithBaseURLs(server.URL, server.URL)
	_, err := client.FetchWishlist(context.Background(), "someuser", catalog.Region{Code: "US", Name: "United States"})

	require.Error(t, err)
	assert.True(t, errors.IsMalformedError(err))
}

func TestFetchWishlist_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newClientWithBaseURLs(server.URL, server.URL)
	_, err := client.FetchWishlist(context.Background(), "someuser", catalog.Region{Code: "US", Name: "United States"})

	require.Error(t, err)
	assert.True(t, errors.IsNetworkError(err))
}

func TestFetchWishlist_EmptyProducts(t *testing.T) {
	page := `<html><body><script>window.gogData = {"products":[]}; window.other = 1;</script></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	client := newClientWithBaseURLs(server.URL, server.URL)
	products, err := client.FetchWishlist(context.Background(), "someuser", catalog.Region{Code: "US", Name: "United States"})

	require.NoError(t, err)
	assert.Empty(t, products)
}
