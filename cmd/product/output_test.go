package product

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
	"github.com/TripleAConsortium/gog-price-checker/internal/errors"
	"github.com/TripleAConsortium/gog-price-checker/internal/fetch"
	"github.com/TripleAConsortium/gog-price-checker/internal/price"
	"github.com/TripleAConsortium/gog-price-checker/internal/testutil"
)

func rankedFixture() []price.RegionPrice {
	return []price.RegionPrice{
		{
			Code:      "AR",
			Region:    "Argentina",
			Amount:    decimal.New(2999, -2),
			Currency:  "ARS",
			AmountUSD: decimal.New(1499, -2),
			HasUSD:    true,
		},
		{
			Code:      "US",
			Region:    "United States",
			Amount:    decimal.New(5999, -2),
			Currency:  "USD",
			AmountUSD: decimal.New(5999, -2),
			HasUSD:    true,
		},
	}
}

func TestRenderPlain(t *testing.T) {
	golden := testutil.NewGoldenHelper(t, "testdata/golden")

	golden.AssertGoldenString("plain.txt", renderPlain(rankedFixture(), false))
}

func TestRenderPlain_Normalized(t *testing.T) {
	golden := testutil.NewGoldenHelper(t, "testdata/golden")

	golden.AssertGoldenString("plain_normalized.txt", renderPlain(rankedFixture(), true))
}

func TestRenderPlain_Empty(t *testing.T) {
	assert.Empty(t, renderPlain(nil, false))
}

func TestRenderPretty(t *testing.T) {
	out := renderPretty(rankedFixture(), true)

	lines := splitLines(t, out)
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "Region")
	assert.Contains(t, lines[0], "Price")
	assert.Contains(t, lines[0], "USD")
	assert.Contains(t, lines[1], "Argentina")
	assert.Contains(t, lines[1], "29.99 ARS")
	assert.Contains(t, lines[1], "14.99 USD")
	assert.Contains(t, lines[2], "United States")
	assert.Contains(t, lines[2], "59.99 USD")
}

func TestRenderPretty_NoUSDColumnWithoutNormalize(t *testing.T) {
	out := renderPretty(rankedFixture(), false)

	lines := splitLines(t, out)
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[0], "USD")
}

func TestRenderPretty_Empty(t *testing.T) {
	assert.Empty(t, renderPretty(nil, true))
}

func TestBuildReport(t *testing.T) {
	ranked := rankedFixture()
	results := map[catalog.Code]fetch.PriceResult{
		"AR": {Region: catalog.Region{Code: "AR", Name: "Argentina"}, Value: ranked[0]},
		"US": {Region: catalog.Region{Code: "US", Name: "United States"}, Value: ranked[1]},
		"CN": {
			Region: catalog.Region{Code: "CN", Name: "China"},
			Err:    errors.NewNotFoundError("1234", "CN"),
		},
	}

	report := buildReport("1234", ranked, results)

	assert.Equal(t, "1234", report.ProductID)
	require.Len(t, report.Prices, 2)
	assert.Equal(t, RegionReport{
		Region:    "Argentina",
		Code:      "AR",
		Amount:    "29.99",
		Currency:  "ARS",
		AmountUSD: "14.99",
	}, report.Prices[0])

	require.Len(t, report.Excluded, 1)
	assert.Equal(t, "CN", report.Excluded[0].Code)
	assert.Contains(t, report.Excluded[0].Error, "1234")
}

func splitLines(t *testing.T, s string) []string {
	t.Helper()
	require.NotEmpty(t, s)
	require.True(t, strings.HasSuffix(s, "\n"), "output should end with a newline")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
