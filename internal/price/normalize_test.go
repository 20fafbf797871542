package price

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
	"github.com/TripleAConsortium/gog-price-checker/internal/errors"
)

func TestNormalizeFinalPrice(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantAmount   string
		wantCurrency string
	}{
		{"minor units with currency", "5999 USD", "59.99", "USD"},
		{"zero price", "0 PLN", "0", "PLN"},
		{"single cent", "1 EUR", "0.01", "EUR"},
		{"no currency token", "4299", "42.99", ""},
		{"lowercase currency", "1099 usd", "10.99", "USD"},
		{"extra whitespace", "  5999   USD  ", "59.99", "USD"},
		{"large amount", "129999 JPY", "1299.99", "JPY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeFinalPrice(tt.raw)
			require.NoError(t, err)

			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount = %s, want %s", got.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantCurrency, got.Currency)
		})
	}
}

func TestNormalizeFinalPrice_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"non-numeric amount", "abc USD"},
		{"decimal amount", "59.99 USD"},
		{"negative amount", "-100 USD"},
		{"bad currency", "5999 DOLLARS"},
		{"numeric currency", "5999 U5D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeFinalPrice(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.IsNormalizationError(err), "expected NormalizationError, got %v", err)
		})
	}
}

func TestNormalizeFinalPrice_Idempotent(t *testing.T) {
	first, err := NormalizeFinalPrice("5999 USD")
	require.NoError(t, err)
	second, err := NormalizeFinalPrice("5999 USD")
	require.NoError(t, err)

	assert.True(t, first.Amount.Equal(second.Amount))
	assert.Equal(t, first.Currency, second.Currency)
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		currency     string
		wantAmount   string
		wantCurrency string
	}{
		{"bare amount with currency field", "19.99", "PLN", "19.99", "PLN"},
		{"combined string", "19.99 USD", "", "19.99", "USD"},
		{"currency field wins over embedded", "19.99 EUR", "GBP", "19.99", "GBP"},
		{"no currency anywhere defaults to USD", "9.99", "", "9.99", "USD"},
		{"integer amount", "20", "CAD", "20", "CAD"},
		{"lowercase embedded currency", "5.49 eur", "", "5.49", "EUR"},
		{"zero", "0", "", "0", "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAmount(tt.raw, tt.currency)
			require.NoError(t, err)

			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount = %s, want %s", got.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantCurrency, got.Currency)
		})
	}
}

func TestNormalizeAmount_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		currency string
	}{
		{"empty", "", ""},
		{"not numeric", "free", ""},
		{"negative", "-5.00", "USD"},
		{"bad currency field", "19.99", "EURO"},
		{"bad embedded currency", "19.99 EURO", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeAmount(tt.raw, tt.currency)
			require.Error(t, err)
			assert.True(t, errors.IsNormalizationError(err), "expected NormalizationError, got %v", err)
		})
	}
}

func TestRegionPrice_CompareValue(t *testing.T) {
	region := catalog.Region{Code: "AR", Name: "Argentina"}
	p := New(region, Money{Amount: decimal.RequireFromString("4500.00"), Currency: "ARS"})

	// Without a USD figure the raw amount is always used.
	assert.True(t, p.CompareValue(true).Equal(decimal.RequireFromString("4500.00")))

	p = p.WithUSD(decimal.RequireFromString("19.99"))
	assert.True(t, p.CompareValue(true).Equal(decimal.RequireFromString("19.99")))
	assert.True(t, p.CompareValue(false).Equal(decimal.RequireFromString("4500.00")))
}

func TestRegionPrice_WithUSDDoesNotMutate(t *testing.T) {
	region := catalog.Region{Code: "US", Name: "United States"}
	orig := New(region, Money{Amount: decimal.RequireFromString("59.99"), Currency: "USD"})

	_ = orig.WithUSD(decimal.RequireFromString("59.99"))

	assert.False(t, orig.HasUSD, "WithUSD must return a copy, not mutate the receiver")
}
