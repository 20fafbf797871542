// Package price holds the canonical representation of a regional price and
// the normalization of the raw shapes the GOG endpoints serve them in.
package price

import (
	"github.com/shopspring/decimal"

	"github.com/TripleAConsortium/gog-price-checker/internal/catalog"
)

// Money is a normalized amount with its currency code.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// RegionPrice is the price of one product in one region. Values are never
// mutated after creation; a re-fetch produces a replacement.
type RegionPrice struct {
	Code   catalog.Code
	Region string // display name

	Amount   decimal.Decimal
	Currency string

	// AmountUSD is the USD-denominated figure the API served alongside the
	// regional quote. Only valid when HasUSD is set.
	AmountUSD decimal.Decimal
	HasUSD    bool
}

// New builds a RegionPrice for a region from a normalized quote.
func New(region catalog.Region, quote Money) RegionPrice {
	return RegionPrice{
		Code:     region.Code,
		Region:   region.Name,
		Amount:   quote.Amount,
		Currency: quote.Currency,
	}
}

// WithUSD returns a copy carrying the USD-normalized amount.
func (p RegionPrice) WithUSD(usd decimal.Decimal) RegionPrice {
	p.AmountUSD = usd
	p.HasUSD = true
	return p
}

// CompareValue returns the amount used for cross-region comparison: the
// USD figure when requested and available, the raw amount otherwise.
func (p RegionPrice) CompareValue(preferUSD bool) decimal.Decimal {
	if preferUSD && p.HasUSD {
		return p.AmountUSD
	}
	return p.Amount
}
