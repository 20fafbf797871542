package price

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/TripleAConsortium/gog-price-checker/internal/errors"
)

// NormalizeFinalPrice converts a pricing-API "finalPrice" field into a
// Money value. The field is formatted as "<integer-minor-units> <CUR>",
// e.g. "5999 USD" -> 59.99 USD. The currency token may be absent.
func NormalizeFinalPrice(raw string) (Money, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Money{}, errors.NewNormalizationError(raw, "empty price string")
	}

	minor, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Money{}, errors.NewNormalizationError(raw, "amount is not an integer")
	}
	if minor < 0 {
		return Money{}, errors.NewNormalizationError(raw, "amount is negative")
	}

	currency := ""
	if len(fields) > 1 {
		currency, err = normalizeCurrency(fields[1])
		if err != nil {
			return Money{}, errors.NewNormalizationError(raw, "invalid currency code")
		}
	}

	return Money{Amount: decimal.New(minor, -2), Currency: currency}, nil
}

// NormalizeAmount converts a decimal amount string into a Money value.
// The wishlist page serves amounts either as a bare number ("19.99", with
// the currency in a separate field) or as a combined "19.99 USD" string.
// currency, when non-empty, takes precedence over a currency embedded in
// the string; when neither is present the amount is assumed to be USD
// because the wishlist is always requested with a USD locale cookie.
func NormalizeAmount(raw, currency string) (Money, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Money{}, errors.NewNormalizationError(raw, "empty amount")
	}

	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return Money{}, errors.NewNormalizationError(raw, "amount is not numeric")
	}
	if amount.IsNegative() {
		return Money{}, errors.NewNormalizationError(raw, "amount is negative")
	}

	code, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, errors.NewNormalizationError(currency, "invalid currency code")
	}
	if code == "" && len(fields) > 1 {
		code, err = normalizeCurrency(fields[1])
		if err != nil {
			return Money{}, errors.NewNormalizationError(raw, "invalid currency code")
		}
	}
	if code == "" {
		code = "USD"
	}

	return Money{Amount: amount, Currency: code}, nil
}

// normalizeCurrency validates and canonicalizes a currency code. An empty
// input stays empty; anything else must be a three-letter ISO-like code.
func normalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", nil
	}
	if len(code) != 3 {
		return "", errors.NewNormalizationError(code, "currency code must be three letters")
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", errors.NewNormalizationError(code, "currency code must be three letters")
		}
	}
	return code, nil
}
