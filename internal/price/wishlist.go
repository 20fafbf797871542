package price

import (
	"encoding/json"

	"github.com/TripleAConsortium/gog-price-checker/internal/errors"
)

// NormalizeWishlistPrice converts the polymorphic wishlist "price" field
// into a Money value. The field is either an object carrying an amount and
// a currency (the currency itself a flat string or an object with a code
// sub-field), or a combined "19.99 USD" string. All shape handling lives
// here so callers never branch on the field's type.
func NormalizeWishlistPrice(raw json.RawMessage) (Money, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Money{}, errors.NewNormalizationError("", "price field is absent")
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return NormalizeAmount(asString, "")
	}

	var asObject struct {
		Amount   json.RawMessage `json:"amount"`
		Currency json.RawMessage `json:"currency"`
	}
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return Money{}, errors.NewNormalizationError(string(raw), "price is neither a string nor an object")
	}

	amount := scalarString(asObject.Amount)
	if amount == "" {
		return Money{}, errors.NewNormalizationError(string(raw), "price object has no amount")
	}

	return NormalizeAmount(amount, currencyCode(asObject.Currency))
}

// scalarString renders a JSON string or number as its text form.
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// currencyCode reads a currency that is either a flat string or an object
// with a code sub-field. Unknown shapes yield "", which NormalizeAmount
// resolves to the USD default.
func currencyCode(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Code
	}
	return ""
}
