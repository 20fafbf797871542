package gog

import "encoding/json"

// pricesResponse is the shape of the pricing API response:
//
//	{ "_embedded": { "prices": [ { "finalPrice": "5999 USD",
//	                               "currency": { "code": "USD" } }, ... ] } }
//
// The first entry is the regional quote; an entry with currency code USD
// anywhere in the list supplies the normalized figure.
type pricesResponse struct {
	Embedded struct {
		Prices []priceEntry `json:"prices"`
	} `json:"_embedded"`
}

type priceEntry struct {
	FinalPrice string `json:"finalPrice"`
	Currency   struct {
		Code string `json:"code"`
	} `json:"currency"`
}

// WishlistProduct is one product entry from the gogData payload embedded
// in a wishlist page. Price is kept raw because its shape varies; it is
// decoded by price.NormalizeWishlistPrice.
type WishlistProduct struct {
	ID    json.Number     `json:"id"`
	Title string          `json:"title"`
	Price json.RawMessage `json:"price"`
}

// gogData is the subset of the embedded page state the checker reads.
type gogData struct {
	Products []WishlistProduct `json:"products"`
}
