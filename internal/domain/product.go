package domain

import "github.com/shopspring/decimal"

// CategoryAll selects every category in the catalog
const CategoryAll = "all"

// PageSize is the number of products shown per catalog page
const PageSize = 10

func init() {
	// Prices are written as JSON numbers, matching the catalog records
	decimal.MarshalJSONWithoutQuotes = true
}

type Rating struct {
	Rate  float64 `json:"rate"`  // 0-5
	Count int     `json:"count"` // Number of reviews
}

// Product is a read-only catalog entry as returned by the remote store API
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}
