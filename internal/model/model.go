// Package model defines the domain types shared by the API adapter, the
// resource stores, and the derived views. Monetary values are
// decimal.Decimal; JSON numbers, never strings.
package model

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
