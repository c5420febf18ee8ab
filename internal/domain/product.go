package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Money fields are emitted as JSON numbers, matching the rest of the API.
	decimal.MarshalJSONWithoutQuotes = true
}

// DistributionCenter is a warehouse products ship from.
type DistributionCenter struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Product represents a product in the catalog
type Product struct {
	ID                   int64           `json:"id" db:"id"`
	Cost                 decimal.Decimal `json:"cost" db:"cost"`
	Category             string          `json:"category" db:"category"`
	Name                 string          `json:"name" db:"name"`
	Brand                string          `json:"brand" db:"brand"`
	RetailPrice          decimal.Decimal `json:"retail_price" db:"retail_price"`
	Department           string          `json:"department" db:"department"`
	SKU                  string          `json:"sku" db:"sku"`
	DistributionCenterID int64           `json:"distribution_center_id" db:"distribution_center_id"`
}
