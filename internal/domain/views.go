package domain

import "github.com/shopspring/decimal"

// TopSellingProduct is one row of the best-seller aggregation.
type TopSellingProduct struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	TotalSold   int64           `json:"totalSold"`
	RetailPrice decimal.Decimal `json:"retailPrice"`
}

// ProductStock summarises inventory for one product. AvailableStock is not
// clamped, so a negative value points at bad source data.
type ProductStock struct {
	ProductID      int64  `json:"productId"`
	ProductName    string `json:"productName"`
	Brand          string `json:"brand"`
	Category       string `json:"category"`
	SKU            string `json:"sku"`
	TotalInventory int64  `json:"totalInventory"`
	SoldInventory  int64  `json:"soldInventory"`
	AvailableStock int64  `json:"availableStock"`
}

// CollectionStats holds row counts reported by the health endpoint.
type CollectionStats struct {
	Products       int64 `json:"products"`
	Orders         int64 `json:"orders"`
	OrderItems     int64 `json:"orderItems"`
	InventoryItems int64 `json:"inventoryItems"`
}
