package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is one physical unit of a product. A nil SoldAt is the only
// signal that the unit is still in stock.
type InventoryItem struct {
	ID                          int64           `json:"id" db:"id"`
	ProductID                   int64           `json:"product_id" db:"product_id"`
	CreatedAt                   time.Time       `json:"created_at" db:"created_at"`
	SoldAt                      *time.Time      `json:"sold_at" db:"sold_at"`
	Cost                        decimal.Decimal `json:"cost" db:"cost"`
	ProductCategory             string          `json:"product_category" db:"product_category"`
	ProductName                 string          `json:"product_name" db:"product_name"`
	ProductBrand                string          `json:"product_brand" db:"product_brand"`
	ProductRetailPrice          decimal.Decimal `json:"product_retail_price" db:"product_retail_price"`
	ProductDepartment           string          `json:"product_department" db:"product_department"`
	ProductSKU                  string          `json:"product_sku" db:"product_sku"`
	ProductDistributionCenterID int64           `json:"product_distribution_center_id" db:"product_distribution_center_id"`
}

// InStock reports whether the unit has not been sold.
func (i InventoryItem) InStock() bool {
	return i.SoldAt == nil
}
