package models

import "github.com/shopspring/decimal"

// Product is the db row for an inventory-tracked item.
type Product struct {
	ProductID     string          `db:"product_id"`
	ShopID        string          `db:"shop_id"`
	SKU           string          `db:"sku"`
	Name          string          `db:"name"`
	Category      string          `db:"category"`
	CostPrice     decimal.Decimal `db:"cost_price"`
	SellingPrice  decimal.Decimal `db:"selling_price"`
	StockQuantity int64           `db:"stock_quantity"`
	MinStockLevel int64           `db:"min_stock_level"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
