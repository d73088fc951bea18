package domain

import "github.com/shopspring/decimal"

// Product is an inventory-tracked item sold or purchased by a shop.
// StockQuantity is mutated only by the stock adjuster as a side effect of
// sale/purchase transactions and never goes below zero.
type Product struct {
	ProductID     string          `json:"productID"` // Primary Key (UUID)
	ShopID        string          `json:"shopID"`    // FK -> shops.shop_id (Not Null)
	SKU           string          `json:"sku,omitempty"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity int64           `json:"stockQuantity"` // >= 0 invariant, enforced by storage
	MinStockLevel int64           `json:"minStockLevel"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// LowStock reports whether the product has fallen to or below its configured minimum.
func (p Product) LowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
