package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	SKU           string          `json:"sku,omitempty"`
	Name          string          `json:"name" binding:"required"`
	Category      string          `json:"category,omitempty"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity int64           `json:"stockQuantity" binding:"gte=0"`
	MinStockLevel int64           `json:"minStockLevel" binding:"gte=0"`
}

// UpdateProductRequest defines the updatable catalogue fields of a product.
// Stock quantity is absent: it changes only through transactions.
type UpdateProductRequest struct {
	SKU           *string          `json:"sku,omitempty"`
	Name          *string          `json:"name,omitempty"`
	Category      *string          `json:"category,omitempty"`
	CostPrice     *decimal.Decimal `json:"costPrice,omitempty"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice,omitempty"`
	MinStockLevel *int64           `json:"minStockLevel,omitempty"`
}

// ProductResponse is a product as returned to the client.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	SKU           string          `json:"sku,omitempty"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity int64           `json:"stockQuantity"`
	MinStockLevel int64           `json:"minStockLevel"`
	LowStock      bool            `json:"lowStock"`
	IsActive      bool            `json:"isActive"`
}

// ToProductResponse converts a domain product to its response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		SKU:           p.SKU,
		Name:          p.Name,
		Category:      p.Category,
		CostPrice:     p.CostPrice,
		SellingPrice:  p.SellingPrice,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		LowStock:      p.LowStock(),
		IsActive:      p.IsActive,
	}
}

// ToProductResponses converts a slice of domain products to response DTOs.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
